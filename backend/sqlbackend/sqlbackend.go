// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sqlbackend - the single-table SQL backend.Backend
//
// Schema: CommittedObjects(Hash BLOB PRIMARY KEY, ObjType CHAR(1),
// LedgerIndex INT, Object BLOB). Batch writes run inside one
// BEGIN/COMMIT transaction using INSERT OR IGNORE, so a re-insert of an
// already-committed hash is silently skipped rather than erroring, the
// way the teacher's LevelDB pool silently permits overwrite-with-same
// content.
package sqlbackend

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

const schema = `
CREATE TABLE IF NOT EXISTS CommittedObjects (
	Hash        BLOB PRIMARY KEY,
	ObjType     CHAR(1) NOT NULL,
	LedgerIndex INTEGER NOT NULL,
	Object      BLOB NOT NULL
)`

// SQL - a single-table SQL backend.Backend
type SQL struct {
	db  *sql.DB
	log *logger.L

	// standaloneMode selects WAL journaling with synchronous = NORMAL
	// (see New); it does not change what is stored
	standaloneMode bool
}

var _ backend.Backend = (*SQL)(nil)

// New - open (creating if necessary) a SQL backend at path
//
// standaloneMode relaxes durability (WAL + synchronous=NORMAL) for the
// single-process, no-replica deployment the option name describes;
// the default is the safer rollback-journal mode.
func New(path string, standaloneMode bool) (*SQL, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("sqlbackend: open: %w", err)
	}

	if standaloneMode {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); nil != err {
			db.Close()
			return nil, fmt.Errorf("sqlbackend: journal_mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA synchronous = NORMAL"); nil != err {
			db.Close()
			return nil, fmt.Errorf("sqlbackend: synchronous: %w", err)
		}
	}

	if _, err := db.Exec(schema); nil != err {
		db.Close()
		return nil, fmt.Errorf("sqlbackend: schema: %w", err)
	}

	return &SQL{
		db:             db,
		log:            logger.New("sqlbackend"),
		standaloneMode: standaloneMode,
	}, nil
}

// Get - read and decode a single record
func (s *SQL) Get(h hash.Digest) (*object.Record, bool) {
	row := s.db.QueryRow(
		`SELECT ObjType, LedgerIndex, Object FROM CommittedObjects WHERE Hash = ?`,
		h.Bytes(),
	)

	var typeChar string
	var ledgerIndex uint32
	var payload []byte
	err := row.Scan(&typeChar, &ledgerIndex, &payload)
	if sql.ErrNoRows == err {
		return nil, false
	}
	logger.PanicIfError("sqlbackend.Get", err)

	t, ok := object.TypeFromChar(typeChar[0])
	if !ok {
		s.log.Errorf("unrecognized object type %q for hash: %s", typeChar, h)
		return nil, false
	}

	return object.New(t, ledgerIndex, payload, h), true
}

// Put - write a single record
func (s *SQL) Put(r *object.Record) {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO CommittedObjects(Hash, ObjType, LedgerIndex, Object) VALUES (?, ?, ?, ?)`,
		r.Hash.Bytes(), string(r.Type.Char()), r.LedgerIndex, r.Payload,
	)
	logger.PanicIfError("sqlbackend.Put", err)
}

// PutBatch - write many records inside one BEGIN/COMMIT transaction
func (s *SQL) PutBatch(records []*object.Record) {
	if 0 == len(records) {
		return
	}

	tx, err := s.db.Begin()
	logger.PanicIfError("sqlbackend.PutBatch begin", err)

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO CommittedObjects(Hash, ObjType, LedgerIndex, Object) VALUES (?, ?, ?, ?)`,
	)
	logger.PanicIfError("sqlbackend.PutBatch prepare", err)
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(r.Hash.Bytes(), string(r.Type.Char()), r.LedgerIndex, r.Payload)
		if nil != err {
			tx.Rollback()
			logger.PanicIfError("sqlbackend.PutBatch exec", err)
		}
	}

	err = tx.Commit()
	logger.PanicIfError("sqlbackend.PutBatch commit", err)
}

// Close - release the underlying database handle
func (s *SQL) Close() error {
	return s.db.Close()
}
