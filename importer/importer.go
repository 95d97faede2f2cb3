// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package importer - one-shot migration from a legacy SQL source into
// a backend.Backend
//
// Bypasses the positive cache, negative cache and write coordinator
// entirely: rows are decoded and written directly via backend.Put.
// Grounded on the rippled HashedObjectStore::import method: rows with
// a zero hash are skipped with a WARNING, and progress is logged every
// 10,000 rows.
package importer

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

// ProgressInterval - how often import progress is logged
const ProgressInterval = 10000

// Import - read every row of the legacy CommittedObjects table at path
// and write each decoded record directly to dst; returns the count of
// rows actually written (zero-hash rows are skipped, not counted)
func Import(path string, dst backend.Backend) (int, error) {
	log := logger.New("importer")

	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return 0, fmt.Errorf("importer: open: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT Hash, ObjType, LedgerIndex, Object FROM CommittedObjects`)
	if nil != err {
		return 0, fmt.Errorf("importer: query: %w", err)
	}
	defer rows.Close()

	written := 0
	seen := 0
	for rows.Next() {
		var hashBytes []byte
		var typeChar string
		var ledgerIndex uint32
		var payload []byte

		if err := rows.Scan(&hashBytes, &typeChar, &ledgerIndex, &payload); nil != err {
			return written, fmt.Errorf("importer: scan: %w", err)
		}
		seen += 1

		h, err := hash.FromBytes(hashBytes)
		if nil != err {
			return written, fmt.Errorf("importer: invalid hash length: %w", err)
		}

		if h.IsZero() {
			log.Warnf("skipping zero-hash row at position %d", seen)
			continue
		}

		t, ok := object.TypeFromChar(typeChar[0])
		if !ok {
			log.Errorf("skipping row with unrecognized type %q for hash: %s", typeChar, h)
			continue
		}

		dst.Put(object.New(t, ledgerIndex, payload, h))
		written += 1

		if 0 == written%ProgressInterval {
			log.Infof("import progress: %d rows written", written)
		}
	}

	if err := rows.Err(); nil != err {
		return written, fmt.Errorf("importer: rows: %w", err)
	}

	log.Infof("import complete: %d rows written", written)
	return written, nil
}
