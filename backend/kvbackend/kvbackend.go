// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kvbackend - the unordered LSM-style KV backend
//
// A thin wrapper around a goleveldb handle storing encoder.EncodeKV
// blobs keyed by the raw 32-byte hash, in the same style as the
// teacher's storage.PoolHandle: errors other than "not found" are
// fatal, since a real I/O error here means the database on disk is
// unreliable and there is no safe way to continue.
package kvbackend

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/encoder"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

// KV - an unordered-KV backend.Backend
type KV struct {
	database *leveldb.DB
	log      *logger.L
}

var _ backend.Backend = (*KV)(nil)

// New - open (creating if necessary) a KV backend at path
func New(path string) (*KV, error) {
	db, err := leveldb.OpenFile(path, &ldb_opt.Options{ErrorIfExist: false})
	if nil != err {
		return nil, err
	}
	return &KV{
		database: db,
		log:      logger.New("kvbackend"),
	}, nil
}

// Get - read and decode a single record
func (k *KV) Get(h hash.Digest) (*object.Record, bool) {
	value, err := k.database.Get(h.Bytes(), nil)
	if leveldb.ErrNotFound == err {
		return nil, false
	}
	logger.PanicIfError("kvbackend.Get", err)

	r, decodeErr := encoder.DecodeKV(h, value)
	if nil != decodeErr {
		k.log.Errorf("corrupt record for hash: %s: %v", h, decodeErr)
		return nil, false
	}
	return r, true
}

// Put - write a single record
func (k *KV) Put(r *object.Record) {
	err := k.database.Put(r.Hash.Bytes(), encoder.EncodeKV(r), nil)
	logger.PanicIfError("kvbackend.Put", err)
}

// PutBatch - write many records as one atomic leveldb.Batch
func (k *KV) PutBatch(records []*object.Record) {
	if 0 == len(records) {
		return
	}
	batch := new(leveldb.Batch)
	for _, r := range records {
		batch.Put(r.Hash.Bytes(), encoder.EncodeKV(r))
	}
	err := k.database.Write(batch, nil)
	logger.PanicIfError("kvbackend.PutBatch", err)
}

// Close - release the underlying leveldb handle
func (k *KV) Close() error {
	return k.database.Close()
}
