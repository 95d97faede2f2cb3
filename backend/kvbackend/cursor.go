// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvbackend

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/nodestore/encoder"
	"github.com/bitmark-inc/nodestore/fault"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

// Cursor - bounded range-scan primitive for the dump tooling;
// the only scan surface this backend exposes, since the store facade
// itself has no range-scan operation
type Cursor struct {
	kv    *KV
	start []byte
}

// NewCursor - a cursor positioned at the start of the whole key space
func (k *KV) NewCursor() *Cursor {
	return &Cursor{kv: k, start: nil}
}

// Fetch - return up to count records starting from the cursor's
// current position, advancing it past the last record returned
func (c *Cursor) Fetch(count int) ([]*object.Record, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	rng := &ldb_util.Range{Start: c.start}
	iter := c.kv.database.NewIterator(rng, nil)
	defer iter.Release()

	records := make([]*object.Record, 0, count)
	var lastKey []byte
	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		h, err := hash.FromBytes(key)
		if nil != err {
			c.kv.log.Errorf("cursor: skipping malformed key: %x", key)
			continue
		}

		r, err := encoder.DecodeKV(h, value)
		if nil != err {
			c.kv.log.Errorf("cursor: skipping corrupt record for hash: %s: %v", h, err)
			continue
		}

		records = append(records, r)
		lastKey = append([]byte(nil), key...)

		if len(records) >= count {
			break
		}
	}
	if err := iter.Error(); nil != err {
		return records, err
	}

	if nil != lastKey {
		c.start = nextKey(lastKey)
	}
	return records, nil
}

// nextKey - a key strictly greater than key that no other key of the
// same length sorts between, used to resume the range scan past the
// last record returned
func nextKey(key []byte) []byte {
	next := append([]byte(nil), key...)
	for i := len(next) - 1; i >= 0; i -= 1 {
		if next[i] < 0xff {
			next[i] += 1
			return next[:i+1]
		}
	}
	// key was all 0xff bytes: there is no successor within this length,
	// append a zero byte so the range becomes empty past this point
	return append(next, 0x00)
}
