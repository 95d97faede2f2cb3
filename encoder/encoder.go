// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package encoder - the bit-exact wire layout used by the unordered-KV
// backend
//
// This is the LLWrite/LLRetrieve boundary used by backend/kvbackend:
// EncodeKV/DecodeKV convert between an *object.Record and the (hash, blob)
// pair actually stored on disk, internally to that one backend. Keeping
// the layout here rather than inline in kvbackend means it can be
// exercised and versioned independently of the leveldb.DB wrapper around
// it, since it is an on-disk compatibility contract, not an incidental
// detail of that wrapper.
package encoder

import (
	"encoding/binary"

	"github.com/bitmark-inc/nodestore/fault"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

// HeaderLength - bytes 0..8 of every unordered-KV value
const HeaderLength = 9

// EncodeKV - build the value stored under hash in the unordered-KV
// backend: ledger_index duplicated in bytes 0..3 and 4..7 (historical,
// preserved for format compatibility without semantic meaning beyond
// that), the type byte at offset 8, then the raw payload
func EncodeKV(r *object.Record) []byte {
	buffer := make([]byte, HeaderLength+len(r.Payload))
	binary.BigEndian.PutUint32(buffer[0:4], r.LedgerIndex)
	binary.BigEndian.PutUint32(buffer[4:8], r.LedgerIndex)
	buffer[8] = byte(r.Type)
	copy(buffer[HeaderLength:], r.Payload)
	return buffer
}

// DecodeKV - reverse EncodeKV, reconstructing the record from the key
// (hash) it was stored under and the value blob read back
func DecodeKV(h hash.Digest, blob []byte) (*object.Record, error) {
	if len(blob) < HeaderLength {
		return nil, fault.ErrTruncatedRecord
	}

	t := object.Type(blob[8])
	if !t.Valid() {
		return nil, fault.ErrInvalidObjectType
	}

	ledgerIndex := binary.BigEndian.Uint32(blob[0:4])

	payload := make([]byte, len(blob)-HeaderLength)
	copy(payload, blob[HeaderLength:])

	return object.New(t, ledgerIndex, payload, h), nil
}
