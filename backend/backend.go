// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package backend - the pluggable durable storage contract
//
// Two concrete variants are recognized: an unordered LSM-style KV store
// (backend/kvbackend) and a single-table SQL store (backend/sqlbackend).
// Both accept and return *object.Record at this interface boundary;
// kvbackend delegates its bit-exact wire layout to encoder
// (EncodeKV/DecodeKV blobs) and sqlbackend maps fields to table columns,
// so the on-disk representation stays a private implementation detail
// of each backend, not something this interface exposes.
package backend

import (
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

// Backend - capability set every storage variant provides
//
// Backend I/O errors are not modeled as Go errors: a real I/O failure
// indicates a corrupted or unreachable store, and the reference design
// treats that as fatal (see github.com/bitmark-inc/logger's Panic family,
// used throughout kvbackend and sqlbackend) rather than something every
// caller must branch on.
type Backend interface {
	// Get - read a single record; found is false if the key is absent or
	// the stored record cannot be decoded
	Get(h hash.Digest) (*object.Record, bool)

	// Put - write a single record
	Put(r *object.Record)

	// PutBatch - write many records as a single atomic unit
	PutBatch(records []*object.Record)

	// Close - release underlying resources
	Close() error
}
