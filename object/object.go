// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package object - the sole persisted entity of the store
package object

import (
	"fmt"

	"github.com/bitmark-inc/nodestore/hash"
)

// Type - the kind of ledger object a record holds
type Type byte

// recognized object types; the KV encoding stores this byte value
// verbatim, the SQL encoding stores the Char() letter instead
const (
	Unknown         Type = 0
	Ledger          Type = 1
	Transaction     Type = 2
	AccountNode     Type = 3
	TransactionNode Type = 4
)

// String - name of the type, for logging
func (t Type) String() string {
	switch t {
	case Ledger:
		return "Ledger"
	case Transaction:
		return "Transaction"
	case AccountNode:
		return "AccountNode"
	case TransactionNode:
		return "TransactionNode"
	default:
		return "Unknown"
	}
}

// Valid - whether t is a recognized type, used to reject decoded type
// bytes/chars outside the recognized set
func (t Type) Valid() bool {
	switch t {
	case Unknown, Ledger, Transaction, AccountNode, TransactionNode:
		return true
	default:
		return false
	}
}

// Char - the single-character SQL column representation of the type
func (t Type) Char() byte {
	switch t {
	case Ledger:
		return 'L'
	case Transaction:
		return 'T'
	case AccountNode:
		return 'A'
	case TransactionNode:
		return 'N'
	default:
		return 'U'
	}
}

// TypeFromChar - inverse of Char; unrecognized characters map to Unknown
// and report found = false so the caller can negative-cache the hash
func TypeFromChar(c byte) (Type, bool) {
	switch c {
	case 'L':
		return Ledger, true
	case 'T':
		return Transaction, true
	case 'A':
		return AccountNode, true
	case 'N':
		return TransactionNode, true
	case 'U':
		return Unknown, true
	default:
		return Unknown, false
	}
}

// Record - an immutable persisted object
//
// once constructed a Record is never mutated; callers that need a
// different payload construct a new Record under a new hash
type Record struct {
	Type        Type
	LedgerIndex uint32
	Hash        hash.Digest
	Payload     []byte
}

// New - build a record, the sole constructor
func New(t Type, ledgerIndex uint32, payload []byte, h hash.Digest) *Record {
	return &Record{
		Type:        t,
		LedgerIndex: ledgerIndex,
		Hash:        h,
		Payload:     payload,
	}
}

// Equal - equality of type, index and hash, and byte-wise equality of
// payload
func (r *Record) Equal(other *Record) bool {
	if nil == r || nil == other {
		return r == other
	}
	if r.Type != other.Type || r.LedgerIndex != other.LedgerIndex || r.Hash != other.Hash {
		return false
	}
	if len(r.Payload) != len(other.Payload) {
		return false
	}
	for i, b := range r.Payload {
		if b != other.Payload[i] {
			return false
		}
	}
	return true
}

// String - short description for logging
func (r *Record) String() string {
	return fmt.Sprintf("%s[%d]:%s(%d bytes)", r.Type, r.LedgerIndex, r.Hash, len(r.Payload))
}
