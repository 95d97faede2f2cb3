// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hash - the 256 bit content digest used as the primary key of
// every object in the store.
package hash

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Size - number of bytes in a digest
const Size = 32

// Digest - a 256 bit content hash, the primary key of an object record
type Digest [Size]byte

// Zero - the zero-value digest, never a valid hash of any payload the
// caller should supply
var Zero Digest

// Of - reference implementation of H(bytes) -> 256 bit digest
//
// the real digest function is an external collaborator supplied by the
// caller; this exists so the paranoid-mode assertion and the test suite
// have a concrete H to check against
func Of(data []byte) Digest {
	return sha3.Sum256(data)
}

// FromBytes - build a digest from a byte slice, the slice must be exactly
// Size bytes long
func FromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != Size {
		return d, fmt.Errorf("hash: invalid length: expected: %d  actual: %d", Size, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// FromHex - build a digest from its hex text representation
func FromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if nil != err {
		var d Digest
		return d, err
	}
	return FromBytes(b)
}

// Bytes - byte slice view of the digest
func (d Digest) Bytes() []byte {
	return d[:]
}

// IsZero - true if the digest is the zero value
func (d Digest) IsZero() bool {
	return d == Zero
}

// String - hex representation for logging and the %s verb
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// GoString - hex representation for the %#v verb
func (d Digest) GoString() string {
	return "<Digest:" + hex.EncodeToString(d[:]) + ">"
}
