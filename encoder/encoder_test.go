// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encoder_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/nodestore/encoder"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	h := hash.Of(payload)
	r := object.New(object.AccountNode, 42, payload, h)

	blob := encoder.EncodeKV(r)

	decoded, err := encoder.DecodeKV(h, blob)
	if nil != err {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !decoded.Equal(r) {
		t.Errorf("decoded record does not match original: %s vs %s", decoded, r)
	}
}

func TestEncodeDuplicatesLedgerIndex(t *testing.T) {
	r := object.New(object.Ledger, 0x01020304, []byte("x"), hash.Of([]byte("x")))
	blob := encoder.EncodeKV(r)

	if !bytes.Equal(blob[0:4], blob[4:8]) {
		t.Errorf("expected ledger_index duplicated in bytes 0..3 and 4..7, got %x vs %x", blob[0:4], blob[4:8])
	}
	if blob[8] != byte(object.Ledger) {
		t.Errorf("expected type byte at offset 8, got %d", blob[8])
	}
}

func TestDecodeTruncatedRecord(t *testing.T) {
	_, err := encoder.DecodeKV(hash.Zero, []byte{0x01, 0x02})
	if nil == err {
		t.Fatalf("expected an error decoding a truncated record")
	}
}

func TestDecodeInvalidType(t *testing.T) {
	blob := make([]byte, encoder.HeaderLength)
	blob[8] = 0xFF
	_, err := encoder.DecodeKV(hash.Zero, blob)
	if nil == err {
		t.Fatalf("expected an error decoding an unrecognized type byte")
	}
}
