// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvbackend_test

import (
	"testing"

	"github.com/bitmark-inc/nodestore/object"
)

func TestCursorFetchPaginates(t *testing.T) {
	kv := openTestBackend(t)

	const total = 25
	for i := 0; i < total; i += 1 {
		payload := []byte{byte(i), byte(i >> 8)}
		r := object.New(object.Transaction, uint32(i), payload, hashOfInt(i))
		kv.Put(r)
	}

	cursor := kv.NewCursor()
	seen := map[string]bool{}
	for {
		page, err := cursor.Fetch(10)
		if nil != err {
			t.Fatalf("cursor fetch failed: %v", err)
		}
		if 0 == len(page) {
			break
		}
		for _, r := range page {
			seen[r.Hash.String()] = true
		}
		if len(page) < 10 {
			break
		}
	}

	if total != len(seen) {
		t.Errorf("expected to have scanned %d distinct records, saw %d", total, len(seen))
	}
}

func hashOfInt(i int) (h [32]byte) {
	h[0] = byte(i)
	h[1] = byte(i >> 8)
	h[31] = 0x01 // avoid the all-zero hash
	return h
}
