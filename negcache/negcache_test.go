// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package negcache_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/negcache"
)

func TestAddAndIsPresent(t *testing.T) {
	c := negcache.New(time.Minute)

	h := hash.Of([]byte("missing object"))
	if c.IsPresent(h) {
		t.Fatalf("expected hash to be absent before Add")
	}

	c.Add(h)
	if !c.IsPresent(h) {
		t.Errorf("expected hash to be present after Add")
	}
}

func TestDelRemovesEntry(t *testing.T) {
	c := negcache.New(time.Minute)

	h := hash.Of([]byte("to be forgotten"))
	c.Add(h)
	c.Del(h)

	if c.IsPresent(h) {
		t.Errorf("expected hash to be absent after Del")
	}
}

func TestExpiry(t *testing.T) {
	c := negcache.New(20 * time.Millisecond)

	h := hash.Of([]byte("short lived"))
	c.Add(h)
	if !c.IsPresent(h) {
		t.Fatalf("expected hash to be present immediately after Add")
	}

	time.Sleep(60 * time.Millisecond)
	if c.IsPresent(h) {
		t.Errorf("expected hash to have expired")
	}
}
