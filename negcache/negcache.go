// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package negcache - bounded-TTL cache of hashes recently confirmed
// absent from every backend
//
// Avoids repeating an expensive backend miss for a hash that was just
// looked up and not found. Entries expire on their own; there is no
// explicit eviction axis beyond the TTL.
package negcache

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/nodestore/hash"
)

// DefaultTTL - how long a miss is remembered
const DefaultTTL = 120 * time.Second

const cleanupInterval = 1 * time.Minute

// Cache - the negative cache
type Cache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// New - create a negative cache with the given miss TTL
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Add - remember hash as absent for the configured TTL
func (c *Cache) Add(h hash.Digest) {
	c.cache.Set(string(h.Bytes()), struct{}{}, c.ttl)
}

// Del - forget that hash was absent, e.g. because it was just written
func (c *Cache) Del(h hash.Digest) {
	c.cache.Delete(string(h.Bytes()))
}

// IsPresent - report whether hash is currently remembered as absent
func (c *Cache) IsPresent(h hash.Digest) bool {
	_, found := c.cache.Get(string(h.Bytes()))
	return found
}

// SetTTL - runtime reconfiguration of the miss TTL; affects entries
// added after the change, not entries already cached
func (c *Cache) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.ttl = ttl
}

// Len - current entry count, mostly useful for tests
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}
