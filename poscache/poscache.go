// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package poscache - bounded-size / bounded-age cache of recently
// seen objects
//
// Eviction runs on two axes: a soft cap on entry count (delegated to an
// LRU) and a soft cap on seconds-since-last-touch (swept periodically).
// canonicalize is the single atomic admit primitive that settles races
// between concurrent constructions of the same object.
package poscache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

const (
	// DefaultTargetSize - soft cap on entry count
	DefaultTargetSize = 4096

	// DefaultTargetAge - soft cap on seconds since last touch
	DefaultTargetAge = 5 * time.Minute

	sweepInterval = 30 * time.Second
)

type entry struct {
	record    *object.Record
	touchedAt time.Time
}

// Cache - the positive cache
type Cache struct {
	mutex sync.Mutex
	lru   *lru.Cache[hash.Digest, *entry]

	targetAge time.Duration

	stopSweep chan struct{}
	sweepDone chan struct{}
}

// New - create a positive cache and start its background age sweep
func New(targetSize int, targetAge time.Duration) *Cache {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	if targetAge <= 0 {
		targetAge = DefaultTargetAge
	}

	l, _ := lru.New[hash.Digest, *entry](targetSize)

	c := &Cache{
		lru:       l,
		targetAge: targetAge,
		stopSweep: make(chan struct{}),
		sweepDone: make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Stop - halt the background age sweep; the cache remains usable, just
// stops expiring entries by age
func (c *Cache) Stop() {
	close(c.stopSweep)
	<-c.sweepDone
}

// Touch - mark a hash accessed-now and report whether it is present;
// never constructs anything
func (c *Cache) Touch(h hash.Digest) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, ok := c.lru.Get(h)
	if !ok {
		return false
	}
	e.touchedAt = time.Now()
	return true
}

// Fetch - return the shared instance for hash, marking it accessed-now
func (c *Cache) Fetch(h hash.Digest) (*object.Record, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, ok := c.lru.Get(h)
	if !ok {
		return nil, false
	}
	e.touchedAt = time.Now()
	return e.record, true
}

// Canonicalize - atomically decide whether candidate becomes the cached
// instance for hash
//
// if hash is already present the existing instance wins: candidate is
// dropped and (existing, false) is returned. otherwise candidate is
// inserted and (candidate, true) is returned — the caller that receives
// true is the one responsible for queuing the write.
func (c *Cache) Canonicalize(h hash.Digest, candidate *object.Record) (*object.Record, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if e, ok := c.lru.Get(h); ok {
		e.touchedAt = time.Now()
		return e.record, false
	}

	c.lru.Add(h, &entry{record: candidate, touchedAt: time.Now()})
	return candidate, true
}

// SetTargetSize - runtime reconfiguration of the entry-count cap
func (c *Cache) SetTargetSize(size int) {
	if size <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lru.Resize(size)
}

// SetTargetAge - runtime reconfiguration of the age cap
func (c *Cache) SetTargetAge(age time.Duration) {
	if age <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.targetAge = age
}

// Len - current entry count, mostly useful for tests
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.Len()
}

func (c *Cache) sweepLoop() {
	defer close(c.sweepDone)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.expireStale()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *Cache) expireStale() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for _, h := range c.lru.Keys() {
		e, ok := c.lru.Peek(h)
		if !ok {
			continue
		}
		if now.Sub(e.touchedAt) > c.targetAge {
			c.lru.Remove(h)
		}
	}
}
