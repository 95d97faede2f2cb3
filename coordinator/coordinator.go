// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coordinator - the write-coalescing pipeline
//
// A WriteCoordinator owns the pending-write queue and a single-flight
// background drain: at most one drain task is ever outstanding, and it
// keeps re-checking the queue under its own lock before exiting so that
// records enqueued while the batch was being written are absorbed by
// the same drain rather than scheduling a second one.
package coordinator

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/executor"
	"github.com/bitmark-inc/nodestore/object"
)

// drainJobName - the executor job name the store drain is submitted under
const drainJobName = "NodeObject::store"

// Coordinator - the write-coalescing pipeline for one backend pair
type Coordinator struct {
	mutex sync.Mutex
	cond  *sync.Cond

	pending    []*object.Record
	inFlight   bool
	generation uint64
	lastBatch  int

	primary   backend.Backend
	ephemeral backend.Backend
	exec      executor.T
	log       *logger.L
}

// New - create a coordinator over primary (required) and ephemeral
// (optional, may be nil) backends, submitting drain tasks to exec
func New(primary backend.Backend, ephemeral backend.Backend, exec executor.T) *Coordinator {
	c := &Coordinator{
		primary:   primary,
		ephemeral: ephemeral,
		exec:      exec,
		log:       logger.New("coordinator"),
	}
	c.cond = sync.NewCond(&c.mutex)
	return c
}

// Enqueue - add a record to the pending set and ensure a drain is
// scheduled; safe to call concurrently
func (c *Coordinator) Enqueue(r *object.Record) {
	c.mutex.Lock()
	c.pending = append(c.pending, r)
	start := !c.inFlight
	if start {
		c.inFlight = true
	}
	c.mutex.Unlock()

	if start {
		c.exec.Submit(executor.Write, drainJobName, c.drain)
	}
}

// drain - the single-flight background worker; re-checks pending under
// the lock before exiting so it never leaves a gap where enqueued work
// is stranded without an in-flight drain to pick it up
func (c *Coordinator) drain() {
	for {
		c.mutex.Lock()
		batch := c.pending
		c.pending = nil
		c.generation += 1
		c.cond.Broadcast()

		if 0 == len(batch) {
			c.inFlight = false
			c.lastBatch = 0
			c.mutex.Unlock()
			return
		}
		c.lastBatch = len(batch)
		c.mutex.Unlock()

		c.primary.PutBatch(batch)
		if nil != c.ephemeral {
			c.ephemeral.PutBatch(batch)
		}
	}
}

// WaitForWrites - block until the background drain has advanced past
// at least one generation since this call was made, or until it
// observes there was never anything pending
func (c *Coordinator) WaitForWrites() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	g := c.generation
	for c.inFlight && c.generation == g {
		c.cond.Wait()
	}
}

// GetWriteLoad - the larger of the last drained batch size and the
// current pending size; always at least the current pending size, so
// callers can use it for backpressure decisions
func (c *Coordinator) GetWriteLoad() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	load := len(c.pending)
	if c.lastBatch > load {
		load = c.lastBatch
	}
	return load
}
