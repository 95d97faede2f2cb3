// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package executor - the job-scheduling contract the store submits its
// background drains and load-observability events to
//
// The real executor is an external collaborator of the store (the outer
// ledger-tree process owns job scheduling); this package defines the
// contract the store depends on and a bounded worker-pool implementation
// good enough to run the store standalone.
package executor

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Category - the job class a submitted task belongs to
type Category string

// recognized categories; the coordinator submits Write jobs for the
// background drain, and the store submits an HORead event when Retrieve
// is served by the ephemeral backend and a Disk event whenever it reads
// the primary backend
const (
	Write  Category = "WRITE"
	HORead Category = "HO_READ"
	Disk   Category = "DISK"
)

// Task - a unit of work handed to the executor
type Task func()

// T - the executor contract: submit(category, name, task)
type T interface {
	Submit(category Category, name string, task Task)
	Stop()
}

// pool - a bounded worker-pool implementation of T
type pool struct {
	jobs chan job
	wg   sync.WaitGroup
	log  *logger.L
}

type job struct {
	category Category
	name     string
	task     Task
}

// New - start a worker pool with the given concurrency
func New(workers int) T {
	if workers < 1 {
		workers = 1
	}
	p := &pool{
		jobs: make(chan job, 256),
		log:  logger.New("executor"),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i += 1 {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.log.Tracef("running job: %s/%s", j.category, j.name)
		j.task()
	}
}

// Submit - enqueue a task for background execution; blocks only if the
// internal queue is full, never on the task itself
func (p *pool) Submit(category Category, name string, task Task) {
	p.jobs <- job{category: category, name: name, task: task}
}

// Stop - close the queue and wait for in-flight jobs to finish
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
