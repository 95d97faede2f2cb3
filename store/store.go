// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - the public facade for the hashed object store
//
// Composes the positive cache, negative cache, primary backend,
// optional ephemeral backend and write coordinator described by the
// sibling packages into the four operations the outer ledger-tree
// logic actually calls: Store, Retrieve, WaitForWrites, Import, plus
// the tuning/observability hooks Tune and GetWriteLoad. New takes
// already-opened backends; NewFromConfig opens them itself from a
// parsed objectstoreconfig.Configuration.
package store

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/backend/kvbackend"
	"github.com/bitmark-inc/nodestore/backend/sqlbackend"
	"github.com/bitmark-inc/nodestore/coordinator"
	"github.com/bitmark-inc/nodestore/executor"
	"github.com/bitmark-inc/nodestore/fault"
	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/importer"
	"github.com/bitmark-inc/nodestore/negcache"
	"github.com/bitmark-inc/nodestore/object"
	"github.com/bitmark-inc/nodestore/objectstoreconfig"
	"github.com/bitmark-inc/nodestore/poscache"
)

// DigestFunc - the external H(bytes) -> 256 bit digest collaborator
type DigestFunc func([]byte) hash.Digest

// Config - construction parameters for a Store
type Config struct {
	Primary   backend.Backend // required for persistence; nil means Store is a no-op success
	Ephemeral backend.Backend // optional secondary, may be nil
	Executor  executor.T

	Digest   DigestFunc // required if Paranoid is true
	Paranoid bool       // debug assertion: H(data) == hash on every Store call

	PositiveCacheSize int
	PositiveCacheAge  time.Duration
	NegativeCacheTTL  time.Duration
}

// Store - the object store facade
type Store struct {
	pos *poscache.Cache
	neg *negcache.Cache

	primary   backend.Backend
	ephemeral backend.Backend
	coord     *coordinator.Coordinator
	exec      executor.T

	digest   DigestFunc
	paranoid bool

	log *logger.L
}

// New - build a Store from cfg
func New(cfg Config) *Store {
	if cfg.Paranoid && nil == cfg.Digest {
		logger.Panic("store: paranoid mode requires a Digest function")
	}

	s := &Store{
		pos:       poscache.New(cfg.PositiveCacheSize, cfg.PositiveCacheAge),
		neg:       negcache.New(cfg.NegativeCacheTTL),
		primary:   cfg.Primary,
		ephemeral: cfg.Ephemeral,
		exec:      cfg.Executor,
		digest:    cfg.Digest,
		paranoid:  cfg.Paranoid,
		log:       logger.New("store"),
	}

	if nil != cfg.Primary {
		s.coord = coordinator.New(cfg.Primary, cfg.Ephemeral, cfg.Executor)
	}

	return s
}

// NewFromConfig - build a Store by opening whichever backends a parsed
// Lua configuration names, the path an operator uses to tune the store
// (backend kind, cache sizes and TTLs) without recompiling
func NewFromConfig(cfg *objectstoreconfig.Configuration, exec executor.T) (*Store, error) {
	kind, err := cfg.ResolveBackend()
	if nil != err {
		return nil, err
	}

	primaryPath, err := cfg.PrimaryBackendPath()
	if nil != err {
		return nil, err
	}

	var primary backend.Backend
	switch kind {
	case objectstoreconfig.KV:
		primary, err = kvbackend.New(primaryPath)
	case objectstoreconfig.SQL:
		primary, err = sqlbackend.New(primaryPath, cfg.StandaloneMode)
	default:
		err = fmt.Errorf("store: unresolved backend kind: %q", kind)
	}
	if nil != err {
		return nil, err
	}

	var ephemeral backend.Backend
	if "" != cfg.EphemeralBackendPath {
		ephemeral, err = kvbackend.New(cfg.EphemeralBackendPath)
		if nil != err {
			primary.Close()
			return nil, err
		}
	}

	return New(Config{
		Primary:           primary,
		Ephemeral:         ephemeral,
		Executor:          exec,
		PositiveCacheSize: cfg.PositiveCache.TargetSize,
		PositiveCacheAge:  cfg.PositiveCacheTargetAge(),
		NegativeCacheTTL:  cfg.NegativeCacheTTLDuration(),
	}), nil
}

// Store - admit (type, index, data, hash) into the store
//
// returns false iff the object was already present in the positive
// cache (fast duplicate); true otherwise, including when it was newly
// queued for disk.
func (s *Store) Store(t object.Type, index uint32, data []byte, h hash.Digest) bool {
	if nil == s.primary {
		return true
	}

	if s.pos.Touch(h) {
		return false
	}

	if s.paranoid {
		if computed := s.digest(data); computed != h {
			logger.Panicf("store: digest mismatch for hash %s: computed %s", h, computed)
		}
	}

	candidate := object.New(t, index, data, h)
	winner, won := s.pos.Canonicalize(h, candidate)
	if won {
		s.coord.Enqueue(winner)
	}

	s.neg.Del(h)
	return true
}

// Retrieve - look up a record by hash, consulting caches before either
// backend, per the positive-cache / negative-cache / ephemeral /
// primary order described in §4.7
func (s *Store) Retrieve(h hash.Digest) (*object.Record, bool) {
	if r, ok := s.pos.Fetch(h); ok {
		return r, true
	}

	if s.neg.IsPresent(h) {
		return nil, false
	}

	if nil != s.ephemeral {
		if r, ok := s.ephemeral.Get(h); ok {
			canonical, _ := s.pos.Canonicalize(h, r)
			s.recordLoadEvent(executor.HORead, h)
			return canonical, true
		}
	}

	if nil == s.primary {
		return nil, false
	}

	s.recordLoadEvent(executor.Disk, h)
	r, ok := s.primary.Get(h)
	if !ok {
		s.neg.Add(h)
		return nil, false
	}

	canonical, _ := s.pos.Canonicalize(h, r)

	if nil != s.ephemeral {
		s.ephemeral.Put(r)
	}

	return canonical, true
}

// recordLoadEvent - submit a retrieval-load observability event through
// the executor, the way the coordinator submits write jobs; a nil
// executor (no Config.Executor supplied) just traces inline
func (s *Store) recordLoadEvent(category executor.Category, h hash.Digest) {
	if nil == s.exec {
		s.log.Tracef("%s load: %s", category, h)
		return
	}
	s.exec.Submit(category, h.String(), func() {
		s.log.Tracef("%s load: %s", category, h)
	})
}

// WaitForWrites - block until the background drain has advanced
func (s *Store) WaitForWrites() {
	if nil == s.coord {
		return
	}
	s.coord.WaitForWrites()
}

// Tune - runtime reconfiguration of the positive cache's eviction targets
func (s *Store) Tune(size int, age time.Duration) {
	s.pos.SetTargetSize(size)
	s.pos.SetTargetAge(age)
}

// GetWriteLoad - the larger of the last drained batch size and the
// current pending size
func (s *Store) GetWriteLoad() int {
	if nil == s.coord {
		return 0
	}
	return s.coord.GetWriteLoad()
}

// Import - one-shot migration from a legacy SQL source into the
// primary backend, bypassing the cache and coordinator entirely
func (s *Store) Import(path string) (int, error) {
	if nil == s.primary {
		return 0, fault.ErrNilBackend
	}
	return importer.Import(path, s.primary)
}

// Close - release the underlying backend handles; only meaningful for a
// Store whose backends this package opened itself (see NewFromConfig)
func (s *Store) Close() error {
	var err error
	if nil != s.ephemeral {
		err = s.ephemeral.Close()
	}
	if nil != s.primary {
		if primaryErr := s.primary.Close(); nil != primaryErr {
			err = primaryErr
		}
	}
	return err
}
