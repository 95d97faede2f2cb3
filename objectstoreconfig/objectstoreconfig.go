// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package objectstoreconfig - the recognized configuration surface,
// read from a Lua configuration file the way the teacher's daemon
// configuration is read
package objectstoreconfig

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/nodestore/configuration"
	"github.com/bitmark-inc/nodestore/util"
)

// Kind - the selected backend variant
type Kind string

// recognized backend kinds, after alias resolution
const (
	KV  Kind = "KV"
	SQL Kind = "SQL"
)

// CacheConfiguration - positive cache tuning knobs
type CacheConfiguration struct {
	TargetSize int    `gluamapper:"target_size" json:"target_size"`
	TargetAge  string `gluamapper:"target_age" json:"target_age"`
}

// Configuration - the full recognized surface, §6 of the specification
// this module was distilled from
type Configuration struct {
	DataDirectory        string             `gluamapper:"data_directory" json:"data_directory"`
	Backend              string             `gluamapper:"backend" json:"backend"`
	EphemeralBackendPath string             `gluamapper:"ephemeral_backend_path" json:"ephemeral_backend_path"`
	StandaloneMode       bool               `gluamapper:"standalone_mode" json:"standalone_mode"`
	PositiveCache        CacheConfiguration `gluamapper:"positive_cache" json:"positive_cache"`
	NegativeCacheTTL     string             `gluamapper:"negative_cache_ttl" json:"negative_cache_ttl"`
}

const (
	defaultPositiveCacheSize = 4096
	defaultPositiveCacheAge  = "5m"
	defaultNegativeCacheTTL  = "120s"
)

func defaults() *Configuration {
	return &Configuration{
		Backend:        "KV",
		StandaloneMode: false,
		PositiveCache: CacheConfiguration{
			TargetSize: defaultPositiveCacheSize,
			TargetAge:  defaultPositiveCacheAge,
		},
		NegativeCacheTTL: defaultNegativeCacheTTL,
	}
}

// ParseFile - read fileName as a Lua configuration script and resolve
// it into a Configuration, applying defaults and directory rules the
// way the teacher's getConfiguration helpers do
func ParseFile(fileName string) (*Configuration, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	dataDirectory, _ := filepath.Split(fileName)

	cfg := defaults()
	cfg.DataDirectory = dataDirectory

	if err := configuration.ParseConfigurationFile(fileName, cfg); nil != err {
		return nil, err
	}

	if "" == cfg.DataDirectory || "." == cfg.DataDirectory {
		cfg.DataDirectory = dataDirectory
	}
	cfg.DataDirectory = filepath.Clean(cfg.DataDirectory)

	if "" != cfg.EphemeralBackendPath {
		cfg.EphemeralBackendPath = util.EnsureAbsolute(cfg.DataDirectory, cfg.EphemeralBackendPath)
	}

	return cfg, nil
}

// ResolveBackendName - apply the accepted backend-name aliases
// (preserved from the original rippled configuration) and validate the
// result; any other value is a fatal configuration error. Exported so
// that a caller resolving a backend name from outside a Configuration
// (a CLI flag, say) gets the same alias table rather than reimplementing
// it.
func ResolveBackendName(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "kv", "leveldb":
		return KV, nil
	case "sql", "sqlite":
		return SQL, nil
	default:
		return "", fmt.Errorf("objectstoreconfig: invalid backend: %q", name)
	}
}

// ResolveBackend - ResolveBackendName applied to this configuration's
// Backend field
func (c *Configuration) ResolveBackend() (Kind, error) {
	return ResolveBackendName(c.Backend)
}

// PrimaryBackendPath - where the primary backend lives under
// DataDirectory: a LevelDB directory for KV, a single database file for
// SQL
func (c *Configuration) PrimaryBackendPath() (string, error) {
	kind, err := c.ResolveBackend()
	if nil != err {
		return "", err
	}
	switch kind {
	case KV:
		return filepath.Join(c.DataDirectory, "objectstore.leveldb"), nil
	case SQL:
		return filepath.Join(c.DataDirectory, "objectstore.sqlite"), nil
	default:
		return "", fmt.Errorf("objectstoreconfig: unresolved backend kind: %q", kind)
	}
}

// PositiveCacheTargetAge - the parsed target-age duration, falling
// back to the default on a malformed or empty value
func (c *Configuration) PositiveCacheTargetAge() time.Duration {
	return parseDurationOrDefault(c.PositiveCache.TargetAge, defaultPositiveCacheAge)
}

// NegativeCacheTTLDuration - the parsed negative-cache TTL
func (c *Configuration) NegativeCacheTTLDuration() time.Duration {
	return parseDurationOrDefault(c.NegativeCacheTTL, defaultNegativeCacheTTL)
}

func parseDurationOrDefault(value string, fallback string) time.Duration {
	if "" == value {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if nil != err {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
