// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstoreconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/nodestore/objectstoreconfig"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "objectstore.conf")
	if err := os.WriteFile(path, []byte(contents), 0600); nil != err {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestParseFileDefaults(t *testing.T) {
	path := writeConfig(t, `return {}`)

	cfg, err := objectstoreconfig.ParseFile(path)
	if nil != err {
		t.Fatalf("ParseFile failed: %v", err)
	}

	kind, err := cfg.ResolveBackend()
	if nil != err {
		t.Fatalf("ResolveBackend failed: %v", err)
	}
	if objectstoreconfig.KV != kind {
		t.Errorf("expected default backend KV, got %v", kind)
	}
	if 2*time.Minute != cfg.NegativeCacheTTLDuration() {
		t.Errorf("expected default negative cache TTL of 2 minutes, got %v", cfg.NegativeCacheTTLDuration())
	}
}

func TestParseFileExplicitValues(t *testing.T) {
	path := writeConfig(t, `
return {
	backend = "sqlite",
	standalone_mode = true,
	ephemeral_backend_path = "ephemeral.leveldb",
	positive_cache = {
		target_size = 1024,
		target_age = "1m",
	},
	negative_cache_ttl = "30s",
}
`)

	cfg, err := objectstoreconfig.ParseFile(path)
	if nil != err {
		t.Fatalf("ParseFile failed: %v", err)
	}

	kind, err := cfg.ResolveBackend()
	if nil != err {
		t.Fatalf("ResolveBackend failed: %v", err)
	}
	if objectstoreconfig.SQL != kind {
		t.Errorf("expected resolved backend SQL for alias %q, got %v", "sqlite", kind)
	}
	if !cfg.StandaloneMode {
		t.Errorf("expected standalone_mode to be true")
	}
	if 1024 != cfg.PositiveCache.TargetSize {
		t.Errorf("expected positive cache target size 1024, got %d", cfg.PositiveCache.TargetSize)
	}
	if time.Minute != cfg.PositiveCacheTargetAge() {
		t.Errorf("expected positive cache target age of 1 minute, got %v", cfg.PositiveCacheTargetAge())
	}
	if 30*time.Second != cfg.NegativeCacheTTLDuration() {
		t.Errorf("expected negative cache ttl of 30s, got %v", cfg.NegativeCacheTTLDuration())
	}
	if !filepath.IsAbs(cfg.EphemeralBackendPath) {
		t.Errorf("expected ephemeral backend path to be resolved absolute, got %q", cfg.EphemeralBackendPath)
	}
}

func TestResolveBackendInvalid(t *testing.T) {
	path := writeConfig(t, `return { backend = "nope" }`)

	cfg, err := objectstoreconfig.ParseFile(path)
	if nil != err {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if _, err := cfg.ResolveBackend(); nil == err {
		t.Errorf("expected an error for an unrecognized backend name")
	}
}

func TestResolveBackendNameAliases(t *testing.T) {
	aliases := map[string]objectstoreconfig.Kind{
		"KV":      objectstoreconfig.KV,
		"kv":      objectstoreconfig.KV,
		"leveldb": objectstoreconfig.KV,
		"LevelDB": objectstoreconfig.KV,
		"SQL":     objectstoreconfig.SQL,
		"sql":     objectstoreconfig.SQL,
		"sqlite":  objectstoreconfig.SQL,
		"SQLite":  objectstoreconfig.SQL,
	}
	for name, want := range aliases {
		got, err := objectstoreconfig.ResolveBackendName(name)
		if nil != err {
			t.Errorf("ResolveBackendName(%q) failed: %v", name, err)
			continue
		}
		if want != got {
			t.Errorf("ResolveBackendName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPrimaryBackendPath(t *testing.T) {
	path := writeConfig(t, `return { backend = "sqlite" }`)

	cfg, err := objectstoreconfig.ParseFile(path)
	if nil != err {
		t.Fatalf("ParseFile failed: %v", err)
	}

	backendPath, err := cfg.PrimaryBackendPath()
	if nil != err {
		t.Fatalf("PrimaryBackendPath failed: %v", err)
	}
	if filepath.Join(cfg.DataDirectory, "objectstore.sqlite") != backendPath {
		t.Errorf("unexpected primary backend path: %q", backendPath)
	}
}
