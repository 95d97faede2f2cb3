// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// objectstore-import - one-shot migration of a legacy SQL object table
// into a KV or SQL backend
package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend"
	"github.com/bitmark-inc/nodestore/backend/kvbackend"
	"github.com/bitmark-inc/nodestore/backend/sqlbackend"
	"github.com/bitmark-inc/nodestore/executor"
	"github.com/bitmark-inc/nodestore/importer"
	"github.com/bitmark-inc/nodestore/objectstoreconfig"
	"github.com/bitmark-inc/nodestore/store"
)

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "config", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "backend", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'b'},
		{Long: "destination", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "standalone", HasArg: getoptions.NO_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["help"]) > 0 || 1 != len(arguments) {
		fmt.Printf("usage: %s --config=objectstore.conf legacy-database-file\n", program)
		fmt.Printf("       %s --backend=KV|SQL --destination=path legacy-database-file\n", program)
		return
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "objectstore-import.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "info",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger initialise error: %s", program, err)
	}
	defer logger.Finalise()

	legacyPath := arguments[0]

	// --config reads the full recognized configuration surface (backend
	// kind, ephemeral backend, cache tuning) and opens a Store through
	// it, the way an operator retunes the store without recompiling;
	// otherwise fall back to the ad hoc --backend/--destination flags
	// and open the destination backend directly.
	if len(options["config"]) > 0 {
		cfg, err := objectstoreconfig.ParseFile(options["config"][0])
		if nil != err {
			exitwithstatus.Message("%s: config parse error: %s", program, err)
		}

		exec := executor.New(1)
		defer exec.Stop()

		st, err := store.NewFromConfig(cfg, exec)
		if nil != err {
			exitwithstatus.Message("%s: failed to open store from config: %s", program, err)
		}
		defer st.Close()

		count, err := st.Import(legacyPath)
		if nil != err {
			exitwithstatus.Message("%s: import failed: %s", program, err)
		}
		fmt.Printf("import complete: %d rows written\n", count)
		return
	}

	if 1 != len(options["destination"]) {
		exitwithstatus.Message("%s: --destination is required unless --config is given", program)
	}
	destinationPath := options["destination"][0]

	backendKind := "KV"
	if len(options["backend"]) > 0 {
		backendKind = options["backend"][0]
	}
	standalone := len(options["standalone"]) > 0

	kind, err := objectstoreconfig.ResolveBackendName(backendKind)
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	var dst backend.Backend
	switch kind {
	case objectstoreconfig.KV:
		dst, err = kvbackend.New(destinationPath)
	case objectstoreconfig.SQL:
		dst, err = sqlbackend.New(destinationPath, standalone)
	}
	if nil != err {
		exitwithstatus.Message("%s: failed to open destination backend: %s", program, err)
	}
	defer dst.Close()

	count, err := importer.Import(legacyPath, dst)
	if nil != err {
		exitwithstatus.Message("%s: import failed: %s", program, err)
	}

	fmt.Printf("import complete: %d rows written\n", count)
}
