// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// objectstore-dump - inspect a KV backend's contents, the unordered-KV
// equivalent of the teacher's dumpdb tool
package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nodestore/backend/kvbackend"
)

const defaultPageSize = 20

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["help"]) > 0 || 1 != len(arguments) {
		fmt.Printf("usage: %s [--count=N] kv-backend-path\n", program)
		return
	}

	count := defaultPageSize
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err || count <= 0 {
			exitwithstatus.Message("%s: invalid --count: %q", program, options["count"][0])
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "objectstore-dump.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "info",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger initialise error: %s", program, err)
	}
	defer logger.Finalise()

	kv, err := kvbackend.New(arguments[0])
	if nil != err {
		exitwithstatus.Message("%s: failed to open backend: %s", program, err)
	}
	defer kv.Close()

	cursor := kv.NewCursor()
	total := 0
	for {
		page, err := cursor.Fetch(count)
		if nil != err {
			exitwithstatus.Message("%s: fetch failed: %s", program, err)
		}
		if 0 == len(page) {
			break
		}
		for _, r := range page {
			fmt.Printf("%s  type=%s  ledger_index=%d  payload=%d bytes\n", r.Hash, r.Type, r.LedgerIndex, len(r.Payload))
		}
		total += len(page)
		if len(page) < count {
			break
		}
	}

	fmt.Printf("%d records\n", total)
}
