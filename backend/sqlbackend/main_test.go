// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sqlbackend_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "sqlbackend-test-log")
	if nil != err {
		panic(err)
	}
	if err := logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "test.log",
		Size:      20000,
		Count:     10,
	}); nil != err {
		panic(err)
	}

	code := m.Run()

	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(code)
}
