// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

// Package driver installs the appropriate display driver for the
// current environment as [system.TheApp]: the offscreen driver under
// `go test` or when IMVIEW_OFFSCREEN is set, the desktop driver
// otherwise. Building with the offscreen tag forces the offscreen
// driver and drops the cgo windowing dependencies entirely.
package driver

import (
	"os"
	"testing"

	"github.com/imview/imview/driver/desktop"
	"github.com/imview/imview/driver/offscreen"
)

func init() {
	if testing.Testing() || os.Getenv("IMVIEW_OFFSCREEN") != "" {
		offscreen.Init()
	} else {
		desktop.Init()
	}
}
