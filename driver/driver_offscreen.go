// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build offscreen

package driver

import "github.com/imview/imview/driver/offscreen"

func init() {
	offscreen.Init()
}
