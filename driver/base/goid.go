// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import (
	"bytes"
	"runtime"
	"strconv"
)

// goID returns the current goroutine's id, parsed from the stack trace
// header, which has the form "goroutine 42 [running]:". It is used to
// detect commands sent from the event loop thread itself, e.g., from a
// listener, which must be applied directly instead of queued.
func goID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
