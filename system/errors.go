// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import "github.com/imview/imview/base/errors"

var (
	// ErrEventLoopClosed is returned for any command issued after the
	// event loop has begun draining or has stopped. It is recoverable:
	// the caller should simply stop sending.
	ErrEventLoopClosed = errors.New("imview: event loop closed")

	// ErrWindowClosed is returned when a handle refers to a window
	// that has been destroyed. It is recoverable: the caller should
	// drop the handle.
	ErrWindowClosed = errors.New("imview: window closed")

	// ErrInvalidBuffer is returned when an image buffer's dimensions,
	// stride, or pixel data are inconsistent. The command is rejected
	// and the window's displayed image is unchanged.
	ErrInvalidBuffer = errors.New("imview: invalid image buffer")

	// ErrRendererInit is returned when the platform windowing or GPU
	// subsystem fails to initialize. It is fatal: the event loop
	// terminates and all pending and subsequent commands fail.
	ErrRendererInit = errors.New("imview: renderer initialization failed")
)
