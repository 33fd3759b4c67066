// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imview

import (
	"image"

	"github.com/imview/imview/system"
)

// The core value types live in the system package; these aliases make
// the top-level API self-contained for typical use.
type (
	// Buffer is a raw pixel buffer; see [system.Buffer].
	Buffer = system.Buffer

	// Format is the pixel format of a [Buffer].
	Format = system.Format

	// WindowOptions are the display options for a window.
	WindowOptions = system.WindowOptions

	// FitMode is the image-to-window mapping policy.
	FitMode = system.FitMode
)

const (
	RGBA8  = system.RGBA8
	RGB8   = system.RGB8
	BGR8   = system.BGR8
	BGRA8  = system.BGRA8
	Gray8  = system.Gray8
	Gray16 = system.Gray16
)

const (
	Fit        = system.Fit
	Stretch    = system.Stretch
	Original   = system.Original
	FixedScale = system.FixedScale
)

var (
	// ErrEventLoopClosed is returned by operations sent after the
	// event loop has stopped.
	ErrEventLoopClosed = system.ErrEventLoopClosed

	// ErrWindowClosed is returned by operations on a destroyed window.
	ErrWindowClosed = system.ErrWindowClosed

	// ErrInvalidBuffer is returned when a buffer fails validation.
	ErrInvalidBuffer = system.ErrInvalidBuffer

	// ErrRendererInit is returned when the rendering backend cannot
	// be initialized.
	ErrRendererInit = system.ErrRendererInit
)

// NewBuffer returns a zeroed buffer of the given format and size with
// minimal stride.
func NewBuffer(f Format, width, height int) *Buffer {
	return system.NewBuffer(f, width, height)
}

// BufferFromImage converts a standard library image into a [Buffer],
// sharing pixel memory where the layouts already match.
func BufferFromImage(img image.Image) *Buffer {
	return system.BufferFromImage(img)
}

// NewWindowOptions returns the default options with the given title
// and initial size; width and height of 0 size the window to the
// first image displayed in it.
func NewWindowOptions(title string, width, height int) *WindowOptions {
	return system.NewWindowOptions(title, width, height)
}
