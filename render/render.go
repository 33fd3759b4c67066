// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the per-window renderer surfaces: a
// software renderer used by the offscreen driver and tests, and a
// WebGPU renderer used by the desktop driver. A renderer owns one
// drawable surface, accepts raw pixel buffers, and draws a single
// quad scaled according to the window's fit mode. Renderers have no
// threading concerns of their own: all calls are made by the event
// loop thread.
package render

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/imview/imview/system"
)

// Renderer is one drawable surface belonging to one window.
type Renderer interface {

	// SetImage uploads the given buffer as the image to display.
	// The buffer has already been validated.
	SetImage(b *system.Buffer) error

	// SetSize reconfigures the surface for a new client area size.
	// The next Redraw uses the new size.
	SetSize(size image.Point)

	// SetOptions updates the display options (fit mode, background).
	SetOptions(opts *system.WindowOptions)

	// Redraw draws the current image at the current size. Redrawing
	// the same image at the same size is idempotent. A transient
	// failure to acquire the drawable (e.g. during a resize race)
	// skips the frame; it is never surfaced to the caller.
	Redraw()

	// Release frees all surface resources.
	Release()
}

// Placement returns the destination rectangle, in window pixel
// coordinates, that the image maps onto under the given fit mode.
// The rectangle may extend outside the window for Original and
// FixedScale modes when the image is larger than the window.
func Placement(win, img image.Point, fit system.FitMode, scale float32) image.Rectangle {
	if img.X <= 0 || img.Y <= 0 || win.X <= 0 || win.Y <= 0 {
		return image.Rectangle{}
	}
	switch fit {
	case system.Stretch:
		return image.Rectangle{Max: win}
	case system.Original:
		scale = 1
		fallthrough
	case system.FixedScale:
		sz := image.Point{
			X: int(math32.Round(float32(img.X) * scale)),
			Y: int(math32.Round(float32(img.Y) * scale)),
		}
		return centered(win, sz)
	}
	// Fit: largest size preserving aspect ratio.
	rx := float32(win.X) / float32(img.X)
	ry := float32(win.Y) / float32(img.Y)
	r := math32.Min(rx, ry)
	sz := image.Point{
		X: int(math32.Round(float32(img.X) * r)),
		Y: int(math32.Round(float32(img.Y) * r)),
	}
	return centered(win, sz)
}

func centered(win, sz image.Point) image.Rectangle {
	pos := image.Point{(win.X - sz.X) / 2, (win.Y - sz.Y) / 2}
	return image.Rectangle{Min: pos, Max: pos.Add(sz)}
}
