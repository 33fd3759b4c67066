// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/imview/imview/system"
)

// Software is a [Renderer] that draws into an in-memory RGBA frame.
// It backs the offscreen driver and is fully deterministic: drawing
// the same image at the same size twice produces bit-identical frames.
type Software struct {
	opts  *system.WindowOptions
	size  image.Point
	src   *image.RGBA
	frame *image.RGBA
}

// NewSoftware returns a software renderer for the given initial size.
func NewSoftware(size image.Point, opts *system.WindowOptions) *Software {
	return &Software{opts: opts, size: size}
}

func (sw *Software) SetImage(b *system.Buffer) error {
	sw.src = ToRGBA(b)
	return nil
}

func (sw *Software) SetSize(size image.Point) {
	sw.size = size
}

func (sw *Software) SetOptions(opts *system.WindowOptions) {
	sw.opts = opts
}

func (sw *Software) Redraw() {
	if sw.size.X <= 0 || sw.size.Y <= 0 {
		return // transient: no drawable area, skip the frame
	}
	if sw.frame == nil || sw.frame.Rect.Max != sw.size {
		sw.frame = image.NewRGBA(image.Rectangle{Max: sw.size})
	}
	bg := image.NewUniform(sw.opts.Background)
	draw.Draw(sw.frame, sw.frame.Rect, bg, image.Point{}, draw.Src)
	if sw.src == nil {
		return
	}
	dst := Placement(sw.size, sw.src.Rect.Max, sw.opts.Fit, sw.opts.Scale)
	if dst.Empty() {
		return
	}
	scaler := scalerFor(sw.opts.Fit)
	scaler.Scale(sw.frame, dst, sw.src, sw.src.Rect, draw.Src, nil)
}

// scalerFor picks nearest-neighbor for pixel-exact modes and a
// bilinear approximation for continuous scaling.
func scalerFor(fit system.FitMode) draw.Scaler {
	switch fit {
	case system.Original, system.FixedScale:
		return draw.NearestNeighbor
	}
	return draw.ApproxBiLinear
}

// Frame returns the last rendered frame, or nil if nothing has been
// drawn yet. The returned image is owned by the renderer.
func (sw *Software) Frame() *image.RGBA {
	return sw.frame
}

func (sw *Software) Release() {
	sw.src = nil
	sw.frame = nil
}
