// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Format is the pixel format of a [Buffer], from a closed set.
// The core performs no format conversion on ingestion: buffers are
// carried as supplied, and converted only at presentation time by
// the renderer.
type Format int32

const (
	// RGBA8 is 8-bit red, green, blue, alpha.
	RGBA8 Format = iota

	// RGB8 is 8-bit red, green, blue, no alpha.
	RGB8

	// BGR8 is 8-bit blue, green, red, no alpha.
	BGR8

	// BGRA8 is 8-bit blue, green, red, alpha.
	BGRA8

	// Gray8 is 8-bit grayscale.
	Gray8

	// Gray16 is 16-bit big-endian grayscale, matching [image.Gray16].
	Gray16
)

func (f Format) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case RGB8:
		return "RGB8"
	case BGR8:
		return "BGR8"
	case BGRA8:
		return "BGRA8"
	case Gray8:
		return "Gray8"
	case Gray16:
		return "Gray16"
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// BytesPerPixel returns the number of bytes per pixel for the format,
// or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGBA8, BGRA8:
		return 4
	case RGB8, BGR8:
		return 3
	case Gray8:
		return 1
	case Gray16:
		return 2
	}
	return 0
}

// Buffer is a caller-supplied pixel buffer to display in a window.
// Ownership of Pix transfers to the event loop when the buffer is
// sent with SetImage; the caller must not modify it afterwards.
type Buffer struct {
	// Pix holds the pixel data, rows top to bottom.
	Pix []byte

	// Width and Height are the image dimensions in pixels.
	Width, Height int

	// Stride is the byte distance between vertically adjacent pixels.
	Stride int

	// Format is the pixel format of Pix.
	Format Format
}

// NewBuffer returns a zeroed buffer of the given format and size,
// with a minimal stride.
func NewBuffer(f Format, width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]byte, f.BytesPerPixel()*width*height),
		Width:  width,
		Height: height,
		Stride: f.BytesPerPixel() * width,
		Format: f,
	}
}

// BufferFromImage returns a buffer for the given image. For
// [image.RGBA], [image.Gray], and [image.Gray16] images, the pixel
// data is referenced directly without copying; all other image types
// are drawn into a new RGBA8 buffer.
func BufferFromImage(img image.Image) *Buffer {
	sz := img.Bounds().Size()
	switch im := img.(type) {
	case *image.RGBA:
		return &Buffer{Pix: im.Pix, Width: sz.X, Height: sz.Y, Stride: im.Stride, Format: RGBA8}
	case *image.Gray:
		return &Buffer{Pix: im.Pix, Width: sz.X, Height: sz.Y, Stride: im.Stride, Format: Gray8}
	case *image.Gray16:
		return &Buffer{Pix: im.Pix, Width: sz.X, Height: sz.Y, Stride: im.Stride, Format: Gray16}
	}
	rim := image.NewRGBA(image.Rectangle{Max: sz})
	draw.Draw(rim, rim.Bounds(), img, img.Bounds().Min, draw.Src)
	return &Buffer{Pix: rim.Pix, Width: sz.X, Height: sz.Y, Stride: rim.Stride, Format: RGBA8}
}

// Size returns the image dimensions as a point.
func (b *Buffer) Size() image.Point {
	return image.Point{b.Width, b.Height}
}

// Validate checks the buffer's dimensions, stride, format, and pixel
// slice length for consistency, returning an error wrapping
// ErrInvalidBuffer if anything is off.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	bpp := b.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: unknown format %v", ErrInvalidBuffer, b.Format)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: non-positive size %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if b.Stride < b.Width*bpp {
		return fmt.Errorf("%w: stride %d < row size %d", ErrInvalidBuffer, b.Stride, b.Width*bpp)
	}
	if need := b.Stride*(b.Height-1) + b.Width*bpp; len(b.Pix) < need {
		return fmt.Errorf("%w: pixel slice length %d < %d", ErrInvalidBuffer, len(b.Pix), need)
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	nb := *b
	nb.Pix = make([]byte, len(b.Pix))
	copy(nb.Pix, b.Pix)
	return &nb
}
