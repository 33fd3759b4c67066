// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/imview/imview/system"
)

// ToRGBA converts a validated buffer to a standard RGBA image for
// presentation. RGBA8 buffers with a minimal stride are referenced
// directly without copying; everything else is converted row by row.
func ToRGBA(b *system.Buffer) *image.RGBA {
	if b.Format == system.RGBA8 && b.Stride == 4*b.Width {
		return &image.RGBA{
			Pix:    b.Pix,
			Stride: b.Stride,
			Rect:   image.Rectangle{Max: b.Size()},
		}
	}
	rim := image.NewRGBA(image.Rectangle{Max: b.Size()})
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Stride:]
		dst := rim.Pix[y*rim.Stride : y*rim.Stride+4*b.Width]
		switch b.Format {
		case system.RGBA8:
			copy(dst, src[:4*b.Width])
		case system.RGB8:
			for x := 0; x < b.Width; x++ {
				s := src[3*x:]
				d := dst[4*x:]
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 255
			}
		case system.BGR8:
			for x := 0; x < b.Width; x++ {
				s := src[3*x:]
				d := dst[4*x:]
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 255
			}
		case system.BGRA8:
			for x := 0; x < b.Width; x++ {
				s := src[4*x:]
				d := dst[4*x:]
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			}
		case system.Gray8:
			for x := 0; x < b.Width; x++ {
				g := src[x]
				d := dst[4*x:]
				d[0], d[1], d[2], d[3] = g, g, g, 255
			}
		case system.Gray16:
			// big-endian, matching image.Gray16; high byte wins
			for x := 0; x < b.Width; x++ {
				g := src[2*x]
				d := dst[4*x:]
				d[0], d[1], d[2], d[3] = g, g, g, 255
			}
		}
	}
	return rim
}
