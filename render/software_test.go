// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imview/imview/system"
)

func redBuffer(w, h int) *system.Buffer {
	b := system.NewBuffer(system.RGBA8, w, h)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
		b.Pix[i+3] = 255
	}
	return b
}

func TestSoftwareBackground(t *testing.T) {
	opts := system.NewWindowOptions("t", 10, 10)
	opts.Background = color.RGBA{B: 255, A: 255}
	sw := NewSoftware(image.Pt(10, 10), opts)
	sw.Redraw()
	fr := sw.Frame()
	require.NotNil(t, fr)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, fr.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, fr.RGBAAt(9, 9))
}

func TestSoftwareFitLetterbox(t *testing.T) {
	opts := system.NewWindowOptions("t", 100, 100)
	sw := NewSoftware(image.Pt(100, 100), opts)
	require.NoError(t, sw.SetImage(redBuffer(200, 100)))
	sw.Redraw()
	fr := sw.Frame()
	require.NotNil(t, fr)

	// image occupies the middle band; top and bottom are background
	assert.Equal(t, color.RGBA{A: 255}, fr.RGBAAt(50, 5))
	assert.Equal(t, color.RGBA{A: 255}, fr.RGBAAt(50, 95))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, fr.RGBAAt(50, 50))
}

func TestSoftwareStretch(t *testing.T) {
	opts := system.NewWindowOptions("t", 30, 40).SetFit(system.Stretch)
	sw := NewSoftware(image.Pt(30, 40), opts)
	require.NoError(t, sw.SetImage(redBuffer(7, 3)))
	sw.Redraw()
	fr := sw.Frame()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, fr.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, fr.RGBAAt(29, 39))
}

func TestSoftwareRedrawIdempotent(t *testing.T) {
	opts := system.NewWindowOptions("t", 64, 48)
	sw := NewSoftware(image.Pt(64, 48), opts)
	require.NoError(t, sw.SetImage(redBuffer(33, 17)))
	sw.Redraw()
	first := append([]byte(nil), sw.Frame().Pix...)
	sw.Redraw()
	assert.True(t, bytes.Equal(first, sw.Frame().Pix))
}

func TestSoftwareResize(t *testing.T) {
	opts := system.NewWindowOptions("t", 10, 10)
	sw := NewSoftware(image.Pt(10, 10), opts)
	sw.Redraw()
	require.Equal(t, image.Pt(10, 10), sw.Frame().Rect.Max)
	sw.SetSize(image.Pt(20, 5))
	sw.Redraw()
	assert.Equal(t, image.Pt(20, 5), sw.Frame().Rect.Max)

	// zero size skips the frame instead of failing
	sw.SetSize(image.Point{})
	sw.Redraw()
	assert.Equal(t, image.Pt(20, 5), sw.Frame().Rect.Max)
}

func TestSoftwareRelease(t *testing.T) {
	opts := system.NewWindowOptions("t", 10, 10)
	sw := NewSoftware(image.Pt(10, 10), opts)
	sw.Redraw()
	sw.Release()
	assert.Nil(t, sw.Frame())
}
