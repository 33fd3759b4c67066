// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imview/imview/system"
)

func TestPlacementFit(t *testing.T) {
	// 2:1 image in a square window letterboxes vertically
	r := Placement(image.Pt(100, 100), image.Pt(200, 100), system.Fit, 1)
	assert.Equal(t, image.Rect(0, 25, 100, 75), r)

	// 1:2 image letterboxes horizontally
	r = Placement(image.Pt(100, 100), image.Pt(100, 200), system.Fit, 1)
	assert.Equal(t, image.Rect(25, 0, 75, 100), r)

	// matching aspect fills exactly
	r = Placement(image.Pt(200, 100), image.Pt(20, 10), system.Fit, 1)
	assert.Equal(t, image.Rect(0, 0, 200, 100), r)
}

func TestPlacementStretch(t *testing.T) {
	r := Placement(image.Pt(123, 45), image.Pt(10, 10), system.Stretch, 1)
	assert.Equal(t, image.Rect(0, 0, 123, 45), r)
}

func TestPlacementOriginal(t *testing.T) {
	// smaller image is centered
	r := Placement(image.Pt(100, 100), image.Pt(40, 20), system.Original, 3)
	assert.Equal(t, image.Rect(30, 40, 70, 60), r)

	// larger image extends outside the window
	r = Placement(image.Pt(100, 100), image.Pt(200, 100), system.Original, 1)
	assert.Equal(t, image.Rect(-50, 0, 150, 100), r)
}

func TestPlacementFixedScale(t *testing.T) {
	r := Placement(image.Pt(100, 100), image.Pt(10, 20), system.FixedScale, 2)
	assert.Equal(t, image.Rect(40, 30, 60, 70), r)
}

func TestPlacementDegenerate(t *testing.T) {
	assert.True(t, Placement(image.Pt(100, 100), image.Point{}, system.Fit, 1).Empty())
	assert.True(t, Placement(image.Point{}, image.Pt(10, 10), system.Fit, 1).Empty())
}
