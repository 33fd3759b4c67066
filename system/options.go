// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"image/color"

	"github.com/imview/imview/events/key"
)

// FitMode is the policy governing how an image buffer maps onto a
// window's client area.
type FitMode int32

const (
	// Fit scales the image to the largest size that fits the window
	// while preserving its aspect ratio, letterboxing with the
	// background color as needed. This is the default.
	Fit FitMode = iota

	// Stretch scales the image to fill the entire window,
	// ignoring its aspect ratio.
	Stretch

	// Original displays the image at its native pixel size,
	// centered in the window.
	Original

	// FixedScale displays the image at a fixed multiple of its
	// native pixel size, given by [WindowOptions.Scale], centered.
	FixedScale
)

func (f FitMode) String() string {
	switch f {
	case Fit:
		return "Fit"
	case Stretch:
		return "Stretch"
	case Original:
		return "Original"
	case FixedScale:
		return "FixedScale"
	}
	return "UnknownFitMode"
}

// WindowOptions are the display options for a window. Construct with
// [NewWindowOptions] to get the defaults; the Set* methods consume and
// return the options to allow daisy chaining.
type WindowOptions struct {
	// Title is the window title.
	Title string

	// Size is the initial size of the window client area in pixels.
	// If zero, the window is sized to the first image displayed in it
	// (or 800x600 if it is shown before any image is set).
	// This may be ignored by a window manager.
	Size image.Point

	// Resizable allows the window to be resized by the user.
	// This may be ignored by a window manager.
	Resizable bool

	// StartHidden creates the window hidden; it can be made
	// visible later with SetVisible.
	StartHidden bool

	// Fit is the policy mapping the image onto the client area.
	Fit FitMode

	// Scale is the pixel multiple used when Fit is [FixedScale].
	Scale float32

	// Background is the color of client area not covered by the image.
	Background color.RGBA

	// ForwardCloseRequests prevents the default close behavior:
	// instead of destroying the window when the user requests a close,
	// only a WinCloseReq event is delivered to listeners, which then
	// own the decision to call Close.
	ForwardCloseRequests bool

	// SaveChord is the key chord that emits a SaveReq event carrying
	// the displayed buffer. Empty disables the shortcut.
	SaveChord key.Chord
}

// NewWindowOptions returns the default options with the given title
// and initial size; width and height of 0 mean size-to-first-image.
func NewWindowOptions(title string, width, height int) *WindowOptions {
	return &WindowOptions{
		Title:      title,
		Size:       image.Point{width, height},
		Resizable:  true,
		Fit:        Fit,
		Scale:      1,
		Background: color.RGBA{A: 255},
		SaveChord:  "Control+S",
	}
}

// Fixup fills in sane values for out-of-range fields.
func (o *WindowOptions) Fixup() {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Size.X < 0 {
		o.Size.X = 0
	}
	if o.Size.Y < 0 {
		o.Size.Y = 0
	}
}

// SetTitle sets the window title.
func (o *WindowOptions) SetTitle(title string) *WindowOptions {
	o.Title = title
	return o
}

// SetSize sets the initial size of the window client area in pixels.
func (o *WindowOptions) SetSize(width, height int) *WindowOptions {
	o.Size = image.Point{width, height}
	return o
}

// SetResizable makes the window resizable or not.
func (o *WindowOptions) SetResizable(resizable bool) *WindowOptions {
	o.Resizable = resizable
	return o
}

// SetStartHidden starts the window hidden.
func (o *WindowOptions) SetStartHidden(hidden bool) *WindowOptions {
	o.StartHidden = hidden
	return o
}

// SetFit sets the fit mode.
func (o *WindowOptions) SetFit(fit FitMode) *WindowOptions {
	o.Fit = fit
	return o
}

// SetScale sets the fixed pixel scale and selects [FixedScale].
func (o *WindowOptions) SetScale(scale float32) *WindowOptions {
	o.Fit = FixedScale
	o.Scale = scale
	return o
}

// SetBackground sets the background color of the window.
func (o *WindowOptions) SetBackground(bg color.RGBA) *WindowOptions {
	o.Background = bg
	return o
}

// SetForwardCloseRequests sets whether close requests are only
// forwarded to listeners instead of destroying the window.
func (o *WindowOptions) SetForwardCloseRequests(forward bool) *WindowOptions {
	o.ForwardCloseRequests = forward
	return o
}

// SetSaveChord sets the save shortcut; empty disables it.
func (o *WindowOptions) SetSaveChord(chord key.Chord) *WindowOptions {
	o.SaveChord = chord
	return o
}

// Clone returns a copy of the options.
func (o *WindowOptions) Clone() *WindowOptions {
	no := *o
	return &no
}
