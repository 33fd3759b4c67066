// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"

	"github.com/imview/imview/events"
)

// WindowID is an opaque unique token naming a window. IDs are
// generated monotonically, never reused, and remain valid for the
// life of the window they name.
type WindowID uint64

// Window is the driver-side window owned by the event loop thread.
// Only ID, Title, Size, IsVisible, and IsClosed are safe to call from
// other goroutines; everything else must run on the event loop thread
// (reachable from any goroutine via Run commands).
type Window interface {

	// ID returns the window's unique id.
	ID() WindowID

	// Title returns the current window title.
	Title() string

	// SetTitle sets the window title.
	SetTitle(title string)

	// Size returns the current client area size in pixels.
	Size() image.Point

	// IsVisible returns whether the window is currently visible.
	IsVisible() bool

	// SetVisible shows or hides the window.
	SetVisible(visible bool)

	// IsClosed returns whether the window has been destroyed.
	IsClosed() bool

	// Options returns the window's current display options.
	Options() *WindowOptions

	// SetOptions replaces the window's display options and redraws.
	SetOptions(opts *WindowOptions) error

	// Image returns the currently displayed buffer, or nil.
	Image() *Buffer

	// SetImage validates and displays the given buffer, leaving the
	// previous image in place on a validation error.
	SetImage(b *Buffer) error

	// AddListener registers a listener for the given event type,
	// or for all events with [AllTypes].
	AddListener(typ events.Types, fn ListenerFunc)

	// AddWaiter registers a one-shot wait token consulted on every
	// subsequently dispatched event.
	AddWaiter(w *Waiter)

	// Dispatch delivers an event to this window's listeners and
	// waiters, applying intrinsic behavior (close policy, save
	// shortcut) first.
	Dispatch(ev events.Event)

	// CloseReq runs the window's close policy: destroy by default, or
	// only forward a WinCloseReq event if ForwardCloseRequests is set.
	CloseReq()

	// Close destroys the window: the renderer is released, a WinClose
	// event is dispatched, remaining waiters are shut down, and the
	// window is removed from the app registry.
	Close()
}
