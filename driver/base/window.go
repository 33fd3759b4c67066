// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import (
	"image"

	"github.com/imview/imview/events"
	"github.com/imview/imview/render"
	"github.com/imview/imview/system"
)

// DefaultSize is the window size used when no explicit size is given
// and no image has been displayed yet.
var DefaultSize = image.Point{800, 600}

// MouseState caches the cursor position and held buttons so that
// motion events carry the previous position and drivers that only
// report deltas can synthesize full events.
type MouseState struct {
	// Pos is the last reported cursor position.
	Pos image.Point

	// Prev is the cursor position before the last motion event.
	Prev image.Point

	held [4]bool
}

// Held returns whether the given button is currently held.
func (m *MouseState) Held(b events.Buttons) bool {
	if b < 0 || int(b) >= len(m.held) {
		return false
	}
	return m.held[b]
}

func (m *MouseState) setHeld(b events.Buttons, down bool) {
	if b >= 0 && int(b) < len(m.held) {
		m.held[b] = down
	}
}

// Window contains the data and logic common to all implementations of
// [system.Window]. Apart from the handful of getters documented as
// thread-safe on the interface, everything here runs on the event loop
// thread.
type Window struct {

	// App is the owning app base, for registry removal on close.
	App *App

	// This is the concrete driver window.
	This system.Window

	// Rend is the renderer owning this window's drawable surface.
	Rend render.Renderer

	// Id is the window's unique id.
	Id system.WindowID

	// Opts are the window's current display options.
	Opts *system.WindowOptions

	// Img is the currently displayed buffer, or nil.
	Img *system.Buffer

	// Mouse is the cached cursor state.
	Mouse MouseState

	// DestroyPlatform, if set, destroys the platform window on close.
	DestroyPlatform func()

	// SizeToImage, if set, resizes the window to the given pixel size
	// when the first image arrives in an auto-sized window.
	SizeToImage func(sz image.Point)

	// Listeners holds the registered per-type listener lists, with the
	// all-events listeners under the [system.AllTypes] key.
	Listeners events.Listeners

	waiters []*system.Waiter

	// guarded by App.Mu for cross-goroutine getters
	titl    string
	pixSize image.Point
	visible bool
	closed  bool

	// closing is set while Close runs so that a WinClose listener
	// closing the window again is a no-op. Event loop thread only.
	closing bool

	autoSize bool
}

// Init initializes the window base from the given (fixed-up) options.
// The caller sets This, Rend, and the platform hooks.
func (w *Window) Init(app *App, opts *system.WindowOptions) {
	w.App = app
	w.Id = app.NextID()
	w.Opts = opts.Clone()
	w.titl = opts.Title
	w.autoSize = opts.Size == (image.Point{})
	w.pixSize = opts.Size
	if w.autoSize {
		w.pixSize = DefaultSize
	}
	w.visible = !opts.StartHidden
	w.Listeners.Init()
}

func (w *Window) ID() system.WindowID            { return w.Id }
func (w *Window) Options() *system.WindowOptions { return w.Opts }
func (w *Window) Image() *system.Buffer          { return w.Img }

func (w *Window) Title() string {
	w.App.Mu.Lock()
	defer w.App.Mu.Unlock()
	return w.titl
}

func (w *Window) SetTitle(title string) {
	w.App.Mu.Lock()
	w.titl = title
	w.Opts.Title = title
	w.App.Mu.Unlock()
}

func (w *Window) Size() image.Point {
	w.App.Mu.Lock()
	defer w.App.Mu.Unlock()
	return w.pixSize
}

// SetPixSize records a new client area size and reconfigures the
// renderer. Drivers call it from their resize callbacks via a
// WinResize event.
func (w *Window) SetPixSize(sz image.Point) {
	w.App.Mu.Lock()
	w.pixSize = sz
	w.App.Mu.Unlock()
	if w.Rend != nil {
		w.Rend.SetSize(sz)
		w.Rend.Redraw()
	}
}

func (w *Window) IsVisible() bool {
	w.App.Mu.Lock()
	defer w.App.Mu.Unlock()
	return w.visible && !w.closed
}

func (w *Window) SetVisible(visible bool) {
	w.App.Mu.Lock()
	was := w.visible
	w.visible = visible
	w.App.Mu.Unlock()
	if visible && !was {
		w.This.Dispatch(events.NewWindow(events.WinShow))
	}
}

func (w *Window) IsClosed() bool {
	w.App.Mu.Lock()
	defer w.App.Mu.Unlock()
	return w.closed
}

// SetImage validates and displays the buffer. On a validation error
// the previous image stays in place and keeps being displayed.
func (w *Window) SetImage(b *system.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	w.Img = b
	if w.autoSize {
		w.autoSize = false
		if w.SizeToImage != nil {
			w.SizeToImage(b.Size())
		}
	}
	if w.Rend != nil {
		if err := w.Rend.SetImage(b); err != nil {
			return err
		}
		w.Rend.Redraw()
	}
	return nil
}

func (w *Window) SetOptions(opts *system.WindowOptions) error {
	if opts == nil {
		return nil
	}
	opts = opts.Clone()
	opts.Fixup()
	if opts.Title != w.Opts.Title {
		w.This.SetTitle(opts.Title)
	}
	w.Opts = opts
	if w.Rend != nil {
		w.Rend.SetOptions(opts)
		w.Rend.Redraw()
	}
	return nil
}

func (w *Window) AddListener(typ events.Types, fn system.ListenerFunc) {
	this := w.This
	w.Listeners.Add(typ, func(ev events.Event) {
		fn(this, ev)
	})
}

func (w *Window) AddWaiter(wt *system.Waiter) {
	w.waiters = append(w.waiters, wt)
}

// Dispatch delivers an event to this window: the mouse cache and
// window geometry are updated, listeners and waiters are notified, and
// the intrinsic close-request and save-shortcut behavior is applied.
// Listeners run first so that marking the event handled suppresses the
// intrinsic behavior.
func (w *Window) Dispatch(ev events.Event) {
	if w.closed {
		return
	}
	switch me := ev.(type) {
	case *events.MouseScroll:
		w.Mouse.Pos = me.Where
	case *events.Mouse:
		switch ev.Type() {
		case events.MouseMove:
			me.Prev = w.Mouse.Pos
			w.Mouse.Prev = w.Mouse.Pos
			w.Mouse.Pos = me.Where
		case events.MouseDown:
			w.Mouse.Pos = me.Where
			w.Mouse.setHeld(me.Button, true)
		case events.MouseUp:
			w.Mouse.Pos = me.Where
			w.Mouse.setHeld(me.Button, false)
		}
	case *events.WindowEvent:
		if ev.Type() == events.WinResize {
			w.SetPixSize(me.Size)
		}
	}
	w.deliver(ev)
	switch ev.Type() {
	case events.KeyDown:
		ke := ev.(*events.Key)
		if !ev.IsHandled() && w.Opts.SaveChord != "" && w.Img != nil &&
			ke.Chord() == w.Opts.SaveChord {
			w.This.Dispatch(events.NewSave(w.Img))
		}
	case events.WinCloseReq:
		if !ev.IsHandled() && !w.Opts.ForwardCloseRequests {
			w.This.Close()
		}
	}
}

// deliver runs the all-event listeners, then the typed listeners, then
// sweeps the wait tokens. Waiters observe the event even when a
// listener marked it handled.
func (w *Window) deliver(ev events.Event) {
	all := w.Listeners[system.AllTypes]
	for i := len(all) - 1; i >= 0; i-- {
		all[i](ev)
		if ev.IsHandled() {
			break
		}
	}
	w.Listeners.Call(ev)
	if len(w.waiters) == 0 {
		return
	}
	// A listener above may have re-entered Close or AddWaiter through a
	// directly applied command, so sweep a snapshot and rebuild the
	// slice by spent-ness instead of filtering in place.
	snap := make([]*system.Waiter, len(w.waiters))
	copy(snap, w.waiters)
	for _, wt := range snap {
		wt.Deliver(ev)
	}
	if w.closed || w.closing {
		return
	}
	live := make([]*system.Waiter, 0, len(w.waiters))
	for _, wt := range w.waiters {
		if !wt.Spent() {
			live = append(live, wt)
		}
	}
	w.waiters = live
}

// CloseReq runs the window's close policy via a WinCloseReq event:
// listener delivery first, then destruction unless the window forwards
// close requests or a listener marked the event handled.
func (w *Window) CloseReq() {
	w.This.Dispatch(events.NewWindow(events.WinCloseReq))
}

// Close destroys the window. A final WinClose event is dispatched,
// remaining waiters are shut down, the renderer and platform window
// are released, and the window leaves the app registry. Idempotent.
func (w *Window) Close() {
	if w.closed || w.closing {
		return
	}
	w.closing = true
	w.This.Dispatch(events.NewWindow(events.WinClose))
	w.App.Mu.Lock()
	w.closed = true
	w.App.Mu.Unlock()
	for _, wt := range w.waiters {
		wt.Shutdown()
	}
	w.waiters = nil
	if w.Rend != nil {
		w.Rend.Release()
		w.Rend = nil
	}
	if w.DestroyPlatform != nil {
		w.DestroyPlatform()
	}
	w.App.RemoveWindow(w.Id)
}
