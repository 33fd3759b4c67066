// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imview

import (
	"image"
	"time"

	"github.com/imview/imview/events"
	"github.com/imview/imview/system"
)

// Window is a thread-safe handle to a window owned by the event loop.
// Handles are cheap values; all methods marshal through the command
// queue and may be called from any goroutine. A handle stays valid
// after its window closes: operations then return [ErrWindowClosed].
type Window struct {
	ctx *Context
	id  system.WindowID
}

// ID returns the window's unique id.
func (w *Window) ID() system.WindowID { return w.id }

// SetImage displays the given buffer, taking ownership of it, and
// waits until it is on screen. On a validation error the previously
// displayed image stays in place.
func (w *Window) SetImage(b *Buffer) error {
	_, err := w.ctx.send(&system.Command{Op: system.SetImage, Window: w.id, Image: b})
	return err
}

// SetImageAsync enqueues the given buffer for display without waiting.
// Validation errors are not reported; use [Window.SetImage] for that.
func (w *Window) SetImageAsync(b *Buffer) error {
	return w.ctx.post(&system.Command{Op: system.SetImage, Window: w.id, Image: b})
}

// Show displays a standard library image, converting it as needed.
func (w *Window) Show(img image.Image) error {
	return w.SetImage(BufferFromImage(img))
}

// Image returns the currently displayed buffer, or nil. The returned
// buffer is owned by the event loop; treat it as read-only.
func (w *Window) Image() (*Buffer, error) {
	var b *Buffer
	err := w.onLoop(func(dw system.Window) {
		b = dw.Image()
	})
	return b, err
}

// SetOptions replaces the window's display options and redraws.
func (w *Window) SetOptions(opts *WindowOptions) error {
	_, err := w.ctx.send(&system.Command{Op: system.SetOptions, Window: w.id, Options: opts})
	return err
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) error {
	_, err := w.ctx.send(&system.Command{Op: system.SetTitle, Window: w.id, Title: title})
	return err
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) error {
	_, err := w.ctx.send(&system.Command{Op: system.SetVisible, Window: w.id, Visible: visible})
	return err
}

// Close destroys the window. Idempotent; closing an already-closed
// window returns [ErrWindowClosed].
func (w *Window) Close() error {
	_, err := w.ctx.send(&system.Command{Op: system.Close, Window: w.id})
	return err
}

// IsClosed returns whether the window has been destroyed.
func (w *Window) IsClosed() bool {
	dw := w.ctx.app.WindowByID(w.id)
	return dw == nil || dw.IsClosed()
}

// Title returns the current window title, or "" if the window is gone.
func (w *Window) Title() string {
	if dw := w.ctx.app.WindowByID(w.id); dw != nil {
		return dw.Title()
	}
	return ""
}

// Size returns the window client area size in pixels.
func (w *Window) Size() image.Point {
	if dw := w.ctx.app.WindowByID(w.id); dw != nil {
		return dw.Size()
	}
	return image.Point{}
}

// IsVisible returns whether the window is currently visible.
func (w *Window) IsVisible() bool {
	if dw := w.ctx.app.WindowByID(w.id); dw != nil {
		return dw.IsVisible()
	}
	return false
}

// On registers fn for events of the given type on this window. fn runs
// synchronously on the event loop thread and must not block; marking
// the event handled suppresses the window's default behavior for it
// (e.g. destruction on a close request).
func (w *Window) On(typ events.Types, fn func(ev events.Event)) error {
	_, err := w.ctx.send(&system.Command{
		Op:     system.AddListener,
		Window: w.id,
		Type:   typ,
		Listener: func(_ system.Window, ev events.Event) {
			fn(ev)
		},
	})
	return err
}

// OnAny registers fn for every event on this window.
func (w *Window) OnAny(fn func(ev events.Event)) error {
	return w.On(system.AllTypes, fn)
}

// PostEvent dispatches ev on the window as if it came from the OS and
// waits until all listeners have run.
func (w *Window) PostEvent(ev events.Event) error {
	_, err := w.ctx.send(&system.Command{Op: system.PostEvent, Window: w.id, Event: ev})
	return err
}

// Wait blocks until an event matching the predicate is dispatched on
// this window, returning it. One event satisfies every waiter matching
// it, however many goroutines are waiting.
//
// A timeout of 0 or less waits forever. On timeout Wait returns
// (nil, nil). If the window is destroyed while waiting it returns
// [ErrWindowClosed], or [ErrEventLoopClosed] if the whole loop
// stopped.
func (w *Window) Wait(match func(ev events.Event) bool, timeout time.Duration) (events.Event, error) {
	wt := system.NewWaiter(match)
	if _, err := w.ctx.send(&system.Command{Op: system.AddWaiter, Window: w.id, Waiter: wt}); err != nil {
		return nil, err
	}
	var timeC <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timeC = t.C
	}
	select {
	case ev, ok := <-wt.C:
		if !ok {
			return nil, w.shutdownErr()
		}
		return ev, nil
	case <-timeC:
		if wt.Cancel() {
			return nil, nil
		}
		// an event or shutdown won the race; take the outcome
		ev, ok := <-wt.C
		if !ok {
			return nil, w.shutdownErr()
		}
		return ev, nil
	}
}

// shutdownErr distinguishes a single destroyed window from a stopped
// event loop after a waiter channel was closed.
func (w *Window) shutdownErr() error {
	if w.ctx.app.State() >= system.Draining {
		return system.ErrEventLoopClosed
	}
	return system.ErrWindowClosed
}

// WaitKey blocks until a key is pressed in this window and returns the
// key event. Timeout semantics are those of [Window.Wait]; on timeout
// it returns (nil, nil).
func (w *Window) WaitKey(timeout time.Duration) (*events.Key, error) {
	ev, err := w.Wait(func(ev events.Event) bool {
		return ev.Type() == events.KeyDown
	}, timeout)
	if ev == nil || err != nil {
		return nil, err
	}
	return ev.(*events.Key), nil
}

// WaitClose blocks until the window is destroyed, returning whether
// that happened within the timeout (0 or less waits forever).
func (w *Window) WaitClose(timeout time.Duration) bool {
	ev, err := w.Wait(func(ev events.Event) bool {
		return ev.Type() == events.WinClose
	}, timeout)
	// any error here means the window (or the whole loop) is gone
	return ev != nil || err != nil
}

// onLoop runs f on the event loop thread with the driver-side window,
// returning ErrWindowClosed if it is gone.
func (w *Window) onLoop(f func(dw system.Window)) error {
	err := w.ctx.RunOnLoop(func() {
		dw := w.ctx.app.WindowByID(w.id)
		if dw == nil || dw.IsClosed() {
			return
		}
		f(dw)
	})
	if err != nil {
		return err
	}
	if w.IsClosed() {
		return system.ErrWindowClosed
	}
	return nil
}
