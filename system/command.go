// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"sync/atomic"

	"github.com/imview/imview/events"
)

// Ops is the operation requested by a [Command].
type Ops int32

const (
	// NoOp does nothing; it still fulfills its Ack, which makes it
	// usable as a loop round-trip barrier.
	NoOp Ops = iota

	// CreateWindow creates a new window from Options and acknowledges
	// with its WindowID.
	CreateWindow

	// SetImage displays Image in the window.
	SetImage

	// SetOptions replaces the window's display options.
	SetOptions

	// SetTitle sets the window title.
	SetTitle

	// SetVisible shows or hides the window.
	SetVisible

	// Close destroys the window.
	Close

	// AddListener registers Listener for events of the given Type
	// (or all events with [events.AllTypes]).
	AddListener

	// AddWaiter registers Waiter to be satisfied by the next
	// matching event.
	AddWaiter

	// PostEvent dispatches Event on the window as if it came from
	// the OS.
	PostEvent

	// Run calls Func on the event loop thread.
	Run

	// Stop requests that the event loop drain and stop.
	Stop
)

// AllTypes registers a listener for every event type.
const AllTypes events.Types = -1

// ListenerFunc is an event listener callback. It is invoked
// synchronously on the event loop thread with the originating window;
// it must not block or perform long-running work.
type ListenerFunc func(win Window, ev events.Event)

// Result is the acknowledgment value for a processed [Command].
type Result struct {
	// Window is the id of the created window, for CreateWindow.
	Window WindowID

	// Err is the error from applying the command, if any.
	Err error
}

// Command is an immutable request sent from any goroutine to the
// event loop thread. Exactly the fields needed by Op are set.
type Command struct {
	// Op selects the operation.
	Op Ops

	// Window is the target window for all per-window operations.
	Window WindowID

	// Image is the buffer for SetImage.
	Image *Buffer

	// Options is the options value for CreateWindow and SetOptions.
	Options *WindowOptions

	// Title is the title for SetTitle.
	Title string

	// Visible is the visibility for SetVisible.
	Visible bool

	// Listener is the callback for AddListener.
	Listener ListenerFunc

	// Type is the event type filter for AddListener.
	Type events.Types

	// Waiter is the wait token for AddWaiter.
	Waiter *Waiter

	// Event is the event for PostEvent.
	Event events.Event

	// Func is the callback for Run.
	Func func()

	// Ack, if non-nil, receives exactly one [Result] after the
	// command's effect has been applied (or refused). It must be
	// buffered; fire-and-forget senders leave it nil.
	Ack chan Result
}

// NeedsWindow returns whether the command targets a specific window.
func (c *Command) NeedsWindow() bool {
	return c.Op >= SetImage && c.Op <= PostEvent
}

// Ackf fulfills the command's acknowledgment slot, if present,
// with the given result.
func (c *Command) Ackf(res Result) {
	if c.Ack != nil {
		c.Ack <- res
	}
}

// Waiter is a one-shot wait token pairing an event predicate with a
// channel the issuing goroutine blocks on. The event loop thread only
// ever signals waiters; it never blocks on them. A waiter is spent
// after the first matching event, after its window is destroyed
// (channel closed without a value), or after Cancel.
type Waiter struct {
	// Match reports whether the event satisfies the waiter.
	// It is called on the event loop thread.
	Match func(ev events.Event) bool

	// C receives the matching event. It is closed without a value if
	// the window is destroyed or the event loop stops first.
	C chan events.Event

	spent atomic.Bool
}

// NewWaiter returns a waiter with the given predicate.
func NewWaiter(match func(ev events.Event) bool) *Waiter {
	return &Waiter{Match: match, C: make(chan events.Event, 1)}
}

// Deliver sends the event to the waiter if it matches and the waiter
// is not already spent, returning whether the waiter is now spent and
// should be removed. Event loop thread only.
func (w *Waiter) Deliver(ev events.Event) bool {
	if w.spent.Load() {
		return true
	}
	if w.Match != nil && !w.Match(ev) {
		return false
	}
	if w.spent.CompareAndSwap(false, true) {
		w.C <- ev
	}
	return true
}

// Shutdown closes the waiter's channel without a value, indicating
// that the window was destroyed or the loop stopped.
// Event loop thread only.
func (w *Waiter) Shutdown() {
	if w.spent.CompareAndSwap(false, true) {
		close(w.C)
	}
}

// Spent reports whether the waiter has already been satisfied,
// shut down, or canceled.
func (w *Waiter) Spent() bool {
	return w.spent.Load()
}

// Cancel marks the waiter spent from the waiting side (on timeout).
// It returns false if an event won the race and was already delivered
// or the channel was closed, in which case the caller should still
// receive from C to observe the outcome.
func (w *Waiter) Cancel() bool {
	return w.spent.CompareAndSwap(false, true)
}
