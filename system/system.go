// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system defines the platform-neutral contracts between the
// public imview API, which can be called from any goroutine, and the
// drivers, which own all OS window and GPU resources on a single
// event loop thread. All display state is mutated only by that thread,
// in response to [Command] values sent over the app's command channel.
package system

import (
	"log/slog"
	"runtime/debug"
)

// TheApp is the current [App]; only one is ever in effect.
// It is set by the active driver's Init function.
var TheApp App

// App is the process-wide coordinator owning the event loop thread.
// All methods are safe to call from any goroutine except [App.MainLoop],
// which must be called exactly once, on the OS thread that is to become
// the event loop thread.
type App interface {

	// Platform returns the platform type, which can be used
	// for conditionalizing behavior.
	Platform() Platforms

	// Name is the overall name of the application.
	Name() string

	// SetName sets the application name.
	SetName(name string)

	// State returns the current event loop state.
	State() States

	// NWindows returns the number of open windows.
	NWindows() int

	// WindowByID returns the window with the given id, or nil if it
	// does not exist or has been destroyed. This is a read-only lookup
	// for handle validation; all mutation goes through [App.Send].
	WindowByID(id WindowID) Window

	// Send enqueues the given command for the event loop thread,
	// waking the loop if it is blocked on OS event polling.
	// It returns ErrEventLoopClosed if the loop is draining or stopped;
	// the command's effect is otherwise reported through its Ack slot,
	// if it has one. Commands from a single goroutine are applied in
	// the order sent.
	Send(cmd *Command) error

	// KeepAlive returns whether the event loop keeps running after
	// the last window closes.
	KeepAlive() bool

	// SetKeepAlive sets whether the event loop keeps running after
	// the last window closes. The default is false: the loop drains
	// and stops when the last window is destroyed.
	SetKeepAlive(alive bool)

	// MainLoop initializes the platform and runs the event loop on the
	// calling OS thread, returning only when the loop has stopped.
	// The caller must have locked the OS thread.
	MainLoop()

	// StopMain requests that the event loop drain and stop.
	StopMain()

	// Done returns a channel that is closed once the event loop
	// has fully stopped.
	Done() <-chan struct{}

	// SendEmptyEvent pushes the event loop along when it needs to be
	// "pinged" to notice newly queued commands.
	SendEmptyEvent()
}

// Platforms are the supported driver platforms.
type Platforms int32

const (
	// Desktop is a glfw + WebGPU backed platform with real OS windows.
	Desktop Platforms = iota

	// Offscreen is a headless driver used for testing and -nogui
	// operation, rendering in software with no OS windows.
	Offscreen
)

func (p Platforms) String() string {
	switch p {
	case Desktop:
		return "Desktop"
	case Offscreen:
		return "Offscreen"
	}
	return "UnknownPlatform"
}

// States are the lifecycle states of the event loop thread.
type States int32

const (
	// Starting is the initial state, before platform and renderer
	// initialization has completed.
	Starting States = iota

	// Running is the normal operating state: OS events are pumped and
	// the command queue is drained.
	Running

	// Draining means the loop is shutting down: remaining commands
	// are flushed with ErrEventLoopClosed and windows are destroyed.
	Draining

	// Stopped is the terminal state; all subsequent commands fail
	// locally with ErrEventLoopClosed.
	Stopped
)

func (s States) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Running:
		return "Running"
	case Draining:
		return "Draining"
	case Stopped:
		return "Stopped"
	}
	return "UnknownState"
}

// HandleRecover takes the given value of recover, and, if it is not
// nil, logs the panic and a stack trace before re-panicking, so that
// crashes on the event loop thread are always reported with a usable
// trace. The intended usage is:
//
//	func (a *App) MainLoop() {
//		defer func() { system.HandleRecover(recover()) }()
//		...
//	}
func HandleRecover(r any) {
	if r == nil {
		return
	}
	slog.Error("panic on event loop thread", "panic", r, "stack", string(debug.Stack()))
	panic(r)
}
