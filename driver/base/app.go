// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package base contains the data and logic common to all drivers:
// the command queue, the event loop state machine, and the window
// base with listener and wait-token dispatch. Drivers embed [App] and
// [Window] and supply the platform-specific pieces.
package base

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/imview/imview/system"
)

// CommandQueueSize is the buffer size of the command channel.
// Senders block only when the event loop falls this far behind.
var CommandQueueSize = 64

// AppPlatform is the platform-specific surface that concrete drivers
// provide on top of [App]. All methods run on the event loop thread.
type AppPlatform interface {
	system.App

	// PlatformInit initializes the windowing and GPU subsystems.
	// An error is fatal: the loop reports it to all pending
	// acknowledgments and stops.
	PlatformInit() error

	// PlatformTerminate shuts the subsystems down after draining.
	PlatformTerminate()

	// NewPlatformWindow creates a platform window for the given
	// (already fixed-up) options.
	NewPlatformWindow(opts *system.WindowOptions) (system.Window, error)

	// PollEvents pumps OS events, blocking for at most a bounded
	// interval so queued commands are serviced with low latency
	// even absent OS activity.
	PollEvents()
}

// App contains the data and logic common to all implementations of
// [system.App]. The concrete driver embeds it and sets This.
type App struct {

	// This is the concrete driver app, for platform dispatch.
	This AppPlatform

	// Nm is the application name.
	Nm string

	// Mu protects the window registry and the mutable window fields
	// that are readable from any goroutine. It is never held while
	// dispatching events or commands.
	Mu sync.Mutex

	// Windows is the registry of live windows by id. Written only by
	// the event loop thread; read by caller goroutines to validate
	// handles.
	Windows map[system.WindowID]system.Window

	// Commands is the multi-producer single-consumer command channel.
	Commands chan *system.Command

	state     atomic.Int32
	keepAlive atomic.Bool
	lastID    atomic.Uint64
	loopGo    atomic.Uint64
	started   atomic.Bool
	done      chan struct{}

	// fatal is the platform initialization error, if any;
	// written once before the state leaves Starting.
	fatal error
}

// NewApp returns an initialized App base.
func NewApp() App {
	return App{
		Nm:       "imview",
		Windows:  map[system.WindowID]system.Window{},
		Commands: make(chan *system.Command, CommandQueueSize),
		done:     make(chan struct{}),
	}
}

func (a *App) Name() string         { return a.Nm }
func (a *App) SetName(name string)  { a.Nm = name }
func (a *App) KeepAlive() bool      { return a.keepAlive.Load() }
func (a *App) SetKeepAlive(on bool) { a.keepAlive.Store(on) }

func (a *App) State() system.States {
	return system.States(a.state.Load())
}

// Done returns the channel closed once the loop has fully stopped.
func (a *App) Done() <-chan struct{} { return a.done }

// NextID returns a new monotonic, never-reused window id.
func (a *App) NextID() system.WindowID {
	return system.WindowID(a.lastID.Add(1))
}

func (a *App) NWindows() int {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	return len(a.Windows)
}

func (a *App) WindowByID(id system.WindowID) system.Window {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	return a.Windows[id]
}

// AddWindow registers a newly created window. Event loop thread only.
func (a *App) AddWindow(w system.Window) {
	a.Mu.Lock()
	a.Windows[w.ID()] = w
	a.Mu.Unlock()
}

// RemoveWindow removes a destroyed window from the registry and stops
// the loop if it was the last one and keep-alive is unset.
// Event loop thread only.
func (a *App) RemoveWindow(id system.WindowID) {
	a.Mu.Lock()
	delete(a.Windows, id)
	n := len(a.Windows)
	a.Mu.Unlock()
	if n == 0 && !a.KeepAlive() && a.State() == system.Running {
		a.StopMain()
	}
}

// Send enqueues a command for the event loop thread. When the caller
// already is the event loop, such as a listener using a window handle,
// the command is applied directly: queuing it and waiting for the
// acknowledgment would deadlock the loop against itself.
func (a *App) Send(cmd *system.Command) error {
	if a.State() >= system.Draining {
		return system.ErrEventLoopClosed
	}
	if a.loopGo.Load() == goID() {
		a.Apply(cmd)
		return nil
	}
	select {
	case a.Commands <- cmd:
		a.This.SendEmptyEvent()
		return nil
	case <-a.done:
		return system.ErrEventLoopClosed
	}
}

// StopMain requests that the loop drain and stop. Safe from any
// goroutine; the loop notices on its next pass.
func (a *App) StopMain() {
	if a.state.CompareAndSwap(int32(system.Starting), int32(system.Draining)) ||
		a.state.CompareAndSwap(int32(system.Running), int32(system.Draining)) {
		a.This.SendEmptyEvent()
	}
}

// MainLoop initializes the platform and runs the event loop on the
// calling OS thread until the loop stops. Only the first call runs the
// loop; subsequent calls return immediately so that a redundant start
// cannot tear down the live loop.
func (a *App) MainLoop() {
	if !a.started.CompareAndSwap(false, true) {
		slog.Error("event loop already running; extra MainLoop call ignored")
		return
	}
	a.loopGo.Store(goID())
	defer func() { system.HandleRecover(recover()) }()
	if err := a.This.PlatformInit(); err != nil {
		a.fatal = fmt.Errorf("%w: %w", system.ErrRendererInit, err)
		a.state.Store(int32(system.Draining))
		a.shutdown()
		return
	}
	if !a.state.CompareAndSwap(int32(system.Starting), int32(system.Running)) {
		// StopMain raced platform init; go straight to draining
		a.shutdown()
		return
	}
	for a.State() == system.Running {
		select {
		case cmd := <-a.Commands:
			a.Apply(cmd)
		default:
			a.This.PollEvents()
		}
	}
	a.shutdown()
}

// shutdown drains the loop: remaining windows are destroyed,
// queued commands are refused, and the platform is terminated.
func (a *App) shutdown() {
	a.Mu.Lock()
	wins := make([]system.Window, 0, len(a.Windows))
	for _, w := range a.Windows {
		wins = append(wins, w)
	}
	a.Mu.Unlock()
	for _, w := range wins {
		w.Close()
	}
	a.flush(true)
	a.This.PlatformTerminate()
	a.state.Store(int32(system.Stopped))
	close(a.done)
	// catch stragglers that won the race against close(done)
	a.flush(false)
}

// flush refuses all currently queued commands. During the initial
// drain a fatal initialization error, if any, is reported to the
// pending acknowledgments; afterwards everything gets
// ErrEventLoopClosed.
func (a *App) flush(reportFatal bool) {
	err := system.ErrEventLoopClosed
	if reportFatal && a.fatal != nil {
		err = a.fatal
	}
	for {
		select {
		case cmd := <-a.Commands:
			if cmd.Waiter != nil {
				cmd.Waiter.Shutdown()
			}
			cmd.Ackf(system.Result{Err: err})
		default:
			return
		}
	}
}

// Apply applies one command to the referenced window state and
// fulfills its acknowledgment. Per-command failures are returned only
// through the acknowledgment; they never affect other windows or
// crash the loop.
func (a *App) Apply(cmd *system.Command) {
	switch cmd.Op {
	case system.NoOp:
		cmd.Ackf(system.Result{})
	case system.CreateWindow:
		opts := cmd.Options
		if opts == nil {
			opts = system.NewWindowOptions("imview", 0, 0)
		}
		opts.Fixup()
		w, err := a.This.NewPlatformWindow(opts)
		if err != nil {
			cmd.Ackf(system.Result{Err: err})
			return
		}
		a.AddWindow(w)
		cmd.Ackf(system.Result{Window: w.ID()})
	case system.Run:
		if cmd.Func != nil {
			cmd.Func()
		}
		cmd.Ackf(system.Result{})
	case system.Stop:
		cmd.Ackf(system.Result{})
		a.StopMain()
	default:
		a.applyWindow(cmd)
	}
}

func (a *App) applyWindow(cmd *system.Command) {
	w := a.WindowByID(cmd.Window)
	if w == nil || w.IsClosed() {
		if cmd.Waiter != nil {
			cmd.Waiter.Shutdown()
		}
		cmd.Ackf(system.Result{Window: cmd.Window, Err: system.ErrWindowClosed})
		return
	}
	var err error
	switch cmd.Op {
	case system.SetImage:
		err = w.SetImage(cmd.Image)
	case system.SetOptions:
		err = w.SetOptions(cmd.Options)
	case system.SetTitle:
		w.SetTitle(cmd.Title)
	case system.SetVisible:
		w.SetVisible(cmd.Visible)
	case system.Close:
		w.Close()
	case system.AddListener:
		w.AddListener(cmd.Type, cmd.Listener)
	case system.AddWaiter:
		w.AddWaiter(cmd.Waiter)
	case system.PostEvent:
		w.Dispatch(cmd.Event)
	}
	cmd.Ackf(system.Result{Window: cmd.Window, Err: err})
}
