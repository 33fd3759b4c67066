// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen implements a headless driver with no OS windowing
// and a software renderer, used under `go test` and on displayless
// machines. It exercises the full command, event, and waiter pipeline.
package offscreen

import (
	"image"
	"time"

	"github.com/imview/imview/driver/base"
	"github.com/imview/imview/events"
	"github.com/imview/imview/render"
	"github.com/imview/imview/system"
)

// TheApp is the single offscreen app instance.
var TheApp *App

// Init creates the offscreen app and installs it as [system.TheApp].
func Init() {
	TheApp = &App{App: base.NewApp(), wake: make(chan struct{}, 1)}
	TheApp.This = TheApp
	system.TheApp = TheApp
}

// App is the offscreen implementation of [system.App].
type App struct {
	base.App

	wake chan struct{}
}

func (a *App) Platform() system.Platforms { return system.Offscreen }

func (a *App) PlatformInit() error { return nil }

func (a *App) PlatformTerminate() {}

// SendEmptyEvent wakes the event loop; extra wakes coalesce.
func (a *App) SendEmptyEvent() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// PollEvents blocks until woken or a short timeout, standing in for
// the OS event pump.
func (a *App) PollEvents() {
	t := time.NewTimer(10 * time.Millisecond)
	defer t.Stop()
	select {
	case <-a.wake:
	case <-t.C:
	}
}

func (a *App) NewPlatformWindow(opts *system.WindowOptions) (system.Window, error) {
	w := &Window{}
	w.Init(&a.App, opts)
	w.This = w
	w.Render = render.NewSoftware(w.Size(), w.Opts)
	w.Rend = w.Render
	w.SizeToImage = func(sz image.Point) {
		w.Dispatch(events.NewResize(sz))
	}
	if !opts.StartHidden {
		w.Dispatch(events.NewWindow(events.WinShow))
	}
	return w, nil
}

// Window is the offscreen implementation of [system.Window].
type Window struct {
	base.Window

	// Render is the software renderer, exposing the composited frame
	// for inspection in tests.
	Render *render.Software
}

// Frame returns the last composited frame, or nil before any redraw.
func (w *Window) Frame() *image.RGBA {
	if w.Render == nil {
		return nil
	}
	return w.Render.Frame()
}
