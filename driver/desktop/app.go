// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

// Package desktop implements the driver for desktop platforms
// (macOS, Linux, Windows), using glfw for windowing and input and
// WebGPU for rendering.
package desktop

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/imview/imview/driver/base"
	"github.com/imview/imview/events"
	"github.com/imview/imview/render"
	"github.com/imview/imview/system"
)

func init() {
	// glfw event handling must run on the main OS thread
	runtime.LockOSThread()
}

// TheApp is the single desktop app instance.
var TheApp *App

// Init creates the desktop app and installs it as [system.TheApp].
func Init() {
	TheApp = &App{App: base.NewApp()}
	TheApp.This = TheApp
	system.TheApp = TheApp
}

// App is the desktop implementation of [system.App].
type App struct {
	base.App

	// GPU holds the shared WebGPU handles. The device is requested
	// lazily with the first window's surface, so a headless GPU
	// failure surfaces as a window creation error, not a crash.
	GPU *render.GPU
}

func (a *App) Platform() system.Platforms { return system.Desktop }

func (a *App) PlatformInit() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init failed: %w", err)
	}
	a.GPU = render.NewGPU()
	return nil
}

func (a *App) PlatformTerminate() {
	if a.GPU != nil {
		a.GPU.Release()
		a.GPU = nil
	}
	glfw.Terminate()
}

// PollEvents pumps glfw, waiting at most 10ms so queued commands are
// serviced promptly even without OS activity.
func (a *App) PollEvents() {
	glfw.WaitEventsTimeout(0.010)
}

// SendEmptyEvent wakes the event loop out of [glfw.WaitEventsTimeout].
// Safe to call from any goroutine.
func (a *App) SendEmptyEvent() {
	glfw.PostEmptyEvent()
}

func (a *App) NewPlatformWindow(opts *system.WindowOptions) (system.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	// windows start hidden and are shown after the surface is ready
	glfw.WindowHint(glfw.Visible, glfw.False)
	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}
	sz := opts.Size
	if sz == (image.Point{}) {
		sz = base.DefaultSize
	}
	glw, err := glfw.CreateWindow(sz.X, sz.Y, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", system.ErrRendererInit, err)
	}
	wsf := render.GlfwSurface(a.GPU, glw)
	if a.GPU.Device == nil {
		if err := a.GPU.Config(wsf); err != nil {
			glw.Destroy()
			return nil, err
		}
	}
	fbw, fbh := glw.GetFramebufferSize()
	sf, err := render.NewSurface(a.GPU, wsf, image.Pt(fbw, fbh), opts)
	if err != nil {
		glw.Destroy()
		return nil, err
	}
	w := &Window{Glw: glw}
	w.Init(&a.App, opts)
	w.This = w
	w.Rend = sf
	w.DestroyPlatform = func() {
		glw.Destroy()
	}
	w.SizeToImage = func(sz image.Point) {
		// the framebuffer size callback dispatches the resize event
		glw.SetSize(sz.X, sz.Y)
	}
	w.ConnectEvents()
	if !opts.StartHidden {
		glw.Show()
		w.Dispatch(events.NewWindow(events.WinShow))
	}
	return w, nil
}
