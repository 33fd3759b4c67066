// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/imview/imview/driver/base"
)

// Window is the desktop implementation of [system.Window],
// wrapping a glfw window.
type Window struct {
	base.Window

	// Glw is the underlying glfw window.
	Glw *glfw.Window
}

func (w *Window) SetTitle(title string) {
	w.Window.SetTitle(title)
	if w.Glw != nil {
		w.Glw.SetTitle(title)
	}
}

func (w *Window) SetVisible(visible bool) {
	if w.Glw != nil {
		if visible {
			w.Glw.Show()
		} else {
			w.Glw.Hide()
		}
	}
	w.Window.SetVisible(visible)
}
