// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GlfwSurface returns a WebGPU surface for the given glfw window.
func GlfwSurface(gp *GPU, w *glfw.Window) *wgpu.Surface {
	return gp.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w))
}
