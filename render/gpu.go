// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package render

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/imview/imview/system"
)

// GPU holds the process-wide WebGPU handles shared by all window
// surfaces: one instance, adapter, device, and queue. It is created
// and used only on the event loop thread.
type GPU struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

// NewGPU returns a new, unconfigured GPU with a WebGPU instance.
func NewGPU() *GPU {
	return &GPU{Instance: wgpu.CreateInstance(nil)}
}

// Config requests an adapter compatible with the given surface and a
// device from it. It must be called once, with the first window's
// surface, before any [Surface] is created. A failure here is fatal
// for the event loop and is wrapped as ErrRendererInit.
func (gp *GPU) Config(surface *wgpu.Surface) error {
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: no adapter: %w", system.ErrRendererInit, err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("%w: no device: %w", system.ErrRendererInit, err)
	}
	gp.Adapter = adapter
	gp.Device = device
	gp.Queue = device.GetQueue()
	return nil
}

// Release frees the GPU handles. Call after all surfaces are released.
func (gp *GPU) Release() {
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}
