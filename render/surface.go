// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package render

import (
	_ "embed"
	"image"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/imview/imview/base/errors"
	"github.com/imview/imview/system"
)

//go:embed image.wgsl
var imageShader string

// uniforms is the GPU-side quad transform, std140-compatible.
type uniforms struct {
	Scale  [2]float32
	Offset [2]float32
}

// Surface is the WebGPU [Renderer] for one desktop window. It owns
// the window's surface configuration, the textured-quad pipeline, and
// the current image texture. Event loop thread only.
type Surface struct {
	gp      *GPU
	surface *wgpu.Surface
	format  wgpu.TextureFormat

	pipeline  *wgpu.RenderPipeline
	bindLay   *wgpu.BindGroupLayout
	sampler   *wgpu.Sampler
	uniformB  *wgpu.Buffer
	bindGroup *wgpu.BindGroup

	texture *wgpu.Texture
	texView *wgpu.TextureView
	imgSize image.Point

	size        image.Point
	opts        *system.WindowOptions
	needsConfig bool
}

// NewSurface returns a surface renderer drawing to the given WebGPU
// surface, building the quad pipeline on the shared device.
func NewSurface(gp *GPU, sf *wgpu.Surface, size image.Point, opts *system.WindowOptions) (*Surface, error) {
	s := &Surface{gp: gp, surface: sf, size: size, opts: opts, needsConfig: true}
	if err := s.initPipeline(); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *Surface) initPipeline() error {
	dev := s.gp.Device
	caps := s.surface.GetCapabilities(s.gp.Adapter)
	s.format = caps.Formats[0]

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "imview-image",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: imageShader},
	})
	if err != nil {
		return err
	}
	defer shader.Release()

	s.bindLay, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "imview-image",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	playout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{s.bindLay},
	})
	if err != nil {
		return err
	}
	defer playout.Release()

	s.pipeline, err = dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "imview-image",
		Layout: playout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    s.format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return err
	}

	s.sampler, err = dev.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	})
	if err != nil {
		return err
	}

	s.uniformB, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "imview-uniforms",
		Size:  uint64(unsafe.Sizeof(uniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	return err
}

// configure (re)configures the swapchain for the current size.
func (s *Surface) configure() {
	s.surface.Configure(s.gp.Adapter, s.gp.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       uint32(s.size.X),
		Height:      uint32(s.size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   wgpu.CompositeAlphaModeAuto,
	})
	s.needsConfig = false
}

func (s *Surface) SetSize(size image.Point) {
	if size == s.size && !s.needsConfig {
		return
	}
	s.size = size
	s.needsConfig = true
}

func (s *Surface) SetOptions(opts *system.WindowOptions) {
	s.opts = opts
}

// SetImage uploads the buffer as an RGBA texture and rebuilds the
// bind group around it.
func (s *Surface) SetImage(b *system.Buffer) error {
	rim := ToRGBA(b)
	sz := rim.Rect.Size()
	dev := s.gp.Device

	tex, err := dev.CreateTexture(&wgpu.TextureDescriptor{
		Label: "imview-image",
		Size: wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return err
	}
	s.gp.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
		},
		rim.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(rim.Stride),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}

	bg, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: s.bindLay,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: s.uniformB, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: view},
			{Binding: 2, Sampler: s.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	s.releaseImage()
	s.texture, s.texView, s.bindGroup = tex, view, bg
	s.imgSize = sz
	return nil
}

// Redraw draws the current image. Failure to acquire the drawable is
// transient (typical during resize races): the frame is skipped and
// the surface reconfigured for the next attempt.
func (s *Surface) Redraw() {
	if s.size.X <= 0 || s.size.Y <= 0 {
		return
	}
	if s.needsConfig {
		s.configure()
	}
	frame, err := s.surface.GetCurrentTexture()
	if err != nil {
		s.needsConfig = true
		return
	}
	defer frame.Release()
	view, err := frame.CreateView(nil)
	if err != nil {
		return
	}
	defer view.Release()

	encoder, err := s.gp.Device.CreateCommandEncoder(nil)
	if err != nil {
		errors.Log(err)
		return
	}
	defer encoder.Release()

	bg := s.opts.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: float64(bg.R) / 255,
				G: float64(bg.G) / 255,
				B: float64(bg.B) / 255,
				A: float64(bg.A) / 255,
			},
		}},
	})
	if s.bindGroup != nil {
		u := s.quadUniforms()
		s.gp.Queue.WriteBuffer(s.uniformB, 0, wgpu.ToBytes([]uniforms{u}))
		pass.SetPipeline(s.pipeline)
		pass.SetBindGroup(0, s.bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
	}
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		errors.Log(err)
		return
	}
	s.gp.Queue.Submit(cmd)
	s.surface.Present()
}

// quadUniforms converts the fit-mode placement rectangle to a clip
// space scale and offset.
func (s *Surface) quadUniforms() uniforms {
	dst := Placement(s.size, s.imgSize, s.opts.Fit, s.opts.Scale)
	w := float32(s.size.X)
	h := float32(s.size.Y)
	sx := float32(dst.Dx()) / w
	sy := float32(dst.Dy()) / h
	cx := float32(dst.Min.X+dst.Max.X) / 2
	cy := float32(dst.Min.Y+dst.Max.Y) / 2
	return uniforms{
		Scale:  [2]float32{sx, sy},
		Offset: [2]float32{2*cx/w - 1, 1 - 2*cy/h},
	}
}

func (s *Surface) releaseImage() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.bindGroup = nil
	}
	if s.texView != nil {
		s.texView.Release()
		s.texView = nil
	}
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
}

func (s *Surface) Release() {
	s.releaseImage()
	if s.uniformB != nil {
		s.uniformB.Release()
		s.uniformB = nil
	}
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
	if s.pipeline != nil {
		s.pipeline.Release()
		s.pipeline = nil
	}
	if s.bindLay != nil {
		s.bindLay.Release()
		s.bindLay = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}
