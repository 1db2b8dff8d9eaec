// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages various elements needed for rendering: the render
// pass with its clear values, the optional multisample buffer that
// resolves into the frame texture, and the optional depth buffer.
type Render struct {
	// Format has the target size and pixel format.
	Format TextureFormat

	// ClearColor is the color to clear to when starting a new render.
	ClearColor color.Color

	// ClearDepth is the depth value to clear to.
	ClearDepth float32

	// HasDepth is whether a depth buffer is configured.
	HasDepth bool

	// multi is the multisample buffer, when Format.Samples > 1.
	multi Texture

	// depth is the depth buffer, when HasDepth.
	depth Texture

	device Device
}

// Config configures the render elements for the given target format
// and depth buffer type (UndefinedType for no depth buffer).
func (rd *Render) Config(dev *Device, fmt *TextureFormat, depthType Types) {
	rd.device = *dev
	rd.Format = *fmt
	rd.ClearColor = color.Black
	rd.ClearDepth = 1
	rd.HasDepth = depthType != UndefinedType
	if rd.Format.Samples > 1 {
		rd.multi.ConfigMultisample(dev, &rd.Format)
	}
	if rd.HasDepth {
		rd.depth.ConfigDepth(dev, depthType, &rd.Format)
	}
}

// SetSize sets the size of the render target, reconfiguring the
// multisample and depth buffers as needed.
func (rd *Render) SetSize(size image.Point) {
	if rd.Format.Size == size {
		return
	}
	rd.Format.Size = size
	if rd.Format.Samples > 1 {
		rd.multi.ConfigMultisample(&rd.device, &rd.Format)
	}
	if rd.HasDepth {
		rd.depth.ConfigDepth(&rd.device, Depth32, &rd.Format)
	}
}

// clearValue returns the render pass clear color.
func (rd *Render) clearValue() wgpu.Color {
	r, g, b, a := rd.ClearColor.RGBA()
	return wgpu.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}

// BeginRenderPass begins the render pass on the given command
// encoder, rendering into the given frame texture view, clearing it
// first.  The multisample buffer, if configured, is the attachment
// and the frame view its resolve target.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	ca := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: rd.clearValue(),
	}
	if rd.Format.Samples > 1 {
		ca.View = rd.multi.View()
		ca.ResolveTarget = view
	}
	desc := &wgpu.RenderPassDescriptor{
		Label:            "Render",
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
	}
	if rd.HasDepth {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            rd.depth.View(),
			DepthClearValue: rd.ClearDepth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		}
	}
	return cmd.BeginRenderPass(desc)
}

// Release releases the buffers.
func (rd *Render) Release() {
	rd.multi.Release()
	rd.depth.Release()
}
