// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the interface for render targets: here only
// [RenderTexture], as window surfaces are out of scope.
type Renderer interface {
	// Render returns the Render object for this render target.
	Render() *Render

	// Device returns the device this target renders on.
	Device() *Device

	// GetCurrentTexture returns the texture view to render into.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// SetSize sets the render target size.
	SetSize(size image.Point)

	// Release releases the target resources.
	Release()
}

// RenderTexture is an offscreen, non-window-backed rendering target.
type RenderTexture struct {
	// Format has the current image format and dimensions.
	Format TextureFormat

	// Frame is the color texture rendered into, with a CPU read
	// buffer for grabbing the output.
	Frame *Texture

	render Render

	// device, which we do NOT own.
	device Device

	// GPU, for convenience.
	GPU *GPU
}

// NewRenderTexture returns a new offscreen render target for the
// given GPU and device.  samples is the multisampling count: 1 = none,
// 4 = standard smoothing.  depthFmt is the depth buffer format: use
// UndefinedType for none, Depth32 recommended.
func NewRenderTexture(gp *GPU, dev *Device, size image.Point, samples int, depthFmt Types) *RenderTexture {
	rt := &RenderTexture{GPU: gp, device: *dev}
	rt.Format.Defaults()
	rt.Format.Size = size
	rt.Format.SetMultisample(samples)
	rt.render.Config(dev, &rt.Format, depthFmt)
	rt.configFrame()
	return rt
}

func (rt *RenderTexture) configFrame() {
	if rt.Frame != nil {
		rt.Frame.Release()
	}
	rt.Frame = NewTexture(&rt.device)
	rt.Frame.ConfigRenderTexture(&rt.device, &rt.Format)
	rt.Frame.ConfigReadBuffer()
}

func (rt *RenderTexture) Render() *Render { return &rt.render }
func (rt *RenderTexture) Device() *Device { return &rt.device }

// GetCurrentTexture returns the view of the frame texture.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	return rt.Frame.View(), nil
}

// SetSize sets the size of the render target; no-op if unchanged.
func (rt *RenderTexture) SetSize(size image.Point) {
	if rt.Format.Size == size {
		return
	}
	rt.render.SetSize(size)
	rt.Format.Size = size
	rt.configFrame()
}

// GrabImage adds a copy of the frame to its read buffer on the given
// encoder; after submission and WaitDone, call [Texture.ReadGoImage]
// on Frame to get the result.
func (rt *RenderTexture) GrabImage(cmd *wgpu.CommandEncoder) error {
	return rt.Frame.CopyToReadBuffer(cmd)
}

func (rt *RenderTexture) Release() {
	if rt.Frame != nil {
		rt.Frame.Release()
		rt.Frame = nil
	}
	rt.render.Release()
}
