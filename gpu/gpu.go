// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is a trimmed WebGPU layer for the strands pipeline,
// adapted from the Cogent Core gpu package.  It manages one device
// with compute and graphics pipelines sharing a single collection of
// Vars and Values, which is what lets the instance buffer be written
// by the compute stage and read by the render stage with a single
// coarse barrier: both passes are encoded into one command stream on
// one queue.
//
// Window surfaces, textures-as-samplers, and dynamic offset binding
// are out of scope here: rendering targets an offscreen
// [RenderTexture] only.
package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of variable layouts and adapter info.
var Debug = false

// GPU represents the physical GPU hardware: the WebGPU instance and
// adapter, with its limits.
type GPU struct {
	// Instance represents the WebGPU system overall.
	Instance *wgpu.Instance

	// Adapter represents the physical GPU hardware.
	Adapter *wgpu.Adapter

	// Limits are the adapter limits, with alignment factors needed
	// for buffer offsets.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with the instance and adapter initialized,
// or an error if no suitable adapter exists on this platform.  A
// missing adapter is a capability gap, not a bug: callers should
// surface the error and fall back to the CPU stage.
func NewGPU() (*GPU, error) {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	if gp.Instance == nil {
		return nil, errors.Log(fmt.Errorf("gpu: failed to create WebGPU instance"))
	}
	ad, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Log(fmt.Errorf("gpu: no WebGPU adapter available: %w", err))
	}
	gp.Adapter = ad
	gp.Limits = ad.GetLimits()
	return gp, nil
}

// NoDisplayGPU returns a GPU and Device configured for purely
// offscreen compute and rendering, with no window surface.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := NewGPU()
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}

// Release releases the adapter and instance.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}
