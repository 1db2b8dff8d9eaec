// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// System manages a set of compute and graphics pipelines sharing one
// [Vars] collection and one device, so that a compute pass and a
// render pass can run back-to-back on a single command submission,
// with storage buffers written by compute read directly by rendering.
type System struct {
	// Name is the name of this system.
	Name string

	// Vars for all pipelines.  Bind group layouts are per var group
	// and shared across pipelines; each pipeline binds only the
	// groups its shaders declare, per [Pipeline.Groups].
	Vars Vars

	// GraphicsPipelines by name.
	GraphicsPipelines map[string]*GraphicsPipeline

	// ComputePipelines by name.
	ComputePipelines map[string]*ComputePipeline

	// Renderer is the render target, nil for compute-only systems.
	Renderer Renderer

	// GPU is the gpu access object.
	GPU *GPU

	device Device
}

// NewSystem returns a new system on the given device.
func NewSystem(name string, gp *GPU, dev *Device) *System {
	sy := &System{Name: name, GPU: gp, device: *dev}
	sy.GraphicsPipelines = make(map[string]*GraphicsPipeline)
	sy.ComputePipelines = make(map[string]*ComputePipeline)
	return sy
}

// Device returns the device this system runs on.
func (sy *System) Device() *Device { return &sy.device }

// Render returns the Render of the current Renderer;
// nil with logged error if no renderer is set.
func (sy *System) Render() *Render {
	if sy.Renderer == nil {
		errors.Log(fmt.Errorf("gpu.System %s: no Renderer set", sy.Name))
		return nil
	}
	return sy.Renderer.Render()
}

// SetRenderer sets the render target, prior to configuring
// graphics pipelines.
func (sy *System) SetRenderer(rd Renderer) {
	sy.Renderer = rd
}

// AddGraphicsPipeline adds a new graphics pipeline of given name,
// binding the given var groups, in shader @group order.
// No groups means all groups: see [Pipeline.Groups].
func (sy *System) AddGraphicsPipeline(name string, groups ...int) *GraphicsPipeline {
	pl := NewGraphicsPipeline(name, sy)
	pl.Groups = groups
	sy.GraphicsPipelines[name] = pl
	return pl
}

// AddComputePipeline adds a new compute pipeline of given name,
// binding the given var groups, in shader @group order.
// No groups means all groups: see [Pipeline.Groups].
func (sy *System) AddComputePipeline(name string, groups ...int) *ComputePipeline {
	pl := NewComputePipeline(name, sy)
	pl.Groups = groups
	sy.ComputePipelines[name] = pl
	return pl
}

// Config configures the variables and pipelines after all vars have
// been added and all shaders set.  Critical to call this only after
// everything has been added.
func (sy *System) Config() error {
	var errs []error
	if err := sy.Vars.Config(&sy.device); err != nil {
		errs = append(errs, err)
	}
	if Debug {
		fmt.Println(sy.Vars.StringDoc())
	}
	for _, pl := range sy.ComputePipelines {
		if err := pl.Config(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, pl := range sy.GraphicsPipelines {
		if err := pl.Config(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewCommandEncoder returns a new command encoder for one frame of
// commands: compute pass, render pass, readback copies.
func (sy *System) NewCommandEncoder() (*wgpu.CommandEncoder, error) {
	cmd, err := sy.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	return cmd, nil
}

// BeginComputePass adds a compute pass to the given encoder.
// Call [ComputePipeline.BindPipeline] and Dispatch on the returned
// pass, then End it.
func (sy *System) BeginComputePass(cmd *wgpu.CommandEncoder) (*wgpu.ComputePassEncoder, error) {
	return cmd.BeginComputePass(nil), nil
}

// BeginRenderPass adds a render pass to the given encoder, rendering
// into the current Renderer texture.  A prior compute pass on the
// same encoder is complete before the render pass reads its buffers.
func (sy *System) BeginRenderPass(cmd *wgpu.CommandEncoder) (*wgpu.RenderPassEncoder, error) {
	rd := sy.Render()
	if rd == nil {
		return nil, fmt.Errorf("gpu.System %s: no renderer", sy.Name)
	}
	view, err := sy.Renderer.GetCurrentTexture()
	if errors.Log(err) != nil {
		return nil, err
	}
	return rd.BeginRenderPass(cmd, view), nil
}

// SubmitEnd finishes the command encoder and submits it to the queue
// as one unit of work.
func (sy *System) SubmitEnd(cmd *wgpu.CommandEncoder) error {
	cmds, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		cmd.Release()
		return err
	}
	sy.device.Queue.Submit(cmds)
	cmds.Release()
	cmd.Release()
	return nil
}

// WaitDone waits until all submitted commands are complete.
func (sy *System) WaitDone() {
	sy.device.WaitDone()
}

// Release releases all pipelines and vars.  The Renderer and device
// are not owned and must be released by the caller.
func (sy *System) Release() {
	for _, pl := range sy.ComputePipelines {
		pl.Release()
	}
	for _, pl := range sy.GraphicsPipelines {
		pl.Release()
	}
	sy.ComputePipelines = nil
	sy.GraphicsPipelines = nil
	sy.Vars.Release()
}
