// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ComputePipeline is a pipeline for running compute shaders.
type ComputePipeline struct {
	Pipeline

	computePipeline *wgpu.ComputePipeline
}

// NewComputePipeline returns a new compute pipeline in given system.
func NewComputePipeline(name string, sy *System) *ComputePipeline {
	pl := &ComputePipeline{}
	pl.init(name, sy)
	return pl
}

// Config creates the compute pipeline from the current shader and vars.
func (pl *ComputePipeline) Config() error {
	lay, err := pl.pipelineLayout()
	if err != nil {
		return err
	}
	ce, err := pl.EntryByType(ComputeShader)
	if errors.Log(err) != nil {
		return err
	}
	cp, err := pl.System.Device().Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  pl.Name,
		Layout: lay,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     ce.Shader.Module(),
			EntryPoint: ce.Entry,
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.releasePipeline()
	pl.computePipeline = cp
	return nil
}

// BindPipeline binds this pipeline and all current bind groups
// to the given compute pass.
func (pl *ComputePipeline) BindPipeline(cp *wgpu.ComputePassEncoder) error {
	if pl.computePipeline == nil {
		if err := pl.Config(); err != nil {
			return err
		}
	}
	cp.SetPipeline(pl.computePipeline)
	vs := pl.Vars()
	for i, g := range pl.groupOrder() {
		vg := vs.Group(g)
		bg, err := vg.bindGroup()
		if err != nil {
			return err
		}
		cp.SetBindGroup(uint32(i), bg, nil)
	}
	return nil
}

// Dispatch dispatches given number of workgroups in each dimension.
func (pl *ComputePipeline) Dispatch(cp *wgpu.ComputePassEncoder, nx, ny, nz int) {
	cp.DispatchWorkgroups(uint32(nx), uint32(ny), uint32(nz))
}

// Dispatch1D dispatches enough workgroups of given thread count to
// cover n total invocations in the x dimension: the shader must guard
// against indexes beyond n.
func (pl *ComputePipeline) Dispatch1D(cp *wgpu.ComputePassEncoder, n, threads int) {
	pl.Dispatch(cp, Warps(n, threads), 1, 1)
}

// Warps returns the number of warps (work groups of compute threads)
// sufficient to compute n elements with given threads per group:
// Ceil(n / threads).
func Warps(n, threads int) int {
	return (n + threads - 1) / threads
}

func (pl *ComputePipeline) releasePipeline() {
	if pl.computePipeline != nil {
		pl.computePipeline.Release()
		pl.computePipeline = nil
	}
}

// Release releases all resources.
func (pl *ComputePipeline) Release() {
	pl.releasePipeline()
	pl.releaseLayout()
	pl.releaseShaders()
}
