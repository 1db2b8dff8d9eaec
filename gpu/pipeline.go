// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline has the common functionality of [GraphicsPipeline] and
// [ComputePipeline]: shaders, entries, and the pipeline layout built
// from the [Vars] of the owning [System].
type Pipeline struct {
	// Name is the unique name of this pipeline within its System.
	Name string

	// System that owns this pipeline.
	System *System

	// Shaders by name.
	Shaders map[string]*Shader

	// Entries by stage.
	Entries map[ShaderTypes]*ShaderEntry

	// Groups are the [Vars] group numbers this pipeline's shaders
	// declare, in @group order: the bind index within this pipeline is
	// the position in this list, not the Vars group number.  Empty
	// means all groups.  A pipeline must list only groups its shaders
	// use: a buffer bound as read-write storage in one group and
	// read-only in another must contribute exactly one of those usages
	// to each pass, which requires the layouts and bindings to be
	// restricted per pipeline.
	Groups []int

	layout *wgpu.PipelineLayout
}

func (pl *Pipeline) init(name string, sy *System) {
	pl.Name = name
	pl.System = sy
	pl.Shaders = make(map[string]*Shader)
	pl.Entries = make(map[ShaderTypes]*ShaderEntry)
}

// Vars returns the variables of the owning system.
func (pl *Pipeline) Vars() *Vars {
	return &pl.System.Vars
}

// AddShader adds a new shader of given name, returning existing
// if already present.
func (pl *Pipeline) AddShader(name string) *Shader {
	if sh, ok := pl.Shaders[name]; ok {
		return sh
	}
	sh := NewShader(name, pl.System.Device())
	pl.Shaders[name] = sh
	return sh
}

// AddEntry registers an entry point in given shader for given stage.
func (pl *Pipeline) AddEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	se := NewShaderEntry(sh, typ, entry)
	pl.Entries[typ] = se
	return se
}

// EntryByType returns the entry for given stage, with error if not set.
func (pl *Pipeline) EntryByType(typ ShaderTypes) (*ShaderEntry, error) {
	se, ok := pl.Entries[typ]
	if !ok {
		return nil, fmt.Errorf("gpu.Pipeline %s: no shader entry for stage %d", pl.Name, typ)
	}
	return se, nil
}

// groupOrder returns the [Vars] group numbers this pipeline binds,
// in bind index order, per [Pipeline.Groups].
func (pl *Pipeline) groupOrder() []int {
	if len(pl.Groups) > 0 {
		return pl.Groups
	}
	ng := pl.Vars().NGroups()
	gps := make([]int, ng)
	for g := range gps {
		gps[g] = g
	}
	return gps
}

// pipelineLayout returns the layout built from this pipeline's var
// groups, creating on first use.
func (pl *Pipeline) pipelineLayout() (*wgpu.PipelineLayout, error) {
	if pl.layout != nil {
		return pl.layout, nil
	}
	gps := pl.groupOrder()
	bgls := make([]*wgpu.BindGroupLayout, len(gps))
	for i, g := range gps {
		vg := pl.Vars().Group(g)
		if vg == nil {
			err := errors.Log(fmt.Errorf("gpu.Pipeline %s: missing var group %d", pl.Name, g))
			return nil, err
		}
		bgl, err := vg.bindLayout()
		if errors.Log(err) != nil {
			return nil, err
		}
		bgls[i] = bgl
	}
	lay, err := pl.System.Device().Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pl.Name,
		BindGroupLayouts: bgls,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	pl.layout = lay
	return lay, nil
}

func (pl *Pipeline) releaseShaders() {
	for _, sh := range pl.Shaders {
		sh.Release()
	}
	pl.Shaders = make(map[string]*Shader)
	pl.Entries = make(map[ShaderTypes]*ShaderEntry)
}

func (pl *Pipeline) releaseLayout() {
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
}
