// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexGroup is the group number for Vertex and Index variables,
// which are bound through vertex buffer layouts, not bind groups.
const VertexGroup = -1

// VarGroup is one @group of variables, bound together in a bind group.
// The special VertexGroup holds the Vertex and Index variables.
type VarGroup struct {
	// Name for documentation.
	Name string

	// Group number, as in @group in shaders.  VertexGroup = -1.
	Group int

	// Role of all variables in this group: Uniform or Storage.
	// The VertexGroup determines roles per variable instead.
	Role VarRoles

	// Vars in order added, with sequential Binding numbers.
	Vars []*Var

	// VarMap of vars by name.
	VarMap map[string]*Var

	device Device

	layout    *wgpu.BindGroupLayout
	currentBG *wgpu.BindGroup

	// bgValid is false when a Value buffer has been (re)created since
	// the bind group was made, requiring a rebuild.
	bgValid bool
}

// Add adds a new variable of given type to this group.
func (vg *VarGroup) Add(name string, typ Types, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	role := vg.Role
	if vg.Group == VertexGroup {
		role = Vertex
		if typ == Uint16 || typ == Uint32 {
			role = Index
		}
	}
	vr.init(name, typ, arrayN, role, vg, shaders...)
	vg.addVar(vr)
	return vr
}

// AddStruct adds a new struct-typed variable of given size in bytes,
// which must obey the GPU alignment rules for the group role.
func (vg *VarGroup) AddStruct(name string, size int, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(name, Struct, arrayN, vg.Role, vg, shaders...)
	vr.SizeOf = size
	vg.addVar(vr)
	return vr
}

func (vg *VarGroup) addVar(vr *Var) {
	vr.Binding = len(vg.Vars)
	vg.Vars = append(vg.Vars, vr)
	if vg.VarMap == nil {
		vg.VarMap = make(map[string]*Var)
	}
	vg.VarMap[vr.Name] = vr
}

// VarByName returns the variable of given name, nil with logged error
// if not found.
func (vg *VarGroup) VarByName(name string) *Var {
	vr, ok := vg.VarMap[name]
	if !ok {
		errors.Log(fmt.Errorf("gpu.VarGroup %s: variable %q not found", vg.Name, name))
		return nil
	}
	return vr
}

// ValueByIndex returns the value at given index for the named variable.
func (vg *VarGroup) ValueByIndex(varName string, idx int) *Value {
	vr := vg.VarByName(varName)
	if vr == nil {
		return nil
	}
	return vr.Values.Values[idx]
}

// SetNValues sets the number of values for all vars in this group.
func (vg *VarGroup) SetNValues(nvals int) {
	for _, vr := range vg.Vars {
		vr.Values.SetN(vr, &vg.device, nvals)
	}
}

// Config allocates buffers for all values with fixed sizes.
// Variable-length values are allocated when their size is set.
func (vg *VarGroup) Config(dev *Device) error {
	vg.device = *dev
	for _, vr := range vg.Vars {
		if len(vr.Values.Values) == 0 {
			vr.Values.SetN(vr, dev, 1)
		}
		if vr.ArrayN == 0 {
			continue
		}
		for _, vl := range vr.Values.Values {
			if vl.buffer == nil {
				vl.createBuffer()
			}
		}
	}
	return nil
}

func (vg *VarGroup) invalidateBindGroup() {
	vg.bgValid = false
}

// bindLayout returns the bind group layout, creating it on first use.
func (vg *VarGroup) bindLayout() (*wgpu.BindGroupLayout, error) {
	if vg.layout != nil {
		return vg.layout, nil
	}
	var ents []wgpu.BindGroupLayoutEntry
	for _, vr := range vg.Vars {
		ents = append(ents, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(vr.Binding),
			Visibility: vr.Shaders,
			Buffer: wgpu.BufferBindingLayout{
				Type:             vr.bindingType(),
				HasDynamicOffset: false,
				MinBindingSize:   0,
			},
		})
	}
	bgl, err := vg.device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   vg.Name,
		Entries: ents,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	vg.layout = bgl
	return bgl, nil
}

// bindGroup returns the bind group with current values, rebuilding
// when any value buffer has changed.
func (vg *VarGroup) bindGroup() (*wgpu.BindGroup, error) {
	if vg.currentBG != nil && vg.bgValid {
		return vg.currentBG, nil
	}
	bgl, err := vg.bindLayout()
	if err != nil {
		return nil, err
	}
	var ents []wgpu.BindGroupEntry
	for _, vr := range vg.Vars {
		vl := vr.Values.CurrentValue()
		ents = append(ents, vl.bindGroupEntry(vr))
	}
	if vg.currentBG != nil {
		vg.currentBG.Release()
	}
	bg, err := vg.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   vg.Name,
		Layout:  bgl,
		Entries: ents,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	vg.currentBG = bg
	vg.bgValid = true
	return bg, nil
}

// vertexLayout returns the vertex buffer layouts for a VertexGroup.
func (vg *VarGroup) vertexLayout() []wgpu.VertexBufferLayout {
	var vbl []wgpu.VertexBufferLayout
	loc := 0
	for _, vr := range vg.Vars {
		if vr.Role != Vertex {
			continue
		}
		vbl = append(vbl, wgpu.VertexBufferLayout{
			ArrayStride: uint64(vr.SizeOf),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         vr.Type.VertexFormat(),
				Offset:         0,
				ShaderLocation: uint32(loc),
			}},
		})
		loc++
	}
	return vbl
}

// IndexVar returns the Index variable in a VertexGroup, nil if none.
func (vg *VarGroup) IndexVar() *Var {
	for _, vr := range vg.Vars {
		if vr.Role == Index {
			return vr
		}
	}
	return nil
}

// Release releases all resources.
func (vg *VarGroup) Release() {
	if vg.currentBG != nil {
		vg.currentBG.Release()
		vg.currentBG = nil
	}
	if vg.layout != nil {
		vg.layout.Release()
		vg.layout = nil
	}
	for _, vr := range vg.Vars {
		vr.Values.Release()
	}
}

func (vg *VarGroup) String() string {
	s := fmt.Sprintf("Group: %d %s\n", vg.Group, vg.Name)
	for _, vr := range vg.Vars {
		s += "    " + vr.String() + "\n"
	}
	return s
}
