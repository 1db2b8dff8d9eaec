// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
)

// Vars are all the variables used in a [System], organized into
// [VarGroup]s matching the @group bindings in shader code.
type Vars struct {
	// Groups by group number.  VertexGroup (-1) holds Vertex, Index.
	Groups map[int]*VarGroup

	// hasVertex is set when a VertexGroup has been added.
	hasVertex bool

	device Device
}

// AddVertexGroup adds the special VertexGroup for Vertex and Index
// variables.  Only one such group can exist.
func (vs *Vars) AddVertexGroup() *VarGroup {
	vg := &VarGroup{Group: VertexGroup, Name: "VertexGroup"}
	vs.addGroup(vg)
	vs.hasVertex = true
	return vg
}

// AddGroup adds a new variable group of given role (Uniform or
// Storage) at the next group number.
func (vs *Vars) AddGroup(role VarRoles, name string) *VarGroup {
	idx := vs.NGroups()
	vg := &VarGroup{Group: idx, Name: name, Role: role}
	vs.addGroup(vg)
	return vg
}

func (vs *Vars) addGroup(vg *VarGroup) {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	vs.Groups[vg.Group] = vg
}

// NGroups returns the number of regular (non-vertex) groups.
func (vs *Vars) NGroups() int {
	n := len(vs.Groups)
	if vs.hasVertex {
		n--
	}
	return n
}

// Group returns the group at the given number, nil with logged error
// if not found.
func (vs *Vars) Group(g int) *VarGroup {
	vg, ok := vs.Groups[g]
	if !ok {
		errors.Log(fmt.Errorf("gpu.Vars: group %d not found", g))
		return nil
	}
	return vg
}

// VertexGroup returns the vertex group, nil if none added.
func (vs *Vars) VertexGroup() *VarGroup {
	return vs.Groups[VertexGroup]
}

// VarByName returns the variable of given name in given group.
func (vs *Vars) VarByName(group int, name string) *Var {
	vg := vs.Group(group)
	if vg == nil {
		return nil
	}
	return vg.VarByName(name)
}

// ValueByIndex returns the value at given index for the named variable
// in the given group.
func (vs *Vars) ValueByIndex(group int, name string, idx int) *Value {
	vg := vs.Group(group)
	if vg == nil {
		return nil
	}
	return vg.ValueByIndex(name, idx)
}

// Config allocates the fixed-size buffers in all groups.
func (vs *Vars) Config(dev *Device) error {
	vs.device = *dev
	var errs []error
	for _, vg := range vs.Groups {
		if err := vg.Config(dev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Release releases all groups.
func (vs *Vars) Release() {
	for _, vg := range vs.Groups {
		vg.Release()
	}
}

// StringDoc returns a documentation string listing all vars.
func (vs *Vars) StringDoc() string {
	s := ""
	if vg := vs.VertexGroup(); vg != nil {
		s += vg.String()
	}
	ng := vs.NGroups()
	for g := 0; g < ng; g++ {
		if vg := vs.Groups[g]; vg != nil {
			s += vg.String()
		}
	}
	return s
}
