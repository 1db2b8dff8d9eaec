// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// VarRoles are the functional roles of variables.
type VarRoles int32

const (
	UndefinedRole VarRoles = iota

	// Vertex is vertex shader input data: mesh geometry points.
	Vertex

	// Index is for the indexes to access Vertex data.
	Index

	// Uniform is read-only shader parameter data, with a strict
	// 16 byte alignment rule for any member larger than 4 bytes.
	Uniform

	// Storage is large data in a storage buffer; read-write in
	// compute shaders, read-only when bound to a vertex shader.
	Storage
)

// BufferUsages returns the BufferUsage flags for buffers of this role.
func (vr VarRoles) BufferUsages() wgpu.BufferUsage {
	switch vr {
	case Vertex:
		return wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	case Index:
		return wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	case Uniform:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	case Storage:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc
	}
	return 0
}

// ShaderTypes are the shader stages a variable can be visible in.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
	ComputeShader
)

// ShaderStageFlags maps ShaderTypes to wgpu stage flags.
var ShaderStageFlags = map[ShaderTypes]wgpu.ShaderStage{
	VertexShader:   wgpu.ShaderStageVertex,
	FragmentShader: wgpu.ShaderStageFragment,
	ComputeShader:  wgpu.ShaderStageCompute,
}

// Var specifies a variable used in a pipeline, accessed in shader
// programs via its @group and @binding location.  There are one or
// more [Value] items for each Var holding the actual buffers.
type Var struct {
	// Name of the variable, as shown in shader code.
	Name string

	// Type of data in the variable.
	Type Types

	// ArrayN is the number of elements if a fixed array; 1 if a
	// singular element; 0 for variable-length (Vertex and Storage),
	// where each Value has its own size.
	ArrayN int

	// Role of the variable.  Vertex and Index are configured in the
	// special VertexGroup; everything else is in a BindGroup.
	Role VarRoles

	// ReadOnly marks a Storage variable as read-only at its binding,
	// which is required when a storage buffer is bound to a vertex
	// shader stage.
	ReadOnly bool

	// Shaders is the set of shader stages this variable is visible in.
	Shaders wgpu.ShaderStage

	// Group binding, from @group in shader.
	Group int

	// Binding number within the group, from @binding in shader.
	// Assigned sequentially in order added.
	Binding int

	// SizeOf is the size in bytes of one element.
	SizeOf int

	// Values holds the value buffers for this variable.
	Values Values

	group *VarGroup
}

func (vr *Var) init(name string, typ Types, arrayN int, role VarRoles, group *VarGroup, shaders ...ShaderTypes) {
	vr.Name = name
	vr.Type = typ
	vr.ArrayN = arrayN
	vr.Role = role
	vr.SizeOf = typ.Bytes()
	vr.Group = group.Group
	vr.group = group
	for _, sh := range shaders {
		vr.Shaders |= ShaderStageFlags[sh]
	}
}

// MemSize returns the memory allocation size for one Value of this
// variable, in bytes.  Zero-length (variable) arrays return 0: sizes
// are set directly on the Values.
func (vr *Var) MemSize() int {
	return vr.SizeOf * vr.ArrayN
}

func (vr *Var) String() string {
	return fmt.Sprintf("%d:\t%s\t(size: %d)\tValues: %d", vr.Binding, vr.Name, vr.SizeOf, len(vr.Values.Values))
}

// bindingType returns the buffer binding type for this variable.
func (vr *Var) bindingType() wgpu.BufferBindingType {
	switch {
	case vr.Role == Uniform:
		return wgpu.BufferBindingTypeUniform
	case vr.ReadOnly:
		return wgpu.BufferBindingTypeReadOnlyStorage
	default:
		return wgpu.BufferBindingTypeStorage
	}
}
