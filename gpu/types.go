// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// Types is the set of GPU data types used in this pipeline.  Note the
// strict alignment constraints on struct members: any member larger
// than 4 bytes triggers a 16 byte slot alignment, which is why every
// vector3 in a Uniform or Storage struct carries explicit padding.
// Float32Vector3 is only safe as Vertex data.
type Types int32

const (
	UndefinedType Types = iota
	Uint16
	Uint32
	Float32
	Float32Vector2
	Float32Vector3 // vertex data only: not slot aligned for uniforms
	Float32Vector4
	Float32Matrix4
	Depth32
	Struct
)

// TypeSizes are the type sizes in bytes.
var TypeSizes = map[Types]int{
	Uint16:         2,
	Uint32:         4,
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,
	Float32Matrix4: 64,
	Depth32:        4,
}

// Bytes returns the number of bytes for this type.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// VertexFormat returns the WebGPU VertexFormat for this type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	switch tp {
	case Uint32:
		return wgpu.VertexFormatUint32
	case Float32:
		return wgpu.VertexFormatFloat32
	case Float32Vector2:
		return wgpu.VertexFormatFloat32x2
	case Float32Vector3:
		return wgpu.VertexFormatFloat32x3
	case Float32Vector4:
		return wgpu.VertexFormatFloat32x4
	}
	return wgpu.VertexFormatUndefined
}

// IndexType returns the WebGPU IndexFormat for an Index var,
// which must be either Uint16 or Uint32.
func (tp Types) IndexType() wgpu.IndexFormat {
	if tp == Uint16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

// MemSizeAlign returns size aligned to align byte increments,
// e.g., align = 16 and size = 12 returns 16.
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	return ((size / align) + 1) * align
}
