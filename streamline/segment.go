// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package streamline integrates strands through the curl field and
// packs them into a flat instance buffer.  It is both the reference
// implementation for the GPU compute stage and the fallback path when
// no WebGPU adapter is available: the WGSL shader mirrors this code
// record for record.
package streamline

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"

	"cogentcore.org/strands/field"
)

// SegmentBytes is the byte size of one [Segment] record.  The compute
// and render stages compute field offsets from this layout
// independently, so it must match the WGSL struct byte for byte;
// see [LayoutCheck].
const SegmentBytes = 128

// Segment is one self-contained tube instance: the endpoints of a short
// cylinder between two consecutive streamline points, with the frame
// vectors used to orient the ring profile at each end.
//
// Every Vector3 field is padded out to a full 16 byte slot, matching
// WGSL std alignment for vec3 in storage buffers.  Do not reorder or
// add fields without updating the shaders and [LayoutCheck].
//
// Chain continuity invariant: for consecutive segments of one strand,
// the End fields of segment i are exactly equal to the Start fields
// of segment i+1.
type Segment struct {
	StartPos      math32.Vector3
	pad0          float32
	StartNormal   math32.Vector3
	pad1          float32
	StartBinormal math32.Vector3
	pad2          float32
	EndPos        math32.Vector3
	pad3          float32
	EndNormal     math32.Vector3
	pad4          float32
	EndBinormal   math32.Vector3
	pad5          float32
	Color         math32.Vector4
	Radius        float32
	pad6          float32
	pad7          float32
	pad8          float32
}

// Point is one streamline sample: a position and its local frame.
type Point struct {
	Pos   math32.Vector3
	Frame field.Frame
}

// SetStart sets the segment start fields from the given point.
func (sg *Segment) SetStart(p Point) {
	sg.StartPos = p.Pos
	sg.StartNormal = p.Frame.Normal
	sg.StartBinormal = p.Frame.Binormal
}

// SetEnd sets the segment end fields from the given point.
func (sg *Segment) SetEnd(p Point) {
	sg.EndPos = p.Pos
	sg.EndNormal = p.Frame.Normal
	sg.EndBinormal = p.Frame.Binormal
}

// LayoutCheck verifies that the in-memory layout of [Segment] matches
// the byte offsets the WGSL structs are declared with.  The two stages
// never negotiate a layout at runtime: a mismatch silently corrupts
// geometry rather than raising an error, so this is checked once at
// system Config time and in the tests.
func LayoutCheck() error {
	var sg Segment
	offs := []struct {
		name string
		off  uintptr
		want uintptr
	}{
		{"StartPos", unsafe.Offsetof(sg.StartPos), 0},
		{"StartNormal", unsafe.Offsetof(sg.StartNormal), 16},
		{"StartBinormal", unsafe.Offsetof(sg.StartBinormal), 32},
		{"EndPos", unsafe.Offsetof(sg.EndPos), 48},
		{"EndNormal", unsafe.Offsetof(sg.EndNormal), 64},
		{"EndBinormal", unsafe.Offsetof(sg.EndBinormal), 80},
		{"Color", unsafe.Offsetof(sg.Color), 96},
		{"Radius", unsafe.Offsetof(sg.Radius), 112},
	}
	for _, o := range offs {
		if o.off != o.want {
			return fmt.Errorf("streamline.Segment layout: field %s at offset %d, shader expects %d", o.name, o.off, o.want)
		}
	}
	if sz := unsafe.Sizeof(sg); sz != SegmentBytes {
		return fmt.Errorf("streamline.Segment layout: size %d, shader expects %d", sz, SegmentBytes)
	}
	return nil
}
