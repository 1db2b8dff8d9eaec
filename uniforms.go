// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strands

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"
)

// UniformsBytes is the byte size of the [Uniforms] block.
const UniformsBytes = 288

// Uniforms is the per-frame uniform block shared by the compute and
// render stages.  Every Vector3 is packed with a following float32 so
// each pair occupies one 16 byte slot, matching the WGSL struct; see
// [UniformsLayoutCheck].  The three offsets are the decorrelation
// offsets of the potential fields, already advected by time, so the
// shader applies them directly.
type Uniforms struct {
	// Model is the model transform applied to all strands.
	Model math32.Matrix4

	// View is the camera view matrix.
	View math32.Matrix4

	// Projection is the camera projection matrix.
	Projection math32.Matrix4

	// LightDir is the unit light direction in world space.
	LightDir math32.Vector3

	// Time is the field time t for this frame.
	Time float32

	// Color is the base strand color.
	Color math32.Vector4

	// Offset0..2 are the per-potential decorrelation offsets at Time.
	Offset0 math32.Vector3

	// NoiseScale maps world coordinates to lattice coordinates.
	NoiseScale float32

	Offset1 math32.Vector3

	// StepSize is the Euler step h.
	StepSize float32

	Offset2 math32.Vector3

	// Radius is the tube radius.
	Radius float32

	// GridX, GridY are the seed grid dimensions; Segments is the
	// per-strand segment count, matching the baked shader loop bound.
	GridX    uint32
	GridY    uint32
	Segments uint32

	// Ambient is the ambient lighting term.
	Ambient float32
}

// Defaults sets the uniforms from the given configuration at time 0,
// with the model matrix set to identity and a standard camera.
func (un *Uniforms) Defaults(cf *Config) {
	un.Model.SetIdentity()
	un.LightDir = cf.LightDir.Normal()
	un.Color = cf.Color
	un.NoiseScale = cf.NoiseScale
	un.StepSize = cf.StepSize
	un.Radius = cf.Radius
	un.GridX = uint32(cf.Nx)
	un.GridY = uint32(cf.Ny)
	un.Segments = uint32(cf.Segments)
	un.Ambient = cf.Ambient
	un.SetTime(cf, 0)
	ext := 0.5 * cf.Spacing * float32(max(cf.Nx, cf.Ny))
	eye := math32.Vec3(0, 1.5*ext+1, 2.5*ext+2)
	un.SetCamera(eye, math32.Vec3(0, 0, 0), float32(cf.Width)/float32(cf.Height))
}

// SetTime sets the frame time and the advected decorrelation offsets,
// which must agree with [field.Sampler] for the CPU and GPU stages to
// produce the same strands.
func (un *Uniforms) SetTime(cf *Config, t float32) {
	un.Time = t
	fs := cf.Sampler()
	un.Offset0 = fs.Offsets[0].Add(fs.Drift[0].MulScalar(t))
	un.Offset1 = fs.Offsets[1].Add(fs.Drift[1].MulScalar(t))
	un.Offset2 = fs.Offsets[2].Add(fs.Drift[2].MulScalar(t))
}

// SetCamera sets the view matrix looking from eye at target, and a
// standard 45 degree perspective projection at the given aspect ratio.
func (un *Uniforms) SetCamera(eye, target math32.Vector3, aspect float32) {
	un.View = *CameraViewMat(eye, target, math32.Vec3(0, 1, 0))
	un.Projection.SetPerspective(45, aspect, 0.01, 100)
}

// CameraViewMat returns the camera view matrix, based on the position
// of the camera facing at target position, with given up vector.
func CameraViewMat(pos, target, up math32.Vector3) *math32.Matrix4 {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(pos, target, up))
	scale := math32.Vec3(1, 1, 1)
	var cview math32.Matrix4
	cview.SetTransform(pos, lookq, scale)
	view, _ := cview.Inverse()
	return view
}

// UniformsLayoutCheck verifies that the in-memory layout of [Uniforms]
// matches the byte offsets of the WGSL struct, like
// [streamline.LayoutCheck] for the segment records.  Checked once at
// Config time.
func UniformsLayoutCheck() error {
	var un Uniforms
	offs := []struct {
		name string
		off  uintptr
		want uintptr
	}{
		{"Model", unsafe.Offsetof(un.Model), 0},
		{"View", unsafe.Offsetof(un.View), 64},
		{"Projection", unsafe.Offsetof(un.Projection), 128},
		{"LightDir", unsafe.Offsetof(un.LightDir), 192},
		{"Time", unsafe.Offsetof(un.Time), 204},
		{"Color", unsafe.Offsetof(un.Color), 208},
		{"Offset0", unsafe.Offsetof(un.Offset0), 224},
		{"NoiseScale", unsafe.Offsetof(un.NoiseScale), 236},
		{"Offset1", unsafe.Offsetof(un.Offset1), 240},
		{"StepSize", unsafe.Offsetof(un.StepSize), 252},
		{"Offset2", unsafe.Offsetof(un.Offset2), 256},
		{"Radius", unsafe.Offsetof(un.Radius), 268},
		{"GridX", unsafe.Offsetof(un.GridX), 272},
		{"Ambient", unsafe.Offsetof(un.Ambient), 284},
	}
	for _, o := range offs {
		if o.off != o.want {
			return fmt.Errorf("strands.Uniforms layout: field %s at offset %d, shader expects %d", o.name, o.off, o.want)
		}
	}
	if sz := unsafe.Sizeof(un); sz != UniformsBytes {
		return fmt.Errorf("strands.Uniforms layout: size %d, shader expects %d", sz, UniformsBytes)
	}
	return nil
}
