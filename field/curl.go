// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field constructs a divergence-free vector field as the curl of
// three decorrelated noise potentials, along with a local orthonormal
// frame at every sample point.  Because the field is built as a curl,
// it is divergence-free up to floating point and noise smoothness error
// with no explicit cancellation step.
package field

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/strands/noise"
)

// Sampler samples the curl field.  It is a pure function of its
// configuration: identical (position, time) inputs always return
// bit-identical results, so strand integration is fully reproducible.
// Time is passed explicitly through every call; there is no module
// level clock.
type Sampler struct {
	// Scale maps world coordinates into noise lattice coordinates.
	Scale float32

	// Offsets decorrelate the three potential fields.  One hash serves
	// all three: shifting the sample position by a distinct large
	// constant makes the fields statistically independent.
	Offsets [3]math32.Vector3

	// Drift advects each potential over time, each along its own
	// direction, so the field evolves instead of merely scaling.
	Drift [3]math32.Vector3

	// Framer builds the local orthonormal basis from the tangent.
	Framer Framer
}

// NewSampler returns a Sampler with the default decorrelation offsets,
// drift directions, and the [UpFramer] frame strategy.
func NewSampler(scale float32) *Sampler {
	return &Sampler{
		Scale: scale,
		Offsets: [3]math32.Vector3{
			math32.Vec3(0, 0, 0),
			math32.Vec3(123.4, 567.8, 901.2),
			math32.Vec3(419.1, 282.9, 771.7),
		},
		Drift: [3]math32.Vector3{
			math32.Vec3(0, 0.35, 0),
			math32.Vec3(0.21, 0, 0.17),
			math32.Vec3(0, 0.11, 0.29),
		},
		Framer: NewUpFramer(),
	}
}

// gradients evaluates the analytic gradient of the three potentials at p.
func (fs *Sampler) gradients(p math32.Vector3, t float32) [3]math32.Vector3 {
	q := p.MulScalar(fs.Scale)
	var g [3]math32.Vector3
	for i := range g {
		_, g[i] = noise.Gradient(q.Add(fs.Offsets[i]).Add(fs.Drift[i].MulScalar(t)))
	}
	return g
}

// Tangent returns the field tangent at p: the curl of the vector
// potential whose components are the three noise fields.
//
//	v = (dP3/dy - dP2/dz, dP1/dz - dP3/dx, dP2/dx - dP1/dy)
//
// Divergence of a curl is identically zero, so no cancellation pass
// is needed.  The magnitude is the local field speed and is used
// directly by the integrator; it is not normalized here.
func (fs *Sampler) Tangent(p math32.Vector3, t float32) math32.Vector3 {
	g := fs.gradients(p, t)
	return math32.Vec3(
		g[2].Y-g[1].Z,
		g[0].Z-g[2].X,
		g[1].X-g[0].Y)
}

// Sample returns the raw tangent and the local frame at p.
func (fs *Sampler) Sample(p math32.Vector3, t float32) (math32.Vector3, Frame) {
	tan := fs.Tangent(p, t)
	return tan, fs.Framer.Frame(tan)
}
