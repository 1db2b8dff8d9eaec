// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package noise implements deterministic, differentiable lattice gradient
// noise with an analytic gradient.  It is the CPU reference for the WGSL
// implementation in the compute shader: both use the same arithmetic
// hash (no permutation table state) so results can be compared directly.
package noise

import "cogentcore.org/core/math32"

// Sample is the output of one noise evaluation: the scalar field value
// and its exact analytic gradient (not a finite-difference estimate).
type Sample struct {
	Value    float32
	Gradient math32.Vector3
}

// lowbias32 is a full-avalanche 32 bit integer hash.
func lowbias32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// unit maps a hash word onto [-1, 1].
func unit(h uint32) float32 {
	return float32(h)*(2.0/4294967295.0) - 1
}

// Hash returns a deterministic pseudo-random unit vector for the given
// integer lattice coordinate.  Collisions are statistically tolerated,
// not prevented.  Identical input always yields bit-identical output.
func Hash(ix, iy, iz int32) math32.Vector3 {
	h := lowbias32(uint32(ix)*0x8da6b343 + uint32(iy)*0xd8163841 + uint32(iz)*0xcb1ab31f)
	v := math32.Vec3(
		unit(h),
		unit(lowbias32(h+0x9e3779b9)),
		unit(lowbias32(h+0x3c6ef372)))
	l := v.Length()
	if l < 1e-6 {
		return math32.Vec3(1, 0, 0)
	}
	return v.DivScalar(l)
}

// fade is the quintic fade curve 6t^5 - 15t^4 + 10t^3 and its
// derivative 30t^4 - 60t^3 + 30t^2.  The quintic has zero first and
// second derivatives at the cell boundaries, which makes the blended
// field once-differentiable everywhere with a continuous gradient.
func fade(t float32) (f, df float32) {
	f = t * t * t * (t*(t*6-15) + 10)
	df = 30 * t * t * (t*(t-2) + 1)
	return
}

// Gradient evaluates the noise field at p, returning the scalar value
// and its analytic gradient.  The value blends the hash gradient vectors
// at the 8 surrounding lattice corners; the gradient applies the product
// rule to the same blend, so it is exact for the returned value.
func Gradient(p math32.Vector3) (float32, math32.Vector3) {
	ix := int32(math32.Floor(p.X))
	iy := int32(math32.Floor(p.Y))
	iz := int32(math32.Floor(p.Z))
	f := math32.Vec3(p.X-math32.Floor(p.X), p.Y-math32.Floor(p.Y), p.Z-math32.Floor(p.Z))

	ux, dux := fade(f.X)
	uy, duy := fade(f.Y)
	uz, duz := fade(f.Z)

	var val float32
	var grad math32.Vector3
	for c := 0; c < 8; c++ {
		cx := int32(c & 1)
		cy := int32((c >> 1) & 1)
		cz := int32((c >> 2) & 1)
		g := Hash(ix+cx, iy+cy, iz+cz)
		r := math32.Vec3(f.X-float32(cx), f.Y-float32(cy), f.Z-float32(cz))
		d := g.Dot(r)

		wx, dwx := 1-ux, -dux
		if cx == 1 {
			wx, dwx = ux, dux
		}
		wy, dwy := 1-uy, -duy
		if cy == 1 {
			wy, dwy = uy, duy
		}
		wz, dwz := 1-uz, -duz
		if cz == 1 {
			wz, dwz = uz, duz
		}
		w := wx * wy * wz

		val += w * d
		grad.X += dwx*wy*wz*d + w*g.X
		grad.Y += wx*dwy*wz*d + w*g.Y
		grad.Z += wx*wy*dwz*d + w*g.Z
	}
	return val, grad
}

// At returns the noise [Sample] at p.
func At(p math32.Vector3) Sample {
	v, g := Gradient(p)
	return Sample{Value: v, Gradient: g}
}

// Value returns just the scalar field value at p.
func Value(p math32.Vector3) float32 {
	v, _ := Gradient(p)
	return v
}
