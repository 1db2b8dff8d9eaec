// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

// divergenceFD estimates the divergence of the tangent field at p by
// central finite differences.
func divergenceFD(fs *Sampler, p math32.Vector3, t, eps float32) float32 {
	dx := fs.Tangent(p.Add(math32.Vec3(eps, 0, 0)), t).X - fs.Tangent(p.Sub(math32.Vec3(eps, 0, 0)), t).X
	dy := fs.Tangent(p.Add(math32.Vec3(0, eps, 0)), t).Y - fs.Tangent(p.Sub(math32.Vec3(0, eps, 0)), t).Y
	dz := fs.Tangent(p.Add(math32.Vec3(0, 0, eps)), t).Z - fs.Tangent(p.Sub(math32.Vec3(0, 0, eps)), t).Z
	return (dx + dy + dz) / (2 * eps)
}

func TestDivergenceFree(t *testing.T) {
	fs := NewSampler(1)
	pts := []math32.Vector3{
		math32.Vec3(0.2, 0.4, 0.6),
		math32.Vec3(-1.3, 2.5, 0.8),
		math32.Vec3(3.7, -0.9, -2.1),
		math32.Vec3(0.55, 0.55, 0.55),
		math32.Vec3(-4.2, 1.1, 6.3),
	}
	for _, p := range pts {
		div := divergenceFD(fs, p, 0.5, 5e-3)
		assert.Less(t, math32.Abs(div), float32(1e-3), "divergence at %v", p)
	}
}

func TestTangentDeterministic(t *testing.T) {
	fs := NewSampler(0.5)
	p := math32.Vec3(1.1, -0.7, 2.3)
	a := fs.Tangent(p, 1.25)
	b := fs.Tangent(p, 1.25)
	assert.Equal(t, a, b)
}

func TestTangentTimeVaries(t *testing.T) {
	fs := NewSampler(0.5)
	p := math32.Vec3(1.1, -0.7, 2.3)
	a := fs.Tangent(p, 0)
	b := fs.Tangent(p, 2)
	assert.NotEqual(t, a, b)
}

func TestFrameOrthonormal(t *testing.T) {
	uf := NewUpFramer()
	tans := []math32.Vector3{
		math32.Vec3(1, 0, 0),
		math32.Vec3(0.3, 0.4, -0.5),
		math32.Vec3(-2, 5, 1),
		math32.Vec3(0.001, 0.001, 0.001),
	}
	for _, tan := range tans {
		fr := uf.Frame(tan)
		assert.InDelta(t, 1, float64(fr.Normal.Length()), 1e-5)
		assert.InDelta(t, 1, float64(fr.Binormal.Length()), 1e-5)
		assert.InDelta(t, 1, float64(fr.Tangent.Length()), 1e-5)
		assert.InDelta(t, 0, float64(fr.Normal.Dot(fr.Binormal)), 1e-5)
		assert.InDelta(t, 0, float64(fr.Normal.Dot(fr.Tangent)), 1e-5)
		assert.InDelta(t, 0, float64(fr.Binormal.Dot(fr.Tangent)), 1e-5)
	}
}

// TestFrameFallback covers the degenerate cases: a tangent parallel to
// the up reference, and a numerically zero tangent.  Both must still
// produce a fully orthonormal frame, never an error or NaN.
func TestFrameFallback(t *testing.T) {
	uf := NewUpFramer()
	for _, tan := range []math32.Vector3{
		math32.Vec3(0, 1, 0),
		math32.Vec3(0, -3, 0),
		math32.Vec3(0, 1e-5, 0),
		math32.Vec3(0, 0, 0),
	} {
		fr := uf.Frame(tan)
		assert.InDelta(t, 1, float64(fr.Normal.Length()), 1e-5, "tangent %v", tan)
		assert.InDelta(t, 1, float64(fr.Binormal.Length()), 1e-5, "tangent %v", tan)
		assert.InDelta(t, 0, float64(fr.Normal.Dot(fr.Tangent)), 1e-5, "tangent %v", tan)
		assert.False(t, math32.IsNaN(fr.Normal.X) || math32.IsNaN(fr.Binormal.X))
	}
}

func TestSamplerFrame(t *testing.T) {
	fs := NewSampler(1)
	tan, fr := fs.Sample(math32.Vec3(0.5, 0.5, 0.5), 0)
	tu := tan.Normal()
	assert.InDelta(t, float64(tu.X), float64(fr.Tangent.X), 1e-5)
	assert.InDelta(t, float64(tu.Y), float64(fr.Tangent.Y), 1e-5)
	assert.InDelta(t, float64(tu.Z), float64(fr.Tangent.Z), 1e-5)
}
