// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestHashDeterministic(t *testing.T) {
	coords := [][3]int32{
		{0, 0, 0}, {1, 2, 3}, {-1, -2, -3}, {1000, -1000, 7}, {-2147483648, 2147483647, 0},
	}
	for _, c := range coords {
		a := Hash(c[0], c[1], c[2])
		b := Hash(c[0], c[1], c[2])
		assert.Equal(t, a, b)
	}
}

func TestHashUnitLength(t *testing.T) {
	for ix := int32(-4); ix <= 4; ix++ {
		for iy := int32(-4); iy <= 4; iy++ {
			for iz := int32(-4); iz <= 4; iz++ {
				v := Hash(ix, iy, iz)
				assert.InDelta(t, 1.0, float64(v.Length()), 1e-5)
			}
		}
	}
}

func TestHashDistinct(t *testing.T) {
	// neighboring cells must not share vectors
	a := Hash(0, 0, 0)
	b := Hash(1, 0, 0)
	c := Hash(0, 1, 0)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestGradientDeterministic(t *testing.T) {
	p := math32.Vec3(1.37, -2.21, 0.55)
	v1, g1 := Gradient(p)
	v2, g2 := Gradient(p)
	assert.Equal(t, v1, v2)
	assert.Equal(t, g1, g2)
}

// TestGradientFiniteDifference verifies the analytic gradient against
// a central finite difference estimate of the same field.
func TestGradientFiniteDifference(t *testing.T) {
	pts := []math32.Vector3{
		math32.Vec3(0.3, 0.7, 0.1),
		math32.Vec3(-1.4, 2.6, 3.8),
		math32.Vec3(5.5, -0.2, -7.9),
		math32.Vec3(0.01, 0.99, 0.5),
	}
	const eps = 1e-3
	for _, p := range pts {
		_, g := Gradient(p)
		for axis := 0; axis < 3; axis++ {
			d := math32.Vector3{}
			switch axis {
			case 0:
				d.X = eps
			case 1:
				d.Y = eps
			case 2:
				d.Z = eps
			}
			fd := (Value(p.Add(d)) - Value(p.Sub(d))) / (2 * eps)
			var an float32
			switch axis {
			case 0:
				an = g.X
			case 1:
				an = g.Y
			case 2:
				an = g.Z
			}
			assert.InDelta(t, float64(fd), float64(an), 5e-3, "at %v axis %d", p, axis)
		}
	}
}

// TestValueContinuity walks across a cell boundary in small steps and
// bounds the change in value by a Lipschitz-style constant times the
// step, checking there is no jump at the lattice plane.
func TestValueContinuity(t *testing.T) {
	const step = 1e-4
	const bound = 8.0 * step // field slope is O(1) at unit scale
	p := math32.Vec3(0.999, 0.5, 0.25)
	prev := Value(p)
	for i := 0; i < 30; i++ {
		p.X += step
		cur := Value(p)
		assert.Less(t, math32.Abs(cur-prev), float32(bound), "jump at x=%g", p.X)
		prev = cur
	}
}

func TestFade(t *testing.T) {
	f0, df0 := fade(0)
	f1, df1 := fade(1)
	assert.Equal(t, float32(0), f0)
	assert.Equal(t, float32(1), f1)
	assert.Equal(t, float32(0), df0)
	assert.Equal(t, float32(0), df1)
	fm, _ := fade(0.5)
	assert.InDelta(t, 0.5, float64(fm), 1e-6)
}

func TestValueRange(t *testing.T) {
	// lattice corners have zero value by construction
	assert.InDelta(t, 0, float64(Value(math32.Vec3(0, 0, 0))), 1e-6)
	assert.InDelta(t, 0, float64(Value(math32.Vec3(3, -2, 5))), 1e-6)
}
