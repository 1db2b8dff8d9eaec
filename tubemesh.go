// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strands

import (
	"cogentcore.org/core/math32"
)

// TubeMesh returns the canonical tube segment mesh shared by every
// instance: two rings of sides vertices on the unit circle in the
// local XY plane, at Z = 0 (start) and Z = 1 (end), with the side
// walls triangulated between them.  The vertex shader reads the ring
// angle from the XY components and the start/end interpolation factor
// from Z, so positions are the only vertex attribute.
func TubeMesh(sides int) ([]math32.Vector3, []uint32) {
	pos := make([]math32.Vector3, 2*sides)
	for i := 0; i < sides; i++ {
		ang := 2 * math32.Pi * float32(i) / float32(sides)
		x := math32.Cos(ang)
		y := math32.Sin(ang)
		pos[i] = math32.Vec3(x, y, 0)
		pos[sides+i] = math32.Vec3(x, y, 1)
	}
	idx := make([]uint32, 0, 6*sides)
	for i := 0; i < sides; i++ {
		j := (i + 1) % sides
		a := uint32(i)
		b := uint32(j)
		c := uint32(sides + i)
		d := uint32(sides + j)
		idx = append(idx, a, b, c, b, d, c)
	}
	return pos, idx
}
