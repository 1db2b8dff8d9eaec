// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamline

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/strands/field"
)

// Integrate advances one strand from seed through the field using
// explicit forward Euler steps:
//
//	position[k+1] = position[k] + h * tangent(position[k])
//
// and writes exactly n segments into out, which must have room for them.
// The frame is recomputed at every new position rather than carried
// forward, keeping it locally consistent with the field at the cost of
// possible twist between steps.  The step count is fixed: there is no
// early termination and no adaptive refinement, so the operation is
// branch-free and restartable: the same (seed, t) always produces the
// same chain.  Drift accumulates over steps but is bounded by the small
// fixed iteration count; no correction is attempted.
func Integrate(seed math32.Vector3, n int, h float32, fs *field.Sampler, t float32, clr math32.Vector4, radius float32, out []Segment) {
	cur := Point{Pos: seed}
	tan, fr := fs.Sample(cur.Pos, t)
	cur.Frame = fr
	for k := 0; k < n; k++ {
		next := Point{Pos: cur.Pos.Add(tan.MulScalar(h))}
		ntan, nfr := fs.Sample(next.Pos, t)
		next.Frame = nfr

		sg := &out[k]
		sg.SetStart(cur)
		sg.SetEnd(next)
		sg.Color = clr
		sg.Radius = radius

		cur = next
		tan = ntan
	}
}
