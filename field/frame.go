// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "cogentcore.org/core/math32"

// Frame is a local orthonormal basis at a point on a streamline.
// All three vectors are unit length and mutually orthogonal.
// It is constructed fresh at every sample point: there is no parallel
// transport between points, so the basis can visibly twist where the
// tangent passes near the reference axis.  See [Framer].
type Frame struct {
	Normal   math32.Vector3
	Binormal math32.Vector3
	Tangent  math32.Vector3
}

// Framer constructs a [Frame] from a raw (non-normalized) field tangent.
// It is a replaceable strategy: the default [UpFramer] derives the basis
// from a fixed world up axis, which is cheap but twists near vertical
// tangents.  A transport-based Framer can be substituted without
// touching the integrator.
type Framer interface {
	Frame(tangent math32.Vector3) Frame
}

// UpFramer derives the frame normal by crossing the tangent against a
// fixed world Up reference, substituting Fallback when the tangent is
// nearly parallel to Up.  It never fails: a degenerate (numerically
// zero) tangent produces a valid frame along Up instead of an error.
type UpFramer struct {
	Up       math32.Vector3
	Fallback math32.Vector3
}

// NewUpFramer returns an UpFramer with the standard +Y up reference
// and +X fallback axis.
func NewUpFramer() *UpFramer {
	return &UpFramer{Up: math32.Vec3(0, 1, 0), Fallback: math32.Vec3(1, 0, 0)}
}

// Frame implements [Framer].
func (uf *UpFramer) Frame(tangent math32.Vector3) Frame {
	tu := tangent
	tl := tu.Length()
	if tl < 1e-8 {
		tu = uf.Up
	} else {
		tu = tu.DivScalar(tl)
	}
	n := tu.Cross(uf.Up)
	if n.Length() < 1e-6 {
		n = tu.Cross(uf.Fallback)
	}
	n = n.Normal()
	return Frame{Normal: n, Binormal: n.Cross(tu), Tangent: tu}
}
