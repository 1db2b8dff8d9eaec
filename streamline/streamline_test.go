// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamline

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"cogentcore.org/strands/field"
)

func testWriter(nx, ny, segs int) *Writer {
	return &Writer{
		Grid:        Grid{Nx: nx, Ny: ny, Segments: segs, Spacing: 0.25},
		Field:       field.NewSampler(0.5),
		StepSize:    0.08,
		Radius:      0.02,
		Color:       math32.Vec4(0.2, 0.5, 0.9, 1),
		ColorJitter: 0.25,
	}
}

func TestLayout(t *testing.T) {
	assert.NoError(t, LayoutCheck())
}

func TestGridValidate(t *testing.T) {
	gr := Grid{Nx: 4, Ny: 3, Segments: 8, Spacing: 1}
	assert.Equal(t, 12, gr.Strands())
	assert.Equal(t, 96, gr.TotalSegments())
	assert.NoError(t, gr.Validate(96))
	assert.Error(t, gr.Validate(95))
	assert.Error(t, gr.Validate(97))
	assert.Error(t, gr.Validate(0))

	bad := Grid{Nx: 0, Ny: 3, Segments: 8}
	assert.Error(t, bad.Validate(0))
	neg := Grid{Nx: 4, Ny: 3, Segments: -1}
	assert.Error(t, neg.Validate(0))
}

func TestGridOffsetsDisjoint(t *testing.T) {
	gr := Grid{Nx: 5, Ny: 4, Segments: 7, Spacing: 1}
	seen := map[int]bool{}
	for iy := 0; iy < gr.Ny; iy++ {
		for ix := 0; ix < gr.Nx; ix++ {
			off := gr.Offset(ix, iy)
			assert.False(t, seen[off], "offset %d reused", off)
			seen[off] = true
			assert.Less(t, off+gr.Segments-1, gr.TotalSegments())
		}
	}
}

func TestSeedPositionCentered(t *testing.T) {
	gr := Grid{Nx: 3, Ny: 3, Segments: 1, Spacing: 2}
	c := gr.SeedPosition(1, 1)
	assert.Equal(t, math32.Vec3(0, 0, 0), c)
	a := gr.SeedPosition(0, 0)
	b := gr.SeedPosition(2, 2)
	assert.Equal(t, a.X, -b.X)
	assert.Equal(t, a.Z, -b.Z)
}

// TestChainContinuity checks the exact equality invariant between
// consecutive records of one strand: end fields of segment i must be
// bit-identical to the start fields of segment i+1.
func TestChainContinuity(t *testing.T) {
	w := testWriter(4, 4, 16)
	buf := make([]Segment, w.Grid.TotalSegments())
	assert.NoError(t, w.Build(0.5, buf))
	for iy := 0; iy < w.Grid.Ny; iy++ {
		for ix := 0; ix < w.Grid.Nx; ix++ {
			off := w.Grid.Offset(ix, iy)
			for k := 1; k < w.Grid.Segments; k++ {
				prev := buf[off+k-1]
				cur := buf[off+k]
				assert.Equal(t, prev.EndPos, cur.StartPos, "strand (%d,%d) segment %d", ix, iy, k)
				assert.Equal(t, prev.EndNormal, cur.StartNormal)
				assert.Equal(t, prev.EndBinormal, cur.StartBinormal)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	w := testWriter(4, 4, 8)
	a := make([]Segment, w.Grid.TotalSegments())
	b := make([]Segment, w.Grid.TotalSegments())
	assert.NoError(t, w.Build(1.5, a))
	assert.NoError(t, w.Build(1.5, b))
	assert.Equal(t, a, b)
}

func TestBuildParallelMatchesSerial(t *testing.T) {
	w := testWriter(8, 8, 12)
	ser := make([]Segment, w.Grid.TotalSegments())
	par := make([]Segment, w.Grid.TotalSegments())
	assert.NoError(t, w.Build(0.25, ser))
	assert.NoError(t, w.BuildParallel(0.25, par))
	assert.Equal(t, ser, par)
}

// TestEverySlotWritten pre-fills the buffer with a sentinel and checks
// the parallel build overwrites every record exactly: no gaps, no
// out-of-range writes (the range check is the buffer length itself).
func TestEverySlotWritten(t *testing.T) {
	w := testWriter(6, 5, 9)
	buf := make([]Segment, w.Grid.TotalSegments())
	for i := range buf {
		buf[i].Radius = -1
	}
	assert.NoError(t, w.BuildParallel(0, buf))
	for i := range buf {
		assert.Equal(t, w.Radius, buf[i].Radius, "slot %d not written", i)
	}
}

func TestBuildValidatesSize(t *testing.T) {
	w := testWriter(4, 4, 8)
	short := make([]Segment, w.Grid.TotalSegments()-1)
	assert.Error(t, w.Build(0, short))
	assert.Error(t, w.BuildParallel(0, short))
}

// TestStandardScenario is the 16x16 grid with 32 segments per strand:
// 256 strands, 8192 records, repeated builds deterministic, and the
// first strand starting exactly at its seed.
func TestStandardScenario(t *testing.T) {
	w := testWriter(16, 16, 32)
	assert.Equal(t, 256, w.Grid.Strands())
	assert.Equal(t, 8192, w.Grid.TotalSegments())
	buf := make([]Segment, w.Grid.TotalSegments())
	assert.NoError(t, w.BuildParallel(0.1, buf))

	buf2 := make([]Segment, w.Grid.TotalSegments())
	assert.NoError(t, w.BuildParallel(0.1, buf2))
	assert.Equal(t, buf[0], buf2[0])

	seed := w.Grid.SeedPosition(0, 0)
	assert.Equal(t, seed, buf[0].StartPos)
}

// TestDoubledSegments doubles the per-strand segment count and checks
// that counts double exactly and that each strand's first half is
// byte-identical to the original: integration is a pure prefix.
func TestDoubledSegments(t *testing.T) {
	w1 := testWriter(8, 8, 16)
	w2 := testWriter(8, 8, 32)
	b1 := make([]Segment, w1.Grid.TotalSegments())
	b2 := make([]Segment, w2.Grid.TotalSegments())
	assert.Equal(t, 2*len(b1), len(b2))
	assert.NoError(t, w1.Build(0.7, b1))
	assert.NoError(t, w2.Build(0.7, b2))
	for iy := 0; iy < 8; iy++ {
		for ix := 0; ix < 8; ix++ {
			o1 := w1.Grid.Offset(ix, iy)
			o2 := w2.Grid.Offset(ix, iy)
			assert.Equal(t, b1[o1:o1+16], b2[o2:o2+16], "strand (%d,%d)", ix, iy)
		}
	}
}

func TestIntegrateSegmentFields(t *testing.T) {
	fs := field.NewSampler(0.5)
	out := make([]Segment, 4)
	clr := math32.Vec4(1, 0, 0, 1)
	Integrate(math32.Vec3(0.1, 0, 0.2), 4, 0.05, fs, 0, clr, 0.03, out)
	for i, sg := range out {
		assert.Equal(t, clr, sg.Color, "segment %d", i)
		assert.Equal(t, float32(0.03), sg.Radius)
		assert.NotEqual(t, sg.StartPos, sg.EndPos, "segment %d did not advance", i)
	}
}

func TestColorJitterDeterministic(t *testing.T) {
	w := testWriter(4, 4, 2)
	a := w.strandColor(2, 3)
	b := w.strandColor(2, 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, w.strandColor(3, 2))

	w.ColorJitter = 0
	assert.Equal(t, w.Color, w.strandColor(2, 3))
}
