// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamline

import (
	"fmt"
	"sync"

	"cogentcore.org/core/math32"

	"cogentcore.org/strands/field"
	"cogentcore.org/strands/noise"
)

// Grid is the 2D grid of strand seed points.  Each strand is identified
// by its (ix, iy) grid coordinate, linearized row-major as iy*Nx + ix,
// and owns a unique contiguous range of the instance buffer computed
// from that index.  This bijection is the only synchronization the
// parallel writers need: no two strands ever address the same memory.
type Grid struct {
	// Nx, Ny are the grid dimensions in strands.
	Nx, Ny int

	// Segments is the fixed number of segments per strand.
	Segments int

	// Spacing is the world-space distance between adjacent seeds.
	Spacing float32
}

// Strands returns the total number of strands, Nx * Ny.
func (gr Grid) Strands() int {
	return gr.Nx * gr.Ny
}

// TotalSegments returns the required instance buffer length in records.
func (gr Grid) TotalSegments() int {
	return gr.Strands() * gr.Segments
}

// SeedPosition returns the deterministic seed position for the strand
// at grid coordinate (ix, iy): the grid is centered on the origin in
// the XZ plane with Y = 0.
func (gr Grid) SeedPosition(ix, iy int) math32.Vector3 {
	x := (float32(ix) - 0.5*float32(gr.Nx-1)) * gr.Spacing
	z := (float32(iy) - 0.5*float32(gr.Ny-1)) * gr.Spacing
	return math32.Vec3(x, 0, z)
}

// Offset returns the first buffer index owned by strand (ix, iy).
// The strand writes records [Offset, Offset+Segments).
func (gr Grid) Offset(ix, iy int) int {
	return (iy*gr.Nx + ix) * gr.Segments
}

// Validate checks the static size formula: the grid dimensions must be
// positive and the backing buffer must hold exactly TotalSegments
// records.  An undersized buffer is undefined memory corruption at
// write time, not a catchable error, so this must pass at allocation /
// configuration time; nothing is re-checked per write.
func (gr Grid) Validate(bufLen int) error {
	if gr.Nx <= 0 || gr.Ny <= 0 || gr.Segments <= 0 {
		return fmt.Errorf("streamline.Grid: dimensions must be positive: %dx%d x %d segments", gr.Nx, gr.Ny, gr.Segments)
	}
	if need := gr.TotalSegments(); bufLen != need {
		return fmt.Errorf("streamline.Grid: buffer holds %d records, grid requires %d", bufLen, need)
	}
	return nil
}

// Writer drives the per-strand integration and owns the worker-to-range
// mapping.  The whole buffer is rebuilt from scratch on every Build
// call as a pure function of (time, grid, field parameters): nothing
// persists between frames.
type Writer struct {
	Grid  Grid
	Field *field.Sampler

	// StepSize is the Euler step h.
	StepSize float32

	// Radius is the tube radius written into every record.
	Radius float32

	// Color is the base strand color.
	Color math32.Vector4

	// ColorJitter scales a deterministic per-strand tint derived from
	// the strand's grid coordinate.  Zero disables it.
	ColorJitter float32
}

// strandColor returns the per-strand color: the base color plus a
// hash-derived tint so neighboring strands are distinguishable.
func (w *Writer) strandColor(ix, iy int) math32.Vector4 {
	if w.ColorJitter == 0 {
		return w.Color
	}
	h := noise.Hash(int32(ix), int32(iy), 0).MulScalar(w.ColorJitter)
	c := w.Color
	c.X = math32.Clamp(c.X+h.X, 0, 1)
	c.Y = math32.Clamp(c.Y+h.Y, 0, 1)
	c.Z = math32.Clamp(c.Z+h.Z, 0, 1)
	return c
}

// strand integrates the single strand (ix, iy) into its buffer range.
func (w *Writer) strand(ix, iy int, t float32, buf []Segment) {
	off := w.Grid.Offset(ix, iy)
	seed := w.Grid.SeedPosition(ix, iy)
	clr := w.strandColor(ix, iy)
	Integrate(seed, w.Grid.Segments, w.StepSize, w.Field, t, clr, w.Radius, buf[off:off+w.Grid.Segments])
}

// Build rebuilds the entire instance buffer serially at time t.
func (w *Writer) Build(t float32, buf []Segment) error {
	if err := w.Grid.Validate(len(buf)); err != nil {
		return err
	}
	for iy := 0; iy < w.Grid.Ny; iy++ {
		for ix := 0; ix < w.Grid.Nx; ix++ {
			w.strand(ix, iy, t, buf)
		}
	}
	return nil
}

// BuildParallel rebuilds the entire instance buffer at time t with one
// goroutine per grid row.  Strands share no mutable state and each
// writes only its own disjoint range, so no locks or atomics are used;
// the WaitGroup is the single coarse barrier before the buffer may be
// read.
func (w *Writer) BuildParallel(t float32, buf []Segment) error {
	if err := w.Grid.Validate(len(buf)); err != nil {
		return err
	}
	var wg sync.WaitGroup
	for iy := 0; iy < w.Grid.Ny; iy++ {
		wg.Add(1)
		go func(iy int) {
			defer wg.Done()
			for ix := 0; ix < w.Grid.Nx; ix++ {
				w.strand(ix, iy, t, buf)
			}
		}(iy)
	}
	wg.Wait()
	return nil
}
