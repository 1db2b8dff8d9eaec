// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/strands/streamline"
)

func TestLayouts(t *testing.T) {
	assert.NoError(t, streamline.LayoutCheck())
	assert.NoError(t, UniformsLayoutCheck())
}

func TestConfigDefaults(t *testing.T) {
	var cf Config
	cf.Defaults()
	assert.NoError(t, cf.Validate())
	assert.Equal(t, 8192, cf.Grid().TotalSegments())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero nx", func(c *Config) { c.Nx = 0 }},
		{"negative segments", func(c *Config) { c.Segments = -1 }},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"zero step", func(c *Config) { c.StepSize = 0 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"two sides", func(c *Config) { c.Sides = 2 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"bad samples", func(c *Config) { c.Samples = 2 }},
	}
	for _, tc := range cases {
		var cf Config
		cf.Defaults()
		tc.mod(&cf)
		assert.Error(t, cf.Validate(), tc.name)
	}
}

func TestConfigYAML(t *testing.T) {
	var cf Config
	cf.Defaults()
	cf.Nx = 7
	cf.NoiseScale = 1.25
	fname := filepath.Join(t.TempDir(), "strands.yaml")
	assert.NoError(t, cf.SaveYAML(fname))

	var got Config
	got.Defaults()
	assert.NoError(t, got.OpenYAML(fname))
	assert.Equal(t, cf, got)
}

func TestTubeMesh(t *testing.T) {
	pos, idx := TubeMesh(8)
	assert.Equal(t, 16, len(pos))
	assert.Equal(t, 48, len(idx))
	for i := 0; i < 8; i++ {
		assert.Equal(t, float32(0), pos[i].Z)
		assert.Equal(t, float32(1), pos[8+i].Z)
		// ring vertices on the unit circle
		r := pos[i].X*pos[i].X + pos[i].Y*pos[i].Y
		assert.InDelta(t, 1, float64(r), 1e-5)
	}
	for _, ix := range idx {
		assert.Less(t, int(ix), len(pos))
	}
}

func TestUniformsTimeOffsets(t *testing.T) {
	var cf Config
	cf.Defaults()
	var un Uniforms
	un.Defaults(&cf)
	assert.Equal(t, float32(0), un.Time)

	fs := cf.Sampler()
	un.SetTime(&cf, 2)
	want := fs.Offsets[1].Add(fs.Drift[1].MulScalar(2))
	assert.Equal(t, want, un.Offset1)
}

// Both pipelines bind uniforms at @group(0) and their segment var at
// @group(1), matching the group lists passed to the pipeline
// constructors in config.  The compute shader must see the segment
// buffer as read_write and the vertex shader as read, and neither
// shader may declare the other's access mode, or the shared buffer
// would carry conflicting usages within one pass.
func TestShaderGroups(t *testing.T) {
	assert.Contains(t, strandsShader,
		"@group(0) @binding(0) var<uniform> un: Uniforms;")
	assert.Contains(t, strandsShader,
		"@group(1) @binding(0) var<storage, read_write> segments: array<Segment>;")
	assert.NotContains(t, strandsShader, "<storage, read>")

	assert.Contains(t, tubeShader,
		"@group(0) @binding(0) var<uniform> un: Uniforms;")
	assert.Contains(t, tubeShader,
		"@group(1) @binding(0) var<storage, read> segments: array<Segment>;")
	assert.NotContains(t, tubeShader, "read_write")

	// no shader declares a group beyond the two each pipeline binds
	assert.Equal(t, 2, strings.Count(strandsShader, "@group("))
	assert.Equal(t, 2, strings.Count(tubeShader, "@group("))
}

func TestSystemGPU(t *testing.T) {
	t.Skip("Need software GPU on CI")
	var cf Config
	cf.Defaults()
	cf.Nx, cf.Ny, cf.Segments = 8, 8, 16
	sy, err := NewSystem(&cf)
	assert.NoError(t, err)
	defer sy.Release()

	un := sy.NewUniforms()
	assert.NoError(t, sy.RenderFrame(un))

	segs, err := sy.ReadSegments()
	assert.NoError(t, err)
	assert.Equal(t, cf.Grid().TotalSegments(), len(segs))

	// GPU integration must agree with the CPU reference
	ref := make([]streamline.Segment, cf.Grid().TotalSegments())
	assert.NoError(t, cf.Writer().Build(0, ref))
	assert.InDelta(t, float64(ref[0].StartPos.X), float64(segs[0].StartPos.X), 1e-4)
	assert.InDelta(t, float64(ref[0].EndPos.Y), float64(segs[0].EndPos.Y), 1e-4)

	img, err := sy.Image()
	assert.NoError(t, err)
	assert.Equal(t, cf.Width, img.Bounds().Dx())
}
