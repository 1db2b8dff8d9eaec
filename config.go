// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strands

import (
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"cogentcore.org/strands/field"
	"cogentcore.org/strands/streamline"
)

// Config has the full configuration of a strand field: the seed grid,
// the field and integration parameters, tube appearance, and the
// render target.  All strand state is derived from it fresh every
// frame; nothing persists between frames except this configuration.
type Config struct {
	// Nx, Ny are the seed grid dimensions in strands.
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`

	// Segments is the fixed number of tube segments per strand.
	Segments int `yaml:"segments"`

	// Spacing is the world-space distance between adjacent seeds.
	Spacing float32 `yaml:"spacing"`

	// NoiseScale maps world coordinates into noise lattice coordinates.
	NoiseScale float32 `yaml:"noiseScale"`

	// StepSize is the forward Euler step h.
	StepSize float32 `yaml:"stepSize"`

	// Radius is the tube radius.
	Radius float32 `yaml:"radius"`

	// Sides is the number of vertices in the tube ring profile.
	Sides int `yaml:"sides"`

	// Color is the base strand color (RGBA, 0..1).
	Color math32.Vector4 `yaml:"color"`

	// ColorJitter scales the deterministic per-strand tint.
	ColorJitter float32 `yaml:"colorJitter"`

	// Ambient is the ambient light term added to the Lambertian shading.
	Ambient float32 `yaml:"ambient"`

	// LightDir is the directional light direction (normalized at use).
	LightDir math32.Vector3 `yaml:"lightDir"`

	// Width, Height are the render target size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Samples is the multisampling count: 1 or 4.
	Samples int `yaml:"samples"`
}

// Defaults sets standard values for all parameters.
func (cf *Config) Defaults() {
	cf.Nx = 16
	cf.Ny = 16
	cf.Segments = 32
	cf.Spacing = 0.25
	cf.NoiseScale = 0.5
	cf.StepSize = 0.08
	cf.Radius = 0.02
	cf.Sides = 8
	cf.Color = math32.Vec4(0.2, 0.5, 0.9, 1)
	cf.ColorJitter = 0.25
	cf.Ambient = 0.2
	cf.LightDir = math32.Vec3(0.35, 0.8, 0.45)
	cf.Width = 1024
	cf.Height = 768
	cf.Samples = 4
}

// Validate checks the configuration.  Errors here are fatal setup
// errors: nothing is re-checked per frame.
func (cf *Config) Validate() error {
	gr := cf.Grid()
	if err := gr.Validate(gr.TotalSegments()); err != nil {
		return err
	}
	if cf.Spacing <= 0 {
		return fmt.Errorf("strands.Config: spacing must be positive: %g", cf.Spacing)
	}
	if cf.StepSize <= 0 {
		return fmt.Errorf("strands.Config: stepSize must be positive: %g", cf.StepSize)
	}
	if cf.Radius <= 0 {
		return fmt.Errorf("strands.Config: radius must be positive: %g", cf.Radius)
	}
	if cf.Sides < 3 {
		return fmt.Errorf("strands.Config: sides must be at least 3: %d", cf.Sides)
	}
	if cf.Width <= 0 || cf.Height <= 0 {
		return fmt.Errorf("strands.Config: render size must be positive: %dx%d", cf.Width, cf.Height)
	}
	if cf.Samples != 1 && cf.Samples != 4 {
		return fmt.Errorf("strands.Config: samples must be 1 or 4: %d", cf.Samples)
	}
	return nil
}

// Grid returns the [streamline.Grid] for this configuration.
func (cf *Config) Grid() streamline.Grid {
	return streamline.Grid{Nx: cf.Nx, Ny: cf.Ny, Segments: cf.Segments, Spacing: cf.Spacing}
}

// Sampler returns a [field.Sampler] for this configuration, with the
// standard decorrelation offsets and drift.
func (cf *Config) Sampler() *field.Sampler {
	return field.NewSampler(cf.NoiseScale)
}

// Writer returns the CPU [streamline.Writer] for this configuration,
// used by tests and as the fallback when no GPU adapter is available.
func (cf *Config) Writer() *streamline.Writer {
	return &streamline.Writer{
		Grid:        cf.Grid(),
		Field:       cf.Sampler(),
		StepSize:    cf.StepSize,
		Radius:      cf.Radius,
		Color:       cf.Color,
		ColorJitter: cf.ColorJitter,
	}
}

// OpenYAML reads the configuration from the given YAML file,
// on top of current values.
func (cf *Config) OpenYAML(fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cf)
}

// SaveYAML writes the configuration to the given YAML file.
func (cf *Config) SaveYAML(fname string) error {
	b, err := yaml.Marshal(cf)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, b, 0666)
}
