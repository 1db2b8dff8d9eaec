// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a single WGSL shader module.
type Shader struct {
	Name string

	device Device
	module *wgpu.ShaderModule
}

// NewShader returns a new shader for the given device.
func NewShader(name string, dev *Device) *Shader {
	return &Shader{Name: name, device: *dev}
}

// OpenCode compiles the given WGSL source code into the shader module.
func (sh *Shader) OpenCode(code string) error {
	sh.Release()
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if errors.Log(err) != nil {
		return err
	}
	sh.module = module
	return nil
}

// Module returns the compiled module, nil if not yet compiled.
func (sh *Shader) Module() *wgpu.ShaderModule { return sh.module }

// Release destroys the shader module.
func (sh *Shader) Release() {
	if sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}

// ShaderEntry is one entry point in a [Shader], used by a pipeline.
type ShaderEntry struct {
	// Shader with the compiled module.
	Shader *Shader

	// Type of shader stage.
	Type ShaderTypes

	// Entry function name, e.g. "main".
	Entry string
}

// NewShaderEntry returns a new entry for given shader, stage, and
// entry point function.
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	return &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
}
