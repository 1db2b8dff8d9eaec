// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strands

import (
	_ "embed"
	"fmt"
	"image"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/slicesx"
	"github.com/cogentcore/webgpu/wgpu"

	"cogentcore.org/strands/gpu"
	"cogentcore.org/strands/streamline"
)

//go:embed shaders/strands.wgsl
var strandsShader string

//go:embed shaders/tube.wgsl
var tubeShader string

// Var group numbers.  The segment buffer has two vars over one shared
// GPU buffer: read-write for the compute stage and read-only for the
// vertex stage, as WebGPU requires read-only storage in vertex
// shaders.  Each pipeline binds only its own pair of groups, at
// @group(0) and @group(1), so neither pass sees both usages of the
// shared buffer in its usage scope.
const (
	UniformsGroup = iota
	ComputeSegmentsGroup
	RenderSegmentsGroup
)

// System owns the full per-frame pipeline: the compute pass that
// integrates every strand into the shared segment buffer, and the
// render pass that draws one tube instance per segment.  Both passes
// are encoded on one command encoder and submitted as one unit, so
// the queue submission is the single barrier between the stages.
type System struct {
	// Config is the validated configuration this system was built for.
	Config Config

	// GPU is the gpu access object.
	GPU *gpu.GPU

	// Sys is the merged compute + graphics system.
	Sys *gpu.System

	// Frame is the offscreen render target.
	Frame *gpu.RenderTexture

	device  *gpu.Device
	compute *gpu.ComputePipeline
	tubes   *gpu.GraphicsPipeline
}

// NewSystem creates the full GPU pipeline for the given configuration.
// It fails with an error on invalid configuration, layout mismatch
// between the Go structs and the shaders, or when no WebGPU adapter
// is available; in the latter case callers can fall back to the CPU
// path via [Config.Writer].
func NewSystem(cf *Config) (*System, error) {
	if err := cf.Validate(); err != nil {
		return nil, errors.Log(err)
	}
	if err := streamline.LayoutCheck(); err != nil {
		return nil, errors.Log(err)
	}
	if err := UniformsLayoutCheck(); err != nil {
		return nil, errors.Log(err)
	}
	gp, dev, err := gpu.NoDisplayGPU()
	if err != nil {
		return nil, err
	}
	sy := &System{Config: *cf, GPU: gp, device: dev}
	if err := sy.config(); err != nil {
		sy.Release()
		return nil, err
	}
	return sy, nil
}

// config builds the vars, buffers, shaders, and pipelines.
func (sy *System) config() error {
	cf := &sy.Config
	sy.Frame = gpu.NewRenderTexture(sy.GPU, sy.device,
		image.Point{X: cf.Width, Y: cf.Height}, cf.Samples, gpu.Depth32)
	sy.Sys = gpu.NewSystem("strands", sy.GPU, sy.device)
	sy.Sys.SetRenderer(sy.Frame)
	vs := &sy.Sys.Vars

	vtx := vs.AddVertexGroup()
	vtx.Add("Pos", gpu.Float32Vector3, 0, gpu.VertexShader)
	vtx.Add("Index", gpu.Uint32, 0, gpu.VertexShader)

	ug := vs.AddGroup(gpu.Uniform, "Uniforms")
	ug.AddStruct("Uniforms", int(unsafe.Sizeof(Uniforms{})), 1,
		gpu.ComputeShader, gpu.VertexShader, gpu.FragmentShader)

	cg := vs.AddGroup(gpu.Storage, "ComputeSegments")
	cg.AddStruct("Segments", streamline.SegmentBytes, 0, gpu.ComputeShader)

	rg := vs.AddGroup(gpu.Storage, "RenderSegments")
	rvar := rg.AddStruct("Segments", streamline.SegmentBytes, 0, gpu.VertexShader)
	rvar.ReadOnly = true

	sy.compute = sy.Sys.AddComputePipeline("strands", UniformsGroup, ComputeSegmentsGroup)
	csh := sy.compute.AddShader("strands")
	if err := csh.OpenCode(sy.shaderConsts() + strandsShader); err != nil {
		return err
	}
	sy.compute.AddEntry(csh, gpu.ComputeShader, "main")

	sy.tubes = sy.Sys.AddGraphicsPipeline("tubes", UniformsGroup, RenderSegmentsGroup)
	tsh := sy.tubes.AddShader("tube")
	if err := tsh.OpenCode(tubeShader); err != nil {
		return err
	}
	sy.tubes.AddEntry(tsh, gpu.VertexShader, "vs_main")
	sy.tubes.AddEntry(tsh, gpu.FragmentShader, "fs_main")
	// frames can flip handedness along a strand, so both tube faces
	// must draw
	sy.tubes.Primitive.CullMode = wgpu.CullModeNone

	if err := sy.Sys.Vars.Config(sy.device); err != nil {
		return err
	}

	pos, idx := TubeMesh(cf.Sides)
	if err := gpu.SetValueFrom(vs.ValueByIndex(gpu.VertexGroup, "Pos", 0), pos); err != nil {
		return err
	}
	if err := gpu.SetValueFrom(vs.ValueByIndex(gpu.VertexGroup, "Index", 0), idx); err != nil {
		return err
	}

	total := cf.Grid().TotalSegments()
	cval := vs.ValueByIndex(ComputeSegmentsGroup, "Segments", 0)
	cval.SetDynamicN(total)
	vs.ValueByIndex(RenderSegmentsGroup, "Segments", 0).ShareBufferWith(cval)

	return sy.Sys.Config()
}

// shaderConsts returns the const header baked into the compute shader:
// the fixed loop bound and the configuration constants that are not
// per-frame uniforms.
func (sy *System) shaderConsts() string {
	cf := &sy.Config
	return fmt.Sprintf("const SEGMENTS: u32 = %du;\nconst SPACING: f32 = %g;\nconst COLOR_JITTER: f32 = %g;\n\n",
		cf.Segments, cf.Spacing, cf.ColorJitter)
}

// NewUniforms returns a [Uniforms] block initialized from the system
// configuration at time 0.
func (sy *System) NewUniforms() *Uniforms {
	un := &Uniforms{}
	un.Defaults(&sy.Config)
	return un
}

// RenderFrame uploads the given uniforms and submits one complete
// frame: the compute pass integrating every strand, then the render
// pass drawing every segment instance, on a single command encoder.
// A frame is submitted whole or not at all: any error aborts it.
func (sy *System) RenderFrame(un *Uniforms) error {
	uval := sy.Sys.Vars.ValueByIndex(UniformsGroup, "Uniforms", 0)
	if err := gpu.SetValueFrom(uval, []Uniforms{*un}); err != nil {
		return err
	}
	cmd, err := sy.Sys.NewCommandEncoder()
	if err != nil {
		return err
	}
	cf := &sy.Config

	cp, err := sy.Sys.BeginComputePass(cmd)
	if err != nil {
		cmd.Release()
		return err
	}
	if err := sy.compute.BindPipeline(cp); err != nil {
		cp.Release()
		cmd.Release()
		return err
	}
	sy.compute.Dispatch(cp, gpu.Warps(cf.Nx, 8), gpu.Warps(cf.Ny, 8), 1)
	cp.End()
	cp.Release()

	rp, err := sy.Sys.BeginRenderPass(cmd)
	if err != nil {
		cmd.Release()
		return err
	}
	if err := sy.tubes.BindPipeline(rp); err != nil {
		rp.Release()
		cmd.Release()
		return err
	}
	sy.tubes.DrawIndexed(rp, cf.Grid().TotalSegments())
	rp.End()
	rp.Release()

	return sy.Sys.SubmitEnd(cmd)
}

// SetSize sets the render target size; strand data is unaffected,
// only the target and the projection aspect change (the caller sets
// the aspect on its next Uniforms).
func (sy *System) SetSize(size image.Point) {
	sy.Frame.SetSize(size)
	sy.Config.Width = size.X
	sy.Config.Height = size.Y
}

// Image returns the currently rendered frame as an image, blocking
// until the render is complete.
func (sy *System) Image() (*image.RGBA, error) {
	cmd, err := sy.Sys.NewCommandEncoder()
	if err != nil {
		return nil, err
	}
	if err := sy.Frame.GrabImage(cmd); err != nil {
		cmd.Release()
		return nil, err
	}
	if err := sy.Sys.SubmitEnd(cmd); err != nil {
		return nil, err
	}
	sy.Sys.WaitDone()
	return sy.Frame.Frame.ReadGoImage()
}

// ReadSegments reads the segment buffer back from the GPU, blocking
// until complete.  This is for validation and testing: the render
// pass reads the buffer directly on the GPU.
func (sy *System) ReadSegments() ([]streamline.Segment, error) {
	cval := sy.Sys.Vars.ValueByIndex(ComputeSegmentsGroup, "Segments", 0)
	cmd, err := sy.Sys.NewCommandEncoder()
	if err != nil {
		return nil, err
	}
	if err := cval.GPUToRead(cmd); err != nil {
		cmd.Release()
		return nil, err
	}
	if err := sy.Sys.SubmitEnd(cmd); err != nil {
		return nil, err
	}
	sy.Sys.WaitDone()
	if err := cval.ReadSync(); err != nil {
		return nil, err
	}
	var segs []streamline.Segment
	segs = slicesx.SetLength(segs, sy.Config.Grid().TotalSegments())
	if err := gpu.CopyValueToBytes(cval, segs); err != nil {
		return nil, err
	}
	return segs, nil
}

// Release releases all GPU resources.
func (sy *System) Release() {
	if sy.Sys != nil {
		sy.Sys.Release()
		sy.Sys = nil
	}
	if sy.Frame != nil {
		sy.Frame.Release()
		sy.Frame = nil
	}
	if sy.device != nil {
		sy.device.Release()
		sy.device = nil
	}
	if sy.GPU != nil {
		sy.GPU.Release()
		sy.GPU = nil
	}
}

// CameraAspect returns the current render target aspect ratio.
func (sy *System) CameraAspect() float32 {
	return float32(sy.Config.Width) / float32(sy.Config.Height)
}
