// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a pipeline for rendering.  It renders an indexed
// mesh from the VertexGroup, replicated per instance, with per-instance
// data fetched from a Storage variable indexed by the instance index.
type GraphicsPipeline struct {
	Pipeline

	// Primitive topology and culling.
	Primitive wgpu.PrimitiveState

	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new pipeline in given system.
func NewGraphicsPipeline(name string, sy *System) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.init(name, sy)
	pl.Primitive = wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeBack,
	}
	return pl
}

// Config creates the render pipeline from current shaders, vars,
// and render format.  Must be called after all vars are configured.
func (pl *GraphicsPipeline) Config() error {
	lay, err := pl.pipelineLayout()
	if err != nil {
		return err
	}
	vert, err := pl.EntryByType(VertexShader)
	if errors.Log(err) != nil {
		return err
	}
	frag, err := pl.EntryByType(FragmentShader)
	if errors.Log(err) != nil {
		return err
	}
	rd := pl.System.Render()
	var vbl []wgpu.VertexBufferLayout
	if vg := pl.Vars().VertexGroup(); vg != nil {
		vbl = vg.vertexLayout()
	}
	desc := wgpu.RenderPipelineDescriptor{
		Label:  pl.Name,
		Layout: lay,
		Vertex: wgpu.VertexState{
			Module:     vert.Shader.Module(),
			EntryPoint: vert.Entry,
			Buffers:    vbl,
		},
		Primitive: pl.Primitive,
		Fragment: &wgpu.FragmentState{
			Module:     frag.Shader.Module(),
			EntryPoint: frag.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format: rd.Format.Format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorZero,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorZero,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  uint32(rd.Format.Samples),
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
	if rd.HasDepth {
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	rp, err := pl.System.Device().Device.CreateRenderPipeline(&desc)
	if errors.Log(err) != nil {
		return err
	}
	pl.releasePipeline()
	pl.renderPipeline = rp
	return nil
}

// BindPipeline binds this pipeline and all current bind groups and
// vertex buffers to the given render pass.
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		if err := pl.Config(); err != nil {
			return err
		}
	}
	rp.SetPipeline(pl.renderPipeline)
	vs := pl.Vars()
	for i, g := range pl.groupOrder() {
		vg := vs.Group(g)
		bg, err := vg.bindGroup()
		if err != nil {
			return err
		}
		rp.SetBindGroup(uint32(i), bg, nil)
	}
	pl.BindVertex(rp)
	return nil
}

// BindVertex binds the vertex and index buffers to the render pass.
func (pl *GraphicsPipeline) BindVertex(rp *wgpu.RenderPassEncoder) {
	vg := pl.Vars().VertexGroup()
	if vg == nil {
		return
	}
	slot := 0
	for _, vr := range vg.Vars {
		vl := vr.Values.CurrentValue()
		if vl.buffer == nil {
			continue
		}
		switch vr.Role {
		case Vertex:
			rp.SetVertexBuffer(uint32(slot), vl.buffer, 0, wgpu.WholeSize)
			slot++
		case Index:
			rp.SetIndexBuffer(vl.buffer, vr.Type.IndexType(), 0, wgpu.WholeSize)
		}
	}
}

// DrawIndexed draws the indexed mesh with given number of instances.
func (pl *GraphicsPipeline) DrawIndexed(rp *wgpu.RenderPassEncoder, instances int) {
	vg := pl.Vars().VertexGroup()
	if vg == nil {
		return
	}
	ix := vg.IndexVar()
	if ix == nil {
		return
	}
	n := ix.Values.CurrentValue().DynamicN()
	rp.DrawIndexed(uint32(n), uint32(instances), 0, 0, 0)
}

func (pl *GraphicsPipeline) releasePipeline() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

// Release releases all resources.
func (pl *GraphicsPipeline) Release() {
	pl.releasePipeline()
	pl.releaseLayout()
	pl.releaseShaders()
}
