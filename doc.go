// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strands renders an animated field of divergence-free
// curl-noise streamlines as instanced, lit tubes, rebuilt from scratch
// every frame on the GPU.
//
// Each frame has two sequential stages with a single coarse barrier
// between them: a compute pass integrates every strand through the
// curl field into a flat segment buffer, and a render pass draws one
// tube instance per segment, reading the same buffer.  Both passes
// are encoded on one command encoder and submitted together, so the
// queue submission is the only synchronization between the stages.
//
// The noise, field, and streamline packages are the CPU reference
// implementation of the compute stage, mirrored record for record by
// the WGSL shaders; they drive the tests and serve as the fallback
// when no WebGPU adapter is available.
package strands
