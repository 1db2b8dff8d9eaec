// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size, format, and multisampling of a
// render target texture.
type TextureFormat struct {
	// Size of texture in pixels.
	Size image.Point

	// Format is the WebGPU pixel format.
	Format wgpu.TextureFormat

	// Samples is the multisampling anti-aliasing count: 1 = none,
	// 4 = the standard smooth-edge value.
	Samples int
}

// Defaults sets standard default format values.
func (tf *TextureFormat) Defaults() {
	tf.Set(1024, 768, wgpu.TextureFormatRGBA8UnormSrgb)
	tf.Samples = 4
}

// Set sets the width, height, and format.
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.Size = image.Point{X: w, Y: h}
	tf.Format = ft
}

// SetMultisample sets the number of multisampling samples,
// constrained to the values WebGPU supports (1 or 4).
func (tf *TextureFormat) SetMultisample(samples int) {
	if samples >= 4 {
		tf.Samples = 4
	} else {
		tf.Samples = 1
	}
}

// Bounds returns the rectangle for the full size of the texture.
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// Aspect returns the aspect ratio X / Y.
func (tf *TextureFormat) Aspect() float32 {
	if tf.Size.Y == 0 {
		return 1
	}
	return float32(tf.Size.X) / float32(tf.Size.Y)
}

func (tf *TextureFormat) String() string {
	return fmt.Sprintf("size: %v  format: %d  samples: %d", tf.Size, tf.Format, tf.Samples)
}
