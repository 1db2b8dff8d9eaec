// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a GPU texture used as a render target: the color frame,
// the multisample buffer, or the depth buffer.  It optionally owns a
// CPU-mappable read buffer for grabbing rendered frames back to an
// image.
type Texture struct {
	// Format has the size, pixel format, and sample count.
	Format TextureFormat

	texture *wgpu.Texture
	view    *wgpu.TextureView

	// readBuffer for copying texture data back to the CPU.
	// Rows are padded out to readRowBytes for the 256 byte alignment
	// WebGPU requires of buffer copies.
	readBuffer   *wgpu.Buffer
	readRowBytes int
	readBytes    int

	device Device
}

// NewTexture returns a new texture for the given device.
func NewTexture(dev *Device) *Texture {
	return &Texture{device: *dev}
}

// View returns the texture view for rendering.
func (tx *Texture) View() *wgpu.TextureView { return tx.view }

// config creates the texture and view for the given format and usage.
func (tx *Texture) config(fmt *TextureFormat, samples int, usage wgpu.TextureUsage) error {
	tx.ReleaseTexture()
	tx.Format = *fmt
	tx.Format.Samples = samples
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(fmt.Size.X),
			Height:             uint32(fmt.Size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        fmt.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	view, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		t.Release()
		return err
	}
	tx.texture = t
	tx.view = view
	return nil
}

// ConfigRenderTexture configures this texture as a single-sample
// color render target that can also be copied back to the CPU.
func (tx *Texture) ConfigRenderTexture(dev *Device, fmt *TextureFormat) error {
	tx.device = *dev
	return tx.config(fmt, 1, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageCopySrc)
}

// ConfigMultisample configures this texture as the multisample color
// buffer that resolves into the frame texture.
func (tx *Texture) ConfigMultisample(dev *Device, fmt *TextureFormat) error {
	tx.device = *dev
	return tx.config(fmt, fmt.Samples, wgpu.TextureUsageRenderAttachment)
}

// ConfigDepth configures this texture as a depth buffer of the given
// depth format, matching the sample count of the color target.
func (tx *Texture) ConfigDepth(dev *Device, depthType Types, fmt *TextureFormat) error {
	tx.device = *dev
	df := *fmt
	df.Format = wgpu.TextureFormatDepth32Float
	return tx.config(&df, fmt.Samples, wgpu.TextureUsageRenderAttachment)
}

// ConfigReadBuffer ensures the CPU readback buffer exists at the
// right size for the current format.
func (tx *Texture) ConfigReadBuffer() error {
	rowBytes := MemSizeAlign(tx.Format.Size.X*4, 256)
	sz := rowBytes * tx.Format.Size.Y
	if tx.readBuffer != nil && tx.readRowBytes == rowBytes && tx.readBytes == sz {
		return nil
	}
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
	buf, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "TextureReadBuffer",
		Size:             uint64(sz),
		Usage:            wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.readBuffer = buf
	tx.readRowBytes = rowBytes
	tx.readBytes = sz
	return nil
}

// CopyToReadBuffer adds a command to copy this texture into the read
// buffer, which must have been configured via [ConfigReadBuffer].
func (tx *Texture) CopyToReadBuffer(cmd *wgpu.CommandEncoder) error {
	if tx.readBuffer == nil {
		if err := tx.ConfigReadBuffer(); err != nil {
			return err
		}
	}
	cmd.CopyTextureToBuffer(
		tx.texture.AsImageCopy(),
		&wgpu.ImageCopyBuffer{
			Buffer: tx.readBuffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(tx.readRowBytes),
				RowsPerImage: uint32(tx.Format.Size.Y),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(tx.Format.Size.X),
			Height:             uint32(tx.Format.Size.Y),
			DepthOrArrayLayers: 1,
		})
	return nil
}

// ReadGoImage maps the read buffer and returns the rendered frame as
// an RGBA image.  Submitted commands that copy into the read buffer
// must have completed: call Device.WaitDone first.
func (tx *Texture) ReadGoImage() (*image.RGBA, error) {
	if tx.readBuffer == nil {
		return nil, errors.Log(errors.New("gpu.Texture ReadGoImage: no read buffer configured"))
	}
	var status wgpu.BufferMapAsyncStatus
	err := tx.readBuffer.MapAsync(wgpu.MapModeRead, 0, uint64(tx.readBytes),
		func(s wgpu.BufferMapAsyncStatus) {
			status = s
		})
	if errors.Log(err) != nil {
		return nil, err
	}
	tx.device.WaitDone()
	if err := BufferMapAsyncError(status); errors.Log(err) != nil {
		return nil, err
	}
	defer tx.readBuffer.Unmap()
	data := tx.readBuffer.GetMappedRange(0, uint(tx.readBytes))

	sz := tx.Format.Size
	img := image.NewRGBA(image.Rectangle{Max: sz})
	rowBytes := sz.X * 4
	for y := 0; y < sz.Y; y++ {
		src := data[y*tx.readRowBytes : y*tx.readRowBytes+rowBytes]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], src)
	}
	return img, nil
}

// ReleaseTexture releases the texture and view, retaining any read buffer.
func (tx *Texture) ReleaseTexture() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

// Release releases all resources.
func (tx *Texture) Release() {
	tx.ReleaseTexture()
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
}
