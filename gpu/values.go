// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Value represents one instance of the value data for a [Var],
// with its own GPU buffer.
type Value struct {
	// Name is optional, for user reference.
	Name string

	// Index of this value within the Var list of values.
	Index int

	// AllocSize is the total allocated size of the buffer in bytes.
	AllocSize int

	role   VarRoles
	vr     *Var
	device Device

	// buffer is the GPU buffer holding the data.
	buffer *wgpu.Buffer

	// ownsBuffer is false when buffer is shared from another Value,
	// in which case this Value never creates or releases it.
	ownsBuffer bool

	// readBuffer is a CPU-mappable buffer for reading Storage values
	// back from the GPU, allocated by [Value.CreateReadBuffer].
	readBuffer *wgpu.Buffer

	readSize int
}

func (vl *Value) init(vr *Var, dev *Device, idx int) {
	vl.vr = vr
	vl.role = vr.Role
	vl.device = *dev
	vl.Index = idx
	vl.AllocSize = vr.MemSize()
	vl.ownsBuffer = true
}

// SetDynamicN sets the number of elements for a variable-length
// (ArrayN = 0) Vertex, Index, or Storage variable, reallocating the
// buffer if the size changes.
func (vl *Value) SetDynamicN(n int) {
	sz := n * vl.vr.SizeOf
	if sz == vl.AllocSize && vl.buffer != nil {
		return
	}
	vl.AllocSize = sz
	vl.createBuffer()
}

// DynamicN returns the current number of elements.
func (vl *Value) DynamicN() int {
	return vl.AllocSize / vl.vr.SizeOf
}

func (vl *Value) createBuffer() {
	if !vl.ownsBuffer {
		return
	}
	vl.releaseBuffer()
	if vl.AllocSize == 0 {
		return
	}
	buf, err := vl.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(vl.AllocSize),
		Label:            vl.Name,
		Usage:            vl.role.BufferUsages(),
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return
	}
	vl.buffer = buf
	if vl.vr.group != nil {
		vl.vr.group.invalidateBindGroup()
	}
}

func (vl *Value) releaseBuffer() {
	if vl.buffer != nil && vl.ownsBuffer {
		vl.buffer.Release()
	}
	vl.buffer = nil
}

// ShareBufferWith makes this Value use the same underlying GPU buffer
// as the source Value, which retains ownership.  Both Vars must have
// the same SizeOf.  This is how one Storage buffer is written by a
// compute pipeline and read by a vertex shader in a graphics pipeline.
func (vl *Value) ShareBufferWith(src *Value) {
	vl.releaseBuffer()
	vl.ownsBuffer = false
	vl.buffer = src.buffer
	vl.AllocSize = src.AllocSize
	if vl.vr.group != nil {
		vl.vr.group.invalidateBindGroup()
	}
}

// SetFromBytes copies given bytes to the GPU buffer, reallocating
// if the size differs for variable-length variables.
func (vl *Value) SetFromBytes(from []byte) error {
	if vl.vr.ArrayN == 0 && len(from) != vl.AllocSize {
		vl.AllocSize = len(from)
		vl.createBuffer()
	}
	if len(from) != vl.AllocSize {
		err := fmt.Errorf("gpu.Value SetFromBytes %s: size mismatch: have %d need %d", vl.Name, len(from), vl.AllocSize)
		return errors.Log(err)
	}
	if vl.buffer == nil {
		vl.createBuffer()
	}
	return vl.device.Queue.WriteBuffer(vl.buffer, 0, from)
}

// SetValueFrom copies given values to the GPU buffer for this Value,
// automatically reallocating if the size changes for variable-length
// variables.  This is the main way to set value data.
func SetValueFrom[E any](vl *Value, from []E) error {
	return vl.SetFromBytes(wgpu.ToBytes(from))
}

// CreateReadBuffer allocates the CPU-mappable read buffer for
// reading this Storage value back from the GPU.
func (vl *Value) CreateReadBuffer() error {
	if vl.readBuffer != nil && vl.readSize == vl.AllocSize {
		return nil
	}
	vl.ReleaseRead()
	buf, err := vl.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(vl.AllocSize),
		Label:            vl.Name + "-read",
		Usage:            wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	vl.readBuffer = buf
	vl.readSize = vl.AllocSize
	return nil
}

// GPUToRead adds a command to copy the GPU buffer contents to the
// read buffer, creating it if needed.  Call [Value.ReadSync] after
// the command has been submitted and completed.
func (vl *Value) GPUToRead(cmd *wgpu.CommandEncoder) error {
	if err := vl.CreateReadBuffer(); err != nil {
		return err
	}
	return cmd.CopyBufferToBuffer(vl.buffer, 0, vl.readBuffer, 0, uint64(vl.AllocSize))
}

// ReadSync maps the read buffer, blocking until the copy from
// [Value.GPUToRead] is complete.  Use [CopyValueToBytes] to extract
// the data, which also unmaps the buffer.
func (vl *Value) ReadSync() error {
	if vl.readBuffer == nil {
		return errors.Log(fmt.Errorf("gpu.Value ReadSync %s: no read buffer; call GPUToRead first", vl.Name))
	}
	return BufferReadSync(&vl.device, vl.AllocSize, vl.readBuffer)
}

// CopyValueToBytes copies data from the mapped read buffer into
// given values, and unmaps the buffer.
func CopyValueToBytes[E any](vl *Value, dest []E) error {
	var zero E
	sz := len(dest) * int(unsafe.Sizeof(zero))
	if sz != vl.AllocSize {
		return errors.Log(fmt.Errorf("gpu.Value CopyValueToBytes %s: size mismatch: have %d need %d", vl.Name, sz, vl.AllocSize))
	}
	raw := vl.readBuffer.GetMappedRange(0, uint(vl.AllocSize))
	copy(wgpu.ToBytes(dest), raw)
	vl.readBuffer.Unmap()
	return nil
}

// ReleaseRead releases the read buffer.
func (vl *Value) ReleaseRead() {
	if vl.readBuffer != nil {
		vl.readBuffer.Release()
		vl.readBuffer = nil
	}
}

// Release releases all buffers.
func (vl *Value) Release() {
	vl.releaseBuffer()
	vl.ReleaseRead()
}

// bindGroupEntry returns the binding for this value.
func (vl *Value) bindGroupEntry(vr *Var) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: uint32(vr.Binding),
		Buffer:  vl.buffer,
		Offset:  0,
		Size:    uint64(vl.AllocSize),
	}
}

// Values is a list of [Value] items for a given [Var].
type Values struct {
	// Values in indexed order.
	Values []*Value

	// Current is the index of the currently used value.
	Current int
}

// SetN sets the number of values, creating or releasing as needed.
func (vs *Values) SetN(vr *Var, dev *Device, nvals int) {
	cn := len(vs.Values)
	if cn == nvals {
		return
	}
	for i := nvals; i < cn; i++ {
		vs.Values[i].Release()
	}
	if nvals < cn {
		vs.Values = vs.Values[:nvals]
		return
	}
	for i := cn; i < nvals; i++ {
		vl := &Value{}
		vl.init(vr, dev, i)
		vs.Values = append(vs.Values, vl)
	}
}

// CurrentValue returns the current Value.
func (vs *Values) CurrentValue() *Value {
	return vs.Values[vs.Current]
}

// Release releases all values.
func (vs *Values) Release() {
	for _, vl := range vs.Values {
		vl.Release()
	}
	vs.Values = nil
}
