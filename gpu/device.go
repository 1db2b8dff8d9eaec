// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the logical GPU device and its command queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command submission queue for the device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for given GPU.
func NewDevice(gp *GPU) (*Device, error) {
	wdev, err := gp.Adapter.RequestDevice(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	return &Device{Device: wdev, Queue: wdev.GetQueue()}, nil
}

// WaitDone waits until the device is done with all submitted work.
// This is the point at which the GPU's writes become visible to
// mapped readback buffers.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release releases the device and queue.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
