// Copyright 2026 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the raw tensor container used
// by the Forge interop layer.
//
// RawTensor is a mutable container (byte buffer + shape/dtype/device) whose
// identity matters: in-place updates through CopyFrom are visible to every
// holder of the same container, while rebinding a collection entry to a new
// container is not.
package tensor

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the mutable tensor container.
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-initialized tensor with the given shape, type, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat32 creates a CPU Float32 tensor initialized from vals.
func FromFloat32(vals []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(vals, shape)
}

// ParseDataType converts a data type name back to a DataType.
func ParseDataType(s string) (DataType, bool) {
	return tensor.ParseDataType(s)
}

// ParseDevice converts a device name back to a Device.
func ParseDevice(s string) (Device, bool) {
	return tensor.ParseDevice(s)
}
