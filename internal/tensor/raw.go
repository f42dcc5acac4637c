package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is a mutable tensor container: a flat byte buffer plus shape,
// dtype, and device tags.
//
// The interop layer leans on container identity: code that needs to update a
// tensor that other references may alias writes through CopyFrom, which
// overwrites the contents of the existing buffer and never reallocates it.
// Replacing a RawTensor wholesale (rebinding a collection entry to a new
// container) is the caller's decision, not this type's.
type RawTensor struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw creates a new RawTensor with the given shape, type, and device.
// Memory is allocated and zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromFloat32 creates a CPU Float32 tensor initialized from vals.
// The slice length must match the shape's element count.
func FromFloat32(vals []float32, shape Shape) (*RawTensor, error) {
	r, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	if len(vals) != r.NumElements() {
		return nil, fmt.Errorf("value count %d does not match shape %v (%d elements)",
			len(vals), shape, r.NumElements())
	}
	copy(r.AsFloat32(), vals)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Clone returns a new RawTensor with its own buffer holding a copy of the
// receiver's contents. The clone never aliases the receiver.
func (r *RawTensor) Clone() *RawTensor {
	out := &RawTensor{
		data:   make([]byte, len(r.data)),
		shape:  r.shape.Clone(),
		dtype:  r.dtype,
		device: r.device,
	}
	copy(out.data, r.data)
	return out
}

// CopyFrom overwrites the receiver's contents with src's contents in place.
// The receiver's buffer is never reallocated, so every existing reference to
// this tensor observes the new values. Returns an error if shape, dtype, or
// device differ.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if !r.shape.Equal(src.shape) {
		return fmt.Errorf("cannot copy in place: shape %v != %v", src.shape, r.shape)
	}
	if r.dtype != src.dtype {
		return fmt.Errorf("cannot copy in place: dtype %s != %s", src.dtype, r.dtype)
	}
	if r.device != src.device {
		return fmt.Errorf("cannot copy in place: device %s != %s", src.device, r.device)
	}
	copy(r.data, src.data)
	return nil
}

// String formats the tensor's metadata (not its contents).
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, dtype=%s, device=%s)", r.shape, r.dtype, r.device)
}
