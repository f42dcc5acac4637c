// Package nn defines the generic module contract of the Forge interop layer.
//
// A Module exposes three structural collections (parameters, buffers,
// submodules), a training-mode flag, and a tensor transform entry point.
// Generic traversal code in this package works against the Dict views alone,
// so host-built modules (BaseModule) and facades over natively-owned modules
// are interchangeable.
package nn

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// TensorFunc transforms one tensor into another. The result may be the input
// itself (identity transforms are common), a new container with the same
// layout, or a container on a different device or dtype.
type TensorFunc func(*tensor.RawTensor) *tensor.RawTensor

// Module is the interface every Forge module satisfies.
//
// The three Dict views are the structural collections generic traversal code
// walks. Implementations backed by external state must return views that
// observe that state live; implementations owning their state return their
// stored collections.
type Module interface {
	// ParameterDict returns the named trainable parameters of this module,
	// not including submodule parameters.
	ParameterDict() Dict[*tensor.RawTensor]

	// BufferDict returns the named non-trainable buffers of this module,
	// not including submodule buffers.
	BufferDict() Dict[*tensor.RawTensor]

	// ChildDict returns the named direct submodules.
	ChildDict() Dict[Module]

	// Training reports whether the module is in training mode.
	Training() bool

	// SetTraining puts the module (and, for composite modules, its children)
	// into training or evaluation mode.
	SetTraining(mode bool)

	// Apply transforms every parameter and buffer reachable from this module
	// and writes each result back, either in place or by rebinding the entry,
	// depending on the implementation's relocation rules. forceDeviceMove
	// requests rebinding whenever the transform changed the device.
	// Returns the module itself for chaining.
	Apply(fn TensorFunc, forceDeviceMove bool) Module

	// String returns a human-readable description of the module.
	String() string
}
