package native

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// RelocatePolicy decides how a transformed tensor is written back during
// Facade.Apply: true rebinds the collection entry to the new container,
// false overwrites the existing container's contents in place.
//
// The choice is load-bearing. In-place writes preserve container identity,
// so every reference to the tensor (optimizer state, aliases on the native
// side) observes the update; rebinding breaks those aliases and must only
// happen when the old container cannot hold the result.
type RelocatePolicy func(old, applied *tensor.RawTensor, forceDeviceMove bool) bool

// DefaultRelocatePolicy relocates when the transformed tensor's layout
// (shape or dtype) or device differs from the old container's, since the old
// buffer cannot hold such a result. forceDeviceMove is for custom policies
// that would otherwise stage cross-device results through host memory; the
// default already relocates on every device change.
func DefaultRelocatePolicy(old, applied *tensor.RawTensor, forceDeviceMove bool) bool {
	if old.DType() != applied.DType() || !old.Shape().Equal(applied.Shape()) {
		return true
	}
	if old.Device() != applied.Device() {
		return true
	}
	return false
}
