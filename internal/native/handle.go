package native

import (
	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/tensor"
)

// Handle is the contract a native module binding must satisfy.
//
// The collection getters return the live collection: each call reflects every
// native-side mutation up to that point. Implementations must not hand out
// stale copies. The handle owns its contents; Facade holds a non-owning
// reference and never closes, frees, or rebuilds the native module.
type Handle interface {
	// Parameters returns the live named-parameter collection.
	Parameters() *nn.OrderedDict[*tensor.RawTensor]

	// Buffers returns the live named-buffer collection.
	Buffers() *nn.OrderedDict[*tensor.RawTensor]

	// Children returns the live named-submodule collection.
	Children() *nn.OrderedDict[Handle]

	// SetParameter rebinds the named parameter entry to a new container.
	SetParameter(name string, t *tensor.RawTensor)

	// SetBuffer rebinds the named buffer entry to a new container.
	SetBuffer(name string, t *tensor.RawTensor)

	// Training reports the native module's current training-mode flag.
	Training() bool

	// Train sets the native module's training mode. Composite native modules
	// propagate the flag to their own submodules.
	Train(mode bool)

	// Attributes returns the handle's public non-structural members
	// (configuration values, bound methods). Facade copies these once at
	// construction; they are not kept in sync afterward.
	Attributes() map[string]any

	// String returns the native module's own textual representation.
	String() string
}
