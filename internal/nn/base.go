package nn

import (
	"fmt"

	"github.com/forge-ml/forge/internal/tensor"
)

// BaseModule is a host-side Module that owns its collections.
//
// It is the building block for modules implemented in Go: register parameters,
// buffers, and submodules, and the generic traversal helpers do the rest.
//
// Example:
//
//	m := nn.NewBaseModule("Linear")
//	m.RegisterParameter("weight", w)
//	m.RegisterParameter("bias", b)
type BaseModule struct {
	name     string
	params   *OrderedDict[*tensor.RawTensor]
	buffers  *OrderedDict[*tensor.RawTensor]
	children *OrderedDict[Module]
	training bool
}

var _ Module = (*BaseModule)(nil)

// NewBaseModule creates an empty module. New modules start in training mode.
func NewBaseModule(name string) *BaseModule {
	return &BaseModule{
		name:     name,
		params:   NewOrderedDict[*tensor.RawTensor](),
		buffers:  NewOrderedDict[*tensor.RawTensor](),
		children: NewOrderedDict[Module](),
		training: true,
	}
}

// RegisterParameter adds or replaces a named trainable parameter.
func (m *BaseModule) RegisterParameter(name string, t *tensor.RawTensor) {
	m.params.Set(name, t)
}

// RegisterBuffer adds or replaces a named non-trainable buffer.
func (m *BaseModule) RegisterBuffer(name string, t *tensor.RawTensor) {
	m.buffers.Set(name, t)
}

// RegisterModule adds or replaces a named direct submodule.
func (m *BaseModule) RegisterModule(name string, child Module) {
	m.children.Set(name, child)
}

// ParameterDict returns this module's own parameters.
func (m *BaseModule) ParameterDict() Dict[*tensor.RawTensor] {
	return m.params
}

// BufferDict returns this module's own buffers.
func (m *BaseModule) BufferDict() Dict[*tensor.RawTensor] {
	return m.buffers
}

// ChildDict returns this module's direct submodules.
func (m *BaseModule) ChildDict() Dict[Module] {
	return m.children
}

// Training reports whether the module is in training mode.
func (m *BaseModule) Training() bool {
	return m.training
}

// SetTraining sets the training flag on this module and all submodules.
func (m *BaseModule) SetTraining(mode bool) {
	m.training = mode
	m.children.Range(func(_ string, child Module) bool {
		child.SetTraining(mode)
		return true
	})
}

// Apply transforms every parameter and buffer of this module and its
// submodules. Results compatible with the existing container (same shape,
// dtype, and device) are written in place, preserving container identity;
// otherwise, and always when forceDeviceMove is set and the device changed,
// the entry is rebound to the transformed container under its own name.
func (m *BaseModule) Apply(fn TensorFunc, forceDeviceMove bool) Module {
	applyDict(m.params, fn)
	applyDict(m.buffers, fn)
	m.children.Range(func(_ string, child Module) bool {
		child.Apply(fn, forceDeviceMove)
		return true
	})
	return m
}

func applyDict(d *OrderedDict[*tensor.RawTensor], fn TensorFunc) {
	for _, item := range d.Items() {
		applied := fn(item.Value)
		if applied == item.Value {
			continue
		}
		if shouldRelocate(item.Value, applied) {
			d.Set(item.Name, applied)
		} else if err := item.Value.CopyFrom(applied); err != nil {
			panic(fmt.Sprintf("nn: in-place apply of %q: %v", item.Name, err))
		}
	}
}

// shouldRelocate reports whether the transformed tensor must replace the old
// container outright instead of overwriting its contents. In-place writes
// require identical layout, so any shape, dtype, or device change relocates;
// forceDeviceMove only widens this for implementations with their own
// relocation policy (the native facade), never narrows it here.
func shouldRelocate(old, applied *tensor.RawTensor) bool {
	return old.DType() != applied.DType() ||
		!old.Shape().Equal(applied.Shape()) ||
		old.Device() != applied.Device()
}

// String returns the module name with its child names.
func (m *BaseModule) String() string {
	return fmt.Sprintf("%s(children=%v)", m.name, m.children.Keys())
}
