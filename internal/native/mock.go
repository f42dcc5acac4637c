package native

import (
	"fmt"

	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/tensor"
)

// Verify that MockHandle implements Handle.
var _ Handle = (*MockHandle)(nil)

// MockHandle is an in-process Handle for tests and examples. It keeps the
// module state in ordinary Go collections while honoring the Handle contract:
// collection getters return the live collections, and Train propagates to
// submodules the way a composite native module would.
type MockHandle struct {
	name     string
	params   *nn.OrderedDict[*tensor.RawTensor]
	buffers  *nn.OrderedDict[*tensor.RawTensor]
	children *nn.OrderedDict[Handle]
	attrs    map[string]any
	training bool

	// TrainCalls counts Train invocations, for forwarding tests.
	TrainCalls int
}

// NewMockHandle creates an empty mock module in training mode.
func NewMockHandle(name string) *MockHandle {
	return &MockHandle{
		name:     name,
		params:   nn.NewOrderedDict[*tensor.RawTensor](),
		buffers:  nn.NewOrderedDict[*tensor.RawTensor](),
		children: nn.NewOrderedDict[Handle](),
		attrs:    make(map[string]any),
		training: true,
	}
}

// Parameters returns the live parameter collection.
func (m *MockHandle) Parameters() *nn.OrderedDict[*tensor.RawTensor] {
	return m.params
}

// Buffers returns the live buffer collection.
func (m *MockHandle) Buffers() *nn.OrderedDict[*tensor.RawTensor] {
	return m.buffers
}

// Children returns the live submodule collection.
func (m *MockHandle) Children() *nn.OrderedDict[Handle] {
	return m.children
}

// SetParameter rebinds the named parameter entry.
func (m *MockHandle) SetParameter(name string, t *tensor.RawTensor) {
	m.params.Set(name, t)
}

// SetBuffer rebinds the named buffer entry.
func (m *MockHandle) SetBuffer(name string, t *tensor.RawTensor) {
	m.buffers.Set(name, t)
}

// AddChild registers a named submodule.
func (m *MockHandle) AddChild(name string, child Handle) {
	m.children.Set(name, child)
}

// SetAttr sets a public (or, with a leading underscore, private) attribute.
func (m *MockHandle) SetAttr(name string, value any) {
	m.attrs[name] = value
}

// Training reports the current training flag.
func (m *MockHandle) Training() bool {
	return m.training
}

// Train sets the training flag here and on all submodules.
func (m *MockHandle) Train(mode bool) {
	m.TrainCalls++
	m.training = mode
	m.children.Range(func(_ string, child Handle) bool {
		child.Train(mode)
		return true
	})
}

// Attributes returns the attribute map.
func (m *MockHandle) Attributes() map[string]any {
	return m.attrs
}

// String returns the mock module's representation.
func (m *MockHandle) String() string {
	return fmt.Sprintf("MockHandle(%s)", m.name)
}
