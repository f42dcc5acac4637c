package native

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/tensor"
)

// Facade exposes a native Handle through the generic nn.Module interface.
//
// The three structural collections are mirrored views that re-fetch from the
// handle on every access. The training flag is forwarded in both directions
// and never cached. The handle's remaining public attributes are copied once
// at construction and then frozen; a member added to the native module later
// is not visible here. That boundary is deliberate: those members are
// typically bound methods or immutable configuration, not mutable state.
type Facade struct {
	handle   Handle
	policy   RelocatePolicy
	params   mirroredDict[*tensor.RawTensor]
	buffers  mirroredDict[*tensor.RawTensor]
	children *childDict
	attrs    map[string]any
}

var _ nn.Module = (*Facade)(nil)

// Option configures a Facade.
type Option func(*Facade)

// WithRelocatePolicy overrides the relocate decision used by Apply.
func WithRelocatePolicy(p RelocatePolicy) Option {
	return func(f *Facade) {
		f.policy = p
	}
}

// New wraps a native handle in a Facade.
//
// The attribute snapshot happens here, once: every entry of the handle's
// Attributes map whose name is not underscore-prefixed is captured. The
// structural collections are never snapshotted.
func New(handle Handle, opts ...Option) *Facade {
	f := &Facade{
		handle: handle,
		policy: DefaultRelocatePolicy,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.params = newMirroredDict("parameter", handle.Parameters)
	f.buffers = newMirroredDict("buffer", handle.Buffers)
	f.children = &childDict{facade: f, cache: make(map[Handle]*Facade)}
	f.attrs = lo.PickBy(handle.Attributes(), func(name string, _ any) bool {
		return !strings.HasPrefix(name, "_")
	})
	return f
}

// Handle returns the wrapped native handle.
func (f *Facade) Handle() Handle {
	return f.handle
}

// Attr looks up a member captured in the construction-time snapshot.
// A missing member returns *AttributeError, never a silent zero value.
func (f *Facade) Attr(name string) (any, error) {
	v, ok := f.attrs[name]
	if !ok {
		return nil, &AttributeError{Type: "Facade", Attr: name}
	}
	return v, nil
}

// ParameterDict returns the live view of the handle's parameters.
func (f *Facade) ParameterDict() nn.Dict[*tensor.RawTensor] {
	return f.params
}

// BufferDict returns the live view of the handle's buffers.
func (f *Facade) BufferDict() nn.Dict[*tensor.RawTensor] {
	return f.buffers
}

// ChildDict returns the live view of the handle's submodules, each wrapped
// in a Facade. Child facades are memoized per handle so module identity is
// stable across traversals; membership itself is re-fetched on every access.
func (f *Facade) ChildDict() nn.Dict[nn.Module] {
	return f.children
}

// Training reads the handle's current training flag.
func (f *Facade) Training() bool {
	return f.handle.Training()
}

// SetTraining forwards the mode change to the handle. The native side owns
// propagation to its own submodules.
func (f *Facade) SetTraining(mode bool) {
	f.handle.Train(mode)
}

// Apply transforms every parameter and buffer of the native module and its
// submodules, writing each result back under the entry's own stored name.
// The relocate policy decides per tensor whether the entry is rebound to the
// transformed container or the existing container is overwritten in place.
// Returns the facade for chaining.
func (f *Facade) Apply(fn nn.TensorFunc, forceDeviceMove bool) nn.Module {
	f.applyDict(f.params, fn, forceDeviceMove, f.handle.SetParameter)
	f.applyDict(f.buffers, fn, forceDeviceMove, f.handle.SetBuffer)
	f.children.Range(func(_ string, child nn.Module) bool {
		child.Apply(fn, forceDeviceMove)
		return true
	})
	return f
}

func (f *Facade) applyDict(d mirroredDict[*tensor.RawTensor], fn nn.TensorFunc, forceDeviceMove bool, rebind func(string, *tensor.RawTensor)) {
	for _, item := range d.Items() {
		applied := fn(item.Value)
		if applied == item.Value {
			continue
		}
		if f.policy(item.Value, applied, forceDeviceMove) {
			rebind(item.Name, applied)
		} else if err := item.Value.CopyFrom(applied); err != nil {
			panic(fmt.Sprintf("native: relocate policy chose in-place write for %q but: %v", item.Name, err))
		}
	}
}

// String delegates verbatim to the native module's own representation.
func (f *Facade) String() string {
	return f.handle.String()
}

// childDict mirrors the handle's submodule collection as nn.Modules.
type childDict struct {
	facade *Facade
	cache  map[Handle]*Facade
}

var _ nn.Dict[nn.Module] = (*childDict)(nil)

func (d *childDict) live() *nn.OrderedDict[Handle] {
	od := d.facade.handle.Children()
	if od == nil {
		panic("native: handle returned nil submodule collection")
	}
	return od
}

func (d *childDict) wrap(h Handle) nn.Module {
	if fc, ok := d.cache[h]; ok {
		return fc
	}
	fc := New(h, WithRelocatePolicy(d.facade.policy))
	d.cache[h] = fc
	return fc
}

func (d *childDict) Len() int { return d.live().Len() }

func (d *childDict) Has(name string) bool { return d.live().Has(name) }

func (d *childDict) Get(name string) (nn.Module, bool) {
	h, ok := d.live().Get(name)
	if !ok {
		return nil, false
	}
	return d.wrap(h), true
}

func (d *childDict) Keys() []string { return d.live().Keys() }

func (d *childDict) Values() []nn.Module {
	return lo.Map(d.live().Values(), func(h Handle, _ int) nn.Module {
		return d.wrap(h)
	})
}

func (d *childDict) Items() []nn.Item[nn.Module] {
	return lo.Map(d.live().Items(), func(it nn.Item[Handle], _ int) nn.Item[nn.Module] {
		return nn.Item[nn.Module]{Name: it.Name, Value: d.wrap(it.Value)}
	})
}

func (d *childDict) Range(fn func(name string, value nn.Module) bool) {
	d.live().Range(func(name string, h Handle) bool {
		return fn(name, d.wrap(h))
	})
}
