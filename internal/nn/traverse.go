package nn

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// NamedParameters returns every parameter reachable from m, keyed by its
// dotted path ("weight", "encoder.weight", ...). Entries are collected in
// collection order, parents before children.
func NamedParameters(m Module) []Item[*tensor.RawTensor] {
	var out []Item[*tensor.RawTensor]
	walkTensors(m, "", func(mod Module) Dict[*tensor.RawTensor] { return mod.ParameterDict() }, &out)
	return out
}

// NamedBuffers returns every buffer reachable from m, keyed by its dotted path.
func NamedBuffers(m Module) []Item[*tensor.RawTensor] {
	var out []Item[*tensor.RawTensor]
	walkTensors(m, "", func(mod Module) Dict[*tensor.RawTensor] { return mod.BufferDict() }, &out)
	return out
}

func walkTensors(m Module, prefix string, pick func(Module) Dict[*tensor.RawTensor], out *[]Item[*tensor.RawTensor]) {
	pick(m).Range(func(name string, t *tensor.RawTensor) bool {
		*out = append(*out, Item[*tensor.RawTensor]{Name: prefix + name, Value: t})
		return true
	})
	m.ChildDict().Range(func(name string, child Module) bool {
		walkTensors(child, prefix+name+".", pick, out)
		return true
	})
}

// NamedModules returns m and every submodule reachable from it, keyed by
// dotted path. The root module has the empty name.
func NamedModules(m Module) []Item[Module] {
	out := []Item[Module]{{Name: "", Value: m}}
	walkModules(m, "", &out)
	return out
}

func walkModules(m Module, prefix string, out *[]Item[Module]) {
	m.ChildDict().Range(func(name string, child Module) bool {
		*out = append(*out, Item[Module]{Name: prefix + name, Value: child})
		walkModules(child, prefix+name+".", out)
		return true
	})
}

// Train puts m into training mode. Returns m for chaining.
func Train(m Module) Module {
	m.SetTraining(true)
	return m
}

// Eval puts m into evaluation mode. Returns m for chaining.
func Eval(m Module) Module {
	m.SetTraining(false)
	return m
}
