// Copyright 2026 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the Forge generic module contract.
//
// A Module exposes three structural collections (parameters, buffers,
// submodules) as Dict views plus a training-mode flag and a tensor transform
// entry point. Generic traversal helpers work on the views alone, so modules
// built in Go and facades over natively-owned modules are interchangeable.
package nn

import (
	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/tensor"
)

// Item is one name/value entry of a Dict.
type Item[V any] = nn.Item[V]

// Dict is a read-only, name-keyed mapping view.
type Dict[V any] = nn.Dict[V]

// OrderedDict is an insertion-ordered mutable Dict.
type OrderedDict[V any] = nn.OrderedDict[V]

// NewOrderedDict creates an empty OrderedDict.
func NewOrderedDict[V any]() *OrderedDict[V] {
	return nn.NewOrderedDict[V]()
}

// TensorFunc transforms one tensor into another.
type TensorFunc = nn.TensorFunc

// Module is the interface every Forge module satisfies.
type Module = nn.Module

// BaseModule is a host-side Module that owns its collections.
type BaseModule = nn.BaseModule

// NewBaseModule creates an empty module in training mode.
func NewBaseModule(name string) *BaseModule {
	return nn.NewBaseModule(name)
}

// NamedParameters returns every parameter reachable from m by dotted path.
func NamedParameters(m Module) []Item[*tensor.RawTensor] {
	return nn.NamedParameters(m)
}

// NamedBuffers returns every buffer reachable from m by dotted path.
func NamedBuffers(m Module) []Item[*tensor.RawTensor] {
	return nn.NamedBuffers(m)
}

// NamedModules returns m and every submodule reachable from it by dotted path.
func NamedModules(m Module) []Item[Module] {
	return nn.NamedModules(m)
}

// Train puts m into training mode. Returns m for chaining.
func Train(m Module) Module {
	return nn.Train(m)
}

// Eval puts m into evaluation mode. Returns m for chaining.
func Eval(m Module) Module {
	return nn.Eval(m)
}
