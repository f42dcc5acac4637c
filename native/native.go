// Copyright 2026 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package native provides the public API for bridging natively-owned modules
// into the Forge module system.
//
// Wrap a Handle (a cgo/FFI binding to a module whose state lives outside the
// Go runtime) in a Facade and the rest of the framework can traverse and
// mutate it through the generic nn.Module interface. The structural
// collections are mirrored live from the handle on every access; the handle's
// other public attributes are snapshotted once at construction.
package native

import (
	"github.com/forge-ml/forge/internal/native"
)

// Handle is the contract a native module binding must satisfy.
type Handle = native.Handle

// Facade exposes a native Handle through the generic nn.Module interface.
type Facade = native.Facade

// Option configures a Facade.
type Option = native.Option

// New wraps a native handle in a Facade.
func New(handle Handle, opts ...Option) *Facade {
	return native.New(handle, opts...)
}

// RelocatePolicy decides whether a transformed tensor replaces its container
// or overwrites its contents in place during Facade.Apply.
type RelocatePolicy = native.RelocatePolicy

// DefaultRelocatePolicy relocates when layout or device changed.
var DefaultRelocatePolicy RelocatePolicy = native.DefaultRelocatePolicy

// WithRelocatePolicy overrides the relocate decision used by Apply.
func WithRelocatePolicy(p RelocatePolicy) Option {
	return native.WithRelocatePolicy(p)
}

// AttributeError reports a lookup of a member missing from the facade's
// construction-time attribute snapshot.
type AttributeError = native.AttributeError

// MockHandle is an in-process Handle for tests and examples.
type MockHandle = native.MockHandle

// NewMockHandle creates an empty mock module in training mode.
func NewMockHandle(name string) *MockHandle {
	return native.NewMockHandle(name)
}
