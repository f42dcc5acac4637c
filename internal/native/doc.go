// Package native bridges natively-owned modules into the Forge module system.
//
// A Handle stands for a module whose implementation and mutable state live
// outside the Go runtime (a cgo binding, an FFI plugin, a GPU engine). Facade
// wraps a Handle so the rest of the framework can walk, inspect, and mutate
// it through the generic nn.Module interface.
//
// The structural collections (parameters, buffers, submodules) are mirrored,
// not copied: every access re-fetches the live collection from the handle, so
// native-side mutations are always visible. Accessing a collection once and
// holding the result would otherwise freeze a snapshot and silently go stale.
// Everything else on the handle's public surface is copied exactly once, at
// construction.
//
// Example:
//
//	facade := native.New(handle)
//	for _, p := range nn.NamedParameters(facade) {
//	    fmt.Println(p.Name, p.Value.Shape())
//	}
//	facade.Apply(halve, false)
package native
