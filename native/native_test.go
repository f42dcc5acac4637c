// Copyright 2026 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ml/forge/ipc"
	"github.com/forge-ml/forge/native"
	"github.com/forge-ml/forge/nn"
	"github.com/forge-ml/forge/tensor"
)

// TestFacadeThroughPublicAPI verifies the facade satisfies the public module
// contract and its parameters travel over an ipc channel.
func TestFacadeThroughPublicAPI(t *testing.T) {
	handle := native.NewMockHandle("linear")
	weight, err := tensor.FromFloat32([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	handle.SetParameter("weight", weight)

	var module nn.Module = native.New(handle)
	params := nn.NamedParameters(module)
	require.Len(t, params, 1)
	assert.Equal(t, "weight", params[0].Name)

	// Native-side mutation stays visible through the public view.
	handle.SetParameter("bias", weight.Clone())
	assert.Len(t, nn.NamedParameters(module), 2)

	// Ship the live parameters to a peer.
	a, b := ipc.Pipe()
	left, right := ipc.Wrap(a), ipc.Wrap(b)
	payload := map[string]any{}
	for _, p := range nn.NamedParameters(module) {
		payload[p.Name] = p.Value
	}
	require.NoError(t, left.Send(payload))

	got, err := right.Recv()
	require.NoError(t, err)
	msg := got.(map[string]any)
	assert.Equal(t, []float32{1, 2}, msg["weight"].(*tensor.RawTensor).AsFloat32())
}
