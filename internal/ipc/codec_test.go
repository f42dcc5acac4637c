package ipc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ml/forge/internal/tensor"
)

func newTensor(t *testing.T, vals ...float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromFloat32(vals, tensor.Shape{len(vals)})
	require.NoError(t, err)
	return r
}

// TestFrameCodec_RoundTrip_Plain tests plain JSON-domain values.
func TestFrameCodec_RoundTrip_Plain(t *testing.T) {
	c := NewFrameCodec()

	for _, v := range []any{
		nil,
		true,
		"checkpoint ready",
		map[string]any{"epoch": 3, "loss": 0.25},
		[]any{"a", false, nil},
	} {
		buf, err := c.Encode(v)
		require.NoError(t, err)
		got, err := c.Decode(buf)
		require.NoError(t, err)

		switch v.(type) {
		case map[string]any:
			// Numbers round-trip under JSON semantics: they decode as float64.
			assert.Equal(t, map[string]any{"epoch": float64(3), "loss": 0.25}, got)
		default:
			assert.Equal(t, v, got)
		}
	}
}

// TestFrameCodec_RoundTrip_Tensor tests that tensor contents round-trip
// exactly through the blob section.
func TestFrameCodec_RoundTrip_Tensor(t *testing.T) {
	c := NewFrameCodec()
	grad := newTensor(t, 0.5, -1.25, 3)

	buf, err := c.Encode(grad)
	require.NoError(t, err)

	got, err := c.Decode(buf)
	require.NoError(t, err)
	decoded, ok := got.(*tensor.RawTensor)
	require.True(t, ok)
	assert.Equal(t, grad.Shape(), decoded.Shape())
	assert.Equal(t, grad.DType(), decoded.DType())
	assert.Equal(t, grad.Device(), decoded.Device())
	assert.Equal(t, grad.AsFloat32(), decoded.AsFloat32())
	assert.NotSame(t, grad, decoded)
}

// TestFrameCodec_RoundTrip_Nested tests tensors nested inside containers.
func TestFrameCodec_RoundTrip_Nested(t *testing.T) {
	c := NewFrameCodec()
	msg := map[string]any{
		"step": 7,
		"grads": []any{
			newTensor(t, 1, 2),
			newTensor(t, 3),
		},
	}

	buf, err := c.Encode(msg)
	require.NoError(t, err)
	got, err := c.Decode(buf)
	require.NoError(t, err)

	decoded, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), decoded["step"])

	grads, ok := decoded["grads"].([]any)
	require.True(t, ok)
	require.Len(t, grads, 2)
	assert.Equal(t, []float32{1, 2}, grads[0].(*tensor.RawTensor).AsFloat32())
	assert.Equal(t, []float32{3}, grads[1].(*tensor.RawTensor).AsFloat32())
}

// TestFrameCodec_RoundTrip_SharedTensor tests that one tensor referenced
// twice ships once and decodes back to a single shared container.
func TestFrameCodec_RoundTrip_SharedTensor(t *testing.T) {
	c := NewFrameCodec()
	shared := newTensor(t, 1, 2)

	buf, err := c.Encode([]any{shared, shared})
	require.NoError(t, err)

	got, err := c.Decode(buf)
	require.NoError(t, err)
	decoded, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, decoded, 2)

	first := decoded[0].(*tensor.RawTensor)
	second := decoded[1].(*tensor.RawTensor)
	assert.Same(t, first, second, "aliased tensors must decode to one container")
	assert.Equal(t, []float32{1, 2}, first.AsFloat32())
}

// TestFrameCodec_Encode_Unsupported tests the EncodeError path.
func TestFrameCodec_Encode_Unsupported(t *testing.T) {
	c := NewFrameCodec()

	_, err := c.Encode(func() {})
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)

	_, err = c.Encode(map[string]any{"$tensor": 1})
	require.ErrorAs(t, err, &encErr)
}

// TestFrameCodec_Decode_Malformed tests the DecodeError paths.
func TestFrameCodec_Decode_Malformed(t *testing.T) {
	c := NewFrameCodec()
	var decErr *DecodeError

	// Too short for a prologue.
	_, err := c.Decode([]byte("FIP"))
	require.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, ErrTruncatedFrame)

	// Wrong magic.
	buf, err := c.Encode("ok")
	require.NoError(t, err)
	bad := append([]byte{}, buf...)
	copy(bad, "XIPC")
	_, err = c.Decode(bad)
	assert.ErrorIs(t, err, ErrInvalidMagic)

	// Declared header larger than the buffer.
	bad = append([]byte{}, buf...)
	bad[8] = 0xFF
	bad[9] = 0xFF
	_, err = c.Decode(bad)
	assert.ErrorIs(t, err, ErrTruncatedFrame)

	// Garbage header JSON.
	bad = append([]byte{}, buf...)
	bad[prologueSize] = '{'
	bad[prologueSize+1] = '!'
	_, err = c.Decode(bad)
	require.ErrorAs(t, err, &decErr)
}

// buildFrame assembles a raw frame from a hand-written header and blob.
func buildFrame(headerJSON string, blob []byte) []byte {
	buf := []byte(frameMagic)
	buf = binary.LittleEndian.AppendUint32(buf, frameVersion)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(headerJSON)))
	buf = append(buf, headerJSON...)
	return append(buf, blob...)
}

// TestFrameCodec_Decode_HostileTensorMeta tests that out-of-range tensor
// metadata, including offsets crafted to overflow the bounds arithmetic,
// surfaces as *DecodeError rather than a panic.
func TestFrameCodec_Decode_HostileTensorMeta(t *testing.T) {
	c := NewFrameCodec()
	var decErr *DecodeError

	frames := map[string]string{
		"overflowing offset": `{"version":1,"root":{"$tensor":0},"tensors":[{"id":0,"dtype":"float32","shape":[1],"device":"CPU","offset":9223372036854775807,"size":4}]}`,
		"negative offset":    `{"version":1,"root":{"$tensor":0},"tensors":[{"id":0,"dtype":"float32","shape":[1],"device":"CPU","offset":-4,"size":4}]}`,
		"negative size":      `{"version":1,"root":{"$tensor":0},"tensors":[{"id":0,"dtype":"float32","shape":[1],"device":"CPU","offset":0,"size":-1}]}`,
		"size past blob end": `{"version":1,"root":{"$tensor":0},"tensors":[{"id":0,"dtype":"float32","shape":[1],"device":"CPU","offset":2,"size":4}]}`,
	}
	for name, header := range frames {
		t.Run(name, func(t *testing.T) {
			frame := buildFrame(header, []byte{1, 2, 3, 4})
			require.NotPanics(t, func() {
				_, err := c.Decode(frame)
				require.ErrorAs(t, err, &decErr)
			})
		})
	}
}

// TestFrameCodec_Decode_ChecksumMismatch tests blob corruption detection.
func TestFrameCodec_Decode_ChecksumMismatch(t *testing.T) {
	c := NewFrameCodec()
	buf, err := c.Encode(newTensor(t, 1, 2, 3))
	require.NoError(t, err)

	// Flip one bit in the blob section (the tail of the frame).
	bad := append([]byte{}, buf...)
	bad[len(bad)-1] ^= 0x01
	_, err = c.Decode(bad)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
