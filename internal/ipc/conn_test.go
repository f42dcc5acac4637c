package ipc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ml/forge/internal/tensor"
)

// bareConn is a RawConn with no optional operations.
type bareConn struct {
	sent [][]byte
	recv [][]byte
	err  error
}

func (b *bareConn) SendBytes(p []byte) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, p)
	return nil
}

func (b *bareConn) RecvBytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.recv) == 0 {
		return nil, ErrConnClosed
	}
	buf := b.recv[0]
	b.recv = b.recv[1:]
	return buf, nil
}

// fullConn additionally supports close, poll, and fd.
type fullConn struct {
	bareConn
	closed    bool
	polled    time.Duration
	pollReady bool
}

func (f *fullConn) Close() error {
	f.closed = true
	return nil
}

func (f *fullConn) Poll(timeout time.Duration) (bool, error) {
	f.polled = timeout
	return f.pollReady, nil
}

func (f *fullConn) Fd() uintptr {
	return 42
}

// TestConn_SendRecv tests value transport over an in-memory pipe.
func TestConn_SendRecv(t *testing.T) {
	a, b := Pipe()
	left := Wrap(a)
	right := Wrap(b)

	grad, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	require.NoError(t, left.Send(map[string]any{"grad": grad}))

	got, err := right.Recv()
	require.NoError(t, err)
	msg, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, msg["grad"].(*tensor.RawTensor).AsFloat32())
}

// TestConn_Send_EncodeError tests that encode failures surface as
// *EncodeError and never touch the channel.
func TestConn_Send_EncodeError(t *testing.T) {
	raw := &bareConn{}
	conn := Wrap(raw)

	err := conn.Send(make(chan int))
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Empty(t, raw.sent, "failed encode must not send")
}

// TestConn_Recv_DecodeError tests that malformed buffers surface as *DecodeError.
func TestConn_Recv_DecodeError(t *testing.T) {
	raw := &bareConn{recv: [][]byte{[]byte("not a frame")}}
	conn := Wrap(raw)

	_, err := conn.Recv()
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

// TestConn_ChannelErrorPropagation tests that channel errors pass through
// unchanged, not wrapped.
func TestConn_ChannelErrorPropagation(t *testing.T) {
	chanErr := errors.New("peer reset")
	raw := &bareConn{err: chanErr}
	conn := Wrap(raw)

	assert.Same(t, chanErr, conn.Send("x"))
	_, err := conn.Recv()
	assert.Same(t, chanErr, err)
}

// TestConn_Forwarding tests that non-send/recv operations reach the
// underlying channel unchanged.
func TestConn_Forwarding(t *testing.T) {
	raw := &fullConn{pollReady: true}
	conn := Wrap(raw)

	require.NoError(t, conn.Close())
	assert.True(t, raw.closed)

	ready, err := conn.Poll(50 * time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, 50*time.Millisecond, raw.polled)

	fd, err := conn.Fd()
	require.NoError(t, err)
	assert.Equal(t, uintptr(42), fd)

	assert.Same(t, RawConn(raw), conn.Raw())
}

// TestConn_UnsupportedOps tests that missing members error immediately,
// naming the proxy and the operation, instead of silently defaulting.
func TestConn_UnsupportedOps(t *testing.T) {
	conn := Wrap(&bareConn{})

	var opErr *UnsupportedOpError
	require.ErrorAs(t, conn.Close(), &opErr)
	assert.Equal(t, "Conn", opErr.Conn)
	assert.Equal(t, "close", opErr.Op)

	_, err := conn.Poll(time.Millisecond)
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "poll", opErr.Op)

	_, err = conn.Fd()
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "fd", opErr.Op)
}

// TestConn_ID tests that each connection gets a distinct identifier.
func TestConn_ID(t *testing.T) {
	a := Wrap(&bareConn{})
	b := Wrap(&bareConn{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
