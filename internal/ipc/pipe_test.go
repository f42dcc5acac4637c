package ipc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipe_Order tests ordered delivery in both directions.
func TestPipe_Order(t *testing.T) {
	a, b := Pipe()

	require.NoError(t, a.SendBytes([]byte("one")))
	require.NoError(t, a.SendBytes([]byte("two")))

	got, err := b.RecvBytes()
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))
	got, err = b.RecvBytes()
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	require.NoError(t, b.SendBytes([]byte("ack")))
	got, err = a.RecvBytes()
	require.NoError(t, err)
	assert.Equal(t, "ack", string(got))
}

// TestPipe_CloseDrain tests that in-flight buffers survive a peer close and
// the drained endpoint then reports ErrConnClosed.
func TestPipe_CloseDrain(t *testing.T) {
	a, b := Pipe()

	require.NoError(t, a.SendBytes([]byte("last")))
	require.NoError(t, a.Close())

	got, err := b.RecvBytes()
	require.NoError(t, err)
	assert.Equal(t, "last", string(got))

	_, err = b.RecvBytes()
	assert.ErrorIs(t, err, ErrConnClosed)
	assert.ErrorIs(t, b.SendBytes([]byte("x")), ErrConnClosed)
}

// TestPipe_Poll_PeerClosed tests that polling a drained endpoint whose peer
// has closed reports the close instead of spinning out the timeout.
func TestPipe_Poll_PeerClosed(t *testing.T) {
	a, b := Pipe()
	require.NoError(t, a.Close())

	start := time.Now()
	ready, err := b.Poll(5 * time.Second)
	assert.False(t, ready)
	assert.ErrorIs(t, err, ErrConnClosed)
	assert.Less(t, time.Since(start), time.Second, "peer close must end the poll early")
}

// TestPipe_Poll_PeerClosedInFlight tests that buffers sent before the peer
// closed still report as ready.
func TestPipe_Poll_PeerClosedInFlight(t *testing.T) {
	a, b := Pipe()
	require.NoError(t, a.SendBytes([]byte("last")))
	require.NoError(t, a.Close())

	ready, err := b.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ready)

	got, err := b.RecvBytes()
	require.NoError(t, err)
	assert.Equal(t, "last", string(got))
}

// TestPipe_CloseIdempotent tests repeated Close calls.
func TestPipe_CloseIdempotent(t *testing.T) {
	a, _ := Pipe()
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.SendBytes([]byte("x")), ErrConnClosed)
}

// TestPipe_Poll tests readiness reporting.
func TestPipe_Poll(t *testing.T) {
	a, b := Pipe()

	ready, err := b.Poll(5 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)

	require.NoError(t, a.SendBytes([]byte("x")))
	ready, err = b.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ready)

	// Data arriving mid-wait is noticed.
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = a.SendBytes([]byte("y"))
	}()
	_, err = b.RecvBytes() // drain "x"
	require.NoError(t, err)
	ready, err = b.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ready)
}
