package ipc

import (
	"sync"
	"time"
)

// pipeDepth is how many in-flight buffers one direction holds before
// SendBytes blocks.
const pipeDepth = 16

// PipeConn is one endpoint of an in-memory connected pair. It implements
// RawConn, io.Closer, and Poller, making it a drop-in raw channel for tests,
// in-process workers, and examples.
type PipeConn struct {
	in       <-chan []byte
	out      chan<- []byte
	done     chan struct{}
	peerDone chan struct{}
	once     sync.Once
}

var (
	_ RawConn = (*PipeConn)(nil)
	_ Poller  = (*PipeConn)(nil)
)

// Pipe creates a connected pair of in-memory endpoints. Buffers sent on one
// endpoint are received on the other, in order.
func Pipe() (*PipeConn, *PipeConn) {
	ab := make(chan []byte, pipeDepth)
	ba := make(chan []byte, pipeDepth)
	aDone := make(chan struct{})
	bDone := make(chan struct{})
	a := &PipeConn{in: ba, out: ab, done: aDone, peerDone: bDone}
	b := &PipeConn{in: ab, out: ba, done: bDone, peerDone: aDone}
	return a, b
}

// SendBytes transmits one buffer to the peer. Returns ErrConnClosed if
// either endpoint is closed.
func (p *PipeConn) SendBytes(buf []byte) error {
	select {
	case <-p.done:
		return ErrConnClosed
	case <-p.peerDone:
		return ErrConnClosed
	default:
	}
	select {
	case p.out <- buf:
		return nil
	case <-p.done:
		return ErrConnClosed
	case <-p.peerDone:
		return ErrConnClosed
	}
}

// RecvBytes receives one buffer from the peer. Buffers already in flight
// remain receivable after the peer closes; once drained, returns
// ErrConnClosed.
func (p *PipeConn) RecvBytes() ([]byte, error) {
	select {
	case buf := <-p.in:
		return buf, nil
	default:
	}
	select {
	case buf := <-p.in:
		return buf, nil
	case <-p.done:
		return nil, ErrConnClosed
	case <-p.peerDone:
		select {
		case buf := <-p.in:
			return buf, nil
		default:
			return nil, ErrConnClosed
		}
	}
}

// Poll reports whether a buffer is ready to receive within the timeout.
func (p *PipeConn) Poll(timeout time.Duration) (bool, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		if len(p.in) > 0 {
			return true, nil
		}
		select {
		case <-p.done:
			return false, ErrConnClosed
		case <-p.peerDone:
			// The peer cannot send anymore; report anything still in flight,
			// then the close.
			if len(p.in) > 0 {
				return true, nil
			}
			return false, ErrConnClosed
		case <-deadline.C:
			return false, nil
		case <-tick.C:
		}
	}
}

// Close closes this endpoint. Safe to call more than once.
func (p *PipeConn) Close() error {
	p.once.Do(func() {
		close(p.done)
	})
	return nil
}
