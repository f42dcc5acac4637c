package ipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultMaxFrameSize bounds how large a single received frame may be.
// Guards against a corrupted or hostile length prefix allocating the world.
const DefaultMaxFrameSize = 256 << 20 // 256 MiB

// StreamConn adapts a byte stream (socket, os.Pipe end, unix socketpair)
// into a RawConn using uint32 length-prefixed framing.
type StreamConn struct {
	rw io.ReadWriter

	// MaxFrameSize overrides DefaultMaxFrameSize when > 0.
	MaxFrameSize uint32
}

var _ RawConn = (*StreamConn)(nil)

// NewStreamConn creates a StreamConn over rw.
func NewStreamConn(rw io.ReadWriter) *StreamConn {
	return &StreamConn{rw: rw}
}

func (s *StreamConn) maxFrame() uint32 {
	if s.MaxFrameSize > 0 {
		return s.MaxFrameSize
	}
	return DefaultMaxFrameSize
}

// SendBytes writes one length-prefixed frame. Stream errors are propagated
// unchanged.
func (s *StreamConn) SendBytes(buf []byte) error {
	if uint64(len(buf)) > uint64(s.maxFrame()) {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(buf))
	}
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(buf)))
	if _, err := s.rw.Write(prefix[:]); err != nil {
		return err
	}
	_, err := s.rw.Write(buf)
	return err
}

// RecvBytes reads one length-prefixed frame. Stream errors are propagated
// unchanged (io.EOF on clean peer close).
func (s *StreamConn) RecvBytes() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(s.rw, prefix[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(prefix[:])
	if size > s.maxFrame() {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(s.rw, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close forwards to the underlying stream's Close. Returns
// *UnsupportedOpError if the stream is not closable.
func (s *StreamConn) Close() error {
	closer, ok := s.rw.(io.Closer)
	if !ok {
		return &UnsupportedOpError{Conn: "StreamConn", Op: "close"}
	}
	return closer.Close()
}
