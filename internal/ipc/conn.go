package ipc

import (
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RawConn is a raw bidirectional byte channel: one buffer out, one buffer in.
// Implementations may additionally support closing (io.Closer), polling
// (Poller), or exposing an OS descriptor (Filer); Conn forwards those
// operations when present.
type RawConn interface {
	// SendBytes transmits one complete buffer.
	SendBytes(p []byte) error

	// RecvBytes receives one complete buffer.
	RecvBytes() ([]byte, error)
}

// Poller is implemented by channels that can wait for readability.
type Poller interface {
	// Poll reports whether a buffer is ready to receive within the timeout.
	Poll(timeout time.Duration) (bool, error)
}

// Filer is implemented by channels backed by an OS file descriptor.
type Filer interface {
	Fd() uintptr
}

// Conn proxies a RawConn, encoding Send/Recv payloads through a Codec and
// forwarding every other operation unchanged to the underlying channel.
//
// Conn holds a non-owning reference to the channel and adds no
// synchronization; callers must serialize concurrent access to one instance
// just as they would for the raw channel itself.
type Conn struct {
	raw   RawConn
	codec Codec
	id    string
	log   *zap.Logger
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithCodec overrides the default FrameCodec.
func WithCodec(c Codec) ConnOption {
	return func(conn *Conn) {
		conn.codec = c
	}
}

// WithLogger attaches a logger for connection lifecycle events.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) ConnOption {
	return func(conn *Conn) {
		conn.log = log
	}
}

// Wrap creates a Conn over a raw channel.
func Wrap(raw RawConn, opts ...ConnOption) *Conn {
	conn := &Conn{
		raw:   raw,
		codec: NewFrameCodec(),
		id:    uuid.NewString(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(conn)
	}
	conn.log = conn.log.With(zap.String("conn_id", conn.id))
	return conn
}

// ID returns the connection's identifier, used in log fields.
func (c *Conn) ID() string {
	return c.id
}

// Raw returns the underlying channel.
func (c *Conn) Raw() RawConn {
	return c.raw
}

// Send encodes v and transmits the resulting buffer in one raw send.
// Encoding failures return *EncodeError and leave the channel untouched;
// channel errors are propagated unchanged.
func (c *Conn) Send(v any) error {
	buf, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	c.log.Debug("send frame", zap.Int("bytes", len(buf)))
	return c.raw.SendBytes(buf)
}

// Recv receives one raw buffer and decodes it. Channel errors are propagated
// unchanged; malformed buffers return *DecodeError.
func (c *Conn) Recv() (any, error) {
	buf, err := c.raw.RecvBytes()
	if err != nil {
		return nil, err
	}
	c.log.Debug("recv frame", zap.Int("bytes", len(buf)))
	return c.codec.Decode(buf)
}

// Close forwards to the underlying channel's Close. Returns
// *UnsupportedOpError if the channel is not closable.
func (c *Conn) Close() error {
	closer, ok := c.raw.(io.Closer)
	if !ok {
		return &UnsupportedOpError{Conn: "Conn", Op: "close"}
	}
	c.log.Debug("close")
	return closer.Close()
}

// Poll forwards to the underlying channel's Poll. Returns
// *UnsupportedOpError if the channel cannot poll.
func (c *Conn) Poll(timeout time.Duration) (bool, error) {
	poller, ok := c.raw.(Poller)
	if !ok {
		return false, &UnsupportedOpError{Conn: "Conn", Op: "poll"}
	}
	return poller.Poll(timeout)
}

// Fd forwards to the underlying channel's file descriptor. Returns
// *UnsupportedOpError if the channel has none.
func (c *Conn) Fd() (uintptr, error) {
	filer, ok := c.raw.(Filer)
	if !ok {
		return 0, &UnsupportedOpError{Conn: "Conn", Op: "fd"}
	}
	return filer.Fd(), nil
}
