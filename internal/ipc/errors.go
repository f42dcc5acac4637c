package ipc

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrConnClosed         = errors.New("connection closed")
	ErrFrameTooLarge      = errors.New("frame exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported frame version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: frame may be corrupted")
	ErrTruncatedFrame     = errors.New("frame shorter than declared size")
)

// EncodeError reports that a value could not be serialized. The channel was
// not touched; nothing was sent.
type EncodeError struct {
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a received buffer could not be deserialized.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedOpError reports a forwarded operation the underlying channel
// does not implement. The proxy surfaces it immediately instead of silently
// returning a default.
type UnsupportedOpError struct {
	Conn string // proxy type name
	Op   string // missing operation
}

// Error implements the error interface.
func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("%s: underlying channel does not support %q", e.Conn, e.Op)
}
