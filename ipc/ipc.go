// Copyright 2026 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ipc provides the public API for sending structured values,
// including tensors, over raw byte channels.
//
// Wrap a RawConn in a Conn and Send/Recv move whole values through a Codec;
// every other channel operation (close, poll, descriptor access) is forwarded
// unchanged to the underlying channel.
package ipc

import (
	"io"

	"github.com/forge-ml/forge/internal/ipc"
)

// Codec serializes values to byte buffers and back.
type Codec = ipc.Codec

// FrameCodec is the default Codec: JSON value tree plus an offset-indexed
// binary blob section for tensor contents.
type FrameCodec = ipc.FrameCodec

// NewFrameCodec creates a FrameCodec.
func NewFrameCodec() *FrameCodec {
	return ipc.NewFrameCodec()
}

// RawConn is a raw bidirectional byte channel.
type RawConn = ipc.RawConn

// Poller is implemented by channels that can wait for readability.
type Poller = ipc.Poller

// Filer is implemented by channels backed by an OS file descriptor.
type Filer = ipc.Filer

// Conn proxies a RawConn, encoding payloads through a Codec.
type Conn = ipc.Conn

// ConnOption configures a Conn.
type ConnOption = ipc.ConnOption

// WithCodec overrides the default FrameCodec.
var WithCodec = ipc.WithCodec

// WithLogger attaches a logger for connection lifecycle events.
var WithLogger = ipc.WithLogger

// Wrap creates a Conn over a raw channel.
func Wrap(raw RawConn, opts ...ConnOption) *Conn {
	return ipc.Wrap(raw, opts...)
}

// PipeConn is one endpoint of an in-memory connected pair.
type PipeConn = ipc.PipeConn

// Pipe creates a connected pair of in-memory endpoints.
func Pipe() (*PipeConn, *PipeConn) {
	return ipc.Pipe()
}

// StreamConn adapts a byte stream into a RawConn with length-prefixed framing.
type StreamConn = ipc.StreamConn

// NewStreamConn creates a StreamConn over rw.
func NewStreamConn(rw io.ReadWriter) *StreamConn {
	return ipc.NewStreamConn(rw)
}

// Error types surfaced by Conn and FrameCodec.
type (
	// EncodeError reports that a value could not be serialized.
	EncodeError = ipc.EncodeError
	// DecodeError reports that a received buffer could not be deserialized.
	DecodeError = ipc.DecodeError
	// UnsupportedOpError reports a forwarded operation the underlying
	// channel does not implement.
	UnsupportedOpError = ipc.UnsupportedOpError
)

// Common errors.
var (
	ErrConnClosed         = ipc.ErrConnClosed
	ErrFrameTooLarge      = ipc.ErrFrameTooLarge
	ErrInvalidMagic       = ipc.ErrInvalidMagic
	ErrUnsupportedVersion = ipc.ErrUnsupportedVersion
	ErrChecksumMismatch   = ipc.ErrChecksumMismatch
	ErrTruncatedFrame     = ipc.ErrTruncatedFrame
)
