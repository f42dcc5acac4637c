// Package ipc sends structured values, including tensors, over raw byte
// channels.
//
// Conn is a proxy: Send and Recv route payloads through a Codec before and
// after raw byte transmission, and every other channel operation is forwarded
// unchanged to the underlying channel. The default FrameCodec frames each
// payload as:
//
//	Frame Structure:
//	  [4 bytes: Magic "FIPC"]
//	  [4 bytes: Version (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata + value tree with tensor references]
//	  [Blob section: raw tensor bytes, offset-indexed from the header]
//
// Tensor contents travel in the blob section, outside the JSON, so large
// payloads are never base64-inflated. The blob section carries a SHA-256
// checksum in the header.
//
// Example usage:
//
//	a, b := ipc.Pipe()
//	conn := ipc.Wrap(a)
//	peer := ipc.Wrap(b)
//
//	if err := conn.Send(map[string]any{"step": 3, "grad": grad}); err != nil {
//	    log.Fatal(err)
//	}
//	msg, err := peer.Recv()
//
// A Conn adds no synchronization: callers needing concurrent senders on one
// instance must serialize access themselves, exactly as with the underlying
// channel.
package ipc
