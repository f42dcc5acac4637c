package ipc

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/forge-ml/forge/internal/tensor"
)

// Codec serializes values to byte buffers and back. Implementations must
// round-trip every value of their supported domain: Decode(Encode(v)) equals
// v under the codec's equality notion.
type Codec interface {
	// Encode serializes a value into a self-contained byte buffer.
	Encode(v any) ([]byte, error)

	// Decode deserializes a buffer produced by Encode.
	Decode(buf []byte) (any, error)
}

// Frame format constants.
const (
	frameMagic      = "FIPC"
	frameVersion    = 1
	prologueSize    = 16 // magic + version + header size
	tensorRefKey    = "$tensor"
	maxFrameTensors = 1 << 20
)

type frameHeader struct {
	Version  int          `json:"version"`
	Root     any          `json:"root"`
	Tensors  []tensorMeta `json:"tensors,omitempty"`
	Checksum string       `json:"checksum,omitempty"` // SHA-256 of the blob section, hex
}

type tensorMeta struct {
	ID     int    `json:"id"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Device string `json:"device"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}

// FrameCodec is the default Codec. Values are encoded as a JSON tree; every
// *tensor.RawTensor found in the tree (at the root or nested in []any /
// map[string]any containers) is replaced by a reference and its contents
// shipped in the binary blob section, so tensor bytes are never inflated
// through JSON.
//
// Supported value domain: nil, booleans, numbers, strings, []any,
// map[string]any, and *tensor.RawTensor. Numbers round-trip under JSON
// semantics and decode as float64; tensors round-trip exactly, and a tensor
// referenced from several places in one value ships once and decodes back to
// a single shared container.
type FrameCodec struct{}

var _ Codec = (*FrameCodec)(nil)

// NewFrameCodec creates a FrameCodec.
func NewFrameCodec() *FrameCodec {
	return &FrameCodec{}
}

// encodeState accumulates the blob section while the value tree is walked.
// seen memoizes tensors by container identity, so one tensor referenced from
// several places in the tree ships once and decodes back to one container.
type encodeState struct {
	metas    []tensorMeta
	blobs    [][]byte
	blobSize int64
	seen     map[*tensor.RawTensor]int
}

// Encode serializes v into one frame. Returns *EncodeError if v contains a
// value outside the supported domain.
func (c *FrameCodec) Encode(v any) ([]byte, error) {
	st := &encodeState{seen: make(map[*tensor.RawTensor]int)}

	root, err := encodeValue(v, st)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	blob := make([]byte, 0, st.blobSize)
	for _, b := range st.blobs {
		blob = append(blob, b...)
	}

	header := frameHeader{
		Version: frameVersion,
		Root:    root,
		Tensors: st.metas,
	}
	if len(blob) > 0 {
		sum := checksum(blob)
		header.Checksum = hex.EncodeToString(sum[:])
	}

	headerJSON, err := sonic.Marshal(header)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	buf := make([]byte, 0, prologueSize+len(headerJSON)+len(blob))
	buf = append(buf, frameMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, frameVersion)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(headerJSON)))
	buf = append(buf, headerJSON...)
	buf = append(buf, blob...)
	return buf, nil
}

func encodeValue(v any, st *encodeState) (any, error) {
	switch x := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x, nil
	case *tensor.RawTensor:
		id, ok := st.seen[x]
		if !ok {
			id = len(st.metas)
			if id >= maxFrameTensors {
				return nil, fmt.Errorf("too many tensors in one frame")
			}
			data := x.Data()
			st.metas = append(st.metas, tensorMeta{
				ID:     id,
				DType:  x.DType().String(),
				Shape:  []int(x.Shape()),
				Device: x.Device().String(),
				Offset: st.blobSize,
				Size:   int64(len(data)),
			})
			st.blobs = append(st.blobs, data)
			st.blobSize += int64(len(data))
			st.seen[x] = id
		}
		return map[string]any{tensorRefKey: id}, nil
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			enc, err := encodeValue(elem, st)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, elem := range x {
			if key == tensorRefKey {
				return nil, fmt.Errorf("map key %q is reserved", tensorRefKey)
			}
			enc, err := encodeValue(elem, st)
			if err != nil {
				return nil, err
			}
			out[key] = enc
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Decode deserializes one frame. Returns *DecodeError on any malformation:
// bad magic, unknown version, truncation, checksum mismatch, or tensor
// metadata pointing outside the blob section.
func (c *FrameCodec) Decode(buf []byte) (any, error) {
	if len(buf) < prologueSize {
		return nil, &DecodeError{Err: ErrTruncatedFrame}
	}
	if string(buf[:4]) != frameMagic {
		return nil, &DecodeError{Err: ErrInvalidMagic}
	}
	if binary.LittleEndian.Uint32(buf[4:8]) != frameVersion {
		return nil, &DecodeError{Err: ErrUnsupportedVersion}
	}
	headerSize := binary.LittleEndian.Uint64(buf[8:16])
	if headerSize > uint64(len(buf)-prologueSize) {
		return nil, &DecodeError{Err: ErrTruncatedFrame}
	}

	var header frameHeader
	if err := sonic.Unmarshal(buf[prologueSize:prologueSize+int(headerSize)], &header); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if header.Version != frameVersion {
		return nil, &DecodeError{Err: ErrUnsupportedVersion}
	}

	blob := buf[prologueSize+int(headerSize):]
	if header.Checksum != "" {
		want, err := hex.DecodeString(header.Checksum)
		if err != nil || len(want) != checksumSize {
			return nil, &DecodeError{Err: fmt.Errorf("malformed checksum %q", header.Checksum)}
		}
		sum := checksum(blob)
		if string(sum[:]) != string(want) {
			return nil, &DecodeError{Err: ErrChecksumMismatch}
		}
	}

	tensors, err := decodeTensors(header.Tensors, blob)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	root, err := decodeValue(header.Root, tensors)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return root, nil
}

func decodeTensors(metas []tensorMeta, blob []byte) (map[int]*tensor.RawTensor, error) {
	out := make(map[int]*tensor.RawTensor, len(metas))
	for _, meta := range metas {
		dtype, ok := tensor.ParseDataType(meta.DType)
		if !ok {
			return nil, fmt.Errorf("tensor %d: unknown dtype %q", meta.ID, meta.DType)
		}
		device, ok := tensor.ParseDevice(meta.Device)
		if !ok {
			return nil, fmt.Errorf("tensor %d: unknown device %q", meta.ID, meta.Device)
		}
		// Bounds are checked without summing: offset+size can overflow int64
		// on hostile metadata.
		if meta.Offset < 0 || meta.Size < 0 ||
			meta.Offset > int64(len(blob)) || meta.Size > int64(len(blob))-meta.Offset {
			return nil, fmt.Errorf("tensor %d: blob range at offset %d, size %d out of bounds", meta.ID, meta.Offset, meta.Size)
		}
		shape := tensor.Shape(meta.Shape)
		t, err := tensor.NewRaw(shape, dtype, device)
		if err != nil {
			return nil, fmt.Errorf("tensor %d: %w", meta.ID, err)
		}
		if t.ByteSize() != int(meta.Size) {
			return nil, fmt.Errorf("tensor %d: declared size %d does not match shape %v", meta.ID, meta.Size, shape)
		}
		copy(t.Data(), blob[meta.Offset:meta.Offset+meta.Size])
		out[meta.ID] = t
	}
	return out, nil
}

func decodeValue(v any, tensors map[int]*tensor.RawTensor) (any, error) {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			dec, err := decodeValue(elem, tensors)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	case map[string]any:
		if ref, ok := x[tensorRefKey]; ok && len(x) == 1 {
			id, ok := ref.(float64)
			if !ok {
				return nil, fmt.Errorf("malformed tensor reference %v", ref)
			}
			t, ok := tensors[int(id)]
			if !ok {
				return nil, fmt.Errorf("dangling tensor reference %d", int(id))
			}
			return t, nil
		}
		out := make(map[string]any, len(x))
		for key, elem := range x {
			dec, err := decodeValue(elem, tensors)
			if err != nil {
				return nil, err
			}
			out[key] = dec
		}
		return out, nil
	default:
		return v, nil
	}
}
