// Package record lays out one queued command in the record store.
//
// A stored record is a fixed metadata header followed by the command frame:
//
//	int64 line | int64 call level | int64 remap level | frame
//
// All header fields are little-endian.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the length of the metadata header.
	HeaderSize = 24

	// DefaultMaxSize bounds a stored record, header included.
	DefaultMaxSize = 1000
	// DefaultHeadroom is subtracted from the maximum to obtain the largest
	// accepted command frame.
	DefaultHeadroom = 64
)

// ErrTruncated is returned when stored bytes are shorter than a header.
var ErrTruncated = errors.New("record: truncated header")

// Meta is the provenance attached to a command when it was staged.
type Meta struct {
	Line       int
	CallLevel  int
	RemapLevel int
}

// NoMeta is the metadata reported when no record is selected.
var NoMeta = Meta{Line: 0, CallLevel: -1, RemapLevel: -1}

// Encode builds the stored form of frame tagged with meta. The result never
// aliases frame.
func Encode(meta Meta, frame []byte) []byte {
	le := binary.LittleEndian
	out := make([]byte, 0, HeaderSize+len(frame))
	out = le.AppendUint64(out, uint64(int64(meta.Line)))
	out = le.AppendUint64(out, uint64(int64(meta.CallLevel)))
	out = le.AppendUint64(out, uint64(int64(meta.RemapLevel)))
	return append(out, frame...)
}

// DecodeMeta reads only the metadata header.
func DecodeMeta(b []byte) (Meta, error) {
	if len(b) < HeaderSize {
		return NoMeta, fmt.Errorf("%w: %d bytes", ErrTruncated, len(b))
	}
	le := binary.LittleEndian
	return Meta{
		Line:       int(int64(le.Uint64(b))),
		CallLevel:  int(int64(le.Uint64(b[8:]))),
		RemapLevel: int(int64(le.Uint64(b[16:]))),
	}, nil
}

// Decode splits a stored record. The returned frame is a fresh copy.
func Decode(b []byte) (Meta, []byte, error) {
	meta, err := DecodeMeta(b)
	if err != nil {
		return NoMeta, nil, err
	}
	return meta, append([]byte(nil), b[HeaderSize:]...), nil
}
