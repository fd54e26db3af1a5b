package record

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	frame := []byte{4, 0, 0, 0, 12, 0, 0, 0, 1, 2, 3, 4}
	meta := Meta{Line: 42, CallLevel: 2, RemapLevel: -1}

	stored := Encode(meta, frame)
	if len(stored) != HeaderSize+len(frame) {
		t.Fatalf("unexpected stored length %d", len(stored))
	}

	frame[8] = 99
	gotMeta, gotFrame, err := Decode(stored)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gotMeta != meta {
		t.Fatalf("meta = %+v, want %+v", gotMeta, meta)
	}
	if !bytes.Equal(gotFrame, []byte{4, 0, 0, 0, 12, 0, 0, 0, 1, 2, 3, 4}) {
		t.Fatalf("stored frame aliases the caller buffer: %v", gotFrame)
	}

	gotFrame[0] = 0
	if _, again, _ := Decode(stored); again[0] != 4 {
		t.Fatalf("decoded frame aliases the stored record")
	}
}

func TestDecodeTruncated(t *testing.T) {
	meta, _, err := Decode(make([]byte, HeaderSize-1))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if meta != NoMeta {
		t.Fatalf("expected NoMeta on failure, got %+v", meta)
	}
}

func TestNegativeLevelsSurvive(t *testing.T) {
	meta := Meta{Line: 0, CallLevel: -1, RemapLevel: -7}
	got, err := DecodeMeta(Encode(meta, nil))
	if err != nil || got != meta {
		t.Fatalf("DecodeMeta = %+v,%v", got, err)
	}
}

func TestWideValuesSurvive(t *testing.T) {
	meta := Meta{Line: 1<<32 + 5, CallLevel: 1 << 31, RemapLevel: -(1 << 40)}
	got, err := DecodeMeta(Encode(meta, nil))
	if err != nil || got != meta {
		t.Fatalf("DecodeMeta = %+v,%v want %+v", got, err, meta)
	}
}
