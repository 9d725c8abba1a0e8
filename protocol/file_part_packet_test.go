package protocol

import (
	"bytes"
	"testing"
)

func TestFilePartPacketRoundTrip(t *testing.T) {
	p := FilePartPacket{FileID: 1, Offset: 4096, Data: []byte("chunk-of-file-data")}
	out, err := DeserializeFilePartPacket(p.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FileID != p.FileID || out.Offset != p.Offset || !bytes.Equal(out.Data, p.Data) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestFilePartPacketLengthMismatch(t *testing.T) {
	p := FilePartPacket{FileID: 1, Offset: 0, Data: []byte("hello")}
	raw := p.Serialize()
	// Corrupt the length field to disagree with the embedded data.
	raw[9] = 0xFF
	if _, err := DeserializeFilePartPacket(raw); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}

func TestFilePartPacketEmptyChunk(t *testing.T) {
	p := FilePartPacket{FileID: 2, Offset: 100, Data: nil}
	out, err := DeserializeFilePartPacket(p.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Data) != 0 {
		t.Fatalf("expected empty data, got %v", out.Data)
	}
}
