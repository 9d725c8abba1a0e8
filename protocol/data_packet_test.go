package protocol

import (
	"bytes"
	"testing"
)

func TestDataPacketRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("hello"),
		bytes.Repeat([]byte{0xAB}, 4096),
	}
	for _, payload := range cases {
		p := NewDataPacket(MagicText, payload)
		out, err := DeserializeDataPacket(p.Serialize())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Magic != MagicText || !bytes.Equal(out.Payload, payload) {
			t.Fatalf("round trip mismatch: %+v", out)
		}
	}
}

func TestDataPacketLengthMismatch(t *testing.T) {
	p := NewDataPacket(MagicText, []byte("hello")).Serialize()
	// Corrupt the length field to claim more bytes than present.
	p[2] = 0xFF
	if _, err := DeserializeDataPacket(p); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}

func TestDataPacketInvalidTag(t *testing.T) {
	p := NewDataPacket(MagicText, []byte("hello")).Serialize()
	p[len(p)-1] ^= 0xFF
	if _, err := DeserializeDataPacket(p); err != ErrInvalidTag {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestDataPacketTooShort(t *testing.T) {
	if _, err := DeserializeDataPacket([]byte{1, 2, 3}); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
