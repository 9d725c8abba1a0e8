package protocol

import (
	"strings"
	"testing"
)

func TestTextPacketRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello world",
		"😃 سلام こんにちは",
	}
	for _, text := range cases {
		p, err := NewTextPacket(text)
		if err != nil {
			t.Fatalf("NewTextPacket(%q): %v", text, err)
		}
		out, err := DeserializeTextPacket(p.Serialize())
		if err != nil {
			t.Fatalf("deserialize(%q): %v", text, err)
		}
		if out.Text != text {
			t.Fatalf("round trip mismatch: got %q, want %q", out.Text, text)
		}
	}
}

func TestTextPacketTooLong(t *testing.T) {
	huge := strings.Repeat("a", TextMaxLength+1)
	if _, err := NewTextPacket(huge); err != ErrStringTooLong {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestTextPacketInvalidTag(t *testing.T) {
	p, _ := NewTextPacket("corrupt me")
	raw := p.Serialize()
	raw[len(raw)-1] ^= 0xFF
	if _, err := DeserializeTextPacket(raw); err != ErrInvalidTag {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}
