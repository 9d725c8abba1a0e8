package protocol

import "testing"

func TestFileComingPacketRoundTrip(t *testing.T) {
	p := FileComingPacket{FileSize: 1024, FileName: "test.bin"}
	out, err := DeserializeFileComingPacket(p.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != p {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestFileComingPacketInvalidTag(t *testing.T) {
	p := FileComingPacket{FileSize: 16 * 1024 * 1024, FileName: "movie.mp4"}
	raw := p.Serialize()
	raw[len(raw)-1] ^= 0xFF
	if _, err := DeserializeFileComingPacket(raw); err != ErrInvalidTag {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestFileComingPacketCorrupted(t *testing.T) {
	if _, err := DeserializeFileComingPacket([]byte{1, 2, 3}); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
