package protocol

import "testing"

func TestFilePartResponsePacketRoundTrip(t *testing.T) {
	cases := []FilePartResponsePacket{
		{FileID: 1, Kind: StopSending},
		{FileID: 2, Kind: StopReceiving},
	}
	for _, p := range cases {
		out, err := DeserializeFilePartResponsePacket(p.Serialize())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != p {
			t.Fatalf("round trip mismatch: got %+v, want %+v", out, p)
		}
	}
}

func TestFilePartResponsePacketCorrupted(t *testing.T) {
	if _, err := DeserializeFilePartResponsePacket([]byte{1}); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
