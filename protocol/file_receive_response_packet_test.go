package protocol

import "testing"

func TestFileReceiveResponsePacketRoundTrip(t *testing.T) {
	cases := []FileReceiveResponsePacket{
		{FileID: 3, FileSize: 1024, FileName: "test.bin", Accepted: true},
		{FileID: 7, FileSize: 0, FileName: "", Accepted: false},
	}
	for _, p := range cases {
		out, err := DeserializeFileReceiveResponsePacket(p.Serialize())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != p {
			t.Fatalf("round trip mismatch: got %+v, want %+v", out, p)
		}
	}
}

func TestFileReceiveResponsePacketCorrupted(t *testing.T) {
	p := FileReceiveResponsePacket{FileID: 1, FileSize: 10, FileName: "a", Accepted: true}
	raw := p.Serialize()
	if _, err := DeserializeFileReceiveResponsePacket(raw[:len(raw)-2]); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
