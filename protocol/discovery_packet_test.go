package protocol

import (
	"net"
	"testing"
)

func TestDiscoveryPacketRoundTrip(t *testing.T) {
	p := DiscoveryPacket{
		SenderAddress: net.IPv4(192, 168, 1, 42),
		ServerPort:    9818,
		GroupID:       7,
		NeedResponse:  true,
		HostName:      "desktop-west",
	}

	out, err := DeserializeDiscoveryPacket(p.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.SenderAddress.Equal(p.SenderAddress) || out.ServerPort != p.ServerPort ||
		out.GroupID != p.GroupID || out.NeedResponse != p.NeedResponse || out.HostName != p.HostName {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDiscoveryPacketInvalidTag(t *testing.T) {
	p := DiscoveryPacket{SenderAddress: net.IPv4(10, 0, 0, 1), ServerPort: 9818, GroupID: 0}
	raw := p.Serialize()
	raw[len(raw)-1] ^= 0xFF
	if _, err := DeserializeDiscoveryPacket(raw); err != ErrInvalidTag {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestDiscoveryPacketUnknownMagic(t *testing.T) {
	p := DiscoveryPacket{SenderAddress: net.IPv4(10, 0, 0, 1), ServerPort: 9818}
	raw := p.Serialize()
	raw[0] ^= 0xFF
	if _, err := DeserializeDiscoveryPacket(raw); err != ErrUnknownMagic {
		t.Fatalf("expected ErrUnknownMagic, got %v", err)
	}
}

func TestDiscoveryPacketTooShort(t *testing.T) {
	if _, err := DeserializeDiscoveryPacket([]byte{1, 2, 3}); err != ErrCorrupted {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
