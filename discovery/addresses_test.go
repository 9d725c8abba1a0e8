package discovery

import (
	"net"
	"testing"
)

func TestDirectedBroadcast(t *testing.T) {
	_, ipNet, err := net.ParseCIDR("192.168.1.42/24")
	if err != nil {
		t.Fatalf("ParseCIDR: %v", err)
	}
	got := directedBroadcast(ipNet)
	want := net.IPv4(192, 168, 1, 255).To4()
	if !got.Equal(want) {
		t.Fatalf("directedBroadcast = %v, want %v", got, want)
	}
}

func TestDirectedBroadcastSmallSubnet(t *testing.T) {
	_, ipNet, err := net.ParseCIDR("10.0.0.5/30")
	if err != nil {
		t.Fatalf("ParseCIDR: %v", err)
	}
	got := directedBroadcast(ipNet)
	want := net.IPv4(10, 0, 0, 7).To4()
	if !got.Equal(want) {
		t.Fatalf("directedBroadcast = %v, want %v", got, want)
	}
}

func TestIsLocalAddress(t *testing.T) {
	locals := []net.IP{net.IPv4(192, 168, 1, 10).To4()}
	if !isLocalAddress(net.IPv4(192, 168, 1, 10).To4(), locals) {
		t.Fatalf("expected address to be recognized as local")
	}
	if isLocalAddress(net.IPv4(192, 168, 1, 11).To4(), locals) {
		t.Fatalf("expected address to not be recognized as local")
	}
}

func TestLocalIPv4AddressesDoesNotError(t *testing.T) {
	if _, err := localIPv4Addresses(); err != nil {
		t.Fatalf("localIPv4Addresses: %v", err)
	}
}

func TestBroadcastAddressesIncludesFallback(t *testing.T) {
	addrs, err := broadcastAddresses()
	if err != nil {
		t.Fatalf("broadcastAddresses: %v", err)
	}
	found := false
	for _, a := range addrs {
		if a.Equal(net.IPv4bcast) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected limited-broadcast fallback to always be present")
	}
}
