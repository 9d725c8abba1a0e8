//go:build windows

/*
File Name:  reuseport_windows.go
Package:    reuseport

Windows has no SO_REUSEPORT, and SO_REUSEADDR has different (looser)
semantics than on POSIX, so this is a plain, unmodified listen. The
discovery socket still works, it just does not survive a rapid
bind/unbind cycle as gracefully as on Linux/BSD.
*/
package reuseport

import "net"

// ListenPacket binds a UDP socket with the platform defaults.
func ListenPacket(network, address string) (net.PacketConn, error) {
	return net.ListenPacket(network, address)
}
