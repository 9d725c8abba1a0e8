//go:build !windows

/*
File Name:  reuseport_unix.go
Package:    reuseport

SO_REUSEADDR/SO_REUSEPORT and SO_BROADCAST for the discovery UDP socket,
via net.ListenConfig's Control hook -- the idiomatic Go way of reaching a
socket option the standard library does not expose directly, grounded on
the raw-socket Control pattern used throughout the example pack (e.g. the
BFD listener's setSocketOpts) and applied here to golang.org/x/sys/unix
instead of a vendored syscall table.
*/
package reuseport

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// ListenPacket binds a UDP socket with SO_REUSEADDR, SO_REUSEPORT and
// SO_BROADCAST set before bind, so a discovery service restart does not
// race a lingering TIME_WAIT socket and so the connection is immediately
// usable for sending to broadcast addresses.
func ListenPacket(network, address string) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = setSocketOptions(int(fd))
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	return lc.ListenPacket(context.Background(), network, address)
}

func setSocketOptions(fd int) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		return err
	}
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
}
