/*
File Name:  peer.go
Package:    peer

Grounded on network/peer.rs of the original libairx source. Peer identity
is the IPv4 host alone (spec §3/§9): two processes on the same address but
different ports are the same peer in this design.
*/
package peer

import "fmt"

// DefaultHostName is used when a peer has not reported a host name.
const DefaultHostName = "<empty>"

// Peer identifies a reachable instance of the daemon on the LAN.
type Peer struct {
	Host     string // IPv4 address, dotted-quad form. Identity key.
	Port     uint16 // Data-service port advertised by the peer.
	HostName string
}

// New creates a Peer, defaulting HostName to DefaultHostName when empty.
func New(host string, port uint16, hostName string) Peer {
	if hostName == "" {
		hostName = DefaultHostName
	}
	return Peer{Host: host, Port: port, HostName: hostName}
}

// String renders the peer as "hostname@host:port", matching the original's
// Display/ToString implementation.
func (p Peer) String() string {
	return fmt.Sprintf("%s@%s:%d", p.HostName, p.Host, p.Port)
}
