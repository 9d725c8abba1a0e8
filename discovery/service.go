/*
File Name:  service.go
Package:    discovery

The discovery subsystem: a UDP broadcaster/responder that keeps the shared
peer table current. Grounded on DiscoveryService::run/broadcast_discovery_request
of network/discovery_service.rs and service/discovery_service.rs, generalized
from their plain-handshake-string wire format to the DiscoveryPacket codec
and group filtering described in spec §4.4, and on the non-blocking-accept +
should-interrupt polling idiom of BroadcastIPv4Listen in "Network IPv4
Broadcast.go".
*/
package discovery

import (
	"fmt"
	"net"
	"time"

	"github.com/airx-go/airx/internal/reuseport"
	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
)

// maxDatagramSize bounds a single read; a DiscoveryPacket with a
// pathologically long host name beyond this is simply dropped as corrupt.
const maxDatagramSize = 2048

// readTimeout bounds a single blocking read, giving should-interrupt a
// polling granularity of about one second (spec §4.4).
const readTimeout = time.Second

// Config holds the immutable parameters of one discovery service instance.
type Config struct {
	ServerPort uint16 // bound for receiving broadcasts and replies
	ClientPort uint16 // bound when sending a broadcast; 0 selects an ephemeral port
	DataPort   uint16 // the data-service port advertised to peers
	GroupID    uint32
	HostName   string
}

// Callbacks lets the host observe discovery events. Use nil for unused.
type Callbacks struct {
	// OnPeerDiscovered is called every time a peer is inserted or refreshed
	// in the peer table.
	OnPeerDiscovered func(p peer.Peer)

	// LogError is called for any recoverable error encountered by the
	// service (malformed datagrams, transient socket errors).
	LogError func(function, format string, v ...interface{})
}

// Service runs the discovery broadcaster and responder for one configured
// port pair and group.
type Service struct {
	cfg       Config
	callbacks Callbacks
	table     *peer.Table
}

// New creates a discovery Service. table is shared with the data service so
// both subsystems observe the same peer set.
func New(cfg Config, table *peer.Table, callbacks Callbacks) *Service {
	if callbacks.LogError == nil {
		callbacks.LogError = func(function, format string, v ...interface{}) {}
	}
	if callbacks.OnPeerDiscovered == nil {
		callbacks.OnPeerDiscovered = func(p peer.Peer) {}
	}
	return &Service{cfg: cfg, callbacks: callbacks, table: table}
}

// BroadcastOnce sends one need-response=true DiscoveryPacket per
// (broadcast address x local IPv4 address) pair, as required on startup
// and whenever the receive loop observes an error (spec §4.4).
func (s *Service) BroadcastOnce() error {
	locals, err := localIPv4Addresses()
	if err != nil {
		return err
	}
	broadcasts, err := broadcastAddresses()
	if err != nil {
		return err
	}

	conn, err := reuseport.ListenPacket("udp4", fmt.Sprintf(":%d", s.cfg.ClientPort))
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, local := range locals {
		pkt := protocol.DiscoveryPacket{
			SenderAddress: local,
			ServerPort:    s.cfg.DataPort,
			GroupID:       s.cfg.GroupID,
			NeedResponse:  true,
			HostName:      s.cfg.HostName,
		}
		raw := framePacket(pkt)

		for _, bcast := range broadcasts {
			dst := &net.UDPAddr{IP: bcast, Port: int(s.cfg.ServerPort)}
			if _, err := conn.WriteTo(raw, dst); err != nil {
				s.callbacks.LogError("BroadcastOnce", "sending discovery packet to %s: %v\n", dst, err)
			}
		}
	}
	return nil
}

// Run binds the discovery socket, broadcasts once, and processes incoming
// datagrams until shouldInterrupt returns true. It polls shouldInterrupt
// whenever a read times out (about once per second) and again after any
// receive error, re-broadcasting at that point per spec §4.4.
func (s *Service) Run(shouldInterrupt func() bool) error {
	conn, err := reuseport.ListenPacket("udp4", fmt.Sprintf(":%d", s.cfg.ServerPort))
	if err != nil {
		return err
	}
	defer conn.Close()

	udpConn, ok := conn.(*net.UDPConn)
	if !ok {
		return fmt.Errorf("discovery: unexpected packet conn type %T", conn)
	}

	if err := s.BroadcastOnce(); err != nil {
		s.callbacks.LogError("Run", "broadcasting on startup: %v\n", err)
	}

	buf := make([]byte, maxDatagramSize)
	for {
		if shouldInterrupt() {
			return nil
		}

		udpConn.SetReadDeadline(time.Now().Add(readTimeout))
		n, sender, err := udpConn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			s.callbacks.LogError("Run", "receiving discovery datagram: %v\n", err)
			if bErr := s.BroadcastOnce(); bErr != nil {
				s.callbacks.LogError("Run", "re-broadcasting after receive error: %v\n", bErr)
			}
			continue
		}

		s.handleDatagram(udpConn, buf[:n], sender)
	}
}

func (s *Service) handleDatagram(conn *net.UDPConn, raw []byte, sender *net.UDPAddr) {
	pkt, err := unframePacket(raw)
	if err != nil {
		s.callbacks.LogError("handleDatagram", "discarding malformed datagram from %s: %v\n", sender, err)
		return
	}

	locals, err := localIPv4Addresses()
	if err != nil {
		s.callbacks.LogError("handleDatagram", "enumerating local addresses: %v\n", err)
		return
	}
	if isLocalAddress(pkt.SenderAddress, locals) {
		return
	}
	if pkt.GroupID != s.cfg.GroupID {
		return
	}

	p := peer.New(pkt.SenderAddress.String(), pkt.ServerPort, pkt.HostName)
	s.table.Insert(p)
	s.callbacks.OnPeerDiscovered(p)

	if pkt.NeedResponse {
		s.replyTo(conn, sender, locals)
	}
}

// replyTo sends one need-response=false DiscoveryPacket per local IPv4
// address back to the sender's IP on this node's own ServerPort (the port
// every peer binds for receiving broadcasts and replies), matching the
// symmetric-reply requirement of spec §4.4.
func (s *Service) replyTo(conn *net.UDPConn, sender *net.UDPAddr, locals []net.IP) {
	for _, local := range locals {
		pkt := protocol.DiscoveryPacket{
			SenderAddress: local,
			ServerPort:    s.cfg.DataPort,
			GroupID:       s.cfg.GroupID,
			NeedResponse:  false,
			HostName:      s.cfg.HostName,
		}
		dst := &net.UDPAddr{IP: sender.IP, Port: int(s.cfg.ServerPort)}
		if _, err := conn.WriteTo(framePacket(pkt), dst); err != nil {
			s.callbacks.LogError("replyTo", "sending discovery reply to %s: %v\n", dst, err)
		}
	}
}

// framePacket prefixes a serialized DiscoveryPacket with its 4-byte
// little-endian size, matching the wire form noted in spec §4.4 even
// though the prefix is redundant on a datagram transport.
func framePacket(pkt protocol.DiscoveryPacket) []byte {
	payload := pkt.Serialize()
	buf := make([]byte, 0, 4+len(payload))
	buf = protocol.PutUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	return buf
}

// unframePacket strips the 4-byte length prefix and parses the remaining
// DiscoveryPacket, failing closed on any inconsistency between the
// declared length and what was actually received.
func unframePacket(raw []byte) (protocol.DiscoveryPacket, error) {
	if len(raw) < 4 {
		return protocol.DiscoveryPacket{}, protocol.ErrCorrupted
	}
	size := protocol.Uint32(raw[0:4])
	if int(size) != len(raw)-4 {
		return protocol.DiscoveryPacket{}, protocol.ErrCorrupted
	}
	return protocol.DeserializeDiscoveryPacket(raw[4:])
}
