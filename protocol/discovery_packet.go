/*
File Name:  discovery_packet.go
Package:    protocol

The UDP handshake record exchanged by the discovery subsystem.

Serialized as (all little-endian):
  magic:u16 | sender_addr[4] | server_port:u16 | group_id:u32 |
  need_response:u8 | name_length:u32 | name[name_length] | tag:u16

The magic number (kept at the original libairx value, discovery_packet.rs)
lets a receiver cheaply discard non-AirX broadcast noise on a shared UDP
port before running the tag check. The tag is
(sum of sender octets + server_port + group_id) / 3 as u16 -- an O(1)
checksum, not a MAC, matching spec §3/§9.
*/
package protocol

import (
	"net"
	"strings"
)

// DiscoveryMagicNumber is the fixed magic number of every DiscoveryPacket.
const DiscoveryMagicNumber uint16 = 0x8964

// DiscoveryPacketBaseSize is the packet size excluding the host name and
// the trailing 2-byte tag.
const DiscoveryPacketBaseSize = 17

// DiscoveryPacket announces or replies to a peer on the broadcast domain.
type DiscoveryPacket struct {
	SenderAddress net.IP // IPv4, 4-byte form
	ServerPort    uint16
	GroupID       uint32
	NeedResponse  bool
	HostName      string
}

func discoveryPacketTag(addr net.IP, port uint16, group uint32) uint16 {
	a := addr.To4()
	sum := uint32(a[0]) + uint32(a[1]) + uint32(a[2]) + uint32(a[3]) + uint32(port) + group
	return uint16(sum / 3)
}

// Serialize encodes the packet to the wire format described above.
func (p DiscoveryPacket) Serialize() []byte {
	addr := p.SenderAddress.To4()
	nameBytes := []byte(p.HostName)

	buf := make([]byte, 0, DiscoveryPacketBaseSize+2+len(nameBytes))
	buf = PutUint16(buf, DiscoveryMagicNumber)
	buf = append(buf, addr[0], addr[1], addr[2], addr[3])
	buf = PutUint16(buf, p.ServerPort)
	buf = PutUint32(buf, p.GroupID)
	if p.NeedResponse {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = PutUint32(buf, uint32(len(nameBytes)))
	buf = append(buf, nameBytes...)
	buf = PutUint16(buf, discoveryPacketTag(p.SenderAddress, p.ServerPort, p.GroupID))
	return buf
}

// DeserializeDiscoveryPacket parses a DiscoveryPacket from raw bytes.
// It fails with ErrUnknownMagic if the magic number does not match,
// ErrCorrupted if the buffer is short or the name length overruns it, and
// ErrInvalidTag if the integrity tag does not match. The host name is
// decoded with lossy UTF-8 (replacement character on invalid bytes) so a
// malformed name never fails the whole packet, per spec §4.3.
func DeserializeDiscoveryPacket(data []byte) (DiscoveryPacket, error) {
	if len(data) < DiscoveryPacketBaseSize {
		return DiscoveryPacket{}, ErrCorrupted
	}

	magic := Uint16(data[0:2])
	if magic != DiscoveryMagicNumber {
		return DiscoveryPacket{}, ErrUnknownMagic
	}

	addr := net.IPv4(data[2], data[3], data[4], data[5])
	serverPort := Uint16(data[6:8])
	groupID := Uint32(data[8:12])
	needResponse := data[12] != 0
	nameLen := int(Uint32(data[13:17]))

	if len(data) != DiscoveryPacketBaseSize+nameLen+2 {
		return DiscoveryPacket{}, ErrCorrupted
	}

	name := strings.ToValidUTF8(string(data[17:17+nameLen]), "�")
	tag := Uint16(data[17+nameLen : 17+nameLen+2])

	if tag != discoveryPacketTag(addr, serverPort, groupID) {
		return DiscoveryPacket{}, ErrInvalidTag
	}

	return DiscoveryPacket{
		SenderAddress: addr,
		ServerPort:    serverPort,
		GroupID:       groupID,
		NeedResponse:  needResponse,
		HostName:      name,
	}, nil
}
