/*
File Name:  file_part_response_packet.go
Package:    protocol

Serialized as (little-endian):
  file_id:u8 | kind:u8
  2 bytes in total

Grounded on packet/data/file_part_response_packet.rs.
*/
package protocol

const filePartResponsePacketSize = 2

// ResponseKind is the receiver's control signal back to the sender.
type ResponseKind uint8

const (
	StopSending   ResponseKind = 1
	StopReceiving ResponseKind = 2
)

// FilePartResponsePacket lets the receiver ask the sender to stop streaming.
type FilePartResponsePacket struct {
	FileID uint8
	Kind   ResponseKind
}

// Serialize encodes the packet to the wire format described above.
func (p FilePartResponsePacket) Serialize() []byte {
	return []byte{p.FileID, byte(p.Kind)}
}

// DeserializeFilePartResponsePacket parses a FilePartResponsePacket.
func DeserializeFilePartResponsePacket(data []byte) (FilePartResponsePacket, error) {
	if len(data) != filePartResponsePacketSize {
		return FilePartResponsePacket{}, ErrCorrupted
	}
	return FilePartResponsePacket{FileID: data[0], Kind: ResponseKind(data[1])}, nil
}
