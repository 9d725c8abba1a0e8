/*
File Name:  data_packet.go
Package:    protocol

The outer envelope carrying every message sent over a data (TCP) session.

Serialized as (all little-endian):
  magic:u16 | length:u32 | payload[length] | tag:u16
  8 + N bytes in total

Grounded on packet/data_packet.rs. The redundancy tag is len(payload)/2 as
u16 -- an O(1) checksum, not a MAC (see spec §9).
*/
package protocol

// DataPacketBaseSize is the size of a DataPacket excluding its payload.
const DataPacketBaseSize = 8

// DataPacket is the outer envelope of every data-service message.
type DataPacket struct {
	Magic   MagicNumber
	Payload []byte
}

// NewDataPacket wraps payload with the given magic number.
func NewDataPacket(magic MagicNumber, payload []byte) DataPacket {
	return DataPacket{Magic: magic, Payload: payload}
}

func dataPacketTag(payload []byte) uint16 {
	return uint16(len(payload) / 2)
}

// Serialize encodes the packet to the wire format described above.
func (p DataPacket) Serialize() []byte {
	buf := make([]byte, 0, DataPacketBaseSize+len(p.Payload))
	buf = PutUint16(buf, uint16(p.Magic))
	buf = PutUint32(buf, uint32(len(p.Payload)))
	buf = append(buf, p.Payload...)
	buf = PutUint16(buf, dataPacketTag(p.Payload))
	return buf
}

// DeserializeDataPacket parses a DataPacket from raw bytes. It fails with
// ErrCorrupted when the buffer is short or the length field disagrees with
// the actual payload size, and ErrInvalidTag when the tag does not match.
// It does not validate the magic number against the closed enum -- callers
// dispatching on Magic should check Magic.Valid() themselves and report
// ErrUnknownMagic, since an unknown magic is a dispatch concern, not a
// framing one.
func DeserializeDataPacket(data []byte) (DataPacket, error) {
	if len(data) < DataPacketBaseSize {
		return DataPacket{}, ErrCorrupted
	}

	magic := MagicNumber(Uint16(data[0:2]))
	length := Uint32(data[2:6])

	if len(data) != DataPacketBaseSize+int(length) {
		return DataPacket{}, ErrCorrupted
	}

	payload := append([]byte(nil), data[6:6+length]...)
	tag := Uint16(data[6+length : 6+length+2])

	if tag != dataPacketTag(payload) {
		return DataPacket{}, ErrInvalidTag
	}

	return DataPacket{Magic: magic, Payload: payload}, nil
}
