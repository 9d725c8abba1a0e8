/*
File Name:  file_part_packet.go
Package:    protocol

Serialized as (little-endian):
  file_id:u8 | offset:u64 | length:u64 | data[length]
  17 + N bytes in total

Grounded on packet/data/file_part_packet.rs, widened from the original's
u32 offset/length to u64 so a single connection can carry files larger
than 4 GiB (spec §3/§4.3: "length == data.len() on both sides").
*/
package protocol

const filePartPacketBaseSize = 17

// FilePartPacket carries one chunk of a file transfer at a known offset.
type FilePartPacket struct {
	FileID uint8
	Offset uint64
	Data   []byte
}

// Serialize encodes the packet to the wire format described above.
func (p FilePartPacket) Serialize() []byte {
	buf := make([]byte, 0, filePartPacketBaseSize+len(p.Data))
	buf = append(buf, p.FileID)
	buf = PutUint64(buf, p.Offset)
	buf = PutUint64(buf, uint64(len(p.Data)))
	buf = append(buf, p.Data...)
	return buf
}

// DeserializeFilePartPacket parses a FilePartPacket from raw bytes. It fails
// with ErrCorrupted if the declared length disagrees with the actual data
// size, matching spec §8's "length disagrees with embedded data.len()" law.
func DeserializeFilePartPacket(data []byte) (FilePartPacket, error) {
	if len(data) < filePartPacketBaseSize {
		return FilePartPacket{}, ErrCorrupted
	}

	fileID := data[0]
	offset := Uint64(data[1:9])
	length := Uint64(data[9:17])

	if uint64(len(data)) != filePartPacketBaseSize+length {
		return FilePartPacket{}, ErrCorrupted
	}

	chunk := append([]byte(nil), data[17:17+length]...)

	return FilePartPacket{FileID: fileID, Offset: offset, Data: chunk}, nil
}
