/*
File Name:  file_coming_packet.go
Package:    protocol

Serialized as (little-endian):
  file_size:u64 | name_length:u32 | utf8_name[name_length] | tag:u16
  14 + N bytes in total

Grounded on packet/data/file_coming_packet.rs.
*/
package protocol

import "strings"

const fileComingPacketBaseSize = 12

// FileComingPacket offers a file transfer to a peer, ahead of consent.
type FileComingPacket struct {
	FileSize uint64
	FileName string
}

func fileComingPacketTag(fileSize uint64, nameLen uint32) uint16 {
	return uint16(uint32(fileSize) + nameLen)
}

// Serialize encodes the packet to the wire format described above.
func (p FileComingPacket) Serialize() []byte {
	nameBytes := []byte(p.FileName)
	buf := make([]byte, 0, fileComingPacketBaseSize+2+len(nameBytes))
	buf = PutUint64(buf, p.FileSize)
	buf = PutUint32(buf, uint32(len(nameBytes)))
	buf = append(buf, nameBytes...)
	buf = PutUint16(buf, fileComingPacketTag(p.FileSize, uint32(len(nameBytes))))
	return buf
}

// DeserializeFileComingPacket parses a FileComingPacket from raw bytes.
// The file name is decoded with lossy UTF-8 per spec §4.3.
func DeserializeFileComingPacket(data []byte) (FileComingPacket, error) {
	if len(data) < fileComingPacketBaseSize {
		return FileComingPacket{}, ErrCorrupted
	}

	fileSize := Uint64(data[0:8])
	nameLen := Uint32(data[8:12])

	if len(data) != fileComingPacketBaseSize+int(nameLen)+2 {
		return FileComingPacket{}, ErrCorrupted
	}

	name := strings.ToValidUTF8(string(data[12:12+nameLen]), "�")
	tag := Uint16(data[12+nameLen : 12+nameLen+2])

	if tag != fileComingPacketTag(fileSize, nameLen) {
		return FileComingPacket{}, ErrInvalidTag
	}

	return FileComingPacket{FileSize: fileSize, FileName: name}, nil
}
