/*
File Name:  file_receive_response_packet.go
Package:    protocol

Serialized as (little-endian):
  file_id:u8 | file_size:u64 | name_length:u32 | utf8_name[name_length] | accepted:u8
  14 + N bytes in total

Grounded on packet/data/file_receive_response_packet.rs. Unlike most inner
packets this one carries no redundancy tag in the original wire format.
*/
package protocol

import "strings"

const fileReceiveResponsePacketBaseSize = 14

// FileReceiveResponsePacket is the receiver's answer to a FileComingPacket.
type FileReceiveResponsePacket struct {
	FileID   uint8
	FileSize uint64
	FileName string
	Accepted bool
}

// Serialize encodes the packet to the wire format described above.
func (p FileReceiveResponsePacket) Serialize() []byte {
	nameBytes := []byte(p.FileName)
	buf := make([]byte, 0, fileReceiveResponsePacketBaseSize+len(nameBytes))
	buf = append(buf, p.FileID)
	buf = PutUint64(buf, p.FileSize)
	buf = PutUint32(buf, uint32(len(nameBytes)))
	buf = append(buf, nameBytes...)
	if p.Accepted {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

// DeserializeFileReceiveResponsePacket parses a FileReceiveResponsePacket.
// The file name is decoded with lossy UTF-8 per spec §4.3.
func DeserializeFileReceiveResponsePacket(data []byte) (FileReceiveResponsePacket, error) {
	if len(data) < fileReceiveResponsePacketBaseSize {
		return FileReceiveResponsePacket{}, ErrCorrupted
	}

	fileID := data[0]
	fileSize := Uint64(data[1:9])
	nameLen := int(Uint32(data[9:13]))

	if len(data) != fileReceiveResponsePacketBaseSize+nameLen {
		return FileReceiveResponsePacket{}, ErrCorrupted
	}

	name := strings.ToValidUTF8(string(data[13:13+nameLen]), "�")
	accepted := data[13+nameLen] != 0

	return FileReceiveResponsePacket{
		FileID:   fileID,
		FileSize: fileSize,
		FileName: name,
		Accepted: accepted,
	}, nil
}
