/*
File Name:  text_packet.go
Package:    protocol

Serialized as (little-endian):
  text_length:u32 | utf8_bytes[text_length] | tag:u16
  6 + N bytes in total

Grounded on packet/data/text_packet.rs. The tag is a position-weighted sum
of the text's Unicode code points, not a MAC (spec §9).
*/
package protocol

// TextMaxLength is the maximum byte length of a TextPacket's payload.
const TextMaxLength = 0xFFFF

const textPacketBaseSize = 6

// TextPacket carries a short UTF-8 message between peers.
type TextPacket struct {
	Text string
}

// NewTextPacket validates and wraps text. It fails with ErrStringTooLong
// if the UTF-8 byte length exceeds TextMaxLength.
func NewTextPacket(text string) (TextPacket, error) {
	if len(text) > TextMaxLength {
		return TextPacket{}, ErrStringTooLong
	}
	return TextPacket{Text: text}, nil
}

func textPacketTag(text string) uint16 {
	tag := uint16(0xFFFF) ^ 0x12 ^ 0x13 ^ 0x8
	for i, r := range []rune(text) {
		tag += uint16(i) * uint16(r)
	}
	return tag
}

// Serialize encodes the packet to the wire format described above.
func (p TextPacket) Serialize() []byte {
	textBytes := []byte(p.Text)
	buf := make([]byte, 0, textPacketBaseSize+len(textBytes))
	buf = PutUint32(buf, uint32(len(textBytes)))
	buf = append(buf, textBytes...)
	buf = PutUint16(buf, textPacketTag(p.Text))
	return buf
}

// DeserializeTextPacket parses a TextPacket from raw bytes.
func DeserializeTextPacket(data []byte) (TextPacket, error) {
	if len(data) < textPacketBaseSize {
		return TextPacket{}, ErrCorrupted
	}

	textLen := int(Uint32(data[0:4]))
	if len(data) != textPacketBaseSize+textLen {
		return TextPacket{}, ErrCorrupted
	}

	text := string(data[4 : 4+textLen])
	tag := Uint16(data[4+textLen : 4+textLen+2])

	if tag != textPacketTag(text) {
		return TextPacket{}, ErrInvalidTag
	}

	return TextPacket{Text: text}, nil
}
