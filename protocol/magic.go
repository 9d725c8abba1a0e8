/*
File Name:  magic.go
Package:    protocol

The closed set of magic numbers selecting the inner codec of a DataPacket.
Grounded on packet/data/magic_numbers.rs; values are kept byte-identical to
the original for wire compatibility (design note in spec §9).
*/
package protocol

// MagicNumber discriminates the inner payload type carried by a DataPacket.
type MagicNumber uint16

const (
	MagicFileComing          MagicNumber = 0x3939
	MagicText                MagicNumber = 0x3940
	MagicFileReceiveResponse MagicNumber = 0x3941
	MagicFilePart            MagicNumber = 0x3942
	MagicFilePartResponse    MagicNumber = 0x3943
)

// Valid reports whether m is one of the known magic numbers.
func (m MagicNumber) Valid() bool {
	switch m {
	case MagicFileComing, MagicText, MagicFileReceiveResponse, MagicFilePart, MagicFilePartResponse:
		return true
	default:
		return false
	}
}

func (m MagicNumber) String() string {
	switch m {
	case MagicFileComing:
		return "FileComing"
	case MagicText:
		return "Text"
	case MagicFileReceiveResponse:
		return "FileReceiveResponse"
	case MagicFilePart:
		return "FilePart"
	case MagicFilePartResponse:
		return "FilePartResponse"
	default:
		return "Unknown"
	}
}
