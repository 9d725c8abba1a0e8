/*
File Name:  cancel.go
Package:    transfer

Distinguishing a receiver-initiated cancellation from a generic transport
error. The original file_sending_packet.rs declares CancelledBySender and
CancelledByReceiver but the reference handler never actually reaches
either -- every data-session failure collapses to Error (see spec §9's
open question about the asymmetric file-part-response handling). Since
the receiver is the only side that ever writes a FilePartResponse onto
the forward connection (spec §4.6), a short best-effort read right after
a failed write lets the sender at least tell a receiver-initiated stop
apart from an ordinary transport error. There is still no wire message a
sender can emit to cancel its own send, so StatusCancelledBySender stays
unreachable; only StatusCancelledByReceiver is ever produced.
*/
package transfer

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/airx-go/airx/protocol"
)

// peekCancellationTimeout bounds the best-effort read used to detect a
// FilePartResponse that raced a write failure.
const peekCancellationTimeout = 200 * time.Millisecond

// errCancelled signals that the peer explicitly requested a stop, as
// opposed to an ordinary transport failure.
type errCancelled struct {
	kind protocol.ResponseKind
}

func (e *errCancelled) Error() string {
	return "transfer: peer requested stop"
}

// detectCancellation makes one short, best-effort attempt to read a
// FilePartResponse the receiver may have written just before dropping the
// connection. It never blocks for long: any error (including a timeout)
// just means "could not tell", so the caller should fall back to a
// generic transport error.
func detectCancellation(conn net.Conn) error {
	if dl, ok := conn.(interface{ SetReadDeadline(time.Time) error }); ok {
		dl.SetReadDeadline(time.Now().Add(peekCancellationTimeout))
	}

	raw, err := readOneFrame(conn)
	if err != nil {
		return nil
	}

	dp, err := protocol.DeserializeDataPacket(raw)
	if err != nil || dp.Magic != protocol.MagicFilePartResponse {
		return nil
	}

	resp, err := protocol.DeserializeFilePartResponsePacket(dp.Payload)
	if err != nil {
		return nil
	}

	return &errCancelled{kind: resp.Kind}
}

// readOneFrame reads exactly one length-prefixed frame without the
// multi-try retry behavior of transport.Read, since a timeout here simply
// means no cancellation packet is waiting.
func readOneFrame(conn net.Conn) ([]byte, error) {
	sizeBuf := make([]byte, 4)
	if _, err := io.ReadFull(conn, sizeBuf); err != nil {
		return nil, err
	}
	size := protocol.Uint32(sizeBuf)
	if size > 1<<20 {
		return nil, errors.New("transfer: cancellation probe frame too large")
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
