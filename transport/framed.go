/*
File Name:  framed.go
Package:    transport

Length-prefixed framing over a net.Conn, grounded on DataTransmission's
send_data_progress_with_retry/read_data_progress_with_retry in
packet/data_transmission.rs: a 4-byte little-endian length prefix followed
by the payload, with a bounded number of retries on transient I/O errors
and a progress callback invoked after every successful syscall (spec §4.1).
*/
package transport

import (
	"errors"
	"io"
	"time"

	"github.com/airx-go/airx/protocol"
)

// PacketTryTimes bounds the number of failed attempts tolerated for a
// single send or read operation before giving up, matching
// PACKET_TRY_TIMES of the original implementation.
const PacketTryTimes = 5

// RetryWaitInterval is slept between retries of a transient I/O failure.
const RetryWaitInterval = 10 * time.Millisecond

// MaxFrameSize bounds the length prefix accepted by ReadWithProgress, to
// avoid allocating an attacker- or bug-controlled amount of memory for a
// single frame.
const MaxFrameSize = 512 * 1024 * 1024

// ErrFrameTooLarge is returned by ReadWithProgress when the declared frame
// size exceeds MaxFrameSize.
var ErrFrameTooLarge = errors.New("transport: frame size exceeds maximum")

const sizePrefixLen = 4

// ProgressFunc is invoked after each successful partial write or read.
// For SendWithProgress, bytesSoFar is the cumulative number of bytes
// written of the whole frame (prefix included). For ReadWithProgress,
// bytesSoFar is the cumulative number of payload bytes read so far, per
// spec §9's decision to standardize on cumulative bytes rather than the
// original's fraction.
type ProgressFunc func(bytesSoFar uint64)

// SendWithProgress writes payload as a length-prefixed frame to conn,
// retrying after any write error and giving up once PacketTryTimes writes
// have failed. onProgress,
// if non-nil, is called after every successful Write with the cumulative
// number of bytes written so far (including the length prefix).
func SendWithProgress(conn io.Writer, payload []byte, onProgress ProgressFunc) error {
	buf := make([]byte, 0, sizePrefixLen+len(payload))
	buf = protocol.PutUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)

	remainingTries := PacketTryTimes
	var lastErr error = errors.New("transport: failed to send data")
	bytesWrittenTotal := 0

	for remainingTries > 0 {
		n, err := conn.Write(buf[bytesWrittenTotal:])
		if err != nil {
			lastErr = err
			remainingTries--
			time.Sleep(RetryWaitInterval)
			continue
		}
		bytesWrittenTotal += n
		if onProgress != nil {
			onProgress(uint64(bytesWrittenTotal))
		}
		if bytesWrittenTotal >= len(buf) {
			return nil
		}
	}
	return lastErr
}

// Send is SendWithProgress without a progress callback.
func Send(conn io.Writer, payload []byte) error {
	return SendWithProgress(conn, payload, nil)
}

// ReadWithProgress reads one length-prefixed frame from conn, retrying
// after any read error and giving up once PacketTryTimes reads have failed,
// counted separately for the length prefix and for the payload. onProgress, if non-nil, is called after every
// successful partial read of the payload with the cumulative bytes read
// so far.
func ReadWithProgress(conn io.Reader, onProgress ProgressFunc) ([]byte, error) {
	sizeBuf := make([]byte, sizePrefixLen)

	remainingTries := PacketTryTimes
	var lastErr error = errors.New("transport: failed to read data")
	for remainingTries > 0 {
		if _, err := io.ReadFull(conn, sizeBuf); err != nil {
			lastErr = err
			remainingTries--
			time.Sleep(RetryWaitInterval)
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, lastErr
	}

	packetSize := protocol.Uint32(sizeBuf)
	if packetSize > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	dataBuf := make([]byte, packetSize)
	if packetSize == 0 {
		return dataBuf, nil
	}

	remainingTries = PacketTryTimes
	lastErr = errors.New("transport: failed to read payload data")
	bytesReadTotal := uint32(0)

	for remainingTries > 0 {
		n, err := conn.Read(dataBuf[bytesReadTotal:])
		if err != nil {
			lastErr = err
			remainingTries--
			time.Sleep(RetryWaitInterval)
			continue
		}
		bytesReadTotal += uint32(n)
		if onProgress != nil {
			onProgress(uint64(bytesReadTotal))
		}
		if bytesReadTotal >= packetSize {
			return dataBuf, nil
		}
	}

	return nil, lastErr
}

// Read is ReadWithProgress without a progress callback.
func Read(conn io.Reader) ([]byte, error) {
	return ReadWithProgress(conn, nil)
}
