/*
File Name:  session.go
Package:    data

The two sender primitives exposed to the rest of the core (spec §4.5),
grounded on DataService::send_once_with_retry and DataService::data_session
of service/data_service.rs: connect with a timeout, wrap the payload in a
DataPacket, send through the framed transport, and for data_session retry
the whole connect+send cycle up to reconnectTries times while preserving
caller state across attempts -- this is the resumability primitive used by
the file-transfer state machine (spec §4.6).
*/
package data

import (
	"fmt"
	"net"
	"time"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
	"github.com/airx-go/airx/transport"
)

func dial(p peer.Peer, port uint16, connectTimeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp4", fmt.Sprintf("%s:%d", p.Host, port), connectTimeout)
}

// SendOnceWithRetry connects to p on port, sends one DataPacket wrapping
// magic/payload with bounded retry inside the framed transport, then
// closes the connection. Used for Text, FileComing and
// FileReceiveResponse one-shot sends.
func SendOnceWithRetry(p peer.Peer, port uint16, magic protocol.MagicNumber, payload []byte, connectTimeout time.Duration) error {
	conn, err := dial(p, port, connectTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	dp := protocol.NewDataPacket(magic, payload)
	return transport.Send(conn, dp.Serialize())
}

// SessionFunc is handed a live connection; any session state lives in
// whatever the function closes over, which persists across attempts. It
// returns an error to trigger a reconnect-and-retry or nil on success.
type SessionFunc func(conn net.Conn) error

// NoRetry wraps an error to tell DataSession the failure is final -- the
// peer deliberately ended the exchange, so spending the remaining
// reconnect attempts would only delay reporting it.
type NoRetry struct {
	Err error
}

func (e *NoRetry) Error() string { return e.Err.Error() }
func (e *NoRetry) Unwrap() error { return e.Err }

// DataSession opens a connection to p on port and runs fn over it. If fn
// returns an error (a transport failure mid-stream), the connection is
// reopened and fn is re-entered, up to reconnectTries times. fn is
// responsible for resuming from whatever state it closed over (e.g. a
// byte offset), matching spec §4.6's seek-on-retry requirement. An error
// wrapped in *NoRetry is returned immediately without spending further
// reconnect attempts.
func DataSession(p peer.Peer, port uint16, connectTimeout time.Duration, reconnectTries int, fn SessionFunc) error {
	var lastErr error = fmt.Errorf("data: failed to establish data session with %s", p)

	for tries := 0; tries < reconnectTries; tries++ {
		conn, err := dial(p, port, connectTimeout)
		if err != nil {
			lastErr = err
			continue
		}

		err = fn(conn)
		conn.Close()
		if err == nil {
			return nil
		}
		if noRetry, ok := err.(*NoRetry); ok {
			return noRetry.Err
		}
		lastErr = err
	}
	return lastErr
}
