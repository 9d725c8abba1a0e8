/*
File Name:  context.go
Package:    data

The callback surface of the data service, grounded on DataServiceContext of
service/context/data_service_context.rs: one function pointer per inner
packet type, defaulted to a no-op so the dispatcher never needs a nil
check (the same pattern as the teacher's Filters/initFilters in Filter.go).
*/
package data

import (
	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
)

// Callbacks lets the host observe and drive data-service events. Use nil
// for unused; New fills in no-op defaults.
type Callbacks struct {
	// OnText is invoked once per received TextPacket (spec §4.5).
	OnText func(text string, from peer.Peer)

	// OnFileComing is invoked once per received FileComingPacket.
	OnFileComing func(fileSize uint64, fileName string, from peer.Peer)

	// OnFileReceiveResponse is invoked once per received
	// FileReceiveResponsePacket. This is the entry point into the transfer
	// state machine of spec §4.6; the caller is expected to wire this to
	// a transfer manager that owns the send side of the protocol.
	OnFileReceiveResponse func(resp protocol.FileReceiveResponsePacket, from peer.Peer)

	// OnFilePart is invoked once per received FilePartPacket. Returning
	// true signals "stop receiving": the worker closes the connection
	// after sending a FilePartResponse{StopReceiving}.
	OnFilePart func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) (stopReceiving bool)

	// LogError is called for any recoverable error (malformed packets,
	// unknown magic numbers, transient socket errors).
	LogError func(function, format string, v ...interface{})
}

func (c *Callbacks) setDefaults() {
	if c.OnText == nil {
		c.OnText = func(text string, from peer.Peer) {}
	}
	if c.OnFileComing == nil {
		c.OnFileComing = func(fileSize uint64, fileName string, from peer.Peer) {}
	}
	if c.OnFileReceiveResponse == nil {
		c.OnFileReceiveResponse = func(resp protocol.FileReceiveResponsePacket, from peer.Peer) {}
	}
	if c.OnFilePart == nil {
		c.OnFilePart = func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) bool { return false }
	}
	if c.LogError == nil {
		c.LogError = func(function, format string, v ...interface{}) {}
	}
}
