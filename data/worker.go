/*
File Name:  worker.go
Package:    data

Per-connection dispatch, grounded on DataService::handle_peer and
dispatch_data_packet of service/data_service.rs, and the handler functions
under service/handler/*.rs translated to the dispatch table of spec §4.5.
*/
package data

import (
	"net"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
	"github.com/airx-go/airx/transport"
)

// worker owns one accepted connection for its lifetime.
type worker struct {
	service *Service
	conn    net.Conn
}

// run reads one framed DataPacket at a time and dispatches by magic until
// the connection is closed by the peer, a framing error occurs, or a
// handler decides to close (spec §4.5's per-magic table).
func (w *worker) run() {
	remoteIP, _, err := net.SplitHostPort(w.conn.RemoteAddr().String())
	if err != nil {
		w.service.callbacks.LogError("worker.run", "parsing remote address %s: %v\n", w.conn.RemoteAddr(), err)
		return
	}

	for {
		raw, err := transport.Read(w.conn)
		if err != nil {
			return
		}

		dp, err := protocol.DeserializeDataPacket(raw)
		if err != nil {
			w.service.callbacks.LogError("worker.run", "deserializing data packet from %s: %v\n", remoteIP, err)
			return
		}

		if !w.dispatch(dp, remoteIP) {
			return
		}
	}
}

// dispatch handles one DataPacket and returns false when the connection
// should be closed after this packet.
func (w *worker) dispatch(dp protocol.DataPacket, remoteIP string) bool {
	from := w.resolvePeer(remoteIP)

	switch dp.Magic {
	case protocol.MagicText:
		pkt, err := protocol.DeserializeTextPacket(dp.Payload)
		if err != nil {
			w.service.callbacks.LogError("dispatch", "deserializing text packet from %s: %v\n", remoteIP, err)
			return false
		}
		w.service.callbacks.OnText(pkt.Text, from)
		return false

	case protocol.MagicFileComing:
		pkt, err := protocol.DeserializeFileComingPacket(dp.Payload)
		if err != nil {
			w.service.callbacks.LogError("dispatch", "deserializing file coming packet from %s: %v\n", remoteIP, err)
			return false
		}
		w.service.callbacks.OnFileComing(pkt.FileSize, pkt.FileName, from)
		return false

	case protocol.MagicFileReceiveResponse:
		pkt, err := protocol.DeserializeFileReceiveResponsePacket(dp.Payload)
		if err != nil {
			w.service.callbacks.LogError("dispatch", "deserializing file receive response packet from %s: %v\n", remoteIP, err)
			return false
		}
		// Orchestration (spec §4.6) runs on its own goroutine via a data
		// session the caller dials back to the peer's data port; this
		// worker's connection is not reused for streaming and closes
		// once the callback has been handed off.
		w.service.callbacks.OnFileReceiveResponse(pkt, from)
		return false

	case protocol.MagicFilePart:
		pkt, err := protocol.DeserializeFilePartPacket(dp.Payload)
		if err != nil {
			w.service.callbacks.LogError("dispatch", "deserializing file part packet from %s: %v\n", remoteIP, err)
			return false
		}
		stop := w.service.callbacks.OnFilePart(pkt.FileID, pkt.Offset, pkt.Data, from)
		if stop {
			w.sendFilePartResponse(pkt.FileID, protocol.StopReceiving)
			return false
		}
		return true

	case protocol.MagicFilePartResponse:
		pkt, err := protocol.DeserializeFilePartResponsePacket(dp.Payload)
		if err != nil {
			w.service.callbacks.LogError("dispatch", "deserializing file part response packet from %s: %v\n", remoteIP, err)
		}
		_ = pkt
		return false

	default:
		w.service.callbacks.LogError("dispatch", "unknown magic number %d from %s\n", dp.Magic, remoteIP)
		return false
	}
}

// resolvePeer looks host up in the table shared with the discovery
// service, so a callback sees the HostName discovery already recorded for
// this address instead of always reporting it blank.
func (w *worker) resolvePeer(host string) peer.Peer {
	if p, ok := w.service.table.LookupByAddress(host); ok {
		return p
	}
	return peer.New(host, w.service.cfg.ListenPort, "")
}

// sendFilePartResponse notifies the sender on the same connection that
// the receiver is stopping, best-effort (spec §4.6 cancellation).
func (w *worker) sendFilePartResponse(fileID uint8, kind protocol.ResponseKind) {
	pkt := protocol.FilePartResponsePacket{FileID: fileID, Kind: kind}
	dp := protocol.NewDataPacket(protocol.MagicFilePartResponse, pkt.Serialize())
	if err := transport.Send(w.conn, dp.Serialize()); err != nil {
		w.service.callbacks.LogError("sendFilePartResponse", "notifying peer of stop-receiving: %v\n", err)
	}
}
