/*
File Name:  status.go
Package:    webapi

Read-only introspection handlers, grounded on the teacher's
webapi/Status.go (apiStatus/apiAccountInfo shape) but re-pointed at the
AirX domain: peer snapshot, in-flight transfer status, and a live
WebSocket feed of the same two event kinds.
*/
package webapi

import (
	"net/http"
	"sync"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/transfer"
	"github.com/gorilla/websocket"
)

type apiPeer struct {
	Host     string `json:"host"`
	Port     uint16 `json:"port"`
	HostName string `json:"hostname"`
}

// handlePeers returns the current peer-table snapshot.
// Request:  GET /status/peers
// Response: 200 with a JSON array of apiPeer
func (api *Instance) handlePeers(w http.ResponseWriter, r *http.Request) {
	snapshot := api.Service.Peers.Snapshot()
	out := make([]apiPeer, len(snapshot))
	for i, p := range snapshot {
		out[i] = apiPeer{Host: p.Host, Port: p.Port, HostName: p.HostName}
	}
	encodeJSON(w, out)
}

type apiTransfer struct {
	FileID   uint8  `json:"file_id"`
	Progress uint64 `json:"progress"`
	Total    uint64 `json:"total"`
	Status   string `json:"status"`
	Peer     string `json:"peer"`
}

// handleTransfers returns the most recent status seen for every transfer
// this node has initiated, keyed by file_id.
// Request:  GET /status/transfers
// Response: 200 with a JSON array of apiTransfer
func (api *Instance) handleTransfers(w http.ResponseWriter, r *http.Request) {
	encodeJSON(w, api.events.transfersSnapshot())
}

// handleStream upgrades to a WebSocket and pushes every peer-discovered
// and transfer-progress event as it happens.
// Request: GET /status/stream
func (api *Instance) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		api.Service.Filters.LogError("handleStream", "upgrading connection: %v\n", err)
		return
	}
	api.events.subscribe(conn)
}

// eventHub fans peer-discovered and transfer-progress events out to every
// subscribed WebSocket connection, and keeps the last known status of
// each transfer for handleTransfers.
type eventHub struct {
	mu          sync.Mutex
	subscribers map[*websocket.Conn]struct{}
	transfers   map[uint8]apiTransfer
}

func newEventHub() *eventHub {
	return &eventHub{
		subscribers: make(map[*websocket.Conn]struct{}),
		transfers:   make(map[uint8]apiTransfer),
	}
}

func (h *eventHub) transfersSnapshot() []apiTransfer {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]apiTransfer, 0, len(h.transfers))
	for _, t := range h.transfers {
		out = append(out, t)
	}
	return out
}

func (h *eventHub) recordTransfer(t apiTransfer) {
	h.mu.Lock()
	h.transfers[t.FileID] = t
	h.mu.Unlock()
	h.broadcast(map[string]interface{}{"type": "transfer", "data": t})
}

func (h *eventHub) recordPeer(p apiPeer) {
	h.broadcast(map[string]interface{}{"type": "peer", "data": p})
}

func (h *eventHub) broadcast(event interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.subscribers {
		if err := c.WriteJSON(event); err != nil {
			delete(h.subscribers, c)
			c.Close()
		}
	}
}

func (h *eventHub) subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	h.subscribers[conn] = struct{}{}
	h.mu.Unlock()

	// Drain and discard inbound messages until the client disconnects;
	// this surface is publish-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.subscribers, conn)
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
}

func wrapFileSending(next func(transfer.ProgressUpdate, peer.Peer), events *eventHub) func(transfer.ProgressUpdate, peer.Peer) {
	return func(update transfer.ProgressUpdate, to peer.Peer) {
		events.recordTransfer(apiTransfer{
			FileID:   update.FileID,
			Progress: update.Progress,
			Total:    update.Total,
			Status:   update.Status.String(),
			Peer:     to.Host,
		})
		next(update, to)
	}
}

func wrapPeerDiscovered(next func(peer.Peer), events *eventHub) func(peer.Peer) {
	return func(p peer.Peer) {
		events.recordPeer(apiPeer{Host: p.Host, Port: p.Port, HostName: p.HostName})
		next(p)
	}
}
