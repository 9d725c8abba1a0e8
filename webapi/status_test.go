package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/airx-go/airx"
	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/transfer"
)

func TestHandlePeers(t *testing.T) {
	service := airx.New(airx.DefaultConfig(), airx.Filters{})
	service.Peers.Insert(peer.New("192.168.1.5", 9819, "alice"))

	api := &Instance{Service: service, events: newEventHub()}

	req := httptest.NewRequest(http.MethodGet, "/status/peers", nil)
	rec := httptest.NewRecorder()
	api.handlePeers(rec, req)

	var got []apiPeer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Host != "192.168.1.5" || got[0].HostName != "alice" {
		t.Fatalf("unexpected peers response: %+v", got)
	}
}

func TestEventHubTransfersSnapshot(t *testing.T) {
	events := newEventHub()
	events.recordTransfer(apiTransfer{FileID: 1, Progress: 10, Total: 100, Status: "InProgress", Peer: "10.0.0.2"})
	events.recordTransfer(apiTransfer{FileID: 1, Progress: 100, Total: 100, Status: "Completed", Peer: "10.0.0.2"})

	snapshot := events.transfersSnapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected one tracked transfer, got %d", len(snapshot))
	}
	if snapshot[0].Status != "Completed" {
		t.Fatalf("expected latest status to overwrite prior, got %q", snapshot[0].Status)
	}
}

func TestWrapFileSendingCallsThrough(t *testing.T) {
	events := newEventHub()
	called := false
	wrapped := wrapFileSending(func(u transfer.ProgressUpdate, to peer.Peer) { called = true }, events)

	wrapped(transfer.ProgressUpdate{FileID: 2, Status: transfer.StatusCompleted}, peer.New("10.0.0.3", 9819, ""))

	if !called {
		t.Fatal("expected wrapped callback to invoke the original")
	}
	if len(events.transfersSnapshot()) != 1 {
		t.Fatal("expected the event hub to record the transfer")
	}
}
