/*
File Name:  api.go
Package:    webapi

The optional local-only HTTP+WebSocket status/control surface (spec §4.11),
grounded on the teacher's webapi/API.go: a gorilla/mux router wired to a
Service, started on every configured listen address, plus a
gorilla/websocket upgrader for the live event stream.
*/
package webapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/airx-go/airx"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Instance is one running webapi surface bound to a Service.
type Instance struct {
	Service *airx.Service
	Router  *mux.Router

	events *eventHub
}

// upgrader allows all origins; this surface is intended to be bound to
// loopback/LAN addresses only, never exposed to the public internet.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Start builds the router and begins listening on every address in
// listenAddresses (each "ip:port"). It returns immediately; each listener
// runs on its own goroutine and logs a fatal error through
// Service.Filters.LogError if it ever stops.
//
// Start must be called before Service.RunDiscovery/RunDataService begin
// processing events: it wraps two Filters hooks in place to also publish
// to the event stream, and that replacement is not synchronized against
// concurrent callback invocation.
func Start(service *airx.Service, listenAddresses []string) *Instance {
	if len(listenAddresses) == 0 {
		return nil
	}

	api := &Instance{
		Service: service,
		Router:  mux.NewRouter(),
		events:  newEventHub(),
	}

	api.Router.HandleFunc("/status/peers", api.handlePeers).Methods("GET")
	api.Router.HandleFunc("/status/transfers", api.handleTransfers).Methods("GET")
	api.Router.HandleFunc("/status/stream", api.handleStream).Methods("GET")

	service.Filters.OnFileSending = wrapFileSending(service.Filters.OnFileSending, api.events)
	service.Filters.OnPeerDiscovered = wrapPeerDiscovered(service.Filters.OnPeerDiscovered, api.events)

	for _, addr := range listenAddresses {
		go api.listen(addr)
	}

	return api
}

func (api *Instance) listen(addr string) {
	server := &http.Server{
		Addr:         addr,
		Handler:      api.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		api.Service.Filters.LogError("webapi.listen", "listening on %s: %v\n", addr, err)
	}
}

func encodeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
