/*
File Name:  service.go
Package:    airx

The Service ties the peer table, discovery service, data service and
transfer manager together behind the two blocking run loops spec §6
exposes to a host (airx_lan_discovery_service / airx_data_service),
grounded on the teacher's Init/Connect shape in Peernet.go: a single
constructor wires every subsystem from Config and Filters, and the host
drives the blocking loops on its own goroutines.
*/
package airx

import (
	"log"
	"strings"
	"time"

	"github.com/airx-go/airx/data"
	"github.com/airx-go/airx/discovery"
	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
	"github.com/airx-go/airx/transfer"
)

// connectTimeout bounds one-shot sends (text, file-coming,
// file-receive-response) issued directly by the Service.
const connectTimeout = time.Second

// Service is one running (or not yet started) AirX instance: the shared
// peer table plus the discovery, data and transfer subsystems wired to
// the host's Filters.
type Service struct {
	Config  Config
	Filters Filters

	Peers *peer.Table

	discovery *discovery.Service
	data      *data.Service
	transfers *transfer.Manager

	Stdout *multiWriter
}

// New allocates a Service from cfg and filters. Filters may be the zero
// value; unset hooks default to no-ops. New never blocks and starts no
// goroutines -- call RunDiscovery / RunDataService to actually listen.
func New(cfg Config, filters Filters) *Service {
	filters.setDefaults()

	s := &Service{
		Config:  cfg,
		Filters: filters,
		Peers:   peer.NewTable(),
		Stdout:  newMultiWriter(),
	}

	log.SetOutput(s.Stdout)

	// Every hook below calls back through s.Filters rather than closing
	// over the field value directly, so a caller (e.g. webapi.Start) can
	// still wrap a Filters hook after New returns and have every
	// subsystem observe the replacement.
	s.transfers = transfer.New(transfer.Callbacks{
		OnFileSending: func(u transfer.ProgressUpdate, to peer.Peer) { s.Filters.OnFileSending(u, to) },
		LogError:      func(function, format string, v ...interface{}) { s.Filters.LogError(function, format, v...) },
	})

	s.discovery = discovery.New(discovery.Config{
		ServerPort: cfg.DiscoveryServerPort,
		ClientPort: cfg.DiscoveryClientPort,
		DataPort:   cfg.DataPort,
		GroupID:    cfg.GroupID,
		HostName:   cfg.HostName,
	}, s.Peers, discovery.Callbacks{
		OnPeerDiscovered: func(p peer.Peer) { s.Filters.OnPeerDiscovered(p) },
		LogError:         func(function, format string, v ...interface{}) { s.Filters.LogError(function, format, v...) },
	})

	s.data = data.New(data.Config{
		ListenAddress: "0.0.0.0",
		ListenPort:    cfg.DataPort,
	}, s.Peers, data.Callbacks{
		OnText:                func(text string, from peer.Peer) { s.Filters.OnText(text, from) },
		OnFileComing:          func(fileSize uint64, fileName string, from peer.Peer) { s.Filters.OnFileComing(fileSize, fileName, from) },
		OnFileReceiveResponse: s.transfers.HandleFileReceiveResponse,
		OnFilePart: func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) bool {
			return s.Filters.OnFilePart(fileID, offset, chunk, from)
		},
		LogError: func(function, format string, v ...interface{}) { s.Filters.LogError(function, format, v...) },
	})

	return s
}

// RunDiscovery runs the UDP discovery loop until shouldInterrupt returns
// true. Blocking; intended to run on its own goroutine or OS thread, the
// Go mirror of airx_lan_discovery_service.
func (s *Service) RunDiscovery(shouldInterrupt func() bool) error {
	return s.discovery.Run(shouldInterrupt)
}

// RunDataService runs the TCP data loop until shouldInterrupt returns
// true. Blocking; the Go mirror of airx_data_service.
func (s *Service) RunDataService(shouldInterrupt func() bool) error {
	return s.data.Run(shouldInterrupt)
}

// BroadcastDiscovery sends one round of discovery datagrams immediately.
// RunDiscovery itself broadcasts only on startup and after a receive
// error; it has no periodic broadcaster.
func (s *Service) BroadcastDiscovery() error {
	return s.discovery.BroadcastOnce()
}

// SendText sends text to host on the configured data port, mirroring
// airx_send_text.
func (s *Service) SendText(host string, text string) error {
	pkt, err := protocol.NewTextPacket(text)
	if err != nil {
		return err
	}
	p := peer.New(host, s.Config.DataPort, "")
	return data.SendOnceWithRetry(p, s.Config.DataPort, protocol.MagicText, pkt.Serialize(), connectTimeout)
}

// BroadcastText sends text to every peer currently in the table,
// mirroring airx_broadcast_text. Errors for individual peers are reported
// through Filters.LogError and do not stop the fan-out.
func (s *Service) BroadcastText(text string) {
	pkt, err := protocol.NewTextPacket(text)
	if err != nil {
		s.Filters.LogError("BroadcastText", "encoding text: %v\n", err)
		return
	}

	for _, p := range s.Peers.Snapshot() {
		if err := data.SendOnceWithRetry(p, s.Config.DataPort, protocol.MagicText, pkt.Serialize(), connectTimeout); err != nil {
			s.Filters.LogError("BroadcastText", "sending to %s: %v\n", p.Host, err)
		}
	}
}

// TrySendFile announces a file of fileSize bytes named fileName to host via
// a FileComingPacket, mirroring airx_try_send_file (which stats the path
// to obtain fileSize before calling this). The receiving peer's accept/reject
// decision arrives later as a FileReceiveResponsePacket, which drives the
// transfer manager (spec §4.6). The wire FileComingPacket carries no
// file_id (spec §4.3); the receiver assigns one when it calls
// RespondToFile.
func (s *Service) TrySendFile(host string, fileSize uint64, fileName string) error {
	pkt := protocol.FileComingPacket{FileSize: fileSize, FileName: fileName}
	p := peer.New(host, s.Config.DataPort, "")
	return data.SendOnceWithRetry(p, s.Config.DataPort, protocol.MagicFileComing, pkt.Serialize(), connectTimeout)
}

// RespondToFile answers a previously received FileComingPacket, mirroring
// airx_respond_to_file. fileID is chosen by the receiver and becomes the
// transfer's wire identity for every subsequent FilePart/FilePartResponse.
// If accept is true the sender will begin streaming FilePart packets for
// fileID to this node's data port.
func (s *Service) RespondToFile(host string, fileID uint8, fileSize uint64, fileName string, accept bool) error {
	pkt := protocol.FileReceiveResponsePacket{FileID: fileID, FileSize: fileSize, FileName: fileName, Accepted: accept}
	p := peer.New(host, s.Config.DataPort, "")
	return data.SendOnceWithRetry(p, s.Config.DataPort, protocol.MagicFileReceiveResponse, pkt.Serialize(), connectTimeout)
}

// PeerHosts returns every known peer's host address joined by ",",
// mirroring the NUL-terminated CSV buffer airx_get_peers writes for its
// caller.
func (s *Service) PeerHosts() string {
	peers := s.Peers.Snapshot()
	hosts := make([]string, len(peers))
	for i, p := range peers {
		hosts[i] = p.Host
	}
	return strings.Join(hosts, ",")
}
