/*
File Name:  filters.go
Package:    airx

The host callback surface (spec §6), grounded on the teacher's Filter.go:
a struct of optional hooks defaulted to no-ops during init so dispatch
code never needs a nil check, plus a multiWriter subscription fan-out for
log output.
*/
package airx

import (
	"io"
	"sync"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/transfer"

	"github.com/google/uuid"
)

// Filters installs the four host callbacks of spec §6 plus peer-discovery
// and error observation. The functions are called on arbitrary worker
// goroutines and must not block for long or re-enter the Service.
type Filters struct {
	// OnPeerDiscovered fires whenever the discovery service learns of (or
	// refreshes) a peer.
	OnPeerDiscovered func(p peer.Peer)

	// OnText is on_text of spec §6: a TextPacket arrived from a peer.
	OnText func(text string, from peer.Peer)

	// OnFileComing is on_file_coming: a peer offered a file.
	OnFileComing func(fileSize uint64, fileName string, from peer.Peer)

	// OnFileSending is on_file_sending: a status update for an outbound
	// transfer this node initiated.
	OnFileSending func(update transfer.ProgressUpdate, to peer.Peer)

	// OnFilePart is on_file_part: one chunk of an inbound transfer.
	// Returning true means "stop receiving".
	OnFilePart func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) (stopReceiving bool)

	// LogError is called for any recoverable error anywhere in the
	// Service.
	LogError func(function, format string, v ...interface{})
}

func (f *Filters) setDefaults() {
	if f.OnPeerDiscovered == nil {
		f.OnPeerDiscovered = func(p peer.Peer) {}
	}
	if f.OnText == nil {
		f.OnText = func(text string, from peer.Peer) {}
	}
	if f.OnFileComing == nil {
		f.OnFileComing = func(fileSize uint64, fileName string, from peer.Peer) {}
	}
	if f.OnFileSending == nil {
		f.OnFileSending = func(update transfer.ProgressUpdate, to peer.Peer) {}
	}
	if f.OnFilePart == nil {
		f.OnFilePart = func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) bool { return false }
	}
	if f.LogError == nil {
		f.LogError = func(function, format string, v ...interface{}) {}
	}
}

// multiWriter fans writes out to every subscribed io.Writer, keyed by a
// uuid so a subscriber can unsubscribe later. Mirrors the teacher's
// multiWriter in Filter.go, used here to back the Stdout log target.
type multiWriter struct {
	sync.Mutex
	writers map[uuid.UUID]io.Writer
}

func newMultiWriter() *multiWriter {
	return &multiWriter{writers: make(map[uuid.UUID]io.Writer)}
}

// Subscribe adds writer to the fan-out and returns an id to unsubscribe it.
func (m *multiWriter) Subscribe(writer io.Writer) (id uuid.UUID) {
	m.Lock()
	defer m.Unlock()

	id = uuid.New()
	m.writers[id] = writer
	return id
}

// Unsubscribe removes a previously subscribed writer.
func (m *multiWriter) Unsubscribe(id uuid.UUID) {
	m.Lock()
	defer m.Unlock()

	delete(m.writers, id)
}

// Write duplicates p to every subscribed writer. It never returns an
// error; a failing subscriber just misses the line.
func (m *multiWriter) Write(p []byte) (n int, err error) {
	m.Lock()
	defer m.Unlock()

	for _, w := range m.writers {
		w.Write(p)
	}
	return len(p), nil
}
