/*
File Name:  table.go
Package:    peer

The shared peer table read and written by both the discovery and data
subsystems (spec §3/§4.7). Grounded on the PeerSetType pattern of
service/discovery_service.rs (a mutex-protected set) generalized to also
track the advertised host name and port on insert, and on the teacher's
lock discipline in Network.go: acquire, do the minimal read/write, release
immediately -- never hold the lock across I/O (spec §5).
*/
package peer

import "sync"

// Table is a concurrent set of known peers, keyed by Host.
type Table struct {
	mu    sync.Mutex
	peers map[string]Peer
}

// NewTable returns an empty peer table.
func NewTable() *Table {
	return &Table{peers: make(map[string]Peer)}
}

// Insert adds p, or updates the existing entry for the same Host in place
// (refreshing HostName and Port). The set size never grows for a repeated
// Host (spec §3/§8).
func (t *Table) Insert(p Peer) {
	t.mu.Lock()
	t.peers[p.Host] = p
	t.mu.Unlock()
}

// LookupByAddress returns the peer registered under host, if any.
func (t *Table) LookupByAddress(host string) (Peer, bool) {
	t.mu.Lock()
	p, ok := t.peers[host]
	t.mu.Unlock()
	return p, ok
}

// Snapshot returns a copy of all known peers, safe to range over without
// holding the table's lock.
func (t *Table) Snapshot() []Peer {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Peer, 0, len(t.peers))
	for _, p := range t.peers {
		out = append(out, p)
	}
	return out
}

// Len returns the number of distinct peers currently known.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.peers)
}
