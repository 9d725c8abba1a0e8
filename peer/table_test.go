package peer

import "testing"

func TestTableInsertIdempotentByHost(t *testing.T) {
	tbl := NewTable()
	tbl.Insert(New("192.168.1.10", 9819, "alice"))
	tbl.Insert(New("192.168.1.10", 9819, "alice-renamed"))
	tbl.Insert(New("192.168.1.11", 9819, "bob"))

	if got := tbl.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	p, ok := tbl.LookupByAddress("192.168.1.10")
	if !ok {
		t.Fatalf("expected peer to be found")
	}
	if p.HostName != "alice-renamed" {
		t.Fatalf("HostName = %q, want update to take effect", p.HostName)
	}
}

func TestTableSnapshotDistinctHosts(t *testing.T) {
	tbl := NewTable()
	hosts := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	for _, h := range hosts {
		tbl.Insert(New(h, 9819, ""))
	}

	snap := tbl.Snapshot()
	if len(snap) != len(hosts) {
		t.Fatalf("Snapshot() len = %d, want %d", len(snap), len(hosts))
	}

	seen := make(map[string]bool)
	for _, p := range snap {
		seen[p.Host] = true
	}
	for _, h := range hosts {
		if !seen[h] {
			t.Fatalf("missing host %s in snapshot", h)
		}
	}
}

func TestNewDefaultsHostName(t *testing.T) {
	p := New("127.0.0.1", 9819, "")
	if p.HostName != DefaultHostName {
		t.Fatalf("HostName = %q, want %q", p.HostName, DefaultHostName)
	}
}
