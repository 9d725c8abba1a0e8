package data

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
	"github.com/airx-go/airx/transport"
)

func startTestService(t *testing.T, callbacks Callbacks) (addr string, table *peer.Table, stop func()) {
	t.Helper()
	table = peer.NewTable()
	svc := New(Config{ListenAddress: "127.0.0.1", ListenPort: 0}, table, callbacks)

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	svc.cfg.ListenPort = uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close()

	done := make(chan struct{})
	interrupt := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(func() bool {
			select {
			case <-interrupt:
				return true
			default:
				return false
			}
		})
	}()

	// Give the accept loop a moment to bind.
	time.Sleep(50 * time.Millisecond)

	return net.JoinHostPort("127.0.0.1", strconv.Itoa(int(svc.cfg.ListenPort))), table, func() {
		close(interrupt)
		<-done
	}
}

func TestDataServiceTextDispatch(t *testing.T) {
	received := make(chan string, 1)
	addr, _, stop := startTestService(t, Callbacks{
		OnText: func(text string, from peer.Peer) { received <- text },
	})
	defer stop()

	conn, err := net.DialTimeout("tcp4", addr, time.Second)
	if err != nil {
		t.Fatalf("DialTimeout: %v", err)
	}
	defer conn.Close()

	pkt, err := protocol.NewTextPacket("hello from a test")
	if err != nil {
		t.Fatalf("NewTextPacket: %v", err)
	}
	dp := protocol.NewDataPacket(protocol.MagicText, pkt.Serialize())
	if err := transport.Send(conn, dp.Serialize()); err != nil {
		t.Fatalf("transport.Send: %v", err)
	}

	select {
	case text := <-received:
		if text != "hello from a test" {
			t.Fatalf("got %q, want %q", text, "hello from a test")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for OnText callback")
	}
}

func TestDataServiceFilePartStopReceiving(t *testing.T) {
	addr, _, stop := startTestService(t, Callbacks{
		OnFilePart: func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) bool {
			return true // stop after the first chunk
		},
	})
	defer stop()

	conn, err := net.DialTimeout("tcp4", addr, time.Second)
	if err != nil {
		t.Fatalf("DialTimeout: %v", err)
	}
	defer conn.Close()

	part := protocol.FilePartPacket{FileID: 1, Offset: 0, Data: []byte("chunk")}
	dp := protocol.NewDataPacket(protocol.MagicFilePart, part.Serialize())
	if err := transport.Send(conn, dp.Serialize()); err != nil {
		t.Fatalf("transport.Send: %v", err)
	}

	// The worker should respond with a FilePartResponse{StopReceiving}
	// before closing the connection.
	raw, err := transport.Read(conn)
	if err != nil {
		t.Fatalf("transport.Read: %v", err)
	}
	respDP, err := protocol.DeserializeDataPacket(raw)
	if err != nil {
		t.Fatalf("DeserializeDataPacket: %v", err)
	}
	if respDP.Magic != protocol.MagicFilePartResponse {
		t.Fatalf("got magic %v, want MagicFilePartResponse", respDP.Magic)
	}
	resp, err := protocol.DeserializeFilePartResponsePacket(respDP.Payload)
	if err != nil {
		t.Fatalf("DeserializeFilePartResponsePacket: %v", err)
	}
	if resp.Kind != protocol.StopReceiving || resp.FileID != 1 {
		t.Fatalf("got %+v, want StopReceiving for file 1", resp)
	}
}
