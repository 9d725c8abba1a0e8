package transfer

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/protocol"
	"github.com/airx-go/airx/transport"
)

func TestHandleFileReceiveResponseRejected(t *testing.T) {
	updates := make(chan ProgressUpdate, 4)
	m := New(Callbacks{OnFileSending: func(u ProgressUpdate, to peer.Peer) { updates <- u }})

	m.HandleFileReceiveResponse(protocol.FileReceiveResponsePacket{
		FileID: 1, FileSize: 1024, FileName: "test.bin", Accepted: false,
	}, peer.New("127.0.0.1", 9819, ""))

	want := []Status{StatusRequested, StatusRejected}
	for _, w := range want {
		select {
		case u := <-updates:
			if u.Status != w {
				t.Fatalf("got status %v, want %v", u.Status, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for status %v", w)
		}
	}
}

func TestHandleFileReceiveResponseCompletes(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "transfer-src-*.bin")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i)
	}
	if _, err := tmp.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	tmp.Close()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var assembled []byte
		for {
			raw, err := transport.Read(conn)
			if err != nil {
				break
			}
			dp, err := protocol.DeserializeDataPacket(raw)
			if err != nil || dp.Magic != protocol.MagicFilePart {
				break
			}
			part, err := protocol.DeserializeFilePartPacket(dp.Payload)
			if err != nil {
				break
			}
			assembled = append(assembled, part.Data...)
		}
		received <- assembled
	}()

	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	updates := make(chan ProgressUpdate, 16)
	m := New(Callbacks{OnFileSending: func(u ProgressUpdate, to peer.Peer) { updates <- u }})

	m.HandleFileReceiveResponse(protocol.FileReceiveResponsePacket{
		FileID: 3, FileSize: uint64(len(content)), FileName: tmp.Name(), Accepted: true,
	}, peer.New("127.0.0.1", port, ""))

	var last Status
	for {
		select {
		case u := <-updates:
			last = u.Status
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for transfer completion, last status %v", last)
		}
		if last == StatusCompleted || last == StatusError {
			break
		}
	}
	if last != StatusCompleted {
		t.Fatalf("transfer ended with status %v, want Completed", last)
	}

	select {
	case assembled := <-received:
		if len(assembled) != len(content) {
			t.Fatalf("received %d bytes, want %d", len(assembled), len(content))
		}
		for i := range content {
			if assembled[i] != content[i] {
				t.Fatalf("byte mismatch at offset %d", i)
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for receiver to finish")
	}
}
