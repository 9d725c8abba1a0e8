/*
File Name:  service.go
Package:    data

The data service: a TCP accept loop plus one worker per connection,
grounded on DataService::run/handle_peer of service/data_service.rs. Go's
net.TCPListener.SetDeadline gives us the same WouldBlock/TimedOut polling
loop the original builds from a non-blocking socket, so the accept loop
below is a direct idiom-for-idiom translation rather than a redesign.
*/
package data

import (
	"net"
	"strconv"
	"time"

	"github.com/airx-go/airx/peer"
)

// acceptPollInterval is how long a single Accept() deadline waits before
// returning a timeout, matching TCP_ACCEPT_WAIT_MILLIS.
const acceptPollInterval = 10 * time.Millisecond

// acceptTimeoutCount is the number of consecutive accept timeouts between
// should-interrupt polls, matching TCP_ACCEPT_TIMEOUT_COUNT (together with
// acceptPollInterval this yields the spec's ~1s cancellation granularity).
const acceptTimeoutCount = 100

// Config holds the immutable parameters of one data service instance.
type Config struct {
	ListenAddress string
	ListenPort    uint16
}

// Service runs the TCP accept loop and dispatches framed DataPackets to
// the configured Callbacks.
type Service struct {
	cfg       Config
	callbacks Callbacks
	table     *peer.Table
}

// New creates a data Service. table is shared with the discovery service.
func New(cfg Config, table *peer.Table, callbacks Callbacks) *Service {
	callbacks.setDefaults()
	return &Service{cfg: cfg, callbacks: callbacks, table: table}
}

// Run binds the configured listen address/port and accepts connections
// until shouldInterrupt returns true, spawning one worker goroutine per
// accepted connection. A worker panic or error never reaches the accept
// loop (spec §5 failure-domain isolation).
func (s *Service) Run(shouldInterrupt func() bool) error {
	ln, err := net.Listen("tcp4", net.JoinHostPort(s.cfg.ListenAddress, strconv.Itoa(int(s.cfg.ListenPort))))
	if err != nil {
		return err
	}
	defer ln.Close()

	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return net.InvalidAddrError("data: unexpected listener type")
	}

	timeoutCounter := 0
	for {
		tcpLn.SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := tcpLn.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				timeoutCounter++
				if timeoutCounter > acceptTimeoutCount {
					timeoutCounter = 0
					if shouldInterrupt() {
						return nil
					}
				}
				continue
			}
			return err
		}

		timeoutCounter = 0
		go s.handleConnection(conn)
	}
}

// handleConnection owns one accepted stream for its lifetime, recovering
// from a worker panic so it never propagates to the accept loop.
func (s *Service) handleConnection(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.callbacks.LogError("handleConnection", "worker panic recovered: %v\n", r)
		}
	}()
	defer conn.Close()

	w := worker{service: s, conn: conn}
	w.run()
}
