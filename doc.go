/*
Package airx implements a LAN-local peer-to-peer messaging and
file-transfer daemon: UDP broadcast discovery, a framed TCP data
protocol for text and resumable file transfers with receiver consent,
and a host callback surface mirroring the stable airx_* FFI entry
points (see the ffi package for the cgo-gated C ABI).

A host creates a Config, builds a Service with New, and runs the two
blocking loops -- RunDiscovery and RunDataService -- each on its own
goroutine, driven to completion by a shouldInterrupt predicate. Incoming
events (text, file offers, file chunks, transfer progress) are surfaced
through the Filters struct supplied to New.
*/
package airx
