//go:build cgo

/*
File Name:  ffi.go
Package:    ffi

The stable C ABI of spec §6, a cgo-gated mirror of original_source's
src/lib_generic.rs: allocate a Service behind an opaque handle, expose the
two blocking run loops and the one-shot send/respond operations, and
validate/copy every pointer+length pair at the boundary rather than hold
a Go pointer across it. No Go-side lock is ever held across a call into
C (should_interrupt callbacks and the four data-service callbacks are
invoked without holding the handle table's mutex).

Built with `go build -buildmode=c-archive` (or c-shared) from its own
entry point; this file defines the exported symbols the host links
against.
*/
package ffi

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>

typedef void (*airx_text_callback)(const char*, uint32_t, const char*, uint32_t);
typedef void (*airx_file_coming_callback)(uint64_t, const char*, uint32_t, const char*, uint32_t);
typedef void (*airx_file_sending_callback)(uint8_t, uint64_t, uint64_t, uint8_t);
typedef bool (*airx_file_part_callback)(uint8_t, uint64_t, uint64_t, const uint8_t*);
typedef bool (*airx_should_interrupt)(void);

static inline void airx_call_text_callback(airx_text_callback f, const char* text, uint32_t text_len, const char* addr, uint32_t addr_len) {
	f(text, text_len, addr, addr_len);
}
static inline void airx_call_file_coming_callback(airx_file_coming_callback f, uint64_t size, const char* name, uint32_t name_len, const char* addr, uint32_t addr_len) {
	f(size, name, name_len, addr, addr_len);
}
static inline void airx_call_file_sending_callback(airx_file_sending_callback f, uint8_t file_id, uint64_t progress, uint64_t total, uint8_t status) {
	f(file_id, progress, total, status);
}
static inline bool airx_call_file_part_callback(airx_file_part_callback f, uint8_t file_id, uint64_t offset, uint64_t length, const uint8_t* data) {
	return f(file_id, offset, length, data);
}
static inline bool airx_call_should_interrupt(airx_should_interrupt f) {
	return f();
}
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/airx-go/airx"
	"github.com/airx-go/airx/peer"
	"github.com/airx-go/airx/transfer"
)

var (
	handlesMu  sync.Mutex
	handles    = make(map[uint64]*airx.Service)
	nextHandle uint64
)

func register(s *airx.Service) uint64 {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	nextHandle++
	handles[nextHandle] = s
	return nextHandle
}

func lookup(h C.uint64_t) *airx.Service {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	return handles[uint64(h)]
}

func goString(ptr *C.char, length C.uint32_t) string {
	if ptr == nil || length == 0 {
		return ""
	}
	return C.GoStringN(ptr, C.int(length))
}

// copyToBuffer writes data into the C buffer at dst, which the caller
// guarantees is at least len(data)+1 bytes (spec §9's copy-at-the-boundary
// rule: no Go pointer is ever stored in dst). A trailing NUL is appended
// to match the original lib_generic.rs convention.
func copyToBuffer(dst *C.char, data []byte) C.uint32_t {
	if dst == nil {
		return 0
	}
	out := (*[1 << 30]byte)(unsafe.Pointer(dst))[: len(data)+1 : len(data)+1]
	copy(out, data)
	out[len(data)] = 0
	return C.uint32_t(len(data))
}

//export airx_version
func airx_version() C.int32_t {
	return C.int32_t(1)
}

//export airx_compatibility_number
func airx_compatibility_number() C.int32_t {
	return C.int32_t(airx.CompatibilityNumber)
}

//export airx_init
func airx_init() {
	// No dedicated logging backend is initialized here (ambient-stack
	// non-goal); a host that wants log output subscribes to
	// Service.Stdout after airx_create.
}

//export airx_create
func airx_create(discoveryServerPort, discoveryClientPort C.uint16_t, listenAddr *C.char, listenAddrLen C.uint32_t, dataPort C.uint16_t, groupID C.uint32_t) C.uint64_t {
	_ = goString(listenAddr, listenAddrLen) // reserved for a future per-interface bind; the data service always binds 0.0.0.0

	cfg := airx.DefaultConfig()
	cfg.DiscoveryServerPort = uint16(discoveryServerPort)
	cfg.DiscoveryClientPort = uint16(discoveryClientPort)
	cfg.DataPort = uint16(dataPort)
	cfg.GroupID = uint32(groupID)

	service := airx.New(cfg, airx.Filters{})
	return C.uint64_t(register(service))
}

//export airx_lan_discovery_service
func airx_lan_discovery_service(handle C.uint64_t, shouldInterrupt C.airx_should_interrupt) {
	service := lookup(handle)
	if service == nil {
		return
	}
	service.RunDiscovery(func() bool {
		return bool(C.airx_call_should_interrupt(shouldInterrupt))
	})
}

//export airx_data_service
func airx_data_service(
	handle C.uint64_t,
	textCallback C.airx_text_callback,
	fileComingCallback C.airx_file_coming_callback,
	fileSendingCallback C.airx_file_sending_callback,
	filePartCallback C.airx_file_part_callback,
	shouldInterrupt C.airx_should_interrupt,
) {
	service := lookup(handle)
	if service == nil {
		return
	}

	service.Filters.OnText = func(text string, from peer.Peer) {
		cText := C.CString(text)
		defer C.free(unsafe.Pointer(cText))
		cAddr := C.CString(from.Host)
		defer C.free(unsafe.Pointer(cAddr))
		C.airx_call_text_callback(textCallback, cText, C.uint32_t(len(text)), cAddr, C.uint32_t(len(from.Host)))
	}

	service.Filters.OnFileComing = func(fileSize uint64, fileName string, from peer.Peer) {
		cName := C.CString(fileName)
		defer C.free(unsafe.Pointer(cName))
		cAddr := C.CString(from.Host)
		defer C.free(unsafe.Pointer(cAddr))
		C.airx_call_file_coming_callback(fileComingCallback, C.uint64_t(fileSize), cName, C.uint32_t(len(fileName)), cAddr, C.uint32_t(len(from.Host)))
	}

	service.Filters.OnFileSending = func(update transfer.ProgressUpdate, to peer.Peer) {
		C.airx_call_file_sending_callback(fileSendingCallback, C.uint8_t(update.FileID), C.uint64_t(update.Progress), C.uint64_t(update.Total), C.uint8_t(update.Status))
	}

	service.Filters.OnFilePart = func(fileID uint8, offset uint64, chunk []byte, from peer.Peer) bool {
		var dataPtr *C.uint8_t
		if len(chunk) > 0 {
			dataPtr = (*C.uint8_t)(unsafe.Pointer(&chunk[0]))
		}
		return bool(C.airx_call_file_part_callback(filePartCallback, C.uint8_t(fileID), C.uint64_t(offset), C.uint64_t(len(chunk)), dataPtr))
	}

	service.RunDataService(func() bool {
		return bool(C.airx_call_should_interrupt(shouldInterrupt))
	})
}

//export airx_get_peers
func airx_get_peers(handle C.uint64_t, buffer *C.char) C.uint32_t {
	service := lookup(handle)
	if service == nil {
		return 0
	}
	return copyToBuffer(buffer, []byte(service.PeerHosts()))
}

//export airx_send_text
func airx_send_text(handle C.uint64_t, host *C.char, hostLen C.uint32_t, text *C.char, textLen C.uint32_t) {
	service := lookup(handle)
	if service == nil {
		return
	}
	service.SendText(goString(host, hostLen), goString(text, textLen))
}

//export airx_broadcast_text
func airx_broadcast_text(handle C.uint64_t, text *C.char, textLen C.uint32_t) {
	service := lookup(handle)
	if service == nil {
		return
	}
	service.BroadcastText(goString(text, textLen))
}

//export airx_try_send_file
func airx_try_send_file(handle C.uint64_t, host *C.char, hostLen C.uint32_t, filePath *C.char, filePathLen C.uint32_t) {
	service := lookup(handle)
	if service == nil {
		return
	}

	path := goString(filePath, filePathLen)
	info, err := os.Stat(path)
	if err != nil {
		service.Filters.LogError("airx_try_send_file", "stat %s: %v\n", path, err)
		return
	}

	service.TrySendFile(goString(host, hostLen), uint64(info.Size()), path)
}

//export airx_respond_to_file
func airx_respond_to_file(handle C.uint64_t, host *C.char, hostLen C.uint32_t, fileID C.uint8_t, fileSize C.uint64_t, filePath *C.char, filePathLen C.uint32_t, accept C.bool) {
	service := lookup(handle)
	if service == nil {
		return
	}
	service.RespondToFile(goString(host, hostLen), uint8(fileID), uint64(fileSize), goString(filePath, filePathLen), bool(accept))
}
