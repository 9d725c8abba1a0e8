/*
File Name:  errors.go
Package:    protocol

Protocol-level error taxonomy. Every codec in this package returns one of
these sentinels on malformed input, matching spec §7's "corrupted /
invalid tag / unknown magic" kinds.
*/
package protocol

import "errors"

var (
	// ErrCorrupted indicates the buffer is shorter than the declared or
	// minimum packet size, or a length field disagrees with the actual data.
	ErrCorrupted = errors.New("protocol: corrupted packet")

	// ErrInvalidTag indicates the redundancy tag does not match the
	// recomputed value. These tags are checksums, not MACs (spec §9).
	ErrInvalidTag = errors.New("protocol: invalid integrity tag")

	// ErrUnknownMagic indicates a magic number outside the closed enum.
	ErrUnknownMagic = errors.New("protocol: unknown magic number")

	// ErrStringTooLong indicates a text payload exceeds TextMaxLength.
	ErrStringTooLong = errors.New("protocol: string too long")
)
