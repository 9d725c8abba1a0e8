/*
File Name:  status.go
Package:    transfer

The file-sending status enum, grounded on FileSendingStatus of
packet/data/local/file_sending_packet.rs. Its numeric encoding matches the
original 1-8 assignment, used as the status field crossing the FFI
boundary (spec §6's on_file_sending callback).
*/
package transfer

// Status is the state of one outbound file transfer, one value per node
// of the state machine in spec §4.6.
type Status uint8

const (
	StatusRequested Status = iota + 1
	StatusRejected
	StatusAccepted
	StatusInProgress

	// StatusCancelledBySender has no wire signal a sender can emit for its
	// own cancellation (protocol.ResponseKind only carries the receiver's
	// control signals back to the sender), so runTransfer never produces
	// it. Kept, unused, to hold its place in the original 1-8 numbering
	// that crosses the FFI boundary in spec §6's on_file_sending callback.
	StatusCancelledBySender
	StatusCancelledByReceiver
	StatusCompleted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusRequested:
		return "Requested"
	case StatusRejected:
		return "Rejected"
	case StatusAccepted:
		return "Accepted"
	case StatusInProgress:
		return "InProgress"
	case StatusCancelledBySender:
		return "CancelledBySender"
	case StatusCancelledByReceiver:
		return "CancelledByReceiver"
	case StatusCompleted:
		return "Completed"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ProgressUpdate is delivered to the host's file-sending callback at every
// state transition and, while InProgress, at a throttled interval.
type ProgressUpdate struct {
	FileID   uint8
	Progress uint64
	Total    uint64
	Status   Status
}
