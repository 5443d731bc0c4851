package gocrdt

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the error conditions a CRDT operation can raise.
type ErrorKind int

const (
	// InvalidArgument is raised when a caller passes an argument that
	// violates a precondition, e.g. a negative GrowCounter delta.
	InvalidArgument ErrorKind = iota
	// IndexOutOfRange is raised when a position-based operation targets
	// an index outside the current visible sequence.
	IndexOutOfRange
	// MissingTarget is raised when an Operation references an OpId that
	// is not present in the ObjectTree at apply time.
	MissingTarget
	// ReplicaIdCollision is raised when two distinct Operations compare
	// as having the same OpId, signaling two replicas chose the same
	// ReplicaId.
	ReplicaIdCollision
	// IncompatibleMerge is raised when Merge is called with a value that
	// is not the same CRDT kind as the receiver.
	IncompatibleMerge
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case MissingTarget:
		return "MissingTarget"
	case ReplicaIdCollision:
		return "ReplicaIdCollision"
	case IncompatibleMerge:
		return "IncompatibleMerge"
	default:
		return "Unknown"
	}
}

// Error is the typed error raised by every operation in this package.
// Callers can recover the Kind with errors.As to decide whether a
// failure is a caller bug (InvalidArgument, IndexOutOfRange) or an
// invariant violation the host should treat as fatal (MissingTarget,
// ReplicaIdCollision).
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
