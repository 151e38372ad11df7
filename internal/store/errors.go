package store

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// WriteError wraps a rejected write (network, permission, validation at the
// store). The underlying transport fault is propagated unmodified.
type WriteError struct {
	Collection string
	Op         string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError wraps a failed read or query. A missing document is not a
// ReadError; Get reports it as a nil result.
type ReadError struct {
	Collection string
	Op         string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err, anywhere in its chain, is the store's
// not-found condition. Useful to distinguish Update on a missing document
// from other write faults.
func IsNotFound(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if status.Code(err) == codes.NotFound {
			return true
		}
	}
	return false
}
