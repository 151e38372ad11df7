package storage

import "fmt"

// ObjectWriteError wraps a rejected upload or delete against the object store.
type ObjectWriteError struct {
	Path string
	Err  error
}

func (e *ObjectWriteError) Error() string {
	return fmt.Sprintf("storage: write %s: %v", e.Path, e.Err)
}

func (e *ObjectWriteError) Unwrap() error { return e.Err }

// ObjectNotFoundError reports an absent object. Unlike the document store,
// object deletion on a missing path surfaces this instead of succeeding.
type ObjectNotFoundError struct {
	Path string
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("storage: object %s not found", e.Path)
}
