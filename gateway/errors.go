package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the request carried no usable credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound means the bucket or object does not resolve for this caller,
	// including a joined read whose bucket lookup missed.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the metadata store refused the mutation, or matched
	// zero rows. The two cases are deliberately indistinguishable to callers.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a create hit an already-existing (bucket, name) pair.
	ErrConflict = errors.New("object already exists")

	// ErrInconsistent means the two stores disagree: metadata says the object
	// exists but the blob store has no bytes for its key. This is a dual-write
	// seam failure, not a normal absence, and must never degrade into a 404.
	ErrInconsistent = errors.New("metadata and blob store disagree")
)

// MetadataStoreError wraps a transport or backend failure from the metadata
// store. Never retried; always propagated to the request boundary.
type MetadataStoreError struct {
	Op  string
	Err error
}

func (e *MetadataStoreError) Error() string {
	return fmt.Sprintf("metadata store: %s: %v", e.Op, e.Err)
}

func (e *MetadataStoreError) Unwrap() error { return e.Err }

// BlobStoreError wraps a transport or backend failure from the blob store.
// Status is the backend HTTP status when known, zero otherwise.
type BlobStoreError struct {
	Op     string
	Status int
	Err    error
}

func (e *BlobStoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("blob store: %s (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("blob store: %s: %v", e.Op, e.Err)
}

func (e *BlobStoreError) Unwrap() error { return e.Err }
