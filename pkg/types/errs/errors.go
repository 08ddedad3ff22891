package errs

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBlobNotFound   = errors.New("blob not found")
	ErrInvalidPath    = errors.New("invalid path")
)

// StorageError is a non-success response from the blob store.
// Status carries the upstream HTTP status code.
type StorageError struct {
	Op     string
	Status int
	Body   string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: status %d: %s", e.Op, e.Status, e.Body)
}
