package blog

import (
	"fmt"

	"github.com/juju/errors"
)

// StorageError reports a failure of the document store. The wrapped detail
// is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s blog post: storage error: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err rejects the caller's input.
func IsValidation(err error) bool {
	return errors.Is(err, errors.NotValid)
}

// IsNotFound reports whether err names a post that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.NotFound)
}

// IsStorage reports whether err is a document store failure.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
