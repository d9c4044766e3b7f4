package errs

import (
	"github.com/pkg/errors"
)

// Callers classify with errors.Is; context is attached with errors.Wrap.
var (
	// ErrValidation: malformed or missing input; fix the input and retry.
	ErrValidation = errors.New("invalid input")
	// ErrConflict: the book was taken by a concurrent request.
	ErrConflict = errors.New("book is no longer available")
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the operation does not apply to the record's current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrExternalSource never leaves the metadata enricher.
	ErrExternalSource = errors.New("external source unavailable")
	// ErrStorage: the record store failed; try again later.
	ErrStorage = errors.New("storage unavailable")
)

func Validation(msg string) error {
	return errors.Wrap(ErrValidation, msg)
}

// Storage marks err as a record store failure while keeping it in the chain.
func Storage(err error, op string) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return e.op + ": " + ErrStorage.Error() + ": " + e.err.Error()
}

func (e *storageError) Unwrap() error { return e.err }

func (e *storageError) Is(target error) bool { return target == ErrStorage }
