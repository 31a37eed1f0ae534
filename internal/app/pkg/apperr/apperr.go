// Package apperr holds the three error kinds surfaced to the web layer:
// validation failures, data-layer failures and missing records.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of unknown diet plans, measurements, foods or
// users. It is informational, not a failure.
var ErrNotFound = errors.New("not found")

// ValidationError is a client input problem. The form is shown again with Msg.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DataError wraps a failed insert, delete or commit. The surrounding
// transaction has already been rolled back when it is returned.
type DataError struct {
	Op  string
	Err error
}

func (e *DataError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *DataError) Unwrap() error { return e.Err }

func Data(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DataError
	if errors.As(err, &de) {
		return err
	}
	return &DataError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsData(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
