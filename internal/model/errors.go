// Package model holds the persisted record types and the error taxonomy
// shared by the store and its callers.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrStorageWrite matches every *StorageWriteError.
	ErrStorageWrite = errors.New("storage write failed")
)

// ValidationError rejects caller input. The collection is left unchanged.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageWriteError reports a failed durable write. In-memory state already
// reflects the operation, so repeating the call is safe.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrStorageWrite }

func errUnknownFilter(s string) error {
	return fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}
