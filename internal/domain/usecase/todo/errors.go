package todo

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence error")
)

// PersistenceOp names the step of the slot round trip that failed
type PersistenceOp string

const (
	OpRead   PersistenceOp = "read"
	OpWrite  PersistenceOp = "write"
	OpEncode PersistenceOp = "encode"
	OpDecode PersistenceOp = "decode"
)

type PersistenceError struct {
	Op  PersistenceOp
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func validationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
