package transport

import (
	"errors"
	"fmt"
)

// TransportError wraps a failed call to the chat service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a failure of op.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
