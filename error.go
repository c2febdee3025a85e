package localchan

import (
	"errors"
	"io"
)

var (
	// ErrNameTooLong is returned from NewAddr when the name does not fit in
	// the platform address field together with the abstract marker and the
	// trailing NUL.
	ErrNameTooLong = errors.New("name too long")

	// ErrUsage is returned from ParseRole when the arguments do not select
	// exactly one role.
	ErrUsage = errors.New("usage: localchan <c|s>   # c: client, s: server")

	// ErrClosed is returned from operations on an Endpoint or Conn that has
	// been closed.
	ErrClosed = errors.New("use of closed endpoint")

	// ErrNotConnected is returned when reading or writing a handle that was
	// never connected or accepted.
	ErrNotConnected = errors.New("endpoint is not connected")
)

// OpError is the error type returned by channel operations. It records the
// role and the failed call next to the platform error.
type OpError struct {
	Role Role
	Op   string
	Err  error
}

func (e *OpError) Error() string {
	return e.Role.String() + " " + e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(role Role, op string, err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	return &OpError{Role: role, Op: op, Err: err}
}
