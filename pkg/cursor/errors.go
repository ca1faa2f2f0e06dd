package cursor

import (
	"errors"
	"fmt"
)

var (
	// ErrCursorClosed is returned by any operation attempted after Free.
	ErrCursorClosed = errors.New("cursor.closed")

	// ErrOutOfRange is returned by a Handle when asked to seek outside [0, Count).
	// Cursor.Seek reports it as false instead of an error.
	ErrOutOfRange = errors.New("cursor.out_of_range")

	// ErrFieldNotFound is returned by ExtractColumn in strict mode when a row
	// lacks the requested field.
	ErrFieldNotFound = errors.New("cursor.field_not_found")

	// ErrNilHandle is returned by New when no handle is provided.
	ErrNilHandle = errors.New("cursor.nil_handle")
)

// DriverError carries a failure reported by the underlying result-set handle.
// The driver's diagnostic is kept verbatim and available through Unwrap.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("cursor: %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// wrapDriver leaves cursor sentinels untouched so errors.Is keeps working
// against them, everything else becomes a DriverError.
func wrapDriver(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCursorClosed) || errors.Is(err, ErrOutOfRange) {
		return err
	}
	var de *DriverError
	if errors.As(err, &de) {
		return err
	}
	return &DriverError{Op: op, Err: err}
}
