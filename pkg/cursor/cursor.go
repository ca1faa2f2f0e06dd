package cursor

import (
	"errors"
)

// Cursor reads rows from a single executed query's result set.
//
// Every fetch advances one shared read position, whatever row shape is
// requested. A Cursor is owned by one goroutine; it is not safe for
// concurrent use.
type Cursor struct {
	handle  Handle
	fields  []Field
	count   int
	closed  bool
	strict  bool
	onClose func()
}

// New wraps an open handle. Count and field metadata are captured once.
func New(h Handle, opts ...Option) (*Cursor, error) {
	if h == nil {
		return nil, ErrNilHandle
	}

	c := &Cursor{
		handle: h,
		fields: h.Fields(),
		count:  h.Count(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// With opens a cursor over h, hands it to fn and frees it on every return
// path. The first of fn's error and the release error is returned.
func With(h Handle, fn func(*Cursor) error, opts ...Option) (err error) {
	c, err := New(h, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := c.Free(); err == nil {
			err = ferr
		}
	}()

	return fn(c)
}

// Fields returns column metadata. It does not move the read position.
func (c *Cursor) Fields() []Field {
	return append([]Field(nil), c.fields...)
}

// Count returns the number of rows in the result set. It is stable for the
// cursor's lifetime.
func (c *Cursor) Count() int {
	return c.count
}

// Exists reports whether the result set has at least one row.
func (c *Cursor) Exists() bool {
	return c.count > 0
}

// Closed reports whether Free has been called.
func (c *Cursor) Closed() bool {
	return c.closed
}

// Fetch returns the next row in its raw ordered form, or nil when exhausted.
func (c *Cursor) Fetch() (Row, error) {
	if c.closed {
		return nil, ErrCursorClosed
	}

	row, err := c.handle.Next()
	if err != nil {
		return nil, wrapDriver("fetch", err)
	}
	return row, nil
}

// FetchMap returns the next row keyed by column name, or nil when exhausted.
func (c *Cursor) FetchMap() (map[string]any, error) {
	row, err := c.Fetch()
	if err != nil || row == nil {
		return nil, err
	}
	return row.Map(), nil
}

// FetchList returns the next row as positional values, or nil when exhausted.
func (c *Cursor) FetchList() ([]any, error) {
	row, err := c.Fetch()
	if err != nil || row == nil {
		return nil, err
	}
	return row.Values(), nil
}

// FetchRecord returns the next row as a structured record, or nil when exhausted.
func (c *Cursor) FetchRecord() (*Record, error) {
	row, err := c.Fetch()
	if err != nil || row == nil {
		return nil, err
	}
	return row.Record(), nil
}

// Seek moves the read position to an absolute zero-based row index.
// It returns false without an error when offset is outside [0, Count).
func (c *Cursor) Seek(offset int) (bool, error) {
	if c.closed {
		return false, ErrCursorClosed
	}
	if offset < 0 || offset >= c.count {
		return false, nil
	}

	if err := c.handle.Seek(offset); err != nil {
		if errors.Is(err, ErrOutOfRange) {
			return false, nil
		}
		return false, wrapDriver("seek", err)
	}
	return true, nil
}

// Free releases the underlying handle. Only the first call reaches the
// handle; later calls return nil.
func (c *Cursor) Free() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.onClose != nil {
		defer c.onClose()
	}

	return wrapDriver("free", c.handle.Close())
}

// Close implements io.Closer.
func (c *Cursor) Close() error {
	return c.Free()
}
