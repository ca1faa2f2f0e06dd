package cursor

// Option configures a Cursor.
type Option func(*Cursor)

// WithStrictColumns makes ExtractColumn fail with ErrFieldNotFound on rows
// lacking the requested field instead of skipping them.
func WithStrictColumns() Option {
	return func(c *Cursor) {
		c.strict = true
	}
}

// WithReleaseHook registers a callback run once after the handle is released.
// Hooks run in the order they were registered.
func WithReleaseHook(fn func()) Option {
	return func(c *Cursor) {
		prev := c.onClose
		if prev == nil {
			c.onClose = fn
			return
		}
		c.onClose = func() {
			prev()
			fn()
		}
	}
}
