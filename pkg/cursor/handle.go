package cursor

// Handle is a driver-level result set owned by a single Cursor.
// Implementations keep the read position; the cursor never duplicates it.
type Handle interface {
	// Fields lists column metadata in column order.
	Fields() []Field

	// Next returns the row at the read position and advances by one.
	// A nil row with a nil error means the result set is exhausted.
	Next() (Row, error)

	// Count returns the total number of rows in the result set.
	Count() int

	// Seek moves the read position to an absolute zero-based row index.
	// Offsets outside [0, Count) return ErrOutOfRange and leave the position unchanged.
	Seek(offset int) error

	// Close releases the result set.
	Close() error
}

// Buffer is a Handle over a result set fully materialized in memory,
// the equivalent of a driver-buffered (stored) result.
type Buffer struct {
	fields []Field
	rows   []Row
	pos    int
	closed bool
}

// NewBuffer builds a buffered result set from column metadata and rows.
// Rows are not required to carry every field.
func NewBuffer(fields []Field, rows ...Row) *Buffer {
	return &Buffer{
		fields: fields,
		rows:   rows,
	}
}

// NewBufferFromValues builds a buffered result set from positional values,
// naming each value after the field at the same index.
func NewBufferFromValues(fields []Field, values ...[]any) *Buffer {
	rows := make([]Row, 0, len(values))
	for _, vals := range values {
		rows = append(rows, makeRow(fields, vals))
	}
	return NewBuffer(fields, rows...)
}

func (b *Buffer) Fields() []Field {
	return append([]Field(nil), b.fields...)
}

func (b *Buffer) Next() (Row, error) {
	if b.closed {
		return nil, ErrCursorClosed
	}
	if b.pos >= len(b.rows) {
		return nil, nil
	}
	row := b.rows[b.pos]
	b.pos++
	if row == nil {
		// nil is the exhaustion marker, an empty row must stay distinguishable
		row = Row{}
	}
	return row, nil
}

func (b *Buffer) Count() int {
	return len(b.rows)
}

// Remaining returns the number of rows left before exhaustion.
func (b *Buffer) Remaining() int {
	if b.pos >= len(b.rows) {
		return 0
	}
	return len(b.rows) - b.pos
}

func (b *Buffer) Seek(offset int) error {
	if b.closed {
		return ErrCursorClosed
	}
	if offset < 0 || offset >= len(b.rows) {
		return ErrOutOfRange
	}
	b.pos = offset
	return nil
}

func (b *Buffer) Close() error {
	b.closed = true
	b.rows = nil
	return nil
}

func makeRow(fields []Field, vals []any) Row {
	row := make(Row, 0, len(vals))
	for i, v := range vals {
		name := ""
		if i < len(fields) {
			name = fields[i].Name
		}
		row = append(row, Column{Name: name, Value: v})
	}
	return row
}
