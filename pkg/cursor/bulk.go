package cursor

import "fmt"

// Bulk operations consume the cursor from its current position to
// exhaustion. They never rewind; call Seek(0) first to cover every row.
// The first fetch error stops the loop and is returned.

// each walks the remaining rows in their raw form.
func (c *Cursor) each(fn func(Row) error) error {
	for {
		row, err := c.Fetch()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// CollectMaps returns every remaining row keyed by column name.
func (c *Cursor) CollectMaps() ([]map[string]any, error) {
	rows := []map[string]any{}
	err := c.each(func(r Row) error {
		rows = append(rows, r.Map())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CollectRecords returns every remaining row as a structured record.
func (c *Cursor) CollectRecords() ([]*Record, error) {
	rows := []*Record{}
	err := c.each(func(r Row) error {
		rows = append(rows, r.Record())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CollectRows returns every remaining row as positional values.
func (c *Cursor) CollectRows() ([][]any, error) {
	rows := [][]any{}
	err := c.each(func(r Row) error {
		rows = append(rows, r.Values())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ForEach calls fn once per remaining row in cursor order.
// An error returned by fn stops iteration and is returned unchanged.
func (c *Cursor) ForEach(fn func(row map[string]any) error) error {
	return c.each(func(r Row) error {
		return fn(r.Map())
	})
}

// Paginate seeks to offset and returns up to limit rows from there.
// An offset outside [0, Count) yields an empty page and leaves the position
// unchanged. A non-positive limit also yields an empty page, but the seek
// still happens, so the cursor is left at offset.
func (c *Cursor) Paginate(limit, offset int) ([]map[string]any, error) {
	ok, err := c.Seek(offset)
	if err != nil {
		return nil, err
	}

	page := []map[string]any{}
	if !ok {
		return page, nil
	}

	for len(page) < limit {
		row, err := c.Fetch()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		page = append(page, row.Map())
	}
	return page, nil
}

// ExtractColumn collects the value of the named field from each remaining
// row. Rows lacking the field are skipped unless the cursor was created
// with WithStrictColumns.
func (c *Cursor) ExtractColumn(name string) ([]any, error) {
	values := []any{}
	index := c.Count() - c.remaining()
	err := c.each(func(r Row) error {
		defer func() { index++ }()
		v, ok := r.Get(name)
		if !ok {
			if c.strict {
				return fmt.Errorf("%w: %q in row %d", ErrFieldNotFound, name, index)
			}
			return nil
		}
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// remaining is only used to number rows in error messages; rows are counted
// from zero when the handle cannot report its position.
func (c *Cursor) remaining() int {
	if p, ok := c.handle.(interface{ Remaining() int }); ok {
		return p.Remaining()
	}
	return c.Count()
}

// Map applies fn to each remaining row and collects the results in order.
func Map[T any](c *Cursor, fn func(row map[string]any) T) ([]T, error) {
	out := []T{}
	err := c.each(func(r Row) error {
		out = append(out, fn(r.Map()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce left-folds fn over the remaining rows starting from initial.
// On error the accumulator built so far is returned with it.
func Reduce[A any](c *Cursor, fn func(acc A, row map[string]any) A, initial A) (A, error) {
	acc := initial
	err := c.each(func(r Row) error {
		acc = fn(acc, r.Map())
		return nil
	})
	return acc, err
}
