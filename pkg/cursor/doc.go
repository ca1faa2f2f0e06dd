// Package cursor provides a row cursor over the result set of a single
// executed query.
//
// A Cursor wraps a Handle, the driver-level result set, and exposes
// forward-only and random-access retrieval in several row shapes together
// with bulk helpers built on top of single-row fetch.
//
// # Row shapes
//
// Every fetch reads one Row, an ordered list of name/value pairs, and
// presents it as requested:
//
//   • FetchMap() – map keyed by column name (duplicate names: last wins)
//   • FetchList() – positional values in column order
//   • FetchRecord() – structured Record with ordered named fields
//   • Fetch() – the raw Row
//
// All shapes advance the same read position by exactly one row. A nil
// result with a nil error signals exhaustion.
//
// # Bulk operations
//
// CollectMaps, CollectRecords, CollectRows, ForEach, Paginate, ExtractColumn
// and the generic Map and Reduce functions consume rows from the current
// position to exhaustion. They do not rewind first: after reading two rows
// by hand, CollectMaps returns the rest. Paginate is the exception since it
// seeks to its offset before reading.
//
// # Handles
//
// Buffer is the in-memory Handle. BufferPgx and BufferSQL drain pgx or
// database/sql rows into one, so that Count and Seek work the way a
// driver-buffered result does.
//
// # Lifecycle
//
// A cursor is Open until Free is called, then Closed for good. Fetch, Seek
// and the bulk helpers return ErrCursorClosed afterwards; a second Free is
// a no-op. Use With for scoped acquisition:
//
//	err := cursor.With(buf, func(c *cursor.Cursor) error {
//	    rows, err := c.Paginate(20, 40)
//	    if err != nil {
//	        return err
//	    }
//	    return render(rows)
//	})
//
// # Errors
//
// ErrCursorClosed, ErrFieldNotFound and *DriverError (wrapping the driver's
// own error) are returned to the caller without retries. Out-of-range seeks
// are reported through Seek's boolean result rather than an error.
package cursor
