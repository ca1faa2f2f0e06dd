package database

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/webkit/pkg/cursor"
	"github.com/dmitrymomot/webkit/pkg/logger"
)

// Querier executes statements. *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Database runs queries and hands their result sets out as cursors.
type Database struct {
	db      Querier
	log     Logger
	release func()
	opts    []cursor.Option
	open    atomic.Int64
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for query tracing.
func WithLogger(l Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.log = l
		}
	}
}

// WithCursorOptions applies the given options to every cursor returned by Query.
func WithCursorOptions(opts ...cursor.Option) Option {
	return func(d *Database) {
		d.opts = append(d.opts, opts...)
	}
}

// New wraps an existing querier. Close does not release it.
func New(q Querier, opts ...Option) *Database {
	d := &Database{
		db:  q,
		log: noopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects using cfg and returns a Database owning the pool.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Database, error) {
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := New(pool, opts...)
	d.release = pool.Close
	return d, nil
}

// Querier exposes the underlying querier.
func (d *Database) Querier() Querier {
	return d.db
}

// Query executes sql and returns a cursor over its buffered result set.
// Statements that produce no result set return ErrNoResultSet; use Exec for them.
func (d *Database) Query(ctx context.Context, sql string, args ...any) (*cursor.Cursor, error) {
	start := time.Now()

	rows, err := d.db.Query(ctx, sql, args...)
	if err != nil {
		d.log.ErrorContext(ctx, "query failed", logger.Query(sql), logger.Error(err))
		return nil, errors.Join(ErrQueryFailed, err)
	}

	if len(rows.FieldDescriptions()) == 0 {
		rows.Close()
		if err := rows.Err(); err != nil {
			d.log.ErrorContext(ctx, "query failed", logger.Query(sql), logger.Error(err))
			return nil, errors.Join(ErrQueryFailed, err)
		}
		return nil, ErrNoResultSet
	}

	buf, err := cursor.BufferPgx(rows)
	if err != nil {
		d.log.ErrorContext(ctx, "query failed", logger.Query(sql), logger.Error(err))
		return nil, errors.Join(ErrQueryFailed, err)
	}

	d.log.DebugContext(ctx, "query executed",
		logger.Query(sql),
		logger.RowCount(buf.Count()),
		logger.Duration(time.Since(start)),
	)

	c, err := cursor.New(buf, append(slices.Clip(d.opts), cursor.WithReleaseHook(func() {
		d.log.DebugContext(ctx, "cursor released",
			logger.Query(sql),
			slog.Int64("open_cursors", d.open.Add(-1)),
		)
	}))...)
	if err != nil {
		return nil, err
	}
	d.open.Add(1)
	return c, nil
}

// OpenCursors reports how many cursors returned by Query are not yet freed.
func (d *Database) OpenCursors() int64 {
	return d.open.Load()
}

// WithCursor runs sql and passes the cursor to fn, freeing it afterwards on
// every return path.
func (d *Database) WithCursor(ctx context.Context, fn func(*cursor.Cursor) error, sql string, args ...any) (err error) {
	c, err := d.Query(ctx, sql, args...)
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

// Exec runs a statement without a result set and returns the affected row count.
func (d *Database) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	start := time.Now()

	tag, err := d.db.Exec(ctx, sql, args...)
	if err != nil {
		d.log.ErrorContext(ctx, "exec failed", logger.Query(sql), logger.Error(err))
		return 0, errors.Join(ErrQueryFailed, err)
	}

	d.log.DebugContext(ctx, "exec completed",
		logger.Query(sql),
		logger.RowCount(int(tag.RowsAffected())),
		logger.Duration(time.Since(start)),
	)

	return tag.RowsAffected(), nil
}

// Close releases the pool when the Database was created by Open.
func (d *Database) Close() {
	if d.release != nil {
		d.release()
		d.release = nil
	}
}
