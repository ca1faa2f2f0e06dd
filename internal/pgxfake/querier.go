package pgxfake

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier answers every Query with a fresh result from NewRows and every
// Exec with Tag. Err, when set, fails both.
type Querier struct {
	NewRows func(sql string) *Rows
	Tag     string
	Err     error

	mu    sync.Mutex
	calls []string
}

func (q *Querier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.record(sql)
	if q.Err != nil {
		return nil, q.Err
	}
	if q.NewRows == nil {
		return &Rows{}, nil
	}
	return q.NewRows(sql), nil
}

func (q *Querier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.record(sql)
	if q.Err != nil {
		return pgconn.CommandTag{}, q.Err
	}
	return pgconn.NewCommandTag(q.Tag), nil
}

// Calls returns the statements received so far.
func (q *Querier) Calls() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.calls...)
}

func (q *Querier) record(sql string) {
	q.mu.Lock()
	q.calls = append(q.calls, sql)
	q.mu.Unlock()
}
