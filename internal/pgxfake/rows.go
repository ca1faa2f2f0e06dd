// Package pgxfake provides in-memory pgx.Rows for tests.
package pgxfake

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Rows replays a fixed set of values through the pgx.Rows interface.
type Rows struct {
	Fields []pgconn.FieldDescription
	Data   [][]any
	Tag    string

	// FailAt makes Next report ErrAt when reaching this row index (1-based, 0 disables).
	FailAt int
	ErrAt  error

	pos    int
	err    error
	Closed bool
}

var _ pgx.Rows = (*Rows)(nil)

// Field builds a field description with the given name and type OID.
func Field(name string, oid uint32) pgconn.FieldDescription {
	return pgconn.FieldDescription{Name: name, DataTypeOID: oid}
}

func (r *Rows) Close() {
	r.Closed = true
}

func (r *Rows) Err() error {
	return r.err
}

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(r.Tag)
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription {
	return r.Fields
}

func (r *Rows) Next() bool {
	if r.Closed || r.err != nil {
		return false
	}
	if r.FailAt > 0 && r.pos+1 == r.FailAt {
		r.err = r.ErrAt
		r.Closed = true
		return false
	}
	if r.pos >= len(r.Data) {
		r.Closed = true
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	return errors.New("pgxfake: scan not supported, use Values")
}

func (r *Rows) Values() ([]any, error) {
	if r.pos == 0 || r.pos > len(r.Data) {
		return nil, errors.New("pgxfake: no current row")
	}
	return r.Data[r.pos-1], nil
}

func (r *Rows) RawValues() [][]byte {
	return nil
}

func (r *Rows) Conn() *pgx.Conn {
	return nil
}
