package cursor

import (
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BufferPgx drains pgx rows into a Buffer and closes them.
// Any error reported while reading is returned as a DriverError.
func BufferPgx(rows pgx.Rows) (*Buffer, error) {
	defer rows.Close()

	fields := pgxFields(rows)

	var data []Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, &DriverError{Op: "fetch", Err: err}
		}
		data = append(data, makeRow(fields, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "fetch", Err: err}
	}

	return NewBuffer(fields, data...), nil
}

func pgxFields(rows pgx.Rows) []Field {
	descs := rows.FieldDescriptions()
	if len(descs) == 0 {
		return nil
	}

	types := pgtype.NewMap()
	fields := make([]Field, len(descs))
	for i, fd := range descs {
		typeName := strconv.FormatUint(uint64(fd.DataTypeOID), 10)
		if t, ok := types.TypeForOID(fd.DataTypeOID); ok {
			typeName = t.Name
		}
		fields[i] = Field{Name: fd.Name, Type: typeName, Ordinal: i}
	}
	return fields
}
