package cursor

import (
	"database/sql"
	"strings"
)

// binaryTypes keep []byte values as-is; other byte payloads (text protocol
// drivers such as MySQL) are converted to strings.
var binaryTypes = map[string]struct{}{
	"BLOB":       {},
	"TINYBLOB":   {},
	"MEDIUMBLOB": {},
	"LONGBLOB":   {},
	"BINARY":     {},
	"VARBINARY":  {},
	"BYTEA":      {},
	"BIT":        {},
	"GEOMETRY":   {},
}

// BufferSQL drains database/sql rows into a Buffer and closes them.
// It lets any database/sql driver (MySQL included) back a Cursor.
func BufferSQL(rows *sql.Rows) (*Buffer, error) {
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, &DriverError{Op: "fields", Err: err}
	}

	fields := make([]Field, len(types))
	binary := make([]bool, len(types))
	for i, ct := range types {
		typeName := strings.ToUpper(ct.DatabaseTypeName())
		fields[i] = Field{Name: ct.Name(), Type: typeName, Ordinal: i}
		_, binary[i] = binaryTypes[typeName]
	}

	var data []Row
	for rows.Next() {
		vals := make([]any, len(fields))
		ptrs := make([]any, len(fields))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &DriverError{Op: "fetch", Err: err}
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				if binary[i] {
					vals[i] = append([]byte(nil), b...)
				} else {
					vals[i] = string(b)
				}
			}
		}
		data = append(data, makeRow(fields, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "fetch", Err: err}
	}

	return NewBuffer(fields, data...), nil
}
