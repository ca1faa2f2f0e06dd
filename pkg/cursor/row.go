package cursor

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Field describes a single result-set column.
type Field struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
}

// Column is one name/value pair of a row.
type Column struct {
	Name  string
	Value any
}

// Row is the ordered list of columns returned by a single fetch.
// Map, Values and Record are views over the same data.
type Row []Column

// Map returns the row keyed by column name. Duplicate names resolve to the
// last occurrence.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, c := range r {
		m[c.Name] = c.Value
	}
	return m
}

// Values returns the column values in column order.
func (r Row) Values() []any {
	vals := make([]any, len(r))
	for i, c := range r {
		vals[i] = c.Value
	}
	return vals
}

// Get returns the value of the named column, last occurrence wins.
func (r Row) Get(name string) (any, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether the row carries the named column.
func (r Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Record converts the row into a structured record.
func (r Row) Record() *Record {
	rec := &Record{
		names:  make([]string, 0, len(r)),
		values: make([]any, 0, len(r)),
		index:  make(map[string]int, len(r)),
	}
	for _, c := range r {
		if i, ok := rec.index[c.Name]; ok {
			rec.values[i] = c.Value
			continue
		}
		rec.index[c.Name] = len(rec.names)
		rec.names = append(rec.names, c.Name)
		rec.values = append(rec.values, c.Value)
	}
	return rec
}

// Record is a row exposed as a set of named fields, one per distinct column
// name, in first-seen column order.
type Record struct {
	names  []string
	values []any
	index  map[string]int
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Field returns the value of the named field or nil.
func (r *Record) Field(name string) any {
	v, _ := r.Get(name)
	return v
}

func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

func (r *Record) Values() []any {
	if r == nil {
		return nil
	}
	return append([]any(nil), r.values...)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a YAML mapping preserving field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if r == nil {
		return node, nil
	}
	for i, name := range r.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if err := val.Encode(r.values[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
