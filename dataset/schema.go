/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the unified value type of a column.
type FieldType string

const (
	TypeNull   FieldType = "null"
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
	TypeObject FieldType = "object"
	TypeArray  FieldType = "array"
)

// Field is a named, typed column.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Schema describes the columns of a RecordSet in column order.
type Schema struct {
	Fields []Field `json:"fields"`
}

// TypeOf classifies a normalized value.
func TypeOf(v any) FieldType {
	switch v.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case int64:
		return TypeInt
	case float64:
		return TypeFloat
	case bool:
		return TypeBool
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	default:
		return TypeString
	}
}

// Infer derives a schema from a record set by unifying the value types seen in
// each column. A column whose values are all nil has type null.
func Infer(rs *RecordSet) (Schema, error) {
	s := Schema{Fields: make([]Field, 0, len(rs.Columns))}
	for _, c := range rs.Columns {
		ft := TypeNull
		for _, r := range rs.Records {
			v, ok := r[c]
			if !ok {
				continue
			}
			unified, err := unifyTypes(ft, TypeOf(v))
			if err != nil {
				return Schema{}, fmt.Errorf("column %q: %w", c, err)
			}
			ft = unified
		}
		s.Fields = append(s.Fields, Field{Name: c, Type: ft})
	}
	return s, nil
}

// unifyTypes merges two value types: null yields to anything and int widens
// to float. Any other disagreement is an error.
func unifyTypes(a, b FieldType) (FieldType, error) {
	switch {
	case a == b:
		return a, nil
	case a == TypeNull:
		return b, nil
	case b == TypeNull:
		return a, nil
	case a == TypeInt && b == TypeFloat, a == TypeFloat && b == TypeInt:
		return TypeFloat, nil
	}
	return "", fmt.Errorf("cannot unify value types %s and %s", a, b)
}

// Unify merges two schemas covering the same column set, unifying each
// column's value type. Field order follows the receiver.
func (s Schema) Unify(other Schema) (Schema, error) {
	if !s.SameColumns(other) {
		return Schema{}, fmt.Errorf("schemas cover different columns: %s vs %s",
			s.Signature(), other.Signature())
	}
	types := make(map[string]FieldType, len(other.Fields))
	for _, f := range other.Fields {
		types[f.Name] = f.Type
	}
	out := Schema{Fields: make([]Field, len(s.Fields))}
	for i, f := range s.Fields {
		ft, err := unifyTypes(f.Type, types[f.Name])
		if err != nil {
			return Schema{}, fmt.Errorf("column %q: %w", f.Name, err)
		}
		out.Fields[i] = Field{Name: f.Name, Type: ft}
	}
	return out, nil
}

// Columns returns the field names in schema order.
func (s Schema) Columns() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Signature returns a canonical, order-insensitive rendering of the schema,
// used in schema mismatch reports.
func (s Schema) Signature() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = string(f.Name) + ":" + string(f.Type)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// SameColumns reports whether two schemas cover the same column names,
// regardless of order and value types.
func (s Schema) SameColumns(other Schema) bool {
	return sameColumnSet(s.Columns(), other.Columns())
}
