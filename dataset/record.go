/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataset

import (
	"reflect"
	"sort"
)

// Record is a single row: a mapping from column name to value.
// Values should be normalized scalars (string, int64, float64, bool, nil);
// nested map[string]any and []any values are allowed for JSON-lines data.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Normalize converts Go's assorted numeric kinds to the canonical int64/float64
// representations used throughout the library.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string, bool, int64, float64:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = Normalize(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = Normalize(v)
		}
		return out
	default:
		return v
	}
}

// RecordSet is an ordered collection of records with a consistent column set.
type RecordSet struct {
	Columns []string
	Records []Record
}

// New creates a RecordSet with a fixed column order.
func New(columns ...string) *RecordSet {
	return &RecordSet{Columns: columns}
}

// Append adds records, normalizing their values. Columns not yet known to the
// set are appended in sorted order so that column discovery is deterministic.
func (rs *RecordSet) Append(records ...Record) {
	for _, r := range records {
		row := make(Record, len(r))
		var unseen []string
		for k, v := range r {
			row[k] = Normalize(v)
			if !rs.hasColumn(k) {
				unseen = append(unseen, k)
			}
		}
		sort.Strings(unseen)
		rs.Columns = append(rs.Columns, unseen...)
		rs.Records = append(rs.Records, row)
	}
}

// Len returns the number of records.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

func (rs *RecordSet) hasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// DropColumns returns a copy of the set without the given columns.
func (rs *RecordSet) DropColumns(columns ...string) *RecordSet {
	drop := make(map[string]bool, len(columns))
	for _, c := range columns {
		drop[c] = true
	}

	out := &RecordSet{}
	for _, c := range rs.Columns {
		if !drop[c] {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range rs.Records {
		row := make(Record, len(out.Columns))
		for _, c := range out.Columns {
			if v, ok := r[c]; ok {
				row[c] = v
			}
		}
		out.Records = append(out.Records, row)
	}
	return out
}

// Filter returns a new RecordSet holding the records for which pred is true,
// in their original order.
func (rs *RecordSet) Filter(pred func(Record) bool) *RecordSet {
	out := &RecordSet{Columns: append([]string(nil), rs.Columns...)}
	for _, r := range rs.Records {
		if pred(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// SortBy stably sorts the records by the given columns, ascending.
func (rs *RecordSet) SortBy(columns ...string) {
	sort.SliceStable(rs.Records, func(i, j int) bool {
		for _, c := range columns {
			cmp := compareValues(rs.Records[i][c], rs.Records[j][c])
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

// Equal reports whether two record sets hold the same rows in the same order
// over the same column set. Column order is not significant.
func (rs *RecordSet) Equal(other *RecordSet) bool {
	if rs.Len() != other.Len() {
		return false
	}
	if !sameColumnSet(rs.Columns, other.Columns) {
		return false
	}
	for i := range rs.Records {
		if !recordsEqual(rs.Records[i], other.Records[i]) {
			return false
		}
	}
	return true
}

// Concat appends all records of the given sets, in order, into a new set.
func Concat(sets ...*RecordSet) *RecordSet {
	out := &RecordSet{}
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, c := range s.Columns {
			if !out.hasColumn(c) {
				out.Columns = append(out.Columns, c)
			}
		}
		out.Records = append(out.Records, s.Records...)
	}
	return out
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, c := range a {
		seen[c]++
	}
	for _, c := range b {
		seen[c]--
		if seen[c] < 0 {
			return false
		}
	}
	return true
}

func recordsEqual(a, b Record) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

// valuesEqual treats int64 and float64 holding the same quantity as equal, so
// that formats which widen integers still satisfy the round-trip law.
func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// compareValues orders nil first, then numerics, then booleans, then strings.
func compareValues(a, b any) int {
	an, bn := a == nil, b == nil
	if an || bn {
		switch {
		case an && bn:
			return 0
		case an:
			return -1
		default:
			return 1
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
		return -1
	}
	if _, bok := asFloat(b); bok {
		return 1
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
		return -1
	}
	if _, bok := b.(bool); bok {
		return 1
	}
	as, bs := valueString(a), valueString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
