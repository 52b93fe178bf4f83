/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filtering

import (
	"fmt"
	"reflect"
	"strings"
)

// Criterion keys recognized in operator documents.
const (
	criterionAnythingBut = "anything-but"
	criterionNumeric     = "numeric"
	criterionExists      = "exists"
	criterionPrefix      = "prefix"
)

// Pattern maps field names to criteria lists ([]any) or to nested Patterns
// addressing fields of nested objects.
type Pattern map[string]any

// Filter matches records against a set of patterns.
type Filter struct {
	patterns []Pattern
}

// New creates a Filter. A nil or empty pattern list matches everything.
func New(patterns ...Pattern) *Filter {
	return &Filter{patterns: patterns}
}

// Match reports whether the entry satisfies any pattern of the filter.
func (f *Filter) Match(entry map[string]any) (bool, error) {
	if len(f.patterns) == 0 {
		return true, nil
	}
	for _, p := range f.patterns {
		ok, err := matchPattern(entry, p, nil)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// matchPattern requires every field of the pattern to match.
func matchPattern(entry map[string]any, pattern Pattern, root []string) (bool, error) {
	result := true
	for field, spec := range pattern {
		path := append(append([]string(nil), root...), field)
		switch s := spec.(type) {
		case []any:
			ok, err := checkMatch(entry, path, s)
			if err != nil {
				return false, err
			}
			result = result && ok
		case Pattern:
			ok, err := matchPattern(entry, s, path)
			if err != nil {
				return false, err
			}
			result = result && ok
		case map[string]any:
			ok, err := matchPattern(entry, Pattern(s), path)
			if err != nil {
				return false, err
			}
			result = result && ok
		default:
			return false, fmt.Errorf("field %q: criteria must be a list or a nested pattern, got %T",
				strings.Join(path, "."), spec)
		}
	}
	return result, nil
}

// checkMatch reports whether the value under path satisfies any criterion.
func checkMatch(entry map[string]any, path []string, criteria []any) (bool, error) {
	value, found := lookup(entry, path)
	for _, criterion := range criteria {
		ok, err := matchCriterion(value, found, criterion)
		if err != nil {
			return false, fmt.Errorf("field %q: %w", strings.Join(path, "."), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func lookup(entry map[string]any, path []string) (any, bool) {
	var value any = entry
	for _, field := range path {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok = obj[field]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

func matchCriterion(value any, found bool, criterion any) (bool, error) {
	doc, ok := criterion.(map[string]any)
	if !ok || len(doc) != 1 {
		if ok {
			return false, fmt.Errorf("operator document must hold exactly one operator, got %d", len(doc))
		}
		// Plain scalar: exact match
		return found && scalarEqual(value, criterion), nil
	}

	for op, ref := range doc {
		switch op {
		case criterionAnythingBut:
			return matchAnythingBut(value, found, ref)
		case criterionNumeric:
			return matchNumeric(value, found, ref)
		case criterionExists:
			want, ok := ref.(bool)
			if !ok {
				return false, fmt.Errorf("%q criterion reference must be a boolean", criterionExists)
			}
			return want == found, nil
		case criterionPrefix:
			return matchPrefix(value, found, ref)
		default:
			return false, fmt.Errorf("unknown criterion %q", op)
		}
	}
	return false, nil
}

func matchAnythingBut(value any, found bool, ref any) (bool, error) {
	excluded, ok := ref.([]any)
	if !ok {
		return false, fmt.Errorf("%q criterion reference must be a list of values", criterionAnythingBut)
	}
	if !found {
		return false, nil
	}
	for _, ex := range excluded {
		if scalarEqual(value, ex) {
			return false, nil
		}
	}
	return true, nil
}

func matchNumeric(value any, found bool, ref any) (bool, error) {
	terms, ok := ref.([]any)
	if !ok || len(terms) == 0 || len(terms)%2 != 0 {
		return false, fmt.Errorf(
			"%q criterion reference must be an even sized array in form of [operation1, reference_value1, ...]",
			criterionNumeric)
	}
	if !found {
		return false, nil
	}
	v, ok := toFloat(value)
	if !ok {
		return false, nil
	}
	for i := 0; i < len(terms); i += 2 {
		op, ok := terms[i].(string)
		if !ok {
			return false, fmt.Errorf("%q criterion operation must be a string", criterionNumeric)
		}
		bound, ok := toFloat(terms[i+1])
		if !ok {
			return false, fmt.Errorf("%q criterion reference value must be numeric", criterionNumeric)
		}
		var holds bool
		switch op {
		case "=":
			holds = v == bound
		case ">":
			holds = v > bound
		case ">=":
			holds = v >= bound
		case "<":
			holds = v < bound
		case "<=":
			holds = v <= bound
		default:
			return false, fmt.Errorf("%q criterion has unknown operation %q", criterionNumeric, op)
		}
		if !holds {
			return false, nil
		}
	}
	return true, nil
}

func matchPrefix(value any, found bool, ref any) (bool, error) {
	prefix, ok := ref.(string)
	if !ok {
		return false, fmt.Errorf("%q criterion reference must be a string", criterionPrefix)
	}
	if !found {
		return false, nil
	}
	s, ok := value.(string)
	return ok && strings.HasPrefix(s, prefix), nil
}

func scalarEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	return 0, false
}
