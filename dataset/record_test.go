/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendNormalizesValues(t *testing.T) {
	rs := New("id", "score")
	rs.Append(Record{"id": 1, "score": float32(0.5)})

	require.Equal(t, 1, rs.Len())
	assert.Equal(t, int64(1), rs.Records[0]["id"])
	assert.Equal(t, float64(float32(0.5)), rs.Records[0]["score"])
}

func TestAppendDiscoversColumnsDeterministically(t *testing.T) {
	rs := &RecordSet{}
	rs.Append(Record{"b": "x", "a": "y"})
	rs.Append(Record{"c": "z"})

	assert.Equal(t, []string{"a", "b", "c"}, rs.Columns)
}

func TestEqualIgnoresColumnOrder(t *testing.T) {
	a := New("x", "y")
	a.Append(Record{"x": 1, "y": "one"})

	b := New("y", "x")
	b.Append(Record{"x": 1, "y": "one"})

	assert.True(t, a.Equal(b))
}

func TestEqualTreatsWidenedIntsAsEqual(t *testing.T) {
	a := New("n")
	a.Append(Record{"n": int64(3)})

	b := New("n")
	b.Append(Record{"n": float64(3)})

	assert.True(t, a.Equal(b))
}

func TestEqualDetectsRowOrder(t *testing.T) {
	a := New("n")
	a.Append(Record{"n": 1}, Record{"n": 2})

	b := New("n")
	b.Append(Record{"n": 2}, Record{"n": 1})

	assert.False(t, a.Equal(b))
}

func TestDropColumns(t *testing.T) {
	rs := New("a", "b", "c")
	rs.Append(Record{"a": 1, "b": 2, "c": 3})

	out := rs.DropColumns("b")
	assert.Equal(t, []string{"a", "c"}, out.Columns)
	_, ok := out.Records[0]["b"]
	assert.False(t, ok)

	// Original untouched
	assert.Equal(t, []string{"a", "b", "c"}, rs.Columns)
}

func TestSortBy(t *testing.T) {
	rs := New("k", "v")
	rs.Append(
		Record{"k": "b", "v": 1},
		Record{"k": "a", "v": 2},
		Record{"k": "b", "v": 0},
	)

	rs.SortBy("k", "v")

	assert.Equal(t, "a", rs.Records[0]["k"])
	assert.Equal(t, int64(0), rs.Records[1]["v"])
	assert.Equal(t, int64(1), rs.Records[2]["v"])
}

func TestConcatMergesColumns(t *testing.T) {
	a := New("x")
	a.Append(Record{"x": 1})

	b := New("x", "y")
	b.Append(Record{"x": 2, "y": "two"})

	out := Concat(a, b)
	assert.Equal(t, []string{"x", "y"}, out.Columns)
	assert.Equal(t, 2, out.Len())
}

func TestInferSchema(t *testing.T) {
	rs := New("s", "n", "f", "b", "empty")
	rs.Append(
		Record{"s": "a", "n": 1, "f": 1.5, "b": true, "empty": nil},
		Record{"s": "b", "n": 2.5, "f": 2.5, "b": false, "empty": nil},
	)

	s, err := Infer(rs)
	require.NoError(t, err)

	byName := map[string]FieldType{}
	for _, f := range s.Fields {
		byName[f.Name] = f.Type
	}
	assert.Equal(t, TypeString, byName["s"])
	assert.Equal(t, TypeFloat, byName["n"]) // int widened by a float row
	assert.Equal(t, TypeFloat, byName["f"])
	assert.Equal(t, TypeBool, byName["b"])
	assert.Equal(t, TypeNull, byName["empty"])
}

func TestInferSchemaConflict(t *testing.T) {
	rs := New("v")
	rs.Append(Record{"v": "text"}, Record{"v": true})

	_, err := Infer(rs)
	require.Error(t, err)
}

func TestSchemaUnify(t *testing.T) {
	a := Schema{Fields: []Field{{"x", TypeInt}, {"y", TypeNull}}}
	b := Schema{Fields: []Field{{"y", TypeString}, {"x", TypeFloat}}}

	merged, err := a.Unify(b)
	require.NoError(t, err)

	byName := map[string]FieldType{}
	for _, f := range merged.Fields {
		byName[f.Name] = f.Type
	}
	assert.Equal(t, TypeFloat, byName["x"])  // int widened by float
	assert.Equal(t, TypeString, byName["y"]) // null yields
}

func TestSchemaUnifyTypeConflict(t *testing.T) {
	a := Schema{Fields: []Field{{"x", TypeString}}}
	b := Schema{Fields: []Field{{"x", TypeInt}}}

	_, err := a.Unify(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "x"`)
}

func TestSchemaUnifyDifferentColumns(t *testing.T) {
	a := Schema{Fields: []Field{{"x", TypeString}}}
	b := Schema{Fields: []Field{{"y", TypeString}}}

	_, err := a.Unify(b)
	require.Error(t, err)
}

func TestSchemaSignatureIsOrderInsensitive(t *testing.T) {
	a := Schema{Fields: []Field{{"x", TypeInt}, {"y", TypeString}}}
	b := Schema{Fields: []Field{{"y", TypeString}, {"x", TypeInt}}}

	assert.Equal(t, a.Signature(), b.Signature())
	assert.True(t, a.SameColumns(b))
}
