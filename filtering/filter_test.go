/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatch(t *testing.T, f *Filter, entry map[string]any) bool {
	t.Helper()
	ok, err := f.Match(entry)
	require.NoError(t, err)
	return ok
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := New()
	assert.True(t, mustMatch(t, f, map[string]any{"anything": 1}))
	assert.True(t, mustMatch(t, f, map[string]any{}))
}

func TestExactValue(t *testing.T) {
	f := New(Pattern{"region": []any{"eu-west-1", "eu-central-1"}})

	assert.True(t, mustMatch(t, f, map[string]any{"region": "eu-west-1"}))
	assert.False(t, mustMatch(t, f, map[string]any{"region": "us-east-1"}))
	assert.False(t, mustMatch(t, f, map[string]any{"other": "eu-west-1"}))
}

func TestNumericEquivalence(t *testing.T) {
	f := New(Pattern{"count": []any{3}})
	// int64 from a decoded dataset equals the int criterion
	assert.True(t, mustMatch(t, f, map[string]any{"count": int64(3)}))
	assert.True(t, mustMatch(t, f, map[string]any{"count": 3.0}))
}

func TestAnythingBut(t *testing.T) {
	f := New(Pattern{"status": []any{map[string]any{"anything-but": []any{"deleted", "archived"}}}})

	assert.True(t, mustMatch(t, f, map[string]any{"status": "active"}))
	assert.False(t, mustMatch(t, f, map[string]any{"status": "deleted"}))
	// A missing field never matches anything-but
	assert.False(t, mustMatch(t, f, map[string]any{}))
}

func TestAnythingButMalformed(t *testing.T) {
	f := New(Pattern{"status": []any{map[string]any{"anything-but": "deleted"}}})
	_, err := f.Match(map[string]any{"status": "active"})
	require.Error(t, err)
}

func TestNumericRange(t *testing.T) {
	f := New(Pattern{"score": []any{map[string]any{"numeric": []any{">", 0, "<=", 100}}}})

	assert.True(t, mustMatch(t, f, map[string]any{"score": 55}))
	assert.True(t, mustMatch(t, f, map[string]any{"score": 100}))
	assert.False(t, mustMatch(t, f, map[string]any{"score": 0}))
	assert.False(t, mustMatch(t, f, map[string]any{"score": 101}))
	assert.False(t, mustMatch(t, f, map[string]any{"score": "high"}))
}

func TestNumericMalformed(t *testing.T) {
	f := New(Pattern{"score": []any{map[string]any{"numeric": []any{">", 0, "<="}}}})
	_, err := f.Match(map[string]any{"score": 5})
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	present := New(Pattern{"tag": []any{map[string]any{"exists": true}}})
	absent := New(Pattern{"tag": []any{map[string]any{"exists": false}}})

	assert.True(t, mustMatch(t, present, map[string]any{"tag": "x"}))
	assert.False(t, mustMatch(t, present, map[string]any{}))
	assert.True(t, mustMatch(t, absent, map[string]any{}))
	assert.False(t, mustMatch(t, absent, map[string]any{"tag": "x"}))
}

func TestPrefix(t *testing.T) {
	f := New(Pattern{"region": []any{map[string]any{"prefix": "eu-"}}})

	assert.True(t, mustMatch(t, f, map[string]any{"region": "eu-west-1"}))
	assert.False(t, mustMatch(t, f, map[string]any{"region": "us-east-1"}))
	assert.False(t, mustMatch(t, f, map[string]any{"region": 12}))
}

func TestNestedPattern(t *testing.T) {
	f := New(Pattern{
		"detail": Pattern{
			"state": []any{"running"},
		},
	})

	assert.True(t, mustMatch(t, f, map[string]any{
		"detail": map[string]any{"state": "running"},
	}))
	assert.False(t, mustMatch(t, f, map[string]any{
		"detail": map[string]any{"state": "stopped"},
	}))
	assert.False(t, mustMatch(t, f, map[string]any{"detail": "running"}))
}

func TestAllFieldsMustMatch(t *testing.T) {
	f := New(Pattern{
		"region": []any{"eu-west-1"},
		"state":  []any{"running"},
	})

	assert.True(t, mustMatch(t, f, map[string]any{"region": "eu-west-1", "state": "running"}))
	assert.False(t, mustMatch(t, f, map[string]any{"region": "eu-west-1", "state": "stopped"}))
}

func TestAnyPatternMatches(t *testing.T) {
	f := New(
		Pattern{"region": []any{"eu-west-1"}},
		Pattern{"region": []any{"us-east-1"}},
	)

	assert.True(t, mustMatch(t, f, map[string]any{"region": "us-east-1"}))
	assert.False(t, mustMatch(t, f, map[string]any{"region": "ap-south-1"}))
}

func TestUnknownCriterionIsError(t *testing.T) {
	f := New(Pattern{"x": []any{map[string]any{"suffix": "-end"}}})
	_, err := f.Match(map[string]any{"x": "the-end"})
	require.Error(t, err)
}
