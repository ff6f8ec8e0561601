package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowNumberClampsNegatives(t *testing.T) {
	r := Row{"views": -5.0, "likes": "120", "comments": nil}

	assert.Equal(t, 0.0, r.Number("views"))
	assert.Equal(t, 120.0, r.Number("likes"))
	assert.Equal(t, 0.0, r.Number("comments"))
	assert.Equal(t, 0.0, r.Number("missing"))
}

func TestRowSignedKeepsNegatives(t *testing.T) {
	r := Row{"views_change": -42.5, "likes_change": "-7", "bad": "x"}

	assert.Equal(t, -42.5, r.Signed("views_change"))
	assert.Equal(t, -7.0, r.Signed("likes_change"))
	assert.Equal(t, 0.0, r.Signed("bad"))
	assert.Equal(t, 0.0, r.Signed("missing"))
}

func TestRowSubChainingIsSafe(t *testing.T) {
	r := Row{"changes": map[string]any{"views_change": -3.0}}

	assert.Equal(t, -3.0, r.Sub("changes").Signed("views_change"))
	assert.Equal(t, 0.0, r.Sub("missing").Signed("views_change"), "absent blocks resolve to an empty row")
	assert.Equal(t, 0.0, r.Sub("changes").Sub("deeper").Number("x"))
}

func TestRowRows(t *testing.T) {
	r := Row{
		"items": []any{
			map[string]any{"name": "a"},
			"not an object",
			map[string]any{"name": "b"},
		},
	}

	rows := r.Rows("items")

	require.Len(t, rows, 2, "non-object entries are skipped")
	assert.Equal(t, "a", rows[0].Str("name"))
	assert.Nil(t, r.Rows("missing"))
}

func TestRowHas(t *testing.T) {
	r := Row{"present": 1.0, "null": nil}

	assert.True(t, r.Has("present"))
	assert.False(t, r.Has("null"), "explicit null counts as absent")
	assert.False(t, r.Has("missing"))
}

func TestRowTime(t *testing.T) {
	r := Row{
		"rfc3339": "2025-06-01T10:30:00Z",
		"date":    "2025-06-01",
		"bad":     "yesterday",
	}

	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), r.Time("rfc3339"))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), r.Time("date"))
	assert.True(t, r.Time("bad").IsZero())
	assert.True(t, r.Time("missing").IsZero())
}

func TestRowClone(t *testing.T) {
	r := Row{"a": 1.0}
	c := r.Clone()
	c["a"] = 2.0

	assert.Equal(t, 1.0, r.Number("a"))
}
