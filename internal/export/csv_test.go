package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	got := CSV([]string{"X", "Y"}, [][]any{
		{"a", "b,c"},
		{1, 2},
	})

	assert.Equal(t, "\"X\",\"Y\"\n\"a\",\"b,c\"\n\"1\",\"2\"", got)
}

func TestCSVQuotesAreDoubled(t *testing.T) {
	got := CSV([]string{"title"}, [][]any{
		{`say "hi"`},
	})

	assert.Equal(t, "\"title\"\n\"say \"\"hi\"\"\"", got)
}

func TestCSVHeadersOnly(t *testing.T) {
	got := CSV([]string{"a", "b"}, nil)

	assert.Equal(t, "\"a\",\"b\"", got)
	assert.False(t, strings.HasSuffix(got, "\n"), "no trailing newline")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"float64 integral", 1234567.0, "1234567"},
		{"float64 fractional", 3.25, "3.25"},
		{"large counter stays decimal", 1.5e9, "1500000000"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(tt.input))
		})
	}
}

func TestNewDocument(t *testing.T) {
	a := NewDocument("ranking_24h.csv", "\"x\"")
	b := NewDocument("ranking_24h.csv", "\"x\"")

	assert.Equal(t, "ranking_24h.csv", a.Filename)
	assert.Equal(t, "\"x\"", a.Content)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "every export gets a fresh identifier")
}
