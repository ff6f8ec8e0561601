package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AI2HU/tubedash/internal/shared"
)

// Row is a single snapshot record. Most collections are pass-through: the
// schema belongs to the snapshot generator, and the engine resolves fields
// lazily. Missing or malformed values always degrade to zero values, never to
// an error.
type Row map[string]any

// Number resolves a numeric field, coercing strings and clamping negatives.
func (r Row) Number(key string) float64 {
	return shared.SafeNumber(r[key])
}

// Signed resolves a numeric field without the negative clamp. Change
// percentages are the one place negatives are meaningful.
func (r Row) Signed(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return finite(f)
	default:
		return 0
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Int resolves a numeric field as an integer.
func (r Row) Int(key string) int {
	return int(r.Number(key))
}

// Str resolves a string field, trimmed, empty when absent.
func (r Row) Str(key string) string {
	return shared.SafeString(r[key], "")
}

// StrOr resolves a string field with a fallback default.
func (r Row) StrOr(key, def string) string {
	return shared.SafeString(r[key], def)
}

// Sub resolves a nested object field. Absent or non-object values yield an
// empty Row so chained lookups stay safe.
func (r Row) Sub(key string) Row {
	switch v := r[key].(type) {
	case map[string]any:
		return Row(v)
	case Row:
		return v
	default:
		return Row{}
	}
}

// Rows resolves a nested array-of-objects field.
func (r Row) Rows(key string) []Row {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Row, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Row(m))
		}
	}
	return out
}

// Has reports whether the field is present and non-nil.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Time parses an RFC3339-ish timestamp field, zero time when unparseable.
func (r Row) Time(key string) time.Time {
	s := r.Str(key)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
