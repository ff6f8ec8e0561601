package shared

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SafeNumber coerces an arbitrary decoded JSON value to a non-negative float64.
// nil, empty strings and non-numeric strings become 0, numeric strings are
// parsed, and negative or non-finite results are clamped to 0. It never fails;
// malformed input always degrades to a safe default.
func SafeNumber(v any) float64 {
	var n float64

	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		n = parsed
	case bool:
		if x {
			n = 1
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

// SafeString coerces an arbitrary decoded JSON value to a trimmed string,
// falling back to def when the value is missing or blank.
func SafeString(v any, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
