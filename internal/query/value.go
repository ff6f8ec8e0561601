package query

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator orders strings by Portuguese collation rules, so accented channel
// names and titles sort with their base letter instead of after "z". A
// Collator keeps internal buffers, so access is serialized.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Portuguese, collate.IgnoreCase)
)

// Value is a resolved sort key: either a number or an already-lowercased
// string. Accessors never fail; unresolvable keys become the zero number.
type Value struct {
	Num   float64
	Str   string
	IsStr bool
}

// Num wraps a numeric value.
func Num(n float64) Value {
	return Value{Num: n}
}

// Str wraps a string value, lowercased for case-insensitive ordering.
func Str(s string) Value {
	return Value{Str: strings.ToLower(s), IsStr: true}
}

// Compare orders two values: locale-aware string comparison when either side
// is a string, numeric otherwise.
func Compare(a, b Value) int {
	if a.IsStr || b.IsStr {
		collatorMu.Lock()
		defer collatorMu.Unlock()
		return collator.CompareString(a.text(), b.text())
	}
	switch {
	case a.Num < b.Num:
		return -1
	case a.Num > b.Num:
		return 1
	default:
		return 0
	}
}

func (v Value) text() string {
	if v.IsStr {
		return v.Str
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// toNumber coerces a raw field to a float64 for ordering. Unlike the
// normalizer's coercion it preserves negative values, which period-change
// columns rely on.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return n
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}
