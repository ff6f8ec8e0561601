package shared

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatCompact renders a counter in compact form (1.2K, 3.4M, 1.1B).
func FormatCompact(n float64) string {
	abs := math.Abs(n)
	switch {
	case abs >= 1e9:
		return trimCompact(n/1e9) + "B"
	case abs >= 1e6:
		return trimCompact(n/1e6) + "M"
	case abs >= 1e3:
		return trimCompact(n/1e3) + "K"
	default:
		return strconv.FormatInt(int64(math.Round(n)), 10)
	}
}

func trimCompact(n float64) string {
	s := strconv.FormatFloat(n, 'f', 1, 64)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}

// FormatNumber renders a counter with thousands separators.
func FormatNumber(n float64) string {
	v := int64(math.Round(n))
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(n float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, n)
}

// HoursSince returns the whole hours elapsed since t, never negative.
func HoursSince(t time.Time, now time.Time) float64 {
	h := math.Round(now.Sub(t).Hours())
	if h < 0 {
		return 0
	}
	return h
}
