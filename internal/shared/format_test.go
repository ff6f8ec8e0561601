package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "0", FormatCompact(0))
	assert.Equal(t, "999", FormatCompact(999))
	assert.Equal(t, "1K", FormatCompact(1000))
	assert.Equal(t, "1.2K", FormatCompact(1234))
	assert.Equal(t, "3.4M", FormatCompact(3_400_000))
	assert.Equal(t, "1.1B", FormatCompact(1_100_000_000))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,345", FormatNumber(-12345))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercent(12.345, 2))
	assert.Equal(t, "-3.1%", FormatPercent(-3.14, 1))
}

func TestHoursSince(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5.0, HoursSince(now.Add(-5*time.Hour), now))
	assert.Equal(t, 0.0, HoursSince(now, now))
	assert.Equal(t, 0.0, HoursSince(now.Add(2*time.Hour), now), "future timestamps clamp to zero")
}
