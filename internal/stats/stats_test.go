package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagement(t *testing.T) {
	assert.InDelta(t, 8.0, Engagement(50, 30, 1000), 1e-9)
	assert.InDelta(t, 800.0, Engagement(5, 3, 0), 1e-9, "zero views divide by one, not by zero")
	assert.InDelta(t, 800.0, Engagement(5, 3, 0.4), 1e-9, "fractional views below one are treated the same")
	assert.Zero(t, Engagement(0, 0, 5000))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.5, Ratio(150, 100), 1e-9)
	assert.Zero(t, Ratio(150, 0), "no historical baseline yields zero, not infinity")
}

func TestPeriodChange(t *testing.T) {
	assert.InDelta(t, 50.0, PeriodChange(150, 100), 1e-9)
	assert.InDelta(t, -25.0, PeriodChange(75, 100), 1e-9)
	assert.Zero(t, PeriodChange(100, 0))
}

func TestGuardedRate(t *testing.T) {
	assert.InDelta(t, 10.0, guardedRate(8, 2, 100), 1e-9)
	assert.Zero(t, guardedRate(8, 2, 0), "window totals report zero engagement without views")
}
