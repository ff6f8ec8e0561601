// Package stats holds the metric projection functions: pure computations
// from raw aggregate rows to display-ready figures. Identical input always
// produces identical output.
package stats

// Engagement computes the engagement rate in percent. The max(1, views) guard
// keeps zero-view rows finite; the slight underestimation there is intended.
func Engagement(likes, comments, views float64) float64 {
	denom := views
	if denom < 1 {
		denom = 1
	}
	return (likes + comments) / denom * 100
}

// Ratio is the daily-vs-historical performance ratio, 0 when there is no
// historical baseline.
func Ratio(daily, historical float64) float64 {
	if historical == 0 {
		return 0
	}
	return daily / historical
}

// PeriodChange is the period-over-period change in percent, 0 when the
// previous window is empty.
func PeriodChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current/previous - 1) * 100
}

// guardedRate is the engagement formula used for window totals: 0 when there
// are no views at all.
func guardedRate(likes, comments, views float64) float64 {
	if views <= 0 {
		return 0
	}
	return (likes + comments) / views * 100
}
