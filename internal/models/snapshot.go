package models

// Snapshot holds the full set of loaded collections for one generation of the
// data feed. It is replaced wholesale on every load; consumers must treat any
// individual collection as possibly empty.
type Snapshot struct {
	Current          []Row
	History          []Row
	Metadata         Metadata
	Rankings         Row
	Rankings30d      Row
	ChannelsSummary  []Row
	Tags24           Row
	Videos24         []Row
	Videos7d         []Row
	Videos30d        []Row
	TrendByChannel7  []Row
	TrendByChannel30 []Row
	BenchmarkData    Row
	Predictions      Row
	PeriodComparison Row
	KeywordAnalysis  Row
}

// Metadata describes the snapshot generation: timestamps, aggregation window
// boundaries, and overall totals.
type Metadata struct {
	GeneratedAt string         `json:"generated_at"`
	LastUpdate  string         `json:"last_update"`
	Windows     WindowSet      `json:"windows"`
	Totals      MetadataTotals `json:"totals"`
}

// WindowSet holds the current and history aggregation windows.
type WindowSet struct {
	Current Window `json:"current"`
	History Window `json:"history"`
}

// Window is one aggregation window boundary pair.
type Window struct {
	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
}

// MetadataTotals carries feed-level totals. Pointers distinguish "absent" from
// zero so callers can fall back to counting loaded rows.
type MetadataTotals struct {
	Channels *int `json:"channels"`
	Tags     *int `json:"tags"`
}

// TagAggregate holds summed 24h counters for one tag.
type TagAggregate struct {
	Tag      string  `json:"tag"`
	Videos   float64 `json:"videos"`
	Views    float64 `json:"views"`
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
}

// TopChannels returns the historical ranking list, empty when absent.
func (s *Snapshot) TopChannels() []Row {
	return s.Rankings.Rows("top_channels")
}

// TopChannels30d returns the pre-aggregated 30 day ranking list.
func (s *Snapshot) TopChannels30d() []Row {
	return s.Rankings30d.Rows("top_channels_30d")
}

// BenchmarkChannels returns the benchmark analysis rows.
func (s *Snapshot) BenchmarkChannels() []Row {
	return s.BenchmarkData.Rows("channels")
}

// PredictionRows returns the performance prediction rows.
func (s *Snapshot) PredictionRows() []Row {
	return s.Predictions.Rows("predictions")
}

// PeriodRows returns the per-channel period comparison rows.
func (s *Snapshot) PeriodRows() []Row {
	return s.PeriodComparison.Rows("channels")
}

// PeriodSummary returns the per-window summary block of the period comparison
// file (keys "7d" and "30d").
func (s *Snapshot) PeriodSummary() Row {
	return s.PeriodComparison.Sub("summary")
}

// KeywordRows returns the keyword analysis rows.
func (s *Snapshot) KeywordRows() []Row {
	return s.KeywordAnalysis.Rows("keywords")
}

// Tags24ByTag returns the authoritative per-tag 24h aggregates, when supplied.
func (s *Snapshot) Tags24ByTag() []Row {
	return s.Tags24.Rows("by_tag")
}

// Tags24Totals returns the feed-level 24h totals block.
func (s *Snapshot) Tags24Totals() Row {
	return s.Tags24.Sub("totals_24h")
}
