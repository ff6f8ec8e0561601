package stats

import "github.com/AI2HU/tubedash/internal/models"

// PredictionSummary is the KPI strip of the performance prediction tab.
type PredictionSummary struct {
	Total           int     `json:"total"`
	HighConfidence  int     `json:"high_confidence"`
	Overperforming  int     `json:"overperforming"`
	Underperforming int     `json:"underperforming"`
	AvgRatio        float64 `json:"avg_ratio"`
}

// ComputePredictionSummary reduces the prediction rows. High confidence means
// a score above 0.8; over/under performance is a ratio above 1.0 or below 0.8.
func ComputePredictionSummary(predictions []models.Row) PredictionSummary {
	s := PredictionSummary{Total: len(predictions)}
	var sum float64

	for _, p := range predictions {
		if p.Number("confidence_score") > 0.8 {
			s.HighConfidence++
		}
		ratio := p.Number("performance_ratio")
		if ratio > 1.0 {
			s.Overperforming++
		}
		if ratio < 0.8 {
			s.Underperforming++
		}
		sum += ratio
	}

	if s.Total > 0 {
		s.AvgRatio = sum / float64(s.Total)
	}
	return s
}

// PeriodSummary is the KPI strip of the period comparison tab. Thresholds:
// growing above +10%, declining below -10%, stable within ±10%.
type PeriodSummary struct {
	Total     int     `json:"total"`
	Growing   int     `json:"growing"`
	Declining int     `json:"declining"`
	Stable    int     `json:"stable"`
	TopGrowth float64 `json:"top_growth"`
}

// ComputePeriodSummary reduces the period comparison rows. The views change
// lives in the nested changes block and may be negative.
func ComputePeriodSummary(channels []models.Row) PeriodSummary {
	s := PeriodSummary{Total: len(channels)}

	for i, c := range channels {
		change := c.Sub("changes").Signed("views_change")
		switch {
		case change > 10:
			s.Growing++
		case change < -10:
			s.Declining++
		default:
			s.Stable++
		}
		if i == 0 || change > s.TopGrowth {
			s.TopGrowth = change
		}
	}
	return s
}

// BenchmarkSummary is the KPI strip of the benchmark tab.
type BenchmarkSummary struct {
	TotalChannels int     `json:"total_channels"`
	AvgViews      float64 `json:"avg_views"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// ComputeBenchmarkSummary averages the benchmark rows per channel.
func ComputeBenchmarkSummary(channels []models.Row) BenchmarkSummary {
	s := BenchmarkSummary{TotalChannels: len(channels)}
	n := float64(len(channels))
	if n < 1 {
		n = 1
	}

	var views, engagement float64
	for _, c := range channels {
		views += c.Number("total_views")
		engagement += c.Number("engagement_rate")
	}
	s.AvgViews = views / n
	s.AvgEngagement = engagement / n
	return s
}

// KeywordSummary is the KPI strip of the keyword tab.
type KeywordSummary struct {
	TotalKeywords    int     `json:"total_keywords"`
	TotalMatches     float64 `json:"total_matches"`
	TotalViews       float64 `json:"total_views"`
	AvgViewsPerMatch float64 `json:"avg_views_per_match"`
}

// ComputeKeywordSummary reduces the keyword analysis rows.
func ComputeKeywordSummary(keywords []models.Row) KeywordSummary {
	s := KeywordSummary{TotalKeywords: len(keywords)}

	for _, k := range keywords {
		s.TotalMatches += k.Number("total_matches")
		s.TotalViews += k.Number("total_views")
	}
	if s.TotalMatches > 0 {
		s.AvgViewsPerMatch = s.TotalViews / s.TotalMatches
	}
	return s
}

// Overview is the dashboard KPI header: channel and tag counts plus 24h
// totals.
type Overview struct {
	Channels    int     `json:"channels"`
	Tags        int     `json:"tags"`
	Videos24h   float64 `json:"videos_24h"`
	Views24h    float64 `json:"views_24h"`
	Likes24h    float64 `json:"likes_24h"`
	Comments24h float64 `json:"comments_24h"`
	GeneratedAt string  `json:"generated_at"`
}

// ComputeOverview builds the dashboard KPIs. Metadata totals win when
// present; otherwise counts fall back to the loaded collections, and the 24h
// totals fall back to summing the per-tag aggregates.
func ComputeOverview(snap *models.Snapshot, tagList []string, byTag map[string]models.TagAggregate) Overview {
	o := Overview{GeneratedAt: snap.Metadata.GeneratedAt}
	if o.GeneratedAt == "" {
		o.GeneratedAt = snap.Metadata.LastUpdate
	}

	if snap.Metadata.Totals.Channels != nil {
		o.Channels = *snap.Metadata.Totals.Channels
	} else if len(snap.ChannelsSummary) > 0 {
		o.Channels = len(snap.ChannelsSummary)
	} else {
		o.Channels = len(snap.Current)
	}

	if snap.Metadata.Totals.Tags != nil {
		o.Tags = *snap.Metadata.Totals.Tags
	} else {
		o.Tags = len(tagList)
	}

	totals := snap.Tags24Totals()
	o.Videos24h = totalOr(totals, "videos", byTag, func(a models.TagAggregate) float64 { return a.Videos })
	o.Views24h = totalOr(totals, "views", byTag, func(a models.TagAggregate) float64 { return a.Views })
	o.Likes24h = totalOr(totals, "likes", byTag, func(a models.TagAggregate) float64 { return a.Likes })
	o.Comments24h = totalOr(totals, "comments", byTag, func(a models.TagAggregate) float64 { return a.Comments })
	return o
}

func totalOr(totals models.Row, key string, byTag map[string]models.TagAggregate, pick func(models.TagAggregate) float64) float64 {
	if totals.Has(key) {
		return totals.Number(key)
	}
	var sum float64
	for _, agg := range byTag {
		sum += pick(agg)
	}
	return sum
}
