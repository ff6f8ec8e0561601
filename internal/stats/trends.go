package stats

import (
	"sort"
	"time"

	"github.com/AI2HU/tubedash/internal/models"
)

// TrendPoint is one dated value of a trend series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TagSeries is the trend line of one tag.
type TagSeries struct {
	Tag    string    `json:"tag"`
	Values []float64 `json:"values"`
}

// TagTrend is the per-tag metric evolution over the last range days of the
// history file.
type TagTrend struct {
	Metric string      `json:"metric"`
	Dates  []string    `json:"dates"`
	Series []TagSeries `json:"series"`
}

// ComputeTagTrend builds one line per tag over the trailing rangeDays dates
// present in the history rows. Dates and tags are sorted; a tag with no row
// on a date contributes 0.
func ComputeTagTrend(history []models.Row, metric string, rangeDays int) TagTrend {
	t := TagTrend{Metric: metric}

	byDateTag := make(map[string]map[string]float64)
	tagSet := make(map[string]struct{})
	for _, h := range history {
		date := h.Str("date")
		tag := h.Str("tag")
		if byDateTag[date] == nil {
			byDateTag[date] = make(map[string]float64)
		}
		byDateTag[date][tag] = h.Number(metric)
		tagSet[tag] = struct{}{}
	}

	for date := range byDateTag {
		t.Dates = append(t.Dates, date)
	}
	sort.Strings(t.Dates)
	if rangeDays > 0 && len(t.Dates) > rangeDays {
		t.Dates = t.Dates[len(t.Dates)-rangeDays:]
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		s := TagSeries{Tag: tag, Values: make([]float64, 0, len(t.Dates))}
		for _, date := range t.Dates {
			s.Values = append(s.Values, byDateTag[date][tag])
		}
		t.Series = append(t.Series, s)
	}
	return t
}

// ComputeChannelTrend builds the dated series of one metric for one channel.
// Real per-day rows from the trend files win; when absent the series is a
// flat line at the channel's current 24h figure, flagged as estimated.
func ComputeChannelTrend(snap *models.Snapshot, channelName, metric string, days int, now time.Time) models.Estimated[[]TrendPoint] {
	source := snap.TrendByChannel30
	if days <= 7 {
		source = snap.TrendByChannel7
	}

	var rows []models.Row
	for _, r := range source {
		if r.Str("channel_name") == channelName {
			rows = append(rows, r)
		}
	}

	if len(rows) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Str("date") < rows[j].Str("date")
		})
		points := make([]TrendPoint, 0, len(rows))
		for _, r := range rows {
			points = append(points, TrendPoint{Date: r.Str("date"), Value: r.Number(metric)})
		}
		return models.Real(points)
	}

	var base float64
	for _, c := range snap.Current {
		if c.Str("channel_name") == channelName {
			base = c.Number(metric + "_24h")
			break
		}
	}

	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		points = append(points, TrendPoint{Date: d.Format("2006-01-02"), Value: base})
	}
	return models.Estimate(points)
}
