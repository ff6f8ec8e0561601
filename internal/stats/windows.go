package stats

import (
	"math"
	"sort"

	"github.com/AI2HU/tubedash/internal/models"
)

// Ranking periods.
const (
	Period24h        = "24h"
	Period7d         = "7d"
	Period30d        = "30d"
	PeriodHistorical = "historical"
)

// RankingWindow is the resolved data source for one ranking period. Suffix is
// the field suffix the period's counters live under; the historical period
// uses total_* fields and an empty suffix. Estimated marks rows fabricated
// from 24h figures.
type RankingWindow struct {
	Period    string       `json:"period"`
	Suffix    string       `json:"suffix"`
	Rows      []models.Row `json:"rows"`
	Estimated bool         `json:"estimated"`
}

// ResolveRankingWindow picks the best available source for a ranking period,
// falling back from authoritative files to per-video aggregation to estimated
// figures. An unknown period and the historical period without a rankings
// file both resolve to the 24h data.
func ResolveRankingWindow(snap *models.Snapshot, period string) RankingWindow {
	switch period {
	case Period7d:
		if len(snap.Videos7d) > 0 {
			return RankingWindow{Period: period, Suffix: "_7d", Rows: aggregateVideosByChannel(snap.Videos7d, "_7d")}
		}
		return RankingWindow{Period: period, Suffix: "_7d", Rows: estimateChannels(snap.Current, Period7d), Estimated: true}

	case Period30d:
		if rows := snap.TopChannels30d(); len(rows) > 0 {
			return RankingWindow{Period: period, Suffix: "_30d", Rows: rows}
		}
		if len(snap.Videos30d) > 0 {
			return RankingWindow{Period: period, Suffix: "_30d", Rows: aggregateVideosByChannel(snap.Videos30d, "_30d")}
		}
		return RankingWindow{Period: period, Suffix: "_30d", Rows: estimateChannels(snap.Current, Period30d), Estimated: true}

	case PeriodHistorical:
		if rows := snap.TopChannels(); len(rows) > 0 {
			return RankingWindow{Period: period, Suffix: "", Rows: rows}
		}
		return RankingWindow{Period: period, Suffix: "_24h", Rows: snap.Current}

	default:
		return RankingWindow{Period: Period24h, Suffix: "_24h", Rows: snap.Current}
	}
}

// RankingFigures are the display counters of one ranking row under a resolved
// window.
type RankingFigures struct {
	Videos     float64 `json:"videos"`
	Views      float64 `json:"views"`
	Likes      float64 `json:"likes"`
	Comments   float64 `json:"comments"`
	Engagement float64 `json:"engagement"`
}

// ResolveRankingFigures reads the period counters off a ranking row. The
// historical window prefers total_* fields and the stored engagement rate;
// the 30d ranking file carries its own engagement column.
func ResolveRankingFigures(r models.Row, w RankingWindow) RankingFigures {
	f := RankingFigures{
		Videos:   r.Number("videos" + w.Suffix),
		Views:    r.Number("views" + w.Suffix),
		Likes:    r.Number("likes" + w.Suffix),
		Comments: r.Number("comments" + w.Suffix),
	}

	if w.Period == PeriodHistorical {
		if r.Has("total_videos") {
			f.Videos = r.Number("total_videos")
		}
		if r.Has("total_views") {
			f.Views = r.Number("total_views")
		}
		if r.Has("total_likes") {
			f.Likes = r.Number("total_likes")
		}
		if r.Has("total_comments") {
			f.Comments = r.Number("total_comments")
		}
	}

	switch {
	case w.Period == PeriodHistorical && r.Has("engagement_rate"):
		f.Engagement = r.Number("engagement_rate")
	case w.Period == Period30d && r.Has("engajamento_30d"):
		f.Engagement = r.Number("engajamento_30d")
	default:
		f.Engagement = Engagement(f.Likes, f.Comments, f.Views)
	}
	return f
}

// aggregateVideosByChannel folds per-video rows into per-channel counters,
// preserving first-appearance order for deterministic output.
func aggregateVideosByChannel(videos []models.Row, suffix string) []models.Row {
	byChannel := make(map[string]models.Row)
	var order []string

	for _, v := range videos {
		id := v.Str("channel_id")
		if id == "" {
			id = v.Str("channel_name")
		}
		ch, ok := byChannel[id]
		if !ok {
			ch = models.Row{
				"channel_id":       v["channel_id"],
				"channel_name":     v["channel_name"],
				"tag":              v["tag"],
				"subscriber_count": v.Number("subscriber_count"),
			}
			byChannel[id] = ch
			order = append(order, id)
		}
		ch["videos"+suffix] = ch.Number("videos"+suffix) + 1
		ch["views"+suffix] = ch.Number("views"+suffix) + v.Number("views")
		ch["likes"+suffix] = ch.Number("likes"+suffix) + v.Number("likes")
		ch["comments"+suffix] = ch.Number("comments"+suffix) + v.Number("comments")
	}

	out := make([]models.Row, 0, len(order))
	for _, id := range order {
		out = append(out, byChannel[id])
	}
	return out
}

// estimateChannels fabricates window counters from 24h figures using the
// day-count multiplier heuristics. Callers must surface the estimated flag.
func estimateChannels(current []models.Row, period string) []models.Row {
	out := make([]models.Row, 0, len(current))
	for _, r := range current {
		e := r.Clone()
		switch period {
		case Period7d:
			e["videos_7d"] = math.Round(r.Number("videos_24h") * 6.5)
			e["views_7d"] = math.Round(r.Number("views_24h") * 7 * 0.85)
			e["likes_7d"] = math.Round(r.Number("likes_24h") * 7 * 0.8)
			e["comments_7d"] = math.Round(r.Number("comments_24h") * 7 * 0.9)
		case Period30d:
			e["videos_30d"] = math.Round(r.Number("videos_24h") * 28)
			e["views_30d"] = math.Round(r.Number("views_24h") * 25 * 0.8)
			e["likes_30d"] = math.Round(r.Number("likes_24h") * 25 * 0.75)
			e["comments_30d"] = math.Round(r.Number("comments_24h") * 25 * 0.85)
		}
		out = append(out, e)
	}
	return out
}

// ShareEntry is one tag slice of the share-by-tag breakdown.
type ShareEntry struct {
	Tag      string  `json:"tag"`
	Videos   float64 `json:"videos"`
	Views    float64 `json:"views"`
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	SharePct float64 `json:"share_pct"`
}

// Share is the share-by-tag breakdown for one period, ordered by views
// descending.
type Share struct {
	Period     string       `json:"period"`
	Entries    []ShareEntry `json:"entries"`
	TotalViews float64      `json:"total_views"`
}

// ComputeShare builds the per-tag view share for a period. 24h uses the
// authoritative aggregates; 7d and 30d group the windowed video files by tag,
// falling back to estimated 24h multiples when those files are absent.
func ComputeShare(snap *models.Snapshot, byTag map[string]models.TagAggregate, period string) models.Estimated[Share] {
	switch period {
	case Period7d:
		if len(snap.Videos7d) > 0 {
			return models.Real(shareFromVideos(snap.Videos7d, period))
		}
		return models.Estimate(shareEstimated(snap.Current, 7*0.85, 6.5, period))
	case Period30d:
		if len(snap.Videos30d) > 0 {
			return models.Real(shareFromVideos(snap.Videos30d, period))
		}
		return models.Estimate(shareEstimated(snap.Current, 25*0.8, 28, period))
	default:
		return models.Real(share24h(snap, byTag))
	}
}

func share24h(snap *models.Snapshot, byTag map[string]models.TagAggregate) Share {
	s := Share{Period: Period24h}

	for _, agg := range byTag {
		s.Entries = append(s.Entries, ShareEntry{
			Tag:      agg.Tag,
			Videos:   agg.Videos,
			Views:    agg.Views,
			Likes:    agg.Likes,
			Comments: agg.Comments,
		})
	}

	totals := snap.Tags24Totals()
	if totals.Has("views") {
		s.TotalViews = totals.Number("views")
	} else {
		for _, e := range s.Entries {
			s.TotalViews += e.Views
		}
	}
	return finishShare(s)
}

func shareFromVideos(videos []models.Row, period string) Share {
	s := Share{Period: period}
	grouped := make(map[string]*ShareEntry)

	for _, v := range videos {
		tag := v.StrOr("tag", "Geral")
		e, ok := grouped[tag]
		if !ok {
			e = &ShareEntry{Tag: tag}
			grouped[tag] = e
		}
		e.Videos++
		e.Views += v.Number("views")
		e.Likes += v.Number("likes")
		e.Comments += v.Number("comments")
	}

	for _, e := range grouped {
		s.Entries = append(s.Entries, *e)
		s.TotalViews += e.Views
	}
	return finishShare(s)
}

func shareEstimated(current []models.Row, viewsMult, videosMult float64, period string) Share {
	s := Share{Period: period}
	grouped := make(map[string]*ShareEntry)

	for _, c := range current {
		tag := c.StrOr("tag", "Geral")
		e, ok := grouped[tag]
		if !ok {
			e = &ShareEntry{Tag: tag}
			grouped[tag] = e
		}
		e.Views += math.Round(c.Number("views_24h") * viewsMult)
		e.Videos += math.Round(c.Number("videos_24h") * videosMult)
	}

	for _, e := range grouped {
		s.Entries = append(s.Entries, *e)
		s.TotalViews += e.Views
	}
	return finishShare(s)
}

// finishShare orders entries by views descending (tag ascending on ties, to
// keep repeated calls identical) and fills the share percentages.
func finishShare(s Share) Share {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		if s.Entries[i].Views != s.Entries[j].Views {
			return s.Entries[i].Views > s.Entries[j].Views
		}
		return s.Entries[i].Tag < s.Entries[j].Tag
	})

	denom := s.TotalViews
	if denom == 0 {
		denom = 1
	}
	for i := range s.Entries {
		s.Entries[i].SharePct = s.Entries[i].Views / denom * 100
	}
	return s
}
