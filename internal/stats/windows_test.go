package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/tubedash/internal/models"
)

func TestResolveRankingWindowDefault24h(t *testing.T) {
	snap := &models.Snapshot{Current: []models.Row{{"channel_name": "Alpha"}}}

	for _, period := range []string{Period24h, "", "bogus"} {
		w := ResolveRankingWindow(snap, period)
		assert.Equal(t, Period24h, w.Period)
		assert.Equal(t, "_24h", w.Suffix)
		assert.False(t, w.Estimated)
		assert.Len(t, w.Rows, 1)
	}
}

func TestResolveRankingWindow7dAggregatesVideos(t *testing.T) {
	snap := &models.Snapshot{
		Videos7d: []models.Row{
			{"channel_id": "a", "channel_name": "Alpha", "tag": "gaming", "subscriber_count": 100.0, "views": 200.0, "likes": 20.0, "comments": 2.0},
			{"channel_id": "a", "channel_name": "Alpha", "tag": "gaming", "subscriber_count": 100.0, "views": 300.0, "likes": 30.0, "comments": 3.0},
			{"channel_id": "b", "channel_name": "Beta", "tag": "news", "views": 50.0, "likes": 5.0, "comments": 1.0},
		},
	}

	w := ResolveRankingWindow(snap, Period7d)

	require.Len(t, w.Rows, 2)
	assert.False(t, w.Estimated)
	assert.Equal(t, "_7d", w.Suffix)

	alpha := w.Rows[0]
	assert.Equal(t, "Alpha", alpha.Str("channel_name"))
	assert.Equal(t, 2.0, alpha.Number("videos_7d"))
	assert.Equal(t, 500.0, alpha.Number("views_7d"))
	assert.Equal(t, 50.0, alpha.Number("likes_7d"))
	assert.Equal(t, 5.0, alpha.Number("comments_7d"))
}

func TestResolveRankingWindow7dEstimatesWithoutVideos(t *testing.T) {
	snap := &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "videos_24h": 2.0, "views_24h": 1000.0, "likes_24h": 100.0, "comments_24h": 10.0},
		},
	}

	w := ResolveRankingWindow(snap, Period7d)

	require.Len(t, w.Rows, 1)
	assert.True(t, w.Estimated)
	assert.Equal(t, 13.0, w.Rows[0].Number("videos_7d"), "round(2*6.5)")
	assert.Equal(t, 5950.0, w.Rows[0].Number("views_7d"), "round(1000*7*0.85)")
	assert.Equal(t, 560.0, w.Rows[0].Number("likes_7d"), "round(100*7*0.8)")
	assert.Equal(t, 63.0, w.Rows[0].Number("comments_7d"), "round(10*7*0.9)")
	assert.Equal(t, 1000.0, snap.Current[0].Number("views_24h"), "estimation never touches the stored rows")
}

func TestResolveRankingWindow30dFallbackChain(t *testing.T) {
	withFile := &models.Snapshot{
		Rankings30d: models.Row{"top_channels_30d": []any{map[string]any{"channel_name": "Alpha"}}},
		Videos30d:   []models.Row{{"channel_name": "ShouldNotBeUsed"}},
	}
	w := ResolveRankingWindow(withFile, Period30d)
	require.Len(t, w.Rows, 1)
	assert.Equal(t, "Alpha", w.Rows[0].Str("channel_name"), "the pre-aggregated 30d file wins")
	assert.False(t, w.Estimated)

	withVideos := &models.Snapshot{
		Videos30d: []models.Row{{"channel_id": "b", "channel_name": "Beta", "views": 10.0}},
	}
	w = ResolveRankingWindow(withVideos, Period30d)
	require.Len(t, w.Rows, 1)
	assert.Equal(t, 1.0, w.Rows[0].Number("videos_30d"))
	assert.False(t, w.Estimated)

	bare := &models.Snapshot{
		Current: []models.Row{{"channel_name": "Gamma", "videos_24h": 1.0, "views_24h": 100.0}},
	}
	w = ResolveRankingWindow(bare, Period30d)
	assert.True(t, w.Estimated)
	assert.Equal(t, 28.0, w.Rows[0].Number("videos_30d"), "round(1*28)")
	assert.Equal(t, 2000.0, w.Rows[0].Number("views_30d"), "round(100*25*0.8)")
}

func TestResolveRankingWindowHistorical(t *testing.T) {
	withRankings := &models.Snapshot{
		Rankings: models.Row{"top_channels": []any{map[string]any{"channel_name": "Alpha"}}},
	}
	w := ResolveRankingWindow(withRankings, PeriodHistorical)
	assert.Equal(t, "", w.Suffix)
	require.Len(t, w.Rows, 1)

	withoutRankings := &models.Snapshot{Current: []models.Row{{"channel_name": "Beta"}}}
	w = ResolveRankingWindow(withoutRankings, PeriodHistorical)
	assert.Equal(t, "_24h", w.Suffix, "without a rankings file the 24h data stands in")
	require.Len(t, w.Rows, 1)
}

func TestResolveRankingFigures(t *testing.T) {
	r := models.Row{
		"videos_24h": 3.0, "views_24h": 1000.0, "likes_24h": 60.0, "comments_24h": 20.0,
	}
	w := RankingWindow{Period: Period24h, Suffix: "_24h"}

	f := ResolveRankingFigures(r, w)

	assert.Equal(t, 3.0, f.Videos)
	assert.Equal(t, 1000.0, f.Views)
	assert.InDelta(t, 8.0, f.Engagement, 1e-9, "computed from the window counters")
}

func TestResolveRankingFiguresHistoricalPrefersTotals(t *testing.T) {
	r := models.Row{
		"total_videos": 500.0, "total_views": 1e6, "total_likes": 2e4, "total_comments": 5e3,
		"engagement_rate": 2.5,
	}
	w := RankingWindow{Period: PeriodHistorical, Suffix: ""}

	f := ResolveRankingFigures(r, w)

	assert.Equal(t, 500.0, f.Videos)
	assert.Equal(t, 1e6, f.Views)
	assert.Equal(t, 2.5, f.Engagement, "the stored historical rate wins over the formula")
}

func TestResolveRankingFigures30dStoredEngagement(t *testing.T) {
	r := models.Row{
		"views_30d": 1000.0, "likes_30d": 10.0, "comments_30d": 10.0,
		"engajamento_30d": 7.7,
	}
	w := RankingWindow{Period: Period30d, Suffix: "_30d"}

	f := ResolveRankingFigures(r, w)
	assert.Equal(t, 7.7, f.Engagement)

	delete(r, "engajamento_30d")
	f = ResolveRankingFigures(r, w)
	assert.InDelta(t, 2.0, f.Engagement, 1e-9, "falls back to the formula without the stored column")
}

func TestComputeShare24h(t *testing.T) {
	snap := &models.Snapshot{
		Tags24: models.Row{
			"totals_24h": map[string]any{"views": 1000.0},
		},
	}
	byTag := map[string]models.TagAggregate{
		"gaming": {Tag: "gaming", Videos: 5, Views: 600, Likes: 60, Comments: 6},
		"news":   {Tag: "news", Videos: 2, Views: 400, Likes: 40, Comments: 4},
	}

	got := ComputeShare(snap, byTag, Period24h)

	assert.False(t, got.Estimated)
	s := got.Value
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "gaming", s.Entries[0].Tag, "entries order by views descending")
	assert.Equal(t, 1000.0, s.TotalViews)
	assert.InDelta(t, 60.0, s.Entries[0].SharePct, 1e-9)
	assert.InDelta(t, 40.0, s.Entries[1].SharePct, 1e-9)
}

func TestComputeShare24hSumsWithoutTotals(t *testing.T) {
	snap := &models.Snapshot{}
	byTag := map[string]models.TagAggregate{
		"gaming": {Tag: "gaming", Views: 300},
		"news":   {Tag: "news", Views: 100},
	}

	got := ComputeShare(snap, byTag, Period24h)

	assert.Equal(t, 400.0, got.Value.TotalViews)
	assert.InDelta(t, 75.0, got.Value.Entries[0].SharePct, 1e-9)
}

func TestComputeShare7dFromVideos(t *testing.T) {
	snap := &models.Snapshot{
		Videos7d: []models.Row{
			{"tag": "gaming", "views": 100.0, "likes": 10.0, "comments": 1.0},
			{"tag": "gaming", "views": 200.0, "likes": 20.0, "comments": 2.0},
			{"tag": "", "views": 100.0},
		},
	}

	got := ComputeShare(snap, nil, Period7d)

	assert.False(t, got.Estimated)
	s := got.Value
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "gaming", s.Entries[0].Tag)
	assert.Equal(t, 2.0, s.Entries[0].Videos)
	assert.Equal(t, 300.0, s.Entries[0].Views)
	assert.Equal(t, "Geral", s.Entries[1].Tag, "untagged videos group under the default label")
	assert.Equal(t, 400.0, s.TotalViews)
}

func TestComputeShareEstimatedWithoutWindowVideos(t *testing.T) {
	snap := &models.Snapshot{
		Current: []models.Row{
			{"tag": "gaming", "views_24h": 100.0, "videos_24h": 2.0},
		},
	}

	got := ComputeShare(snap, nil, Period30d)

	assert.True(t, got.Estimated)
	require.Len(t, got.Value.Entries, 1)
	assert.Equal(t, 2000.0, got.Value.Entries[0].Views, "round(100*25*0.8)")
	assert.Equal(t, 56.0, got.Value.Entries[0].Videos, "round(2*28)")
	assert.InDelta(t, 100.0, got.Value.Entries[0].SharePct, 1e-9)
}

func TestFinishShareZeroViewsStaysFinite(t *testing.T) {
	s := finishShare(Share{Entries: []ShareEntry{{Tag: "quiet"}}})

	assert.Zero(t, s.Entries[0].SharePct)
}
