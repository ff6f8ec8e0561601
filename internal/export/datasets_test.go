package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/stats"
)

func TestRankingExport(t *testing.T) {
	rows := []models.Row{
		{"channel_name": "Alpha", "tag": "gaming", "subscriber_count": 1000.0,
			"videos_24h": 2.0, "views_24h": 500.0, "likes_24h": 40.0, "comments_24h": 10.0},
	}
	w := stats.RankingWindow{Period: stats.Period24h, Suffix: "_24h"}

	doc := Ranking(rows, w)

	assert.Equal(t, "ranking_24h.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"channel","tag","subscribers","videos","views","likes","comments","engagement_pct"`, lines[0])
	assert.Equal(t, `"Alpha","gaming","1000","2","500","40","10","10"`, lines[1])
}

func TestPeriodsExportKeepsNegativeChanges(t *testing.T) {
	rows := []models.Row{
		{
			"channel_name": "Falling",
			"7d":           map[string]any{"views": 700.0},
			"30d":          map[string]any{"views": 3000.0},
			"changes":      map[string]any{"views_change": -42.5, "likes_change": 5.0, "videos_change": 0.0},
		},
	}

	doc := Periods(rows)

	assert.Equal(t, "period_comparisons.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Falling","700","3000","-42.5","5","0"`, lines[1], "change percentages keep their sign")
}

func TestShareExport(t *testing.T) {
	doc := Share(stats.Share{
		Period:     stats.Period7d,
		TotalViews: 400,
		Entries: []stats.ShareEntry{
			{Tag: "gaming", Videos: 3, Views: 300, Likes: 30, Comments: 3, SharePct: 75},
			{Tag: "news", Videos: 1, Views: 100, Likes: 10, Comments: 1, SharePct: 25},
		},
	})

	assert.Equal(t, "share_by_tag_7d.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"gaming","3","300","30","3","75"`, lines[1])
}

func TestTopWordsExportIsRanked(t *testing.T) {
	doc := TopWords([]stats.WordStat{
		{Word: "gameplay", Matches: 3, TotalViews: 1500, AvgViews: 500},
		{Word: "live", Matches: 1, TotalViews: 400, AvgViews: 400},
	})

	assert.Equal(t, "top_title_words_24h.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"1","gameplay","3","1500","500"`, lines[1])
	assert.Equal(t, `"2","live","1","400","400"`, lines[2])
}

func TestVideosExport(t *testing.T) {
	doc := Videos([]models.Row{
		{"title": `He said "go"`, "channel_name": "Alpha", "tag": "gaming",
			"views": 100.0, "likes": 10.0, "comments": 1.0, "views_per_hour": 12.5,
			"published_at": "2025-06-01T10:00:00Z"},
	})

	assert.Equal(t, "videos_24h.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"He said ""go""","Alpha","gaming","100","10","1","12.5","2025-06-01T10:00:00Z"`, lines[1])
}
