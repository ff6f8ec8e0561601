package export

import (
	"fmt"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/stats"
)

// Ranking renders the channel ranking under a resolved period window. Rows
// should be the filtered and sorted set, not a single page.
func Ranking(rows []models.Row, w stats.RankingWindow) Document {
	headers := []string{"channel", "tag", "subscribers", "videos", "views", "likes", "comments", "engagement_pct"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		f := stats.ResolveRankingFigures(r, w)
		data = append(data, []any{
			r.Str("channel_name"),
			r.Str("tag"),
			r.Number("subscriber_count"),
			f.Videos, f.Views, f.Likes, f.Comments, f.Engagement,
		})
	}
	return NewDocument(fmt.Sprintf("ranking_%s.csv", w.Period), CSV(headers, data))
}

// Videos renders the 24h video table.
func Videos(rows []models.Row) Document {
	headers := []string{"title", "channel", "tag", "views", "likes", "comments", "views_per_hour", "published_at"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Str("title"),
			r.Str("channel_name"),
			r.Str("tag"),
			r.Number("views"),
			r.Number("likes"),
			r.Number("comments"),
			r.Number("views_per_hour"),
			r.Str("published_at"),
		})
	}
	return NewDocument("videos_24h.csv", CSV(headers, data))
}

// Share renders the per-tag view share breakdown of one period.
func Share(s stats.Share) Document {
	headers := []string{"tag", "videos", "views", "likes", "comments", "share_views_pct"}

	data := make([][]any, 0, len(s.Entries))
	for _, e := range s.Entries {
		data = append(data, []any{e.Tag, e.Videos, e.Views, e.Likes, e.Comments, e.SharePct})
	}
	return NewDocument(fmt.Sprintf("share_by_tag_%s.csv", s.Period), CSV(headers, data))
}

// Predictions renders the performance prediction rows.
func Predictions(rows []models.Row) Document {
	headers := []string{"channel", "predicted_views", "performance_ratio", "confidence_score", "trend"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Str("channel_name"),
			r.Number("predicted_views"),
			r.Number("performance_ratio"),
			r.Number("confidence_score"),
			r.Str("trend"),
		})
	}
	return NewDocument("performance_predictions.csv", CSV(headers, data))
}

// Periods renders the period comparison rows with their nested change block.
func Periods(rows []models.Row) Document {
	headers := []string{"channel", "views_7d", "views_30d", "views_change_pct", "likes_change_pct", "videos_change_pct"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		changes := r.Sub("changes")
		data = append(data, []any{
			r.Str("channel_name"),
			r.Sub("7d").Number("views"),
			r.Sub("30d").Number("views"),
			changes.Signed("views_change"),
			changes.Signed("likes_change"),
			changes.Signed("videos_change"),
		})
	}
	return NewDocument("period_comparisons.csv", CSV(headers, data))
}

// Benchmark renders the benchmark channel rows.
func Benchmark(rows []models.Row) Document {
	headers := []string{"channel", "total_views", "total_videos", "engagement_rate", "subscriber_count"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Str("channel_name"),
			r.Number("total_views"),
			r.Number("total_videos"),
			r.Number("engagement_rate"),
			r.Number("subscriber_count"),
		})
	}
	return NewDocument("benchmark_channels.csv", CSV(headers, data))
}

// Keywords renders the keyword analysis rows.
func Keywords(rows []models.Row) Document {
	headers := []string{"keyword", "total_matches", "total_views", "avg_views_per_match", "last_search"}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Str("keyword"),
			r.Number("total_matches"),
			r.Number("total_views"),
			r.Number("avg_views_per_match"),
			r.Str("last_search"),
		})
	}
	return NewDocument("keyword_analysis.csv", CSV(headers, data))
}

// TopWords renders the title word analysis.
func TopWords(words []stats.WordStat) Document {
	headers := []string{"rank", "word", "matches", "total_views", "avg_views"}

	data := make([][]any, 0, len(words))
	for i, w := range words {
		data = append(data, []any{i + 1, w.Word, w.Matches, w.TotalViews, w.AvgViews})
	}
	return NewDocument("top_title_words_24h.csv", CSV(headers, data))
}
