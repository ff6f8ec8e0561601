package stats

import (
	"sort"

	"github.com/AI2HU/tubedash/internal/models"
)

// WindowTotals are the raw totals of one video window.
type WindowTotals struct {
	Videos         float64 `json:"videos"`
	Views          float64 `json:"views"`
	Likes          float64 `json:"likes"`
	Comments       float64 `json:"comments"`
	ActiveChannels int     `json:"active_channels"`
}

// AdminStats is the collection health report: totals per window, derived
// averages and day-normalized growth rates between windows.
type AdminStats struct {
	Window24h WindowTotals `json:"window_24h"`
	Window7d  WindowTotals `json:"window_7d"`
	Window30d WindowTotals `json:"window_30d"`

	AvgViewsPerVideo24h    float64 `json:"avg_views_per_video_24h"`
	GlobalEngagement24h    float64 `json:"global_engagement_24h"`
	AvgVideosPerChannel24h float64 `json:"avg_videos_per_channel_24h"`
	GrowthRate7dTo24h      float64 `json:"growth_rate_7d_to_24h"`
	GrowthRate30dTo7d      float64 `json:"growth_rate_30d_to_7d"`

	GroupStats               []GroupMetrics `json:"group_stats"`
	TopChannelsBySubscribers []models.Row   `json:"top_channels_by_subscribers"`
	TopChannelsByViews       []models.Row   `json:"top_channels_by_views"`
}

// ComputeAdminStats reduces the per-video windows into the admin report.
// Growth rates compare daily averages across windows and stay at 0 unless
// both windows have data.
func ComputeAdminStats(snap *models.Snapshot, tagList []string) AdminStats {
	s := AdminStats{
		Window24h: windowTotals(snap.Videos24),
		Window7d:  windowTotals(snap.Videos7d),
		Window30d: windowTotals(snap.Videos30d),
	}

	if s.Window24h.Videos > 0 {
		s.AvgViewsPerVideo24h = s.Window24h.Views / s.Window24h.Videos
	}
	s.GlobalEngagement24h = guardedRate(s.Window24h.Likes, s.Window24h.Comments, s.Window24h.Views)
	if s.Window24h.ActiveChannels > 0 {
		s.AvgVideosPerChannel24h = s.Window24h.Videos / float64(s.Window24h.ActiveChannels)
	}

	if s.Window24h.Views > 0 && s.Window7d.Views > 0 && s.Window7d.Videos > 0 {
		s.GrowthRate7dTo24h = (s.Window24h.Views/(s.Window7d.Views/7) - 1) * 100
	}
	if s.Window7d.Views > 0 && s.Window30d.Views > 0 && s.Window30d.Videos > 0 {
		s.GrowthRate30dTo7d = ((s.Window7d.Views / 7) / (s.Window30d.Views / 30) - 1) * 100
	}

	for _, tag := range tagList {
		s.GroupStats = append(s.GroupStats, ComputeGroupMetrics(tag, GroupChannels(snap.Current, tag)))
	}

	s.TopChannelsBySubscribers = topBy(snap.Current, "subscriber_count", 5)
	s.TopChannelsByViews = topBy(snap.Current, "views_24h", 5)
	return s
}

func windowTotals(videos []models.Row) WindowTotals {
	var t WindowTotals
	channels := make(map[string]struct{})

	for _, v := range videos {
		t.Videos++
		t.Views += v.Number("views")
		t.Likes += v.Number("likes")
		t.Comments += v.Number("comments")
		if name := v.Str("channel_name"); name != "" {
			channels[name] = struct{}{}
		}
	}
	t.ActiveChannels = len(channels)
	return t
}

// topBy returns the n highest rows by a numeric field, leaving the input
// untouched.
func topBy(rows []models.Row, key string, n int) []models.Row {
	sorted := make([]models.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number(key) > sorted[j].Number(key)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
