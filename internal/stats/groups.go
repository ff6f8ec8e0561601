package stats

import "github.com/AI2HU/tubedash/internal/models"

// GroupMetrics aggregates the 24h counters of one channel group. Averages
// always divide by the channel count, never by the record count.
type GroupMetrics struct {
	Group            string  `json:"group"`
	TotalChannels    int     `json:"total_channels"`
	TotalSubscribers float64 `json:"total_subscribers"`
	TotalVideos24h   float64 `json:"total_videos_24h"`
	TotalViews24h    float64 `json:"total_views_24h"`
	TotalLikes24h    float64 `json:"total_likes_24h"`
	TotalComments24h float64 `json:"total_comments_24h"`
	AvgSubscribers   float64 `json:"avg_subscribers"`
	AvgVideos24h     float64 `json:"avg_videos_24h"`
	AvgViews24h      float64 `json:"avg_views_24h"`
	AvgLikes24h      float64 `json:"avg_likes_24h"`
	AvgComments24h   float64 `json:"avg_comments_24h"`
	EngagementRate   float64 `json:"engagement_rate"`
}

// ComputeGroupMetrics reduces the per-channel 24h rows of one group.
func ComputeGroupMetrics(group string, channels []models.Row) GroupMetrics {
	m := GroupMetrics{Group: group, TotalChannels: len(channels)}

	for _, c := range channels {
		m.TotalSubscribers += c.Number("subscriber_count")
		m.TotalVideos24h += c.Number("videos_24h")
		m.TotalViews24h += c.Number("views_24h")
		m.TotalLikes24h += c.Number("likes_24h")
		m.TotalComments24h += c.Number("comments_24h")
	}

	if m.TotalChannels > 0 {
		n := float64(m.TotalChannels)
		m.AvgSubscribers = m.TotalSubscribers / n
		m.AvgVideos24h = m.TotalVideos24h / n
		m.AvgViews24h = m.TotalViews24h / n
		m.AvgLikes24h = m.TotalLikes24h / n
		m.AvgComments24h = m.TotalComments24h / n
	}

	m.EngagementRate = guardedRate(m.TotalLikes24h, m.TotalComments24h, m.TotalViews24h)
	return m
}

// WindowMetrics aggregates per-channel-per-date trend rows over one window
// (7d or 30d), either for a single channel or a whole group.
type WindowMetrics struct {
	TotalVideos    float64 `json:"total_videos"`
	TotalViews     float64 `json:"total_views"`
	TotalLikes     float64 `json:"total_likes"`
	TotalComments  float64 `json:"total_comments"`
	AvgViews       float64 `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
	Channels       int     `json:"channels"`
}

// ComputeChannelWindow reduces the trend rows of a single channel.
func ComputeChannelWindow(trend []models.Row, channelName string) WindowMetrics {
	var m WindowMetrics
	for _, r := range trend {
		if r.Str("channel_name") != channelName {
			continue
		}
		m.TotalVideos += r.Number("videos")
		m.TotalViews += r.Number("views")
		m.TotalLikes += r.Number("likes")
		m.TotalComments += r.Number("comments")
	}
	m.EngagementRate = guardedRate(m.TotalLikes, m.TotalComments, m.TotalViews)
	return m
}

// ComputeGroupWindow reduces the trend rows of one tag group. The views
// average divides by the number of distinct channels in the group.
func ComputeGroupWindow(trend []models.Row, tag string) WindowMetrics {
	var m WindowMetrics
	channels := make(map[string]struct{})

	for _, r := range trend {
		if r.Str("tag") != tag {
			continue
		}
		m.TotalVideos += r.Number("videos")
		m.TotalViews += r.Number("views")
		m.TotalLikes += r.Number("likes")
		m.TotalComments += r.Number("comments")
		if id := r.Str("channel_id"); id != "" {
			channels[id] = struct{}{}
		}
	}

	m.Channels = len(channels)
	if m.Channels > 0 {
		m.AvgViews = m.TotalViews / float64(m.Channels)
	}
	m.EngagementRate = guardedRate(m.TotalLikes, m.TotalComments, m.TotalViews)
	return m
}

// GroupChannels selects the current rows belonging to one tag.
func GroupChannels(current []models.Row, tag string) []models.Row {
	var out []models.Row
	for _, c := range current {
		if c.Str("tag") == tag {
			out = append(out, c)
		}
	}
	return out
}
