// Package normalize rebuilds the derived indexes over a loaded snapshot:
// coerced counters, the tag universe, and the per-tag 24h aggregate table.
// Normalization is total and idempotent; malformed input degrades to safe
// defaults and never raises an error.
package normalize

import (
	"sort"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/shared"
)

// NoTag is the sentinel group label assigned to channels without a tag. The
// value matches what the snapshot generator emits.
const NoTag = "sem_tag"

// Derived holds the indexes rebuilt wholesale on every load.
type Derived struct {
	// TagList is the sorted set of unique tag values across the
	// authoritative per-channel collection.
	TagList []string
	// ByTag24 maps tag to summed 24h counters.
	ByTag24 map[string]models.TagAggregate
}

var currentNumericFields = []string{
	"subscriber_count", "videos_24h", "views_24h", "likes_24h",
	"comments_24h", "engagement_rate",
}

var summaryNumericFields = []string{
	"subscriber_count", "videos_24h", "views_24h", "likes_24h",
	"comments_24h", "total_videos", "total_views", "total_likes",
	"total_comments", "engagement_rate_24h",
}

// Normalize coerces the channel-level collections in place and rebuilds the
// derived indexes.
func Normalize(snap *models.Snapshot) Derived {
	for _, r := range snap.Current {
		coerceRow(r, currentNumericFields)
	}
	for _, r := range snap.ChannelsSummary {
		coerceRow(r, summaryNumericFields)
	}

	return Derived{
		TagList: tagList(snap),
		ByTag24: byTag24(snap),
	}
}

func coerceRow(r models.Row, numericFields []string) {
	if r == nil {
		return
	}
	for _, f := range numericFields {
		r[f] = shared.SafeNumber(r[f])
	}
	r["tag"] = shared.SafeString(r["tag"], NoTag)
}

// tagList prefers the richer channel summary collection when present.
func tagList(snap *models.Snapshot) []string {
	source := snap.ChannelsSummary
	if len(source) == 0 {
		source = snap.Current
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, r := range source {
		tag := r.Str("tag")
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// byTag24 uses the pre-aggregated by-tag collection verbatim when the feed
// supplies one, otherwise groups the current collection by tag and sums.
func byTag24(snap *models.Snapshot) map[string]models.TagAggregate {
	out := make(map[string]models.TagAggregate)

	if byTag := snap.Tags24ByTag(); len(byTag) > 0 {
		for _, it := range byTag {
			tag := it.Str("tag")
			if tag == "" {
				continue
			}
			out[tag] = models.TagAggregate{
				Tag:      tag,
				Videos:   it.Number("videos"),
				Views:    it.Number("views"),
				Likes:    it.Number("likes"),
				Comments: it.Number("comments"),
			}
		}
		return out
	}

	for _, r := range snap.Current {
		tag := r.StrOr("tag", NoTag)
		agg := out[tag]
		agg.Tag = tag
		agg.Videos += r.Number("videos_24h")
		agg.Views += r.Number("views_24h")
		agg.Likes += r.Number("likes_24h")
		agg.Comments += r.Number("comments_24h")
		out[tag] = agg
	}
	return out
}
