package query

import (
	"strconv"
	"strings"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/stats"
)

// Dataset describes one tabular view: how to resolve sort keys, what the
// default ordering is, and which fields filtering and search run against.
// Adding a table is a registry entry, not new branching in the engine.
type Dataset struct {
	Name         string
	DefaultSort  models.SortState
	SearchFields []string
	FilterByTag  bool
	PageSize     int
	Accessor     func(r models.Row, key string) Value
}

// Registered dataset names.
const (
	DatasetRanking     = "ranking"
	DatasetVideos      = "videos"
	DatasetTop         = "top"
	DatasetBenchmark   = "benchmark"
	DatasetPredictions = "predictions"
	DatasetPeriods     = "periods"
	DatasetKeywords    = "keywords"
)

// DefaultVideoPageSize is the fixed page size of the video list.
const DefaultVideoPageSize = 10

var registry = map[string]Dataset{
	DatasetRanking: {
		Name:         DatasetRanking,
		DefaultSort:  models.SortState{Key: "views_24h", Dir: models.Desc},
		SearchFields: []string{"channel_name"},
		FilterByTag:  true,
		Accessor:     rankingValue,
	},
	DatasetVideos: {
		Name:         DatasetVideos,
		DefaultSort:  models.SortState{Key: "views_per_hour", Dir: models.Desc},
		SearchFields: []string{"title", "channel_name"},
		FilterByTag:  true,
		PageSize:     DefaultVideoPageSize,
		Accessor:     videoValue,
	},
	DatasetTop: {
		Name:         DatasetTop,
		DefaultSort:  models.SortState{Key: "total_views", Dir: models.Desc},
		SearchFields: []string{"channel_name"},
		FilterByTag:  true,
		Accessor:     genericValue,
	},
	DatasetBenchmark: {
		Name:         DatasetBenchmark,
		DefaultSort:  models.SortState{Key: "total_views", Dir: models.Desc},
		SearchFields: []string{"channel_name"},
		FilterByTag:  true,
		Accessor:     genericValue,
	},
	DatasetPredictions: {
		Name:         DatasetPredictions,
		DefaultSort:  models.SortState{Key: "performance_ratio", Dir: models.Desc},
		SearchFields: []string{"channel_name"},
		FilterByTag:  true,
		Accessor:     predictionValue,
	},
	DatasetPeriods: {
		Name:         DatasetPeriods,
		DefaultSort:  models.SortState{Key: "views_change", Dir: models.Desc},
		SearchFields: []string{"channel_name"},
		FilterByTag:  true,
		Accessor:     periodValue,
	},
	DatasetKeywords: {
		Name:         DatasetKeywords,
		DefaultSort:  models.SortState{Key: "total_views", Dir: models.Desc},
		SearchFields: []string{"keyword"},
		Accessor:     genericValue,
	},
}

// Get returns a registered dataset.
func Get(name string) (Dataset, bool) {
	ds, ok := registry[name]
	return ds, ok
}

// MustGet returns a registered dataset and panics on unknown names. The
// registry is static, so an unknown name is a programming error.
func MustGet(name string) Dataset {
	ds, ok := registry[name]
	if !ok {
		panic("query: unknown dataset " + name)
	}
	return ds
}

// genericValue resolves a stored field: numbers order numerically (numeric
// strings included), other strings order case-insensitively, anything else
// resolves to 0.
func genericValue(r models.Row, key string) Value {
	switch v := r[key].(type) {
	case nil:
		return Num(0)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return Num(n)
		}
		return Str(v)
	default:
		return Num(toNumber(v))
	}
}

func rankingValue(r models.Row, key string) Value {
	switch key {
	case "engagement":
		return Num(stats.Engagement(
			r.Number("likes_24h"), r.Number("comments_24h"), r.Number("views_24h")))
	case "published_at":
		return timeValue(r, key)
	default:
		return genericValue(r, key)
	}
}

func videoValue(r models.Row, key string) Value {
	switch key {
	case "title", "channel_name", "tag":
		return Str(r.Str(key))
	case "views", "likes", "comments", "views_per_hour", "channel_avg_views":
		return Num(toNumber(r[key]))
	case "published_at":
		return timeValue(r, key)
	default:
		return Num(0)
	}
}

func predictionValue(r models.Row, key string) Value {
	switch key {
	case "performance_ratio", "confidence_score", "daily_avg_views", "historical_avg_views":
		return Num(toNumber(r[key]))
	case "performance_category":
		return Str(r.Str(key))
	default:
		return genericValue(r, key)
	}
}

// periodValue resolves the nested period comparison layout: the per-window
// blocks live under "7d"/"30d" and the deltas under "changes". Change values
// may be negative and must order that way.
func periodValue(r models.Row, key string) Value {
	switch key {
	case "views_7d":
		return Num(toNumber(r.Sub("7d")["avg_views"]))
	case "views_30d":
		return Num(toNumber(r.Sub("30d")["avg_views"]))
	case "engagement_7d":
		return Num(toNumber(r.Sub("7d")["engagement_rate"]))
	case "engagement_30d":
		return Num(toNumber(r.Sub("30d")["engagement_rate"]))
	case "views_change":
		return Num(toNumber(r.Sub("changes")["views_change"]))
	case "engagement_change":
		return Num(toNumber(r.Sub("changes")["engagement_change"]))
	default:
		return genericValue(r, key)
	}
}

func timeValue(r models.Row, key string) Value {
	t := r.Time(key)
	if t.IsZero() {
		return Num(0)
	}
	return Num(float64(t.UnixMilli()))
}
