package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AI2HU/tubedash/internal/export"
	"github.com/AI2HU/tubedash/internal/loader"
	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/normalize"
	"github.com/AI2HU/tubedash/internal/query"
	"github.com/AI2HU/tubedash/internal/stats"
	"github.com/AI2HU/tubedash/internal/store"
)

// DashboardService provides business logic for the dashboard: snapshot
// lifecycle, table views, projections and exports.
type DashboardService struct {
	loader *loader.Loader
	store  *store.Store
	state  *query.State
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(l *loader.Loader, st *store.Store) *DashboardService {
	return &DashboardService{loader: l, store: st, state: query.NewState()}
}

// Reload fetches a fresh snapshot, normalizes it and swaps it into the store.
// Partial failures are tolerated; only a snapshot with zero loaded sources is
// an error, and in that case the previous snapshot stays live.
func (s *DashboardService) Reload(ctx context.Context) error {
	start := time.Now()

	res, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	derived := normalize.Normalize(res.Snapshot)
	s.store.Replace(res.Snapshot, derived, res.FailedKeys(), res.Loaded)
	s.state.Reset()

	logger.Info("Snapshot reloaded in %v (%d sources failed)", time.Since(start).Round(time.Millisecond), len(res.Failed))
	return nil
}

// Status returns the load status of the current snapshot.
func (s *DashboardService) Status() models.LoadStatus {
	return s.store.Status()
}

// Metadata returns the snapshot metadata block.
func (s *DashboardService) Metadata() models.Metadata {
	return s.store.Snapshot().Metadata
}

// TagList returns the known tags, sorted.
func (s *DashboardService) TagList() []string {
	return s.store.TagList()
}

// Overview returns the dashboard KPI header.
func (s *DashboardService) Overview() stats.Overview {
	return stats.ComputeOverview(s.store.Snapshot(), s.store.TagList(), s.store.ByTag24())
}

// TableOptions carries one table interaction. Sort and page are sticky: zero
// values leave the session state untouched. Tag and Search carry the full
// filter state of the request, so omitting them clears a previous filter.
type TableOptions struct {
	Period  string
	Tag     string
	Search  string
	SortKey string
	SortDir string
	Page    int
}

// TableView is one materialized table page plus the session state it was
// rendered under.
type TableView struct {
	Dataset   string            `json:"dataset"`
	Period    string            `json:"period,omitempty"`
	Result    models.ViewResult `json:"result"`
	Sort      models.SortState  `json:"sort"`
	Filter    models.Filter     `json:"filter"`
	Estimated bool              `json:"estimated,omitempty"`
}

// Table materializes one page of a registered dataset, applying the
// interaction carried in opts to the session state first.
func (s *DashboardService) Table(name string, opts TableOptions) (TableView, error) {
	ds, ok := query.Get(name)
	if !ok {
		return TableView{}, fmt.Errorf("unknown dataset: %s", name)
	}

	if opts.SortKey != "" || opts.SortDir != "" {
		s.state.SetSort(name, opts.SortKey, opts.SortDir)
	}
	s.state.SetFilter(name, models.Filter{Tag: opts.Tag, Search: opts.Search})
	if opts.Page > 0 {
		s.state.SetPage(name, opts.Page)
	}

	rows, window := s.datasetRows(name, opts.Period)

	view := TableView{
		Dataset:   name,
		Period:    window.Period,
		Sort:      s.state.Sort(name),
		Filter:    s.state.Filter(name),
		Estimated: window.Estimated,
	}
	view.Result = query.View(rows, ds, view.Sort, view.Filter, s.state.Page(name))
	return view, nil
}

// ToggleSort applies a sort-header click and returns the resulting state.
func (s *DashboardService) ToggleSort(name, key string) (models.SortState, error) {
	if _, ok := query.Get(name); !ok {
		return models.SortState{}, fmt.Errorf("unknown dataset: %s", name)
	}
	return s.state.ToggleSort(name, key), nil
}

// datasetRows resolves the row source of a dataset. Only the ranking dataset
// is period-sensitive; everything else has a single backing collection.
func (s *DashboardService) datasetRows(name, period string) ([]models.Row, stats.RankingWindow) {
	snap := s.store.Snapshot()

	switch name {
	case query.DatasetRanking:
		w := stats.ResolveRankingWindow(snap, period)
		return w.Rows, w
	case query.DatasetVideos:
		return snap.Videos24, stats.RankingWindow{}
	case query.DatasetTop:
		w := stats.ResolveRankingWindow(snap, stats.PeriodHistorical)
		return w.Rows, w
	case query.DatasetBenchmark:
		return snap.BenchmarkChannels(), stats.RankingWindow{}
	case query.DatasetPredictions:
		return snap.PredictionRows(), stats.RankingWindow{}
	case query.DatasetPeriods:
		return snap.PeriodRows(), stats.RankingWindow{}
	case query.DatasetKeywords:
		return snap.KeywordRows(), stats.RankingWindow{}
	default:
		return nil, stats.RankingWindow{}
	}
}

// PredictionSummary returns the prediction tab KPIs.
func (s *DashboardService) PredictionSummary() stats.PredictionSummary {
	return stats.ComputePredictionSummary(s.store.Snapshot().PredictionRows())
}

// PeriodSummary returns the period comparison tab KPIs.
func (s *DashboardService) PeriodSummary() stats.PeriodSummary {
	return stats.ComputePeriodSummary(s.store.Snapshot().PeriodRows())
}

// BenchmarkSummary returns the benchmark tab KPIs.
func (s *DashboardService) BenchmarkSummary() stats.BenchmarkSummary {
	return stats.ComputeBenchmarkSummary(s.store.Snapshot().BenchmarkChannels())
}

// KeywordSummary returns the keyword tab KPIs.
func (s *DashboardService) KeywordSummary() stats.KeywordSummary {
	return stats.ComputeKeywordSummary(s.store.Snapshot().KeywordRows())
}

// GroupMetrics returns the 24h aggregates of one tag group.
func (s *DashboardService) GroupMetrics(tag string) stats.GroupMetrics {
	snap := s.store.Snapshot()
	return stats.ComputeGroupMetrics(tag, stats.GroupChannels(snap.Current, tag))
}

// Share returns the per-tag view share for a period.
func (s *DashboardService) Share(period string) models.Estimated[stats.Share] {
	return stats.ComputeShare(s.store.Snapshot(), s.store.ByTag24(), period)
}

// TagTrend returns the per-tag metric evolution over the trailing history.
func (s *DashboardService) TagTrend(metric string, rangeDays int) stats.TagTrend {
	if metric == "" {
		metric = "views"
	}
	return stats.ComputeTagTrend(s.store.Snapshot().History, metric, rangeDays)
}

// ChannelTrend returns the dated metric series of one channel.
func (s *DashboardService) ChannelTrend(channelName, metric string, days int) models.Estimated[[]stats.TrendPoint] {
	if metric == "" {
		metric = "views"
	}
	if days != 30 {
		days = 7
	}
	return stats.ComputeChannelTrend(s.store.Snapshot(), channelName, metric, days, time.Now())
}

// TopWords returns the 24h title word analysis.
func (s *DashboardService) TopWords() []stats.WordStat {
	return stats.TopWords(s.store.Snapshot().Videos24)
}

// AdminStats returns the collection health report.
func (s *DashboardService) AdminStats() stats.AdminStats {
	return stats.ComputeAdminStats(s.store.Snapshot(), s.store.TagList())
}

// Export renders a dataset as CSV. The current session filter and sort apply
// but pagination does not: exports always cover the full filtered set.
func (s *DashboardService) Export(name, period string) (export.Document, error) {
	ds, ok := query.Get(name)
	if !ok {
		return export.Document{}, fmt.Errorf("unknown dataset: %s", name)
	}

	rows, window := s.datasetRows(name, period)
	rows = query.Sort(query.Filter(rows, ds, s.state.Filter(name)), ds, s.state.Sort(name))

	switch name {
	case query.DatasetRanking, query.DatasetTop:
		return export.Ranking(rows, window), nil
	case query.DatasetVideos:
		return export.Videos(rows), nil
	case query.DatasetPredictions:
		return export.Predictions(rows), nil
	case query.DatasetPeriods:
		return export.Periods(rows), nil
	case query.DatasetBenchmark:
		return export.Benchmark(rows), nil
	case query.DatasetKeywords:
		return export.Keywords(rows), nil
	default:
		return export.Document{}, fmt.Errorf("dataset has no exporter: %s", name)
	}
}

// ExportShare renders the share-by-tag breakdown of one period as CSV.
func (s *DashboardService) ExportShare(period string) export.Document {
	return export.Share(s.Share(period).Value)
}

// ExportTopWords renders the title word analysis as CSV.
func (s *DashboardService) ExportTopWords() export.Document {
	return export.TopWords(s.TopWords())
}
