package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/tubedash/internal/loader"
	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/normalize"
	"github.com/AI2HU/tubedash/internal/query"
	"github.com/AI2HU/tubedash/internal/store"
)

func writeSnapshotDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data", name), []byte(content), 0644))
	}
	return dir
}

func newTestService(t *testing.T, files map[string]string, sources []loader.Source) *DashboardService {
	t.Helper()
	l := loader.New(loader.Options{
		Dir:        writeSnapshotDir(t, files),
		MaxRetries: 1,
		Sources:    sources,
	})
	return NewDashboardService(l, store.New())
}

// seedStore installs a snapshot directly, bypassing the loader, for tests that
// only exercise the read path.
func seedStore(svc *DashboardService, snap *models.Snapshot) {
	svc.store.Replace(snap, normalize.Normalize(snap), nil, 16)
}

func TestReload(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"current.json": `[
			{"channel_name":"Alpha","tag":"gaming","views_24h":500,"likes_24h":40,"comments_24h":10},
			{"channel_name":"Beta","tag":"news","views_24h":100,"likes_24h":5,"comments_24h":1}
		]`,
		"history.json": `[{"date":"2025-06-01","tag":"gaming","views":250}]`,
	}, []loader.Source{
		{Key: "current", Path: "data/current.json"},
		{Key: "history", Path: "data/history.json"},
	})

	require.NoError(t, svc.Reload(context.Background()))

	assert.Equal(t, []string{"gaming", "news"}, svc.TagList())
	assert.Equal(t, 2, svc.Status().Loaded)
	assert.Empty(t, svc.Status().FailedKeys)

	o := svc.Overview()
	assert.Equal(t, 2, o.Channels)
	assert.Equal(t, 600.0, o.Views24h)
}

func TestReloadSurfacesPartialFailures(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"current.json": `[{"channel_name":"Alpha","tag":"gaming"}]`,
	}, []loader.Source{
		{Key: "current", Path: "data/current.json"},
		{Key: "history", Path: "data/history.json"},
	})

	require.NoError(t, svc.Reload(context.Background()), "a missing file is not fatal")
	assert.Equal(t, []string{"history"}, svc.Status().FailedKeys)
	assert.Equal(t, 1, svc.Status().Loaded)
}

func TestReloadTotalFailureKeepsPreviousSnapshot(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"current.json": `[{"channel_name":"Alpha","tag":"gaming"}]`,
	}, []loader.Source{
		{Key: "current", Path: "data/current.json"},
	})
	require.NoError(t, svc.Reload(context.Background()))

	// Point the service at a loader whose directory has nothing in it.
	svc.loader = loader.New(loader.Options{
		Dir:        t.TempDir(),
		MaxRetries: 1,
		Sources:    []loader.Source{{Key: "current", Path: "data/current.json"}},
	})

	err := svc.Reload(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"gaming"}, svc.TagList(), "the last good snapshot stays live")
}

func TestReloadResetsSessionState(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"current.json": `[{"channel_name":"Alpha","tag":"gaming","views_24h":1}]`,
	}, []loader.Source{{Key: "current", Path: "data/current.json"}})
	require.NoError(t, svc.Reload(context.Background()))

	_, err := svc.Table(query.DatasetRanking, TableOptions{SortKey: "channel_name", SortDir: models.Asc, Tag: "gaming"})
	require.NoError(t, err)

	require.NoError(t, svc.Reload(context.Background()))

	view, err := svc.Table(query.DatasetRanking, TableOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.SortState{Key: "views_24h", Dir: models.Desc}, view.Sort)
	assert.Equal(t, models.Filter{}, view.Filter)
}

func TestTableAppliesInteraction(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0},
			{"channel_name": "Beta", "tag": "news", "views_24h": 500.0},
			{"channel_name": "Gamma", "tag": "gaming", "views_24h": 300.0},
		},
	})

	view, err := svc.Table(query.DatasetRanking, TableOptions{Tag: "gaming", SortKey: "views_24h", SortDir: models.Asc})

	require.NoError(t, err)
	assert.Equal(t, query.DatasetRanking, view.Dataset)
	assert.Equal(t, "24h", view.Period)
	require.Len(t, view.Result.Rows, 2)
	assert.Equal(t, "Alpha", view.Result.Rows[0].Str("channel_name"))
	assert.Equal(t, "Gamma", view.Result.Rows[1].Str("channel_name"))
	assert.Equal(t, models.Filter{Tag: "gaming"}, view.Filter)
}

func TestTableSessionStateSticks(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0},
			{"channel_name": "Beta", "tag": "news", "views_24h": 500.0},
		},
	})

	_, err := svc.Table(query.DatasetRanking, TableOptions{SortKey: "channel_name", SortDir: models.Asc})
	require.NoError(t, err)

	view, err := svc.Table(query.DatasetRanking, TableOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.SortState{Key: "channel_name", Dir: models.Asc}, view.Sort, "sort survives across requests")
}

func TestTableOmittedFilterClearsSessionFilter(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0},
			{"channel_name": "Beta", "tag": "news", "views_24h": 500.0},
		},
	})

	view, err := svc.Table(query.DatasetRanking, TableOptions{Tag: "gaming"})
	require.NoError(t, err)
	require.Len(t, view.Result.Rows, 1)

	view, err = svc.Table(query.DatasetRanking, TableOptions{})
	require.NoError(t, err)
	assert.Len(t, view.Result.Rows, 2, "a request without filter params carries an empty filter")
	assert.Equal(t, models.Filter{}, view.Filter)
}

func TestTableUnknownDataset(t *testing.T) {
	svc := NewDashboardService(nil, store.New())

	_, err := svc.Table("nope", TableOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestTableEstimatedFlagPropagates(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0, "videos_24h": 1.0},
		},
	})

	view, err := svc.Table(query.DatasetRanking, TableOptions{Period: "7d"})

	require.NoError(t, err)
	assert.True(t, view.Estimated, "a 7d ranking without window files is estimated")
	assert.Equal(t, "7d", view.Period)
}

func TestToggleSort(t *testing.T) {
	svc := NewDashboardService(nil, store.New())

	st, err := svc.ToggleSort(query.DatasetRanking, "views_24h")
	require.NoError(t, err)
	assert.Equal(t, models.SortState{Key: "views_24h", Dir: models.Asc}, st)

	_, err = svc.ToggleSort("nope", "views_24h")
	assert.Error(t, err)
}

func TestChannelTrendNormalizesDays(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{{"channel_name": "Alpha", "tag": "gaming", "views_24h": 10.0}},
	})

	got := svc.ChannelTrend("Alpha", "", 12)

	assert.True(t, got.Estimated)
	assert.Len(t, got.Value, 7, "anything other than 30 collapses to the 7 day window")
}

func TestExportCoversFullFilteredSet(t *testing.T) {
	rows := make([]models.Row, 0, 15)
	for i := 0; i < 15; i++ {
		rows = append(rows, models.Row{
			"title": "video", "channel_name": "Alpha", "tag": "gaming", "views": float64(i),
		})
	}
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{Videos24: rows})

	doc, err := svc.Export(query.DatasetVideos, "")

	require.NoError(t, err)
	assert.Equal(t, "videos_24h.csv", doc.Filename)
	lines := strings.Split(doc.Content, "\n")
	assert.Len(t, lines, 16, "header plus every row, never a single page")
}

func TestExportAppliesSessionFilter(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current: []models.Row{
			{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0},
			{"channel_name": "Beta", "tag": "news", "views_24h": 500.0},
		},
	})

	_, err := svc.Table(query.DatasetRanking, TableOptions{Tag: "gaming"})
	require.NoError(t, err)

	doc, err := svc.Export(query.DatasetRanking, "24h")
	require.NoError(t, err)

	assert.Contains(t, doc.Content, "Alpha")
	assert.NotContains(t, doc.Content, "Beta", "the session tag filter applies to exports")
}

func TestExportUnknownDataset(t *testing.T) {
	svc := NewDashboardService(nil, store.New())

	_, err := svc.Export("nope", "24h")
	assert.Error(t, err)
}

func TestExportShareAndWords(t *testing.T) {
	svc := NewDashboardService(nil, store.New())
	seedStore(svc, &models.Snapshot{
		Current:  []models.Row{{"channel_name": "Alpha", "tag": "gaming", "views_24h": 100.0, "videos_24h": 1.0}},
		Videos24: []models.Row{{"title": "gameplay incrível", "views": 100.0}},
	})

	share := svc.ExportShare("24h")
	assert.Equal(t, "share_by_tag_24h.csv", share.Filename)
	assert.Contains(t, share.Content, "gaming")

	words := svc.ExportTopWords()
	assert.Equal(t, "top_title_words_24h.csv", words.Filename)
	assert.Contains(t, words.Content, "gameplay")
}

func TestStatusReflectsLoad(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"current.json": `[]`,
	}, []loader.Source{{Key: "current", Path: "data/current.json"}})

	before := time.Now()
	require.NoError(t, svc.Reload(context.Background()))

	status := svc.Status()
	assert.Equal(t, 1, status.Loaded)
	assert.False(t, status.LoadedAt.Before(before))
}
