// Package loader fetches the fixed set of snapshot files and decodes them
// into an in-memory Snapshot. All sources are fetched concurrently with an
// all-settled join: one file failing never aborts its siblings, and only a
// batch with zero successes is fatal.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/models"
)

// Retry configuration defaults.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
	MaxRetryDelay     = 5 * time.Second
)

// Source is one (logical key, relative path) snapshot file.
type Source struct {
	Key  string
	Path string
}

// DefaultSources returns the fixed snapshot file list.
func DefaultSources() []Source {
	return []Source{
		{Key: "current", Path: "data/current.json"},
		{Key: "history", Path: "data/history.json"},
		{Key: "metadata", Path: "data/metadata.json"},
		{Key: "rankings", Path: "data/rankings.json"},
		{Key: "rankings_30d", Path: "data/rankings_30d.json"},
		{Key: "channels_summary", Path: "data/channels_summary.json"},
		{Key: "tags_24h", Path: "data/tags_24h.json"},
		{Key: "videos_24h", Path: "data/videos_24h.json"},
		{Key: "videos_7d", Path: "data/videos_7d.json"},
		{Key: "videos_30d", Path: "data/videos_30d.json"},
		{Key: "trend_by_channel_7d", Path: "data/trend_by_channel_7d.json"},
		{Key: "trend_by_channel_30d", Path: "data/trend_by_channel_30d.json"},
		{Key: "benchmark_data", Path: "data/benchmark_data.json"},
		{Key: "performance_predictions", Path: "data/performance_predictions.json"},
		{Key: "period_comparisons", Path: "data/period_comparisons.json"},
		{Key: "keyword_analysis", Path: "data/keyword_analysis.json"},
	}
}

// Options configures a Loader.
type Options struct {
	// BaseURL is the HTTP root the snapshot paths are resolved against.
	// When empty, Dir is used and files are read from disk.
	BaseURL string
	// Dir is the local snapshot root for directory mode.
	Dir string
	// MaxRetries is the per-source attempt budget.
	MaxRetries int
	// RetryDelay is the first retry delay; it doubles per attempt and is
	// capped at MaxRetryDelay.
	RetryDelay time.Duration
	// RequestsPerSecond throttles outgoing fetches. Zero means unlimited.
	RequestsPerSecond float64
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
	// Sources overrides the default file list, mainly for tests.
	Sources []Source
}

// FailedSource records one source that exhausted its retry budget.
type FailedSource struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// Result is the partitioned outcome of one load.
type Result struct {
	Snapshot *models.Snapshot
	Failed   []FailedSource
	Loaded   int
}

// FailedKeys returns the sorted logical keys that failed to load.
func (r *Result) FailedKeys() []string {
	keys := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}

// AllFailedError is returned when not a single snapshot file could be loaded.
// The application has nothing to render in that case.
type AllFailedError struct {
	Keys []string
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("no snapshot file could be loaded (%d failed: %s)",
		len(e.Keys), strings.Join(e.Keys, ", "))
}

// Loader retrieves snapshot files over HTTP or from a local directory.
type Loader struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
	sources []Source
}

// New creates a loader.
func New(opts Options) *Loader {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 4)
	}

	sources := opts.Sources
	if len(sources) == 0 {
		sources = DefaultSources()
	}

	return &Loader{
		opts:    opts,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: limiter,
		sources: sources,
	}
}

// Load fetches every source concurrently and decodes the successes into a
// Snapshot. It returns an AllFailedError when zero sources succeed; partial
// failure is reported through Result.Failed only.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	var (
		mu     sync.Mutex
		raw    = make(map[string][]byte, len(l.sources))
		failed []FailedSource
	)

	// The group context is not used for the fetches themselves: a failed
	// source must never cancel its siblings.
	g := new(errgroup.Group)
	for _, src := range l.sources {
		src := src
		g.Go(func() error {
			data, err := l.fetch(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warning("Snapshot %s failed: %v", src.Key, err)
				failed = append(failed, FailedSource{Key: src.Key, Err: err})
				return nil
			}
			raw[src.Key] = data
			return nil
		})
	}
	_ = g.Wait()

	if len(raw) == 0 {
		keys := make([]string, 0, len(failed))
		for _, f := range failed {
			keys = append(keys, f.Key)
		}
		sort.Strings(keys)
		return nil, &AllFailedError{Keys: keys}
	}

	snap := &models.Snapshot{}
	for key, data := range raw {
		if err := decodeSource(snap, key, data); err != nil {
			logger.Warning("Snapshot %s decode failed: %v", key, err)
			failed = append(failed, FailedSource{Key: key, Err: err})
			delete(raw, key)
		}
	}
	if len(raw) == 0 {
		keys := make([]string, 0, len(failed))
		for _, f := range failed {
			keys = append(keys, f.Key)
		}
		sort.Strings(keys)
		return nil, &AllFailedError{Keys: keys}
	}

	sort.Slice(failed, func(i, j int) bool { return failed[i].Key < failed[j].Key })

	if len(failed) > 0 {
		logger.Warning("Loaded %d/%d snapshot files, %d failed",
			len(raw), len(l.sources), len(failed))
	} else {
		logger.Info("Loaded all %d snapshot files", len(raw))
	}

	return &Result{Snapshot: snap, Failed: failed, Loaded: len(raw)}, nil
}

// fetch retrieves one source with bounded retries and exponential backoff.
func (l *Loader) fetch(ctx context.Context, src Source) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= l.opts.MaxRetries; attempt++ {
		data, err := l.fetchOnce(ctx, src)
		if err == nil {
			if attempt > 1 {
				logger.Debug("Snapshot %s succeeded on attempt %d", src.Key, attempt)
			}
			return data, nil
		}
		lastErr = err

		if attempt < l.opts.MaxRetries {
			delay := l.opts.RetryDelay << (attempt - 1)
			if delay > MaxRetryDelay {
				delay = MaxRetryDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", l.opts.MaxRetries, lastErr)
}

func (l *Loader) fetchOnce(ctx context.Context, src Source) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if l.opts.Dir != "" {
		return os.ReadFile(filepath.Join(l.opts.Dir, filepath.FromSlash(src.Path)))
	}

	url := strings.TrimRight(l.opts.BaseURL, "/") + "/" + src.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// decodeSource unmarshals one file into its Snapshot field.
func decodeSource(snap *models.Snapshot, key string, data []byte) error {
	switch key {
	case "current":
		return json.Unmarshal(data, &snap.Current)
	case "history":
		return json.Unmarshal(data, &snap.History)
	case "metadata":
		return json.Unmarshal(data, &snap.Metadata)
	case "rankings":
		return json.Unmarshal(data, &snap.Rankings)
	case "rankings_30d":
		return json.Unmarshal(data, &snap.Rankings30d)
	case "channels_summary":
		return json.Unmarshal(data, &snap.ChannelsSummary)
	case "tags_24h":
		return json.Unmarshal(data, &snap.Tags24)
	case "videos_24h":
		return json.Unmarshal(data, &snap.Videos24)
	case "videos_7d":
		return json.Unmarshal(data, &snap.Videos7d)
	case "videos_30d":
		return json.Unmarshal(data, &snap.Videos30d)
	case "trend_by_channel_7d":
		return json.Unmarshal(data, &snap.TrendByChannel7)
	case "trend_by_channel_30d":
		return json.Unmarshal(data, &snap.TrendByChannel30)
	case "benchmark_data":
		return json.Unmarshal(data, &snap.BenchmarkData)
	case "performance_predictions":
		return json.Unmarshal(data, &snap.Predictions)
	case "period_comparisons":
		return json.Unmarshal(data, &snap.PeriodComparison)
	case "keyword_analysis":
		return json.Unmarshal(data, &snap.KeywordAnalysis)
	default:
		return fmt.Errorf("unknown snapshot key: %s", key)
	}
}
