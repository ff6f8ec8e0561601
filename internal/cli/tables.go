package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/query"
	"github.com/AI2HU/tubedash/internal/services"
	"github.com/AI2HU/tubedash/internal/shared"
	"github.com/AI2HU/tubedash/internal/stats"
)

var (
	tablePeriod string
	tableTag    string
	tableSearch string
	tableSort   string
	tableDir    string
	tablePage   int
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the channel ranking",
	RunE:  runRanking,
}

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Show the 24h video list",
	RunE:  runVideos,
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the historical top channels",
	RunE:  runTopChannels,
}

var predictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "Show the performance predictions",
	RunE:  runPredictions,
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Show the period comparisons",
	RunE:  runPeriods,
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Show the benchmark channels",
	RunE:  runBenchmark,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the keyword analysis",
	RunE:  runKeywords,
}

func init() {
	for _, cmd := range []*cobra.Command{rankingCmd, videosCmd, topCmd, predictionsCmd, periodsCmd, benchmarkCmd, keywordsCmd} {
		cmd.Flags().StringVarP(&tableTag, "tag", "t", "", "Filter by tag (exact match)")
		cmd.Flags().StringVarP(&tableSearch, "search", "q", "", "Free-text filter")
		cmd.Flags().StringVarP(&tableSort, "sort", "s", "", "Sort key (defaults per table)")
		cmd.Flags().StringVarP(&tableDir, "dir", "d", "", "Sort direction (asc|desc)")
		cmd.Flags().IntVar(&tablePage, "page", 0, "Page number")
	}
	rankingCmd.Flags().StringVarP(&tablePeriod, "period", "P", "24h", "Ranking period (24h|7d|30d|historical)")
}

// loadSnapshot fetches the snapshot once for a one-shot CLI command.
func loadSnapshot() error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Snapshots.Timeout+time.Minute)
	defer cancel()
	return dashboard.Reload(ctx)
}

func tableOptions() services.TableOptions {
	return services.TableOptions{
		Period:  tablePeriod,
		Tag:     tableTag,
		Search:  tableSearch,
		SortKey: tableSort,
		SortDir: tableDir,
		Page:    tablePage,
	}
}

func fetchTable(dataset string) (services.TableView, error) {
	if err := loadSnapshot(); err != nil {
		return services.TableView{}, err
	}
	return dashboard.Table(dataset, tableOptions())
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func printTableFooter(view services.TableView) {
	fmt.Printf("%sPage %d/%d, %d rows total%s\n",
		DimStyle, view.Result.Page, view.Result.TotalPages, view.Result.TotalCount, Reset)
	if view.Estimated {
		fmt.Printf("%s⚠ Figures for this period are estimated from 24h data%s\n", WarningStyle, Reset)
	}
}

func runRanking(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetRanking)
	if err != nil {
		return err
	}

	window := stats.ResolveRankingWindow(snapStore.Snapshot(), view.Period)

	fmt.Printf("%s🏆 Channel Ranking (%s)%s\n", HeaderStyle, view.Period, Reset)
	t := newTable(table.Row{"#", "Channel", "Tag", "Subs", "Videos", "Views", "Likes", "Comments", "Engagement"})
	for i, r := range view.Result.Rows {
		f := stats.ResolveRankingFigures(r, window)
		t.AppendRow(table.Row{
			(view.Result.Page-1)*len(view.Result.Rows) + i + 1,
			r.Str("channel_name"),
			r.Str("tag"),
			shared.FormatCompact(r.Number("subscriber_count")),
			shared.FormatNumber(f.Videos),
			shared.FormatCompact(f.Views),
			shared.FormatCompact(f.Likes),
			shared.FormatCompact(f.Comments),
			shared.FormatPercent(f.Engagement, 2),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runVideos(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetVideos)
	if err != nil {
		return err
	}

	fmt.Printf("%s🎬 Videos (24h)%s\n", HeaderStyle, Reset)
	t := newTable(table.Row{"Title", "Channel", "Tag", "Views", "Views/h", "Likes", "Comments"})
	for _, r := range view.Result.Rows {
		vph := r.Number("views_per_hour")
		if !r.Has("views_per_hour") {
			hours := shared.HoursSince(r.Time("published_at"), time.Now())
			if hours < 1 {
				hours = 1
			}
			vph = r.Number("views") / hours
		}
		t.AppendRow(table.Row{
			truncate(r.Str("title"), 60),
			r.Str("channel_name"),
			r.Str("tag"),
			shared.FormatCompact(r.Number("views")),
			shared.FormatCompact(vph),
			shared.FormatCompact(r.Number("likes")),
			shared.FormatCompact(r.Number("comments")),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runTopChannels(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetTop)
	if err != nil {
		return err
	}

	window := stats.ResolveRankingWindow(snapStore.Snapshot(), stats.PeriodHistorical)

	fmt.Printf("%s🌟 Top Channels (historical)%s\n", HeaderStyle, Reset)
	t := newTable(table.Row{"Channel", "Tag", "Videos", "Views", "Engagement"})
	for _, r := range view.Result.Rows {
		f := stats.ResolveRankingFigures(r, window)
		t.AppendRow(table.Row{
			r.Str("channel_name"),
			r.Str("tag"),
			shared.FormatNumber(f.Videos),
			shared.FormatCompact(f.Views),
			shared.FormatPercent(f.Engagement, 2),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runPredictions(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetPredictions)
	if err != nil {
		return err
	}
	kpis := dashboard.PredictionSummary()

	fmt.Printf("%s🔮 Performance Predictions%s\n", HeaderStyle, Reset)
	fmt.Println(FormatLabelValue("High confidence:", fmt.Sprintf("%d/%d", kpis.HighConfidence, kpis.Total)))
	fmt.Println(FormatLabelValue("Over / under performing:", fmt.Sprintf("%d / %d", kpis.Overperforming, kpis.Underperforming)))
	fmt.Println(FormatLabelValue("Average ratio:", fmt.Sprintf("%.2f", kpis.AvgRatio)))

	t := newTable(table.Row{"Channel", "Predicted Views", "Ratio", "Confidence"})
	for _, r := range view.Result.Rows {
		t.AppendRow(table.Row{
			r.Str("channel_name"),
			shared.FormatCompact(r.Number("predicted_views")),
			fmt.Sprintf("%.2f", r.Number("performance_ratio")),
			fmt.Sprintf("%.2f", r.Number("confidence_score")),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runPeriods(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetPeriods)
	if err != nil {
		return err
	}
	kpis := dashboard.PeriodSummary()

	fmt.Printf("%s📅 Period Comparisons (7d vs 30d)%s\n", HeaderStyle, Reset)
	fmt.Println(FormatLabelValue("Growing / stable / declining:",
		fmt.Sprintf("%d / %d / %d", kpis.Growing, kpis.Stable, kpis.Declining)))
	fmt.Println(FormatLabelValue("Top growth:", shared.FormatPercent(kpis.TopGrowth, 1)))

	t := newTable(table.Row{"Channel", "Avg Views 7d", "Avg Views 30d", "Views Change"})
	for _, r := range view.Result.Rows {
		t.AppendRow(table.Row{
			r.Str("channel_name"),
			shared.FormatCompact(r.Sub("7d").Number("avg_views")),
			shared.FormatCompact(r.Sub("30d").Number("avg_views")),
			shared.FormatPercent(r.Sub("changes").Signed("views_change"), 1),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetBenchmark)
	if err != nil {
		return err
	}
	kpis := dashboard.BenchmarkSummary()

	fmt.Printf("%s📊 Benchmark Channels%s\n", HeaderStyle, Reset)
	fmt.Println(FormatLabelValue("Channels:", fmt.Sprintf("%d", kpis.TotalChannels)))
	fmt.Println(FormatLabelValue("Avg views:", shared.FormatCompact(kpis.AvgViews)))
	fmt.Println(FormatLabelValue("Avg engagement:", shared.FormatPercent(kpis.AvgEngagement, 2)))

	t := newTable(table.Row{"Channel", "Total Views", "Total Videos", "Engagement", "Subs"})
	for _, r := range view.Result.Rows {
		t.AppendRow(table.Row{
			r.Str("channel_name"),
			shared.FormatCompact(r.Number("total_views")),
			shared.FormatNumber(r.Number("total_videos")),
			shared.FormatPercent(r.Number("engagement_rate"), 2),
			shared.FormatCompact(r.Number("subscriber_count")),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func runKeywords(cmd *cobra.Command, args []string) error {
	view, err := fetchTable(query.DatasetKeywords)
	if err != nil {
		return err
	}
	kpis := dashboard.KeywordSummary()

	fmt.Printf("%s🔍 Keyword Analysis%s\n", HeaderStyle, Reset)
	fmt.Println(FormatLabelValue("Keywords:", fmt.Sprintf("%d", kpis.TotalKeywords)))
	fmt.Println(FormatLabelValue("Total matches:", shared.FormatNumber(kpis.TotalMatches)))
	fmt.Println(FormatLabelValue("Avg views/match:", shared.FormatCompact(kpis.AvgViewsPerMatch)))

	t := newTable(table.Row{"Keyword", "Matches", "Total Views", "Avg Views/Match"})
	for _, r := range view.Result.Rows {
		t.AppendRow(table.Row{
			r.Str("keyword"),
			shared.FormatNumber(r.Number("total_matches")),
			shared.FormatCompact(r.Number("total_views")),
			shared.FormatCompact(r.Number("avg_views_per_match")),
		})
	}
	t.Render()
	printTableFooter(view)
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
