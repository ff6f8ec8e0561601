package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/shared"
)

var (
	statsPeriod string
	statsMetric string
	statsRange  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View dashboard statistics and insights",
	Long:  `View KPI overviews, per-group aggregates, collection health and title word analysis.`,
}

var statsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "View the dashboard KPI header",
	RunE:  runStatsOverview,
}

var statsAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "View the collection health report",
	RunE:  runStatsAdmin,
}

var statsGroupCmd = &cobra.Command{
	Use:   "group [tag]",
	Short: "View the 24h aggregates of one tag group",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatsGroup,
}

var statsWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "View the top title words by total views",
	RunE:  runStatsWords,
}

var statsShareCmd = &cobra.Command{
	Use:   "share",
	Short: "View the per-tag view share",
	RunE:  runStatsShare,
}

var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "View the per-tag metric trend over the trailing history",
	RunE:  runStatsTrend,
}

func init() {
	statsCmd.AddCommand(statsOverviewCmd)
	statsCmd.AddCommand(statsAdminCmd)
	statsCmd.AddCommand(statsGroupCmd)
	statsCmd.AddCommand(statsWordsCmd)
	statsCmd.AddCommand(statsShareCmd)
	statsCmd.AddCommand(statsTrendCmd)

	statsShareCmd.Flags().StringVarP(&statsPeriod, "period", "P", "24h", "Period (24h|7d|30d)")
	statsCmd.PersistentFlags().StringVarP(&statsMetric, "metric", "m", "views", "Metric for trend output")
	statsCmd.PersistentFlags().IntVarP(&statsRange, "range", "r", 7, "Trailing days for trend output")
}

func runStatsOverview(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	o := dashboard.Overview()

	fmt.Printf("%s📈 Dashboard Overview%s\n", HeaderStyle, Reset)
	fmt.Printf("%s=====================%s\n", DimStyle, Reset)
	fmt.Println()
	fmt.Println(FormatLabelValue("Channels:", fmt.Sprintf("%d", o.Channels)))
	fmt.Println(FormatLabelValue("Tags:", fmt.Sprintf("%d", o.Tags)))
	fmt.Println(FormatLabelValue("Videos (24h):", shared.FormatNumber(o.Videos24h)))
	fmt.Println(FormatLabelValue("Views (24h):", shared.FormatCompact(o.Views24h)))
	fmt.Println(FormatLabelValue("Likes (24h):", shared.FormatCompact(o.Likes24h)))
	fmt.Println(FormatLabelValue("Comments (24h):", shared.FormatCompact(o.Comments24h)))
	if o.GeneratedAt != "" {
		fmt.Println(FormatLabelValue("Generated at:", o.GeneratedAt))
	}
	return nil
}

func runStatsAdmin(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	s := dashboard.AdminStats()

	fmt.Printf("%s🩺 Collection Health%s\n", HeaderStyle, Reset)
	fmt.Printf("%s====================%s\n", DimStyle, Reset)
	fmt.Println()

	t := newTable(table.Row{"Window", "Videos", "Views", "Likes", "Comments", "Active Channels"})
	t.AppendRow(table.Row{"24h", shared.FormatNumber(s.Window24h.Videos), shared.FormatCompact(s.Window24h.Views),
		shared.FormatCompact(s.Window24h.Likes), shared.FormatCompact(s.Window24h.Comments), s.Window24h.ActiveChannels})
	t.AppendRow(table.Row{"7d", shared.FormatNumber(s.Window7d.Videos), shared.FormatCompact(s.Window7d.Views),
		shared.FormatCompact(s.Window7d.Likes), shared.FormatCompact(s.Window7d.Comments), s.Window7d.ActiveChannels})
	t.AppendRow(table.Row{"30d", shared.FormatNumber(s.Window30d.Videos), shared.FormatCompact(s.Window30d.Views),
		shared.FormatCompact(s.Window30d.Likes), shared.FormatCompact(s.Window30d.Comments), s.Window30d.ActiveChannels})
	t.Render()

	fmt.Println()
	fmt.Println(FormatLabelValue("Avg views/video (24h):", shared.FormatCompact(s.AvgViewsPerVideo24h)))
	fmt.Println(FormatLabelValue("Global engagement (24h):", shared.FormatPercent(s.GlobalEngagement24h, 2)))
	fmt.Println(FormatLabelValue("Avg videos/channel (24h):", fmt.Sprintf("%.1f", s.AvgVideosPerChannel24h)))
	fmt.Println(FormatLabelValue("Growth 7d->24h:", shared.FormatPercent(s.GrowthRate7dTo24h, 1)))
	fmt.Println(FormatLabelValue("Growth 30d->7d:", shared.FormatPercent(s.GrowthRate30dTo7d, 1)))

	if len(s.TopChannelsBySubscribers) > 0 {
		fmt.Println()
		fmt.Printf("%sTop channels by subscribers:%s\n", SuccessStyle, Reset)
		for i, c := range s.TopChannelsBySubscribers {
			fmt.Printf("  %s %s (%s)\n", FormatCount(i+1), FormatValue(c.Str("channel_name")),
				shared.FormatCompact(c.Number("subscriber_count")))
		}
	}
	return nil
}

func runStatsGroup(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	m := dashboard.GroupMetrics(args[0])

	fmt.Printf("%s🏷️ Group: %s%s\n", HeaderStyle, m.Group, Reset)
	fmt.Printf("%s================%s\n", DimStyle, Reset)
	fmt.Println()
	fmt.Println(FormatLabelValue("Channels:", fmt.Sprintf("%d", m.TotalChannels)))
	fmt.Println(FormatLabelValue("Subscribers:", shared.FormatCompact(m.TotalSubscribers)))
	fmt.Println(FormatLabelValue("Videos (24h):", shared.FormatNumber(m.TotalVideos24h)))
	fmt.Println(FormatLabelValue("Views (24h):", shared.FormatCompact(m.TotalViews24h)))
	fmt.Println(FormatLabelValue("Avg views/channel:", shared.FormatCompact(m.AvgViews24h)))
	fmt.Println(FormatLabelValue("Engagement:", shared.FormatPercent(m.EngagementRate, 2)))
	return nil
}

func runStatsWords(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	words := dashboard.TopWords()

	if len(words) == 0 {
		fmt.Printf("%sNo video titles in the 24h window.%s\n", WarningStyle, Reset)
		return nil
	}

	fmt.Printf("%s🔤 Top Title Words (24h)%s\n", HeaderStyle, Reset)
	t := newTable(table.Row{"#", "Word", "Matches", "Total Views", "Avg Views"})
	for i, w := range words {
		t.AppendRow(table.Row{i + 1, w.Word, w.Matches,
			shared.FormatCompact(w.TotalViews), shared.FormatCompact(w.AvgViews)})
	}
	t.Render()
	return nil
}

func runStatsShare(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	share := dashboard.Share(statsPeriod)

	fmt.Printf("%s🥧 View Share by Tag (%s)%s\n", HeaderStyle, share.Value.Period, Reset)
	t := newTable(table.Row{"Tag", "Videos", "Views", "Share"})
	for _, e := range share.Value.Entries {
		t.AppendRow(table.Row{e.Tag, shared.FormatNumber(e.Videos),
			shared.FormatCompact(e.Views), shared.FormatPercent(e.SharePct, 1)})
	}
	t.Render()
	if share.Estimated {
		fmt.Printf("%s⚠ Figures for this period are estimated from 24h data%s\n", WarningStyle, Reset)
	}
	return nil
}

func runStatsTrend(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}
	trend := dashboard.TagTrend(statsMetric, statsRange)

	if len(trend.Dates) == 0 {
		fmt.Printf("%sNo history data available.%s\n", WarningStyle, Reset)
		return nil
	}

	fmt.Printf("%s📉 Tag Trend (%s, last %d days)%s\n", HeaderStyle, trend.Metric, len(trend.Dates), Reset)
	header := table.Row{"Tag"}
	for _, d := range trend.Dates {
		header = append(header, d)
	}
	t := newTable(header)
	for _, s := range trend.Series {
		row := table.Row{s.Tag}
		for _, v := range s.Values {
			row = append(row, shared.FormatCompact(v))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
