package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/charts"
)

var (
	chartPeriod  string
	chartMetric  string
	chartRange   int
	chartDays    int
	chartChannel string
	chartOut     string
)

var chartsCmd = &cobra.Command{
	Use:   "charts [share|trend|channel]",
	Short: "Render a dashboard chart as a standalone HTML page",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharts,
}

func init() {
	chartsCmd.Flags().StringVarP(&chartPeriod, "period", "P", "24h", "Period for the share chart (24h|7d|30d)")
	chartsCmd.Flags().StringVarP(&chartMetric, "metric", "m", "views", "Metric for trend charts")
	chartsCmd.Flags().IntVarP(&chartRange, "range", "r", 7, "Trailing days for the tag trend chart")
	chartsCmd.Flags().IntVar(&chartDays, "days", 7, "Window for the channel trend chart (7 or 30)")
	chartsCmd.Flags().StringVarP(&chartChannel, "channel", "c", "", "Channel name for the channel trend chart")
	chartsCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.html", "Output HTML file")
}

func runCharts(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}

	var chart charts.Renderable

	switch args[0] {
	case "share":
		chart = charts.SharePie(dashboard.Share(chartPeriod))
	case "trend":
		chart = charts.TagTrendLine(dashboard.TagTrend(chartMetric, chartRange))
	case "channel":
		if chartChannel == "" {
			return fmt.Errorf("--channel is required for the channel trend chart")
		}
		chart = charts.ChannelTrendLine(chartChannel, chartMetric,
			dashboard.ChannelTrend(chartChannel, chartMetric, chartDays))
	default:
		return fmt.Errorf("unknown chart: %s (expected share, trend or channel)", args[0])
	}

	f, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Printf("%s✅ Chart written to %s%s\n", SuccessStyle, chartOut, Reset)
	return nil
}
