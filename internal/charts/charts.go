// Package charts renders dashboard projections as standalone HTML charts.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/stats"
)

// SharePie builds the per-tag view share doughnut for one period.
func SharePie(s models.Estimated[stats.Share]) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: flagTitle(fmt.Sprintf("View share by tag (%s)", s.Value.Period), s.Estimated)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, 0, len(s.Value.Entries))
	for _, e := range s.Value.Entries {
		data = append(data, opts.PieData{Name: e.Tag, Value: e.Views})
	}

	pie.AddSeries("views", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
	)
	return pie
}

// TagTrendLine builds one line per tag over the trailing history dates.
func TagTrendLine(t stats.TagTrend) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Tag trend (%s)", t.Metric)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(t.Dates)
	for _, s := range t.Series {
		data := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(s.Tag, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// ChannelTrendLine builds the dated metric series of one channel. Estimated
// series carry the flag in the title.
func ChannelTrendLine(channelName, metric string, series models.Estimated[[]stats.TrendPoint]) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: flagTitle(fmt.Sprintf("%s: %s", channelName, metric), series.Estimated)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	dates := make([]string, 0, len(series.Value))
	data := make([]opts.LineData, 0, len(series.Value))
	for _, p := range series.Value {
		dates = append(dates, p.Date)
		data = append(data, opts.LineData{Value: p.Value})
	}

	line.SetXAxis(dates)
	line.AddSeries(metric, data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func flagTitle(title string, estimated bool) string {
	if estimated {
		return title + " (estimated)"
	}
	return title
}

// Renderable is anything go-echarts can write as a standalone HTML page.
type Renderable interface {
	Render(w io.Writer) error
}
