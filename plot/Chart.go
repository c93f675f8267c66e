package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values, one per episode
type Series struct {
	Name   string
	Values []float64
}

// Chart writes an interactive HTML line chart of the series to w. The
// x axis is the episode number, starting at 1.
func Chart(w io.Writer, title string, series ...Series) error {
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "return"}),
	)

	episodes := make([]string, n)
	for i := range episodes {
		episodes[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(episodes)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

// SaveChart writes the HTML chart of the series to filename
func SaveChart(filename, title string, series ...Series) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveChart: %w", err)
	}

	if err := Chart(f, title, series...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
