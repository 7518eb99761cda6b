// Package plot renders experiment data as HTML line charts
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named line of per-episode values
type Series struct {
	Name   string
	Values []float64
}

// Render writes an HTML page holding a line chart of each series
// against the episode number. All series must have equal length.
func Render(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("render: no series to plot")
	}
	episodes := len(series[0].Values)
	for _, s := range series {
		if len(s.Values) != episodes {
			return fmt.Errorf("render: series %q has %d values, want %d",
				s.Name, len(s.Values), episodes)
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
	)

	x := make([]string, episodes)
	for i := range x {
		x[i] = fmt.Sprintf("%d", i)
	}
	line = line.SetXAxis(x)

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
		return fmt.Errorf("render: %v", err)
	}
	return nil
}

// Save renders the series to the HTML file filename, creating its
// directory if needed
func Save(filename, title string, series ...Series) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	defer f.Close()

	if err := Render(f, title, series...); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// MovingAverage returns the trailing moving average of values over
// window elements. The first window-1 averages are over fewer values.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	avg := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		avg[i] = sum / float64(n)
	}
	return avg
}
