package plot

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	eopts "github.com/go-echarts/go-echarts/v2/opts"

	"github.com/urw7rs/spiralpp/src/metrics"
)

// htmlPalette mirrors the echarts default palette so raw and smoothed
// lines can share one color per metric, as in the image backend.
var htmlPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

const htmlRawOpacity = 0.35

// RenderHTML writes the requested figure as an interactive HTML page,
// one echarts line chart per metric. Chart order and legend behavior
// follow the image backend; grid shape only affects capacity checking
// since the page stacks charts vertically.
func RenderHTML(ds *metrics.Dataset, req Request, w io.Writer) error {
	if !req.IsSingle() {
		grid := req.Grid()
		if cells := grid.Rows * grid.Cols; len(req.keys) > cells {
			return fmt.Errorf("%w: %dx%d grid, %d metrics",
				ErrGridTooSmall, grid.Rows, grid.Cols, len(req.keys))
		}
	}
	page := components.NewPage()
	if req.Title != "" {
		page.PageTitle = req.Title
	}
	for i, key := range req.keys {
		line, err := buildHTMLLine(ds, key, i, req.Options, !req.IsSingle())
		if err != nil {
			return err
		}
		page.AddCharts(line)
	}
	return page.Render(w)
}

func buildHTMLLine(ds *metrics.Dataset, key string, colorIndex int, opts Options, withLegend bool) (*charts.Line, error) {
	vals, err := ds.Column(key)
	if err != nil {
		return nil, err
	}
	xs := ds.Steps()
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}

	yName := opts.YLabel
	if yName == "" {
		yName = key
	}
	yType := "value"
	if opts.Log {
		yType = "log"
	}
	col := htmlPalette[colorIndex%len(htmlPalette)]

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(eopts.Title{Title: opts.Title}),
		charts.WithTooltipOpts(eopts.Tooltip{Show: eopts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(eopts.Legend{Show: eopts.Bool(withLegend)}),
		charts.WithXAxisOpts(eopts.XAxis{Name: XAxisLabel, Type: "category"}),
		charts.WithYAxisOpts(eopts.YAxis{Name: yName, Type: yType}),
		charts.WithInitializationOpts(eopts.Initialization{Width: "900px", Height: "420px"}),
	)
	line.SetXAxis(labels)

	rawOpacity := 1.0
	if opts.Window > 0 {
		rawOpacity = htmlRawOpacity
	}
	line.AddSeries(key, lineData(vals),
		charts.WithLineChartOpts(eopts.LineChart{ShowSymbol: eopts.Bool(false)}),
		charts.WithLineStyleOpts(eopts.LineStyle{Color: col, Opacity: eopts.Float(float32(rawOpacity))}),
		charts.WithItemStyleOpts(eopts.ItemStyle{Color: col}),
	)
	if opts.Window > 0 {
		sm := metrics.CenteredRollingMean(vals, opts.Window)
		line.AddSeries(fmt.Sprintf("%s (mean %d)", key, opts.Window), lineData(sm),
			charts.WithLineChartOpts(eopts.LineChart{ShowSymbol: eopts.Bool(false)}),
			charts.WithLineStyleOpts(eopts.LineStyle{Color: col, Width: 2, Opacity: eopts.Float(1)}),
			charts.WithItemStyleOpts(eopts.ItemStyle{Color: col}),
		)
	}
	return line, nil
}

// lineData converts a series to echarts points, mapping NaN to null so
// gaps render as gaps instead of breaking the page.
func lineData(vals []float64) []eopts.LineData {
	out := make([]eopts.LineData, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			out[i] = eopts.LineData{Value: nil}
			continue
		}
		out[i] = eopts.LineData{Value: v}
	}
	return out
}
