package plot

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/urw7rs/spiralpp/src/metrics"
)

// XAxisLabel is the fixed x-axis caption; every metric is indexed by step.
const XAxisLabel = "steps"

const (
	defaultChartWidth  = 1000
	defaultChartHeight = 320

	// rawAlpha is the raw line's stroke opacity when a smoothed overlay is
	// drawn on top of it. Both lines share the metric's color so the trend
	// and the noise read as one metric, not two.
	rawAlpha = 72
)

func minorGridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorLightGray.WithAlpha(110),
		StrokeWidth: 0.5,
	}
}

func chartDims(opts Options) (int, int) {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = defaultChartWidth
	}
	if h <= 0 {
		h = defaultChartHeight
	}
	return w, h
}

// buildMetricChart assembles the chart configuration for one metric: the
// raw series against step and, when a window is set, the centered
// rolling mean overlaid in the same color at full opacity.
func buildMetricChart(ds *metrics.Dataset, key string, colorIndex int, opts Options, withLegend bool) (chart.Chart, error) {
	vals, err := ds.Column(key)
	if err != nil {
		return chart.Chart{}, err
	}
	xs := ds.Steps()
	col := chart.GetDefaultColor(colorIndex)

	rawStyle := chart.Style{StrokeColor: col, StrokeWidth: 1.25}
	if opts.Window > 0 {
		rawStyle.StrokeColor = col.WithAlpha(rawAlpha)
	}
	rx, ry := metrics.ValidPoints(xs, vals)
	if len(rx) == 1 {
		// go-chart cannot derive a range from a single point
		rx = append(rx, rx[0]+1)
		ry = append(ry, ry[0])
	}
	series := []chart.Series{
		chart.ContinuousSeries{Name: key, XValues: rx, YValues: ry, Style: rawStyle},
	}

	if opts.Window > 0 {
		sm := metrics.CenteredRollingMean(vals, opts.Window)
		sx, sy := metrics.ValidPoints(xs, sm)
		if len(sx) == 1 {
			sx = append(sx, sx[0]+1)
			sy = append(sy, sy[0])
		}
		if len(sx) > 0 {
			series = append(series, chart.ContinuousSeries{
				Name:    fmt.Sprintf("%s (mean %d)", key, opts.Window),
				XValues: sx,
				YValues: sy,
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 2},
			})
		}
	}

	yLabel := opts.YLabel
	if yLabel == "" {
		yLabel = key
	}
	var yRange chart.Range
	if opts.Log {
		yRange = &chart.LogarithmicRange{}
	}

	w, h := chartDims(opts)
	ch := chart.Chart{
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: XAxisLabel, GridMinorStyle: minorGridStyle()},
		YAxis:      chart.YAxis{Name: yLabel, Range: yRange, GridMinorStyle: minorGridStyle()},
		Series:     series,
	}
	if withLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch, nil
}

// renderChart rasterizes one chart configuration to an image.
func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}
