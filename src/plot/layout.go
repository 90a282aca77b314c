package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"os"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/urw7rs/spiralpp/src/metrics"
)

// ErrGridTooSmall is returned when an explicit grid shape has fewer
// cells than there are requested metrics.
var ErrGridTooSmall = errors.New("grid cannot hold all requested metrics")

const titleBandHeight = 28

// buildCharts resolves a request into per-metric chart configurations in
// key order: chart i renders keys[i]. Split out from rendering so tests
// can assert axis and series state without rasterizing.
func buildCharts(ds *metrics.Dataset, req Request) ([]chart.Chart, error) {
	if req.IsSingle() {
		ch, err := buildMetricChart(ds, req.keys[0], 0, req.Options, false)
		if err != nil {
			return nil, err
		}
		ch.Title = req.Title
		return []chart.Chart{ch}, nil
	}
	grid := req.Grid()
	cells := grid.Rows * grid.Cols
	out := make([]chart.Chart, 0, len(req.keys))
	for i, key := range req.keys {
		if i >= cells {
			return nil, fmt.Errorf("%w: %dx%d grid, %d metrics",
				ErrGridTooSmall, grid.Rows, grid.Cols, len(req.keys))
		}
		ch, err := buildMetricChart(ds, key, i, req.Options, true)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// Render draws the requested figure and returns it as an image. Single
// requests produce one chart; Multi requests composite one chart per
// metric into the resolved grid, with the figure title (if any) drawn
// across the top of the composite.
func Render(ds *metrics.Dataset, req Request) (image.Image, error) {
	charts, err := buildCharts(ds, req)
	if err != nil {
		return nil, err
	}
	if req.IsSingle() {
		return renderChart(charts[0])
	}

	grid := req.Grid()
	cw, chh := chartDims(req.Options)
	band := 0
	if strings.TrimSpace(req.Title) != "" {
		band = titleBandHeight
	}
	out := image.NewRGBA(image.Rect(0, 0, grid.Cols*cw, grid.Rows*chh+band))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, ch := range charts {
		img, err := renderChart(ch)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", req.keys[i], err)
		}
		r, c := i/grid.Cols, i%grid.Cols
		cell := image.Rect(c*cw, band+r*chh, (c+1)*cw, band+(r+1)*chh)
		draw.Draw(out, cell, img, img.Bounds().Min, draw.Src)
	}
	drawFigureTitle(out, req.Title)
	return out, nil
}

// WritePNG renders the figure and writes it to path.
func WritePNG(ds *metrics.Dataset, req Request, path string) error {
	img, err := Render(ds, req)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// drawFigureTitle centers the title across the top band of the composite.
func drawFigureTitle(rgba *image.RGBA, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{A: 255}),
		Face: face,
	}
	tw := dr.MeasureString(text).Ceil()
	b := rgba.Bounds()
	x := b.Min.X + (b.Dx()-tw)/2
	if x < b.Min.X+4 {
		x = b.Min.X + 4
	}
	y := b.Min.Y + face.Metrics().Ascent.Ceil() + 8
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
