// Package plot turns a metrics dataset into line-chart figures: raw
// series with an optional centered rolling-mean overlay, arranged in a
// grid of charts, rendered to an image or an interactive HTML page.
package plot

// GridShape is the rows × columns arrangement of charts within one figure.
type GridShape struct {
	Rows, Cols int
}

// Options carries the presentation knobs shared by every output backend.
type Options struct {
	YLabel string // y-axis caption; empty means use the metric key
	Title  string // figure title; empty means no title is drawn
	Window int    // rolling-mean width in samples; 0 disables smoothing
	Log    bool   // logarithmic y-scale; default is linear
	Width  int    // per-chart pixels; 0 means the package default
	Height int
}

// Request names the metrics to draw and how to arrange them. Construct
// with Single or Multi. The two paths intentionally differ: a Multi of a
// single key still takes the grid path and gets a legend, while Single
// never attaches one.
type Request struct {
	keys   []string
	shape  *GridShape
	single bool
	Options
}

// Single requests one chart for one metric. No legend is attached and
// grid options do not apply.
func Single(key string, opts Options) Request {
	return Request{keys: []string{key}, single: true, Options: opts}
}

// Multi requests one chart per metric arranged in a grid. A nil shape
// stacks the charts vertically, one row per metric. An explicit shape is
// used as-is; assigning a metric past its capacity fails at render time.
func Multi(keys []string, shape *GridShape, opts Options) Request {
	ks := make([]string, len(keys))
	copy(ks, keys)
	var sh *GridShape
	if shape != nil {
		s := *shape
		sh = &s
	}
	return Request{keys: ks, shape: sh, Options: opts}
}

// IsSingle reports whether the request takes the one-chart path.
func (r Request) IsSingle() bool { return r.single }

// Keys returns the requested metric names in order.
func (r Request) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Grid returns the resolved grid shape for the request.
func (r Request) Grid() GridShape { return resolveGrid(len(r.keys), r.shape) }

func resolveGrid(n int, shape *GridShape) GridShape {
	if shape == nil {
		return GridShape{Rows: n, Cols: 1}
	}
	return *shape
}
