// Package metrics loads training-run metric tables and provides the
// series math used by the plotting layer. A table has one "step" column
// and one numeric column per logged metric (total_loss, pg_loss,
// mean_episode_return, ...), as written by the training logger.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// StepColumn is the shared index column every metrics file must carry.
const StepColumn = "step"

// ErrNoSuchMetric is returned when a requested metric column is absent.
var ErrNoSuchMetric = errors.New("no such metric")

// Dataset is an immutable, in-memory view of one training run's metrics.
// It is owned by the caller and passed explicitly into every plotting
// call; there is no package-level dataset.
type Dataset struct {
	steps []float64
	cols  map[string][]float64
	keys  []string // metric columns in file order, step excluded
}

// Column pairs a metric name with its values, one per step.
type Column struct {
	Key    string
	Values []float64
}

// New builds a dataset directly from series, for callers that already
// hold the numbers in memory. Column lengths are expected to match the
// step index; no validation is performed.
func New(steps []float64, cols ...Column) *Dataset {
	ds := &Dataset{steps: steps, cols: make(map[string][]float64, len(cols))}
	for _, c := range cols {
		ds.cols[c.Key] = c.Values
		ds.keys = append(ds.keys, c.Key)
	}
	return ds
}

// Load reads a metrics table from path. CSV is the native format; files
// ending in .xlsx are read through the spreadsheet path and fed into the
// same dataframe pipeline.
func Load(path string) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metrics file: %w", err)
	}
	defer f.Close()
	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", path, df.Err)
	}
	return fromDataFrame(df)
}

// fromDataFrame extracts the step index and metric columns. Non-numeric
// cells become NaN, matching how gaps appear in partially logged runs.
func fromDataFrame(df dataframe.DataFrame) (*Dataset, error) {
	names := df.Names()
	ds := &Dataset{cols: make(map[string][]float64, len(names))}
	for _, name := range names {
		vals := df.Col(name).Float()
		if name == StepColumn {
			ds.steps = vals
			continue
		}
		ds.cols[name] = vals
		ds.keys = append(ds.keys, name)
	}
	if ds.steps == nil {
		return nil, fmt.Errorf("metrics table has no %q column", StepColumn)
	}
	return ds, nil
}

// Len returns the number of rows (logged steps).
func (d *Dataset) Len() int { return len(d.steps) }

// Steps returns the step index. Callers must not modify the slice.
func (d *Dataset) Steps() []float64 { return d.steps }

// Keys returns the metric column names in file order.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether the dataset contains the metric.
func (d *Dataset) Has(key string) bool {
	_, ok := d.cols[key]
	return ok
}

// Column returns the values for one metric in step order. Callers must
// not modify the slice. An unknown key wraps ErrNoSuchMetric.
func (d *Dataset) Column(key string) ([]float64, error) {
	vals, ok := d.cols[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchMetric, key)
	}
	return vals, nil
}

// Summary holds per-metric aggregates for listings and overview tables.
type Summary struct {
	Min, Max, Mean, Last float64
	Count                int // rows with a numeric value
}

// Summarize computes NaN-skipping aggregates for one metric.
func (d *Dataset) Summarize(key string) (Summary, error) {
	vals, err := d.Column(key)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), Last: math.NaN()}
	sum := 0.0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if s.Count == 0 || v < s.Min {
			s.Min = v
		}
		if s.Count == 0 || v > s.Max {
			s.Max = v
		}
		sum += v
		s.Last = v
		s.Count++
	}
	if s.Count > 0 {
		s.Mean = sum / float64(s.Count)
	}
	return s, nil
}
