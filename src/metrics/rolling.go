package metrics

import "math"

// CenteredRollingMean returns the rolling mean of width w, shifted left
// by w/2 samples so each average sits over the step at the center of its
// window. Equivalently: out[i] is the mean of vals[i+w/2-w+1 .. i+w/2].
// Positions without a full window, and windows containing a NaN, are NaN.
// A window wider than the series yields an all-NaN result.
func CenteredRollingMean(vals []float64, w int) []float64 {
	n := len(vals)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if w <= 0 || w > n {
		return out
	}

	shift := w / 2
	sum := 0.0
	nans := 0
	for i, v := range vals {
		if math.IsNaN(v) {
			nans++
		} else {
			sum += v
		}
		if i >= w {
			if old := vals[i-w]; math.IsNaN(old) {
				nans--
			} else {
				sum -= old
			}
		}
		if i < w-1 {
			continue
		}
		// trailing mean at i lands on index i-shift after the shift
		if at := i - shift; nans == 0 && at >= 0 && at < n {
			out[at] = sum / float64(w)
		}
	}
	return out
}

// ValidPoints pairs xs with ys, dropping positions where ys is NaN.
// Used to turn a NaN-padded smoothed series into drawable points.
func ValidPoints(xs, ys []float64) (px, py []float64) {
	n := len(ys)
	if len(xs) < n {
		n = len(xs)
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	return px, py
}
