package main

import "strconv"

// windowFromChoice maps a smoothing selector value to a window size.
// "Off" and anything unparsable mean no smoothing.
func windowFromChoice(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// windowChoiceFor maps a window size back to a selector value, snapping
// unknown sizes to their own label so prefs round-trip.
func windowChoiceFor(w int) string {
	if w < 1 {
		return "Off"
	}
	return strconv.Itoa(w)
}

// selectedKeys returns the ticked metrics in dataset column order.
func selectedKeys(selected map[string]bool, order []string) []string {
	out := make([]string, 0, len(order))
	for _, k := range order {
		if selected[k] {
			out = append(out, k)
		}
	}
	return out
}

// viewerChartSize clamps the per-chart size to the available width,
// keeping a wide aspect so the step axis gets the space.
func viewerChartSize(canvasWidth float32) (int, int) {
	w := int(canvasWidth*0.90) - 240 // leave room for the metric list
	if w < 700 {
		w = 700
	}
	if w > 1600 {
		w = 1600
	}
	h := int(float32(w) * 0.32)
	if h < 240 {
		h = 240
	}
	if h > 480 {
		h = 480
	}
	return w, h
}

// truncatePath shortens a long path for display, keeping the tail.
func truncatePath(p string, n int) string {
	if n <= 1 || len(p) <= n {
		return p
	}
	return "…" + p[len(p)-(n-1):]
}
