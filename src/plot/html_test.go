package plot

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderHTML_MultiWithSmoothing(t *testing.T) {
	ds := testDataset()
	req := Multi([]string{"total_loss", "mean_episode_return"}, nil, Options{Window: 3, Title: "run 42"})

	var buf bytes.Buffer
	if err := RenderHTML(ds, req, &buf); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "echarts") {
		t.Fatalf("page does not embed echarts")
	}
	for _, want := range []string{"total_loss", "mean_episode_return", "total_loss (mean 3)", "run 42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestRenderHTML_SingleHasNoSmoothedSeries(t *testing.T) {
	ds := testDataset()
	var buf bytes.Buffer
	if err := RenderHTML(ds, Single("total_loss", Options{}), &buf); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(buf.String(), "(mean ") {
		t.Fatalf("no window given, yet a smoothed series was emitted")
	}
}

func TestRenderHTML_GridTooSmall(t *testing.T) {
	ds := testDataset()
	req := Multi([]string{"total_loss", "mean_episode_return"}, &GridShape{Rows: 1, Cols: 1}, Options{})
	if err := RenderHTML(ds, req, &bytes.Buffer{}); !errors.Is(err, ErrGridTooSmall) {
		t.Fatalf("expected ErrGridTooSmall, got %v", err)
	}
}
