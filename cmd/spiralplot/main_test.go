package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseGridShape(t *testing.T) {
	cases := []struct {
		in         string
		rows, cols int
		wantErr    bool
	}{
		{"2x3", 2, 3, false},
		{"1x1", 1, 1, false},
		{" 4X2 ", 4, 2, false},
		{"0x2", 0, 0, true},
		{"2x-1", 0, 0, true},
		{"nonsense", 0, 0, true},
		{"2", 0, 0, true},
	}
	for _, c := range cases {
		got, err := parseGridShape(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseGridShape(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseGridShape(%q): %v", c.in, err)
		}
		if got.Rows != c.rows || got.Cols != c.cols {
			t.Fatalf("parseGridShape(%q) = %dx%d, want %dx%d", c.in, got.Rows, got.Cols, c.rows, c.cols)
		}
	}
}

func TestSplitKeys(t *testing.T) {
	if got := splitKeys(""); got != nil {
		t.Fatalf("empty flag should yield nil, got %v", got)
	}
	got := splitKeys("total_loss, pg_loss ,,entropy_loss")
	want := []string{"total_loss", "pg_loss", "entropy_loss"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitKeys = %v, want %v", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiralplot.yaml")
	content := `
keys: [total_loss, mean_episode_return]
window: 50
log: true
grid: 2x1
title: run 42
format: html
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.Keys, []string{"total_loss", "mean_episode_return"}) {
		t.Fatalf("keys %v", cfg.Keys)
	}
	if cfg.Window != 50 || !cfg.Log || cfg.Grid != "2x1" || cfg.Title != "run 42" || cfg.Format != "html" {
		t.Fatalf("config mismatch: %+v", cfg)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("keys: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
