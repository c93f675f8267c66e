package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(&buf, "Training",
		Series{"return", []float64{-200, -20, 44}},
		Series{"moving average", []float64{-200, -110, -58.67}},
	)
	if err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, want := range []string{"<html", "echarts", "moving average",
		"-58.67"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart does not contain %q", want)
		}
	}

	filename := filepath.Join(t.TempDir(), "rewards.html")
	if err := SaveChart(filename, "Training", Series{"return",
		[]float64{1, 2}}); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(filename); err != nil || info.Size() == 0 {
		t.Errorf("chart not written: %v", err)
	}
}
