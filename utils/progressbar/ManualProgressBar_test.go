package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 4)

	if s := p.String(); strings.Count(s, "█") != 0 || !strings.Contains(s,
		"0.00%") {
		t.Errorf("empty bar: have %q", s)
	}

	p.Increment()
	if s := p.String(); strings.Count(s, "█") != 3 ||
		!strings.Contains(s, "25.00%") {
		t.Errorf("quarter bar: have %q", s)
	}

	p.Set(10)
	p.SetStatus("avg %.1f", -3.5)
	s := p.String()
	if strings.Count(s, "█") != 10 || !strings.Contains(s, "100.00%") {
		t.Errorf("full bar: have %q", s)
	}
	if !strings.HasSuffix(s, "avg -3.5") {
		t.Errorf("status missing: have %q", s)
	}

	if err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\n\033[1A\033[K|") || !strings.HasSuffix(out,
		"\n") {
		t.Errorf("unexpected output %q", out)
	}
}
