// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	status          string
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar which is width
// characters wide, reaches 100% at max, and is printed to out
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max <= 0 {
		max = 1
	}
	return &ManualProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter
func (p *ManualProgressBar) Increment() {
	p.Set(p.currentProgress + 1)
}

// Set sets the internal progress counter, clipped to the maximum
func (p *ManualProgressBar) Set(progress float64) {
	if progress > p.maxProgress {
		progress = p.maxProgress
	}
	p.currentProgress = progress
}

// SetStatus sets a message displayed after the bar
func (p *ManualProgressBar) SetStatus(format string, args ...interface{}) {
	p.status = fmt.Sprintf(format, args...)
}

// String returns the current progress bar without terminal control
// codes
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%v | elapsed: %v]",
		p.currentProgress/p.maxProgress*100, "%",
		time.Since(p.startTime).Truncate(time.Second))

	if p.status != "" {
		p.bar.WriteString(" ")
		p.bar.WriteString(p.status)
	}
	return p.bar.String()
}

// Display redraws the progress bar in place
func (p *ManualProgressBar) Display() error {
	_, err := fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
	return err
}

// Finish displays the progress bar a final time and moves to a new line
func (p *ManualProgressBar) Finish() error {
	if err := p.Display(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}
