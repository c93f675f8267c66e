// Package plot renders training results as PNG images
package plot

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
)

// Image sizes in pixels
const (
	CurveWidth  = 800
	CurveHeight = 400
	CellSize    = 64

	margin = 40.0
)

var (
	background    = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	axisColour    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	returnColour  = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	averageColour = color.RGBA{R: 128, G: 102, B: 230, A: 255}
)

// RewardCurve draws the return of each episode and its moving average
// against the episode number. Either series may be empty.
func RewardCurve(returns, averages []float64) *gg.Context {
	dc := gg.NewContext(CurveWidth, CurveHeight)
	dc.SetColor(background)
	dc.Clear()

	// Axes
	dc.SetColor(axisColour)
	dc.SetLineWidth(1.5)
	dc.DrawLine(margin, margin, margin, CurveHeight-margin)
	dc.DrawLine(margin, CurveHeight-margin, CurveWidth-margin,
		CurveHeight-margin)
	dc.Stroke()

	n := len(returns)
	if len(averages) > n {
		n = len(averages)
	}
	if n == 0 {
		return dc
	}

	all := append(append([]float64{}, returns...), averages...)
	min, max := floats.Min(all), floats.Max(all)
	if min == max {
		min, max = min-1, max+1
	}

	x := func(i int) float64 {
		if n == 1 {
			return margin
		}
		return margin + float64(i)/float64(n-1)*(CurveWidth-2*margin)
	}
	y := func(v float64) float64 {
		return CurveHeight - margin - (v-min)/(max-min)*(CurveHeight-2*margin)
	}

	// Zero line
	if min < 0 && max > 0 {
		dc.SetColor(returnColour)
		dc.SetDash(4, 4)
		dc.DrawLine(margin, y(0), CurveWidth-margin, y(0))
		dc.Stroke()
		dc.SetDash()
	}

	series := []struct {
		values []float64
		colour color.Color
		width  float64
	}{
		{returns, returnColour, 1},
		{averages, averageColour, 2.5},
	}
	for _, s := range series {
		if len(s.values) == 0 {
			continue
		}
		dc.ClearPath()
		dc.MoveTo(x(0), y(s.values[0]))
		for i, v := range s.values[1:] {
			dc.LineTo(x(i+1), y(v))
		}
		dc.SetColor(s.colour)
		dc.SetLineWidth(s.width)
		dc.Stroke()
	}

	dc.SetColor(axisColour)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", max), margin-4, margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", min), margin-4,
		CurveHeight-margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d episodes", n), CurveWidth-margin,
		CurveHeight-margin/2, 1, 0.5)

	return dc
}

// SaveRewardCurve draws the reward curve and saves it as a PNG
func SaveRewardCurve(filename string, returns, averages []float64) error {
	if err := RewardCurve(returns, averages).SavePNG(filename); err != nil {
		return fmt.Errorf("saveRewardCurve: %w", err)
	}
	return nil
}
