package plot

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/utils/floatutils"
)

// World is a 3D gridworld which can be drawn
type World interface {
	Dims() (width, height, depth int)
	IsObstacle(s space.State) bool
	AtGoal(s space.State) bool
	AtPit(s space.State) bool
}

var (
	obstacleColour = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	goalColour     = color.RGBA{R: 255, G: 166, B: 0, A: 255}
	pitColour      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	arrowColour    = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// valueColour maps t in [0, 1] from red through yellow to green
func valueColour(t float64) color.Color {
	t = floatutils.Clip(t, 0, 1)
	if t < 0.5 {
		return color.RGBA{R: 220, G: uint8(440 * t), B: 60, A: 255}
	}
	return color.RGBA{R: uint8(440 * (1 - t)), G: 220, B: 60, A: 255}
}

// Slice draws layer z of w with each free cell coloured by its value
// and marked with the action of the policy. Moves within the layer are
// drawn as arrows, +Z as a filled dot and -Z as a ring. States missing
// from values are drawn with value 0, states missing from actions get
// no mark.
func Slice(w World, values map[space.State]float64,
	actions map[space.State]space.Action, z int) (*gg.Context, error) {
	width, height, depth := w.Dims()
	if z < 0 || z >= depth {
		return nil, fmt.Errorf("slice: layer %d not in [0, %d)", z, depth)
	}

	var layer []float64
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			s := space.State{X: x, Y: y, Z: z}
			if !w.IsObstacle(s) {
				layer = append(layer, values[s])
			}
		}
	}
	min, max := 0.0, 0.0
	if len(layer) > 0 {
		min, max = floats.Min(layer), floats.Max(layer)
	}

	dc := gg.NewContext(width*CellSize, height*CellSize)
	dc.SetColor(background)
	dc.Clear()

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			s := space.State{X: x, Y: y, Z: z}
			px, py := float64(x*CellSize), float64(y*CellSize)

			switch {
			case w.IsObstacle(s):
				dc.SetColor(obstacleColour)
			case w.AtGoal(s):
				dc.SetColor(goalColour)
			case w.AtPit(s):
				dc.SetColor(pitColour)
			default:
				dc.SetColor(valueColour(floatutils.Normalize(values[s], min,
					max)))
			}
			dc.DrawRectangle(px+1, py+1, CellSize-2, CellSize-2)
			dc.Fill()

			if w.IsObstacle(s) || w.AtGoal(s) || w.AtPit(s) {
				continue
			}
			if a, ok := actions[s]; ok {
				drawAction(dc, a, px+CellSize/2, py+CellSize/2)
			}
		}
	}

	return dc, nil
}

// drawAction marks action a on the cell centred at (cx, cy)
func drawAction(dc *gg.Context, a space.Action, cx, cy float64) {
	const length = CellSize / 3
	dc.SetColor(arrowColour)
	dc.SetLineWidth(2)

	d := a.Displacement()
	switch a {
	case space.PosZ:
		dc.DrawCircle(cx, cy, CellSize/8)
		dc.Fill()
	case space.NegZ:
		dc.DrawCircle(cx, cy, CellSize/8)
		dc.Stroke()
	default:
		tx, ty := cx+float64(d.X)*length, cy+float64(d.Y)*length
		dc.DrawLine(cx-float64(d.X)*length, cy-float64(d.Y)*length, tx, ty)
		dc.Stroke()

		// Arrow head
		hx, hy := float64(d.Y)*length/3, float64(d.X)*length/3
		bx, by := tx-float64(d.X)*length/3, ty-float64(d.Y)*length/3
		dc.MoveTo(tx, ty)
		dc.LineTo(bx+hx, by+hy)
		dc.LineTo(bx-hx, by-hy)
		dc.ClosePath()
		dc.Fill()
	}
}

// SaveSlice draws layer z and saves it as a PNG
func SaveSlice(filename string, w World, values map[space.State]float64,
	actions map[space.State]space.Action, z int) error {
	dc, err := Slice(w, values, actions, z)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("saveSlice: %w", err)
	}
	return nil
}
