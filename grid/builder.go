// Package grid lays cells out over a canvas.
package grid

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

// Layout is the canvas the grid is built for.
type Layout struct {
	Width, Height float64
}

// Dimensions returns how many rows and columns of the given spacing fit.
func Dimensions(l Layout, spacing float64) (rows, cols int) {
	if !(spacing > 0) || !(l.Width > 0) || !(l.Height > 0) {
		return 0, 0
	}
	return int(l.Height / spacing), int(l.Width / spacing)
}

// Build creates a fresh cell batch centered on the canvas. Layers are
// Chebyshev rings around the center cell and activation times grow by
// LayerDelayMS per ring. Angles start at zero, or uniformly random when
// InitialAngle is "random"; nothing is carried over from a previous grid.
func Build(l Layout, cfg config.GridConfig, rng *rand.Rand) []components.Cell {
	rows, cols := Dimensions(l, cfg.Spacing)
	if rows == 0 || cols == 0 {
		return nil
	}

	shape, ok := components.ParseShape(cfg.Shape)
	if !ok && cfg.Shape != "" {
		slog.Warn("unknown grid shape, using line", "shape", cfg.Shape)
	}
	flocks := max(cfg.NumFlocks, 1)
	random := cfg.InitialAngle == "random"

	offX := (l.Width - float64(cols-1)*cfg.Spacing) / 2
	offY := (l.Height - float64(rows-1)*cfg.Spacing) / 2
	centerRow, centerCol := (rows-1)/2, (cols-1)/2

	cells := make([]components.Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			layer := max(absInt(r-centerRow), absInt(c-centerCol))
			angle := 0.0
			if random {
				angle = rng.Float64() * 360
			}
			cells = append(cells, components.Cell{
				ID:             components.CellKey(r, c),
				Row:            r,
				Col:            c,
				BaseX:          offX + float64(c)*cfg.Spacing,
				BaseY:          offY + float64(r)*cfg.Spacing,
				CurrentAngle:   angle,
				PreviousAngle:  angle,
				FlockID:        rng.Intn(flocks),
				Layer:          layer,
				ActivationTime: float64(layer) * cfg.LayerDelayMS,
				LengthFactor:   1,
				WidthFactor:    1,
				Shape:          shape,
			})
		}
	}
	return cells
}

// Rings returns the number of distinct layers in a rows x cols grid.
func Rings(rows, cols int) int {
	if rows == 0 || cols == 0 {
		return 0
	}
	return max(rows-1-(rows-1)/2, cols-1-(cols-1)/2) + 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Nearest returns the index of the cell whose anchor is closest to (x, y),
// provided it lies within maxDist.
func Nearest(cells []components.Cell, x, y, maxDist float64) (int, bool) {
	best := -1
	bestSq := maxDist * maxDist
	for i := range cells {
		dx := cells[i].BaseX - x
		dy := cells[i].BaseY - y
		if d := dx*dx + dy*dy; d <= bestSq {
			best, bestSq = i, d
		}
	}
	return best, best >= 0
}
