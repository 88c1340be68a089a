package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/grid"
	"github.com/pthm-cable/vecfield/systems"
)

const inspectorWidth = 220

// CellInspector shows the live state of one selected cell.
// The selection is kept by grid coordinates so it survives frame swaps and
// is dropped when a rebuild removes the cell.
type CellInspector struct {
	x, y     int32
	row, col int
	selected bool
}

// NewCellInspector creates an inspector panel anchored at (x, y).
func NewCellInspector(x, y int32) *CellInspector {
	return &CellInspector{x: x, y: y}
}

// SetPosition moves the panel.
func (ins *CellInspector) SetPosition(x, y int32) {
	ins.x, ins.y = x, y
}

// Select picks the cell nearest (wx, wy) in canvas coordinates.
func (ins *CellInspector) Select(cells []components.Cell, wx, wy, maxDist float64) bool {
	i, ok := grid.Nearest(cells, wx, wy, maxDist)
	if !ok {
		return false
	}
	ins.row, ins.col = cells[i].Row, cells[i].Col
	ins.selected = true
	return true
}

// Deselect clears the selection.
func (ins *CellInspector) Deselect() {
	ins.selected = false
}

// Draw renders the panel for the selected cell, if it still exists.
func (ins *CellInspector) Draw(cells []components.Cell, index *systems.GridIndex) {
	if !ins.selected {
		return
	}
	i, ok := index.Lookup(ins.row, ins.col, cells)
	if !ok {
		ins.selected = false
		return
	}
	c := &cells[i]

	p := openPanel(ins.x, ins.y, inspectorWidth, padding*2+lineHeight*11)
	p.title("Cell "+c.ID, 14)
	p.dial("Angle", c.CurrentAngle)
	p.dial("Previous", c.PreviousAngle)
	p.rowf("Delta", "%+.2f", systems.ShortestDelta(c.PreviousAngle, c.CurrentAngle))
	p.rowf("Layer", "%d", c.Layer)
	p.rowf("Activation", "%.0f ms", c.ActivationTime)
	p.rowf("Flock", "%d", c.FlockID)
	p.rowf("Length", "%.2f", c.LengthFactor)
	p.rowf("Width", "%.2f", c.WidthFactor)
	p.row("Shape", c.Shape.String())
}

// Highlight circles the selected cell at its screen position.
func (ins *CellInspector) Highlight(cells []components.Cell, index *systems.GridIndex, toScreen func(x, y float32) (float32, float32), radius float32) {
	if !ins.selected {
		return
	}
	i, ok := index.Lookup(ins.row, ins.col, cells)
	if !ok {
		return
	}
	sx, sy := toScreen(float32(cells[i].BaseX), float32(cells[i].BaseY))
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, radius, rl.Yellow)
}
