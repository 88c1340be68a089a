// Package systems provides the noise sources, spatial index, angle math and
// the vortex ECS world used by the animator.
package systems

import (
	"math"

	"github.com/pthm-cable/vecfield/components"
)

// GridIndex maps (row, col) to a cell's position in the flat cell slice.
// It is rebuilt only when the grid geometry changes.
type GridIndex struct {
	rows    int
	cols    int
	spacing float64
	slots   []int32 // row*cols+col -> cell index, -1 when empty
}

// NewGridIndex builds an index over cells. Rows and columns are sized from the
// largest coordinates present.
func NewGridIndex(cells []components.Cell) *GridIndex {
	g := &GridIndex{}
	for i := range cells {
		if cells[i].Row+1 > g.rows {
			g.rows = cells[i].Row + 1
		}
		if cells[i].Col+1 > g.cols {
			g.cols = cells[i].Col + 1
		}
	}

	g.slots = make([]int32, g.rows*g.cols)
	for i := range g.slots {
		g.slots[i] = -1
	}
	for i := range cells {
		c := &cells[i]
		if c.Row < 0 || c.Col < 0 {
			continue
		}
		g.slots[c.Row*g.cols+c.Col] = int32(i)
	}

	g.spacing = inferSpacing(cells, g)
	return g
}

// inferSpacing measures the anchor distance between horizontally (or, for a
// single column, vertically) adjacent cells.
func inferSpacing(cells []components.Cell, g *GridIndex) float64 {
	for i := range cells {
		c := &cells[i]
		if j, ok := g.Lookup(c.Row, c.Col+1, cells); ok {
			if d := math.Abs(cells[j].BaseX - c.BaseX); d > 0 {
				return d
			}
		}
		if j, ok := g.Lookup(c.Row+1, c.Col, cells); ok {
			if d := math.Abs(cells[j].BaseY - c.BaseY); d > 0 {
				return d
			}
		}
	}
	return 1
}

// Rows returns the number of indexed rows.
func (g *GridIndex) Rows() int { return g.rows }

// Cols returns the number of indexed columns.
func (g *GridIndex) Cols() int { return g.cols }

// Spacing returns the pixel distance between adjacent anchors.
func (g *GridIndex) Spacing() float64 { return g.spacing }

// Lookup returns the slice index of the cell at (row, col).
// ok is false when the slot is empty, out of range, or the index no longer
// matches cells (stale after a rebuild).
func (g *GridIndex) Lookup(row, col int, cells []components.Cell) (int, bool) {
	if g == nil || row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return -1, false
	}
	idx := int(g.slots[row*g.cols+col])
	if idx < 0 || idx >= len(cells) {
		return -1, false
	}
	if cells[idx].Row != row || cells[idx].Col != col {
		return -1, false
	}
	return idx, true
}

// ForEachNeighbor calls fn for every cell within reach rows/cols of (row, col),
// excluding the cell itself. Missing neighbors at the edges are skipped.
// Iteration stops early when fn returns false.
func (g *GridIndex) ForEachNeighbor(row, col, reach int, cells []components.Cell, fn func(idx int) bool) {
	if g == nil || reach < 1 {
		return
	}
	for dr := -reach; dr <= reach; dr++ {
		for dc := -reach; dc <= reach; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			idx, ok := g.Lookup(row+dr, col+dc, cells)
			if !ok {
				continue
			}
			if !fn(idx) {
				return
			}
		}
	}
}

// Reach converts a pixel radius into a row/col search distance.
func (g *GridIndex) Reach(radius float64) int {
	if g == nil || g.spacing <= 0 || !(radius > 0) {
		return 0
	}
	r := int(math.Ceil(radius / g.spacing))
	if r > g.rows+g.cols {
		r = g.rows + g.cols
	}
	return r
}
