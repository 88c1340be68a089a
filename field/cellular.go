package field

import (
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

// cellularAutomata relaxes each cell toward the consensus of its eight grid
// neighbors while staying anchored to the smooth wave baseline.
func cellularAutomata(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	base := fallback(c, p, 1)

	var sum float64
	n := 0
	env.Index.ForEachNeighbor(c.Row, c.Col, 1, env.Cells, func(idx int) bool {
		sum += systems.ShortestDelta(c.Current, env.Cells[idx].CurrentAngle)
		n++
		return true
	})
	if n == 0 {
		return base
	}

	consensus := c.Current + sum/float64(n)
	return angle(base.Angle + p.Cellular.Blend*systems.ShortestDelta(base.Angle, consensus))
}
