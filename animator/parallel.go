package animator

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/field"
)

// defaultParallelThreshold is the minimum cell count to split the target pass.
// Below this, single-threaded is faster due to goroutine overhead.
const defaultParallelThreshold = 2048

// targetPass holds the read-only inputs for one frame's target computation.
type targetPass struct {
	fn      field.Func
	params  *config.AnimationConfig
	env     field.Env // Rand is replaced per chunk
	cells   []components.Cell
	pointer *field.Point
	ts      float64
	w, h    float64
	seed    int64
	frame   uint64
	results []field.Result
}

// computeRange fills results[start:end] from the snapshot. Each chunk owns a
// private RNG seeded from the frame and chunk so output does not depend on
// goroutine scheduling.
func (tp *targetPass) computeRange(chunk, start, end int) {
	env := tp.env
	env.Rand = rand.New(rand.NewSource(tp.seed ^ int64(tp.frame)*7919 ^ int64(chunk)*104729))

	var ctx field.Context
	for i := start; i < end; i++ {
		c := &tp.cells[i]
		ctx = field.Context{
			X:              c.BaseX,
			Y:              c.BaseY,
			Row:            c.Row,
			Col:            c.Col,
			Index:          i,
			Current:        c.CurrentAngle,
			Layer:          c.Layer,
			ActivationTime: c.ActivationTime,
			FlockID:        c.FlockID,
			Time:           tp.ts,
			Width:          tp.w,
			Height:         tp.h,
			Pointer:        tp.pointer,
		}
		tp.results[i] = tp.fn(&ctx, tp.params, &env)
	}
}

// run computes all targets, fanning out across workers when the grid is at
// least threshold cells. It returns once every chunk has finished.
func (tp *targetPass) run(threshold, workers int) {
	n := len(tp.cells)
	if n == 0 {
		return
	}
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n < threshold || workers == 1 {
		tp.computeRange(0, 0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		chunk := w
		g.Go(func() error {
			tp.computeRange(chunk, start, end)
			return nil
		})
	}
	// Chunks never fail; Wait is the barrier before the integrate phase.
	_ = g.Wait()
}
