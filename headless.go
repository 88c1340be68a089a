package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/vecfield/animator"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/export"
	"github.com/pthm-cable/vecfield/grid"
	"github.com/pthm-cable/vecfield/telemetry"
)

// headlessRun drives the animator from a wall-clock ticker without a window.
type headlessRun struct {
	cfg       *config.Config
	anim      *animator.Animator
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	rng       *rand.Rand
	maxFrames int
	logStats  bool
	svgPath   string
}

func (h *headlessRun) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := animator.NewTickerHost(time.Duration(h.cfg.Derived.FrameDT * float64(time.Second)))
	sched := animator.NewScheduler(host, h.anim)
	collector := telemetry.NewCollector(h.cfg.Telemetry.StatsWindow)

	width, height := h.cfg.Derived.CanvasW, h.cfg.Derived.CanvasH
	cells := grid.Build(grid.Layout{Width: width, Height: height}, h.cfg.Grid, h.rng)
	sched.Rebuild(cells, width, height)

	frames := 0
	sched.OnFrame = func(ts float64, f *animator.Frame) {
		frames++
		typ := h.anim.Settings().Type
		if fs, ok := collector.Observe(int64(f.Seq), ts, typ, f.Cells); ok {
			if h.logStats {
				slog.Info("field", "stats", fs)
				slog.Info("perf", "stats", h.perf.Stats())
			}
			if err := h.output.WriteFieldStats(fs); err != nil {
				slog.Error("field stats write failed", "error", err)
			}
			if err := h.output.WritePerf(h.perf.Stats(), int64(f.Seq), typ); err != nil {
				slog.Error("perf write failed", "error", err)
			}
		}
		if h.maxFrames > 0 && frames >= h.maxFrames {
			slog.Info("max frames reached", "frames", frames)
			cancel()
		}
	}

	slog.Info("starting headless animation",
		"type", h.anim.Settings().Type,
		"cells", len(cells),
		"seed", h.cfg.Grid.Seed,
		"max_frames", h.maxFrames,
	)

	sched.Start()
	err := host.Run(ctx)
	sched.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return h.finish()
}

// finish writes the final frame as SVG and snapshot.
func (h *headlessRun) finish() error {
	frame := h.anim.Frame()
	width, height := h.anim.Extent()
	settings := h.anim.Settings()

	if h.svgPath != "" {
		f, err := os.Create(h.svgPath)
		if err != nil {
			return fmt.Errorf("creating svg: %w", err)
		}
		err = export.WriteSVG(f, export.Frame{
			Cells:    frame.Cells,
			Width:    width,
			Height:   height,
			Spacing:  h.cfg.Grid.Spacing,
			Settings: settings,
		}, h.cfg.Export)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		slog.Info("svg exported", "path", h.svgPath)
	}

	path, err := h.output.WriteSnapshot(&telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Seed:     h.cfg.Grid.Seed,
		Width:    width,
		Height:   height,
		Frame:    int64(frame.Seq),
		TimeMS:   frame.Time,
		Settings: settings,
		Cells:    frame.Cells,
	})
	if err != nil {
		return err
	}
	if path != "" {
		slog.Info("snapshot saved", "path", path)
	}
	return nil
}
