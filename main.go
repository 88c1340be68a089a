package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/vecfield/animator"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/export"
	"github.com/pthm-cable/vecfield/field"
	"github.com/pthm-cable/vecfield/systems"
	"github.com/pthm-cable/vecfield/telemetry"
	"github.com/pthm-cable/vecfield/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	animType := flag.String("type", "", "Animation type (empty = use config)")
	maxFrames := flag.Int("frames", 0, "Stop after N frames in headless mode (0 = until interrupted)")
	fps := flag.Int("fps", 0, "Frame rate (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, or time-based if that is 0)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	exportSVG := flag.String("export-svg", "", "Write the final headless frame as SVG to this path")
	logStats := flag.Bool("log-stats", false, "Output field and perf stats via slog")
	importPath := flag.String("import", "", "Load animation settings from an exported .svg, a .json snapshot or a settings .yaml")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *fps > 0 {
		cfg.Screen.TargetFPS = *fps
		cfg.Derived.FrameDT = 1.0 / float64(*fps)
	}
	if *animType != "" {
		cfg.Animation.Type = *animType
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Grid.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	cfg.Grid.Seed = rngSeed

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	registry := field.NewRegistry()
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	anim := animator.New(cfg.Animation, animator.Options{
		Registry:          registry,
		Noise:             systems.NewNoiseSource(cfg.Noise.Kind, cfg.Noise.Seed),
		Seed:              rngSeed,
		ParallelThreshold: cfg.Parallel.Threshold,
		Workers:           cfg.Parallel.Workers,
		FrameDT:           cfg.Derived.FrameDT,
		Perf:              perf,
	})
	if *importPath != "" {
		imported, err := export.ImportSettings(*importPath)
		if err != nil {
			slog.Error("failed to import settings", "path", *importPath, "error", err)
			os.Exit(1)
		}
		anim.UpdateSettings(func(a *config.AnimationConfig) {
			*a = imported
			if *animType != "" {
				a.Type = *animType
			}
		})
		slog.Info("settings imported", "path", *importPath, "type", anim.Settings().Type)
	}
	rng := rand.New(rand.NewSource(rngSeed))

	if *headless {
		h := headlessRun{
			cfg:       cfg,
			anim:      anim,
			perf:      perf,
			output:    output,
			rng:       rng,
			maxFrames: *maxFrames,
			logStats:  *logStats,
			svgPath:   *exportSVG,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := h.run(ctx); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	host := animator.NewQueueHost()
	v := viewer.New(cfg, viewer.Options{
		Animator:  anim,
		Scheduler: animator.NewScheduler(host, anim),
		Host:      host,
		Registry:  registry,
		Perf:      perf,
		Output:    output,
		Rand:      rng,
		ExportDir: exportDirOr(*outputDir),
	})
	if err := v.Run(); err != nil {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

func exportDirOr(dir string) string {
	if dir != "" {
		return dir
	}
	return fmt.Sprintf("vecfield-%s", time.Now().Format("20060102-150405"))
}
