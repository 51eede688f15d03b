package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
)

// runOptions carries the parsed command line into the backends.
type runOptions struct {
	cfg       *config.Config
	effect    systems.Variant
	seed      int64
	compact   bool
	maxFrames uint64
	logStats  bool
	output    *telemetry.OutputManager
	logger    *slog.Logger
}

func main() {
	os.Exit(run())
}

// run parses flags, runs the chosen backend and returns the exit code.
func run() int {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	effectName := flag.String("effect", "space", "Field effect: space (meteors) or warp (streaks)")
	backend := flag.String("backend", "raylib", "Host backend: raylib, terminal or headless")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	compact := flag.Bool("compact", false, "Report a coarse pointer, as on a phone or tablet")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N executed steps (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logFile := flag.String("log-file", "", "Log file for the terminal backend (empty = discard)")
	width := flag.Int("width", 0, "Headless viewport width (0 = use config)")
	height := flag.Int("height", 0, "Headless viewport height (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()
	if *width > 0 {
		cfg.Screen.Width = *width
	}
	if *height > 0 {
		cfg.Screen.Height = *height
	}

	effect, err := systems.ParseEffect(*effectName)
	if err != nil {
		slog.Error("invalid effect", "error", err)
		return 2
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal backend owns stdout, so its logs go to a file or nowhere
	var logOut io.Writer = os.Stdout
	if *backend == "terminal" {
		logOut = io.Discard
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file", "error", err)
				return 1
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		return 1
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := runOptions{
		cfg:       cfg,
		effect:    effect,
		seed:      rngSeed,
		compact:   *compact,
		maxFrames: *maxFrames,
		logStats:  *logStats,
		output:    output,
		logger:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting field",
		"backend", *backend,
		"effect", effect.Effect(),
		"seed", rngSeed,
		"max_frames", *maxFrames,
		"output_dir", *outputDir,
	)

	switch *backend {
	case "headless":
		err = runHeadless(ctx, opts)
	case "terminal":
		err = runTerminal(ctx, opts)
	case "raylib":
		err = runWindow(ctx, opts)
	default:
		slog.Error("unknown backend", "backend", *backend)
		return 2
	}
	if err != nil {
		slog.Error("field stopped", "error", err)
		return 1
	}
	return 0
}

// onWindow persists and optionally logs each completed telemetry window.
func (o runOptions) onWindow(w telemetry.WindowStats, p telemetry.PerfStats) {
	if err := o.output.WriteWindow(w); err != nil {
		o.logger.Error("failed to write window stats", "error", err)
	}
	if err := o.output.WritePerf(p, w.WindowEnd); err != nil {
		o.logger.Error("failed to write perf stats", "error", err)
	}
	if o.logStats {
		w.LogStats(o.logger)
		o.logger.Info("perf", "window_end", w.WindowEnd, "perf", p)
	}
}
