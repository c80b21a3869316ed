package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/clock"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to settings.yaml (empty = use defaults)")
	systemPath := flag.String("system", "", "Path to system.yaml (empty = built-in solar system)")
	dateStr := flag.String("date", "", "Starting date as YYYY-MM-DD (empty = now)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	sys, err := config.LoadSystem(*systemPath)
	if err != nil {
		slog.Error("failed to load system", "error", err)
		os.Exit(1)
	}

	epoch, err := startEpoch(*dateStr)
	if err != nil {
		slog.Error("failed to parse start date", "error", err)
		os.Exit(1)
	}

	opts := game.Options{
		Epoch:     epoch,
		System:    sys,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		g, err := game.New(opts)
		if err != nil {
			slog.Error("failed to build game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"system", sys.Name,
			"max_frames", *maxFrames,
		)

		for {
			g.UpdateHeadless(1.0 / 60.0)

			if *maxFrames > 0 && g.Frame() >= int64(*maxFrames) {
				slog.Info("max frames reached", "frame", g.Frame())
				return
			}
		}
	}

	// Graphical mode
	if cfg.Video.MSAA {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(cfg.Video.Width), int32(cfg.Video.Height), "Orrery")
	defer rl.CloseWindow()

	if cfg.Video.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(int32(cfg.Video.TargetFPS))

	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to build game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= int64(*maxFrames) {
			break
		}
	}
}

// startEpoch turns the -date flag into simulation time; empty means
// the real current moment.
func startEpoch(date string) (float64, error) {
	if date == "" {
		return clock.EpochAt(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return clock.EpochAt(t), nil
}
