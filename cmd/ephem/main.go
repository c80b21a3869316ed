// Command ephem tabulates body positions over a time range and writes
// them as CSV: one row per body per step, with absolute coordinates and
// the distance to the parent. Useful for eyeballing a system file
// without opening the viewer.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/clock"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/universe"
)

// Row is one CSV record of the ephemeris table.
type Row struct {
	Time     string  `csv:"time"`
	Epoch    int64   `csv:"epoch"`
	Body     string  `csv:"body"`
	XKm      float64 `csv:"x_km"`
	YKm      float64 `csv:"y_km"`
	ZKm      float64 `csv:"z_km"`
	ParentKm float64 `csv:"parent_range_km"`
}

func main() {
	systemPath := flag.String("system", "", "Path to system.yaml (empty = built-in solar system)")
	dateStr := flag.String("start", "", "Start date as YYYY-MM-DD (empty = display-time anchor)")
	days := flag.Float64("days", 365, "Length of the table in days")
	stepHours := flag.Float64("step-hours", 24, "Time step in hours")
	outPath := flag.String("o", "ephemeris.csv", "Output file path")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	sys, err := config.LoadSystem(*systemPath)
	if err != nil {
		slog.Error("failed to load system", "error", err)
		os.Exit(1)
	}
	params, err := sys.Params()
	if err != nil {
		slog.Error("failed to build system", "error", err)
		os.Exit(1)
	}
	u, err := universe.New(params)
	if err != nil {
		slog.Error("failed to build universe", "error", err)
		os.Exit(1)
	}

	start := 0.0
	if *dateStr != "" {
		t, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			slog.Error("failed to parse start date", "error", err)
			os.Exit(1)
		}
		start = clock.EpochAt(t)
	}

	step := *stepHours * 3600
	if step <= 0 {
		slog.Error("step must be positive", "step_hours", *stepHours)
		os.Exit(1)
	}
	end := start + *days*86400

	rows := tabulate(u, start, end, step)

	f, err := os.Create(*outPath)
	if err != nil {
		slog.Error("failed to create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		slog.Error("failed to write table", "error", err)
		os.Exit(1)
	}

	slog.Info("ephemeris written",
		"path", *outPath,
		"rows", len(rows),
		"bodies", len(u.Bodies()),
	)
}

// tabulate samples every body position from start to end inclusive.
func tabulate(u *universe.Universe, start, end, step float64) []*Row {
	var rows []*Row
	for epoch := start; epoch <= end; epoch += step {
		u.ComputeFrame(epoch)
		stamp := clock.FormatEpoch(clock.FloorEpoch(epoch))

		for _, h := range u.Bodies() {
			pos := h.State().Position
			row := &Row{
				Time:  stamp,
				Epoch: clock.FloorEpoch(epoch),
				Body:  h.Name(),
				XKm:   pos.X,
				YKm:   pos.Y,
				ZKm:   pos.Z,
			}
			if parent := h.Parent(); parent.Exists() {
				row.ParentKm = r3.Norm(r3.Sub(pos, parent.State().Position))
			}
			rows = append(rows, row)
		}
	}
	return rows
}
