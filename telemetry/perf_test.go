package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUniverse)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseUniverse]; !ok {
		t.Error("expected universe phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}

	if stats.PhaseMax[PhaseRender] < stats.PhaseAvg[PhaseRender] {
		t.Error("expected phase max to be at least the phase average")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUniverse)
		pc.EndFrame()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}

	if stats.FPS <= 0 {
		t.Error("expected positive fps")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc := NewPerfCollector(4)
	for i := 0; i < 4; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseRender)
		time.Sleep(50 * time.Microsecond)
		pc.EndFrame()
	}

	row := pc.Stats().ToCSV(1234)

	if row.WindowEnd != 1234 {
		t.Errorf("expected window end 1234, got %d", row.WindowEnd)
	}
	if row.AvgFrameUS <= 0 {
		t.Error("expected positive average frame time")
	}
	if row.RenderPct <= 0 {
		t.Error("expected render percentage to be recorded")
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods must be safe on a nil manager
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil manager WritePerf: %v", err)
	}
	if om.Dir() != "" {
		t.Error("expected empty dir from nil manager")
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWritesPerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	pc := NewPerfCollector(2)
	for i := 0; i < 2; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUniverse)
		pc.EndFrame()
	}

	if err := om.WritePerf(pc.Stats(), 100); err != nil {
		t.Fatalf("writing perf: %v", err)
	}
	if err := om.WritePerf(pc.Stats(), 200); err != nil {
		t.Fatalf("writing perf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// One header plus two records
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("expected a header row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "100,") {
		t.Errorf("expected first record at window 100, got %q", lines[1])
	}
}
