// Package game wires the simulation together: one Update advances the
// clock, recomputes the universe frame, feeds input to the camera, and
// one Draw hands the resulting pose to the renderer.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/clock"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/telemetry"
	"github.com/pthm-cable/orrery/ui"
	"github.com/pthm-cable/orrery/universe"
)

// Exposure bounds, in stops.
const (
	exposureStep = 0.1
	exposureMax  = 4.0
)

// Options configures a new game instance.
type Options struct {
	Epoch     float64        // starting simulation time, seconds past the display anchor
	System    *config.System // loaded system definition
	OutputDir string         // CSV output directory, empty disables
	Headless  bool           // skip the renderer and HUD
}

// Game holds the complete application state.
type Game struct {
	clock    *clock.Clock
	universe *universe.Universe
	camera   *camera.Controller
	renderer *renderer.Renderer
	hud      *ui.HUD

	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	perfWindow int64

	pose       camera.Pose
	exposure   float64
	wireframe  bool
	bloom      bool
	showOrbits bool
	showPerf   bool

	frame    int64
	headless bool
}

// New builds a game from the loaded system definition.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	params, err := opts.System.Params()
	if err != nil {
		return nil, fmt.Errorf("building system: %w", err)
	}
	u, err := universe.New(params)
	if err != nil {
		return nil, fmt.Errorf("building universe: %w", err)
	}
	u.ComputeFrame(opts.Epoch)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output dir: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		clock:      clock.New(opts.Epoch),
		universe:   u,
		camera:     camera.New(u, startingIndex(u, opts.System.StartingBody), cfg.Controls.Sensitivity),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:     output,
		perfWindow: max(int64(cfg.Telemetry.PerfWindow), 1),
		bloom:      true,
		showOrbits: cfg.Graphics.ShowOrbits,
		headless:   opts.Headless,
	}
	if !opts.Headless {
		g.renderer = renderer.New(u, opts.System)
		g.hud = ui.NewHUD()
	}

	slog.Info("game ready",
		"system", opts.System.Name,
		"entities", u.Len(),
		"focused", g.camera.FocusedBody(u).Name(),
	)
	return g, nil
}

// Update advances one frame: clock, universe, input, camera.
func (g *Game) Update() {
	dt := float64(rl.GetFrameTime())

	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseClock)
	g.clock.Advance(dt)

	g.perf.StartPhase(telemetry.PhaseUniverse)
	g.universe.ComputeFrame(g.clock.Epoch())

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.handleInput()
	g.pose = g.camera.Update(dt, g.cameraInput(), g.universe)
}

// UpdateHeadless runs the same core step without raylib. Used by
// --headless runs and tests.
func (g *Game) UpdateHeadless(dt float64) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseClock)
	g.clock.Advance(dt)

	g.perf.StartPhase(telemetry.PhaseUniverse)
	g.universe.ComputeFrame(g.clock.Epoch())

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.pose = g.camera.Update(dt, camera.Input{}, g.universe)

	g.perf.EndFrame()
	g.frame++
	g.flushPerfWindow()
}

// Draw renders the frame and closes out its timing.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.renderer.Draw(g.universe, g.renderParams())

	g.perf.StartPhase(telemetry.PhaseHUD)
	g.applyWarpEvent(g.hud.Draw(g.hudData()))
	if g.showPerf {
		g.hud.DrawPerf(g.perf.Stats())
	}
	rl.EndDrawing()

	g.perf.EndFrame()
	g.frame++
	g.flushPerfWindow()
}

// SwitchFocus asks the camera for a focus change and resets the time
// warp when the transition is granted.
func (g *Game) SwitchFocus(forward bool) bool {
	if !g.camera.RequestSwitch(forward, g.universe) {
		return false
	}
	g.clock.ResetWarp()
	slog.Info("focus switch", "target", g.camera.FocusedBody(g.universe).Name())
	return true
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Epoch returns the current simulation time.
func (g *Game) Epoch() float64 {
	return g.clock.Epoch()
}

// Unload flushes outputs and releases renderer resources.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}

func (g *Game) renderParams() renderer.Params {
	return renderer.Params{
		CameraPos:  g.pose.Position,
		Forward:    g.pose.Forward,
		Fovy:       g.pose.Fovy,
		Exposure:   g.exposure,
		Wireframe:  g.wireframe,
		Bloom:      g.bloom,
		ShowOrbits: g.showOrbits,
		Residency:  g.universe.ResidencySet(g.camera.FocusedBody(g.universe)),
		Label:      g.pose.Label,
		LabelAlpha: g.pose.LabelAlpha,
	}
}

func (g *Game) hudData() ui.HUDData {
	focused := g.camera.FocusedBody(g.universe)
	p := focused.Param()

	info := ui.FocusInfo{
		Name:     p.DisplayName,
		RadiusKm: p.Model.Radius,
		CameraKm: distance(focused.State().Position, g.pose.Position),
	}
	if p.Orbit != nil {
		info.OrbitPeriod = p.Orbit.Period
	}

	return ui.HUDData{
		Time:    clock.FormatEpoch(clock.FloorEpoch(g.clock.Epoch())),
		Warp:    clock.FormatWarp(g.clock.Warp()),
		Focused: info,
	}
}

func (g *Game) applyWarpEvent(ev ui.WarpEvent) {
	if ev == ui.WarpNone || g.camera.Phase() != camera.PhaseIdle {
		return
	}
	if ev == ui.WarpSlower {
		g.clock.Slower()
	} else {
		g.clock.Faster()
	}
}

// flushPerfWindow appends one CSV row per completed stats window.
func (g *Game) flushPerfWindow() {
	if g.frame%g.perfWindow != 0 {
		return
	}
	if err := g.output.WritePerf(g.perf.Stats(), clock.FloorEpoch(g.clock.Epoch())); err != nil {
		slog.Error("writing perf window", "error", err)
	}
}

// startingIndex locates the configured starting body in the camera's
// cycle order.
func startingIndex(u *universe.Universe, name string) int {
	for i, h := range u.Bodies() {
		if h.Name() == name {
			return i
		}
	}
	return 0
}

func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}
