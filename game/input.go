package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
)

// handleInput processes keyboard and wheel input for the frame.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		forward := !shiftDown()
		g.SwitchFocus(forward)
	}

	// Warp steps only apply with the camera at rest; transitions run
	// at real time.
	if g.camera.Phase() == camera.PhaseIdle {
		if rl.IsKeyPressed(rl.KeyK) {
			g.clock.Slower()
		}
		if rl.IsKeyPressed(rl.KeyL) {
			g.clock.Faster()
		}
	}

	if rl.IsKeyPressed(rl.KeyW) {
		g.wireframe = !g.wireframe
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.bloom = !g.bloom
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.showOrbits = !g.showOrbits
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		g.perf.Stats().LogStats()
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyF12) {
		g.takeScreenshot()
	}

	g.handleScroll()
}

// handleScroll routes the wheel: ctrl adjusts exposure, alt the field
// of view, plain scroll the zoom velocity.
func (g *Game) handleScroll() {
	wheel := float64(rl.GetMouseWheelMove())
	if wheel == 0 {
		return
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	alt := rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)

	if ctrl {
		if g.camera.Phase() == camera.PhaseIdle {
			g.exposure = clampExposure(g.exposure + exposureStep*wheel)
		}
		return
	}
	g.camera.HandleScroll(wheel, alt)
}

// cameraInput samples the mouse state for the camera controller.
func (g *Game) cameraInput() camera.Input {
	delta := rl.GetMouseDelta()
	return camera.Input{
		CursorDX:      float64(delta.X),
		CursorDY:      float64(delta.Y),
		DragPrimary:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		DragSecondary: rl.IsMouseButtonDown(rl.MouseButtonRight),
	}
}

// takeScreenshot captures the window into screenshots/, named after
// the wall clock.
func (g *Game) takeScreenshot() {
	path := screenshotPath(time.Now())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("creating screenshot dir", "error", err)
		return
	}
	rl.TakeScreenshot(path)
	slog.Info("screenshot", "path", path)
}

// screenshotPath names a capture after the local wall-clock moment,
// without zero padding.
func screenshotPath(t time.Time) string {
	return fmt.Sprintf("screenshots/screenshot_%d-%d-%d_%d-%d-%d.png",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func clampExposure(x float64) float64 {
	if x < -exposureMax {
		return -exposureMax
	}
	if x > exposureMax {
		return exposureMax
	}
	return x
}
