// Package ui draws the screen-space readout over the 3D scene: the
// simulation date, the warp controls, the focused-body panel, and an
// optional frame-time overlay.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/telemetry"
)

// WarpEvent is a press on the warp buttons.
type WarpEvent int

const (
	WarpNone WarpEvent = iota
	WarpSlower
	WarpFaster
)

// HUDData is the frame snapshot the HUD prints.
type HUDData struct {
	Time    string // formatted simulation date
	Warp    string // warp readout, e.g. "x3600"
	Focused FocusInfo
}

// FocusInfo describes the body the camera is locked to.
type FocusInfo struct {
	Name        string
	RadiusKm    float64
	OrbitPeriod float64 // seconds, 0 for roots
	CameraKm    float64 // camera distance to the body center
}

// HUD owns the layout constants and theme of the overlay.
type HUD struct {
	fontSize int32
	theme    theme
}

type theme struct {
	panelBg     rl.Color
	panelBorder rl.Color
	label       rl.Color
	value       rl.Color
	padding     int32
	lineHeight  int32
	labelWidth  int32
}

// NewHUD builds the overlay with the configured font size.
func NewHUD() *HUD {
	size := int32(config.Cfg().Graphics.LabelFontSize)
	return &HUD{
		fontSize: size,
		theme: theme{
			panelBg:     rl.Color{R: 20, G: 25, B: 30, A: 200},
			panelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
			label:       rl.LightGray,
			value:       rl.RayWhite,
			padding:     10,
			lineHeight:  size + 6,
			labelWidth:  90,
		},
	}
}

// Draw renders the overlay and reports which warp button, if any, was
// pressed this frame.
func (h *HUD) Draw(data HUDData) WarpEvent {
	t := h.theme
	x := t.padding
	y := t.padding

	rl.DrawText(data.Time, x, y, h.fontSize, t.value)
	y += t.lineHeight

	ev := WarpNone
	side := float32(t.lineHeight)
	if gui.Button(rl.NewRectangle(float32(x), float32(y), side, side), "-") {
		ev = WarpSlower
	}
	warpX := x + t.lineHeight + 8
	rl.DrawText(data.Warp, warpX, y+3, h.fontSize, t.value)
	plusX := warpX + rl.MeasureText(data.Warp, h.fontSize) + 8
	if gui.Button(rl.NewRectangle(float32(plusX), float32(y), side, side), "+") {
		ev = WarpFaster
	}

	h.drawFocusPanel(data.Focused)
	return ev
}

// drawFocusPanel prints the focused body's vitals bottom-left.
func (h *HUD) drawFocusPanel(info FocusInfo) {
	t := h.theme
	lines := int32(3)
	if info.OrbitPeriod > 0 {
		lines = 4
	}

	width := int32(250)
	height := lines*t.lineHeight + t.padding*2
	x := t.padding
	y := int32(rl.GetScreenHeight()) - height - t.padding

	rl.DrawRectangle(x, y, width, height, t.panelBg)
	rl.DrawRectangleLines(x, y, width, height, t.panelBorder)

	cx := x + t.padding
	cy := y + t.padding
	rl.DrawText(info.Name, cx, cy, h.fontSize, t.value)
	cy += t.lineHeight

	cy = h.drawRow(cx, cy, "Radius", fmt.Sprintf("%.0f km", info.RadiusKm))
	if info.OrbitPeriod > 0 {
		cy = h.drawRow(cx, cy, "Period", formatDuration(info.OrbitPeriod))
	}
	h.drawRow(cx, cy, "Range", formatRange(info.CameraKm))
}

func (h *HUD) drawRow(x, y int32, label, value string) int32 {
	t := h.theme
	rl.DrawText(label+":", x, y, h.fontSize, t.label)
	rl.DrawText(value, x+t.labelWidth, y, h.fontSize, t.value)
	return y + t.lineHeight
}

// DrawPerf prints the frame breakdown top-right.
func (h *HUD) DrawPerf(stats telemetry.PerfStats) {
	t := h.theme
	width := int32(230)
	x := int32(rl.GetScreenWidth()) - width - t.padding
	y := t.padding

	height := t.lineHeight*int32(2+len(stats.PhasePct)) + t.padding*2
	rl.DrawRectangle(x, y, width, height, t.panelBg)
	rl.DrawRectangleLines(x, y, width, height, t.panelBorder)

	cx := x + t.padding
	cy := y + t.padding
	cy = h.drawRow(cx, cy, "FPS", fmt.Sprintf("%.0f", stats.FPS))
	cy = h.drawRow(cx, cy, "Frame", fmt.Sprintf("%.2f ms", stats.AvgFrameDuration.Seconds()*1000))

	for _, phase := range telemetry.Phases {
		pct, ok := stats.PhasePct[phase]
		if !ok {
			continue
		}
		cy = h.drawRow(cx, cy, phase, fmt.Sprintf("%.1f%%", pct))
	}
}

// formatDuration renders an orbital period in the largest unit that
// reads well.
func formatDuration(seconds float64) string {
	const day = 86400.0
	switch {
	case seconds >= 2*365.25*day:
		return fmt.Sprintf("%.1f y", seconds/(365.25*day))
	case seconds >= 2*day:
		return fmt.Sprintf("%.1f d", seconds/day)
	default:
		return fmt.Sprintf("%.1f h", seconds/3600)
	}
}

// formatRange renders a camera distance in km, switching to millions
// when the number stops being readable.
func formatRange(km float64) string {
	if km >= 1e6 {
		return fmt.Sprintf("%.2f Mkm", km/1e6)
	}
	return fmt.Sprintf("%.0f km", km)
}
