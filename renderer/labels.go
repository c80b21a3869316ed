package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// drawLabel projects the labelled body onto the screen and prints its
// display name, faded by the focus-switch handoff alpha. Called
// outside the 3D block.
func (r *Renderer) drawLabel(cam rl.Camera3D, p Params) {
	if p.LabelAlpha <= 0 || !p.Label.Exists() {
		return
	}

	rel := r3.Sub(p.Label.State().Position, p.CameraPos)
	if r3.Dot(rel, p.Forward) <= 0 {
		return // behind the view plane, projection would mirror
	}

	center, _ := toScene(rel)
	screen := rl.GetWorldToScreen(center, cam)

	name := p.Label.Param().DisplayName
	x := int32(screen.X) - rl.MeasureText(name, r.labelSize)/2
	y := int32(screen.Y) - r.labelSize*2
	rl.DrawText(name, x, y, r.labelSize, rl.Fade(rl.RayWhite, float32(p.LabelAlpha)))
}
