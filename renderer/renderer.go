// Package renderer draws the computed universe with raylib. It is a
// pure consumer: everything it reads arrives through Params or the
// universe frame state, and nothing flows back into the simulation.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/universe"
)

// Params is the per-frame input record assembled by the game layer.
type Params struct {
	CameraPos r3.Vec  // absolute camera position, km
	Forward   r3.Vec  // unit view direction
	Fovy      float64 // vertical field of view, radians

	Exposure   float64 // stops, applied as 2^exposure
	Wireframe  bool
	Bloom      bool
	ShowOrbits bool

	Residency []universe.Handle // bodies drawn at full detail

	Label      universe.Handle // body whose name is shown, if any
	LabelAlpha float64
}

// Renderer holds the static scene data: the star shell and the cached
// orbit polylines. All per-frame state comes in through Params.
type Renderer struct {
	detail    int32
	labelSize int32
	ambient   [3]float64

	stars []star
	paths map[universe.Handle][]r3.Vec
}

// New builds a renderer for the given universe. Safe to call before
// the raylib window exists; only Draw touches the GPU.
func New(u *universe.Universe, sys *config.System) *Renderer {
	gfx := config.Cfg().Graphics
	return &Renderer{
		detail:    int32(gfx.SphereDetail),
		labelSize: int32(gfx.LabelFontSize),
		ambient:   sys.AmbientColor,
		stars:     starfield(gfx.StarfieldCount, sys.StarMap.Intensity, sys.StarMap.Tilt*math.Pi/180),
		paths:     orbitPaths(u),
	}
}

// Draw renders one frame of the scene inside a BeginDrawing block.
func (r *Renderer) Draw(u *universe.Universe, p Params) {
	cam := rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 0),
		Target:     vec3(p.Forward),
		Up:         rl.NewVector3(0, 0, 1),
		Fovy:       float32(p.Fovy * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}

	resident := make(map[universe.Handle]bool, len(p.Residency))
	for _, h := range p.Residency {
		resident[h] = true
	}

	rl.BeginMode3D(cam)
	r.drawStars()
	if p.ShowOrbits {
		r.drawOrbitPaths(p)
	}
	for _, h := range u.Bodies() {
		r.drawBody(h, p, resident[h])
	}
	rl.EndMode3D()

	r.drawLabel(cam, p)
}

// Unload releases GPU resources. The renderer holds none today, but
// callers pair it with New the way the rest of the draw layers do.
func (r *Renderer) Unload() {}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
