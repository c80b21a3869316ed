package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/universe"
)

const pathSegments = 128

var orbitPathColor = rl.Color{R: 110, G: 120, B: 140, A: 90}

// orbitPaths samples every orbit once. The ellipse never changes
// shape, only its origin follows the parent, so the parent-relative
// polyline is cached for the life of the renderer.
func orbitPaths(u *universe.Universe) map[universe.Handle][]r3.Vec {
	paths := make(map[universe.Handle][]r3.Vec, u.Len())
	for _, h := range u.All() {
		elem := h.Param().Orbit
		if elem == nil || elem.Period == 0 {
			continue
		}
		pts := make([]r3.Vec, pathSegments+1)
		for i := 0; i <= pathSegments; i++ {
			pts[i] = elem.At(float64(i) / pathSegments * elem.Period)
		}
		paths[h] = pts
	}
	return paths
}

func (r *Renderer) drawOrbitPaths(p Params) {
	for h, pts := range r.paths {
		origin := h.Parent().State().Position
		prev, _ := toScene(r3.Sub(r3.Add(origin, pts[0]), p.CameraPos))
		for _, pt := range pts[1:] {
			next, _ := toScene(r3.Sub(r3.Add(origin, pt), p.CameraPos))
			rl.DrawLine3D(prev, next, orbitPathColor)
			prev = next
		}
	}
}
