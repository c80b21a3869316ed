package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	starfieldSeed  = 7
	starDomeRadius = 900.0 // render units, beyond the depth horizon

	// Two thirds of the stars gather into the galactic band, with a
	// gaussian spread of elevation around its plane.
	bandFraction = 2.0 / 3.0
	bandSigma    = 0.12
)

type star struct {
	dir   r3.Vec
	shade uint8
}

// starfield scatters count stars over the sky sphere. A fraction of
// them concentrates into a band tilted off the system plane, which
// reads as the galaxy seen from inside it. Intensity lifts or dims the
// whole field. The layout is deterministic across runs.
func starfield(count int, intensity, tilt float64) []star {
	rng := rand.New(rand.NewSource(starfieldSeed))
	cosT, sinT := math.Cos(tilt), math.Sin(tilt)

	stars := make([]star, count)
	for i := range stars {
		var dir r3.Vec
		if float64(i) < float64(count)*bandFraction {
			theta := rng.Float64() * 2 * math.Pi
			phi := rng.NormFloat64() * bandSigma
			dir = r3.Vec{
				X: math.Cos(theta) * math.Cos(phi),
				Y: math.Sin(theta) * math.Cos(phi),
				Z: math.Sin(phi),
			}
			// Tilt the band plane about the X axis.
			dir = r3.Vec{
				X: dir.X,
				Y: dir.Y*cosT - dir.Z*sinT,
				Z: dir.Y*sinT + dir.Z*cosT,
			}
		} else {
			z := 2*rng.Float64() - 1
			theta := rng.Float64() * 2 * math.Pi
			s := math.Sqrt(1 - z*z)
			dir = r3.Vec{X: s * math.Cos(theta), Y: s * math.Sin(theta), Z: z}
		}

		base := 120 + rng.Float64()*135
		stars[i] = star{dir: dir, shade: channel(base / 255 * (0.5 + intensity))}
	}
	return stars
}

func (r *Renderer) drawStars() {
	for _, s := range r.stars {
		pos := vec3(r3.Scale(starDomeRadius, s.dir))
		rl.DrawPoint3D(pos, rl.NewColor(s.shade, s.shade, s.shade, 255))
	}
}
