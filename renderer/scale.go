package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// One render unit is a thousand kilometers. Raw system distances still
// overflow the GPU depth range at that scale, so depth is compressed
// toward a horizon: d' = H*d/(H+d). The map is strictly increasing,
// which keeps draw order intact, and the same factor is applied to
// body radii, which keeps angular sizes exact.
const (
	sceneUnitKm  = 1000.0
	sceneHorizon = 800.0
)

// toScene maps a camera-relative position in kilometers to render
// units. The returned scale is the compression factor for anything
// sized at that position (radii, offsets).
func toScene(rel r3.Vec) (rl.Vector3, float64) {
	u := r3.Norm(rel) / sceneUnitKm
	if u == 0 {
		return rl.Vector3{}, 1 / sceneUnitKm
	}
	scale := sceneHorizon / (sceneHorizon + u) / sceneUnitKm
	return vec3(r3.Scale(scale, rel)), scale
}

// bodyColor maps a mean surface color through the exposure setting.
// The ambient term keeps bodies from going fully black at low
// exposure.
func bodyColor(mean, ambient [3]float64, exposure float64) rl.Color {
	gain := math.Exp2(exposure)
	return rl.NewColor(
		channel(mean[0]*gain+ambient[0]),
		channel(mean[1]*gain+ambient[1]),
		channel(mean[2]*gain+ambient[2]),
		255,
	)
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// equatorialBasis returns two unit vectors spanning the plane normal
// to axis, right-handed with it.
func equatorialBasis(axis r3.Vec) (r3.Vec, r3.Vec) {
	ref := r3.Vec{Z: 1}
	if math.Abs(axis.Z) > 0.9 {
		ref = r3.Vec{X: 1}
	}
	e1 := r3.Unit(r3.Cross(ref, axis))
	e2 := r3.Cross(axis, e1)
	return e1, e2
}
