package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/universe"
)

const (
	ringSegments  = 64
	minDetail     = 8
	meridianReach = 1.15
)

// Additive glow shells drawn over star bodies when bloom is on.
var glowShells = []struct {
	radius float64
	alpha  float32
}{
	{1.6, 0.30},
	{2.6, 0.14},
	{4.2, 0.06},
}

func (r *Renderer) drawBody(h universe.Handle, p Params, resident bool) {
	param := h.Param()
	m := param.Model
	st := h.State()

	rel := r3.Sub(st.Position, p.CameraPos)
	center, scale := toScene(rel)
	radius := float32(m.Radius * scale)

	detail := r.detail
	if !resident {
		detail = max(detail/2, minDetail)
	}

	col := bodyColor(m.MeanColor, r.ambient, p.Exposure)
	if param.Star != nil {
		col = bodyColor(scaleColor(m.MeanColor, param.Star.Brightness), r.ambient, p.Exposure)
	}

	if p.Wireframe {
		rl.DrawSphereWires(center, radius, detail, detail, col)
	} else {
		rl.DrawSphereEx(center, radius, detail, detail, col)
	}

	if param.Atmo != nil && !p.Wireframe {
		drawAtmosphere(center, radius, m, param.Atmo, detail)
	}
	if param.Ring != nil {
		drawRing(center, param.Ring, scale, p.Exposure)
	}
	if param.Star != nil && p.Bloom && !p.Wireframe {
		drawGlow(center, radius, col, detail)
	}
	if resident && param.Star == nil {
		drawMeridian(center, radius, m.Axis, st.RotationAngle)
	}
}

// drawAtmosphere wraps the body in a translucent shell tinted by the
// scattering coefficients.
func drawAtmosphere(center rl.Vector3, radius float32, m *universe.Model, a *universe.Atmo, detail int32) {
	shell := radius * float32(1+a.MaxHeight/m.Radius)
	tint := atmoColor(a.K)
	alpha := float32(0.25 * math.Min(a.Density, 1))
	rl.DrawSphereEx(center, shell, detail, detail, rl.Fade(tint, alpha))
}

// atmoColor normalizes the first three scattering coefficients into a
// display tint.
func atmoColor(k [4]float64) rl.Color {
	peak := math.Max(k[0], math.Max(k[1], k[2]))
	if peak == 0 {
		return rl.SkyBlue
	}
	return rl.NewColor(channel(k[0]/peak), channel(k[1]/peak), channel(k[2]/peak), 255)
}

// drawRing builds the annulus from quads in the ring plane, both
// windings so it stays visible from below.
func drawRing(center rl.Vector3, ring *universe.Ring, scale, exposure float64) {
	e1, e2 := equatorialBasis(ring.Normal)
	inner := ring.InnerRadius * scale
	outer := ring.OuterRadius * scale
	col := rl.Fade(bodyColor(ring.Color, [3]float64{}, exposure), float32(ring.Opacity))

	dir := func(a float64) r3.Vec {
		return r3.Add(r3.Scale(math.Cos(a), e1), r3.Scale(math.Sin(a), e2))
	}
	at := func(d r3.Vec, dist float64) rl.Vector3 {
		return rl.NewVector3(
			center.X+float32(d.X*dist),
			center.Y+float32(d.Y*dist),
			center.Z+float32(d.Z*dist),
		)
	}

	for i := 0; i < ringSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / ringSegments
		a1 := 2 * math.Pi * float64(i+1) / ringSegments
		d0, d1 := dir(a0), dir(a1)

		i0, o0 := at(d0, inner), at(d0, outer)
		i1, o1 := at(d1, inner), at(d1, outer)

		rl.DrawTriangle3D(i0, o0, o1, col)
		rl.DrawTriangle3D(i0, o1, i1, col)
		rl.DrawTriangle3D(o1, o0, i0, col)
		rl.DrawTriangle3D(i1, o1, i0, col)
	}
}

// drawGlow layers additive shells over a star body.
func drawGlow(center rl.Vector3, radius float32, col rl.Color, detail int32) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, shell := range glowShells {
		rl.DrawSphereEx(center, radius*float32(shell.radius), detail, detail, rl.Fade(col, shell.alpha))
	}
	rl.EndBlendMode()
}

// drawMeridian marks the spin phase with a tick sticking out of the
// equator, anchored so every body's phase zero points the same way.
func drawMeridian(center rl.Vector3, radius float32, axis r3.Vec, angle float64) {
	e1, e2 := equatorialBasis(axis)
	d := r3.Add(r3.Scale(math.Cos(angle), e1), r3.Scale(math.Sin(angle), e2))
	surface := rl.NewVector3(
		center.X+float32(d.X)*radius,
		center.Y+float32(d.Y)*radius,
		center.Z+float32(d.Z)*radius,
	)
	tip := rl.NewVector3(
		center.X+float32(d.X)*radius*meridianReach,
		center.Y+float32(d.Y)*radius*meridianReach,
		center.Z+float32(d.Z)*radius*meridianReach,
	)
	rl.DrawLine3D(surface, tip, rl.NewColor(255, 90, 60, 200))
}

func scaleColor(c [3]float64, f float64) [3]float64 {
	return [3]float64{c[0] * f, c[1] * f, c[2] * f}
}
