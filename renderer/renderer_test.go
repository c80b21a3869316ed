package renderer

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/universe"
)

func TestToSceneNearIdentity(t *testing.T) {
	rel := r3.Vec{X: 100, Y: -50, Z: 25}
	pos, scale := toScene(rel)

	// Close positions land at the raw megameter scale, up to the
	// tiny compression of the depth map.
	if !scalar.EqualWithinAbs(float64(pos.X), 0.1, 1e-4) {
		t.Errorf("expected x near 0.1, got %v", pos.X)
	}
	if !scalar.EqualWithinAbs(scale*sceneUnitKm, 1, 1e-3) {
		t.Errorf("expected near-unit compression, got %v", scale*sceneUnitKm)
	}
}

func TestToSceneAngularSizePreserved(t *testing.T) {
	// The sun from 1 au: the apparent radius/distance ratio must
	// survive the depth compression exactly.
	rel := r3.Vec{X: 1.496e8}
	const radius = 695700.0

	pos, scale := toScene(rel)
	dist := math.Sqrt(float64(pos.X)*float64(pos.X) + float64(pos.Y)*float64(pos.Y) + float64(pos.Z)*float64(pos.Z))

	got := radius * scale / dist
	want := radius / r3.Norm(rel)
	if !scalar.EqualWithinAbs(got, want, want*1e-5) {
		t.Errorf("expected angular ratio %v, got %v", want, got)
	}
}

func TestToSceneDepthOrder(t *testing.T) {
	dists := []float64{1e3, 1e5, 1e7, 1e9, 1e11}
	prev := -1.0
	for _, d := range dists {
		pos, _ := toScene(r3.Vec{X: d})
		depth := float64(pos.X)
		if depth <= prev {
			t.Errorf("depth order broken at %g km: %v <= %v", d, depth, prev)
		}
		if depth >= sceneHorizon {
			t.Errorf("distance %g km mapped past the horizon: %v", d, depth)
		}
		prev = depth
	}
}

func TestToSceneZero(t *testing.T) {
	pos, scale := toScene(r3.Vec{})
	if pos.X != 0 || pos.Y != 0 || pos.Z != 0 {
		t.Errorf("expected origin, got %v", pos)
	}
	if scale != 1/sceneUnitKm {
		t.Errorf("expected raw scale at origin, got %v", scale)
	}
}

func TestBodyColorExposure(t *testing.T) {
	mean := [3]float64{0.2, 0.4, 0.1}
	none := [3]float64{}

	base := bodyColor(mean, none, 0)
	if base.R != 51 || base.G != 102 || base.B != 25 {
		t.Errorf("expected flat mapping at exposure 0, got %v", base)
	}

	up := bodyColor(mean, none, 1)
	if up.R != 102 || up.G != 204 || up.B != 51 {
		t.Errorf("expected one stop to double channels, got %v", up)
	}

	blown := bodyColor(mean, none, 4)
	if blown.G != 255 {
		t.Errorf("expected green clamped at 255, got %v", blown.G)
	}

	dark := bodyColor(mean, [3]float64{0.1, 0.1, 0.1}, -20)
	if dark.R != 25 {
		t.Errorf("expected ambient floor to hold, got %v", dark.R)
	}
}

func TestChannelClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{3, 255},
	}
	for _, c := range cases {
		if got := channel(c.in); got != c.want {
			t.Errorf("channel(%v): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestEquatorialBasis(t *testing.T) {
	axes := []r3.Vec{
		{Z: 1},
		{X: 1},
		r3.Unit(r3.Vec{X: 0.3987, Z: 0.9171}), // earth-like tilt
		{Z: -1},
	}
	for _, axis := range axes {
		e1, e2 := equatorialBasis(axis)

		if !scalar.EqualWithinAbs(r3.Norm(e1), 1, 1e-12) || !scalar.EqualWithinAbs(r3.Norm(e2), 1, 1e-9) {
			t.Errorf("axis %v: basis not unit length: %v, %v", axis, r3.Norm(e1), r3.Norm(e2))
		}
		if !scalar.EqualWithinAbs(r3.Dot(e1, axis), 0, 1e-12) {
			t.Errorf("axis %v: e1 not orthogonal to axis", axis)
		}
		if !scalar.EqualWithinAbs(r3.Dot(e2, axis), 0, 1e-9) {
			t.Errorf("axis %v: e2 not orthogonal to axis", axis)
		}
		if !scalar.EqualWithinAbs(r3.Dot(e1, e2), 0, 1e-12) {
			t.Errorf("axis %v: basis not orthogonal", axis)
		}
	}
}

func TestStarfieldDeterministic(t *testing.T) {
	a := starfield(500, 0.35, 1.05)
	b := starfield(500, 0.35, 1.05)

	if len(a) != 500 {
		t.Fatalf("expected 500 stars, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs between identical builds", i)
		}
	}
	for i, s := range a {
		if !scalar.EqualWithinAbs(r3.Norm(s.dir), 1, 1e-9) {
			t.Errorf("star %d direction not unit length: %v", i, r3.Norm(s.dir))
		}
	}
}

func TestStarfieldBandConcentration(t *testing.T) {
	// With no tilt the band hugs the Z=0 plane; well over the uniform
	// share of stars should sit at low elevation.
	stars := starfield(2000, 0.5, 0)
	low := 0
	for _, s := range stars {
		if math.Abs(s.dir.Z) < 0.3 {
			low++
		}
	}
	if frac := float64(low) / float64(len(stars)); frac < 0.6 {
		t.Errorf("expected band concentration near the plane, got fraction %v", frac)
	}
}

func TestStarfieldIntensity(t *testing.T) {
	dim := starfield(300, 0.1, 1.05)
	bright := starfield(300, 1.0, 1.05)

	var dimSum, brightSum int
	for i := range dim {
		dimSum += int(dim[i].shade)
		brightSum += int(bright[i].shade)
	}
	if brightSum <= dimSum {
		t.Errorf("expected intensity to brighten the field: %d <= %d", brightSum, dimSum)
	}
}

func TestOrbitPathsCache(t *testing.T) {
	u := buildUniverse(t)
	paths := orbitPaths(u)

	earth, ok := u.Find("earth")
	if !ok {
		t.Fatal("earth missing from default system")
	}
	pts, ok := paths[earth]
	if !ok {
		t.Fatal("expected a cached path for earth")
	}
	if len(pts) != pathSegments+1 {
		t.Fatalf("expected %d samples, got %d", pathSegments+1, len(pts))
	}

	// One full period closes the loop.
	gap := r3.Norm(r3.Sub(pts[0], pts[len(pts)-1]))
	if gap > 1 {
		t.Errorf("expected a closed path, endpoints %v km apart", gap)
	}

	sun, ok := u.Find("sun")
	if !ok {
		t.Fatal("sun missing from default system")
	}
	if _, ok := paths[sun]; ok {
		t.Error("expected no path for an orbit-less root")
	}
}

func TestNewBuildsStaticScene(t *testing.T) {
	if err := config.Init(""); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	sys, err := config.LoadSystem("")
	if err != nil {
		t.Fatalf("system load failed: %v", err)
	}
	u := buildUniverse(t)

	r := New(u, sys)
	if len(r.stars) != config.Cfg().Graphics.StarfieldCount {
		t.Errorf("expected %d stars, got %d", config.Cfg().Graphics.StarfieldCount, len(r.stars))
	}
	if len(r.paths) == 0 {
		t.Error("expected cached orbit paths")
	}
	if r.detail != int32(config.Cfg().Graphics.SphereDetail) {
		t.Errorf("expected sphere detail %d, got %d", config.Cfg().Graphics.SphereDetail, r.detail)
	}
}

func buildUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	sys, err := config.LoadSystem("")
	if err != nil {
		t.Fatalf("system load failed: %v", err)
	}
	params, err := sys.Params()
	if err != nil {
		t.Fatalf("params failed: %v", err)
	}
	u, err := universe.New(params)
	if err != nil {
		t.Fatalf("universe build failed: %v", err)
	}
	u.ComputeFrame(0)
	return u
}
