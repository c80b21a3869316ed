package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/orrery/universe"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Video.Width != 1600 || cfg.Video.Height != 900 {
		t.Errorf("expected 1600x900 default, got %dx%d", cfg.Video.Width, cfg.Video.Height)
	}
	if cfg.Video.TargetFPS != 60 {
		t.Errorf("expected target fps 60, got %d", cfg.Video.TargetFPS)
	}
	if cfg.Controls.Sensitivity != 0.001 {
		t.Errorf("expected sensitivity 0.001, got %f", cfg.Controls.Sensitivity)
	}
	if cfg.Telemetry.PerfWindow != 120 {
		t.Errorf("expected perf window 120, got %d", cfg.Telemetry.PerfWindow)
	}
	if math.Abs(cfg.Derived.Aspect-16.0/9.0) > 1e-9 {
		t.Errorf("expected aspect 16:9, got %f", cfg.Derived.Aspect)
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := "video:\n  width: 2560\ncontrols:\n  sensitivity: 0.002\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	// Overridden fields change, everything else keeps its default.
	if cfg.Video.Width != 2560 {
		t.Errorf("expected overridden width 2560, got %d", cfg.Video.Width)
	}
	if cfg.Video.Height != 900 {
		t.Errorf("expected default height 900, got %d", cfg.Video.Height)
	}
	if cfg.Controls.Sensitivity != 0.002 {
		t.Errorf("expected overridden sensitivity 0.002, got %f", cfg.Controls.Sensitivity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestLoadDefaultSystem(t *testing.T) {
	sys, err := LoadSystem("")
	if err != nil {
		t.Fatalf("loading embedded system: %v", err)
	}

	if sys.StartingBody != "earth" {
		t.Errorf("expected starting body earth, got %q", sys.StartingBody)
	}
	if len(sys.Entities) != 16 {
		t.Errorf("expected 16 entities, got %d", len(sys.Entities))
	}

	params, err := sys.Params()
	if err != nil {
		t.Fatalf("converting system: %v", err)
	}

	byName := make(map[string]universe.Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}

	// The barycenter is an invisible node with an orbit.
	emb, ok := byName["emb"]
	if !ok {
		t.Fatal("expected an emb entity")
	}
	if emb.Model != nil {
		t.Error("expected the barycenter to have no body")
	}
	if emb.Orbit == nil {
		t.Error("expected the barycenter to orbit the sun")
	}

	if byName["earth"].ParentName != "emb" {
		t.Errorf("expected earth parented to emb, got %q", byName["earth"].ParentName)
	}
	if byName["saturn"].Ring == nil {
		t.Error("expected saturn to carry a ring")
	}
	if byName["venus"].Model.RotationPeriod >= 0 {
		t.Error("expected venus to spin retrograde")
	}
	if byName["sun"].Star == nil {
		t.Error("expected the sun to be a star")
	}
}

func TestSystemAnglesConverted(t *testing.T) {
	sys, err := LoadSystem("")
	if err != nil {
		t.Fatal(err)
	}
	params, err := sys.Params()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range params {
		if p.Name != "mercury" {
			continue
		}
		want := 7.005 * math.Pi / 180
		if math.Abs(p.Orbit.Inc-want) > 1e-12 {
			t.Errorf("expected inclination %f rad, got %f", want, p.Orbit.Inc)
		}
		return
	}
	t.Fatal("mercury not found")
}

func TestDefaultSystemBuildsUniverse(t *testing.T) {
	sys, err := LoadSystem("")
	if err != nil {
		t.Fatal(err)
	}
	params, err := sys.Params()
	if err != nil {
		t.Fatal(err)
	}

	u, err := universe.New(params)
	if err != nil {
		t.Fatalf("building universe from default system: %v", err)
	}
	if len(u.Bodies()) != 15 {
		t.Errorf("expected 15 bodies (16 entities minus the barycenter), got %d", len(u.Bodies()))
	}

	u.ComputeFrame(0)
	earth, _ := u.Find("earth")
	dist := math.Hypot(math.Hypot(earth.State().Position.X, earth.State().Position.Y), earth.State().Position.Z)
	// One astronomical unit, give or take the eccentricity.
	if dist < 1.46e8 || dist > 1.53e8 {
		t.Errorf("expected earth about 1.5e8 km out, got %g", dist)
	}
}

func TestSystemValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no entities", "name: empty\nstarting_body: x\n"},
		{"starting body undefined", "name: s\nstarting_body: x\nentities:\n  - name: a\n    body: {radius: 1}\n"},
		{"starting body has no body", "name: s\nstarting_body: a\nentities:\n  - name: a\n"},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "system.yaml")
		if err := os.WriteFile(path, []byte(c.yaml), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSystem(path); err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}

func TestParamsRejectsBadOrbit(t *testing.T) {
	sys := &System{
		Name:         "s",
		StartingBody: "a",
		Entities: []EntityDef{
			{Name: "a", Body: &BodyDef{Radius: 1}},
			{Name: "b", Parent: "a",
				Orbit: &OrbitDef{Eccentricity: 1.5, SemiMajorAxis: 100, Period: 10},
				Body:  &BodyDef{Radius: 1}},
		},
	}
	_, err := sys.Params()
	if err == nil {
		t.Fatal("expected an error for a hyperbolic orbit")
	}
	if !strings.Contains(err.Error(), `"b"`) {
		t.Errorf("expected the error to name the entity, got %v", err)
	}
}

func TestParamsRejectsRingWithoutBody(t *testing.T) {
	sys := &System{
		Name:         "s",
		StartingBody: "a",
		Entities: []EntityDef{
			{Name: "a", Body: &BodyDef{Radius: 1}},
			{Name: "b", Parent: "a", Ring: &RingDef{InnerRadius: 1, OuterRadius: 2}},
		},
	}
	if _, err := sys.Params(); err == nil {
		t.Fatal("expected an error for a ring on a bodiless entity")
	}
}

func TestTiltAxis(t *testing.T) {
	cases := []struct {
		tilt, azimuth float64
		want          [3]float64
	}{
		{0, 0, [3]float64{0, 0, 1}},
		{90, 0, [3]float64{1, 0, 0}},
		{90, 90, [3]float64{0, 1, 0}},
		{180, 0, [3]float64{0, 0, -1}},
	}
	for _, c := range cases {
		got := tiltAxis(c.tilt, c.azimuth)
		if math.Abs(got.X-c.want[0]) > 1e-12 ||
			math.Abs(got.Y-c.want[1]) > 1e-12 ||
			math.Abs(got.Z-c.want[2]) > 1e-12 {
			t.Errorf("tiltAxis(%f, %f): expected %v, got %v", c.tilt, c.azimuth, c.want, got)
		}
	}
}
