package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orrery/orbit"
	"github.com/pthm-cable/orrery/universe"
)

//go:embed system.yaml
var defaultSystemYAML []byte

// System describes the simulated planetary system: every entity, its
// orbit and its appearance. Angles are given in degrees in the file
// and converted to radians when the entity list is built.
type System struct {
	Name         string      `yaml:"name"`
	StartingBody string      `yaml:"starting_body"`
	AmbientColor [3]float64  `yaml:"ambient_color"`
	StarMap      StarMapDef  `yaml:"star_map"`
	Entities     []EntityDef `yaml:"entities"`
}

// StarMapDef configures the background star shell. Tilt is the angle
// of the dense band off the system plane, in degrees.
type StarMapDef struct {
	Diffuse   string  `yaml:"diffuse"`
	Intensity float64 `yaml:"intensity"`
	Tilt      float64 `yaml:"tilt"`
}

// EntityDef is one entry of the system file. Orbit and the appearance
// blocks are all optional: an entity without a body is an invisible
// barycenter, one without an orbit is pinned to its parent.
type EntityDef struct {
	Name        string         `yaml:"name"`
	DisplayName string         `yaml:"display_name"`
	Parent      string         `yaml:"parent"`
	Orbit       *OrbitDef      `yaml:"orbit"`
	Body        *BodyDef       `yaml:"body"`
	Atmosphere  *AtmosphereDef `yaml:"atmosphere"`
	Ring        *RingDef       `yaml:"ring"`
	Star        *StarDef       `yaml:"star"`
	Clouds      *CloudsDef     `yaml:"clouds"`
	Night       *NightDef      `yaml:"night"`
	Specular    *SpecularDef   `yaml:"specular"`
}

// OrbitDef holds Keplerian elements. Distances in km, the period in
// seconds, angles in degrees.
type OrbitDef struct {
	Eccentricity  float64 `yaml:"eccentricity"`
	SemiMajorAxis float64 `yaml:"semi_major_axis"`
	Inclination   float64 `yaml:"inclination"`
	AscendingNode float64 `yaml:"ascending_node"`
	ArgPeriapsis  float64 `yaml:"arg_periapsis"`
	Period        float64 `yaml:"period"`
	MeanAnomaly   float64 `yaml:"mean_anomaly"`
}

// BodyDef holds the physical ball of an entity. The spin axis is given
// as a tilt away from the orbit normal plus an azimuth for the tilt
// direction, both in degrees.
type BodyDef struct {
	Radius         float64    `yaml:"radius"`
	GM             float64    `yaml:"gm"`
	RotationPeriod float64    `yaml:"rotation_period"`
	AxialTilt      float64    `yaml:"axial_tilt"`
	TiltAzimuth    float64    `yaml:"tilt_azimuth"`
	MeanColor      [3]float64 `yaml:"mean_color"`
	Albedo         float64    `yaml:"albedo"`
	Texture        string     `yaml:"texture"`
}

// AtmosphereDef holds the scattering shell of a body.
type AtmosphereDef struct {
	K           [4]float64 `yaml:"k"`
	Density     float64    `yaml:"density"`
	MaxHeight   float64    `yaml:"max_height"`
	ScaleHeight float64    `yaml:"scale_height"`
}

// RingDef holds a flat annulus around a body, in its equatorial plane.
type RingDef struct {
	InnerRadius float64    `yaml:"inner_radius"`
	OuterRadius float64    `yaml:"outer_radius"`
	Color       [3]float64 `yaml:"color"`
	Opacity     float64    `yaml:"opacity"`
}

// StarDef marks a self-luminous body.
type StarDef struct {
	Brightness       float64 `yaml:"brightness"`
	FlareFadeInStart float64 `yaml:"flare_fade_in_start"`
	FlareFadeInEnd   float64 `yaml:"flare_fade_in_end"`
	FlareAttenuation float64 `yaml:"flare_attenuation"`
	FlareMinSize     float64 `yaml:"flare_min_size"`
	FlareMaxSize     float64 `yaml:"flare_max_size"`
}

// CloudsDef holds a drifting cloud layer.
type CloudsDef struct {
	Texture string  `yaml:"texture"`
	Period  float64 `yaml:"period"`
}

// NightDef holds night-side emissive lighting.
type NightDef struct {
	Texture   string  `yaml:"texture"`
	Intensity float64 `yaml:"intensity"`
}

// SpecularDef holds the two-mask specular reflectance of a surface.
type SpecularDef struct {
	Texture string          `yaml:"texture"`
	Mask0   SpecularMaskDef `yaml:"mask0"`
	Mask1   SpecularMaskDef `yaml:"mask1"`
}

// SpecularMaskDef is one reflectance channel.
type SpecularMaskDef struct {
	Color    [3]float64 `yaml:"color"`
	Hardness float64    `yaml:"hardness"`
}

// LoadSystem loads a system definition from a YAML file, or the
// embedded default system if path is empty. Unlike settings, a user
// file replaces the default outright: entity lists do not merge.
func LoadSystem(path string) (*System, error) {
	data := defaultSystemYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading system file: %w", err)
		}
	}

	sys := &System{}
	if err := yaml.Unmarshal(data, sys); err != nil {
		return nil, fmt.Errorf("parsing system file: %w", err)
	}
	if err := sys.validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *System) validate() error {
	if len(s.Entities) == 0 {
		return fmt.Errorf("system %q defines no entities", s.Name)
	}
	if s.StartingBody == "" {
		return fmt.Errorf("system %q names no starting body", s.Name)
	}
	for _, e := range s.Entities {
		if e.Name == s.StartingBody {
			if e.Body == nil {
				return fmt.Errorf("starting body %q has no body definition", s.StartingBody)
			}
			return nil
		}
	}
	return fmt.Errorf("starting body %q is not defined", s.StartingBody)
}

// Params converts the definition into universe entities, validating
// each orbit and converting file angles to radians.
func (s *System) Params() ([]universe.Param, error) {
	params := make([]universe.Param, 0, len(s.Entities))
	for _, e := range s.Entities {
		p := universe.Param{
			Name:        e.Name,
			DisplayName: e.DisplayName,
			ParentName:  e.Parent,
		}
		if p.DisplayName == "" {
			p.DisplayName = p.Name
		}

		if e.Orbit != nil {
			elem := &orbit.Elements{
				Ecc:    e.Orbit.Eccentricity,
				SMA:    e.Orbit.SemiMajorAxis,
				Inc:    radians(e.Orbit.Inclination),
				LAN:    radians(e.Orbit.AscendingNode),
				Arg:    radians(e.Orbit.ArgPeriapsis),
				Period: e.Orbit.Period,
				M0:     radians(e.Orbit.MeanAnomaly),
			}
			if err := elem.Validate(); err != nil {
				return nil, fmt.Errorf("entity %q: %w", e.Name, err)
			}
			p.Orbit = elem
		}

		if e.Body != nil {
			p.Model = &universe.Model{
				Radius:         e.Body.Radius,
				GM:             e.Body.GM,
				Axis:           tiltAxis(e.Body.AxialTilt, e.Body.TiltAzimuth),
				RotationPeriod: e.Body.RotationPeriod,
				MeanColor:      e.Body.MeanColor,
				Albedo:         e.Body.Albedo,
				Diffuse:        e.Body.Texture,
			}
			if e.Body.Radius <= 0 {
				return nil, fmt.Errorf("entity %q: body radius must be positive, got %g", e.Name, e.Body.Radius)
			}
		}

		if e.Atmosphere != nil {
			p.Atmo = &universe.Atmo{
				K:           e.Atmosphere.K,
				Density:     e.Atmosphere.Density,
				MaxHeight:   e.Atmosphere.MaxHeight,
				ScaleHeight: e.Atmosphere.ScaleHeight,
			}
		}
		if e.Ring != nil {
			if e.Body == nil {
				return nil, fmt.Errorf("entity %q: ring requires a body", e.Name)
			}
			p.Ring = &universe.Ring{
				InnerRadius: e.Ring.InnerRadius,
				OuterRadius: e.Ring.OuterRadius,
				Normal:      p.Model.Axis,
				Color:       e.Ring.Color,
				Opacity:     e.Ring.Opacity,
			}
		}
		if e.Star != nil {
			p.Star = &universe.Star{
				Brightness:       e.Star.Brightness,
				FlareFadeInStart: e.Star.FlareFadeInStart,
				FlareFadeInEnd:   e.Star.FlareFadeInEnd,
				FlareAttenuation: e.Star.FlareAttenuation,
				FlareMinSize:     e.Star.FlareMinSize,
				FlareMaxSize:     e.Star.FlareMaxSize,
			}
		}
		if e.Clouds != nil {
			p.Clouds = &universe.Clouds{
				Filename: e.Clouds.Texture,
				Period:   e.Clouds.Period,
			}
		}
		if e.Night != nil {
			p.Night = &universe.Night{
				Filename:  e.Night.Texture,
				Intensity: e.Night.Intensity,
			}
		}
		if e.Specular != nil {
			p.Specular = &universe.Specular{
				Filename: e.Specular.Texture,
				Mask0: universe.SpecularMask{
					Color:    e.Specular.Mask0.Color,
					Hardness: e.Specular.Mask0.Hardness,
				},
				Mask1: universe.SpecularMask{
					Color:    e.Specular.Mask1.Color,
					Hardness: e.Specular.Mask1.Hardness,
				},
			}
		}

		params = append(params, p)
	}
	return params, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// tiltAxis builds a unit spin axis from a tilt off the vertical and an
// azimuth for the lean direction.
func tiltAxis(tiltDeg, azimuthDeg float64) r3.Vec {
	tilt := radians(tiltDeg)
	azimuth := radians(azimuthDeg)
	return r3.Vec{
		X: math.Sin(tilt) * math.Cos(azimuth),
		Y: math.Sin(tilt) * math.Sin(azimuth),
		Z: math.Cos(tilt),
	}
}
