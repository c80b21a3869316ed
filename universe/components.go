package universe

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/orbit"
)

// Param is the immutable description of an entity, created once at load.
// The rendering descriptors are opaque payload carried through to the
// renderer; the hierarchy itself only needs Name, ParentName and Orbit.
type Param struct {
	Name        string
	DisplayName string
	ParentName  string

	Orbit *orbit.Elements

	Model    *Model
	Atmo     *Atmo
	Ring     *Ring
	Star     *Star
	Clouds   *Clouds
	Night    *Night
	Specular *Specular
}

// Model describes the visible ball of a body. Entities without a Model
// (barycenters) are invisible hierarchy nodes.
type Model struct {
	Radius         float64 // km
	GM             float64 // km^3/s^2
	Axis           r3.Vec  // unit rotation axis
	RotationPeriod float64 // sidereal spin period (s); 0 = no spin
	MeanColor      [3]float64
	Albedo         float64
	Diffuse        string // surface texture identifier
}

// Atmo describes an atmosphere shell.
type Atmo struct {
	K           [4]float64 // scattering coefficients
	Density     float64
	MaxHeight   float64 // km above the surface
	ScaleHeight float64 // km
}

// Ring describes a flat annulus around a body.
type Ring struct {
	InnerRadius float64 // km
	OuterRadius float64 // km
	Normal      r3.Vec  // unit plane normal
	Color       [3]float64
	Opacity     float64
}

// Star marks a self-luminous body and its flare tuning.
type Star struct {
	Brightness       float64
	FlareFadeInStart float64
	FlareFadeInEnd   float64
	FlareAttenuation float64
	FlareMinSize     float64
	FlareMaxSize     float64
}

// Clouds describes a cloud layer that drifts against the spin.
type Clouds struct {
	Filename string
	Period   float64 // drift period (s); 0 = static layer
}

// Night describes emissive night-side lighting.
type Night struct {
	Filename  string
	Intensity float64
}

// Specular describes the two-mask specular reflectance of a surface.
type Specular struct {
	Filename string
	Mask0    SpecularMask
	Mask1    SpecularMask
}

// SpecularMask is one reflectance channel of a Specular descriptor.
type SpecularMask struct {
	Color    [3]float64
	Hardness float64
}

// State is the per-frame dynamic state of an entity. The full set is
// recomputed by ComputeFrame before any consumer reads it.
type State struct {
	Position      r3.Vec  // absolute position, parent chain summed
	RotationAngle float64 // spin phase, wrapped to [0, 2pi)
	CloudDisp     float64 // cloud layer drift angle, wrapped to [0, 2pi)
}

// Attachment links an entity to its resolved parent. The zero entity
// stands for the hierarchy root.
type Attachment struct {
	Parent ecs.Entity
}
