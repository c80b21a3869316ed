// Package orbit implements Keplerian two-body orbit propagation.
package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Newton iteration bounds for Kepler's equation.
const (
	keplerTolerance = 1e-12
	keplerMaxIter   = 32
)

// Elements holds the classical orbital elements of an entity about its
// parent. Angles are radians, lengths kilometers, periods seconds.
type Elements struct {
	Ecc    float64 // eccentricity, [0, 1)
	SMA    float64 // semi-major axis
	Inc    float64 // inclination
	LAN    float64 // longitude of the ascending node
	Arg    float64 // argument of periapsis
	Period float64 // sidereal period; 0 marks a static entity
	M0     float64 // mean anomaly at epoch zero
}

// Validate checks that the elements describe a closed, well-formed
// ellipse. A zero Period is allowed and marks a static entity.
func (el Elements) Validate() error {
	switch {
	case math.IsNaN(el.Ecc) || el.Ecc < 0 || el.Ecc >= 1:
		return fmt.Errorf("eccentricity %v outside [0, 1)", el.Ecc)
	case math.IsNaN(el.SMA) || math.IsInf(el.SMA, 0) || el.SMA <= 0:
		return fmt.Errorf("semi-major axis %v is not a positive length", el.SMA)
	case !isFinite(el.Inc) || !isFinite(el.LAN) || !isFinite(el.Arg) || !isFinite(el.M0):
		return fmt.Errorf("angular elements contain a non-finite value")
	case !isFinite(el.Period):
		return fmt.Errorf("period %v is not finite", el.Period)
	}
	return nil
}

// At returns the position relative to the parent at the given epoch in
// seconds. Static entities (Period == 0) stay at the origin.
func (el Elements) At(epoch float64) r3.Vec {
	if el.Period == 0 {
		return r3.Vec{}
	}

	// Mean anomaly, wrapped to one revolution.
	m := math.Mod(el.M0+2*math.Pi*epoch/el.Period, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}

	e := solveKepler(m, el.Ecc)

	// True anomaly and distance on the ellipse.
	nu := 2 * math.Atan2(
		math.Sqrt(1+el.Ecc)*math.Sin(e/2),
		math.Sqrt(1-el.Ecc)*math.Cos(e/2))
	r := el.SMA * (1 - el.Ecc*math.Cos(e))

	// In-plane position, then rotate out to the parent frame:
	// argument of periapsis, inclination, ascending node.
	p := r3.Vec{X: r * math.Cos(nu), Y: r * math.Sin(nu)}
	p = r3.NewRotation(el.Arg, r3.Vec{Z: 1}).Rotate(p)
	p = r3.NewRotation(el.Inc, r3.Vec{X: 1}).Rotate(p)
	p = r3.NewRotation(el.LAN, r3.Vec{Z: 1}).Rotate(p)
	return p
}

// solveKepler finds the eccentric anomaly E with E - ecc*sin(E) = m by
// Newton iteration. Converges in a handful of steps for ecc < 1.
func solveKepler(m, ecc float64) float64 {
	e := m
	for i := 0; i < keplerMaxIter; i++ {
		d := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= d
		if math.Abs(d) < keplerTolerance {
			break
		}
	}
	return e
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
