package orbit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAtStaticStaysAtOrigin(t *testing.T) {
	el := Elements{Ecc: 0.2, SMA: 1000, Period: 0}

	for _, epoch := range []float64{0, 1, 86400, -42.5, 1e9} {
		p := el.At(epoch)
		if p != (r3.Vec{}) {
			t.Errorf("epoch %v: expected origin, got %+v", epoch, p)
		}
	}
}

func TestAtPeriodicity(t *testing.T) {
	el := Elements{
		Ecc:    0.3,
		SMA:    149.6e6,
		Inc:    0.4,
		LAN:    1.2,
		Arg:    2.1,
		Period: 31558150,
		M0:     0.7,
	}

	for _, epoch := range []float64{0, 12345.5, 1e7, -5e6} {
		a := el.At(epoch)
		b := el.At(epoch + el.Period)
		if !vecEqual(a, b, 1e-3) {
			t.Errorf("epoch %v: position not periodic: %+v vs %+v", epoch, a, b)
		}
	}
}

func TestAtCircularRadius(t *testing.T) {
	el := Elements{Ecc: 0, SMA: 384400, Inc: 0.1, LAN: 0.5, Arg: 0.3, Period: 2360591}

	for _, epoch := range []float64{0, 100000, 1.5e6} {
		r := r3.Norm(el.At(epoch))
		if !scalar.EqualWithinAbs(r, el.SMA, 1e-6*el.SMA) {
			t.Errorf("epoch %v: expected radius %v, got %v", epoch, el.SMA, r)
		}
	}
}

func TestAtPeriapsisAtEpochZero(t *testing.T) {
	// With M0 = 0 and no plane rotation, epoch zero sits at periapsis
	// on the +X axis at distance a(1-e).
	el := Elements{Ecc: 0.5, SMA: 1000, Period: 10000}

	p := el.At(0)
	want := r3.Vec{X: el.SMA * (1 - el.Ecc)}
	if !vecEqual(p, want, 1e-9) {
		t.Errorf("expected periapsis %+v, got %+v", want, p)
	}
}

func TestAtInclinationLeavesPlane(t *testing.T) {
	flat := Elements{Ecc: 0.1, SMA: 1000, Period: 10000}
	tilted := flat
	tilted.Inc = math.Pi / 3

	var maxZFlat, maxZTilted float64
	for epoch := 0.0; epoch < flat.Period; epoch += flat.Period / 64 {
		maxZFlat = math.Max(maxZFlat, math.Abs(flat.At(epoch).Z))
		maxZTilted = math.Max(maxZTilted, math.Abs(tilted.At(epoch).Z))
	}

	if maxZFlat > 1e-9 {
		t.Errorf("zero-inclination orbit left the XY plane: max |z| = %v", maxZFlat)
	}
	if maxZTilted < 100 {
		t.Errorf("inclined orbit stayed near the XY plane: max |z| = %v", maxZTilted)
	}
}

func TestAtDistanceBounds(t *testing.T) {
	el := Elements{Ecc: 0.6, SMA: 5000, Inc: 0.3, LAN: 2.5, Arg: 1.1, Period: 40000}

	periapsis := el.SMA * (1 - el.Ecc)
	apoapsis := el.SMA * (1 + el.Ecc)
	for epoch := 0.0; epoch < el.Period; epoch += el.Period / 128 {
		r := r3.Norm(el.At(epoch))
		if r < periapsis-1e-6 || r > apoapsis+1e-6 {
			t.Errorf("epoch %v: distance %v outside [%v, %v]", epoch, r, periapsis, apoapsis)
		}
	}
}

func TestSolveKepler(t *testing.T) {
	testCases := []struct {
		m, ecc float64
	}{
		{0, 0},
		{1.5, 0.1},
		{3.0, 0.7},
		{6.0, 0.95},
	}

	for _, tc := range testCases {
		e := solveKepler(tc.m, tc.ecc)
		back := e - tc.ecc*math.Sin(e)
		if !scalar.EqualWithinAbs(back, tc.m, 1e-10) {
			t.Errorf("m=%v ecc=%v: E=%v does not satisfy Kepler's equation (got m=%v)",
				tc.m, tc.ecc, e, back)
		}
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		el      Elements
		wantErr bool
	}{
		{"valid", Elements{Ecc: 0.2, SMA: 1000, Period: 500}, false},
		{"static", Elements{Ecc: 0, SMA: 1, Period: 0}, false},
		{"retrograde", Elements{Ecc: 0.1, SMA: 1000, Period: -500}, false},
		{"negative ecc", Elements{Ecc: -0.1, SMA: 1000}, true},
		{"parabolic", Elements{Ecc: 1.0, SMA: 1000}, true},
		{"zero sma", Elements{Ecc: 0.1, SMA: 0}, true},
		{"negative sma", Elements{Ecc: 0.1, SMA: -5}, true},
		{"nan angle", Elements{Ecc: 0.1, SMA: 1000, Inc: math.NaN()}, true},
		{"inf period", Elements{Ecc: 0.1, SMA: 1000, Period: math.Inf(1)}, true},
	}

	for _, tc := range testCases {
		err := tc.el.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func vecEqual(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}
