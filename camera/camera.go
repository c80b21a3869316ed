// Package camera implements the orbital view controller: free look
// around a focused body, and the two-stage cinematic transition that
// hands focus from one body to the next.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/universe"
)

// Free-look tuning. View velocity is integrated per frame, capped per
// axis and damped exponentially; elevation stays a hair off the poles.
const (
	maxViewSpeed   = 0.2
	viewSmoothness = 0.9
	maxElevation   = math.Pi/2 - 0.001
)

// Field-of-view limits (radians).
const (
	defaultFovy = 40 * math.Pi / 180
	minFovy     = 0.1 * math.Pi / 180
	maxFovy     = 40 * math.Pi / 180
)

// Input is one frame of control state, decoupled from the windowing
// backend. Cursor deltas are in pixels.
type Input struct {
	CursorDX, CursorDY float64
	DragPrimary        bool
	DragSecondary      bool
}

// Pose is the view computed for one frame, plus the body label the HUD
// should show and how faded it is.
type Pose struct {
	Position   r3.Vec // absolute camera position
	Forward    r3.Vec // unit look direction
	Fovy       float64
	Label      universe.Handle
	LabelAlpha float64
}

// polarCoord is a camera offset from a body in spherical form.
type polarCoord struct {
	theta, phi, dist float64
}

func (p polarCoord) cartesian() r3.Vec {
	return r3.Scale(p.dist, sphericalDir(p.theta, p.phi))
}

// Controller owns the camera state. It reads body positions from the
// universe every frame and produces a Pose; focus switching runs the
// IDLE -> TRACK -> MOVE cycle.
type Controller struct {
	sensitivity float64

	polar            polarCoord // offset from the focused body
	panTheta, panPhi float64    // look-direction offset, free aim
	speed            r3.Vec     // inertial polar velocity (theta, phi, zoom)

	fovy    float64
	forward r3.Vec // last computed look direction

	dragging bool

	focused  int // index into universe.Bodies()
	previous int

	state phaseState
}

// New creates a controller focused on the body at the given index of
// the universe's body list, backed off to four times its radius.
func New(u *universe.Universe, focused int, sensitivity float64) *Controller {
	c := &Controller{
		sensitivity: sensitivity,
		fovy:        defaultFovy,
		forward:     r3.Vec{X: -1},
		focused:     focused,
		previous:    focused,
		state:       idleState{},
	}
	c.polar.dist = u.Bodies()[focused].Param().Model.Radius * 4
	return c
}

// Phase returns the current focus-switch state.
func (c *Controller) Phase() Phase {
	return c.state.phase()
}

// Fovy returns the field of view in radians.
func (c *Controller) Fovy() float64 {
	return c.fovy
}

// FocusedBody returns the body the camera orbits (or is moving to).
func (c *Controller) FocusedBody(u *universe.Universe) universe.Handle {
	return u.Bodies()[c.focused]
}

// Update advances the controller by one frame and returns the view.
// Cursor input only acts while idle; dt only drives transition timers.
func (c *Controller) Update(dt float64, in Input, u *universe.Universe) Pose {
	switch s := c.state.(type) {
	case *trackState:
		return c.updateTrack(dt, s, u)
	case *moveState:
		return c.updateMove(dt, s, u)
	default:
		return c.updateIdle(in, u)
	}
}

// updateIdle integrates drag inertia, pan, zoom and clamps, then
// produces the orbit view around the focused body.
func (c *Controller) updateIdle(in Input, u *universe.Universe) Pose {
	moveX := -in.CursorDX
	moveY := in.CursorDY

	buttonHeld := in.DragPrimary || in.DragSecondary
	if buttonHeld && !c.dragging {
		c.dragging = true
	} else if c.dragging && !buttonHeld {
		c.dragging = false
	}

	if c.dragging {
		if in.DragPrimary {
			c.speed.X = clamp(c.speed.X+moveX*c.sensitivity, -maxViewSpeed, maxViewSpeed)
			c.speed.Y = clamp(c.speed.Y+moveY*c.sensitivity, -maxViewSpeed, maxViewSpeed)
		} else if in.DragSecondary {
			// Pan moves the aim directly, no inertia, scaled so a
			// narrow field of view pans finer.
			c.panTheta += moveX * c.sensitivity * c.fovy
			c.panPhi += moveY * c.sensitivity * c.fovy
		}
	}

	body := c.FocusedBody(u)
	radius := body.Param().Model.Radius

	c.polar.theta += c.speed.X
	c.polar.phi += c.speed.Y
	// Zoom speed is proportional to the distance from the surface.
	c.polar.dist += c.speed.Z * math.Max(0.01, c.polar.dist-radius)

	c.speed = r3.Scale(viewSmoothness, c.speed)

	if c.polar.phi > maxElevation {
		c.polar.phi = maxElevation
		c.speed.Y = 0
	}
	if c.polar.phi < -maxElevation {
		c.polar.phi = -maxElevation
		c.speed.Y = 0
	}
	if c.polar.dist < radius {
		c.polar.dist = radius
	}

	if c.polar.phi+c.panPhi > maxElevation {
		c.panPhi = maxElevation - c.polar.phi
	}
	if c.polar.phi+c.panPhi < -maxElevation {
		c.panPhi = -maxElevation - c.polar.phi
	}

	c.forward = r3.Scale(-1, sphericalDir(c.polar.theta+c.panTheta, c.polar.phi+c.panPhi))

	return Pose{
		Position:   r3.Add(body.State().Position, c.polar.cartesian()),
		Forward:    c.forward,
		Fovy:       c.fovy,
		Label:      body,
		LabelAlpha: 1,
	}
}

// RequestSwitch starts a focus change to the next (or previous) body in
// cycle order. Accepted only while idle; reports whether the transition
// started. The destination polar offset is corrected so the track phase
// does not drag the view through the body being left.
func (c *Controller) RequestSwitch(forward bool, u *universe.Universe) bool {
	if c.state.phase() != PhaseIdle {
		return false
	}

	bodies := u.Bodies()
	c.previous = c.focused
	c.focused = cycleIndex(c.focused, len(bodies), forward)

	prev := bodies[c.previous]
	next := bodies[c.focused]

	relViewPos := c.polar.cartesian()
	target := r3.Sub(next.State().Position, prev.State().Position)

	c.state = &trackState{
		start:     c.polar,
		target:    avoidOcclusion(c.polar, relViewPos, target, prev.Param().Model.Radius),
		sourceFwd: c.forward,
	}
	return true
}

// HandleScroll applies one wheel step: plain scroll feeds the zoom
// velocity, alt-scroll narrows or widens the field of view. Scrolling
// is ignored while a focus switch is in flight.
func (c *Controller) HandleScroll(offset float64, alt bool) {
	if c.state.phase() != PhaseIdle {
		return
	}
	if alt {
		c.fovy = clamp(c.fovy*math.Pow(0.5, offset*c.sensitivity*100), minFovy, maxFovy)
	} else {
		c.speed.Z -= 40 * offset * c.sensitivity
	}
}

// sphericalDir converts azimuth/elevation angles to a unit direction.
func sphericalDir(theta, phi float64) r3.Vec {
	return r3.Vec{
		X: math.Cos(theta) * math.Cos(phi),
		Y: math.Sin(theta) * math.Cos(phi),
		Z: math.Sin(phi),
	}
}

// cycleIndex steps an index around a ring of n elements.
func cycleIndex(i, n int, forward bool) int {
	if forward {
		i++
	} else {
		i--
	}
	if i < 0 {
		i += n
	} else if i >= n {
		i -= n
	}
	return i
}

// shortestAngle wraps an angle difference to (-pi, pi].
func shortestAngle(d float64) float64 {
	if d < -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
