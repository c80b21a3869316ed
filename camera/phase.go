package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/universe"
)

// Phase identifies the focus-switch state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTrack
	PhaseMove
)

func (p Phase) String() string {
	switch p {
	case PhaseTrack:
		return "track"
	case PhaseMove:
		return "move"
	default:
		return "idle"
	}
}

// Transition tuning.
const (
	trackTime      = 1.0   // seconds spent re-aiming at the new body
	moveTime       = 1.0   // seconds spent flying over
	moveSharpness  = 4.0   // exponent of the fly-over ease
	azimuthEpsilon = 0.001 // wrap threshold for the aim interpolation
	minArrivalDist = 1000.0
)

// phaseState is the per-phase data. Only the phase that is active
// exists; timers and snapshots cannot leak between phases.
type phaseState interface {
	phase() Phase
}

type idleState struct{}

func (idleState) phase() Phase { return PhaseIdle }

// trackState turns the view toward the new body while still orbiting
// the old one.
type trackState struct {
	elapsed   float64
	start     polarCoord // offset around the previous body at request time
	target    polarCoord // occlusion-corrected destination offset
	sourceFwd r3.Vec     // look direction at request time
}

func (*trackState) phase() Phase { return PhaseTrack }

// moveState flies the camera from the old body to the new one, looking
// along the travel direction.
type moveState struct {
	elapsed float64
	anchor  polarCoord // frozen offset from the previous body
}

func (*moveState) phase() Phase { return PhaseMove }

// updateTrack keeps the camera anchored to the previous body while the
// position glides to the corrected offset and the aim sweeps onto the
// new body, both along the shorter arc.
func (c *Controller) updateTrack(dt float64, s *trackState, u *universe.Universe) Pose {
	t := math.Min(1, s.elapsed/trackTime)
	f := easeQuintic(t)

	bodies := u.Bodies()
	prev := bodies[c.previous]
	next := bodies[c.focused]

	posDelta := shortestAngle(s.target.theta - s.start.theta)
	interp := polarCoord{
		theta: (1-f)*s.start.theta + f*(s.start.theta+posDelta),
		phi:   (1-f)*s.start.phi + f*s.target.phi,
		dist:  (1-f)*s.start.dist + f*s.target.dist,
	}
	position := r3.Add(prev.State().Position, interp.cartesian())

	targetDir := r3.Unit(r3.Sub(next.State().Position, position))
	targetTheta := math.Atan2(targetDir.Y, targetDir.X)
	targetPhi := math.Asin(targetDir.Z)

	sourceTheta := math.Atan2(s.sourceFwd.Y, s.sourceFwd.X)
	sourcePhi := math.Asin(s.sourceFwd.Z)

	aimDelta := targetTheta - sourceTheta
	if aimDelta < -math.Pi+azimuthEpsilon {
		aimDelta += 2 * math.Pi
	} else if aimDelta > math.Pi-azimuthEpsilon {
		aimDelta -= 2 * math.Pi
	}

	theta := f*(sourceTheta+aimDelta) + (1-f)*sourceTheta
	phi := f*targetPhi + (1-f)*sourcePhi
	c.forward = sphericalDir(theta, phi)

	pose := Pose{
		Position:   position,
		Forward:    c.forward,
		Fovy:       c.fovy,
		Label:      prev,
		LabelAlpha: clamp(1-2*t, 0, 1),
	}

	s.elapsed += dt
	if s.elapsed > trackTime {
		c.polar = interp
		c.state = &moveState{anchor: interp}
	}
	return pose
}

// updateMove blends the position from the departure point to an
// arrival point four radii short of the new body. Both endpoints are
// recomputed every frame so the path follows the moving bodies.
func (c *Controller) updateMove(dt float64, s *moveState, u *universe.Universe) Pose {
	t := math.Min(1, s.elapsed/moveTime)
	f := easePower(t, moveSharpness)

	bodies := u.Bodies()
	prev := bodies[c.previous]
	next := bodies[c.focused]

	sourcePos := r3.Add(prev.State().Position, s.anchor.cartesian())

	targetDist := math.Max(4*next.Param().Model.Radius, minArrivalDist)
	direction := r3.Unit(r3.Sub(next.State().Position, sourcePos))
	targetPos := r3.Sub(next.State().Position, r3.Scale(targetDist, direction))

	c.forward = direction

	pose := Pose{
		Position:   r3.Add(r3.Scale(f, targetPos), r3.Scale(1-f, sourcePos)),
		Forward:    direction,
		Fovy:       c.fovy,
		Label:      next,
		LabelAlpha: clamp((t-0.5)*2, 0, 1),
	}

	s.elapsed += dt
	if s.elapsed > moveTime {
		c.polar = polarCoord{
			theta: math.Atan2(-direction.Y, -direction.X),
			phi:   math.Asin(-direction.Z),
			dist:  targetDist,
		}
		c.panTheta, c.panPhi = 0, 0
		c.speed = r3.Vec{}
		c.state = idleState{}
	}
	return pose
}

// easeQuintic is the C2-continuous smoothstep 6t^5 - 15t^4 + 10t^3.
func easeQuintic(t float64) float64 {
	return ((6*t-15)*t + 10) * t * t * t
}

// easePower maps t through t^a / (t^a + (1-t)^a); higher alpha holds
// longer at the ends and rushes the middle.
func easePower(t, alpha float64) float64 {
	a := math.Pow(t, alpha)
	return a / (a + math.Pow(1-t, alpha))
}
