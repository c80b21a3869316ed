package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// occlusionMargin widens the body radius when testing whether the
// track sweep would cross its disc.
const occlusionMargin = 1.1

// avoidOcclusion picks the destination polar offset for a focus
// switch. The default is to stay where the view already is; if the
// sight line from the camera to the new body passes close in front of
// the old body, the offset is pushed sideways past its limb so the
// sweep does not clip through it. Approaches behind the camera are
// left alone.
//
// relViewPos is the camera offset from the old body, target the new
// body's position relative to the old one.
func avoidOcclusion(current polarCoord, relViewPos, target r3.Vec, bodyRadius float64) polarCoord {
	targetDir := r3.Unit(r3.Sub(target, relViewPos))

	// b < 0 means the closest approach lies in front of the camera.
	b := r3.Dot(relViewPos, targetDir)
	if b >= 0 {
		return current
	}

	closestPoint := r3.Sub(relViewPos, r3.Scale(b, targetDir))
	closestDist := r3.Norm(closestPoint)
	closestMinDist := bodyRadius * occlusionMargin
	if closestDist >= closestMinDist {
		return current
	}

	// Shift along the tangent, scaled by similar triangles so the
	// sight line clears the limb over the full travel distance.
	tangent := r3.Unit(closestPoint)
	totalDist := r3.Norm(r3.Sub(target, relViewPos))
	targetClosestDist := r3.Norm(r3.Sub(target, r3.Scale(closestMinDist, tangent)))
	tangentCoef := totalDist * (closestMinDist - closestDist) / targetClosestDist

	newRelPos := r3.Add(relViewPos, r3.Scale(tangentCoef, tangent))
	newRelDir := r3.Scale(-1, r3.Unit(newRelPos))

	return polarCoord{
		theta: math.Atan2(-newRelDir.Y, -newRelDir.X),
		phi:   math.Asin(-newRelDir.Z),
		dist:  r3.Norm(newRelPos),
	}
}
