package pose

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Decompose extracts yaw, pitch and roll from a unit quaternion using the
// Y-X-Z axis order.
//
// The arcsine argument s = 2(w*y - x*z) is branch-clamped: asin must never
// see a value outside (-1, 1). At the poles (pitch exactly ±90°) yaw and
// roll are indistinguishable, so yaw is reported as 0 and the caller's
// yaw-delta blend contributes no artificial jump.
func Decompose(q quat.Number) (yaw, pitch, roll float64) {
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real
	s := 2 * (w*y - x*z)
	switch {
	case s >= 1:
		pitch = math.Pi / 2
		roll = math.Atan2(2*(x*y-w*z), 1-2*(x*x+z*z))
	case s <= -1:
		pitch = -math.Pi / 2
		roll = -math.Atan2(2*(x*y-w*z), 1-2*(x*x+z*z))
	default:
		yaw = math.Atan2(2*(x*y+w*z), 1-2*(y*y+z*z))
		pitch = math.Asin(s)
		roll = math.Atan2(2*(y*z+w*x), 1-2*(x*x+y*y))
	}
	return yaw, pitch, roll
}

// Compose builds the quaternion that Decompose inverts. The fusion provider
// uses it to assemble device-frame orientations; tests use it for the
// round-trip property.
func Compose(yaw, pitch, roll float64) quat.Number {
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}
