package pose

import "gonum.org/v1/gonum/spatial/r3"

// Minimal head model: eye location relative to the tracked head pivot.
const (
	headBaseToEyeHeight     = 0.15 // vertical height of eye from base of head
	headBaseToEyeProtrusion = 0.09 // distance forward of eye from base of head
)

// EyeCenter offsets the head pivot to an approximate eye position. The
// vertical component is re-leveled back to pivot height afterwards so head
// tilt does not raise or lower the body.
func EyeCenter(p CameraPose) r3.Vec {
	off := r3.Vec{Y: headBaseToEyeHeight, Z: -headBaseToEyeProtrusion}
	shifted := r3.Add(p.Position, Orientation(p.Yaw, p.Pitch, p.Roll).Rotate(off))
	shifted.Y -= headBaseToEyeHeight
	return shifted
}
