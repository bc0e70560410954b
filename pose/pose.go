// Package pose maintains the fused head pose and the math that feeds it:
// quaternion decomposition, yaw integration and the minimal head model.
//
// The world is right-handed with Y up and -Z forward. Yaw rotates around Y,
// pitch around X, roll around Z, composed in that order.
package pose

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// World axis conventions.
var (
	UpVector      = r3.Vec{Y: 1}
	ForwardVector = r3.Vec{Z: -1}
	RightVector   = r3.Vec{X: 1}
)

const (
	// YawInitial faces the camera down +Z (a 180 degree turn).
	YawInitial = math.Pi

	// Sensitivity scales mouse deltas into yaw/pitch.
	Sensitivity = 1.0

	// MoveSpeed is the base walk speed in m/s.
	MoveSpeed = 3.0

	// MaxPitch stops manual pitch just short of straight up/down so the
	// view cannot flip over.
	MaxPitch = (math.Pi / 2) * 0.98
)

// StartPosition is eye height in the middle of the room, looking back.
var StartPosition = r3.Vec{Y: 1.6, Z: -5}

// CameraPose is the fused head pose. It is created once at startup and
// mutated only by the frame driver's pipeline stages.
//
// Yaw accumulates without wraparound: camera math never normalizes it.
type CameraPose struct {
	Position r3.Vec
	Yaw      float64
	Pitch    float64
	Roll     float64
}

// NewCameraPose returns the fixed initial pose.
func NewCameraPose() CameraPose {
	return CameraPose{Position: StartPosition, Yaw: YawInitial}
}

// Orientation returns the world rotation for the given angles, composed
// yaw over pitch over roll.
func Orientation(yaw, pitch, roll float64) r3.Rotation {
	qy := quat.Number(r3.NewRotation(yaw, UpVector))
	qx := quat.Number(r3.NewRotation(pitch, RightVector))
	qz := quat.Number(r3.NewRotation(roll, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(quat.Mul(qy, qx), qz))
}

// Forward returns the view direction of the pose.
func (p CameraPose) Forward() r3.Vec {
	return Orientation(p.Yaw, p.Pitch, p.Roll).Rotate(ForwardVector)
}

// Up returns the up reference of the pose.
func (p CameraPose) Up() r3.Vec {
	return Orientation(p.Yaw, p.Pitch, p.Roll).Rotate(UpVector)
}

// ClampPitch limits a manually driven pitch to ±MaxPitch.
func ClampPitch(v float64) float64 {
	if v > MaxPitch {
		return MaxPitch
	}
	if v < -MaxPitch {
		return -MaxPitch
	}
	return v
}
