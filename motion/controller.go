// Package motion converts movement-key state and gamepad vectors into a
// per-frame world-space displacement.
package motion

import (
	"gonum.org/v1/gonum/spatial/r3"

	"roomtiny/input"
	"roomtiny/pose"
)

// Controller integrates movement input. Translation follows yaw only; pitch
// and roll never affect it.
type Controller struct {
	BaseSpeed float64 // m/s
}

// NewController returns a controller at the standard walk speed.
func NewController() *Controller {
	return &Controller{BaseSpeed: pose.MoveSpeed}
}

// Integrate returns the world-space displacement for one frame.
//
// Keyboard bits win over the gamepad stick. Forward beats back and right
// beats left when both are held. The local vector is normalized so diagonal
// movement is no faster than a single axis.
func (c *Controller) Integrate(in *input.State, yaw, dt float64) r3.Vec {
	yawRotate := r3.NewRotation(yaw, pose.UpVector)

	if in.Moving() {
		var local r3.Vec
		if in.MoveForward != 0 {
			local = pose.ForwardVector
		} else if in.MoveBack != 0 {
			local = r3.Scale(-1, pose.ForwardVector)
		}
		if in.MoveRight != 0 {
			local = r3.Add(local, pose.RightVector)
		} else if in.MoveLeft != 0 {
			local = r3.Sub(local, pose.RightVector)
		}
		speed := c.BaseSpeed * dt
		if in.ShiftDown {
			speed *= 3
		}
		return r3.Scale(speed, yawRotate.Rotate(r3.Unit(local)))
	}

	if r3.Norm2(in.GamepadMove) > 0 {
		return r3.Scale(c.BaseSpeed*dt, yawRotate.Rotate(in.GamepadMove))
	}

	return r3.Vec{}
}
