package input

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Movement bitmasks. Letter keys and arrow keys set independent bits so
// either device can enable movement without the other's release clearing it.
const (
	maskLetters uint8 = 1 << 0
	maskArrows  uint8 = 1 << 1
)

// State is the per-frame input state read by the motion controller.
type State struct {
	MoveForward uint8
	MoveBack    uint8
	MoveLeft    uint8
	MoveRight   uint8

	GamepadMove   r3.Vec
	GamepadRotate r3.Vec

	ShiftDown   bool
	ControlDown bool
}

// Moving reports whether any keyboard movement bit is set.
func (s *State) Moving() bool {
	return s.MoveForward|s.MoveBack|s.MoveLeft|s.MoveRight != 0
}

// ApplyKey updates movement bits and modifier state. Hotkeys are handled by
// the frame driver, not here.
func (s *State) ApplyKey(ev KeyEvent) {
	set := func(mask *uint8, bit uint8) {
		if ev.Down {
			*mask |= bit
		} else {
			*mask &^= bit
		}
	}
	switch ev.Key {
	case KeyW:
		set(&s.MoveForward, maskLetters)
	case KeyS:
		set(&s.MoveBack, maskLetters)
	case KeyA:
		set(&s.MoveLeft, maskLetters)
	case KeyD:
		set(&s.MoveRight, maskLetters)
	case KeyArrowUp:
		set(&s.MoveForward, maskArrows)
	case KeyArrowDown:
		set(&s.MoveBack, maskArrows)
	case KeyShift:
		s.ShiftDown = ev.Down
	case KeyControl:
		s.ControlDown = ev.Down
	}
}

// ApplySticks shapes normalized stick input. The left stick gets a
// sign-preserving square curve for finer control near center; the right
// stick is scaled into yaw/pitch rotation rates.
func (s *State) ApplySticks(st Sticks) {
	s.GamepadMove = r3.Vec{
		X: st.LX * st.LX * sign(st.LX),
		Z: st.LY * st.LY * -sign(st.LY),
	}
	s.GamepadRotate = r3.Vec{X: 2 * st.RX, Y: -2 * st.RY}
}

// deadZone is roughly the XInput thumbstick threshold (9000/32767).
const deadZone = 0.2746

// DeadZone zeroes a raw axis value inside the dead zone and rescales the
// remainder back to the full [-1, 1] range. Only the raw HID path needs
// this; sticks read through a standard layout arrive already filtered.
func DeadZone(v float64) float64 {
	a := math.Abs(v)
	if a < deadZone {
		return 0
	}
	r := (a - deadZone) / (1 - deadZone)
	if r > 1 {
		r = 1
	}
	return r * sign(v)
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
