package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyKeyIndependentBits(t *testing.T) {
	var s State

	s.ApplyKey(KeyEvent{Key: KeyW, Down: true})
	s.ApplyKey(KeyEvent{Key: KeyArrowUp, Down: true})
	assert.True(t, s.Moving())

	// Releasing the letter key must not clear the arrow key's bit.
	s.ApplyKey(KeyEvent{Key: KeyW, Down: false})
	assert.NotZero(t, s.MoveForward)
	assert.True(t, s.Moving())

	s.ApplyKey(KeyEvent{Key: KeyArrowUp, Down: false})
	assert.Zero(t, s.MoveForward)
	assert.False(t, s.Moving())
}

func TestApplyKeyModifiers(t *testing.T) {
	var s State
	s.ApplyKey(KeyEvent{Key: KeyShift, Down: true})
	s.ApplyKey(KeyEvent{Key: KeyControl, Down: true})
	assert.True(t, s.ShiftDown)
	assert.True(t, s.ControlDown)

	s.ApplyKey(KeyEvent{Key: KeyShift, Down: false})
	assert.False(t, s.ShiftDown)
}

func TestApplySticksSquareCurve(t *testing.T) {
	var s State
	s.ApplySticks(Sticks{LX: 0.5, LY: -0.5})
	assert.InDelta(t, 0.25, s.GamepadMove.X, 1e-12)
	// Stick down (negative LY) moves backward, +Z in local space.
	assert.InDelta(t, 0.25, s.GamepadMove.Z, 1e-12)

	s.ApplySticks(Sticks{LX: -1, LY: 1})
	assert.InDelta(t, -1, s.GamepadMove.X, 1e-12)
	assert.InDelta(t, -1, s.GamepadMove.Z, 1e-12)
}

func TestApplySticksRotationRates(t *testing.T) {
	var s State
	s.ApplySticks(Sticks{RX: 0.5, RY: 0.25})
	// The frame driver subtracts both shaped rates, so stick up
	// (negative shaped Y) pitches the view up.
	assert.InDelta(t, 1.0, s.GamepadRotate.X, 1e-12)
	assert.InDelta(t, -0.5, s.GamepadRotate.Y, 1e-12)
}

func TestDeadZone(t *testing.T) {
	assert.Zero(t, DeadZone(0))
	assert.Zero(t, DeadZone(0.2))
	assert.Zero(t, DeadZone(-0.27))

	// Full deflection still reaches 1 after rescaling.
	assert.InDelta(t, 1, DeadZone(1), 1e-12)
	assert.InDelta(t, -1, DeadZone(-1), 1e-12)

	// Just past the threshold the output starts near zero, not at the
	// threshold value.
	assert.Less(t, DeadZone(0.3), 0.05)
	assert.Greater(t, DeadZone(0.3), 0.0)
}
