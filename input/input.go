// Package input defines the per-frame input state and the translation from
// platform key/mouse/gamepad events into it. The platform layer produces a
// Frame once per tick; the frame driver consumes it. No other goroutine
// touches the state.
package input

// Key identifies a bound key. The platform layer only delivers keys the
// demo binds; everything else is dropped at the boundary.
type Key uint8

const (
	KeyNone Key = iota

	// Movement.
	KeyW
	KeyA
	KeyS
	KeyD
	KeyArrowUp
	KeyArrowDown

	// Tracker and rendering hotkeys.
	KeyR
	KeyP
	KeyF1
	KeyF2
	KeyF3

	// IPD adjustment.
	KeyEqual
	KeyMinus
	KeyInsert
	KeyDelete

	// Modifiers and quit.
	KeyShift
	KeyControl
	KeyEscape
	KeyQ
)

// KeyEvent is a discrete key transition.
type KeyEvent struct {
	Key  Key
	Down bool
}

// MouseDelta is relative mouse motion for one frame, in counts.
type MouseDelta struct {
	DX, DY int
}

// Sticks holds normalized gamepad stick positions in [-1, 1] with the dead
// zone already applied. Positive Y is stick-up.
type Sticks struct {
	LX, LY, RX, RY float64
}

// Frame is everything the platform harvested since the previous tick.
type Frame struct {
	Keys    []KeyEvent
	Mouse   MouseDelta
	Sticks  Sticks
	Focused bool
}
