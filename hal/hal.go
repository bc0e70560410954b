// Package hal is the only contact point between the frame driver and the
// host platform: input devices, the display, and time. The app receives a
// HAL and never touches the windowing layer directly, so the same frame
// driver runs under a desktop window or a headless ticker.
package hal

import (
	"errors"
	"time"

	"roomtiny/input"
)

// ErrQuit is returned by the app step to request a clean shutdown. The
// runners translate it into their own termination path.
var ErrQuit = errors.New("hal: quit requested")

// Display receives finished frames for presentation.
type Display interface {
	// PresentFrame hands over one RGBA frame. pix is w*h*4 bytes and is
	// owned by the caller; implementations must copy before returning.
	PresentFrame(pix []byte, w, h int) error

	Size() (w, h int)
}

// HAL provides input, output and time to the frame driver.
type HAL interface {
	// PollInput drains the platform input since the previous call.
	PollInput() input.Frame

	Display() Display

	// Now is a monotonic clock starting near process start.
	Now() time.Duration
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}
