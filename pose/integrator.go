package pose

// YawIntegrator merges tracker yaw with manual yaw input into one running
// absolute yaw.
//
// Only the frame-to-frame delta of the tracked yaw is trusted: the tracker
// may be re-tared (zeroed) at any time, and an absolute overwrite would
// discard yaw contributed by mouse or gamepad since the last tare.
type YawIntegrator struct {
	yaw         float64
	lastTracked float64
}

// NewYawIntegrator starts the integrator at an initial absolute yaw.
func NewYawIntegrator(initial float64) *YawIntegrator {
	return &YawIntegrator{yaw: initial}
}

// Yaw returns the current absolute yaw.
func (i *YawIntegrator) Yaw() float64 { return i.yaw }

// ObserveTracked folds a new tracked yaw reading in by its delta from the
// previous reading.
func (i *YawIntegrator) ObserveTracked(tracked float64) {
	i.yaw += tracked - i.lastTracked
	i.lastTracked = tracked
}

// AddManual applies a relative yaw contribution (mouse or gamepad).
func (i *YawIntegrator) AddManual(delta float64) {
	i.yaw += delta
}
