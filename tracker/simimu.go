package tracker

import (
	"math"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"roomtiny/pose"
)

// SimulatedIMU produces a gentle scripted head sway for host runs without
// real hardware, the same way the host platform fakes its other signal
// sources. It keeps a scripted true orientation and reports the matching
// angular rate and gravity vector.
type SimulatedIMU struct {
	YawAmplitude   float64 // radians
	PitchAmplitude float64 // radians
	Period         time.Duration

	clock func() time.Duration
}

// NewSimulatedIMU returns a sway of a few degrees over an eight second
// period.
func NewSimulatedIMU() *SimulatedIMU {
	start := time.Now()
	return &SimulatedIMU{
		YawAmplitude:   4 * math.Pi / 180,
		PitchAmplitude: 2 * math.Pi / 180,
		Period:         8 * time.Second,
		clock:          func() time.Duration { return time.Since(start) },
	}
}

// ReadIMU returns the scripted angular rate and the gravity vector rotated
// into the device frame.
func (s *SimulatedIMU) ReadIMU() (gyro, accel r3.Vec, err error) {
	t := s.clock().Seconds()
	w := 2 * math.Pi / s.Period.Seconds()

	yaw := s.YawAmplitude * math.Sin(w*t)
	pitch := s.PitchAmplitude * math.Sin(2*w*t)

	// Rates are the analytic derivatives of the scripted angles.
	gyro = r3.Vec{
		Y: s.PitchAmplitude * 2 * w * math.Cos(2*w*t), // pitch rate, about device y
		Z: s.YawAmplitude * w * math.Cos(w*t),         // yaw rate, about device z
	}

	// Gravity measured in the device frame.
	q := pose.Compose(yaw, pitch, 0)
	accel = rotateVec(quat.Conj(q), r3.Vec{Z: gravity})
	return gyro, accel, nil
}

func rotateVec(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
