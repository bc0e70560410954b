package tracker

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"roomtiny/pose"
)

// IMU is a raw inertial unit: angular rate in rad/s and specific force in
// m/s², both in the device frame (z up, yaw about z).
type IMU interface {
	ReadIMU() (gyro, accel r3.Vec, err error)
}

const (
	// tiltGain is the complementary-filter blend toward the
	// accelerometer tilt reference, per sample.
	tiltGain = 0.02

	// predictionLookahead is the fixed forward-prediction horizon.
	predictionLookahead = 30 * time.Millisecond

	gravity = 9.80665
)

// InternalFusion integrates a raw IMU into an orientation quaternion:
// gyro integration through the quaternion derivative, with the
// accelerometer pulling pitch and roll back toward the gravity reference.
type InternalFusion struct {
	imu   IMU
	clock func() time.Duration

	connected bool
	predict   bool
	q         quat.Number
	gyro      r3.Vec
	lastAt    time.Duration
}

// NewInternalFusion wraps an IMU. A nil clock uses wall-clock monotonic time.
func NewInternalFusion(imu IMU, clock func() time.Duration) *InternalFusion {
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	return &InternalFusion{imu: imu, clock: clock}
}

// Connect probes the IMU once and initializes the filter at identity.
func (f *InternalFusion) Connect() error {
	if f.imu == nil {
		return fmt.Errorf("%w: no IMU", ErrUnavailable)
	}
	if _, _, err := f.imu.ReadIMU(); err != nil {
		return fmt.Errorf("%w: imu probe: %v", ErrUnavailable, err)
	}
	f.q = quat.Number{Real: 1}
	f.lastAt = f.clock()
	f.connected = true
	return nil
}

// Sample advances the filter by one IMU reading and returns the fused
// orientation, extrapolated along the last angular rate when prediction
// is enabled.
func (f *InternalFusion) Sample() (Sample, error) {
	if !f.connected {
		return Sample{}, ErrUnavailable
	}
	g, a, err := f.imu.ReadIMU()
	if err != nil {
		return Sample{}, fmt.Errorf("%w: imu read: %v", ErrTimeout, err)
	}

	now := f.clock()
	dt := (now - f.lastAt).Seconds()
	f.lastAt = now
	f.gyro = g

	if dt > 0 {
		// q̇ = ½ q ⊗ ω
		w := quat.Number{Imag: g.X, Jmag: g.Y, Kmag: g.Z}
		f.q = normalize(quat.Add(f.q, quat.Scale(0.5*dt, quat.Mul(f.q, w))))
		f.q = f.tiltCorrect(a)
	}

	q := f.q
	if f.predict {
		q = quat.Mul(q, rotationVec(r3.Scale(predictionLookahead.Seconds(), g)))
	}
	return Sample{Orientation: q, At: now}, nil
}

// tiltCorrect blends pitch and roll toward the accelerometer gravity
// reference, leaving yaw untouched.
func (f *InternalFusion) tiltCorrect(a r3.Vec) quat.Number {
	n := r3.Norm(a)
	if n < gravity*0.5 || n > gravity*1.5 {
		// Under strong linear acceleration the reference is useless.
		return f.q
	}
	rollRef := math.Atan2(a.Y, a.Z)
	pitchRef := math.Atan2(-a.X, math.Hypot(a.Y, a.Z))
	yaw, _, _ := pose.Decompose(f.q)
	ref := pose.Compose(yaw, pitchRef, rollRef)
	return nlerp(f.q, ref, tiltGain)
}

// Tare re-zeroes the orientation so the current physical pose becomes the
// reference. The frame driver's yaw-delta blend absorbs the jump.
func (f *InternalFusion) Tare() {
	if f.connected {
		f.q = quat.Number{Real: 1}
	}
}

// SetPredictionEnabled toggles forward prediction along the last measured
// angular rate.
func (f *InternalFusion) SetPredictionEnabled(on bool) { f.predict = on }

func (f *InternalFusion) Kind() SourceKind { return SourceInternalFusion }

func (f *InternalFusion) Close() error {
	f.connected = false
	return nil
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// nlerp interpolates between two unit quaternions, picking the short arc.
func nlerp(a, b quat.Number, t float64) quat.Number {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	if dot < 0 {
		b = quat.Scale(-1, b)
	}
	return normalize(quat.Add(quat.Scale(1-t, a), quat.Scale(t, b)))
}

// rotationVec converts a rotation vector (axis times angle) to a quaternion.
func rotationVec(v r3.Vec) quat.Number {
	angle := r3.Norm(v)
	if angle == 0 {
		return quat.Number{Real: 1}
	}
	axis := r3.Scale(1/angle, v)
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}
