// Package tracker provides the head-orientation sources: an internal
// sensor-fusion provider over a raw IMU and an external inertial tracker
// streaming quaternions over a serial link. At most one source is active;
// selection happens once at startup.
package tracker

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/num/quat"
)

// Sentinel errors for the two non-fatal device failure classes.
var (
	// ErrUnavailable means the source is not connected or its connect
	// handshake failed. Callers fall back to manual input.
	ErrUnavailable = errors.New("tracker: unavailable")

	// ErrTimeout means a connected source produced no data within its
	// per-call timeout. Callers keep the previous pose for the frame.
	ErrTimeout = errors.New("tracker: sample timeout")
)

// SourceKind identifies the active orientation provider.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceInternalFusion
	SourceExternalTracker
)

func (k SourceKind) String() string {
	switch k {
	case SourceInternalFusion:
		return "internal-fusion"
	case SourceExternalTracker:
		return "external-tracker"
	default:
		return "none"
	}
}

// Sample is one timestamped unit-quaternion orientation reading. It is
// recreated every frame; no history is retained.
type Sample struct {
	Orientation quat.Number
	At          time.Duration // monotonic
}

// Source is a head-orientation provider. Sample is a non-blocking
// latest-value call made once per frame.
type Source interface {
	// Connect runs the enumerate/open/verify handshake. Until it
	// succeeds, Sample returns ErrUnavailable.
	Connect() error

	// Sample returns the latest orientation or ErrUnavailable/ErrTimeout.
	Sample() (Sample, error)

	// Tare re-zeroes the reported orientation.
	Tare()

	// SetPredictionEnabled toggles forward prediction where supported.
	SetPredictionEnabled(bool)

	Kind() SourceKind
	Close() error
}
