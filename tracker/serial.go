package tracker

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"gonum.org/v1/gonum/num/quat"
)

const (
	trackerBaud   = 115200
	sampleTimeout = 50 * time.Millisecond
	probeTimeout  = 500 * time.Millisecond

	probeCommand = "ID\r\n"
	probeReply   = "TRK"
	tareCommand  = "TARE\r\n"
)

// ExternalTracker reads a streaming external inertial tracker over a serial
// port. Records are line-framed ASCII:
//
//	Q,<x>,<y>,<z>,<w>,<tick>
//
// with the quaternion in x,y,z,w order and a millisecond hardware tick.
type ExternalTracker struct {
	portName string
	port     serial.Port

	connected bool
	pending   []byte
	tmp       [256]byte
}

// NewExternalTracker targets a serial port by name (for example
// /dev/ttyUSB0 or COM3).
func NewExternalTracker(portName string) *ExternalTracker {
	return &ExternalTracker{portName: portName}
}

// Connect opens the port and verifies the device identification reply.
func (t *ExternalTracker) Connect() error {
	if t.portName == "" {
		return fmt.Errorf("%w: no serial port configured", ErrUnavailable)
	}
	mode := &serial.Mode{
		BaudRate: trackerBaud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(t.portName, mode)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrUnavailable, t.portName, err)
	}
	if err := port.SetReadTimeout(sampleTimeout); err != nil {
		port.Close()
		return fmt.Errorf("%w: set timeout: %v", ErrUnavailable, err)
	}

	t.port = port
	if _, err := port.Write([]byte(probeCommand)); err != nil {
		t.disconnect()
		return fmt.Errorf("%w: probe write: %v", ErrUnavailable, err)
	}
	line, err := t.readLine(probeTimeout)
	if err != nil || !strings.HasPrefix(line, probeReply) {
		t.disconnect()
		return fmt.Errorf("%w: no identification from %s", ErrUnavailable, t.portName)
	}

	t.connected = true
	return nil
}

// Sample returns the next streamed orientation record, or ErrTimeout when
// the device stayed silent for the per-call timeout.
func (t *ExternalTracker) Sample() (Sample, error) {
	if !t.connected {
		return Sample{}, ErrUnavailable
	}
	line, err := t.readLine(sampleTimeout)
	if err != nil {
		return Sample{}, err
	}
	return parseSample(line)
}

// Tare asks the device to re-zero its reference orientation.
func (t *ExternalTracker) Tare() {
	if t.connected {
		t.port.Write([]byte(tareCommand))
	}
}

// SetPredictionEnabled is a no-op: the external tracker streams whatever
// filtering it performs on-device.
func (t *ExternalTracker) SetPredictionEnabled(bool) {}

func (t *ExternalTracker) Kind() SourceKind { return SourceExternalTracker }

func (t *ExternalTracker) Close() error {
	var err error
	if t.port != nil {
		err = t.port.Close()
	}
	t.port = nil
	t.connected = false
	return err
}

func (t *ExternalTracker) disconnect() {
	if t.port != nil {
		t.port.Close()
		t.port = nil
	}
}

// readLine assembles one newline-terminated record from the port. The
// serial driver signals its own read timeout as a zero-length read.
func (t *ExternalTracker) readLine(timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		if i := bytes.IndexByte(t.pending, '\n'); i >= 0 {
			line := strings.TrimSpace(string(t.pending[:i]))
			t.pending = t.pending[i+1:]
			return line, nil
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}
		n, err := t.port.Read(t.tmp[:])
		if err != nil {
			return "", fmt.Errorf("%w: read: %v", ErrTimeout, err)
		}
		if n == 0 {
			return "", ErrTimeout
		}
		t.pending = append(t.pending, t.tmp[:n]...)
	}
}

func parseSample(line string) (Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 || fields[0] != "Q" {
		return Sample{}, fmt.Errorf("%w: malformed record %q", ErrTimeout, line)
	}
	var v [5]float64
	for i := 0; i < 5; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: field %d of %q", ErrTimeout, i+1, line)
		}
		v[i] = f
	}
	q := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2], Real: v[3]}
	n := quat.Abs(q)
	if n == 0 {
		return Sample{}, fmt.Errorf("%w: zero quaternion in %q", ErrTimeout, line)
	}
	return Sample{
		Orientation: quat.Scale(1/n, q),
		At:          time.Duration(v[4]) * time.Millisecond,
	}, nil
}
