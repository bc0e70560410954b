package tracker

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

func TestParseSample(t *testing.T) {
	s, err := parseSample("Q,0,0,0.7071068,0.7071068,1234")
	require.NoError(t, err)
	assert.InDelta(t, 0.7071068, s.Orientation.Kmag, 1e-6)
	assert.InDelta(t, 0.7071068, s.Orientation.Real, 1e-6)
	assert.Equal(t, 1234*time.Millisecond, s.At)
}

func TestParseSampleNormalizes(t *testing.T) {
	// Device firmware may stream unnormalized values; the parser fixes
	// them up.
	s, err := parseSample("Q,0,0,2,2,0")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, quat.Abs(s.Orientation), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, s.Orientation.Kmag, 1e-12)
}

func TestParseSampleWhitespaceTolerant(t *testing.T) {
	_, err := parseSample("Q, 0, 0, 0, 1, 42")
	assert.NoError(t, err)
}

func TestParseSampleRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"Q,0,0,0,1",         // missing tick
		"P,0,0,0,1,0",       // wrong record tag
		"Q,a,0,0,1,0",       // non-numeric field
		"Q,0,0,0,0,0",       // zero quaternion
		"Q,0,0,0,1,0,extra", // trailing field
	}
	for _, line := range cases {
		_, err := parseSample(line)
		assert.ErrorIs(t, err, ErrTimeout, "line %q", line)
	}
}
