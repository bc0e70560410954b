package pose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

func TestDecomposePureAxes(t *testing.T) {
	cases := []struct {
		name             string
		yaw, pitch, roll float64
	}{
		{"identity", 0, 0, 0},
		{"yaw quarter", math.Pi / 2, 0, 0},
		{"yaw back", math.Pi - 0.01, 0, 0},
		{"yaw negative", -math.Pi / 3, 0, 0},
		{"pitch up", 0, math.Pi / 4, 0},
		{"pitch down", 0, -math.Pi / 3, 0},
		{"roll", 0, 0, math.Pi / 6},
		{"combined", 1.1, 0.4, -0.3},
		{"combined negative", -2.0, -0.7, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Compose(tc.yaw, tc.pitch, tc.roll)
			yaw, pitch, roll := Decompose(q)
			assert.InDelta(t, tc.yaw, yaw, 1e-9)
			assert.InDelta(t, tc.pitch, pitch, 1e-9)
			assert.InDelta(t, tc.roll, roll, 1e-9)
		})
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	// Pitch stays inside the open interval where the decomposition is
	// unique; yaw and roll cover the full circle.
	for yaw := -3.0; yaw <= 3.0; yaw += 0.6 {
		for pitch := -1.4; pitch <= 1.4; pitch += 0.35 {
			for roll := -3.0; roll <= 3.0; roll += 0.75 {
				q := Compose(yaw, pitch, roll)
				y, p, r := Decompose(q)
				require.InDelta(t, yaw, y, 1e-8, "yaw for %v %v %v", yaw, pitch, roll)
				require.InDelta(t, pitch, p, 1e-8)
				require.InDelta(t, roll, r, 1e-8)
			}
		}
	}
}

func TestDecomposeUnitInvariance(t *testing.T) {
	// Decomposition must not depend on quaternion sign.
	q := Compose(0.8, 0.3, -0.2)
	y1, p1, r1 := Decompose(q)
	y2, p2, r2 := Decompose(quat.Scale(-1, q))
	assert.InDelta(t, y1, y2, 1e-9)
	assert.InDelta(t, p1, p2, 1e-9)
	assert.InDelta(t, r1, r2, 1e-9)
}

func TestDecomposeGimbalPoles(t *testing.T) {
	up := Compose(0, math.Pi/2, 0)
	yaw, pitch, _ := Decompose(up)
	assert.InDelta(t, math.Pi/2, pitch, 1e-6)
	// Yaw is undefined at the pole; the branch pins it to zero so the
	// yaw integrator sees no spurious delta.
	assert.Zero(t, yaw)

	down := Compose(0, -math.Pi/2, 0)
	yaw, pitch, _ = Decompose(down)
	assert.InDelta(t, -math.Pi/2, pitch, 1e-6)
	assert.Zero(t, yaw)
}

func TestComposeIsUnit(t *testing.T) {
	q := Compose(2.5, -1.0, 0.7)
	assert.InDelta(t, 1.0, quat.Abs(q), 1e-12)
}
