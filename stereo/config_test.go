package stereo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomtiny/roomgl"
)

func newTestConfig() *Config {
	return NewConfig(SevenInchPanel(), roomgl.Viewport{W: 1280, H: 800})
}

func TestNewConfigDefaults(t *testing.T) {
	c := newTestConfig()
	assert.Equal(t, ModeNone, c.Mode())
	assert.InDelta(t, 0.064, c.IPD(), 1e-12)
	// The 7" panel fits the distortion to the left edge, which needs a
	// scale well above 1.
	assert.Greater(t, c.DistortionScale(), 1.0)
}

func TestDistortionScaleMatchesPolynomial(t *testing.T) {
	c := newTestConfig()

	eyeAspect := 0.5 * 1280.0 / 800.0
	dx := -1 - c.projCenterOffset()
	dy := 0 / eyeAspect
	r := math.Hypot(dx, dy)
	want := c.distortionFn(r) / r
	assert.InDelta(t, want, c.DistortionScale(), 1e-12)
}

func TestSetIPDFloorsAtZero(t *testing.T) {
	c := newTestConfig()
	c.SetIPD(-0.01)
	assert.Zero(t, c.IPD())
}

func TestEyeParamsCenter(t *testing.T) {
	c := newTestConfig()
	ep := c.EyeParams(roomgl.EyeCenter)

	assert.Equal(t, roomgl.EyeCenter, ep.Eye)
	assert.Equal(t, roomgl.Viewport{W: 1280, H: 800}, ep.VP)
	assert.Nil(t, ep.Distortion)
	if diff := cmp.Diff(roomgl.Mat4Identity(), ep.ViewAdjust); diff != "" {
		t.Errorf("center view adjust (-want +got):\n%s", diff)
	}
}

func TestEyeParamsStereoSymmetry(t *testing.T) {
	c := newTestConfig()
	l := c.EyeParams(roomgl.EyeLeft)
	r := c.EyeParams(roomgl.EyeRight)

	assert.Equal(t, roomgl.Viewport{X: 0, Y: 0, W: 640, H: 800}, l.VP)
	assert.Equal(t, roomgl.Viewport{X: 640, Y: 0, W: 640, H: 800}, r.VP)

	// The interpupillary adjust is mirrored: +ipd/2 left, -ipd/2 right.
	assert.InDelta(t, float64(c.IPD()/2), float64(l.ViewAdjust[12]), 1e-7)
	assert.InDelta(t, -float64(c.IPD()/2), float64(r.ViewAdjust[12]), 1e-7)

	require.NotNil(t, l.Distortion)
	require.NotNil(t, r.Distortion)
	assert.InDelta(t, float64(l.Distortion.XCenterOffset), float64(-r.Distortion.XCenterOffset), 1e-7)
	assert.Equal(t, l.Distortion.K, r.Distortion.K)
	assert.Equal(t, l.Distortion.Scale, r.Distortion.Scale)
}

func TestEyeParamsStereoFOVUsesDistortionScale(t *testing.T) {
	c := newTestConfig()
	hmd := SevenInchPanel()

	wantFov := 2 * math.Atan2(c.DistortionScale()*hmd.VScreenSize*0.5, hmd.EyeToScreen)
	// Perspective matrix element [5] is 1/tan(fovY/2).
	ep := c.EyeParams(roomgl.EyeLeft)
	assert.InDelta(t, 1/math.Tan(wantFov/2), float64(ep.Projection[5]), 1e-5)
}

func TestSetDistortionFitPointRescales(t *testing.T) {
	c := newTestConfig()
	before := c.DistortionScale()
	c.SetDistortionFitPoint(0, 1)
	assert.NotEqual(t, before, c.DistortionScale())
}
