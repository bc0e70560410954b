// Package stereo owns the stereo rendering configuration: which eye passes
// a frame produces, the per-eye projection and interpupillary view adjust,
// and the lens distortion parameters derived from the panel profile.
package stereo

import (
	"math"

	"roomtiny/roomgl"
)

// Mode selects how many eye passes a frame produces.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeLeftRightMultipass
)

// IPDStep is one interpupillary adjustment increment in meters.
const IPDStep = 0.0005

// HMDInfo is a fixed display panel and lens profile.
type HMDInfo struct {
	HResolution, VResolution int
	HScreenSize, VScreenSize float64 // meters
	EyeToScreen              float64 // meters
	LensSeparation           float64 // meters
	IPD                      float64 // meters
	DistortionK              [4]float64
	ChromAbCorrection        [4]float64
}

// SevenInchPanel returns the profile of the 7-inch development panel.
func SevenInchPanel() HMDInfo {
	return HMDInfo{
		HResolution:       1280,
		VResolution:       800,
		HScreenSize:       0.14976,
		VScreenSize:       0.0936,
		EyeToScreen:       0.041,
		LensSeparation:    0.0635,
		IPD:               0.064,
		DistortionK:       [4]float64{1.0, 0.22, 0.24, 0},
		ChromAbCorrection: [4]float64{0.996, -0.004, 1.014, 0},
	}
}

// Config is the mutable stereo state, owned by the application and adjusted
// through the hotkey surface. It is read every frame.
type Config struct {
	hmd    HMDInfo
	mode   Mode
	ipd    float64
	fullVP roomgl.Viewport

	fitX, fitY float64
	fov2D      float64

	near, far       float64
	distortionScale float64
}

// NewConfig builds a config for the panel over the full viewport. The
// default mode is mono; callers opt into stereo explicitly.
func NewConfig(hmd HMDInfo, vp roomgl.Viewport) *Config {
	c := &Config{
		hmd:    hmd,
		mode:   ModeNone,
		ipd:    hmd.IPD,
		fullVP: vp,
		fov2D:  85 * math.Pi / 180,
		near:   0.05,
		far:    500,
	}
	// Fit the distortion to the left edge for the 7" panel, to the top
	// for smaller screens.
	if hmd.HScreenSize > 0.140 {
		c.fitX, c.fitY = -1, 0
	} else {
		c.fitX, c.fitY = 0, 1
	}
	c.updateDistortionScale()
	return c
}

// Mode returns the active stereo mode.
func (c *Config) Mode() Mode { return c.mode }

// SetMode switches between mono and left/right multipass rendering.
func (c *Config) SetMode(m Mode) { c.mode = m }

// IPD returns the interpupillary distance in meters.
func (c *Config) IPD() float64 { return c.ipd }

// SetIPD sets the interpupillary distance in meters.
func (c *Config) SetIPD(v float64) {
	if v < 0 {
		v = 0
	}
	c.ipd = v
}

// SetDistortionFitPoint sets the viewport point (in left-eye NDC) that the
// distortion scale is fitted to and recomputes the scale.
func (c *Config) SetDistortionFitPoint(x, y float64) {
	c.fitX, c.fitY = x, y
	c.updateDistortionScale()
}

// Set2DAreaFOV sets the vertical field of view used for the mono pass.
func (c *Config) Set2DAreaFOV(rad float64) { c.fov2D = rad }

// DistortionScale returns the render scale required so the fit point still
// reaches the viewport edge after the lens warp.
func (c *Config) DistortionScale() float64 { return c.distortionScale }

// Viewport returns the full-frame viewport.
func (c *Config) Viewport() roomgl.Viewport { return c.fullVP }

// projCenterOffset is the horizontal projection center shift, in per-eye
// viewport NDC, induced by the lens separation being narrower than half
// the screen.
func (c *Config) projCenterOffset() float64 {
	viewCenter := c.hmd.HScreenSize * 0.25
	eyeShift := viewCenter - c.hmd.LensSeparation*0.5
	return 4 * eyeShift / c.hmd.HScreenSize
}

func (c *Config) distortionFn(r float64) float64 {
	k := c.hmd.DistortionK
	rsq := r * r
	return r * (k[0] + rsq*(k[1]+rsq*(k[2]+rsq*k[3])))
}

func (c *Config) updateDistortionScale() {
	eyeAspect := 0.5 * float64(c.fullVP.W) / float64(c.fullVP.H)
	dx := c.fitX - c.projCenterOffset()
	dy := c.fitY / eyeAspect
	fitRadius := math.Hypot(dx, dy)
	if fitRadius == 0 {
		c.distortionScale = 1
		return
	}
	c.distortionScale = c.distortionFn(fitRadius) / fitRadius
}

// EyeParams returns the render-side parameters for one eye: viewport,
// projection with per-eye center offset, interpupillary view adjust and
// lens distortion. The center eye gets the plain mono projection.
func (c *Config) EyeParams(eye roomgl.Eye) roomgl.EyeParams {
	if eye == roomgl.EyeCenter {
		aspect := float32(c.fullVP.W) / float32(c.fullVP.H)
		return roomgl.EyeParams{
			Eye:        roomgl.EyeCenter,
			VP:         c.fullVP,
			ViewAdjust: roomgl.Mat4Identity(),
			Projection: roomgl.Mat4Perspective(float32(c.fov2D), aspect, float32(c.near), float32(c.far)),
		}
	}

	halfW := c.fullVP.W / 2
	vp := roomgl.Viewport{X: c.fullVP.X, Y: c.fullVP.Y, W: halfW, H: c.fullVP.H}
	sign := float32(1)
	if eye == roomgl.EyeRight {
		vp.X += halfW
		sign = -1
	}

	aspect := float32(halfW) / float32(c.fullVP.H)
	fovY := 2 * math.Atan2(c.distortionScale*c.hmd.VScreenSize*0.5, c.hmd.EyeToScreen)
	persp := roomgl.Mat4Perspective(float32(fovY), aspect, float32(c.near), float32(c.far))
	projOff := float32(c.projCenterOffset())

	dist := &roomgl.Distortion{
		XCenterOffset: sign * projOff,
		Scale:         float32(c.distortionScale),
	}
	for i, k := range c.hmd.DistortionK {
		dist.K[i] = float32(k)
	}
	for i, a := range c.hmd.ChromAbCorrection {
		dist.ChromAb[i] = float32(a)
	}

	return roomgl.EyeParams{
		Eye:        eye,
		VP:         vp,
		ViewAdjust: roomgl.Mat4Translate(roomgl.V3(sign*float32(c.ipd)*0.5, 0, 0)),
		Projection: roomgl.Mat4Mul(roomgl.Mat4Translate(roomgl.V3(sign*projOff, 0, 0)), persp),
		Distortion: dist,
	}
}
