package roomgl

// Eye tags a render pass.
type Eye uint8

const (
	EyeCenter Eye = iota
	EyeLeft
	EyeRight
)

func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	default:
		return "center"
	}
}

// PostProcess selects the lens post-process applied at EndFrame.
type PostProcess uint8

const (
	PostProcessNone PostProcess = iota
	PostProcessDistortion
	PostProcessDistortionChromAb
)

// Viewport is a pixel rectangle inside the frame.
type Viewport struct {
	X, Y, W, H int
}

// Distortion holds the radial lens parameters for one eye viewport.
type Distortion struct {
	K             [4]float32 // radial polynomial coefficients
	ChromAb       [4]float32 // per-channel correction: red c0+c1*r², blue c2+c3*r²
	XCenterOffset float32    // lens center offset in viewport NDC
	Scale         float32    // fit-point scale applied after the polynomial
}

// EyeParams carries everything the backend needs for one eye pass. The view
// adjust is the interpupillary translation the backend premultiplies onto
// the caller's view matrix; the projection includes the per-eye center
// offset. Distortion is nil when no lens warp applies.
type EyeParams struct {
	Eye        Eye
	VP         Viewport
	ViewAdjust Mat4
	Projection Mat4
	Distortion *Distortion
}

// Presenter receives the finished RGBA frame once per frame.
type Presenter interface {
	PresentFrame(pix []byte, w, h int) error
}
