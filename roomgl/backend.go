package roomgl

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoPresenter is returned by Present when the backend was never attached
// to a display.
var ErrNoPresenter = errors.New("roomgl: no presenter attached")

// Backend is the render backend of the demo: a software rasterizer plus the
// lens post-process, drawing into a frame buffer that a Presenter displays.
//
// The per-frame call order is fixed: for each eye BeginFrame, ApplyEyeParams,
// Clear, DrawScene, EndFrame; then Present and ForceGPUFlush once.
type Backend struct {
	w, h      int
	front     *image.RGBA // presented frame
	scratch   *image.RGBA // undistorted render when a post-process is active
	renderer  *Renderer
	scene     *Scene
	presenter Presenter

	post PostProcess
	eye  EyeParams
}

// NewBackend creates a backend for a fixed frame size. A failure here is
// fatal to the application; there is no retry.
func NewBackend(w, h int, scene *Scene) (*Backend, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("roomgl: invalid frame size %dx%d", w, h)
	}
	return &Backend{
		w:        w,
		h:        h,
		front:    image.NewRGBA(image.Rect(0, 0, w, h)),
		scratch:  image.NewRGBA(image.Rect(0, 0, w, h)),
		renderer: NewRenderer(w, h),
		scene:    scene,
	}, nil
}

// AttachPresenter connects the backend to a display surface.
func (b *Backend) AttachPresenter(p Presenter) { b.presenter = p }

// Size returns the frame dimensions.
func (b *Backend) Size() (w, h int) { return b.w, b.h }

// BeginFrame starts one eye pass with the given post-process.
func (b *Backend) BeginFrame(pp PostProcess) {
	b.post = pp
}

// ApplyEyeParams selects the viewport, projection and view adjust for the
// current pass.
func (b *Backend) ApplyEyeParams(ep EyeParams) {
	b.eye = ep
}

// Clear fills the current eye viewport and resets its depth.
func (b *Backend) Clear() {
	b.renderer.ClearViewport(b.target(), b.eye.VP, RGB(0x10, 0x10, 0x18))
}

// DrawScene renders the scene for the current eye. The eye's view adjust is
// premultiplied onto the caller's view matrix here; the caller passes the
// head-pose view only.
func (b *Backend) DrawScene(view Mat4) {
	full := Mat4Mul(b.eye.ViewAdjust, view)
	b.renderer.DrawScene(b.target(), b.eye.VP, b.eye.Projection, full, b.scene)
}

// EndFrame finishes the current eye pass, applying the lens warp when a
// post-process is active.
func (b *Backend) EndFrame() {
	if b.post == PostProcessNone || b.eye.Distortion == nil {
		return
	}
	warpEye(b.front, b.scratch, b.eye.VP, b.eye.Distortion, b.post == PostProcessDistortionChromAb)
}

// Present hands the finished frame to the display.
func (b *Backend) Present() error {
	if b.presenter == nil {
		return ErrNoPresenter
	}
	return b.presenter.PresentFrame(b.front.Pix, b.w, b.h)
}

// ForceGPUFlush is the lowest-latency flush hook of the render contract.
// The software rasterizer completes synchronously, so there is nothing
// left to flush.
func (b *Backend) ForceGPUFlush() {}

func (b *Backend) target() *image.RGBA {
	if b.post != PostProcessNone && b.eye.Distortion != nil {
		return b.scratch
	}
	return b.front
}
