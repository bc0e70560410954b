package roomgl

import (
	"errors"
	"math"
	"testing"
)

type capturePresenter struct {
	pix  []byte
	w, h int
}

func (p *capturePresenter) PresentFrame(pix []byte, w, h int) error {
	p.pix = append(p.pix[:0], pix...)
	p.w, p.h = w, h
	return nil
}

func TestNewBackendRejectsInvalidSize(t *testing.T) {
	if _, err := NewBackend(0, 100, NewScene()); err == nil {
		t.Fatalf("zero width accepted")
	}
	if _, err := NewBackend(100, -1, NewScene()); err == nil {
		t.Fatalf("negative height accepted")
	}
}

func TestPresentWithoutPresenter(t *testing.T) {
	b, err := NewBackend(64, 64, NewScene())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Present(); !errors.Is(err, ErrNoPresenter) {
		t.Fatalf("want ErrNoPresenter, got %v", err)
	}
}

func TestBackendFrameReachesPresenter(t *testing.T) {
	b, err := NewBackend(64, 64, testScene())
	if err != nil {
		t.Fatal(err)
	}
	p := &capturePresenter{}
	b.AttachPresenter(p)

	proj := Mat4Perspective(float32(math.Pi/3), 1, 0.05, 500)
	view := Mat4LookAt(V3(0, 0, 0), V3(0, 0, -1), V3(0, 1, 0))

	b.BeginFrame(PostProcessNone)
	b.ApplyEyeParams(EyeParams{
		Eye:        EyeCenter,
		VP:         Viewport{W: 64, H: 64},
		ViewAdjust: Mat4Identity(),
		Projection: proj,
	})
	b.Clear()
	b.DrawScene(view)
	b.EndFrame()
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}
	b.ForceGPUFlush()

	if p.w != 64 || p.h != 64 || len(p.pix) != 64*64*4 {
		t.Fatalf("presented frame shape %dx%d len %d", p.w, p.h, len(p.pix))
	}
}

func TestBackendDistortionPass(t *testing.T) {
	b, err := NewBackend(64, 64, testScene())
	if err != nil {
		t.Fatal(err)
	}
	p := &capturePresenter{}
	b.AttachPresenter(p)

	proj := Mat4Perspective(float32(math.Pi/3), 1, 0.05, 500)
	view := Mat4LookAt(V3(0, 0, 0), V3(0, 0, -1), V3(0, 1, 0))
	dist := &Distortion{
		K:     [4]float32{1.0, 0.22, 0.24, 0},
		Scale: 1.7,
	}

	b.BeginFrame(PostProcessDistortion)
	b.ApplyEyeParams(EyeParams{
		Eye:        EyeLeft,
		VP:         Viewport{W: 32, H: 64},
		ViewAdjust: Mat4Identity(),
		Projection: proj,
		Distortion: dist,
	})
	b.Clear()
	b.DrawScene(view)
	b.EndFrame()
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}
}
