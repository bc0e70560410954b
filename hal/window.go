package hal

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"roomtiny/input"
)

// RunWindow starts a desktop window, polls its input each tick and displays
// the frames the app presents. It blocks until the window closes or the app
// requests quit.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}
	h := &windowHAL{
		width:  cfg.Width,
		height: cfg.Height,
		start:  time.Now(),
	}
	step := newApp(h)

	g := &windowGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// windowHAL is the desktop platform: ebiten window, keyboard, mouse and
// gamepad, with the mouse captured while the window has focus.
type windowHAL struct {
	width, height int
	start         time.Time

	frame input.Frame

	lastMouseX, lastMouseY int
	mouseValid             bool
	captured               bool
	gamepads               []ebiten.GamepadID

	mu        sync.Mutex
	present   *image.RGBA
	presented bool
}

func (h *windowHAL) Display() Display   { return h }
func (h *windowHAL) Size() (int, int)   { return h.width, h.height }
func (h *windowHAL) Now() time.Duration { return time.Since(h.start) }

func (h *windowHAL) PresentFrame(pix []byte, w, h2 int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.present == nil || h.present.Bounds().Dx() != w || h.present.Bounds().Dy() != h2 {
		h.present = image.NewRGBA(image.Rect(0, 0, w, h2))
	}
	copy(h.present.Pix, pix)
	h.presented = true
	return nil
}

// keyBindings maps the window keys to the frame driver's key set. Left and
// right modifier variants collapse onto one key.
var keyBindings = []struct {
	eb ebiten.Key
	k  input.Key
}{
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyA, input.KeyA},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyD, input.KeyD},
	{ebiten.KeyArrowUp, input.KeyArrowUp},
	{ebiten.KeyArrowDown, input.KeyArrowDown},
	{ebiten.KeyR, input.KeyR},
	{ebiten.KeyP, input.KeyP},
	{ebiten.KeyF1, input.KeyF1},
	{ebiten.KeyF2, input.KeyF2},
	{ebiten.KeyF3, input.KeyF3},
	{ebiten.KeyEqual, input.KeyEqual},
	{ebiten.KeyMinus, input.KeyMinus},
	{ebiten.KeyInsert, input.KeyInsert},
	{ebiten.KeyDelete, input.KeyDelete},
	{ebiten.KeyQ, input.KeyQ},
	{ebiten.KeyEscape, input.KeyEscape},
	{ebiten.KeyShiftLeft, input.KeyShift},
	{ebiten.KeyShiftRight, input.KeyShift},
	{ebiten.KeyControlLeft, input.KeyControl},
	{ebiten.KeyControlRight, input.KeyControl},
}

func (h *windowHAL) PollInput() input.Frame {
	f := h.frame
	h.frame = input.Frame{}
	return f
}

// poll gathers one tick of window input. It runs on the game loop; the app
// step consumes the result through PollInput in the same tick.
func (h *windowHAL) poll() {
	var f input.Frame
	f.Focused = ebiten.IsFocused()

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.eb) {
			f.Keys = append(f.Keys, input.KeyEvent{Key: b.k, Down: true})
		}
		if inpututil.IsKeyJustReleased(b.eb) {
			f.Keys = append(f.Keys, input.KeyEvent{Key: b.k, Down: false})
		}
	}

	h.pollMouse(&f)
	h.pollGamepad(&f)
	h.frame = f
}

func (h *windowHAL) pollMouse(f *input.Frame) {
	if f.Focused != h.captured {
		if f.Focused {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		h.captured = f.Focused
		h.mouseValid = false
		return
	}
	if !f.Focused {
		h.mouseValid = false
		return
	}
	x, y := ebiten.CursorPosition()
	if h.mouseValid {
		f.Mouse = input.MouseDelta{DX: x - h.lastMouseX, DY: y - h.lastMouseY}
	}
	h.lastMouseX, h.lastMouseY = x, y
	h.mouseValid = true
}

func (h *windowHAL) pollGamepad(f *input.Frame) {
	h.gamepads = ebiten.AppendGamepadIDs(h.gamepads[:0])
	if len(h.gamepads) == 0 {
		return
	}
	id := h.gamepads[0]
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		f.Sticks = input.Sticks{
			LX: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			LY: -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
			RX: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			RY: -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
		}
		return
	}
	// Raw HID axes carry the controller's own dead band.
	f.Sticks = input.Sticks{
		LX: input.DeadZone(ebiten.GamepadAxisValue(id, 0)),
		LY: -input.DeadZone(ebiten.GamepadAxisValue(id, 1)),
		RX: input.DeadZone(ebiten.GamepadAxisValue(id, 2)),
		RY: -input.DeadZone(ebiten.GamepadAxisValue(id, 3)),
	}
}

type windowGame struct {
	h     *windowHAL
	fbImg *ebiten.Image
	step  func() error
}

func (g *windowGame) Update() error {
	g.h.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.h.mu.Lock()
	img, ok := g.h.present, g.h.presented
	g.h.mu.Unlock()
	if !ok {
		return
	}
	w, hh := img.Bounds().Dx(), img.Bounds().Dy()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != hh {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, hh)
	}
	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.width, g.h.height
}
