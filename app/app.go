// Package app is the frame driver: it owns the camera pose, consumes one
// input frame per tick, advances the pose from the tracker and the manual
// controls, and runs the per-eye render passes.
package app

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"roomtiny/hal"
	"roomtiny/input"
	"roomtiny/internal/log"
	"roomtiny/motion"
	"roomtiny/pose"
	"roomtiny/roomgl"
	"roomtiny/stereo"
	"roomtiny/telemetry"
	"roomtiny/tracker"
)

// RenderBackend is the render contract the frame driver drives. Per frame:
// for each eye BeginFrame, ApplyEyeParams, Clear, DrawScene, EndFrame; then
// Present and ForceGPUFlush once.
type RenderBackend interface {
	BeginFrame(pp roomgl.PostProcess)
	ApplyEyeParams(ep roomgl.EyeParams)
	Clear()
	DrawScene(view roomgl.Mat4)
	EndFrame()
	Present() error
	ForceGPUFlush()
}

// Config wires the frame driver's collaborators. Source and Telemetry may
// be nil; Stereo and Backend are required.
type Config struct {
	Source    tracker.Source
	Stereo    *stereo.Config
	Backend   RenderBackend
	Telemetry *telemetry.Server
}

// App is the per-frame state machine.
type App struct {
	h   hal.HAL
	cfg Config

	pose   pose.CameraPose
	yawInt *pose.YawIntegrator
	in     input.State
	motion *motion.Controller

	post roomgl.PostProcess

	last    time.Duration
	started bool
	frame   uint64

	trackerSilent bool
}

// New builds the frame driver and returns its per-tick step, in the shape
// the platform runners expect.
func New(h hal.HAL, cfg Config) func() error {
	a := &App{
		h:      h,
		cfg:    cfg,
		pose:   pose.NewCameraPose(),
		yawInt: pose.NewYawIntegrator(pose.YawInitial),
		motion: motion.NewController(),
		post:   roomgl.PostProcessDistortion,
	}
	return a.step
}

func (a *App) step() error {
	now := a.h.Now()
	if !a.started {
		a.last = now
		a.started = true
		return nil
	}
	dt := (now - a.last).Seconds()
	a.last = now
	if dt <= 0 {
		return nil
	}

	f := a.h.PollInput()
	for _, ev := range f.Keys {
		if err := a.handleKey(ev); err != nil {
			return err
		}
		a.in.ApplyKey(ev)
	}
	a.in.ApplySticks(f.Sticks)
	a.applyMouse(f.Mouse)

	a.advancePose(dt)

	if err := a.render(); err != nil {
		return err
	}

	a.frame++
	a.publish()
	return nil
}

// handleKey dispatches the hotkey surface. Movement and modifier keys pass
// through to the input state afterwards.
func (a *App) handleKey(ev input.KeyEvent) error {
	switch ev.Key {
	case input.KeyEscape:
		if !ev.Down {
			return hal.ErrQuit
		}
	case input.KeyQ:
		if ev.Down && a.in.ControlDown {
			return hal.ErrQuit
		}
	case input.KeyR:
		if ev.Down && a.cfg.Source != nil {
			a.cfg.Source.Tare()
			log.Info("tracker re-tared")
		}
	case input.KeyP:
		if ev.Down {
			a.togglePostProcess()
		}
	case input.KeyF1:
		if ev.Down {
			a.cfg.Stereo.SetMode(stereo.ModeNone)
			a.post = roomgl.PostProcessNone
		}
	case input.KeyF2:
		if ev.Down {
			a.cfg.Stereo.SetMode(stereo.ModeLeftRightMultipass)
			a.post = roomgl.PostProcessNone
		}
	case input.KeyF3:
		if ev.Down {
			a.cfg.Stereo.SetMode(stereo.ModeLeftRightMultipass)
			a.post = roomgl.PostProcessDistortion
		}
	case input.KeyInsert, input.KeyEqual:
		if ev.Down {
			a.adjustIPD(stereo.IPDStep)
		}
	case input.KeyDelete, input.KeyMinus:
		if ev.Down {
			a.adjustIPD(-stereo.IPDStep)
		}
	}
	return nil
}

func (a *App) togglePostProcess() {
	if a.post == roomgl.PostProcessDistortion {
		a.post = roomgl.PostProcessDistortionChromAb
	} else {
		a.post = roomgl.PostProcessDistortion
	}
}

func (a *App) adjustIPD(step float64) {
	if a.in.ShiftDown {
		step *= 5
	}
	a.cfg.Stereo.SetIPD(a.cfg.Stereo.IPD() + step)
	log.Debug("ipd adjusted", "ipd", a.cfg.Stereo.IPD())
}

// applyMouse feeds mouse look. Yaw always comes from the mouse; pitch only
// when no tracker owns it.
func (a *App) applyMouse(m input.MouseDelta) {
	if m.DX != 0 {
		a.yawInt.AddManual(-pose.Sensitivity * float64(m.DX) / 360)
	}
	if a.cfg.Source == nil && m.DY != 0 {
		a.pose.Pitch = pose.ClampPitch(a.pose.Pitch - pose.Sensitivity*float64(m.DY)/360)
	}
}

// advancePose folds the tracker sample, the manual rotation input and the
// movement input into the camera pose for this frame.
func (a *App) advancePose(dt float64) {
	if a.cfg.Source != nil {
		if s, err := a.cfg.Source.Sample(); err == nil {
			yaw, pitch, roll := pose.Decompose(s.Orientation)
			a.pose.Pitch = pitch
			a.pose.Roll = roll
			a.yawInt.ObserveTracked(yaw)
			a.trackerSilent = false
		} else if !a.trackerSilent {
			// Keep the previous pose for the frame; log the first miss
			// of a silent stretch only.
			log.Debug("tracker sample missed", "err", err)
			a.trackerSilent = true
		}
	}

	// Gamepad yaw applies regardless of tracker; gamepad pitch only when
	// the tracker does not own pitch. Both shaped rates are subtracted, so
	// pushing the stick up (negative shaped Y) pitches the view up.
	a.yawInt.AddManual(-a.in.GamepadRotate.X * dt)
	if a.cfg.Source == nil {
		a.pose.Pitch = pose.ClampPitch(a.pose.Pitch - a.in.GamepadRotate.Y*dt)
		a.pose.Roll = 0
	}

	a.pose.Yaw = a.yawInt.Yaw()
	a.pose.Position = r3.Add(a.pose.Position, a.motion.Integrate(&a.in, a.pose.Yaw, dt))
}

func (a *App) render() error {
	b := a.cfg.Backend
	for _, v := range stereo.BuildViews(a.pose, a.cfg.Stereo) {
		b.BeginFrame(a.post)
		b.ApplyEyeParams(a.cfg.Stereo.EyeParams(v.Eye))
		b.Clear()
		b.DrawScene(v.View)
		b.EndFrame()
	}
	if err := b.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	b.ForceGPUFlush()
	return nil
}

func (a *App) publish() {
	if a.cfg.Telemetry == nil {
		return
	}
	kind := tracker.SourceNone
	if a.cfg.Source != nil {
		kind = a.cfg.Source.Kind()
	}
	mode := "mono"
	if a.cfg.Stereo.Mode() == stereo.ModeLeftRightMultipass {
		mode = "left-right"
	}
	a.cfg.Telemetry.Publish(telemetry.PoseSnapshot{
		Frame:    a.frame,
		Position: [3]float64{a.pose.Position.X, a.pose.Position.Y, a.pose.Position.Z},
		Yaw:      a.pose.Yaw,
		Pitch:    a.pose.Pitch,
		Roll:     a.pose.Roll,
		IPD:      a.cfg.Stereo.IPD(),
		Stereo:   mode,
		Tracker:  kind.String(),
	})
}
