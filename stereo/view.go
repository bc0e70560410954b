package stereo

import (
	"gonum.org/v1/gonum/spatial/r3"

	"roomtiny/pose"
	"roomtiny/roomgl"
)

// EyeView is one render pass: the eye tag and the orientation/position part
// of its view matrix. The per-eye horizontal offset and projection are
// applied by the render backend from EyeParams, not here.
type EyeView struct {
	Eye  roomgl.Eye
	View roomgl.Mat4
}

// BuildViews assembles the camera pose into the eye passes for the active
// stereo mode: a single center pass, or left then right in that fixed order
// (left always renders first).
func BuildViews(p pose.CameraPose, cfg *Config) []EyeView {
	eye := pose.EyeCenter(p)
	fwd := p.Forward()
	up := p.Up()
	view := roomgl.Mat4LookAt(v3(eye), v3(r3.Add(eye, fwd)), v3(up))

	switch cfg.Mode() {
	case ModeLeftRightMultipass:
		return []EyeView{
			{Eye: roomgl.EyeLeft, View: view},
			{Eye: roomgl.EyeRight, View: view},
		}
	default:
		return []EyeView{{Eye: roomgl.EyeCenter, View: view}}
	}
}

func v3(v r3.Vec) roomgl.Vec3 {
	return roomgl.V3(float32(v.X), float32(v.Y), float32(v.Z))
}
