package roomgl

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// Scale multiplies the RGB channels by a [0,1] intensity.
func (c Color) Scale(f float32) Color {
	f = Clamp01(f)
	return Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
