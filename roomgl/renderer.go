package roomgl

import "image"

// Renderer rasterizes flat-shaded triangles into an RGBA image, restricted
// to one viewport per pass. Create it once and reuse it.
type Renderer struct {
	w, h  int
	depth []float32
}

// NewRenderer allocates a renderer and its depth buffer for a fixed frame size.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{w: w, h: h, depth: make([]float32, w*h)}
}

// ClearViewport fills the viewport with the clear color and resets its depth.
func (r *Renderer) ClearViewport(dst *image.RGBA, vp Viewport, c Color) {
	x0, y0, x1, y1 := clampViewport(vp, r.w, r.h)
	for y := y0; y < y1; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := x0; x < x1; x++ {
			i := x * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = 0xFF
			r.depth[y*r.w+x] = 1e9
		}
	}
}

// DrawScene renders every mesh of the scene into the viewport with the
// given projection and view matrices.
func (r *Renderer) DrawScene(dst *image.RGBA, vp Viewport, proj, view Mat4, s *Scene) {
	if s == nil {
		return
	}
	vpMat := Mat4Mul(proj, view)
	s.eachMesh(func(m *Mesh) {
		r.renderMesh(dst, vp, vpMat, m, s.Light)
	})
}

func (r *Renderer) renderMesh(dst *image.RGBA, vp Viewport, vpMat Mat4, m *Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		w0 := transformPoint(m.Transform, m.Vertices[i0])
		w1 := transformPoint(m.Transform, m.Vertices[i1])
		w2 := transformPoint(m.Transform, m.Vertices[i2])

		c := m.Color
		n := triangleNormal(w0, w1, w2)
		c = c.Scale(lightIntensity(light, n))

		p0 := Mat4MulV4(vpMat, Vec4{w0.X, w0.Y, w0.Z, 1})
		p1 := Mat4MulV4(vpMat, Vec4{w1.X, w1.Y, w1.Z, 1})
		p2 := Mat4MulV4(vpMat, Vec4{w2.X, w2.Y, w2.Z, 1})

		// Clip against the near plane; a crossing triangle yields up to
		// two triangles, fanned from the first vertex.
		var poly [4]Vec4
		nv := clipNear(p0, p1, p2, &poly)
		for k := 2; k < nv; k++ {
			r.fillClipTriangle(dst, vp, poly[0], poly[k-1], poly[k], c)
		}
	}
}

// clipNear clips the triangle against z+w > 0 (the GL near plane) and
// writes the resulting polygon into out, returning the vertex count.
func clipNear(a, b, c Vec4, out *[4]Vec4) int {
	in := [3]Vec4{a, b, c}
	n := 0
	for i := 0; i < 3; i++ {
		cur, next := in[i], in[(i+1)%3]
		dc, dn := cur.Z+cur.W, next.Z+next.W
		if dc > 0 {
			out[n] = cur
			n++
		}
		if (dc > 0) != (dn > 0) {
			t := dc / (dc - dn)
			out[n] = Vec4{
				X: cur.X + (next.X-cur.X)*t,
				Y: cur.Y + (next.Y-cur.Y)*t,
				Z: cur.Z + (next.Z-cur.Z)*t,
				W: cur.W + (next.W-cur.W)*t,
			}
			n++
		}
		if n == 4 {
			break
		}
	}
	return n
}

func (r *Renderer) fillClipTriangle(dst *image.RGBA, vp Viewport, p0, p1, p2 Vec4, c Color) {
	x0, y0, z0, ok0 := r.toScreen(p0, vp)
	x1, y1, z1, ok1 := r.toScreen(p1, vp)
	x2, y2, z2, ok2 := r.toScreen(p2, vp)
	if !ok0 || !ok1 || !ok2 {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Fill both windings; the room is viewed from inside its walls.
	if area < 0 {
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	cx0, cy0, cx1, cy1 := clampViewport(vp, r.w, r.h)
	if minX < cx0 {
		minX = cx0
	}
	if minY < cy0 {
		minY = cy0
	}
	if maxX >= cx1 {
		maxX = cx1 - 1
	}
	if maxY >= cy1 {
		maxY = cy1 - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := minX; x <= maxX; x++ {
			e0 := edgeFn(x1, y1, x2, y2, x, y)
			e1 := edgeFn(x2, y2, x0, y0, x, y)
			e2 := edgeFn(x0, y0, x1, y1, x, y)
			if (e0 | e1 | e2) < 0 {
				continue
			}
			a0 := float32(e0) * invArea
			a1 := float32(e1) * invArea
			a2 := float32(e2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(x, y, z) {
				continue
			}
			i := x * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = 0xFF
		}
	}
}

func (r *Renderer) toScreen(p Vec4, vp Viewport) (x, y int, z float32, ok bool) {
	if p.W <= 0 {
		return 0, 0, 0, false
	}
	invW := 1 / p.W
	nx := p.X * invW
	ny := p.Y * invW
	nz := p.Z * invW
	sx := float32(vp.X) + (nx*0.5+0.5)*float32(vp.W-1)
	sy := float32(vp.Y) + (1-(ny*0.5+0.5))*float32(vp.H-1)
	return int(sx + 0.5), int(sy + 0.5), nz, true
}

func (r *Renderer) depthTest(x, y int, z float32) bool {
	idx := y*r.w + x
	if idx < 0 || idx >= len(r.depth) {
		return false
	}
	// NDC z in [-1,1] mapped to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depth[idx] {
		return false
	}
	r.depth[idx] = d
	return true
}

func transformPoint(m Mat4, v Vec3) Vec3 {
	p := Mat4MulV4(m, Vec4{v.X, v.Y, v.Z, 1})
	return Vec3{p.X, p.Y, p.Z}
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) float32 {
	amb := Clamp01(l.Ambient)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		// Two-sided shading to match the two-sided fill.
		d = -d
	}
	return Clamp01(amb + d*Clamp01(l.DirAmount))
}

func clampViewport(vp Viewport, w, h int) (x0, y0, x1, y1 int) {
	x0, y0 = vp.X, vp.Y
	x1, y1 = vp.X+vp.W, vp.Y+vp.H
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	return x0, y0, x1, y1
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
