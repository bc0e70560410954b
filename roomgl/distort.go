package roomgl

import "image"

// warpEye applies the radial lens warp for one eye viewport, reading the
// undistorted render from src and writing the warped result into dst. For
// every output pixel the corresponding source sample is found by pushing
// its lens-centered coordinate outward along the distortion polynomial;
// samples that land outside the viewport come out black.
func warpEye(dst, src *image.RGBA, vp Viewport, d *Distortion, chromAb bool) {
	if d == nil || vp.W <= 0 || vp.H <= 0 {
		return
	}

	aspect := float32(vp.W) / float32(vp.H)
	invScale := 1 / d.Scale
	if d.Scale == 0 {
		invScale = 1
	}

	for y := vp.Y; y < vp.Y+vp.H; y++ {
		for x := vp.X; x < vp.X+vp.W; x++ {
			// Lens-centered NDC, aspect-corrected vertically.
			nx := (2*float32(x-vp.X)/float32(vp.W) - 1) - d.XCenterOffset
			ny := (2*float32(y-vp.Y)/float32(vp.H) - 1) / aspect

			rsq := nx*nx + ny*ny
			warp := (d.K[0] + rsq*(d.K[1]+rsq*(d.K[2]+rsq*d.K[3]))) * invScale

			if chromAb {
				red := warp * (d.ChromAb[0] + rsq*d.ChromAb[1])
				blue := warp * (d.ChromAb[2] + rsq*d.ChromAb[3])
				rr, _, _, _ := sampleEye(src, vp, d, nx*red, ny*red, aspect)
				_, gg, _, okG := sampleEye(src, vp, d, nx*warp, ny*warp, aspect)
				_, _, bb, _ := sampleEye(src, vp, d, nx*blue, ny*blue, aspect)
				writePixel(dst, x, y, rr, gg, bb, okG)
				continue
			}

			rr, gg, bb, ok := sampleEye(src, vp, d, nx*warp, ny*warp, aspect)
			writePixel(dst, x, y, rr, gg, bb, ok)
		}
	}
}

func sampleEye(src *image.RGBA, vp Viewport, d *Distortion, nx, ny, aspect float32) (r, g, b uint8, ok bool) {
	sx := nx + d.XCenterOffset
	sy := ny * aspect
	px := int((sx + 1) / 2 * float32(vp.W))
	py := int((sy + 1) / 2 * float32(vp.H))
	if px < 0 || py < 0 || px >= vp.W || py >= vp.H {
		return 0, 0, 0, false
	}
	i := (vp.Y+py)*src.Stride + (vp.X+px)*4
	return src.Pix[i], src.Pix[i+1], src.Pix[i+2], true
}

func writePixel(dst *image.RGBA, x, y int, r, g, b uint8, ok bool) {
	i := y*dst.Stride + x*4
	if !ok {
		r, g, b = 0, 0, 0
	}
	dst.Pix[i+0] = r
	dst.Pix[i+1] = g
	dst.Pix[i+2] = b
	dst.Pix[i+3] = 0xFF
}
