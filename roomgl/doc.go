// Package roomgl is a small software renderer for the room demo.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Near clip → Rasterization →
//	optional lens post-process → Present.
//
// The renderer draws flat-shaded triangles into an RGBA buffer, one pass
// per eye viewport, and hands the finished frame to a Presenter. Buffers
// are allocated once; the per-frame hot path does not allocate.
package roomgl
