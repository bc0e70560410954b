package roomgl

// Room dimensions in meters, matching the walkable area of the demo.
const (
	roomHalfWidth = 10.0
	roomHeight    = 4.0
	roomHalfDepth = 20.0
	slabThickness = 0.1
)

// BuildRoomScene populates the flat-shaded room: floor, ceiling, four
// walls, a table slab and a few posts.
func BuildRoomScene() *Scene {
	s := NewScene()

	const (
		w = roomHalfWidth
		h = roomHeight
		d = roomHalfDepth
		t = slabThickness
	)

	floor := RGB(0x80, 0x70, 0x60)
	ceiling := RGB(0x90, 0x90, 0x98)
	wall := RGB(0xA8, 0xA0, 0x98)
	wood := RGB(0x70, 0x50, 0x30)
	post := RGB(0x50, 0x50, 0x58)

	// Floor and ceiling.
	s.AddBox(V3(0, -t/2, 0), V3(2*w, t, 2*d), floor)
	s.AddBox(V3(0, h+t/2, 0), V3(2*w, t, 2*d), ceiling)

	// Walls.
	s.AddBox(V3(0, h/2, -d-t/2), V3(2*w, h, t), wall)
	s.AddBox(V3(0, h/2, d+t/2), V3(2*w, h, t), wall)
	s.AddBox(V3(-w-t/2, h/2, 0), V3(t, h, 2*d), wall)
	s.AddBox(V3(w+t/2, h/2, 0), V3(t, h, 2*d), wall)

	// Table: slab plus four legs.
	s.AddBox(V3(0, 0.75, 2), V3(1.8, 0.1, 1.0), wood)
	for _, p := range [][2]float32{{-0.8, 1.6}, {0.8, 1.6}, {-0.8, 2.4}, {0.8, 2.4}} {
		s.AddBox(V3(p[0], 0.35, p[1]), V3(0.1, 0.7, 0.1), wood)
	}

	// Posts along the far wall.
	s.AddBox(V3(-4, h/2, 9), V3(0.3, h, 0.3), post)
	s.AddBox(V3(4, h/2, 9), V3(0.3, h, 0.3), post)

	return s
}
