package roomgl

// Light is a minimal ambient + directional light setup.
type Light struct {
	Ambient   float32 // 0..1
	Dir       Vec3    // direction towards the scene
	DirAmount float32 // 0..1
}

// Mesh is a flat-shaded triangle mesh with an object transform.
type Mesh struct {
	Vertices  []Vec3
	Indices   []uint16 // triangle list
	Transform Mat4
	Color     Color
}

// Scene is a collection of meshes under one light.
type Scene struct {
	Light  Light
	meshes []Mesh
}

// NewScene returns an empty scene with default lighting.
func NewScene() *Scene {
	return &Scene{
		Light: Light{
			Ambient:   0.4,
			Dir:       Normalize(V3(-0.4, -1, -0.3)),
			DirAmount: 0.6,
		},
	}
}

// AddMesh adds a mesh to the scene and returns its index.
func (s *Scene) AddMesh(m Mesh) int {
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}
	if m.Color == (Color{}) {
		m.Color = RGB(0xCC, 0xCC, 0xCC)
	}
	s.meshes = append(s.meshes, m)
	return len(s.meshes) - 1
}

// AddBox adds an axis-aligned box centered at c with full extents sz.
func (s *Scene) AddBox(c, sz Vec3, col Color) int {
	hx, hy, hz := sz.X/2, sz.Y/2, sz.Z/2
	v := []Vec3{
		{c.X - hx, c.Y - hy, c.Z - hz},
		{c.X + hx, c.Y - hy, c.Z - hz},
		{c.X + hx, c.Y + hy, c.Z - hz},
		{c.X - hx, c.Y + hy, c.Z - hz},
		{c.X - hx, c.Y - hy, c.Z + hz},
		{c.X + hx, c.Y - hy, c.Z + hz},
		{c.X + hx, c.Y + hy, c.Z + hz},
		{c.X - hx, c.Y + hy, c.Z + hz},
	}
	idx := []uint16{
		0, 1, 2, 0, 2, 3, // back
		5, 4, 7, 5, 7, 6, // front
		4, 0, 3, 4, 3, 7, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}
	return s.AddMesh(Mesh{Vertices: v, Indices: idx, Color: col})
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		fn(&s.meshes[i])
	}
}

// MeshCount returns the number of meshes in the scene.
func (s *Scene) MeshCount() int { return len(s.meshes) }
