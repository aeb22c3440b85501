package render

import (
	"spinmesh/pkg/math3d"
)

// Mesh is the geometry consumed by the renderer. scene.Mesh implements it.
type Mesh interface {
	VertexCount() int
	EdgeCount() int
	// Vertex returns the position and color of vertex i. The color is only
	// meaningful when Colored reports true.
	Vertex(i int) (math3d.Vec3, Color)
	// Edge returns the two vertex indices of edge i.
	Edge(i int) (int, int)
	// Colored reports whether every vertex carries a color. It is a single
	// mesh-wide flag; partial color data is not a supported state.
	Colored() bool
}

// Frame is the transient per-frame point set: a sparse map from in-bounds
// screen coordinates to their resolved color. It is rebuilt from scratch
// every frame and discarded after presentation.
type Frame struct {
	width, height int
	colored       bool
	points        map[Point]Color
}

// NewFrame creates an empty frame for the configured canvas.
func NewFrame(cfg Config, colored bool) *Frame {
	return &Frame{
		width:   cfg.Width,
		height:  cfg.Height,
		colored: colored,
		points:  make(map[Point]Color),
	}
}

// Set records p with color c. Out-of-bounds points are silently discarded.
// A later write to the same coordinate overwrites the earlier one.
func (f *Frame) Set(p Point, c Color) {
	if p.X < 0 || p.X >= f.width || p.Y < 0 || p.Y >= f.height {
		return
	}
	f.points[p] = c
}

// At returns the color at (x, y) and whether the cell is covered.
func (f *Frame) At(x, y int) (Color, bool) {
	c, ok := f.points[Point{x, y}]
	return c, ok
}

// Len returns the number of covered cells.
func (f *Frame) Len() int {
	return len(f.points)
}

// Colored reports whether covered cells carry meaningful colors.
func (f *Frame) Colored() bool {
	return f.colored
}

// DrawEdges rasterizes every mesh edge between its projected endpoints into
// the frame, in edge-list order. Overlapping edges resolve last write wins,
// so iteration order is part of the contract.
func (f *Frame) DrawEdges(m Mesh, projected []Point) {
	for e := 0; e < m.EdgeCount(); e++ {
		i, j := m.Edge(e)
		if f.colored {
			_, ci := m.Vertex(i)
			_, cj := m.Vertex(j)
			for _, cp := range LineColored(projected[i], projected[j], ci, cj) {
				f.Set(cp.Point, cp.Color)
			}
		} else {
			for _, p := range Line(projected[i], projected[j]) {
				f.Set(p, Color{})
			}
		}
	}
}
