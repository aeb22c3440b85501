// Package scene defines the immutable wireframe mesh consumed by the
// renderer and the loaders that build it from scene files or glTF models.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"spinmesh/pkg/math3d"
)

// Vertex is a mesh vertex: a position and, in colored meshes, an RGB color.
type Vertex struct {
	Position math3d.Vec3
	Color    color.RGBA
}

// Edge connects two vertices by index.
type Edge [2]int

// Mesh is wireframe geometry: an ordered vertex list, an ordered edge list,
// and a single mesh-wide color flag. Either every vertex carries a color or
// none does; the two shapes never mix. Once loaded the mesh never changes.
type Mesh struct {
	vertices []Vertex
	edges    []Edge
	colored  bool
}

// New validates the vertex and edge lists and builds a mesh. Duplicate
// edges are permitted; self-loops and out-of-range indices are not.
func New(vertices []Vertex, edges []Edge, colored bool) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, errors.New("scene: mesh has no vertices")
	}
	for i, e := range edges {
		if e[0] == e[1] {
			return nil, fmt.Errorf("scene: edge %d connects vertex %d to itself", i, e[0])
		}
		for _, idx := range e {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("scene: edge %d references vertex %d, mesh has %d vertices", i, idx, len(vertices))
			}
		}
	}
	return &Mesh{vertices: vertices, edges: edges, colored: colored}, nil
}

// FromTuples builds a mesh from flat vertex tuples, either (x, y, z) or
// (x, y, z, r, g, b) with color channels in [0, 255]. This is the shape the
// authoring exporter emits. All tuples must have the same length.
func FromTuples(tuples [][]float64, edges []Edge) (*Mesh, error) {
	if len(tuples) == 0 {
		return nil, errors.New("scene: mesh has no vertices")
	}
	colored := len(tuples[0]) == 6

	vertices := make([]Vertex, len(tuples))
	for i, tup := range tuples {
		if len(tup) != 3 && len(tup) != 6 {
			return nil, fmt.Errorf("scene: vertex %d has %d components, want 3 or 6", i, len(tup))
		}
		if (len(tup) == 6) != colored {
			return nil, fmt.Errorf("scene: vertex %d mixes colored and plain shapes", i)
		}
		vertices[i].Position = math3d.V3(tup[0], tup[1], tup[2])
		if colored {
			vertices[i].Color = clampRGB(tup[3], tup[4], tup[5])
		}
	}
	return New(vertices, edges, colored)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// Vertex returns the position and color of vertex i.
// Implements render.Mesh.
func (m *Mesh) Vertex(i int) (math3d.Vec3, color.RGBA) {
	v := m.vertices[i]
	return v.Position, v.Color
}

// Edge returns the two vertex indices of edge i.
// Implements render.Mesh.
func (m *Mesh) Edge(i int) (int, int) {
	return m.edges[i][0], m.edges[i][1]
}

// Colored reports whether every vertex carries a color.
func (m *Mesh) Colored() bool { return m.colored }

// Normalize translates the vertices so their center of mass sits at the
// origin and scales them so the farthest vertex lies at distance 1, the
// unit-ish range the projector expects. Meant to run once at load time;
// scene files exported pre-normalized can skip it.
func (m *Mesh) Normalize() {
	center := math3d.Zero3()
	for _, v := range m.vertices {
		center = center.Add(v.Position)
	}
	center = center.Scale(1 / float64(len(m.vertices)))

	maxDist := 0.0
	for _, v := range m.vertices {
		if d := v.Position.Distance(center); d > maxDist {
			maxDist = d
		}
	}
	scale := 1.0
	if maxDist > 0 {
		scale = 1 / maxDist
	}

	for i := range m.vertices {
		m.vertices[i].Position = m.vertices[i].Position.Sub(center).Scale(scale)
	}
}

func clampRGB(r, g, b float64) color.RGBA {
	return color.RGBA{clampChannel(r), clampChannel(g), clampChannel(b), 255}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
