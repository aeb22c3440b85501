package scene

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"

	"spinmesh/pkg/math3d"
)

// LoadGLB loads wireframe geometry from a glTF/GLB model: vertex positions
// from the POSITION accessor, per-vertex colors from COLOR_0, and edges
// from the triangle and line primitives (triangle edges deduplicated). The
// result is normalized to the unit range the projector expects.
//
// Color mode is all-or-nothing: if any primitive lacks COLOR_0 the mesh is
// loaded without colors and a warning is logged.
func LoadGLB(path string, logger *log.Logger) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return fromDocument(doc, logger)
}

// fromDocument extracts wireframe geometry from a parsed glTF document.
func fromDocument(doc *gltf.Document, logger *log.Logger) (*Mesh, error) {
	if logger == nil {
		logger = log.Default()
	}

	var (
		vertices []Vertex
		edges    []Edge
		seen     = make(map[Edge]struct{})
		plain    int // vertices without color data
		colored  int
	)

	addEdge := func(i, j int) {
		if i == j {
			return // degenerate triangle edge
		}
		if j < i {
			i, j = j, i
		}
		e := Edge{i, j}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			var colors []color.RGBA
			if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
				colors, err = readColors(doc, colIdx)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read colors: %w", m.Name, err)
				}
			}

			base := len(vertices)
			for i, pos := range positions {
				v := Vertex{Position: pos}
				if i < len(colors) {
					v.Color = colors[i]
					colored++
				} else {
					plain++
				}
				vertices = append(vertices, v)
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
			} else {
				// No indices, vertices are used sequentially.
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			switch {
			case prim.Mode == gltf.PrimitiveLines:
				for i := 0; i+1 < len(indices); i += 2 {
					addEdge(base+indices[i], base+indices[i+1])
				}
			case prim.Mode == gltf.PrimitiveLineStrip:
				for i := 0; i+1 < len(indices); i++ {
					addEdge(base+indices[i], base+indices[i+1])
				}
			case prim.Mode == gltf.PrimitiveLineLoop:
				for i := 0; i+1 < len(indices); i++ {
					addEdge(base+indices[i], base+indices[i+1])
				}
				if len(indices) > 2 {
					addEdge(base+indices[len(indices)-1], base+indices[0])
				}
			case prim.Mode == gltf.PrimitiveTriangles || prim.Mode == 0:
				for i := 0; i+2 < len(indices); i += 3 {
					a, b, c := base+indices[i], base+indices[i+1], base+indices[i+2]
					addEdge(a, b)
					addEdge(b, c)
					addEdge(c, a)
				}
			default:
				// Points and triangle strips/fans carry no wireframe we
				// reconstruct.
				continue
			}
		}
	}

	useColors := colored > 0 && plain == 0
	if colored > 0 && plain > 0 {
		logger.Warn("per-vertex colors incomplete, rendering without color",
			"colored", colored, "plain", plain)
	}

	mesh, err := New(vertices, edges, useColors)
	if err != nil {
		return nil, err
	}
	mesh.Normalize()
	return mesh, nil
}

// accessorBytes returns the accessor's raw little-endian buffer data and
// element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	start := view.ByteOffset + accessor.ByteOffset
	return buffer.Data[start:], stride, nil
}

// readPositions reads a float VEC3 accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("POSITION must be a float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return out, nil
}

// readColors reads a COLOR_0 accessor: VEC3 or VEC4 (alpha dropped), float
// or normalized ubyte/ushort components.
func readColors(doc *gltf.Document, accessorIdx int) ([]color.RGBA, error) {
	accessor := doc.Accessors[accessorIdx]

	var comps int
	switch accessor.Type {
	case gltf.AccessorVec3:
		comps = 3
	case gltf.AccessorVec4:
		comps = 4
	default:
		return nil, fmt.Errorf("COLOR_0 must be VEC3 or VEC4, got %v", accessor.Type)
	}

	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentFloat:
		compSize = 4
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUbyte:
		compSize = 1
	default:
		return nil, fmt.Errorf("unsupported COLOR_0 component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, comps*compSize)
	if err != nil {
		return nil, err
	}

	out := make([]color.RGBA, accessor.Count)
	for i := range out {
		off := i * stride
		var ch [3]uint8
		for j := range 3 {
			switch accessor.ComponentType {
			case gltf.ComponentFloat:
				ch[j] = clampChannel(float64(readFloat32(data[off+j*4:])) * 255)
			case gltf.ComponentUshort:
				ch[j] = uint8(binary.LittleEndian.Uint16(data[off+j*2:]) >> 8)
			case gltf.ComponentUbyte:
				ch[j] = data[off+j]
			}
		}
		out[i] = color.RGBA{ch[0], ch[1], ch[2], 255}
	}
	return out, nil
}

// readIndices reads a scalar index accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("indices must be SCALAR, got %v", accessor.Type)
	}

	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		compSize = 1
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUint:
		compSize = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, compSize)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		off := i * stride
		switch compSize {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
