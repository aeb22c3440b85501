package scene

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"spinmesh/pkg/render"
)

// Scene couples a mesh with the render configuration that animates it.
type Scene struct {
	Config render.Config
	Mesh   *Mesh

	// AutoSize is set when the file left the canvas size unspecified, so
	// the caller may size the canvas to the terminal instead of the
	// defaults in Config.
	AutoSize bool
}

// sceneFile is the on-disk TOML shape. Scalar fields are pointers so that
// unset values fall back to the render defaults while explicit zeros (a
// frozen axis, no pause) are preserved.
type sceneFile struct {
	Width     *int     `toml:"width"`
	Height    *int     `toml:"height"`
	ScaleX    *float64 `toml:"scale_x"`
	ScaleY    *float64 `toml:"scale_y"`
	Dist      *float64 `toml:"dist"`
	Char      *string  `toml:"char"`
	Pause     *float64 `toml:"pause"` // seconds
	RotSpeedX *float64 `toml:"rot_speed_x"`
	RotSpeedY *float64 `toml:"rot_speed_y"`
	RotSpeedZ *float64 `toml:"rot_speed_z"`
	Normalize bool     `toml:"normalize"`

	// Vertex tuples of length 3 or 6, edge index pairs. Same layout as the
	// authoring exporter's vertex and edge lists.
	Vertices [][]float64 `toml:"vertices"`
	Edges    [][]int     `toml:"edges"`
}

// Load reads a TOML scene file from disk.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML scene data into a validated scene.
func Parse(data []byte) (*Scene, error) {
	var f sceneFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	edges := make([]Edge, len(f.Edges))
	for i, e := range f.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("scene: edge %d has %d indices, want 2", i, len(e))
		}
		edges[i] = Edge{e[0], e[1]}
	}

	mesh, err := FromTuples(f.Vertices, edges)
	if err != nil {
		return nil, err
	}
	if f.Normalize {
		mesh.Normalize()
	}

	cfg := render.DefaultConfig()
	if f.Width != nil {
		cfg.Width = *f.Width
	}
	if f.Height != nil {
		cfg.Height = *f.Height
	}
	if f.ScaleX != nil {
		cfg.ScaleX = *f.ScaleX
	}
	if f.ScaleY != nil {
		cfg.ScaleY = *f.ScaleY
	}
	if f.Dist != nil {
		cfg.Dist = *f.Dist
	}
	if f.Char != nil {
		r, n := utf8.DecodeRuneInString(*f.Char)
		if n == 0 || len(*f.Char) != n {
			return nil, fmt.Errorf("scene: char must be a single character, got %q", *f.Char)
		}
		cfg.Char = r
	}
	if f.Pause != nil {
		cfg.Pause = time.Duration(*f.Pause * float64(time.Second))
	}
	if f.RotSpeedX != nil {
		cfg.SpeedX = *f.RotSpeedX
	}
	if f.RotSpeedY != nil {
		cfg.SpeedY = *f.RotSpeedY
	}
	if f.RotSpeedZ != nil {
		cfg.SpeedZ = *f.RotSpeedZ
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{
		Config:   cfg,
		Mesh:     mesh,
		AutoSize: f.Width == nil && f.Height == nil,
	}, nil
}
