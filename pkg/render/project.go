package render

import (
	"spinmesh/pkg/math3d"
)

// Projector maps rotated 3D points to integer screen coordinates using a
// simple pinhole-style depth divisor.
type Projector struct {
	cx, cy int // canvas center
	scaleX float64
	scaleY float64
	dist   float64
}

// NewProjector builds a projector for the given configuration. The canvas
// center uses integer division, so odd dimensions bias half a cell left/up.
func NewProjector(cfg Config) Projector {
	return Projector{
		cx:     cfg.Width / 2,
		cy:     cfg.Height / 2,
		scaleX: cfg.ScaleX,
		scaleY: cfg.ScaleY,
		dist:   cfg.Dist,
	}
}

// Project converts a rotated point to a screen coordinate. Y is inverted
// because screen rows grow downward. Coordinates truncate toward zero, not
// round. The +2 shifts typical post-rotation depths into positive range;
// the denominator is not guarded, so depths near -(dist+2) produce extreme
// coordinates that fall off the canvas and get discarded by the compositor.
func (p Projector) Project(v math3d.Vec3) Point {
	factor := p.dist / (p.dist + v.Z + 2)
	return Point{
		X: int(float64(p.cx) + factor*v.X*p.scaleX),
		Y: int(float64(p.cy) - factor*v.Y*p.scaleY),
	}
}
