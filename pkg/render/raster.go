package render

// Point is an integer screen coordinate.
type Point struct {
	X, Y int
}

// ColoredPoint is a screen coordinate tagged with an interpolated color.
type ColoredPoint struct {
	Point
	Color Color
}

// Line returns every integer point on the segment from a to b, endpoints
// inclusive, using Bresenham's incremental algorithm in its octant-general
// form. The result has at most max(dx, dy)+1 points and is deterministic
// for a given endpoint pair.
func Line(a, b Point) []Point {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy

	points := make([]Point, 0, max(dx, dy)+1)
	x, y := a.X, a.Y
	for {
		points = append(points, Point{x, y})
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return points
}

// LineColored walks the same points as Line and tags each with a color
// linearly interpolated between ca and cb. The k-th point gets fraction
// k/steps of the way from ca to cb, steps = max(dx, dy, 1), each channel
// truncated to an integer. The first point is exactly ca and the last
// exactly cb.
func LineColored(a, b Point, ca, cb Color) []ColoredPoint {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	steps := max(dx, dy, 1) // avoid division by zero for coincident endpoints

	points := make([]ColoredPoint, 0, max(dx, dy)+1)
	x, y := a.X, a.Y
	for k := 0; ; k++ {
		fraction := float64(k) / float64(steps)
		points = append(points, ColoredPoint{
			Point: Point{x, y},
			Color: lerpColor(ca, cb, fraction),
		})
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return points
}

// lerpColor interpolates each channel independently, truncating like the
// projector does.
func lerpColor(a, b Color, fraction float64) Color {
	return RGB(
		lerpChannel(a.R, b.R, fraction),
		lerpChannel(a.G, b.G, fraction),
		lerpChannel(a.B, b.B, fraction),
	)
}

func lerpChannel(a, b uint8, fraction float64) uint8 {
	return uint8(int(float64(a) + fraction*(float64(b)-float64(a))))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
