// Package render draws tours for human inspection; it is an observer of the engine and never drives it
package render

import (
	"github.com/lixenwraith/genopt/genetic/tsp"
)

// Bounds is the axis-aligned bounding box of a problem instance
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf returns the bounding box of points; degenerate axes are widened to unit size
func BoundsOf(points []tsp.Point) Bounds {
	if len(points) == 0 {
		return Bounds{MaxX: 1, MaxY: 1}
	}

	b := Bounds{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}

	if b.MaxX == b.MinX {
		b.MaxX = b.MinX + 1
	}
	if b.MaxY == b.MinY {
		b.MaxY = b.MinY + 1
	}
	return b
}

// Project maps p into a w x h cell grid, y growing downward like a canvas
func (b Bounds) Project(p tsp.Point, w, h int) (int, int) {
	x := int((p.X - b.MinX) / (b.MaxX - b.MinX) * float64(w-1))
	y := int((p.Y - b.MinY) / (b.MaxY - b.MinY) * float64(h-1))
	return x, y
}

// line visits every cell of a Bresenham segment from (x0, y0) to (x1, y1), endpoints included
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
