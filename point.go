package raycam

import "math"

// Point is a screen-space position in output pixels, origin top-left.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the z component of the 3-D cross product of p and q.
// Positive values mean q is counter-clockwise from p in a Y-up frame.
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	d := p.Sub(q)
	return float32(math.Hypot(float64(d.X), float64(d.Y)))
}

// Less orders points by X, then Y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}
