package raycam

import "math"

// DepthBuffer stores one normalized depth value per pixel.
// Cleared cells hold +Inf, meaning "nothing known".
type DepthBuffer struct {
	width  int
	height int
	data   []float32
}

// NewDepthBuffer creates a depth buffer cleared to +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		width:  max(width, 0),
		height: max(height, 0),
	}
	d.data = make([]float32, d.width*d.height)
	d.Reset()
	return d
}

// Width returns the buffer width.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height.
func (d *DepthBuffer) Height() int { return d.height }

// Reset sets every cell to +Inf.
func (d *DepthBuffer) Reset() {
	inf := float32(math.Inf(1))
	for i := range d.data {
		d.data[i] = inf
	}
}

// At returns the depth at (x, y), or +Inf when out of bounds.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return float32(math.Inf(1))
	}
	return d.data[y*d.width+x]
}

// Set stores a depth value at (x, y).
func (d *DepthBuffer) Set(x, y int, v float32) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.data[y*d.width+x] = v
}

// SetRect stores v in every cell of the w×h block at (x, y).
func (d *DepthBuffer) SetRect(x, y, w, h int, v float32) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, d.width), min(y+h, d.height)
	for yy := y0; yy < y1; yy++ {
		row := d.data[yy*d.width : (yy+1)*d.width]
		for xx := x0; xx < x1; xx++ {
			row[xx] = v
		}
	}
}
