// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package silhouette

import (
	"math"
	"slices"

	"github.com/gogpu/raycam"
)

// Epsilon is the smallest vertical extent an edge may have.
const Epsilon = 1e-6

// Edge is a non-horizontal polygon side prepared for scanline conversion.
type Edge struct {
	// YMin is the top of the edge.
	YMin float32
	// YMax is the bottom of the edge.
	YMax float32
	// XAtYMin is the X coordinate at YMin.
	XAtYMin float32
	// DXDY is the inverse slope.
	DXDY float32
}

// NewEdge creates an edge between two points. It returns false for
// horizontal edges, which never cross a scanline.
func NewEdge(a, b raycam.Point) (Edge, bool) {
	if a.Y > b.Y {
		a, b = b, a
	}
	dy := b.Y - a.Y
	if dy < Epsilon {
		return Edge{}, false
	}
	return Edge{
		YMin:    a.Y,
		YMax:    b.Y,
		XAtYMin: a.X,
		DXDY:    (b.X - a.X) / dy,
	}, true
}

// XAtY returns the X coordinate where the edge crosses y.
func (e Edge) XAtY(y float32) float32 {
	return e.XAtYMin + (y-e.YMin)*e.DXDY
}

// IsActiveAt reports whether the edge crosses scanline y, YMin ≤ y < YMax.
func (e Edge) IsActiveAt(y float32) bool {
	return y >= e.YMin && y < e.YMax
}

// EdgeList holds the edges of one closed polygon. It is reused across
// polygons to avoid allocation.
type EdgeList struct {
	edges []Edge
	xs    []float32
}

// NewEdgeList creates an empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{edges: make([]Edge, 0, 32)}
}

// Reset clears the list.
func (el *EdgeList) Reset() {
	el.edges = el.edges[:0]
}

// AddPolygon adds the sides of the closed polygon pts.
func (el *EdgeList) AddPolygon(pts []raycam.Point) {
	for i := range pts {
		if e, ok := NewEdge(pts[i], pts[(i+1)%len(pts)]); ok {
			el.edges = append(el.edges, e)
		}
	}
	slices.SortFunc(el.edges, func(a, b Edge) int {
		switch {
		case a.YMin < b.YMin:
			return -1
		case a.YMin > b.YMin:
			return 1
		}
		return 0
	})
}

// Len returns the number of edges.
func (el *EdgeList) Len() int {
	return len(el.edges)
}

// Bounds returns the vertical extent of all edges.
func (el *EdgeList) Bounds() (minY, maxY float32) {
	if len(el.edges) == 0 {
		return 0, 0
	}
	minY, maxY = float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, e := range el.edges {
		minY = min(minY, e.YMin)
		maxY = max(maxY, e.YMax)
	}
	return minY, maxY
}

// Crossings returns the sorted X coordinates where active edges cross y.
// The returned slice is reused by the next call.
func (el *EdgeList) Crossings(y float32) []float32 {
	el.xs = el.xs[:0]
	for _, e := range el.edges {
		if e.YMin > y {
			break
		}
		if e.IsActiveAt(y) {
			el.xs = append(el.xs, e.XAtY(y))
		}
	}
	slices.Sort(el.xs)
	return el.xs
}
