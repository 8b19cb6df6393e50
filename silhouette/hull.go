// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package silhouette

import (
	"slices"

	"github.com/gogpu/raycam"
)

// ConvexHull returns the convex hull of pts using Andrew's monotone chain.
//
// The hull starts at the point with the smallest X (then Y) and winds
// counter-clockwise in a Y-up frame, which is clockwise on screen.
// Duplicate and collinear points are dropped. Inputs with fewer than three
// distinct points are returned sorted and deduplicated.
func ConvexHull(pts []raycam.Point) []raycam.Point {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, func(a, b raycam.Point) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	sorted = slices.Compact(sorted)
	if len(sorted) < 3 {
		return sorted
	}

	hull := make([]raycam.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		hull = pushTurn(hull, p, 0)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		hull = pushTurn(hull, sorted[i], lower)
	}
	return hull[:len(hull)-1]
}

// pushTurn pops points that would make a non-left turn and appends p.
// Points below floor belong to the finished lower chain.
func pushTurn(hull []raycam.Point, p raycam.Point, floor int) []raycam.Point {
	if floor < 2 {
		floor = 2
	}
	for len(hull) >= floor {
		a, b := hull[len(hull)-2], hull[len(hull)-1]
		if b.Sub(a).Cross(p.Sub(a)) > 0 {
			break
		}
		hull = hull[:len(hull)-1]
	}
	return append(hull, p)
}

// Degenerate reports whether pts span no area: fewer than three points, or
// every point shares the same X or the same Y.
func Degenerate(pts []raycam.Point) bool {
	if len(pts) < 3 {
		return true
	}
	sameX, sameY := true, true
	for _, p := range pts[1:] {
		sameX = sameX && p.X == pts[0].X
		sameY = sameY && p.Y == pts[0].Y
	}
	return sameX || sameY
}
