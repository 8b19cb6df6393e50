// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package silhouette

import (
	"math"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/cache"
	"github.com/gogpu/raycam/scene"
)

// Default silhouette colors.
var (
	DefaultHumanColor     = raycam.Hex("#e0ac69")
	DefaultScientistColor = raycam.Hex("#f2f2f2")
	DefaultTreeBase       = raycam.Hex("#2e6b2e")
)

// DefaultJitterScale maps squared distance to the tree shade index.
const DefaultJitterScale = 0.25

// DepthBias lets an entity paint over background up to half a unit nearer
// than itself.
const DepthBias = 0.5

// jitterLevels is the number of distinct tree shades.
const jitterLevels = 10

type shadeKey struct {
	base raycam.RGBA
	j    int
}

// Filler paints entity silhouettes into a color buffer, depth-tested
// against the rasterized background.
//
// A Filler owns its shade table and edge scratch space and is not safe for
// concurrent use.
type Filler struct {
	// FarPlane converts normalized background depth to world units.
	FarPlane       float32
	HumanColor     raycam.RGBA
	ScientistColor raycam.RGBA
	TreeBase       raycam.RGBA
	JitterScale    float32

	shades *cache.Cache[shadeKey, raycam.RGBA]
	edges  *EdgeList
}

// NewFiller creates a filler with the default colors.
func NewFiller(farPlane float32) *Filler {
	return &Filler{
		FarPlane:       farPlane,
		HumanColor:     DefaultHumanColor,
		ScientistColor: DefaultScientistColor,
		TreeBase:       DefaultTreeBase,
		JitterScale:    DefaultJitterScale,
		shades:         cache.New[shadeKey, raycam.RGBA](64),
		edges:          NewEdgeList(),
	}
}

// IsScientistName reports whether a player name marks a non-player
// character: non-empty and made only of ASCII digits.
//
// This is a naming-convention heuristic, not an authoritative
// classification; a human who picks a numeric name is misclassified.
func IsScientistName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// Color returns the fill color for a projected entity. Tree shades depend
// only on distance, so identical positions always get the same shade.
func (f *Filler) Color(p scene.Projected) raycam.RGBA {
	if p.Entity.Type == raycam.EntityPlayer {
		if IsScientistName(p.Entity.Name) {
			return f.ScientistColor
		}
		return f.HumanColor
	}
	j := int(math.Floor(float64(p.DistanceSquared*f.JitterScale))) % jitterLevels
	if j < 0 {
		j += jitterLevels
	}
	key := shadeKey{base: f.TreeBase, j: j}
	return f.shades.GetOrCreate(key, func() raycam.RGBA {
		return key.base.Add8(2*j, 3*j, j)
	})
}

// Fill paints the convex hull of p's silhouette. A pixel is written only
// where the background is farther than the entity, within DepthBias. Fill
// reports false when the hull has no area and nothing was attempted.
func (f *Filler) Fill(pm *raycam.Pixmap, depth *raycam.DepthBuffer, p scene.Projected) bool {
	hull := ConvexHull(p.Silhouette)
	if Degenerate(hull) {
		return false
	}
	col := f.Color(p)
	limit := p.Distance - DepthBias

	f.edges.Reset()
	f.edges.AddPolygon(hull)
	minY, maxY := f.edges.Bounds()
	y0 := max(int(math.Ceil(float64(minY)-0.5)), 0)
	y1 := min(int(math.Ceil(float64(maxY)-0.5)), pm.Height())

	for y := y0; y < y1; y++ {
		xs := f.edges.Crossings(float32(y) + 0.5)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(int(math.Ceil(float64(xs[i])-0.5)), 0)
			x1 := min(int(math.Ceil(float64(xs[i+1])-0.5)), pm.Width())
			for x := x0; x < x1; x++ {
				if depth.At(x, y)*f.FarPlane > limit {
					pm.SetPixel(x, y, col)
				}
			}
		}
	}
	return true
}
