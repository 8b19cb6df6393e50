// Package label places and draws player name tags.
//
// Tag size follows perspective: a fixed world-space text height is projected
// at the player's anchor, so names shrink with distance. Tags are collected
// while entities are projected and drawn in one pass after every silhouette
// fill, so no fill can cover a name.
package label

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/scene"
	"github.com/gogpu/raycam/text"
)

// Defaults for a Placer.
const (
	DefaultTextHeight = 0.35
	DefaultMinSize    = 1
)

// Label is a positioned name tag.
type Label struct {
	// Text is the name in visual order.
	Text string
	// Size is the font size in pixels.
	Size float64
	// X, Y is the baseline origin of the first glyph.
	X, Y float64
	// Width is the shaped advance of Text.
	Width float64
	// Anchor is the projected anchor the tag is centered on.
	Anchor raycam.Point
}

// Placer computes and draws name tags.
type Placer struct {
	Source *text.FontSource
	// TextHeight is the tag height in world units.
	TextHeight float32
	// MinSize is the smallest font size in pixels.
	MinSize float64
	Color   raycam.RGBA
	// Shadow is drawn one pixel down and right of the text. A fully
	// transparent shadow is skipped.
	Shadow raycam.RGBA
}

// NewPlacer creates a placer drawing white text with a black shadow.
// A nil source uses the embedded default font.
func NewPlacer(src *text.FontSource) *Placer {
	if src == nil {
		src = text.DefaultSource()
	}
	return &Placer{
		Source:     src,
		TextHeight: DefaultTextHeight,
		MinSize:    DefaultMinSize,
		Color:      raycam.White,
		Shadow:     raycam.Black,
	}
}

// Place computes the tag for a projected player. It reports false for
// non-players, unnamed players and anchors that do not project.
func (pl *Placer) Place(p scene.Projected) (Label, bool) {
	if p.Entity.Type != raycam.EntityPlayer || p.Entity.Name == "" {
		return Label{}, false
	}
	size, ok := pl.Size(p)
	if !ok {
		return Label{}, false
	}
	s := text.VisualOrder(p.Entity.Name)
	width := pl.Source.Measure(s, size)
	return Label{
		Text:   s,
		Size:   size,
		X:      float64(p.Anchor.X) - width/2,
		Y:      float64(p.Anchor.Y),
		Width:  width,
		Anchor: p.Anchor,
	}, true
}

// Size returns the font size for p: the pixel distance between the
// projected anchor and a point TextHeight above it, at least MinSize.
func (pl *Placer) Size(p scene.Projected) (float64, bool) {
	base, _, ok := scene.ProjectPoint(p.ViewProj, p.WorldAnchor, p.Viewport)
	if !ok {
		return 0, false
	}
	top, _, ok := scene.ProjectPoint(p.ViewProj, p.WorldAnchor.Add(mgl32.Vec3{0, pl.TextHeight, 0}), p.Viewport)
	if !ok {
		return 0, false
	}
	return math.Max(float64(base.Distance(top)), pl.MinSize), true
}

// PlaceAll returns the tags for every placeable entity, in input order.
func (pl *Placer) PlaceAll(projected []scene.Projected) []Label {
	var labels []Label
	for _, p := range projected {
		if l, ok := pl.Place(p); ok {
			labels = append(labels, l)
		}
	}
	return labels
}

// DrawAll draws labels onto pm in order. It must run after every
// silhouette fill.
func (pl *Placer) DrawAll(pm *raycam.Pixmap, labels []Label) {
	if len(labels) == 0 {
		return
	}
	img := pm.RGBAImage()
	for _, l := range labels {
		if pl.Shadow.A > 0 {
			pl.Source.Draw(img, l.Text, l.Size, l.X+1, l.Y+1, pl.Shadow.Color())
		}
		pl.Source.Draw(img, l.Text, l.Size, l.X, l.Y, pl.Color.Color())
	}
}
