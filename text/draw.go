package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Draw renders s onto dst with its baseline origin at (x, y).
// s is drawn glyph by glyph in the given order; pass it through
// VisualOrder first for right-to-left names.
func (s *FontSource) Draw(dst draw.Image, str string, size, x, y float64, col color.Color) {
	if str == "" || dst == nil {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: s.Face(size),
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(str)
}

// Advance returns the unshaped advance of s as the drawing face lays it
// out. It differs from Measure only where kerning or ligatures apply.
func (s *FontSource) Advance(str string, size float64) float64 {
	return fixedToFloat(font.MeasureString(s.Face(size), str))
}
