// Package text loads fonts and draws short single-line labels.
//
// A [FontSource] holds one parsed font twice: as an OpenType font from
// golang.org/x/image for glyph drawing, and as a go-text font for HarfBuzz
// shaping. Faces are memoized per rounded pixel size inside the source.
//
//	src := text.DefaultSource()
//	s := text.VisualOrder(name)
//	w := src.Measure(s, 14)
//	src.Draw(img, s, 14, x-w/2, y, color.White)
//
// Label strings are reordered with the Unicode bidirectional algorithm
// before drawing, so right-to-left names read correctly.
package text
