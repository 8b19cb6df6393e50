package text

import (
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// HarfbuzzShaper keeps mutable buffers and is pooled across calls.
var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// Measure returns the horizontal advance of s at size pixels, shaped left
// to right with kerning and ligatures. s should already be in visual order.
func (s *FontSource) Measure(str string, size float64) float64 {
	if str == "" {
		return 0
	}
	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(s.fonts.shape),
		Size:      floatToFixed(float64(roundSize(size))),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	return math.Abs(fixedToFloat(out.Advance))
}

// LineMetrics returns the ascent and descent of the drawing face at size.
func (s *FontSource) LineMetrics(size float64) (ascent, descent float64) {
	m := s.Face(size).Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
