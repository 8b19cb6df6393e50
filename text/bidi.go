package text

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// VisualOrder returns s reordered for left-to-right glyph drawing.
//
// Right-to-left runs are reversed in place. When the paragraph starts with a
// right-to-left run, the run order is reversed as well. Strings the
// bidirectional algorithm rejects are returned unchanged.
func VisualOrder(s string) string {
	if s == "" {
		return s
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return s
	}

	runs := make([]string, ordering.NumRuns())
	for i := range runs {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			runs[i] = bidi.ReverseString(run.String())
		} else {
			runs[i] = run.String()
		}
	}
	if ordering.Direction() == bidi.RightToLeft {
		slices.Reverse(runs)
	}
	return strings.Join(runs, "")
}
