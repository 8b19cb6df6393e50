package text

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/raycam/internal/cache"
)

// FontSource is a loaded font plus its memoized faces.
//
// Measuring is safe for concurrent use. Faces returned by Face are shared
// and must not be used by multiple goroutines at once, so a FontSource
// should not be drawn with concurrently.
type FontSource struct {
	fonts  *parsedFonts
	config sourceConfig
	faces  *cache.Cache[int, font.Face]
}

// parsedFonts holds the read-only parse results, shareable across sources.
type parsedFonts struct {
	ot    *opentype.Font
	shape *gotext.Font
	name  string
}

var (
	defaultOnce  sync.Once
	defaultFonts *parsedFonts
	defaultErr   error
)

// NewFontSource parses TTF or OTF data.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	fonts, err := parseFonts(data)
	if err != nil {
		return nil, err
	}
	return newSource(fonts, opts), nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data, opts...)
}

// DefaultSource returns a source backed by the embedded Go Regular font.
// The font is parsed once per process; every call returns a source with its
// own face cache.
func DefaultSource(opts ...SourceOption) *FontSource {
	defaultOnce.Do(func() {
		defaultFonts, defaultErr = parseFonts(goregular.TTF)
	})
	if defaultErr != nil {
		// The embedded font is known to parse.
		panic(defaultErr)
	}
	return newSource(defaultFonts, opts)
}

func newSource(fonts *parsedFonts, opts []SourceOption) *FontSource {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FontSource{
		fonts:  fonts,
		config: cfg,
		faces:  cache.New[int, font.Face](cfg.faceLimit),
	}
}

func parseFonts(data []byte) (*parsedFonts, error) {
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	name, _ := ot.Name(nil, sfnt.NameIDFamily)
	return &parsedFonts{ot: ot, shape: face.Font, name: name}, nil
}

// Name returns the font family name, if the font declares one.
func (s *FontSource) Name() string {
	return s.fonts.name
}

// Face returns the drawing face for size, rounded to whole pixels with a
// minimum of one.
func (s *FontSource) Face(size float64) font.Face {
	px := roundSize(size)
	return s.faces.GetOrCreate(px, func() font.Face {
		f, err := opentype.NewFace(s.fonts.ot, &opentype.FaceOptions{
			Size:    float64(px),
			DPI:     72,
			Hinting: s.config.hinting,
		})
		if err != nil {
			// NewFace only fails for invalid options, which roundSize excludes.
			panic(err)
		}
		return f
	})
}

// FaceCount returns the number of memoized faces.
func (s *FontSource) FaceCount() int {
	return s.faces.Len()
}

func roundSize(size float64) int {
	if math.IsNaN(size) || size < 1 {
		return 1
	}
	return int(math.Round(min(size, 4096)))
}
