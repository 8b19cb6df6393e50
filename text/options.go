package text

import "golang.org/x/image/font"

// DefaultFaceCacheSize bounds the number of memoized faces per source.
const DefaultFaceCacheSize = 32

type sourceConfig struct {
	hinting   font.Hinting
	faceLimit int
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		hinting:   font.HintingFull,
		faceLimit: DefaultFaceCacheSize,
	}
}

// SourceOption configures a FontSource.
type SourceOption func(*sourceConfig)

// WithHinting sets the glyph hinting used for drawing.
func WithHinting(h font.Hinting) SourceOption {
	return func(c *sourceConfig) {
		c.hinting = h
	}
}

// WithFaceCacheSize bounds the number of memoized faces.
// Values ≤ 0 keep the default.
func WithFaceCacheSize(n int) SourceOption {
	return func(c *sourceConfig) {
		if n > 0 {
			c.faceLimit = n
		}
	}
}
