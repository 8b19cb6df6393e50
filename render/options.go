package render

import (
	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/raster"
	"github.com/gogpu/raycam/scene"
	"github.com/gogpu/raycam/text"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(info,
//	    render.WithScale(4),
//	    render.WithMaxEntities(32),
//	)
type Option func(*options)

type options struct {
	scale          int
	maxEntities    int
	renderDistance float32
	seed           uint64
	palette        *raster.Palette
	table          *raster.ScrambleTable
	batchSize      int
	yield          func()
	yieldSet       bool
	source         *text.FontSource
	colors         *silhouetteColors
}

type silhouetteColors struct {
	human, scientist, tree raycam.RGBA
}

func defaultOptions() options {
	return options{
		scale:          raycam.DefaultScale,
		maxEntities:    scene.DefaultMaxEntities,
		renderDistance: scene.DefaultRenderDistance,
		seed:           1,
		batchSize:      raster.DefaultBatchSize,
	}
}

// WithScale sets the number of output pixels per ray cell along each axis.
// Values ≤ 0 keep the default of 6.
func WithScale(scale int) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithMaxEntities bounds players plus trees drawn per frame.
func WithMaxEntities(n int) Option {
	return func(o *options) {
		o.maxEntities = n
	}
}

// WithRenderDistance drops trees farther than d from the camera.
func WithRenderDistance(d float32) Option {
	return func(o *options) {
		o.renderDistance = d
	}
}

// WithSeed seeds the tree sampling generator.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithPalette replaces the background and material colors.
func WithPalette(p raster.Palette) Option {
	return func(o *options) {
		o.palette = &p
	}
}

// WithScrambleTable uses a server-provided scramble table. Its size must
// match the camera.
func WithScrambleTable(t *raster.ScrambleTable) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithBatchSize sets how many rays are decoded between yields.
// A value ≤ 0 decodes each frame in one pass.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithYield sets the hook called between ray batches. Nil disables
// yielding.
func WithYield(fn func()) Option {
	return func(o *options) {
		o.yield = fn
		o.yieldSet = true
	}
}

// WithFontSource sets the font used for name tags.
func WithFontSource(src *text.FontSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSilhouetteColors sets the player and tree fill colors.
func WithSilhouetteColors(human, scientist, treeBase raycam.RGBA) Option {
	return func(o *options) {
		o.colors = &silhouetteColors{human: human, scientist: scientist, tree: treeBase}
	}
}
