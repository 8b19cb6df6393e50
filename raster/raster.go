// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster writes decoded camera rays into color and depth buffers.
//
// Each ray is routed through a [ScrambleTable] to a grid cell and written as
// a scale×scale block. Background rays reset the block to the palette
// background with infinite depth; other rays blend their material color
// over the block using the ray alignment as alpha, so successive frames
// smooth into each other.
//
// Rays are decoded in bounded batches. Between batches the rasterizer calls
// its Yield hook, which lets a cooperative caller interleave other work.
// Batching never changes the output.
package raster

import (
	"fmt"
	"math"
	"runtime"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/wire"
)

// DefaultBatchSize is the number of rays decoded between Yield calls.
const DefaultBatchSize = 2048

// Rasterizer draws ray frames for one camera configuration.
//
// A Rasterizer reuses an internal batch buffer and must not be used by
// multiple goroutines at once.
type Rasterizer struct {
	Info    raycam.CameraInfo
	Scale   int
	Palette Palette
	Table   *ScrambleTable

	// BatchSize bounds how many rays are decoded before Yield is called.
	BatchSize int
	// Yield is called between batches. Nil disables yielding.
	Yield func()

	batch []wire.Ray
}

// New creates a rasterizer with the default palette, scramble table and
// batch size.
func New(info raycam.CameraInfo, scale int) (*Rasterizer, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = raycam.DefaultScale
	}
	return &Rasterizer{
		Info:      info,
		Scale:     scale,
		Palette:   DefaultPalette(),
		Table:     NewScrambleTable(info.Width, info.Height),
		BatchSize: DefaultBatchSize,
		Yield:     runtime.Gosched,
	}, nil
}

// Size returns the output raster size in pixels.
func (r *Rasterizer) Size() (width, height int) {
	return r.Info.Width * r.Scale, r.Info.Height * r.Scale
}

// NewBuffers allocates a cleared color and depth buffer pair.
func (r *Rasterizer) NewBuffers() (*raycam.Pixmap, *raycam.DepthBuffer) {
	w, h := r.Size()
	pm := raycam.NewPixmap(w, h)
	depth := raycam.NewDepthBuffer(w, h)
	r.Clear(pm, depth)
	return pm, depth
}

// Clear resets the buffers to the background color and infinite depth.
func (r *Rasterizer) Clear(pm *raycam.Pixmap, depth *raycam.DepthBuffer) {
	pm.Fill(r.Palette.Background)
	depth.Reset()
}

// Draw decodes frame.RayData and writes every complete ray into pm and
// depth. It returns the number of rays drawn. Cells not covered by the
// stream keep their previous content.
func (r *Rasterizer) Draw(frame *raycam.RayFrame, pm *raycam.Pixmap, depth *raycam.DepthBuffer) (int, error) {
	if frame == nil {
		return 0, nil
	}
	if tw, th := r.Table.Size(); tw != r.Info.Width || th != r.Info.Height {
		return 0, fmt.Errorf("%w: table %dx%d for camera %dx%d",
			ErrBadTable, tw, th, r.Info.Width, r.Info.Height)
	}

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = math.MaxInt32
	}
	if len(r.batch) != min(batchSize, 1<<16) {
		r.batch = make([]wire.Ray, min(batchSize, 1<<16))
	}

	dec := wire.NewDecoder(frame.RayData)
	cursor := int(frame.SampleOffset % uint32(r.Table.Len()))
	drawn, sinceYield := 0, 0
	for {
		n := dec.Decode(r.batch)
		for i := 0; i < n; i++ {
			var cell int
			cell, cursor = r.Table.Cell(cursor)
			r.writeBlock(pm, depth, cell, r.batch[i])
		}
		drawn += n
		sinceYield += n
		if n < len(r.batch) {
			break
		}
		if sinceYield >= batchSize {
			sinceYield = 0
			if r.Yield != nil {
				r.Yield()
			}
		}
	}

	if rest := dec.Remaining(); rest > 0 {
		raycam.Logger().Debug("raster: dropped truncated ray tail", "bytes", rest, "rays", drawn)
	}
	return drawn, nil
}

func (r *Rasterizer) writeBlock(pm *raycam.Pixmap, depth *raycam.DepthBuffer, cell int, ray wire.Ray) {
	w, h := r.Info.Width, r.Info.Height
	if cell < 0 || cell >= w*h {
		// Row (w·h−1−cell) div w is negative: the block is off-screen.
		return
	}
	x := (cell % w) * r.Scale
	y := ((w*h - 1 - cell) / w) * r.Scale

	if ray.IsBackground() {
		pm.FillRect(x, y, r.Scale, r.Scale, r.Palette.Background)
		depth.SetRect(x, y, r.Scale, r.Scale, float32(math.Inf(1)))
		return
	}
	pm.BlendRect(x, y, r.Scale, r.Scale, r.Palette.Material(ray.Material), float64(ray.Alignment))
	depth.SetRect(x, y, r.Scale, r.Scale, ray.Distance)
}
