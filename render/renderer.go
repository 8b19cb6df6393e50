package render

import (
	"fmt"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/label"
	"github.com/gogpu/raycam/raster"
	"github.com/gogpu/raycam/scene"
	"github.com/gogpu/raycam/silhouette"
)

// Result is one finished render.
type Result struct {
	// Image is width·scale × height·scale RGBA.
	Image *raycam.Pixmap
	// Depth is the background depth raster the entities were tested against.
	Depth *raycam.DepthBuffer
	// Entities are the drawn entities of the newest frame, back to front.
	Entities []raycam.Entity
	// Distance is the newest frame's distance from the player.
	Distance float32
	// Labels are the name tags drawn in the final pass.
	Labels []label.Label
	// Rays is the number of rays rasterized across all frames.
	Rays int
}

// Renderer turns buffered ray frames into images.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	info      raycam.CameraInfo
	raster    *raster.Rasterizer
	projector *scene.Projector
	filler    *silhouette.Filler
	placer    *label.Placer
}

// New creates a renderer for a camera. It returns ErrNotReady for a zero
// CameraInfo and wraps ErrInvalidCameraInfo for unusable ones.
func New(info raycam.CameraInfo, opts ...Option) (*Renderer, error) {
	if info == (raycam.CameraInfo{}) {
		return nil, raycam.ErrNotReady
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rast, err := raster.New(info, o.scale)
	if err != nil {
		return nil, err
	}
	if o.palette != nil {
		rast.Palette = *o.palette
	}
	if o.table != nil {
		if w, h := o.table.Size(); w != info.Width || h != info.Height {
			return nil, fmt.Errorf("render: %w: table %dx%d for camera %dx%d",
				raster.ErrBadTable, w, h, info.Width, info.Height)
		}
		rast.Table = o.table
	}
	rast.BatchSize = o.batchSize
	if o.yieldSet {
		rast.Yield = o.yield
	}

	proj := scene.NewProjector(info, o.scale)
	proj.MaxEntities = o.maxEntities
	proj.RenderDistance = o.renderDistance
	proj.Seed(o.seed)

	filler := silhouette.NewFiller(info.FarPlane)
	if o.colors != nil {
		filler.HumanColor = o.colors.human
		filler.ScientistColor = o.colors.scientist
		filler.TreeBase = o.colors.tree
	}

	return &Renderer{
		info:      info,
		raster:    rast,
		projector: proj,
		filler:    filler,
		placer:    label.NewPlacer(o.source),
	}, nil
}

// Info returns the camera the renderer was built for.
func (r *Renderer) Info() raycam.CameraInfo {
	return r.info
}

// Size returns the output image size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.raster.Size()
}

// Reset forgets cross-frame selection state.
func (r *Renderer) Reset() {
	r.projector.Reset()
}

// Render draws frames, ordered oldest to newest. Nil frames are ignored.
// It returns ErrNoData when no frame remains.
func (r *Renderer) Render(frames []*raycam.RayFrame) (*Result, error) {
	var newest *raycam.RayFrame
	for _, f := range frames {
		if f != nil {
			newest = f
		}
	}
	if newest == nil {
		return nil, raycam.ErrNoData
	}

	pm, depth := r.raster.NewBuffers()
	res := &Result{Image: pm, Depth: depth, Distance: newest.Distance}
	for _, f := range frames {
		if f == nil {
			continue
		}
		n, err := r.raster.Draw(f, pm, depth)
		if err != nil {
			return nil, err
		}
		res.Rays += n
	}

	projected := r.projector.Project(newest)
	res.Entities = make([]raycam.Entity, 0, len(projected))
	for _, p := range projected {
		r.filler.Fill(pm, depth, p)
		res.Entities = append(res.Entities, p.Entity)
	}

	res.Labels = r.placer.PlaceAll(projected)
	r.placer.DrawAll(pm, res.Labels)

	raycam.Logger().Debug("render: frame complete",
		"frames", len(frames), "rays", res.Rays,
		"entities", len(res.Entities), "labels", len(res.Labels))
	return res, nil
}
