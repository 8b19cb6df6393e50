package scene

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raycam"
)

// Selection defaults.
const (
	DefaultMaxEntities    = 24
	DefaultRenderDistance = 64
	// MaxAxisScale caps the per-axis model scale.
	MaxAxisScale = 5
)

// Viewport is the output raster size in pixels.
type Viewport struct {
	Width, Height float32
}

// Projected is an entity transformed into screen space.
type Projected struct {
	Entity raycam.Entity
	// Distance is the world-space distance from the camera.
	Distance        float32
	DistanceSquared float32
	// Silhouette holds the projected mesh vertices without the anchor.
	Silhouette []raycam.Point
	// Anchor is the projected name tag anchor.
	Anchor raycam.Point
	// WorldAnchor is the anchor in world coordinates.
	WorldAnchor mgl32.Vec3
	// ClipW is the clip-space w of the anchor.
	ClipW float32
	// MVP maps mesh-local coordinates to clip space.
	MVP mgl32.Mat4
	// ViewProj maps world coordinates to clip space.
	ViewProj mgl32.Mat4
	Viewport Viewport
}

// Projector selects and projects the entities of each frame.
//
// A Projector remembers the trees it picked for the previous frame so the
// tree set stays stable while the field of view does not change. It is not
// safe for concurrent use.
type Projector struct {
	Info  raycam.CameraInfo
	Scale int
	// MaxEntities bounds players plus trees drawn per frame.
	MaxEntities int
	// RenderDistance drops trees farther than this from the camera.
	RenderDistance float32
	Library        *Library

	rng     *rand.Rand
	prevFOV float32
	prevIDs map[string]struct{}
}

// NewProjector creates a projector with the default budget and a fixed
// random seed.
func NewProjector(info raycam.CameraInfo, scale int) *Projector {
	if scale <= 0 {
		scale = raycam.DefaultScale
	}
	p := &Projector{
		Info:           info,
		Scale:          scale,
		MaxEntities:    DefaultMaxEntities,
		RenderDistance: DefaultRenderDistance,
		Library:        NewLibrary(),
	}
	p.Seed(1)
	return p
}

// Seed resets the tree sampling generator.
func (p *Projector) Seed(seed uint64) {
	p.rng = rand.New(rand.NewPCG(seed, seed^0xA5A5_5A5A_C3C3_3C3C))
}

// Reset forgets the previous frame's tree selection.
func (p *Projector) Reset() {
	p.prevIDs = nil
	p.prevFOV = 0
}

// Viewport returns the output raster size.
func (p *Projector) Viewport() Viewport {
	return Viewport{
		Width:  float32(p.Info.Width * p.Scale),
		Height: float32(p.Info.Height * p.Scale),
	}
}

// Select returns the entities to draw for frame, sorted back to front.
//
// Every player is kept. The remaining budget is filled with trees inside
// the render distance: first those picked for the previous frame when the
// field of view is unchanged, then a uniform random sample of the rest.
func (p *Projector) Select(frame *raycam.RayFrame) []raycam.Entity {
	var players, trees []raycam.Entity
	for _, e := range frame.Entities {
		switch e.Type {
		case raycam.EntityPlayer:
			players = append(players, e)
		case raycam.EntityTree:
			if e.Position.Len() <= p.RenderDistance {
				trees = append(trees, e)
			}
		}
	}

	budget := max(p.MaxEntities-len(players), 0)
	picked := make([]raycam.Entity, 0, min(budget, len(trees)))
	if p.prevIDs != nil && frame.VerticalFOV == p.prevFOV {
		rest := trees[:0:0]
		for _, e := range trees {
			if _, ok := p.prevIDs[e.ID]; ok && len(picked) < budget {
				picked = append(picked, e)
			} else {
				rest = append(rest, e)
			}
		}
		trees = rest
	}
	if need := budget - len(picked); need > 0 {
		picked = append(picked, p.sample(trees, need)...)
	}

	p.prevFOV = frame.VerticalFOV
	p.prevIDs = make(map[string]struct{}, len(picked))
	for _, e := range picked {
		p.prevIDs[e.ID] = struct{}{}
	}

	out := append(players, picked...)
	slices.SortStableFunc(out, func(a, b raycam.Entity) int {
		da, db := a.Position.LenSq(), b.Position.LenSq()
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// sample returns up to n entities chosen uniformly without replacement.
// The input slice is reordered.
func (p *Projector) sample(pool []raycam.Entity, n int) []raycam.Entity {
	if n >= len(pool) {
		return pool
	}
	for i := 0; i < n; i++ {
		j := i + p.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Project selects the frame's entities and transforms their meshes.
// Entities with any vertex behind the camera are omitted.
func (p *Projector) Project(frame *raycam.RayFrame) []Projected {
	entities := p.Select(frame)
	viewProj := p.ViewProjection(frame.VerticalFOV)
	vp := p.Viewport()

	out := make([]Projected, 0, len(entities))
	for _, e := range entities {
		mesh := p.Library.Mesh(e.Type, e.Size)
		model := ModelMatrix(e)
		mvp := viewProj.Mul4(model)

		pr := Projected{
			Entity:          e,
			Distance:        e.Position.Len(),
			DistanceSquared: e.Position.LenSq(),
			Silhouette:      make([]raycam.Point, 0, len(mesh.Vertices)-1),
			MVP:             mvp,
			ViewProj:        viewProj,
			Viewport:        vp,
		}
		visible := true
		for _, v := range mesh.Silhouette() {
			pt, _, ok := ProjectPoint(mvp, v, vp)
			if !ok {
				visible = false
				break
			}
			pr.Silhouette = append(pr.Silhouette, pt)
		}
		if !visible {
			continue
		}
		anchor, w, ok := ProjectPoint(mvp, mesh.Anchor(), vp)
		if !ok {
			continue
		}
		pr.Anchor, pr.ClipW = anchor, w
		pr.WorldAnchor = model.Mul4x1(mesh.Anchor().Vec4(1)).Vec3()
		out = append(out, pr)
	}
	return out
}

// ViewProjection returns projection·view for a vertical field of view in
// degrees.
func (p *Projector) ViewProjection(fovDegrees float32) mgl32.Mat4 {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(fovDegrees), p.Info.Aspect(), p.Info.NearPlane, p.Info.FarPlane)
	return proj.Mul4(view)
}

// ModelMatrix returns translate·rotate·scale·face for an entity. The face
// term turns the mesh toward the camera around the vertical axis.
func ModelMatrix(e raycam.Entity) mgl32.Mat4 {
	pos, rot, size := e.Position, e.Rotation, e.Size
	translate := mgl32.Translate3D(pos.X, pos.Y, pos.Z)
	rotate := mgl32.HomogRotate3DZ(rot.Z).
		Mul4(mgl32.HomogRotate3DY(rot.Y)).
		Mul4(mgl32.HomogRotate3DX(rot.X))
	scale := mgl32.Scale3D(min(size.X, MaxAxisScale), min(size.Y, MaxAxisScale), min(size.Z, MaxAxisScale))
	return translate.Mul4(rotate).Mul4(scale).Mul4(FacingYaw(pos))
}

// FacingYaw rotates around +Y so the mesh faces the camera at the origin.
// The vertical component of the camera-to-entity vector is ignored.
func FacingYaw(pos raycam.Vec3) mgl32.Mat4 {
	if pos.X == 0 && pos.Z == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3DY(float32(math.Atan2(float64(pos.X), float64(pos.Z))))
}

// ProjectPoint transforms v by mvp, performs the perspective divide and maps
// the result to viewport pixels with Y pointing down. It reports false when
// the point is on or behind the camera plane (clip w ≤ 0).
func ProjectPoint(mvp mgl32.Mat4, v mgl32.Vec3, vp Viewport) (raycam.Point, float32, bool) {
	clip := mvp.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return raycam.Point{}, w, false
	}
	x, y := clip.X()/w, clip.Y()/w
	return raycam.Point{
		X: (x + 1) / 2 * vp.Width,
		Y: (1 - y) / 2 * vp.Height,
	}, w, true
}
