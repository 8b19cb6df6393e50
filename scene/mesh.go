package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/cache"
)

// RingSegments is the number of vertices in every mesh ring.
const RingSegments = 14

// Player capsule parameters.
const (
	capsuleExtraHeight = 0.3
	capsuleMinWidth    = 0.2
	capsuleMaxWidth    = 2.0
	// capsuleSteps is the nominal number of rings along the capsule height.
	capsuleSteps = 12
	// capsuleMinStep bounds how small the ring step may become near the
	// rounded ends, as a fraction of the nominal step.
	capsuleMinStep = 0.25
)

// DefaultLibrarySize bounds the number of memoized meshes per library.
const DefaultLibrarySize = 256

// AnchorLocal is the mesh-local name tag anchor appended to every mesh.
var AnchorLocal = mgl32.Vec3{0, 1.3, 0}

// Mesh is an archetype vertex set in entity-local coordinates.
// The last vertex is always the name tag anchor.
type Mesh struct {
	Kind     raycam.EntityType
	Vertices []mgl32.Vec3
}

// Silhouette returns every vertex except the anchor.
func (m *Mesh) Silhouette() []mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return nil
	}
	return m.Vertices[:len(m.Vertices)-1]
}

// Anchor returns the name tag anchor vertex.
func (m *Mesh) Anchor() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return AnchorLocal
	}
	return m.Vertices[len(m.Vertices)-1]
}

// archetype generates the silhouette vertices for one entity kind.
type archetype interface {
	vertices(size raycam.Vec3) []mgl32.Vec3
}

type meshKey struct {
	kind raycam.EntityType
	size raycam.Vec3
}

// Library builds and memoizes archetype meshes keyed by kind and size.
// Meshes returned by a Library are shared and must not be modified.
type Library struct {
	archetypes map[raycam.EntityType]archetype
	meshes     *cache.Cache[meshKey, *Mesh]
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		archetypes: map[raycam.EntityType]archetype{
			raycam.EntityTree:   treeArchetype{},
			raycam.EntityPlayer: playerArchetype{},
		},
		meshes: cache.New[meshKey, *Mesh](DefaultLibrarySize),
	}
}

// Mesh returns the mesh for an entity kind and size. Unknown kinds fall
// back to the tree archetype.
func (l *Library) Mesh(kind raycam.EntityType, size raycam.Vec3) *Mesh {
	key := meshKey{kind: kind, size: size}
	return l.meshes.GetOrCreate(key, func() *Mesh {
		a, ok := l.archetypes[kind]
		if !ok {
			a = treeArchetype{}
		}
		verts := a.vertices(size)
		return &Mesh{Kind: kind, Vertices: append(verts, AnchorLocal)}
	})
}

// Len returns the number of memoized meshes.
func (l *Library) Len() int {
	return l.meshes.Len()
}

// Stats exposes the memo table counters.
func (l *Library) Stats() cache.Stats {
	return l.meshes.Stats()
}

// treeArchetype approximates a canopy: two rings and an apex.
type treeArchetype struct{}

func (treeArchetype) vertices(size raycam.Vec3) []mgl32.Vec3 {
	radius := size.Y / 8
	verts := make([]mgl32.Vec3, 0, 2*RingSegments+1)
	verts = appendRing(verts, 0, radius)
	verts = appendRing(verts, size.Y/4, radius)
	return append(verts, mgl32.Vec3{0, size.Y / 2, 0})
}

// playerArchetype approximates a standing humanoid with a capsule.
type playerArchetype struct{}

func (playerArchetype) vertices(size raycam.Vec3) []mgl32.Vec3 {
	height, width := capsuleDims(size)
	r := width / 2
	if 2*r > height {
		r = height / 2
	}
	bottom, top := r, height-r
	step := height / capsuleSteps

	var verts []mgl32.Vec3
	for y := float32(0); y < height; {
		radius := capsuleRadius(y, r, bottom, top)
		verts = appendRing(verts, y, radius)
		y += step * max(capsuleMinStep, radius/r)
	}
	return appendRing(verts, height, capsuleRadius(height, r, bottom, top))
}

// capsuleDims returns the capsule height and width for an entity size.
// Width is size.x raised to size.z, clamped to a humanoid range.
func capsuleDims(size raycam.Vec3) (height, width float32) {
	height = size.Y + capsuleExtraHeight
	w := math.Pow(float64(size.X), float64(size.Z))
	if math.IsNaN(w) {
		w = capsuleMinWidth
	}
	width = float32(math.Min(math.Max(w, capsuleMinWidth), capsuleMaxWidth))
	return height, width
}

// capsuleRadius returns the ring radius at height y: the positive root of
// the hemisphere circle below bottom and above top, r in between.
func capsuleRadius(y, r, bottom, top float32) float32 {
	var c float32
	switch {
	case y < bottom:
		c = bottom
	case y > top:
		c = top
	default:
		return r
	}
	d := r*r - (y-c)*(y-c)
	if d <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(d)))
}

func appendRing(verts []mgl32.Vec3, y, radius float32) []mgl32.Vec3 {
	for k := 0; k < RingSegments; k++ {
		a := 2 * math.Pi * float64(k) / RingSegments
		verts = append(verts, mgl32.Vec3{
			radius * float32(math.Cos(a)),
			y,
			radius * float32(math.Sin(a)),
		})
	}
	return verts
}
