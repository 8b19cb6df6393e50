package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raycam"
)

func TestTreeMesh(t *testing.T) {
	lib := NewLibrary()
	m := lib.Mesh(raycam.EntityTree, raycam.Vec3{X: 1, Y: 8, Z: 1})

	if got, want := len(m.Vertices), 2*RingSegments+2; got != want {
		t.Fatalf("vertex count = %d, want %d", got, want)
	}
	if m.Anchor() != AnchorLocal {
		t.Errorf("anchor = %v, want %v", m.Anchor(), AnchorLocal)
	}
	sil := m.Silhouette()
	if apex := sil[len(sil)-1]; apex != (mgl32.Vec3{0, 4, 0}) {
		t.Errorf("apex = %v, want (0,4,0)", apex)
	}
	for i, v := range sil[:2*RingSegments] {
		r := math.Hypot(float64(v.X()), float64(v.Z()))
		if math.Abs(r-1) > 1e-5 {
			t.Errorf("vertex %d radius = %v, want 1", i, r)
		}
		wantY := float32(0)
		if i >= RingSegments {
			wantY = 2
		}
		if v.Y() != wantY {
			t.Errorf("vertex %d height = %v, want %v", i, v.Y(), wantY)
		}
	}
}

func TestPlayerMesh(t *testing.T) {
	size := raycam.Vec3{X: 0.8, Y: 1.5, Z: 1}
	m := NewLibrary().Mesh(raycam.EntityPlayer, size)
	sil := m.Silhouette()
	if len(sil)%RingSegments != 0 {
		t.Fatalf("silhouette length %d is not whole rings", len(sil))
	}

	height := size.Y + capsuleExtraHeight
	r := float32(0.4)
	var maxY float32
	for _, v := range sil {
		rad := float32(math.Hypot(float64(v.X()), float64(v.Z())))
		if rad > r+1e-5 {
			t.Errorf("vertex %v outside capsule radius %v", v, r)
		}
		maxY = max(maxY, v.Y())
	}
	if math.Abs(float64(maxY-height)) > 1e-5 {
		t.Errorf("top = %v, want %v", maxY, height)
	}

	// Rings cluster near the rounded ends.
	first := sil[RingSegments].Y() - sil[0].Y()
	mid := len(sil) / RingSegments / 2
	middle := sil[(mid+1)*RingSegments].Y() - sil[mid*RingSegments].Y()
	if !(first < middle) {
		t.Errorf("end step %v not smaller than middle step %v", first, middle)
	}
}

func TestCapsuleDims(t *testing.T) {
	tests := []struct {
		name      string
		size      raycam.Vec3
		wantWidth float32
	}{
		{"pow", raycam.Vec3{X: 0.5, Y: 1, Z: 2}, 0.25},
		{"clamped low", raycam.Vec3{X: 0.1, Y: 1, Z: 3}, capsuleMinWidth},
		{"clamped high", raycam.Vec3{X: 3, Y: 1, Z: 2}, capsuleMaxWidth},
		{"nan", raycam.Vec3{X: -1, Y: 1, Z: 0.5}, capsuleMinWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w := capsuleDims(tt.size)
			if math.Abs(float64(h-1.3)) > 1e-6 {
				t.Errorf("height = %v, want 1.3", h)
			}
			if math.Abs(float64(w-tt.wantWidth)) > 1e-6 {
				t.Errorf("width = %v, want %v", w, tt.wantWidth)
			}
		})
	}
}

func TestLibraryMemoizesBySize(t *testing.T) {
	lib := NewLibrary()
	a := lib.Mesh(raycam.EntityTree, raycam.Vec3{X: 1, Y: 4, Z: 1})
	b := lib.Mesh(raycam.EntityTree, raycam.Vec3{X: 1, Y: 4, Z: 1})
	c := lib.Mesh(raycam.EntityTree, raycam.Vec3{X: 1, Y: 5, Z: 1})
	d := lib.Mesh(raycam.EntityPlayer, raycam.Vec3{X: 1, Y: 4, Z: 1})

	if a != b {
		t.Error("same kind and size built twice")
	}
	if a == c || a == d {
		t.Error("distinct keys share a mesh")
	}
	if lib.Len() != 3 {
		t.Errorf("Len = %d, want 3", lib.Len())
	}
	if s := lib.Stats(); s.Hits != 1 || s.Misses != 3 {
		t.Errorf("stats = %+v", s)
	}

	other := NewLibrary()
	if other.Mesh(raycam.EntityTree, raycam.Vec3{X: 1, Y: 4, Z: 1}) == a {
		t.Error("libraries share memoized meshes")
	}
}
