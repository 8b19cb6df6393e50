// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package silhouette

import (
	"testing"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/scene"
)

func square(x0, y0, x1, y1 float32) []raycam.Point {
	return []raycam.Point{raycam.Pt(x0, y0), raycam.Pt(x1, y0), raycam.Pt(x1, y1), raycam.Pt(x0, y1)}
}

func newBuffers(w, h int) (*raycam.Pixmap, *raycam.DepthBuffer) {
	pm := raycam.NewPixmap(w, h)
	pm.Fill(raycam.Black)
	depth := raycam.NewDepthBuffer(w, h)
	depth.Reset()
	return pm, depth
}

func TestIsScientistName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"", false},
		{"12345", true},
		{"0", true},
		{"alice", false},
		{"bob7", false},
		{"١٢٣", false}, // non-ASCII digits
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsScientistName(tt.name); got != tt.want {
				t.Errorf("IsScientistName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestColorPlayers(t *testing.T) {
	f := NewFiller(100)
	human := scene.Projected{Entity: raycam.Entity{Type: raycam.EntityPlayer, Name: "alice"}}
	scientist := scene.Projected{Entity: raycam.Entity{Type: raycam.EntityPlayer, Name: "4711"}}

	if f.Color(human) == f.Color(scientist) {
		t.Error("digit-only and regular names share a color")
	}
	if f.Color(scientist) != f.ScientistColor {
		t.Error("digit-only name not drawn with the scientist color")
	}
}

func TestColorTreeJitter(t *testing.T) {
	f := NewFiller(100)
	f.JitterScale = 1
	shade := func(distSq float32) raycam.RGBA {
		return f.Color(scene.Projected{Entity: raycam.Entity{Type: raycam.EntityTree}, DistanceSquared: distSq})
	}

	if shade(3.2) != shade(3.2) {
		t.Error("same distance produced different shades")
	}
	if shade(3.2) == shade(4.2) {
		t.Error("neighbouring distances share a shade")
	}
	if shade(13.5) != shade(3.9) {
		t.Error("shade index is not taken modulo 10")
	}
	if shade(0).NRGBA() != f.TreeBase.NRGBA() {
		t.Error("j=0 should be the base color")
	}
	want := f.TreeBase.Add8(6, 9, 3)
	if got := shade(3.5); got != want {
		t.Errorf("shade(3.5) = %v, want %v", got, want)
	}
}

func TestFillRespectsDepth(t *testing.T) {
	f := NewFiller(10)
	pm, depth := newBuffers(8, 4)
	// Left half of the buffer holds geometry at world distance 2, right half
	// is open sky.
	depth.SetRect(0, 0, 4, 4, 0.2)

	p := scene.Projected{
		Entity:     raycam.Entity{Type: raycam.EntityPlayer, Name: "alice"},
		Distance:   5,
		Silhouette: square(0, 0, 8, 4),
	}
	if !f.Fill(pm, depth, p) {
		t.Fatal("Fill reported nothing attempted")
	}
	human := f.HumanColor.NRGBA()
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			got := pm.NRGBAAt(x, y)
			if x < 4 && got == human {
				t.Errorf("(%d,%d) painted over nearer geometry", x, y)
			}
			if x >= 4 && got != human {
				t.Errorf("(%d,%d) = %v, want human color", x, y, got)
			}
		}
	}
}

func TestFillDepthBias(t *testing.T) {
	f := NewFiller(10)
	pm, depth := newBuffers(2, 1)
	depth.Set(0, 0, 0.46) // 4.6 > 5-0.5
	depth.Set(1, 0, 0.44) // 4.4 < 4.5

	p := scene.Projected{
		Entity:     raycam.Entity{Type: raycam.EntityPlayer},
		Distance:   5,
		Silhouette: square(0, 0, 2, 1),
	}
	f.Fill(pm, depth, p)
	if pm.NRGBAAt(0, 0) != f.HumanColor.NRGBA() {
		t.Error("pixel within the depth bias not painted")
	}
	if pm.NRGBAAt(1, 0) == f.HumanColor.NRGBA() {
		t.Error("pixel beyond the depth bias painted")
	}
}

func TestFillPixelCenters(t *testing.T) {
	f := NewFiller(10)
	pm, depth := newBuffers(6, 6)
	p := scene.Projected{
		Entity:     raycam.Entity{Type: raycam.EntityPlayer},
		Distance:   1,
		Silhouette: square(1.4, 1.6, 4.4, 3.4),
	}
	f.Fill(pm, depth, p)

	painted := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if pm.NRGBAAt(x, y) == f.HumanColor.NRGBA() {
				painted++
				cx, cy := float64(x)+0.5, float64(y)+0.5
				if cx < 1.4 || cx > 4.4 || cy < 1.6 || cy > 3.4 {
					t.Errorf("(%d,%d) painted outside the hull", x, y)
				}
			}
		}
	}
	// Centers x ∈ {1.5,2.5,3.5}, y ∈ {2.5}.
	if painted != 3 {
		t.Errorf("painted %d pixels, want 3", painted)
	}
}

func TestFillSkipsDegenerate(t *testing.T) {
	f := NewFiller(10)
	pm, depth := newBuffers(4, 4)
	before := append([]uint8(nil), pm.Data()...)
	p := scene.Projected{
		Entity:     raycam.Entity{Type: raycam.EntityTree},
		Distance:   1,
		Silhouette: []raycam.Point{raycam.Pt(1, 0), raycam.Pt(1, 2), raycam.Pt(1, 3)},
	}
	if f.Fill(pm, depth, p) {
		t.Error("degenerate silhouette reported as filled")
	}
	for i, b := range pm.Data() {
		if b != before[i] {
			t.Fatal("degenerate silhouette modified the buffer")
		}
	}
}

func TestFillClipsToBuffer(t *testing.T) {
	f := NewFiller(10)
	pm, depth := newBuffers(4, 4)
	p := scene.Projected{
		Entity:     raycam.Entity{Type: raycam.EntityPlayer},
		Distance:   1,
		Silhouette: square(-100, -100, 100, 100),
	}
	f.Fill(pm, depth, p)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if pm.NRGBAAt(x, y) != f.HumanColor.NRGBA() {
				t.Fatalf("(%d,%d) not painted", x, y)
			}
		}
	}
}
