// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/wire"
)

var testInfo = raycam.CameraInfo{Width: 2, Height: 2, NearPlane: 0.1, FarPlane: 100}

// identityTable sends ray k to cell k.
func identityTable(t *testing.T, w, h int) *ScrambleTable {
	t.Helper()
	entries := make([]uint16, 0, 2*w*h)
	for k := 0; k < w*h; k++ {
		entries = append(entries, uint16(k%w), uint16(k/w))
	}
	tbl, err := ScrambleTableFrom(w, h, entries)
	if err != nil {
		t.Fatalf("ScrambleTableFrom: %v", err)
	}
	return tbl
}

func newTestRasterizer(t *testing.T, info raycam.CameraInfo, scale int) *Rasterizer {
	t.Helper()
	r, err := New(info, scale)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Table = identityTable(t, info.Width, info.Height)
	r.Yield = nil
	return r
}

func TestScrambleTableIsPermutation(t *testing.T) {
	tbl := NewScrambleTable(16, 9)
	if tbl.Len() != 2*16*9 {
		t.Fatalf("Len = %d", tbl.Len())
	}
	seen := make(map[int]bool)
	cursor := 0
	for k := 0; k < 16*9; k++ {
		var cell int
		cell, cursor = tbl.Cell(cursor)
		if cell < 0 || cell >= 16*9 {
			t.Fatalf("cell %d out of range", cell)
		}
		if seen[cell] {
			t.Fatalf("cell %d visited twice", cell)
		}
		seen[cell] = true
	}

	again := NewScrambleTable(16, 9)
	if !equalEntries(tbl.entries, again.entries) {
		t.Error("default table is not deterministic")
	}
}

func TestScrambleTableCellWraps(t *testing.T) {
	tbl := identityTable(t, 2, 2)
	tests := []struct {
		name     string
		cursor   int
		wantCell int
		wantNext int
	}{
		{"start", 0, 0, 2},
		{"second", 2, 1, 4},
		{"split across end", tbl.Len() - 1, 1, 1},
		{"beyond length", tbl.Len() + 2, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, next := tbl.Cell(tt.cursor)
			if cell != tt.wantCell || next != tt.wantNext {
				t.Errorf("Cell(%d) = (%d, %d), want (%d, %d)",
					tt.cursor, cell, next, tt.wantCell, tt.wantNext)
			}
		})
	}
}

func TestScrambleTableFromRejects(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		entries []uint16
	}{
		{"short", 2, 2, []uint16{0, 0}},
		{"column out of range", 1, 1, []uint16{1, 0}},
		{"row out of range", 1, 1, []uint16{0, 1}},
		{"empty grid", 0, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ScrambleTableFrom(tt.w, tt.h, tt.entries); !errors.Is(err, ErrBadTable) {
				t.Errorf("err = %v, want ErrBadTable", err)
			}
		})
	}
}

func TestDrawBlocks(t *testing.T) {
	r := newTestRasterizer(t, testInfo, 2)
	pm, depth := r.NewBuffers()

	e := wire.NewEncoder()
	mustEncode(t, e.Encode(1023, 0, 0)) // cell 0: background sentinel
	mustEncode(t, e.Encode(511, 63, 2)) // cell 1: opaque stone
	mustEncode(t, e.Encode(200, 63, 7)) // cell 2: sky material
	mustEncode(t, e.Encode(300, 0, 4))  // cell 3: fully transparent water

	n, err := r.Draw(&raycam.RayFrame{RayData: e.Bytes()}, pm, depth)
	if err != nil || n != 4 {
		t.Fatalf("Draw = %d, %v", n, err)
	}

	bg := r.Palette.Background.NRGBA()
	stone := r.Palette.Materials[2].NRGBA()
	// cell k -> x=(k%2)*2, y=((3-k)/2)*2
	tests := []struct {
		name  string
		x, y  int
		color [3]uint8
		depth float32
	}{
		{"cell 0 background", 0, 2, [3]uint8{bg.R, bg.G, bg.B}, float32(math.Inf(1))},
		{"cell 1 stone", 3, 3, [3]uint8{stone.R, stone.G, stone.B}, 511.0 / 1023},
		{"cell 2 sky", 1, 1, [3]uint8{bg.R, bg.G, bg.B}, float32(math.Inf(1))},
		{"cell 3 transparent", 2, 0, [3]uint8{bg.R, bg.G, bg.B}, 300.0 / 1023},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pm.NRGBAAt(tt.x, tt.y)
			if [3]uint8{got.R, got.G, got.B} != tt.color {
				t.Errorf("color = %v, want %v", got, tt.color)
			}
			if d := depth.At(tt.x, tt.y); d != tt.depth {
				t.Errorf("depth = %v, want %v", d, tt.depth)
			}
		})
	}
}

func TestDrawBlendsOverPreviousContent(t *testing.T) {
	r := newTestRasterizer(t, raycam.CameraInfo{Width: 1, Height: 1, NearPlane: 1, FarPlane: 2}, 1)
	pm, depth := r.NewBuffers()
	pm.Fill(raycam.Black)

	e := wire.NewEncoder()
	mustEncode(t, e.Encode(100, 21, 6)) // alignment 1/3

	if _, err := r.Draw(&raycam.RayFrame{RayData: e.Bytes()}, pm, depth); err != nil {
		t.Fatal(err)
	}
	want := r.Palette.Materials[6].NRGBA()
	got := pm.NRGBAAt(0, 0)
	if diff := int(got.R) - int(float64(want.R)/3+0.5); diff < -1 || diff > 1 {
		t.Errorf("blended R = %d, want about %d", got.R, int(want.R)/3)
	}
}

func TestDrawSampleOffsetWraps(t *testing.T) {
	r := newTestRasterizer(t, testInfo, 1)
	e := wire.NewEncoder()
	mustEncode(t, e.Encode(511, 63, 1))

	draw := func(offset uint32) *raycam.Pixmap {
		pm, depth := r.NewBuffers()
		if _, err := r.Draw(&raycam.RayFrame{RayData: e.Bytes(), SampleOffset: offset}, pm, depth); err != nil {
			t.Fatal(err)
		}
		return pm
	}
	a := draw(2)
	b := draw(2 + uint32(r.Table.Len())*3)
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("offset modulo table length produced different output")
	}
	// offset 2 targets cell 1: x=1, y=(3-1)/2=1
	if got := a.NRGBAAt(1, 1); got == r.Palette.Background.NRGBA() {
		t.Error("cell 1 not written")
	}
}

func TestDrawSkipsCellsOutsideGrid(t *testing.T) {
	info := raycam.CameraInfo{Width: 4, Height: 2, NearPlane: 0.1, FarPlane: 100}
	r := newTestRasterizer(t, info, 1)
	// Identity layout except entry 2, so an odd cursor pairs row 0 with
	// column entry 2 and yields cell 2·4+0 = 8, one row above the grid.
	entries := []uint16{0, 0, 2, 0, 2, 0, 3, 0, 0, 1, 1, 1, 2, 1, 3, 1}
	tbl, err := ScrambleTableFrom(4, 2, entries)
	if err != nil {
		t.Fatal(err)
	}
	r.Table = tbl

	e := wire.NewEncoder()
	if _, err := e.Full(100, 63, 2); err != nil {
		t.Fatal(err)
	}
	pm, depth := r.NewBuffers()
	n, err := r.Draw(&raycam.RayFrame{RayData: e.Bytes(), SampleOffset: 1}, pm, depth)
	if err != nil || n != 1 {
		t.Fatalf("Draw = %d, %v", n, err)
	}
	bg := r.Palette.Background.NRGBA()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if d := depth.At(x, y); !math.IsInf(float64(d), 1) {
				t.Errorf("depth(%d,%d) = %v, want +Inf", x, y, d)
			}
			if got := pm.NRGBAAt(x, y); got != bg {
				t.Errorf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestDrawTruncatedKeepsContent(t *testing.T) {
	r := newTestRasterizer(t, testInfo, 1)
	pm, depth := r.NewBuffers()

	e := wire.NewEncoder()
	mustEncode(t, e.Encode(511, 63, 1))
	data := append(append([]byte{}, e.Bytes()...), 0xFF, 0x10) // partial key

	n, err := r.Draw(&raycam.RayFrame{RayData: data}, pm, depth)
	if err != nil || n != 1 {
		t.Fatalf("Draw = %d, %v", n, err)
	}
	bg := r.Palette.Background.NRGBA()
	for _, c := range [][2]int{{1, 0}, {0, 0}, {1, 1}} {
		if got := pm.NRGBAAt(c[0], c[1]); got != bg {
			t.Errorf("untouched cell %v = %v", c, got)
		}
	}
}

func TestDrawBatchingDoesNotChangeOutput(t *testing.T) {
	info := raycam.CameraInfo{Width: 24, Height: 16, NearPlane: 0.1, FarPlane: 50}
	rng := rand.New(rand.NewPCG(1, 2))
	e := wire.NewEncoder()
	for i := 0; i < 1500; i++ {
		mustEncode(t, e.Encode(rng.IntN(1024), rng.IntN(64), rng.IntN(8)))
	}
	frame := &raycam.RayFrame{RayData: e.Bytes(), SampleOffset: 77}

	render := func(batch int) (*raycam.Pixmap, *raycam.DepthBuffer, int) {
		r, err := New(info, 3)
		if err != nil {
			t.Fatal(err)
		}
		yields := 0
		r.BatchSize = batch
		r.Yield = func() { yields++ }
		pm, depth := r.NewBuffers()
		if _, err := r.Draw(frame, pm, depth); err != nil {
			t.Fatal(err)
		}
		return pm, depth, yields
	}

	onePass, d1, y1 := render(0)
	batched, d2, y2 := render(7)
	if !bytes.Equal(onePass.Data(), batched.Data()) {
		t.Error("batched color output differs from single pass")
	}
	for y := 0; y < d1.Height(); y++ {
		for x := 0; x < d1.Width(); x++ {
			if a, b := d1.At(x, y), d2.At(x, y); a != b && !(math.IsInf(float64(a), 1) && math.IsInf(float64(b), 1)) {
				t.Fatalf("depth (%d,%d) differs: %v vs %v", x, y, a, b)
			}
		}
	}
	if y1 != 0 {
		t.Errorf("single pass yielded %d times", y1)
	}
	if y2 < 1500/7-1 {
		t.Errorf("batched run yielded %d times", y2)
	}
}

func TestNewRejectsInvalidInfo(t *testing.T) {
	if _, err := New(raycam.CameraInfo{}, 6); !errors.Is(err, raycam.ErrInvalidCameraInfo) {
		t.Errorf("err = %v", err)
	}
}

func mustEncode(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func equalEntries(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
