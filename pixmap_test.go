package raycam

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.SetPixel(2, 1, RGB8(10, 20, 30))
	if got := pm.NRGBAAt(2, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("NRGBAAt = %v", got)
	}
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(4, 0, White)
	if got := pm.NRGBAAt(9, 9); got != (color.NRGBA{}) {
		t.Errorf("out of bounds read = %v, want zero", got)
	}
}

func TestPixmapFillRectClips(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Fill(Black)
	pm.FillRect(2, 2, 6, 6, White)

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0}, {1, 1, 0}, {2, 2, 255}, {3, 3, 255}, {3, 1, 0},
	}
	for _, tt := range tests {
		if got := pm.NRGBAAt(tt.x, tt.y).R; got != tt.want {
			t.Errorf("pixel (%d,%d) R = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPixmapBlendRect(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		want  uint8
	}{
		{"transparent keeps destination", 0, 0},
		{"half", 0.5, 100},
		{"opaque replaces", 1, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(2, 2)
			pm.Fill(Black)
			pm.BlendRect(0, 0, 2, 2, RGB8(200, 200, 200), tt.alpha)
			got := pm.NRGBAAt(1, 1)
			if got.R != tt.want || got.A != 255 {
				t.Errorf("blend = %v, want R=%d A=255", got, tt.want)
			}
		})
	}
}

func TestPixmapRGBAImageSharesMemory(t *testing.T) {
	pm := NewPixmap(3, 3)
	img := pm.RGBAImage()
	img.Set(1, 1, color.RGBA{1, 2, 3, 255})
	if got := pm.NRGBAAt(1, 1); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("shared view write not visible: %v", got)
	}
}

func TestPixmapEncodePNG(t *testing.T) {
	pm := NewPixmap(5, 4)
	pm.Fill(Hex("#87ceeb"))
	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds() != pm.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), pm.Bounds())
	}
}

func TestPixmapScaled(t *testing.T) {
	pm := NewPixmap(12, 6)
	pm.Fill(White)
	small := pm.Scaled(4, 2)
	if small.Bounds().Dx() != 4 || small.Bounds().Dy() != 2 {
		t.Fatalf("Scaled bounds = %v", small.Bounds())
	}
	if r, _, _, _ := small.At(2, 1).RGBA(); r>>8 != 255 {
		t.Errorf("scaled white pixel R = %d", r>>8)
	}
}
