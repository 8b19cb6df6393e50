package raycam

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"228b22", color.NRGBA{34, 139, 34, 255}},
		{"#87CEEB", color.NRGBA{135, 206, 235, 255}},
		{"00000080", color.NRGBA{0, 0, 0, 128}},
		{"nope", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in).NRGBA(); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdd8Clamps(t *testing.T) {
	c := RGB8(250, 10, 100).Add8(10, -20, 5)
	want := color.NRGBA{255, 0, 105, 255}
	if got := c.NRGBA(); got != want {
		t.Errorf("Add8 = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5).NRGBA()
	if got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("Lerp midpoint = %v", got)
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	in := color.NRGBA{12, 34, 56, 255}
	if got := FromColor(in).NRGBA(); got != in {
		t.Errorf("FromColor round trip = %v, want %v", got, in)
	}
}
