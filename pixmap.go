package raycam

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Pixmap represents a rectangular pixel buffer.
//
// Pixels are stored non-premultiplied, 4 bytes per pixel, which makes the
// buffer directly usable as the Pix slice of an image.RGBA for opaque content.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	n := c.NRGBA()
	i := (y*p.width + x) * 4
	p.data[i+0] = n.R
	p.data[i+1] = n.G
	p.data[i+2] = n.B
	p.data[i+3] = n.A
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	return FromColor(p.NRGBAAt(x, y))
}

// NRGBAAt returns the stored 8-bit value of a pixel, or transparent black
// when out of bounds.
func (p *Pixmap) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Fill fills the entire pixmap with a color.
func (p *Pixmap) Fill(c RGBA) {
	n := c.NRGBA()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = n.R
		p.data[i+1] = n.G
		p.data[i+2] = n.B
		p.data[i+3] = n.A
	}
}

// FillRect writes c into the w×h block at (x, y), clipped to the pixmap.
func (p *Pixmap) FillRect(x, y, w, h int, c RGBA) {
	x0, y0, x1, y1, ok := p.clip(x, y, w, h)
	if !ok {
		return
	}
	n := c.NRGBA()
	for yy := y0; yy < y1; yy++ {
		i := (yy*p.width + x0) * 4
		for xx := x0; xx < x1; xx++ {
			p.data[i+0] = n.R
			p.data[i+1] = n.G
			p.data[i+2] = n.B
			p.data[i+3] = n.A
			i += 4
		}
	}
}

// BlendPixel composites c over the existing pixel using alpha in [0, 1].
// The destination stays opaque.
func (p *Pixmap) BlendPixel(x, y int, c RGBA, alpha float64) {
	p.BlendRect(x, y, 1, 1, c, alpha)
}

// BlendRect composites c over every pixel of the w×h block at (x, y)
// using source-over with the given alpha.
func (p *Pixmap) BlendRect(x, y, w, h int, c RGBA, alpha float64) {
	x0, y0, x1, y1, ok := p.clip(x, y, w, h)
	if !ok {
		return
	}
	if alpha <= 0 {
		return
	}
	if alpha >= 1 {
		p.FillRect(x, y, w, h, c)
		return
	}
	n := c.NRGBA()
	inv := 1 - alpha
	for yy := y0; yy < y1; yy++ {
		i := (yy*p.width + x0) * 4
		for xx := x0; xx < x1; xx++ {
			p.data[i+0] = uint8(clamp255(float64(p.data[i+0])*inv + float64(n.R)*alpha + 0.5))
			p.data[i+1] = uint8(clamp255(float64(p.data[i+1])*inv + float64(n.G)*alpha + 0.5))
			p.data[i+2] = uint8(clamp255(float64(p.data[i+2])*inv + float64(n.B)*alpha + 0.5))
			p.data[i+3] = 255
			i += 4
		}
	}
}

func (p *Pixmap) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, p.width), min(y+h, p.height)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// RGBAImage returns an *image.RGBA that shares memory with the pixmap.
// Drawing into it modifies the pixmap; content is expected to be opaque.
func (p *Pixmap) RGBAImage() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// ToImage converts the pixmap to a new image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// Scaled returns a resampled copy of the pixmap with the given size.
func (p *Pixmap) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), p.RGBAImage(), p.Bounds(), xdraw.Src, nil)
	return dst
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
