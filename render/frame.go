// Package render rasterizes voxel stores into RGBA frames.
package render

import (
	"image"
	"image/color"

	xxhash "github.com/cespare/xxhash/v2"
)

// Frame is the raster buffer a store is drawn into.
type Frame struct {
	img *image.RGBA
}

// NewFrame returns a transparent w×h frame.
func NewFrame(w, h int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Width returns the frame width.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// Clear fills every pixel with c.
func (f *Frame) Clear(c color.RGBA) {
	pix := f.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
}

// Set paints the pixel at (x, y). Out of range writes are dropped.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.Width() || y < 0 || y >= f.Height() {
		return
	}
	f.img.SetRGBA(x, y, c)
}

// At returns the pixel at (x, y), zero outside the frame.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= f.Width() || y < 0 || y >= f.Height() {
		return color.RGBA{}
	}
	return f.img.RGBAAt(x, y)
}

// Image exposes the underlying image. It is shared, not copied.
func (f *Frame) Image() *image.RGBA { return f.img }

// Digest fingerprints the pixels.
func (f *Frame) Digest() uint64 { return xxhash.Sum64(f.img.Pix) }
