package render

import (
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxview/vlog"
	"github.com/voxelsplace/voxview/vox"
	"github.com/voxelsplace/voxview/xform"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// DepthDivider scales projected z into the depth buffer.
	DepthDivider = 100000
	// SplatRadius is the half width of the square drawn per voxel.
	SplatRadius = 2

	emptyDepth = -1
)

// Source is anything with a composed transform and voxels, usually a
// *vox.Shape.
type Source interface {
	Matx() mgl32.Mat4
	Store() *vox.Store
}

// Options configures a render.
type Options struct {
	Width, Height int
	Background    color.RGBA
}

// Option modifies Options.
type Option func(*Options)

// DefaultOptions returns the 800x600 black canvas.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: color.RGBA{A: 255},
	}
}

// WithSize sets the canvas size used by NewFrameFor.
func WithSize(w, h int) Option {
	return func(o *Options) {
		o.Width, o.Height = w, h
	}
}

// WithBackground sets the clear color.
func WithBackground(c color.RGBA) Option {
	return func(o *Options) {
		o.Background = c
	}
}

// Configure folds opts over the defaults.
func Configure(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFrameFor returns a frame sized by opts.
func NewFrameFor(opts ...Option) *Frame {
	o := Configure(opts...)
	return NewFrame(o.Width, o.Height)
}

// Stats summarizes a render.
type Stats struct {
	Projected int // store entries visited, duplicates included
	OffScreen int
	Occluded  int
	Painted   int // voxels that won the depth test and were splatted
}

func (s Stats) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("projected", s.Projected),
		slog.Int("offscreen", s.OffScreen),
		slog.Int("occluded", s.Occluded),
		slog.Int("painted", s.Painted),
	}
}

// Render clears f and draws every voxel of src as a splat. The frame size
// wins over any WithSize option.
//
// Each voxel is pushed through the composed matrix; its truncated x, y pick
// a pixel and z/DepthDivider is its depth. A voxel is drawn only when it is
// strictly inside the frame (row and column 0 are never hit) and nearer
// than what the pixel already holds, larger depth being nearer.
func Render(f *Frame, src Source, opts ...Option) Stats {
	o := Configure(opts...)
	w, h := f.Width(), f.Height()
	span := vlog.Start("Transforming shape vertices")

	f.Clear(o.Background)
	depth := newDepthBuffer(w * h)
	m := src.Matx()

	var st Stats
	for k, hue := range src.Store().Entries() {
		st.Projected++
		x, y, z := xform.Apply(m, k.Vec())
		xi, yi := int(x), int(y)
		if xi < 0 || xi >= w || yi < 0 || yi >= h {
			st.OffScreen++
			continue
		}
		d := z / DepthDivider
		if !(0 < xi && xi < w && 0 < yi && yi < h) {
			st.OffScreen++
			continue
		}
		i := yi*w + xi
		if depth[i] >= d {
			st.Occluded++
			continue
		}
		depth[i] = d

		c := Hue(hue)
		for sh := int(y - SplatRadius); float32(sh) <= y+SplatRadius; sh++ {
			for sw := int(x - SplatRadius); float32(sw) <= x+SplatRadius; sw++ {
				if 0 < sw && sw < w && 0 < sh && sh < h {
					f.Set(sw, sh, c)
				}
			}
		}
		st.Painted++
	}

	span.End(st.attrs()...)
	return st
}

func newDepthBuffer(n int) []float32 {
	buf := make([]float32, n)
	if n == 0 {
		return buf
	}
	buf[0] = emptyDepth
	for i := 1; i < n; i *= 2 {
		copy(buf[i:], buf[:i])
	}
	return buf
}
