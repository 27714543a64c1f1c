package vox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/voxview/vlog"
	"github.com/voxelsplace/voxview/xform"
)

var (
	ErrUnknownChar     = errors.New("unknown voxel character")
	ErrPaletteMismatch = errors.New("palette does not cover grid")
)

// UnknownCharError reports a grid character missing from the palette.
type UnknownCharError struct {
	Char    byte
	X, Y, Z int
}

func (e *UnknownCharError) Error() string {
	return fmt.Sprintf("unknown char %q at (%d, %d, %d)", e.Char, e.X, e.Y, e.Z)
}

func (e *UnknownCharError) Unwrap() error { return ErrUnknownChar }

// PaletteMismatchError reports a grid using more characters than the palette
// has entries.
type PaletteMismatchError struct {
	Used  string
	Given int
}

func (e *PaletteMismatchError) Error() string {
	return fmt.Sprintf("expected %d color groups, %d given; used %q", len(e.Used), e.Given, e.Used)
}

func (e *PaletteMismatchError) Unwrap() error { return ErrPaletteMismatch }

// Shape is a voxel cloud with its placement.
type Shape struct {
	*xform.Node
	store   *Store
	palette Palette
	grid    *Grid
}

// NewShape builds a shape from g. Every non-blank cell becomes a voxel,
// offset by -N/2 on each axis so the shape is centered on the origin.
func NewShape(g *Grid, p Palette) (*Shape, error) {
	n := g.N
	store := NewStore()
	var used []byte
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				ch := g.At(x, y, z)
				if ch == Blank {
					continue
				}
				if bytes.IndexByte(used, ch) < 0 {
					used = append(used, ch)
				}
				hue, ok := p[ch]
				if !ok {
					return nil, &UnknownCharError{Char: ch, X: x, Y: y, Z: z}
				}
				store.Save(Key{x - n/2, y - n/2, z - n/2}, hue)
			}
		}
	}
	if len(used) > len(p) {
		return nil, &PaletteMismatchError{Used: string(used), Given: len(p)}
	}

	half := float32(n / 2)
	return &Shape{
		Node:    xform.NewNode(n, n, n, mgl32.Vec3{half, half, half}),
		store:   store,
		palette: p,
		grid:    g,
	}, nil
}

// Store returns the shape's voxels.
func (s *Shape) Store() *Store { return s.store }

// Palette returns the palette the shape was loaded with.
func (s *Shape) Palette() Palette { return s.palette }

// Grid returns the source grid.
func (s *Shape) Grid() *Grid { return s.grid }

// At reports whether a voxel exists at (x, y, z). Coordinates outside
// [0,width]×[0,height]×[0,depth] are never occupied.
func (s *Shape) At(x, y, z int) bool {
	if x < 0 || x > s.Width() || y < 0 || y > s.Height() || z < 0 || z > s.Depth() {
		return false
	}
	return s.store.Has(Key{x, y, z})
}

func (s *Shape) String() string {
	return fmt.Sprintf("Shape:\n\t%s\n\tShape has %d vertices", s.Node, s.store.Len())
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// LoadShape reads a shape from r. zstd and gzip input is decompressed first.
// Compiled snapshots carry their own palette, so p only applies to text.
func LoadShape(r io.Reader, p Palette) (*Shape, error) {
	span := vlog.Start("Shape loading")
	s, err := loadShape(r, p)
	if err != nil {
		span.End(slog.String("error", err.Error()))
		return nil, err
	}
	span.End(slog.Int("voxels", s.store.Len()))
	vlog.Logger().Info("shape loaded", slog.String("dims", s.Dims()), slog.String("position", xform.Curlify(s.Pos())))
	return s, nil
}

func loadShape(r io.Reader, p Palette) (*Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if data, err = decompress(data); err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte(snapshotMagic)) {
		return DecodeSnapshot(data)
	}
	g, err := ParseGrid(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewShape(g, p)
}

// LoadShapeFile opens path and calls LoadShape.
func LoadShapeFile(path string, p Palette) (*Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := LoadShape(f, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return data, nil
}
