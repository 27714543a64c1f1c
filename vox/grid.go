package vox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Blank marks an empty grid cell.
const Blank = ' '

var (
	ErrEmpty     = errors.New("empty voxel grid")
	ErrTruncated = errors.New("voxel grid truncated")
)

// Grid is a cube of N³ characters stored x-fastest, then y, then z.
type Grid struct {
	N     int
	Cells []byte
}

// NewGrid returns a blank grid of side n.
func NewGrid(n int) *Grid {
	return &Grid{N: n, Cells: bytes.Repeat([]byte{Blank}, n*n*n)}
}

func (g *Grid) index(x, y, z int) int { return x + y*g.N + z*g.N*g.N }

// At returns the character at (x, y, z).
func (g *Grid) At(x, y, z int) byte { return g.Cells[g.index(x, y, z)] }

// Set stores ch at (x, y, z).
func (g *Grid) Set(x, y, z int, ch byte) { g.Cells[g.index(x, y, z)] = ch }

// ParseGrid reads the text voxel format. The length of the first line is the
// side N; every line break is then dropped and the first N³ characters left
// are the grid.
func ParseGrid(r io.Reader) (*Grid, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	n := bytes.IndexByte(buf, '\n')
	if n < 0 {
		n = len(buf)
	}
	if n > 0 && buf[n-1] == '\r' {
		n--
	}
	if n == 0 {
		return nil, ErrEmpty
	}

	cells := make([]byte, 0, len(buf))
	for _, ch := range buf {
		if ch == '\n' || ch == '\r' {
			continue
		}
		cells = append(cells, ch)
	}
	total := n * n * n
	if len(cells) < total {
		return nil, fmt.Errorf("%w: side %d needs %d cells, have %d", ErrTruncated, n, total, len(cells))
	}
	return &Grid{N: n, Cells: cells[:total]}, nil
}

// Text writes g back in the text format, one row of N characters per line.
func (g *Grid) Text() []byte {
	var b bytes.Buffer
	for i := 0; i < len(g.Cells); i += g.N {
		b.Write(g.Cells[i : i+g.N])
		b.WriteByte('\n')
	}
	return b.Bytes()
}
