package vox

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/voxelsplace/voxview/vlog"
)

// cube2 is a fully filled 2x2x2 grid.
const cube2 = "00\n00\n00\n00\n"

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("ab\r\ncd\r\nef\r\ngh\r\n"))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.N != 2 || string(g.Cells) != "abcdefgh" {
		t.Fatalf("ParseGrid\nhave N=%d %q\nwant N=2 \"abcdefgh\"", g.N, g.Cells)
	}
	if ch := g.At(1, 0, 1); ch != 'f' {
		t.Fatalf("At(1, 0, 1)\nhave %q\nwant 'f'", ch)
	}

	if _, err := ParseGrid(strings.NewReader("")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty input\nhave %v\nwant ErrEmpty", err)
	}
	if _, err := ParseGrid(strings.NewReader("\nabc")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty first line\nhave %v\nwant ErrEmpty", err)
	}
	if _, err := ParseGrid(strings.NewReader("000\n000\n")); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short input\nhave %v\nwant ErrTruncated", err)
	}
}

func TestGridText(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("a b\n" + strings.Repeat(" ", 24)))
	if err != nil {
		t.Fatal(err)
	}
	g2, err := ParseGrid(bytes.NewReader(g.Text()))
	if err != nil {
		t.Fatal(err)
	}
	if g2.N != 3 || !bytes.Equal(g.Cells, g2.Cells) {
		t.Fatalf("Text round trip\nhave %q\nwant %q", g2.Cells, g.Cells)
	}
}

func TestNewShapeCube(t *testing.T) {
	s, err := LoadShape(strings.NewReader(cube2), Palette{'0': 0})
	if err != nil {
		t.Fatalf("LoadShape: %v", err)
	}
	if n := s.Store().Len(); n != 8 {
		t.Fatalf("Len\nhave %d\nwant 8", n)
	}
	for x := -1; x <= 0; x++ {
		for y := -1; y <= 0; y++ {
			for z := -1; z <= 0; z++ {
				if !s.Store().Has(Key{x, y, z}) {
					t.Fatalf("Has(%d, %d, %d)\nhave false\nwant true", x, y, z)
				}
			}
		}
	}
	if s.Store().Has(Key{1, 0, 0}) {
		t.Fatalf("Has(1, 0, 0)\nhave true\nwant false")
	}
	if w, h, d := s.Width(), s.Height(), s.Depth(); w != 2 || h != 2 || d != 2 {
		t.Fatalf("dims\nhave %d %d %d\nwant 2 2 2", w, h, d)
	}
	if first := s.Store().All()[0]; first != (Key{-1, -1, -1}) {
		t.Fatalf("first voxel\nhave %v\nwant {-1 -1 -1}", first)
	}
}

func TestNewShapeOrder(t *testing.T) {
	// x-fastest, then y, then z.
	g := &Grid{N: 2, Cells: []byte("a  b   c")}
	s, err := NewShape(g, Palette{'a': 1, 'b': 2, 'c': 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []Key{{-1, -1, -1}, {0, 0, -1}, {0, 0, 0}}
	all := s.Store().All()
	if len(all) != len(want) {
		t.Fatalf("All\nhave %v\nwant %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("All[%d]\nhave %v\nwant %v", i, all[i], want[i])
		}
	}
	if c, _ := s.Store().Color(Key{0, 0, 0}); c != 3 {
		t.Fatalf("Color\nhave %d\nwant 3", c)
	}
}

func TestNewShapeUnknownChar(t *testing.T) {
	_, err := LoadShape(strings.NewReader("00\n0x\n00\n00\n"), Palette{'0': 0})
	if !errors.Is(err, ErrUnknownChar) {
		t.Fatalf("LoadShape\nhave %v\nwant ErrUnknownChar", err)
	}
	var uc *UnknownCharError
	if !errors.As(err, &uc) || uc.Char != 'x' || uc.X != 1 || uc.Y != 1 || uc.Z != 0 {
		t.Fatalf("UnknownCharError\nhave %+v\nwant 'x' at (1, 1, 0)", uc)
	}
}

func TestPaletteMismatchError(t *testing.T) {
	err := error(&PaletteMismatchError{Used: "abc", Given: 2})
	if !errors.Is(err, ErrPaletteMismatch) {
		t.Fatalf("errors.Is(ErrPaletteMismatch)\nhave false\nwant true")
	}
	if msg := err.Error(); !strings.Contains(msg, "expected 3 color groups, 2 given") {
		t.Fatalf("Error\nhave %q", msg)
	}
}

func TestShapeAt(t *testing.T) {
	// Voxel keys are centered, so only the non-negative corner is visible to At.
	s, err := LoadShape(strings.NewReader(cube2), Palette{'0': 0})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y, z int
		want    bool
	}{
		{0, 0, 0, true},
		{-1, 0, 0, false},
		{0, -1, -1, false},
		{1, 0, 0, false},
		{2, 0, 0, false},
		{3, 0, 0, false},
	}
	for _, c := range cases {
		if have := s.At(c.x, c.y, c.z); have != c.want {
			t.Fatalf("At(%d, %d, %d)\nhave %v\nwant %v", c.x, c.y, c.z, have, c.want)
		}
	}

	// Upper bound is inclusive.
	g := NewGrid(2)
	s2, err := NewShape(g, Palette{})
	if err != nil {
		t.Fatal(err)
	}
	s2.Store().Save(Key{2, 2, 2}, 0)
	if !s2.At(2, 2, 2) {
		t.Fatalf("At on the inclusive upper bound\nhave false\nwant true")
	}
}

func TestLoadShapeCompressed(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(cube2))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zs := enc.EncodeAll([]byte(cube2), nil)
	enc.Close()

	for name, data := range map[string][]byte{"gzip": gz.Bytes(), "zstd": zs} {
		s, err := LoadShape(bytes.NewReader(data), Palette{'0': 0})
		if err != nil {
			t.Fatalf("%s: LoadShape: %v", name, err)
		}
		if n := s.Store().Len(); n != 8 {
			t.Fatalf("%s: Len\nhave %d\nwant 8", name, n)
		}
	}
}

func TestLoadShapeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.vox")
	if err := os.WriteFile(path, []byte(cube2), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShapeFile(path, Palette{'0': 0}); err != nil {
		t.Fatalf("LoadShapeFile: %v", err)
	}
	_, err := LoadShapeFile(path, Palette{'1': 0})
	if !errors.Is(err, ErrUnknownChar) || !strings.Contains(err.Error(), path) {
		t.Fatalf("LoadShapeFile with bad palette\nhave %v", err)
	}
}

func TestLoadShapeTimesFailures(t *testing.T) {
	var buf bytes.Buffer
	vlog.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer vlog.SetLogger(nil)

	inputs := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"truncated", "00\n00\n00\n", ErrTruncated},
		{"unknown char", cube2, ErrUnknownChar},
		{"bad snapshot", snapshotMagic + "\x01\x00\x01garbage", ErrSnapshot},
	}
	for _, in := range inputs {
		buf.Reset()
		_, err := LoadShape(strings.NewReader(in.data), Palette{'1': 0})
		if !errors.Is(err, in.want) {
			t.Fatalf("%s\nhave %v\nwant %v", in.name, err, in.want)
		}
		out := buf.String()
		if !strings.Contains(out, "region=\"Shape loading\"") || !strings.Contains(out, "error=") {
			t.Fatalf("%s: no timing record for the failed load\n%s", in.name, out)
		}
		if strings.Contains(out, "shape loaded") {
			t.Fatalf("%s: failed load reported as loaded\n%s", in.name, out)
		}
	}
}

func TestPalette(t *testing.T) {
	p, err := ParsePalette("f=360, e=200,d=100")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 || p['f'] != 360 || p['e'] != 200 || p['d'] != 100 {
		t.Fatalf("ParsePalette\nhave %v", p)
	}
	if s := p.String(); s != "d=100,e=200,f=360" {
		t.Fatalf("String\nhave %q", s)
	}
	for _, bad := range []string{"", "ff=1", "f:1", "f=x", " =3"} {
		if _, err := ParsePalette(bad); !errors.Is(err, ErrBadPalette) {
			t.Fatalf("ParsePalette(%q)\nhave %v\nwant ErrBadPalette", bad, err)
		}
	}

	p, err = ReadPaletteJSON(strings.NewReader(`{"f": 360, "g": 250}`))
	if err != nil {
		t.Fatal(err)
	}
	if p['g'] != 250 || len(p) != 2 {
		t.Fatalf("ReadPaletteJSON\nhave %v", p)
	}
	if _, err := ReadPaletteJSON(strings.NewReader(`{"fg": 1}`)); !errors.Is(err, ErrBadPalette) {
		t.Fatalf("ReadPaletteJSON multi-char key\nhave %v\nwant ErrBadPalette", err)
	}
}
