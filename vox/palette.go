package vox

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Palette maps a grid character to its color group, a hue in degrees.
type Palette map[byte]int

// ErrBadPalette is returned for palette descriptions that cannot be parsed.
var ErrBadPalette = errors.New("invalid palette")

// DefaultPalette is used when no palette is given.
func DefaultPalette() Palette { return Palette{'0': 360} }

// SpherePalette matches the sample sphere shape.
func SpherePalette() Palette {
	return Palette{'f': 360, 'e': 200, 'd': 100, 'i': 150, 'h': 225, 'g': 250}
}

// Chars returns the palette characters in ascending order.
func (p Palette) Chars() []byte {
	cs := make([]byte, 0, len(p))
	for c := range p {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	return cs
}

// String formats p the way ParsePalette reads it.
func (p Palette) String() string {
	var b strings.Builder
	for i, c := range p.Chars() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(c)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(p[c]))
	}
	return b.String()
}

// ParsePalette parses "f=360,e=200,...".
func ParsePalette(s string) (Palette, error) {
	p := Palette{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ch, hue, ok := strings.Cut(part, "=")
		if !ok || len(ch) != 1 || ch == " " {
			return nil, fmt.Errorf("%w: entry %q", ErrBadPalette, part)
		}
		h, err := strconv.Atoi(strings.TrimSpace(hue))
		if err != nil {
			return nil, fmt.Errorf("%w: hue of %q: %w", ErrBadPalette, ch, err)
		}
		p[ch[0]] = h
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadPalette)
	}
	return p, nil
}

// ReadPaletteJSON decodes a palette written as {"f": 360, "e": 200}.
func ReadPaletteJSON(r io.Reader) (Palette, error) {
	var raw map[string]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPalette, err)
	}
	p := make(Palette, len(raw))
	for ch, hue := range raw {
		if len(ch) != 1 || ch == " " {
			return nil, fmt.Errorf("%w: key %q", ErrBadPalette, ch)
		}
		p[ch[0]] = hue
	}
	return p, nil
}
