package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/voxelsplace/voxview/vox"
)

// NoiseGrid fills percentage% of an n³ grid with random palette characters.
func NoiseGrid(n int, percentage float64, p vox.Palette, r *rand.Rand) *vox.Grid {
	percentage = max(0, min(100, percentage))
	g := vox.NewGrid(n)
	total := len(g.Cells)
	want := int(float64(total)*(percentage/100.0) + 0.5)
	chars := p.Chars()
	if len(chars) == 0 {
		return g
	}

	// Partial Fisher-Yates: only the first want positions are shuffled.
	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < want; i++ {
		j := i + r.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	for _, i := range idx[:want] {
		g.Cells[i] = chars[r.Intn(len(chars))]
	}
	return g
}

// SphereGrid draws a ball of diameter n with concentric shells, one palette
// character per shell from the outside in.
func SphereGrid(n int, p vox.Palette) *vox.Grid {
	g := vox.NewGrid(n)
	chars := p.Chars()
	if len(chars) == 0 {
		return g
	}
	c := float64(n-1) / 2
	r := float64(n) / 2
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy, dz := float64(x)-c, float64(y)-c, float64(z)-c
				d2 := dx*dx + dy*dy + dz*dz
				if d2 > r*r {
					continue
				}
				shell := int((1 - d2/(r*r)) * float64(len(chars)))
				g.Set(x, y, z, chars[min(shell, len(chars)-1)])
			}
		}
	}
	return g
}

// RunGenerateNoise writes amount noise grids named 0.vox..(amount-1).vox in
// outDir. Each file uses its own seed derived from seed.
func RunGenerateNoise(n int, percentage float64, amount int, seed int64, outDir string) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	p := vox.SpherePalette()
	for i := 0; i < amount; i++ {
		const weyl = uint64(0x9e3779b97f4a7c15)
		s := uint64(seed) ^ (uint64(i)+1)*weyl
		r := rand.New(rand.NewSource(int64(s & 0x7fffffffffffffff)))

		path := filepath.Join(outDir, fmt.Sprintf("%d.vox", i))
		if err := os.WriteFile(path, NoiseGrid(n, percentage, p, r).Text(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// RunGenerateSphere writes a sphere of diameter n to outPath.
func RunGenerateSphere(n int, outPath string) error {
	if n <= 0 {
		return fmt.Errorf("sphere diameter must be positive, got %d", n)
	}
	return os.WriteFile(outPath, SphereGrid(n, vox.SpherePalette()).Text(), 0o644)
}
