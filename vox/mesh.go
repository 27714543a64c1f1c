package vox

// Vertex is a mesh corner tagged with the grid character it came from.
type Vertex struct {
	Position [3]float32
	Char     byte
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type faceDir struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var faceDirs = []faceDir{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

func (g *Grid) cell(p [3]int) byte {
	for _, c := range p {
		if c < 0 || c >= g.N {
			return Blank
		}
	}
	return g.At(p[0], p[1], p[2])
}

// Mesh builds the visible surface of g with greedy quad merging. Faces
// between two filled cells are dropped; coplanar faces of the same character
// are merged into rectangles. Positions are shifted by -N/2 so they line up
// with the shape's voxel keys.
func (g *Grid) Mesh() *Mesh {
	mesh := &Mesh{}
	n := g.N
	off := float32(n / 2)

	for _, dir := range faceDirs {
		perp := 3 - dir.u - dir.v
		step := 1
		if dir.normal[perp] < 0 {
			step = -1
		}

		for p := 0; p < n; p++ {
			mask := make([][]byte, n)
			done := make([][]bool, n)
			for i := range mask {
				mask[i] = make([]byte, n)
				done[i] = make([]bool, n)
			}

			for u := 0; u < n; u++ {
				for v := 0; v < n; v++ {
					var pos [3]int
					pos[dir.u], pos[dir.v], pos[perp] = u, v, p
					ch := g.cell(pos)
					if ch == Blank {
						continue
					}
					adj := pos
					adj[perp] += step
					if g.cell(adj) == Blank {
						mask[u][v] = ch
					}
				}
			}

			for u := 0; u < n; u++ {
				for v := 0; v < n; {
					ch := mask[u][v]
					if ch == 0 || done[u][v] {
						v++
						continue
					}
					w := 1
					for v+w < n && mask[u][v+w] == ch && !done[u][v+w] {
						w++
					}
					h := 1
				grow:
					for u+h < n {
						for k := v; k < v+w; k++ {
							if mask[u+h][k] != ch || done[u+h][k] {
								break grow
							}
						}
						h++
					}
					for a := u; a < u+h; a++ {
						for b := v; b < v+w; b++ {
							done[a][b] = true
						}
					}
					mesh.addQuad(dir, perp, [3]int{p, u, v}, w, h, ch, off)
					v += w
				}
			}
		}
	}
	return mesh
}

func (m *Mesh) addQuad(dir faceDir, perp int, start [3]int, w, h int, ch byte, off float32) {
	var base [3]float32
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp]++
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	corner := func(du, dv int) Vertex {
		var p [3]float32
		for i := range p {
			p[i] = base[i] + float32(dir.du[i]*du+dir.dv[i]*dv) - off
		}
		return Vertex{Position: p, Char: ch}
	}
	quad := [4]Vertex{corner(0, 0), corner(h, 0), corner(h, w), corner(0, w)}
	if (dir.normal[perp] < 0) != (perp == 1) {
		quad[1], quad[3] = quad[3], quad[1]
	}

	base0 := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, quad[:]...)
	m.Indices = append(m.Indices, base0, base0+1, base0+2, base0, base0+2, base0+3)
}
