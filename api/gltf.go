package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/vox"
)

// NamedShape is a shape with the name its glTF node gets.
type NamedShape struct {
	Name  string
	Shape *vox.Shape
}

// BuildGLTF meshes every shape and puts each on its own node. The node's
// TRS is the shape transform, so a viewer shows it where Render does.
func BuildGLTF(shapes []NamedShape) (*gltf.Document, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("no shapes")
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxview"

	// Colors come from COLOR_0, the material only sets the surface response.
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	for i, ns := range shapes {
		s := ns.Shape
		mesh := s.Grid().Mesh()
		if len(mesh.Vertices) == 0 {
			return nil, fmt.Errorf("shape %d (%s): no visible voxels", i, ns.Name)
		}

		positions := make([][3]float32, len(mesh.Vertices))
		colors := make([][4]float32, len(mesh.Vertices))
		for vi, v := range mesh.Vertices {
			positions[vi] = v.Position
			hue, ok := s.Palette()[v.Char]
			if !ok {
				return nil, fmt.Errorf("shape %d (%s): %w", i, ns.Name, &vox.UnknownCharError{Char: v.Char})
			}
			c := render.Hue(hue)
			colors[vi] = [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
		}
		indices := make([]uint32, len(mesh.Indices))
		copy(indices, mesh.Indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
				gltf.NORMAL:   uint32(modeler.WriteNormal(doc, flatNormals(positions, indices))),
				gltf.COLOR_0:  uint32(modeler.WriteColor(doc, colors)),
			},
			Indices:  gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
			Material: gltf.Index(0),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: ns.Name, Primitives: []*gltf.Primitive{prim}})

		q := s.Orientation()
		node := &gltf.Node{
			Name:        ns.Name,
			Mesh:        gltf.Index(uint32(len(doc.Meshes) - 1)),
			Translation: s.Pos(),
			Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
			Scale:       s.LocalScale(),
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc, nil
}

// ShapesToGLB returns the binary glTF of shapes.
func ShapesToGLB(shapes []NamedShape) ([]byte, error) {
	doc, err := BuildGLTF(shapes)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// flatNormals gives every vertex the normal of the last triangle using it.
// Quads never share vertices, so each face stays flat.
func flatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		a := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		b := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := [3]float32{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}
		if l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))); l > 0 {
			n[0] /= l
			n[1] /= l
			n[2] /= l
		}
		normals[v0], normals[v1], normals[v2] = n, n, n
	}
	return normals
}
