package xform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a placed object: bounds plus a composed transform.
//
// The authoritative state is the decomposition T(position) · R(orientation) ·
// S(local scale); the composed matrix is rebuilt from it after every
// operation, so the tracked vectors can never drift from the matrix.
type Node struct {
	width, height, depth int
	center               mgl32.Vec3

	matx     mgl32.Mat4
	position mgl32.Vec3
	rotation mgl32.Vec3 // sum of axis*angle impulses, display only
	scaling  mgl32.Vec3 // diagonal of matx

	orient mgl32.Quat
	local  mgl32.Vec3
}

// NewNode returns an identity-placed node with the given bounds.
func NewNode(width, height, depth int, center mgl32.Vec3) *Node {
	n := &Node{
		width:  width,
		height: height,
		depth:  depth,
		center: center,
		orient: mgl32.QuatIdent(),
		local:  mgl32.Vec3{1, 1, 1},
	}
	n.compose()
	return n
}

func (n *Node) compose() {
	m := mgl32.Translate3D(n.position[0], n.position[1], n.position[2])
	m = m.Mul4(n.orient.Mat4())
	m = m.Mul4(mgl32.Scale3D(n.local[0], n.local[1], n.local[2]))
	n.matx = m
	n.scaling = mgl32.Vec3{m.At(0, 0), m.At(1, 1), m.At(2, 2)}
}

// Translate moves the node by (x, y, z) in its un-rotated, un-scaled frame.
func (n *Node) Translate(x, y, z float32) {
	n.position = n.position.Add(mgl32.Vec3{x, y, z})
	n.compose()
}

// Scale scales the node along its own axes. Translation and rotation are
// left out of the operation. The scale reported by Sc is read back from the
// diagonal of the resulting matrix.
func (n *Node) Scale(x, y, z float32) {
	n.local = mgl32.Vec3{n.local[0] * x, n.local[1] * y, n.local[2] * z}
	n.compose()
}

// Rotate rotates the node by deg degrees about axis, pivoting on its own
// position. axis is taken in the node's current, already rotated frame.
// The rotation accumulator grows by axis*deg component-wise.
func (n *Node) Rotate(deg float32, axis mgl32.Vec3) {
	r := Rotation(deg, axis)
	n.orient = n.orient.Mul(mgl32.Mat4ToQuat(r)).Normalize()
	n.rotation = n.rotation.Add(axis.Mul(deg))
	n.compose()
}

func (n *Node) Width() int             { return n.width }
func (n *Node) Height() int            { return n.height }
func (n *Node) Depth() int             { return n.depth }
func (n *Node) Center() mgl32.Vec3     { return n.center }
func (n *Node) Matx() mgl32.Mat4       { return n.matx }
func (n *Node) Pos() mgl32.Vec3        { return n.position }
func (n *Node) Rot() mgl32.Vec3        { return n.rotation }
func (n *Node) Sc() mgl32.Vec3         { return n.scaling }
func (n *Node) LocalScale() mgl32.Vec3 { return n.local }

// Orientation returns the unit quaternion holding the node's actual rotation.
func (n *Node) Orientation() mgl32.Quat { return n.orient }

// Dims formats the bounds as { width: W, height: H, depth: D }.
func (n *Node) Dims() string {
	return curlify("width", strconv.Itoa(n.width), "height", strconv.Itoa(n.height), "depth", strconv.Itoa(n.depth))
}

func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.Dims())
	b.WriteString("\n\tCenter: ")
	b.WriteString(Curlify(n.center))
	b.WriteString("\n\tPosition: ")
	b.WriteString(Curlify(n.position))
	b.WriteString("\n\tRotation: ")
	b.WriteString(Curlify(n.rotation))
	b.WriteString("\n\tScale: ")
	b.WriteString(Curlify(n.scaling))
	return b.String()
}

// Curlify formats v as { x: .., y: .., z: .. }.
func Curlify(v mgl32.Vec3) string {
	f := func(x float32) string { return fmt.Sprintf("%f", x) }
	return curlify("x", f(v[0]), "y", f(v[1]), "z", f(v[2]))
}

func curlify(kv ...string) string {
	var b strings.Builder
	b.WriteString("{ ")
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kv[i])
		b.WriteString(": ")
		b.WriteString(kv[i+1])
	}
	b.WriteString(" }")
	return b.String()
}
