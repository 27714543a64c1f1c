package xform

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b mgl32.Vec3, tol float32) bool {
	return nearSlice(a[:], b[:], tol)
}

func nearM(a, b mgl32.Mat4, tol float32) bool {
	return nearSlice(a[:], b[:], tol)
}

func nearSlice(a, b []float32, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func TestRodrigues(t *testing.T) {
	for _, a := range []Axis{X, Y, Z} {
		for _, deg := range []float32{0, 15, -15, 90, 180, 270, 33.3} {
			have := Rodrigues(deg, a.Unit())
			want := AxisRotation(a, deg)
			if !nearM(have, want, eps) {
				t.Fatalf("Rodrigues(%v, %v)\nhave %v\nwant %v", deg, a, have, want)
			}
		}
	}

	axis := mgl32.Vec3{1, 2, 3}.Normalize()
	have := Rodrigues(40, axis)
	want := mgl32.HomogRotate3D(mgl32.DegToRad(40), axis)
	if !nearM(have, want, eps) {
		t.Fatalf("Rodrigues(40, %v)\nhave %v\nwant %v", axis, have, want)
	}
}

func TestRotation(t *testing.T) {
	if m := Rotation(45, mgl32.Vec3{}); m != mgl32.Ident4() {
		t.Fatalf("Rotation about zero axis\nhave %v\nwant identity", m)
	}
	have := Rotation(30, mgl32.Vec3{0, -1, 0})
	want := AxisRotation(Y, -30)
	if have != want {
		t.Fatalf("Rotation(30, -Y)\nhave %v\nwant %v", have, want)
	}
	have = Rotation(30, mgl32.Vec3{0, 0, 2})
	want = AxisRotation(Z, 30)
	if !nearM(have, want, eps) {
		t.Fatalf("Rotation(30, 2Z)\nhave %v\nwant %v", have, want)
	}
}

func TestNewNode(t *testing.T) {
	n := NewNode(2, 3, 4, mgl32.Vec3{1, 1, 2})
	if n.Matx() != mgl32.Ident4() {
		t.Fatalf("Matx\nhave %v\nwant identity", n.Matx())
	}
	if n.Pos() != (mgl32.Vec3{}) || n.Rot() != (mgl32.Vec3{}) || n.Sc() != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("initial state\nhave pos %v rot %v sc %v", n.Pos(), n.Rot(), n.Sc())
	}
	if d := n.Dims(); d != "{ width: 2, height: 3, depth: 4 }" {
		t.Fatalf("Dims\nhave %q", d)
	}
}

func TestTranslateInverse(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Rotate(30, mgl32.Vec3{0, 1, 0})
	n.Scale(2, 1, 0.5)
	pos, m := n.Pos(), n.Matx()

	v := mgl32.Vec3{12.5, -3, 7}
	n.Translate(v[0], v[1], v[2])
	if p := n.Pos(); !near(p, pos.Add(v), eps) {
		t.Fatalf("Pos after Translate\nhave %v\nwant %v", p, pos.Add(v))
	}
	n.Translate(-v[0], -v[1], -v[2])
	if p := n.Pos(); !near(p, pos, eps) {
		t.Fatalf("Pos after inverse Translate\nhave %v\nwant %v", p, pos)
	}
	if have := n.Matx(); !nearM(have, m, eps) {
		t.Fatalf("Matx after inverse Translate\nhave %v\nwant %v", have, m)
	}
}

func TestTranslateIsWorldFrame(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Rotate(90, mgl32.Vec3{0, 0, 1})
	n.Scale(3, 3, 3)
	n.Translate(10, 0, 0)
	m := n.Matx()
	want := mgl32.Vec3{10, 0, 0}
	if have := (mgl32.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}); !near(have, want, eps) {
		t.Fatalf("translation column\nhave %v\nwant %v", have, want)
	}
	if n.Pos() != want {
		t.Fatalf("Pos\nhave %v\nwant %v", n.Pos(), want)
	}
}

func TestRotateInverse(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Translate(400, 300, 0)
	n.Scale(3, 3, 3)
	n.Rotate(15, mgl32.Vec3{1, 0, 0})
	rot, m := n.Rot(), n.Matx()

	axis := mgl32.Vec3{0, 1, 1}.Normalize()
	n.Rotate(25, axis)
	n.Rotate(-25, axis)
	if have := n.Rot(); !near(have, rot, eps) {
		t.Fatalf("Rot after inverse Rotate\nhave %v\nwant %v", have, rot)
	}
	if have := n.Matx(); !nearM(have, m, 1e-3) {
		t.Fatalf("Matx after inverse Rotate\nhave %v\nwant %v", have, m)
	}
}

func TestRotateAccumulator(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Rotate(15, mgl32.Vec3{-1, 0, 0})
	n.Rotate(15, mgl32.Vec3{0, 1, 0})
	n.Rotate(10, mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{-15, 25, 0}
	if have := n.Rot(); have != want {
		t.Fatalf("Rot\nhave %v\nwant %v", have, want)
	}
}

func TestRotateLocalAxes(t *testing.T) {
	// The second rotation turns about the node's own, already rotated axis.
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Rotate(90, mgl32.Vec3{1, 0, 0})
	n.Rotate(90, mgl32.Vec3{0, 1, 0})

	x, y, z := Apply(n.Matx(), mgl32.Vec3{1, 0, 0})
	if have, want := (mgl32.Vec3{x, y, z}), (mgl32.Vec3{0, 1, 0}); !near(have, want, eps) {
		t.Fatalf("Rx then Ry applied to +X\nhave %v\nwant %v", have, want)
	}
	want := AxisRotation(X, 90).Mul4(AxisRotation(Y, 90))
	if have := n.Matx(); !nearM(have, want, eps) {
		t.Fatalf("Matx\nhave %v\nwant Rx·Ry %v", have, want)
	}

	swapped := NewNode(1, 1, 1, mgl32.Vec3{})
	swapped.Rotate(90, mgl32.Vec3{0, 1, 0})
	swapped.Rotate(90, mgl32.Vec3{1, 0, 0})
	if nearM(swapped.Matx(), n.Matx(), eps) {
		t.Fatalf("rotation order does not matter, want Ry·Rx != Rx·Ry")
	}
}

func TestScaleReadsDiagonal(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Scale(3, 3, 3)
	n.Scale(3, 1, 1)
	if have, want := n.Sc(), (mgl32.Vec3{9, 3, 3}); have != want {
		t.Fatalf("Sc\nhave %v\nwant %v", have, want)
	}

	n.Rotate(90, mgl32.Vec3{0, 0, 1})
	want := mgl32.Vec3{0, 0, 3}
	if have := n.Sc(); !near(have, want, eps) {
		t.Fatalf("Sc after rotation\nhave %v\nwant %v", have, want)
	}
	if have, want := n.LocalScale(), (mgl32.Vec3{9, 3, 3}); have != want {
		t.Fatalf("LocalScale\nhave %v\nwant %v", have, want)
	}
}

func TestApply(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	n.Translate(400, 300, 0)
	n.Scale(3, 3, 3)
	x, y, z := Apply(n.Matx(), mgl32.Vec3{1, 2, 3})
	if x != 403 || y != 306 || z != 9 {
		t.Fatalf("Apply\nhave (%v, %v, %v)\nwant (403, 306, 9)", x, y, z)
	}
}

func TestParseCommands(t *testing.T) {
	cmds, err := ParseCommands("tx+ RY-, sz+\ttz-")
	if err != nil {
		t.Fatalf("ParseCommands: %v", err)
	}
	want := []Command{
		{Op: OpTranslate, Axis: X},
		{Op: OpRotate, Axis: Y, Neg: true},
		{Op: OpScale, Axis: Z},
		{Op: OpTranslate, Axis: Z, Neg: true},
	}
	if len(cmds) != len(want) {
		t.Fatalf("len\nhave %d\nwant %d", len(cmds), len(want))
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Fatalf("cmds[%d]\nhave %+v\nwant %+v", i, cmds[i], want[i])
		}
		if s := cmds[i].String(); s != [...]string{"tx+", "ry-", "sz+", "tz-"}[i] {
			t.Fatalf("cmds[%d].String\nhave %q", i, s)
		}
	}

	for _, bad := range []string{"tx", "qx+", "tw+", "tx*", "tx+ nope"} {
		if _, err := ParseCommands(bad); !errors.Is(err, ErrBadCommand) {
			t.Fatalf("ParseCommands(%q)\nhave %v\nwant ErrBadCommand", bad, err)
		}
	}
}

func TestCommandApply(t *testing.T) {
	n := NewNode(1, 1, 1, mgl32.Vec3{})
	cmds, err := ParseCommands("tx+ ty- rx- sx+ sy-")
	if err != nil {
		t.Fatal(err)
	}
	ApplyAll(n, cmds)
	if have, want := n.Pos(), (mgl32.Vec3{15, -15, 0}); have != want {
		t.Fatalf("Pos\nhave %v\nwant %v", have, want)
	}
	if have, want := n.Rot(), (mgl32.Vec3{-15, 0, 0}); have != want {
		t.Fatalf("Rot\nhave %v\nwant %v", have, want)
	}
	if have, want := n.LocalScale(), (mgl32.Vec3{2.5, -0.5, 1}); !near(have, want, eps) {
		t.Fatalf("LocalScale\nhave %v\nwant %v", have, want)
	}
}
