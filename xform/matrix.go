// Package xform implements the affine transform stack that places a voxel
// shape on screen.
package xform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis names one of the three basis axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "?"
}

// Unit returns the basis vector of a.
func (a Axis) Unit() mgl32.Vec3 {
	var v mgl32.Vec3
	v[a] = 1
	return v
}

// Translation returns the homogeneous translation by (x, y, z).
func Translation(x, y, z float32) mgl32.Mat4 { return mgl32.Translate3D(x, y, z) }

// Scaling returns the homogeneous scale by (x, y, z).
func Scaling(x, y, z float32) mgl32.Mat4 { return mgl32.Scale3D(x, y, z) }

// AxisRotation returns a rotation of deg degrees about a single basis axis.
func AxisRotation(a Axis, deg float32) mgl32.Mat4 {
	rad := mgl32.DegToRad(deg)
	switch a {
	case X:
		return mgl32.HomogRotate3DX(rad)
	case Y:
		return mgl32.HomogRotate3DY(rad)
	default:
		return mgl32.HomogRotate3DZ(rad)
	}
}

// Rodrigues returns a rotation of deg degrees about axis using Rodrigues'
// rotation formula. axis is expected to be of unit length; it is used as is.
func Rodrigues(deg float32, axis mgl32.Vec3) mgl32.Mat4 {
	rad := float64(mgl32.DegToRad(deg))
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))
	t := 1 - c
	rx, ry, rz := axis[0], axis[1], axis[2]

	m := mgl32.Ident4()
	m.Set(0, 0, c+rx*rx*t)
	m.Set(0, 1, rx*ry*t-rz*s)
	m.Set(0, 2, rx*rz*t+ry*s)

	m.Set(1, 0, ry*rx*t+rz*s)
	m.Set(1, 1, c+ry*ry*t)
	m.Set(1, 2, ry*rz*t-rx*s)

	m.Set(2, 0, rz*rx*t-ry*s)
	m.Set(2, 1, rz*ry*t+rx*s)
	m.Set(2, 2, c+rz*rz*t)
	return m
}

// Rotation returns a rotation of deg degrees about axis. Signed basis axes use
// the single-axis form; any other axis is normalized and goes through
// Rodrigues. A zero axis yields the identity.
func Rotation(deg float32, axis mgl32.Vec3) mgl32.Mat4 {
	if a, sign, ok := basis(axis); ok {
		return AxisRotation(a, sign*deg)
	}
	if axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return Rodrigues(deg, axis.Normalize())
}

// basis reports whether v is ±1 along exactly one axis.
func basis(v mgl32.Vec3) (Axis, float32, bool) {
	for i := range v {
		j, k := (i+1)%3, (i+2)%3
		if v[j] != 0 || v[k] != 0 {
			continue
		}
		if v[i] == 1 || v[i] == -1 {
			return Axis(i), v[i], true
		}
	}
	return 0, 0, false
}

// Apply multiplies the homogeneous point (p, 1) by m and divides by the
// resulting w component.
func Apply(m mgl32.Mat4, p mgl32.Vec3) (x, y, z float32) {
	v := m.Mul4x1(p.Vec4(1))
	w := v[3]
	return v[0] / w, v[1] / w, v[2] / w
}
