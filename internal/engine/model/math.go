package model

import "github.com/go-gl/mathgl/mgl32"

// TransformMatrix builds T(pos) * Rx * Ry * Rz * S(scale) with angles in degrees.
func TransformMatrix(pos, rotationDeg, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(pos[0], pos[1], pos[2])
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rotationDeg[0])))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotationDeg[1])))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDeg[2])))
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// TransformPoint applies a 4x4 matrix to a point.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Normalize returns a unit vector in the same direction as v, or +Y for
// near-zero input.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	length := v.Len()
	if length < 0.0001 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Mul(1 / length)
}
