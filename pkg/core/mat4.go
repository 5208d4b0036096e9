package core

import "math"

// Mat4 is a 4x4 matrix stored in row-major order, used for camera and
// CSG Transform-node rotations.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity matrix
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul returns the matrix product m * other
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// MulPoint transforms a point (w=1) by the matrix
func (m Mat4) MulPoint(v Vec3) Vec3 {
	x := m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]
	y := m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]
	z := m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]
	return Vec3{x, y, z}
}

// MulDirection transforms a direction (w=0) by the matrix, ignoring
// translation
func (m Mat4) MulDirection(v Vec3) Vec3 {
	x := m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z
	y := m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z
	z := m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z
	return Vec3{x, y, z}
}

// Translation4 builds a translation matrix
func Translation4(t Vec3) Mat4 {
	m := Identity4()
	m[0][3] = t.X
	m[1][3] = t.Y
	m[2][3] = t.Z
	return m
}

// Inverse computes the inverse of a rigid matrix (rotation plus
// translation). Uses the transpose-of-rotation trick rather than a general
// Gauss-Jordan solve, so the result is wrong for a matrix whose 3x3 block
// carries any scale.
func (m Mat4) Inverse() Mat4 {
	var r Mat4
	// Transpose the 3x3 rotation/scale block
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	// Undo the translation: t' = -R^T * t
	t := Vec3{m[0][3], m[1][3], m[2][3]}
	inv := r.MulDirection(t)
	r[0][3] = -inv.X
	r[1][3] = -inv.Y
	r[2][3] = -inv.Z
	r[3][3] = 1
	return r
}

// Quaternion represents a unit rotation quaternion.
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionIdentity returns the identity rotation
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds the quaternion representing a rotation of
// angle radians about axis (assumed unit length).
func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// Mul returns the Hamilton product q*other, i.e. the rotation that applies
// other first, then q.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// QuaternionFromEulerXYZ composes three axis-angle quaternions about X, Y,
// then Z, in that order: applying the result to a vector is equivalent to
// rotating about X first, then Y, then Z.
func QuaternionFromEulerXYZ(euler Vec3) Quaternion {
	qx := QuaternionFromAxisAngle(Vec3{X: 1}, euler.X)
	qy := QuaternionFromAxisAngle(Vec3{Y: 1}, euler.Y)
	qz := QuaternionFromAxisAngle(Vec3{Z: 1}, euler.Z)
	return qz.Mul(qy).Mul(qx)
}

// Mat4 converts the quaternion to its equivalent 4x4 rotation matrix
func (q Quaternion) Mat4() Mat4 {
	m := Identity4()
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	m[0][0] = 1 - 2*(yy+zz)
	m[0][1] = 2 * (xy - wz)
	m[0][2] = 2 * (xz + wy)

	m[1][0] = 2 * (xy + wz)
	m[1][1] = 1 - 2*(xx+zz)
	m[1][2] = 2 * (yz - wx)

	m[2][0] = 2 * (xz - wy)
	m[2][1] = 2 * (yz + wx)
	m[2][2] = 1 - 2*(xx+yy)

	return m
}

// Rotate rotates v by the euler angles (radians), applied about X, then Y,
// then Z — the convention used by CSG Transform nodes and by Camera.Rotate.
func (v Vec3) Rotate(euler Vec3) Vec3 {
	if euler == (Vec3{}) {
		return v
	}
	return QuaternionFromEulerXYZ(euler).Mat4().MulDirection(v)
}
