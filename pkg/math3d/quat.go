package math3d

// Quat is a rotation quaternion (x, y, z, w) as stored by glTF nodes.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the no-op rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// Mat4 converts the quaternion into a rotation matrix.
// A zero quaternion is treated as identity.
func (q Quat) Mat4() Mat4 {
	n := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if n == 0 {
		return Identity()
	}
	s := 2 / n
	xx, yy, zz := q.X*q.X*s, q.Y*q.Y*s, q.Z*q.Z*s
	xy, xz, yz := q.X*q.Y*s, q.X*q.Z*s, q.Y*q.Z*s
	wx, wy, wz := q.W*q.X*s, q.W*q.Y*s, q.W*q.Z*s

	return Mat4{
		1 - yy - zz, xy + wz, xz - wy, 0,
		xy - wz, 1 - xx - zz, yz + wx, 0,
		xz + wy, yz - wx, 1 - xx - yy, 0,
		0, 0, 0, 1,
	}
}
