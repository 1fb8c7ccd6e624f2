// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

// Quat is a rotation quaternion. The wire format of the model files
// stores rotations as angle-axis, so every read and write goes through
// AngleAxisToQuat or AngleAxis.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

func (q *Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion. A quaternion with ~zero norm
// normalizes to the identity instead of dividing by zero.
func (q *Quat) Normalize() Quat {
	l := q.Length()
	if l < 1e-6 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// AngleAxisToQuat converts an axis and an angle in radians to a
// quaternion. The axis does not need to be normalized.
func AngleAxisToQuat(x, y, z, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	a := Vec3{x, y, z}
	a = a.Normalize()
	return Quat{a.X * s, a.Y * s, a.Z * s, c}
}

// AngleAxis converts q back to axis plus angle in radians. Near-zero
// rotations return the stable axis (1,0,0) with angle 0 so callers
// never divide by a vanishing sine.
func (q Quat) AngleAxis() (x, y, z, angle float32) {
	n := q.Normalize()
	w := Clamp(float32(-1), n.W, 1)
	angle = 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return 1, 0, 0, 0
	}
	return n.X / s, n.Y / s, n.Z / s, angle
}
