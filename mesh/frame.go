package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-12

// perpendicular returns a unit vector perpendicular to v, crossing it with the
// coordinate axis it is least parallel to.
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	x, y, z := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	axis := mgl64.Vec3{0, 0, 1}
	if x <= y && x <= z {
		axis = mgl64.Vec3{1, 0, 0}
	} else if y <= z {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return normalizeOr(v.Cross(axis), mgl64.Vec3{1, 0, 0})
}

// normalizeOr normalizes v, or returns fallback if v has no usable length.
func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length < epsilon {
		return fallback
	}
	return v.Mul(1 / length)
}

// orthonormalFrame returns forward and up made orthonormal, and left such
// that forward, left, up is right handed. up is replaced by a perpendicular
// when it is parallel to forward.
func orthonormalFrame(forward, up mgl64.Vec3) (f, left, u mgl64.Vec3) {
	f = normalizeOr(forward, mgl64.Vec3{1, 0, 0})
	left = up.Cross(f)
	if left.Len() < epsilon {
		left = perpendicular(f)
	}
	left = left.Normalize()
	u = f.Cross(left)
	return f, left, u
}

func faceNormal(p0, p1, p2 mgl64.Vec3) mgl64.Vec3 {
	return normalizeOr(p1.Sub(p0).Cross(p2.Sub(p0)), mgl64.Vec3{})
}
