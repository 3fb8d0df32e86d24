package triangulate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const Tolerance = 1e-9

// Tolerance based equality, for the handful of places where exact comparison
// would shave off absurdly thin triangles.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// The event order of the downward sweep. Larger Y comes first, and if two
// points have the same Y value, the one with the smaller X value is "above".
// This simulates a slightly rotated coordinate system, so that no two events
// ever share a sweep line.
//
// This must be exact rather than tolerance based, since it is used as a sort
// comparator and has to be transitive.
func Above(a, b mgl64.Vec2) bool {
	if a.Y() != b.Y() {
		return a.Y() > b.Y()
	}
	return a.X() < b.X()
}

func Below(a, b mgl64.Vec2) bool {
	return Above(b, a)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// The z component of the cross product of (b - a) and (c - b). Positive when
// the path a->b->c turns left.
func Turn(a, b, c mgl64.Vec2) float64 {
	return Cross(b.Sub(a), c.Sub(b))
}

func Cross(u, v mgl64.Vec2) float64 {
	return u.X()*v.Y() - u.Y()*v.X()
}

// Shoelace signed area. Positive for counterclockwise loops.
func SignedArea(points []mgl64.Vec2) float64 {
	var sum float64
	for i, p := range points {
		q := points[CircularIndex(i+1, len(points))]
		sum += p.X()*q.Y() - q.X()*p.Y()
	}
	return sum / 2
}

func IsCCW(points []mgl64.Vec2) bool {
	return SignedArea(points) > 0
}

func IsCW(points []mgl64.Vec2) bool {
	return SignedArea(points) < 0
}

func TriangleSignedArea(a, b, c mgl64.Vec2) float64 {
	return Cross(b.Sub(a), c.Sub(a)) / 2
}

func (s *IndexStack) Push(i int) {
	*s = append(*s, i)
}

// Pop returns -1 if the stack is empty.
func (s *IndexStack) Pop() int {
	if len(*s) == 0 {
		return -1
	}
	i := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return i
}

func (s *IndexStack) Peek() int {
	if len(*s) == 0 {
		return -1
	}
	return (*s)[len(*s)-1]
}

func (s *IndexStack) Empty() bool {
	return len(*s) == 0
}
