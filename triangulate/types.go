package triangulate

import "github.com/go-gl/mathgl/mgl64"

// Points and edges live in flat arenas owned by a PolygonData, and refer to
// each other by integer id. Nothing is ever removed from an arena during a
// triangulation, so ids stay valid for its whole lifetime.

// A vertex of the boundary graph. Index is the position of the point in the
// caller's input, which is what ends up in the output triangles. EdgeOne is the
// incoming boundary edge (previous point to this one) and EdgeTwo is the
// outgoing one.
type PolygonPoint struct {
	P       mgl64.Vec2
	Index   int
	EdgeOne int
	EdgeTwo int
}

// A directed boundary edge from PointOne to PointTwo. After orientation is
// normalized, the interior of the region is always on the left of an edge.
type PolygonEdge struct {
	PointOne int
	PointTwo int
}

// A diagonal between two point ids, normalized so that A < B.
type Diagonal struct {
	A, B int
}

func newDiagonal(a, b int) Diagonal {
	if a > b {
		a, b = b, a
	}
	return Diagonal{a, b}
}

// A stack of point ids, used by the monotone triangulation.
type IndexStack []int

// The two sweep directions. The upward sweep is the downward sweep run on the
// polygon rotated by 180 degrees, which reverses the event order while keeping
// every loop's orientation.
type SweepDirection int

const (
	SweepDown SweepDirection = iota
	SweepUp
)

// The point as seen by a sweep in this direction.
func (d SweepDirection) view(p mgl64.Vec2) mgl64.Vec2 {
	if d == SweepUp {
		return mgl64.Vec2{-p.X(), -p.Y()}
	}
	return p
}

func (d SweepDirection) String() string {
	if d == SweepUp {
		return "up"
	}
	return "down"
}
