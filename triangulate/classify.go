package triangulate

import "github.com/logrusorgru/aurora"

// The role a vertex plays in a sweep. This is always derived from the
// vertex's position and its neighbors, never stored, so it can't go stale when
// the sweep direction changes.
//
//	Start    Split      Stop     Merge
//	  v      \  /v\  /  \ v /     \   /
//	 / \      \/   \/    \ /    v  \ /
//	/   \                        /\/\
//
// "Below" here means later in the sweep order.
type PointClass int

const (
	// Both neighbors below, interior angle under 180 degrees.
	Start PointClass = iota
	// Both neighbors above, interior angle under 180 degrees.
	Stop
	// Both neighbors below, interior angle over 180 degrees.
	Split
	// Both neighbors above, interior angle over 180 degrees.
	Merge
	// One neighbor above and one below.
	Regular
)

func (c PointClass) String() string {
	switch c {
	case Start:
		return "Start"
	case Stop:
		return "Stop"
	case Split:
		return "Split"
	case Merge:
		return "Merge"
	case Regular:
		return "Regular"
	}
	return "Unknown"
}

// Coloured class name for debug output.
func (c PointClass) DbgName() string {
	switch c {
	case Split, Merge:
		return aurora.Red(c.String()).String()
	case Regular:
		return aurora.Cyan(c.String()).String()
	}
	return aurora.Green(c.String()).String()
}

// Classify a point for a sweep in the given direction.
func (data *PolygonData) Classify(id int, direction SweepDirection) PointClass {
	p := direction.view(data.Pos(id))
	prev := direction.view(data.Pos(data.Last(id)))
	next := direction.view(data.Pos(data.Next(id)))

	prevBelow := Above(p, prev)
	nextBelow := Above(p, next)
	// The interior is on the left, so a left turn is a convex corner. Rotating
	// the plane doesn't change the sign of the turn.
	convex := Turn(prev, p, next) > 0

	switch {
	case prevBelow && nextBelow:
		if convex {
			return Start
		}
		return Split
	case !prevBelow && !nextBelow:
		if convex {
			return Stop
		}
		return Merge
	}
	return Regular
}

// For a regular vertex, whether the interior of the region lies to its right in
// the sweep's view. This is the case when the boundary runs downward through
// the vertex, so the previous point is the one above.
func (data *PolygonData) interiorIsRight(id int, direction SweepDirection) bool {
	p := direction.view(data.Pos(id))
	prev := direction.view(data.Pos(data.Last(id)))
	return Above(prev, p)
}
