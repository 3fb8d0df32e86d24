package triangulate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// A directed half edge of the subdivision made by the boundary plus the
// diagonals. Boundary edges appear once, in loop direction. Diagonals appear
// twice, once each way.
type halfEdge struct {
	from, to int
	used     bool
}

// Split the region into monotone pieces along the given diagonals. Each piece
// is returned as a list of point ids in counterclockwise order.
//
// Every face of the subdivision is traced by walking half edges. Arriving at a
// vertex, the walk leaves along the outgoing half edge making the tightest
// clockwise turn from the reversed incoming direction, which keeps the face on
// the left. That choice is a property of the geometry alone, so each half edge
// belongs to exactly one face, and every walk closes up where it started.
func SplitIntoMonotones(data *PolygonData, diagonals []Diagonal) [][]int {
	halfEdges := make([]halfEdge, 0, len(data.Edges)+2*len(diagonals))
	outgoing := make([][]int, len(data.Points))
	addHalfEdge := func(from, to int) {
		outgoing[from] = append(outgoing[from], len(halfEdges))
		halfEdges = append(halfEdges, halfEdge{from: from, to: to})
	}
	for _, edge := range data.Edges {
		addHalfEdge(edge.PointOne, edge.PointTwo)
	}
	for _, diagonal := range diagonals {
		addHalfEdge(diagonal.A, diagonal.B)
		addHalfEdge(diagonal.B, diagonal.A)
	}

	var pieces [][]int
	for start := range halfEdges {
		if halfEdges[start].used {
			continue
		}
		var piece []int
		current := start
		for {
			if len(piece) > len(halfEdges) {
				fatalf("monotone walk from point %d did not close", data.Points[halfEdges[start].from].Index)
			}
			halfEdges[current].used = true
			piece = append(piece, halfEdges[current].from)
			current = nextHalfEdge(data, halfEdges, outgoing, current)
			if current == start {
				break
			}
			if halfEdges[current].used {
				fatalf("monotone walk from point %d reused an edge", data.Points[halfEdges[start].from].Index)
			}
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

func nextHalfEdge(data *PolygonData, halfEdges []halfEdge, outgoing [][]int, current int) int {
	from, at := halfEdges[current].from, halfEdges[current].to
	back := data.Pos(from).Sub(data.Pos(at))

	best := -1
	bestAngle := math.Inf(1)
	for _, candidate := range outgoing[at] {
		angle := clockwiseAngle(back, data.Pos(halfEdges[candidate].to).Sub(data.Pos(at)))
		if angle < bestAngle {
			bestAngle = angle
			best = candidate
		}
	}
	if best < 0 {
		fatalf("point %d has no outgoing edge", data.Points[at].Index)
	}
	return best
}

// The clockwise angle swept turning from u to v, in (0, 2pi]. A half edge
// leading straight back (angle zero) is ranked last rather than first.
func clockwiseAngle(u, v mgl64.Vec2) float64 {
	angle := math.Atan2(Cross(v, u), v.Dot(u))
	if angle <= 0 {
		angle += 2 * math.Pi
	}
	return angle
}
