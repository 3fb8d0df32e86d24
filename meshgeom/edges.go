package meshgeom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/vecmath"
)

// Edge is a pair of vertex indices.
type Edge struct {
	A, B int
}

func undirected(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// countEdges counts the triangles using each undirected edge. Edges are
// listed in the order they are first seen.
func countEdges(indices []int) (order []Edge, counts map[Edge]int) {
	counts = make(map[Edge]int)
	for i := 0; i+2 < len(indices); i += 3 {
		for k := 0; k < 3; k++ {
			e := undirected(indices[i+k], indices[i+(k+1)%3])
			if counts[e] == 0 {
				order = append(order, e)
			}
			counts[e]++
		}
	}
	return order, counts
}

// FindEdges returns every undirected edge of a triangle list once, smaller
// index first.
func FindEdges(indices []int) []Edge {
	order, _ := countEdges(indices)
	return order
}

// FindBorderEdges returns the edges used by exactly one triangle. A closed
// manifold mesh has none.
func FindBorderEdges(indices []int) []Edge {
	order, counts := countEdges(indices)
	var border []Edge
	for _, e := range order {
		if counts[e] == 1 {
			border = append(border, e)
		}
	}
	return border
}

type positionEdge [2]mgl64.Vec3

// FindSharpEdges returns the edges where neighbouring faces meet at more than
// minimumAngle degrees. Neighbours are found by the positions of the edge's
// ends, so meshes with split vertices work too. Each sharp edge is reported
// once, with the indices of the triangle that completes it. Degenerate
// triangles are ignored.
func FindSharpEdges(positions []mgl64.Vec3, indices []int, minimumAngle float64) []Edge {
	threshold := mgl64.DegToRad(minimumAngle)
	seen := make(map[positionEdge]mgl64.Vec3)
	var sharp []Edge
	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]int{indices[i], indices[i+1], indices[i+2]}
		n := vecmath.FaceNormal(positions[tri[0]], positions[tri[1]], positions[tri[2]])
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			// The neighbour walks the shared edge the other way.
			if other, ok := seen[positionEdge{positions[b], positions[a]}]; ok {
				if math.Acos(mgl64.Clamp(n.Dot(other), -1, 1)) > threshold {
					sharp = append(sharp, Edge{a, b})
				}
				continue
			}
			seen[positionEdge{positions[a], positions[b]}] = n
		}
	}
	return sharp
}
