package triangulate

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/dbg"
)

// The boundary graph of a polygon with holes. Every loop is linked into a
// cycle of points and edges, with the outer loop counterclockwise and holes
// clockwise, so that the interior of the region is always on the left.
type PolygonData struct {
	Points []PolygonPoint
	Edges  []PolygonEdge
	// Point ids of each loop, in boundary order. The outer loop comes first,
	// if it survived cleanup.
	Loops [][]int
}

// Build the boundary graph. The point indices recorded on each PolygonPoint
// address the concatenation of outer and holes, in the order given, so a caller
// can map triangles back onto its own arrays.
//
// A duplicated closing point is dropped, as are consecutive duplicates. If the
// outer loop has fewer than three points left, or no area, the result has no
// loops at all. Degenerate holes are ignored.
func NewPolygonData(outer []mgl64.Vec2, holes ...[]mgl64.Vec2) *PolygonData {
	data := &PolygonData{}
	if !data.addLoop(outer, 0, true) {
		return data
	}
	offset := len(outer)
	for _, hole := range holes {
		data.addLoop(hole, offset, false)
		offset += len(hole)
	}
	return data
}

func (data *PolygonData) addLoop(loop []mgl64.Vec2, offset int, outer bool) bool {
	positions, indices := cleanLoop(loop)
	if len(positions) < 3 {
		return false
	}
	area := SignedArea(positions)
	if area == 0 {
		return false
	}

	ids := make([]int, len(positions))
	for i, p := range positions {
		ids[i] = len(data.Points)
		data.Points = append(data.Points, PolygonPoint{P: p, Index: offset + indices[i]})
	}

	// Outer loops run counterclockwise and holes clockwise. Rather than
	// reversing the caller's points we link them up backwards.
	if (area > 0) != outer {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}

	for i, a := range ids {
		b := ids[CircularIndex(i+1, len(ids))]
		edge := len(data.Edges)
		data.Edges = append(data.Edges, PolygonEdge{PointOne: a, PointTwo: b})
		data.Points[a].EdgeTwo = edge
		data.Points[b].EdgeOne = edge
	}
	data.Loops = append(data.Loops, ids)
	return true
}

// Drop consecutive duplicate points, including a closing point that repeats
// the first one. Returns the surviving points along with their indices in loop.
func cleanLoop(loop []mgl64.Vec2) ([]mgl64.Vec2, []int) {
	positions := make([]mgl64.Vec2, 0, len(loop))
	indices := make([]int, 0, len(loop))
	for i, p := range loop {
		if len(positions) > 0 && p.ApproxEqualThreshold(positions[len(positions)-1], Tolerance) {
			continue
		}
		positions = append(positions, p)
		indices = append(indices, i)
	}
	for len(positions) > 1 && positions[0].ApproxEqualThreshold(positions[len(positions)-1], Tolerance) {
		positions = positions[:len(positions)-1]
		indices = indices[:len(indices)-1]
	}
	return positions, indices
}

func (data *PolygonData) Empty() bool {
	return len(data.Loops) == 0
}

func (data *PolygonData) Pos(id int) mgl64.Vec2 {
	return data.Points[id].P
}

// The point after id along its loop.
func (data *PolygonData) Next(id int) int {
	return data.Edges[data.Points[id].EdgeTwo].PointTwo
}

// The point before id along its loop.
func (data *PolygonData) Last(id int) int {
	return data.Edges[data.Points[id].EdgeOne].PointOne
}

// Positions of the given point ids.
func (data *PolygonData) Positions(ids []int) []mgl64.Vec2 {
	result := make([]mgl64.Vec2, len(ids))
	for i, id := range ids {
		result[i] = data.Points[id].P
	}
	return result
}

// Total signed area of all loops. Holes are clockwise, so this is the area of
// the region.
func (data *PolygonData) Area() float64 {
	var area float64
	for _, loop := range data.Loops {
		area += SignedArea(data.Positions(loop))
	}
	return area
}

// Even-odd point-in-region test. This is provided primarily for testing.
func (data *PolygonData) ContainsPointByEvenOdd(p mgl64.Vec2) bool {
	return data.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts edges crossing the ray from p
// toward +X, using the event order to settle points level with a vertex.
func (data *PolygonData) CrossingCount(p mgl64.Vec2) int {
	crossingCount := 0
	for _, edge := range data.Edges {
		a, b := data.Pos(edge.PointOne), data.Pos(edge.PointTwo)
		if a.Y() == b.Y() || Below(a, p) == Below(b, p) {
			continue
		}
		x := a.X() + (p.Y()-a.Y())*(b.X()-a.X())/(b.Y()-a.Y())
		if x > p.X() {
			crossingCount++
		}
	}
	return crossingCount
}

func (data *PolygonData) String() string {
	var builder strings.Builder
	for i, loop := range data.Loops {
		fmt.Fprintf(&builder, "loop %d:", i)
		for _, id := range loop {
			fmt.Fprintf(&builder, " %s%v", dbg.Name(&data.Points[id]), data.Points[id].P)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
