package triangulate

import (
	"fmt"
	"math"
	"strings"

	"github.com/osuushi/meshkit/dbg"
)

// A boundary edge currently crossing the sweep line, paired with its helper:
// the most recently processed vertex that can see the edge horizontally.
type StatusEntry struct {
	Edge   int
	Helper int
}

// The sweep status. It only ever holds edges that have the interior of the
// region on their right, so SearchLeft always finds the edge bounding the
// region a vertex sits in. The status is small in practice (it holds one edge
// per interior span on the sweep line), so a flat slice is used rather than a
// balanced tree.
type StatusHelper struct {
	data      *PolygonData
	direction SweepDirection
	entries   []StatusEntry
}

func NewStatusHelper(data *PolygonData, direction SweepDirection) *StatusHelper {
	return &StatusHelper{data: data, direction: direction}
}

func (s *StatusHelper) Len() int {
	return len(s.entries)
}

func (s *StatusHelper) Add(edge, helper int) {
	s.entries = append(s.entries, StatusEntry{Edge: edge, Helper: helper})
}

func (s *StatusHelper) Remove(edge int) {
	for i, entry := range s.entries {
		if entry.Edge == edge {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
	fatalf("edge %d is not in the sweep status", edge)
}

// Find the entry whose edge is nearest to the left of the point, measured along
// the point's sweep line. Returns nil if there is no edge to the left.
//
// Horizontal edges have no single crossing, so they are treated as sitting at
// their rightmost end, which is where the sweep left them.
func (s *StatusHelper) SearchLeft(id int) *StatusEntry {
	p := s.direction.view(s.data.Pos(id))
	var found *StatusEntry
	bestDistance := math.Inf(1)
	for i := range s.entries {
		edge := s.data.Edges[s.entries[i].Edge]
		a := s.direction.view(s.data.Pos(edge.PointOne))
		b := s.direction.view(s.data.Pos(edge.PointTwo))

		var x float64
		if dy := b.Y() - a.Y(); dy == 0 {
			x = math.Max(a.X(), b.X())
		} else {
			x = a.X() + (p.Y()-a.Y())*(b.X()-a.X())/dy
		}

		distance := p.X() - x
		if distance >= 0 && distance < bestDistance {
			bestDistance = distance
			found = &s.entries[i]
		}
	}
	return found
}

func (s *StatusHelper) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "status (%s):", s.direction)
	for _, entry := range s.entries {
		edge := s.data.Edges[entry.Edge]
		fmt.Fprintf(&builder, " [%s->%s helper %s]",
			dbg.Name(&s.data.Points[edge.PointOne]),
			dbg.Name(&s.data.Points[edge.PointTwo]),
			dbg.Name(&s.data.Points[entry.Helper]),
		)
	}
	return builder.String()
}
