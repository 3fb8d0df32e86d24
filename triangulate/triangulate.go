// Package triangulate decomposes simple polygons, optionally with holes, into
// triangles that use only the original points.
//
// The approach is the classic sweep-line one: a sweep downward and a sweep
// upward each add diagonals that resolve the vertices which would break
// y-monotonicity, the diagonals cut the region into monotone pieces, and each
// piece is triangulated with a stack walk in linear time.
package triangulate

import "github.com/go-gl/mathgl/mgl64"

// Triangulate a polygon with holes. The result is a flat list of index
// triples. Indices address the outer points followed by each hole's points,
// in the order given, so a hole's first point has index len(polygon).
//
// Winding of the inputs doesn't matter; the outer loop is treated as solid and
// every other loop as a hole. Holes must lie inside the outer loop and must not
// touch it or each other. Triangles always come back counterclockwise.
//
// Polygons with fewer than three distinct points, or no area, produce no
// triangles and no error.
func Triangulate(polygon []mgl64.Vec2, holes ...[]mgl64.Vec2) (result []int, err error) {
	defer func() {
		recoveredErr := HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	data := NewPolygonData(polygon, holes...)
	if data.Empty() {
		return nil, nil
	}
	return data.Triangulate(), nil
}

// Triangulate the polygon and return original indices. This panics with a
// TriangulateError on failure, so use the package level Triangulate unless
// you're already recovering.
func (data *PolygonData) Triangulate() []int {
	if len(data.Points) == 3 {
		loop := data.Loops[0]
		return []int{data.Points[loop[0]].Index, data.Points[loop[1]].Index, data.Points[loop[2]].Index}
	}

	diagonals := CalculateAllDiagonals(data)
	pieces := SplitIntoMonotones(data, diagonals)

	result := make([]int, 0, 3*(len(data.Points)+2*len(data.Loops)))
	for _, piece := range pieces {
		for _, tri := range TriangulateMonotone(data, piece) {
			result = append(result, data.Points[tri[0]].Index, data.Points[tri[1]].Index, data.Points[tri[2]].Index)
		}
	}
	return result
}
