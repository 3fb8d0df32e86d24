package triangulate

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/dbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation of a polygon with holes is valid. The
// first loop is the outer boundary. The rules are:
// 1. Every point of every loop is used, and no other index appears.
// 2. Every boundary segment is an edge of some triangle.
// 3. Every triangle is counterclockwise, with nonzero area.
// 4. There are n + 2h - 2 triangles for n points and h holes.
// 5. The sum of the areas of all triangles is equal to the area of the region.
func AssertValidTriangulation(t *testing.T, loops [][]mgl64.Vec2, triangles []int) {
	t.Helper()
	var points []mgl64.Vec2
	for _, loop := range loops {
		points = append(points, loop...)
	}

	if os.Getenv("MESHKIT_DEBUG_DRAW") != "" {
		defer func() {
			if t.Failed() {
				dbg.ShowTriangulation(loops, points, triangles, 4)
			}
		}()
	}

	require.Equal(t, 0, len(triangles)%3, "index count must be a multiple of three")

	used := make(map[int]struct{})
	for _, index := range triangles {
		require.True(t, index >= 0 && index < len(points), "index %d out of range", index)
		used[index] = struct{}{}
	}
	require.Len(t, used, len(points), "every point must be used")

	edges := make(map[[2]int]struct{})
	var triangleArea float64
	for i := 0; i < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		area := TriangleSignedArea(points[a], points[b], points[c])
		require.Greater(t, area, 0.0, "triangle %v %v %v is not counterclockwise", points[a], points[b], points[c])
		triangleArea += area
		for _, edge := range [][2]int{{a, b}, {b, c}, {c, a}} {
			edges[normalizedEdge(edge[0], edge[1])] = struct{}{}
		}
	}

	offset := 0
	for _, loop := range loops {
		for i := range loop {
			j := CircularIndex(i+1, len(loop))
			_, ok := edges[normalizedEdge(offset+i, offset+j)]
			require.True(t, ok, "segment %v-%v is not an edge of any triangle", loop[i], loop[j])
		}
		offset += len(loop)
	}

	holes := len(loops) - 1
	assert.Len(t, triangles, 3*(len(points)+2*holes-2))

	expectedArea := math.Abs(SignedArea(loops[0]))
	for _, hole := range loops[1:] {
		expectedArea -= math.Abs(SignedArea(hole))
	}
	require.InDelta(t, expectedArea, triangleArea, 1e-6*math.Max(1, expectedArea), "sum of the areas of all triangles is equal to the area of the polygon")
}

func normalizedEdge(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

// Compare the region covered by a set of counterclockwise pieces against the
// region of a polygon, by sampling a grid of points over both.
func validatePiecesBySampling(t *testing.T, data *PolygonData, pieces [][]int) {
	t.Helper()
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, point := range data.Points {
		minX = math.Min(minX, point.P.X())
		minY = math.Min(minY, point.P.Y())
		maxX = math.Max(maxX, point.P.X())
		maxY = math.Max(maxY, point.P.Y())
	}

	// Pad the bounding box by 10%, and use an irrational-ish offset so samples
	// don't land exactly on vertices.
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding + 0.0123
	minY -= yPadding + 0.0321
	maxX += xPadding
	maxY += yPadding
	step := math.Max(maxX-minX, maxY-minY) / 50

	pieceData := make([]*PolygonData, len(pieces))
	for i, piece := range pieces {
		pieceData[i] = NewPolygonData(data.Positions(piece))
	}

	for y := minY; y <= maxY; y += step {
		for x := minX; x <= maxX; x += step {
			p := mgl64.Vec2{x, y}
			count := 0
			for _, piece := range pieceData {
				if piece.ContainsPointByEvenOdd(p) {
					count++
				}
			}
			if data.ContainsPointByEvenOdd(p) {
				assert.Equal(t, 1, count, "point %v should be in exactly one piece", p)
			} else {
				assert.Equal(t, 0, count, "point %v should not be in any piece", p)
			}
		}
	}
}

// A piece is y-monotone if walking its boundary changes between going down
// and going up exactly twice.
func assertMonotone(t *testing.T, data *PolygonData, piece []int) {
	t.Helper()
	changes := 0
	n := len(piece)
	for i := range piece {
		prev := data.Pos(piece[CircularIndex(i-1, n)])
		p := data.Pos(piece[i])
		next := data.Pos(piece[CircularIndex(i+1, n)])
		if Above(prev, p) != Above(p, next) {
			changes++
		}
	}
	assert.Equal(t, 2, changes, "piece is not monotone: %v", data.Positions(piece))
}
