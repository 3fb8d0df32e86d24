package triangulate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// Triangulate a whole polygon that is known to be monotone.
func triangulateMonotonePolygon(t *testing.T, points []mgl64.Vec2) {
	t.Helper()
	data := NewPolygonData(points)
	var triangles []int
	for _, tri := range TriangulateMonotone(data, data.Loops[0]) {
		triangles = append(triangles, data.Points[tri[0]].Index, data.Points[tri[1]].Index, data.Points[tri[2]].Index)
	}
	AssertValidTriangulation(t, [][]mgl64.Vec2{points}, triangles)
}

func TestTriangulateMonotone(t *testing.T) {
	// Triangles. These are special-cased, so these should be an no-op.
	// Included in case that implementation changes.
	t.Run("simple triangle", func(t *testing.T) {
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 0}, {1, 1}, {0, 2}})
	})

	t.Run("wacky triangle", func(t *testing.T) {
		triangulateMonotonePolygon(t, []mgl64.Vec2{{-10, 0}, {43, 2}, {0, 2}})
	})

	t.Run("triangle with horizontal", func(t *testing.T) {
		// A horizontal segment is always acceptable in a triangle. It will only
		// affect which chain the segment is considered to be part of
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}})
	})

	// Quadrilaterals.
	t.Run("square", func(t *testing.T) {
		// A square has horizontal segments, but it is still strictly y-monotone
		// because of the lexiographic ordering.
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	})

	t.Run("diamond", func(t *testing.T) {
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 0}, {1, 1}, {0, 2}, {-1, 1}})
	})

	t.Run("quad chevron", func(t *testing.T) {
		// Our first non-convex quadrilateral, shaped like this:
		/*
			 C
			 \ \
			  \  \
			  D   B
			 /  /
			/ /
			A
		*/
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 0}, {10, 10}, {0, 20}, {5, 10}})
	})

	t.Run("clockwise input is linked counterclockwise", func(t *testing.T) {
		triangulateMonotonePolygon(t, []mgl64.Vec2{{0, 20}, {10, 10}, {0, 0}, {5, 10}})
	})

	t.Run("degenerate piece", func(t *testing.T) {
		data := NewPolygonData([]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}})
		assert.Panics(t, func() {
			TriangulateMonotone(data, []int{0, 1})
		})
	})

	// Fixtures
	for _, fixtureName := range []string{"monotone_asteroid", "monotone_c"} {
		for variant, loops := range fixtureVariants(LoadFixture(fixtureName)) {
			if variant == "rotated 90" {
				// Monotone in x, not y.
				continue
			}
			loops := loops
			t.Run(fixtureName+" ("+variant+")", func(t *testing.T) {
				triangulateMonotonePolygon(t, loops[0])
			})
		}
	}
}
