package triangulate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDiagonals(t *testing.T) {
	t.Run("convex polygons need none", func(t *testing.T) {
		data := NewPolygonData([]mgl64.Vec2{{0, 0}, {2, -1}, {4, 0}, {4, 3}, {1, 4}})
		assert.Empty(t, CalculateDiagonals(data, SweepDown))
		assert.Empty(t, CalculateDiagonals(data, SweepUp))
	})

	t.Run("split vertex connects upward", func(t *testing.T) {
		// A notch cut up into the bottom edge:
		/*
			6-----------5
			|           |
			|     2     |
			|    / \    |
			0---1   3---4
		*/
		data := NewPolygonData([]mgl64.Vec2{{0, 0}, {2, 0}, {3, 2}, {4, 0}, {6, 0}, {6, 4}, {0, 4}})
		down := CalculateDiagonals(data, SweepDown)
		require.Len(t, down, 1)
		// The top right corner was the last vertex to see the left edge before
		// the sweep reached the notch apex, so it is the helper.
		assert.Equal(t, Diagonal{2, 5}, down[0])
		// Upward, the apex is a merge vertex, so that sweep adds nothing for it.
		assert.Empty(t, CalculateDiagonals(data, SweepUp))
	})

	t.Run("both sweeps are needed with holes", func(t *testing.T) {
		loops := LoadFixture("square_with_holes")
		data := NewPolygonData(loops[0], loops[1:]...)
		down := CalculateDiagonals(data, SweepDown)
		up := CalculateDiagonals(data, SweepUp)
		// One diagonal per hole top in the downward sweep, and one per hole
		// bottom in the upward one.
		assert.Len(t, down, 3)
		assert.Len(t, up, 3)
		// One diagonal is found by both sweeps.
		assert.Len(t, CalculateAllDiagonals(data), 5)
	})
}

func TestSplitIntoMonotones(t *testing.T) {
	t.Run("no diagonals gives the polygon back", func(t *testing.T) {
		data := NewPolygonData([]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
		pieces := SplitIntoMonotones(data, nil)
		require.Len(t, pieces, 1)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, pieces[0])
	})

	t.Run("one diagonal gives two counterclockwise pieces", func(t *testing.T) {
		data := NewPolygonData([]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
		pieces := SplitIntoMonotones(data, []Diagonal{{0, 2}})
		require.Len(t, pieces, 2)
		for _, piece := range pieces {
			assert.Len(t, piece, 3)
			assert.True(t, IsCCW(data.Positions(piece)))
		}
	})

	for _, name := range fixtureNames {
		for variant, loops := range fixtureVariants(LoadFixture(name)) {
			loops := loops
			t.Run(name+" ("+variant+")", func(t *testing.T) {
				data := NewPolygonData(loops[0], loops[1:]...)
				pieces := SplitIntoMonotones(data, CalculateAllDiagonals(data))
				for _, piece := range pieces {
					assert.True(t, IsCCW(data.Positions(piece)), "piece is not counterclockwise")
					assertMonotone(t, data, piece)
				}
				validatePiecesBySampling(t, data, pieces)
			})
		}
	}
}
