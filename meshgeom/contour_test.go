package meshgeom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var up = mgl64.Vec3{0, 0, 1}

func TestContourFacet(t *testing.T) {
	m := &mesh.Mesh{
		Positions:       []mgl64.Vec3{{0, 0, -1}, {1, 0, 1}, {0, 1, 1}, {0, 0, 2}, {0, 0, -2}, {1, 0, 0}},
		TriangleIndices: []int{0, 1, 2},
	}
	c, err := NewContourHelper(mgl64.Vec3{}, up.Mul(3), m)
	require.NoError(t, err)
	assert.Equal(t, -1.0, c.Distance(0))

	f := c.ContourFacet(0, 1, 2)
	assert.Equal(t, FacetCut, f.Kind)
	assert.Equal(t, Facet{Kind: FacetCut, Isolated: 0, A: 1, B: 2, TA: 0.5, TB: 0.5}, f)
	// The kept part runs from the cut on B's edge to the cut on A's.
	assert.Equal(t, Segment{{0, 0.5, 0}, {0.5, 0, 0}}, c.Segment(f))

	f = c.ContourFacet(4, 1, 0)
	assert.True(t, f.IsolatedKept)
	assert.Equal(t, 1, f.Isolated)
	assert.Equal(t, 0, f.A)
	assert.Equal(t, 4, f.B)
	assert.InDelta(t, 0.5, f.TA, 1e-12)
	assert.InDelta(t, 1.0/3, f.TB, 1e-12)

	assert.Equal(t, FacetKept, c.ContourFacet(1, 2, 5).Kind)
	assert.Equal(t, FacetDropped, c.ContourFacet(0, 4, 0).Kind)
	assert.Equal(t, "cut", FacetCut.String())

	_, err = NewContourHelper(mgl64.Vec3{}, mgl64.Vec3{}, m)
	assert.True(t, errors.Is(err, mesh.ErrInvalidOperation))
}

func TestCut(t *testing.T) {
	sphere := build(t, subdivisionSphere)
	origin := mgl64.Vec3{0, 0, 0.1}

	cut, err := Cut(sphere, origin, up)
	require.NoError(t, err)
	require.NoError(t, cut.Validate())
	assert.Len(t, cut.Normals, len(cut.Positions))
	for _, p := range cut.Positions {
		assert.GreaterOrEqual(t, p.Z(), 0.1-1e-9)
	}
	for i := 0; i < cut.TriangleCount(); i++ {
		tri := cut.Triangle(i)
		a, b, c := cut.Positions[tri[0]], cut.Positions[tri[1]], cut.Positions[tri[2]]
		// Clipped triangles keep facing outward.
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(a.Add(b).Add(c)), 0.0)
	}

	// Neighbours share their cut vertices, so the only open edges are on the
	// plane.
	border := FindBorderEdges(cut.TriangleIndices)
	require.NotEmpty(t, border)
	for _, e := range border {
		assert.InDelta(t, 0.1, cut.Positions[e.A].Z(), 1e-9)
		assert.InDelta(t, 0.1, cut.Positions[e.B].Z(), 1e-9)
	}

	t.Run("contour", func(t *testing.T) {
		segments, err := GetContourSegments(sphere, origin, up)
		require.NoError(t, err)
		assert.Len(t, segments, len(border))
		for _, s := range segments {
			assert.InDelta(t, 0.1, s[0].Z(), 1e-9)
			assert.InDelta(t, 0.1, s[1].Z(), 1e-9)
		}
		contours, err := CombineSegments(segments, 1e-9)
		require.NoError(t, err)
		require.Len(t, contours, 1)
		assert.True(t, contours[0].Closed)
		assert.Len(t, contours[0].Points, len(segments))
		radius := math.Sqrt(1 - 0.1*0.1)
		for _, p := range contours[0].Points {
			r := math.Hypot(p.X(), p.Y())
			assert.True(t, r <= radius+1e-9 && r > 0.9*radius)
		}
	})

	t.Run("vertices on the plane are kept", func(t *testing.T) {
		box := build(t, unitBox)
		cut, err := Cut(box, mgl64.Vec3{0, 0, -0.5}, up)
		require.NoError(t, err)
		assert.Equal(t, box.TriangleCount(), cut.TriangleCount())

		cut, err = Cut(box, mgl64.Vec3{0, 0, 0.5}, up)
		require.NoError(t, err)
		// Only the top face is left, and the sides only touch the plane.
		assert.Equal(t, 2, cut.TriangleCount())
	})

	t.Run("box halves", func(t *testing.T) {
		box := build(t, unitBox)
		cut, err := Cut(box, mgl64.Vec3{}, up.Mul(-1))
		require.NoError(t, err)
		for _, p := range cut.Positions {
			assert.LessOrEqual(t, p.Z(), 1e-12)
		}
		// The bottom face plus the lower half of four sides.
		var area float64
		for i := 0; i < cut.TriangleCount(); i++ {
			tri := cut.Triangle(i)
			a, b, c := cut.Positions[tri[0]], cut.Positions[tri[1]], cut.Positions[tri[2]]
			area += b.Sub(a).Cross(c.Sub(a)).Len() / 2
		}
		assert.InDelta(t, 3, area, 1e-9)
	})

	t.Run("nothing kept", func(t *testing.T) {
		cut, err := Cut(sphere, mgl64.Vec3{0, 0, 2}, up)
		require.NoError(t, err)
		assert.Empty(t, cut.Positions)
		assert.Empty(t, cut.TriangleIndices)
	})
}

func TestCombineSegments(t *testing.T) {
	segments := []Segment{
		{{0, 0, 0}, {1, 0, 0}},
		{{2, 0, 0}, {1, 0, 0}},
		{{5, 5, 0}, {6, 5, 0}},
		{{2, 0, 0}, {3, 0, 0}},
		{{-1, 0, 0}, {0, 0, 0}},
		{{6, 5, 0}, {5, 6, 0}},
		{{5, 6, 0}, {5, 5, 0}},
	}
	contours, err := CombineSegments(segments, 1e-6)
	require.NoError(t, err)
	require.Len(t, contours, 2)
	assert.Equal(t, Contour{Points: []mgl64.Vec3{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}}, contours[0])
	assert.Equal(t, Contour{Points: []mgl64.Vec3{{5, 5, 0}, {6, 5, 0}, {5, 6, 0}}, Closed: true}, contours[1])

	_, err = CombineSegments(segments, -1)
	assert.True(t, errors.Is(err, mesh.ErrInvalidOperation))
	contours, err = CombineSegments(nil, 1e-6)
	require.NoError(t, err)
	assert.Empty(t, contours)
}
