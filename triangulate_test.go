package meshkit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke test. The internals are already tested.
func TestTriangulate(t *testing.T) {
	points := []mgl64.Vec2{
		{1, -1},
		{1, 1},
		{-1, 1},
		{-1, -1},
	}

	triangles, err := Triangulate(points)
	assert.NoError(t, err)
	assert.Len(t, triangles, 6)

	hole := []mgl64.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	triangles, err = Triangulate(points, hole)
	assert.NoError(t, err)
	assert.Len(t, triangles, 3*8)
}

func TestNewBuilder(t *testing.T) {
	b := NewBuilder(Options{Normals: true})
	b.AddBox(mgl64.Vec3{}, 1, 1, 1, mesh.AllFaces)
	m, err := b.ToMesh()
	require.NoError(t, err)
	assert.Len(t, m.Positions, 24)

	_, err = Polygon3D{Points: []mgl64.Vec3{{0, 0, 0}, {1, 1, 1}}}.Normal()
	assert.True(t, errors.Is(err, ErrDegeneratePolygon))
}
