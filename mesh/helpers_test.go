package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allAttributes = Options{Normals: true, TextureCoordinates: true}

// Check the builder's invariants and return its mesh.
func requireMesh(t *testing.T, b *Builder) *Mesh {
	t.Helper()
	require.NoError(t, b.CheckConsistency())
	m, err := b.ToMesh()
	require.NoError(t, err)
	return m
}

func triangleCross(m *Mesh, i int) (mgl64.Vec3, mgl64.Vec3) {
	tri := m.Triangle(i)
	a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)
	return b.Sub(a).Cross(c.Sub(a)), centroid
}

// Every triangle of a convex solid faces away from a point inside it.
func assertOutward(t *testing.T, m *Mesh, inside mgl64.Vec3) {
	t.Helper()
	for i := 0; i < m.TriangleCount(); i++ {
		cross, centroid := triangleCross(m, i)
		if !assert.Greater(t, cross.Len(), 1e-12, "triangle %d is degenerate", i) {
			continue
		}
		assert.Greater(t, cross.Dot(centroid.Sub(inside)), 0.0, "triangle %d faces inward", i)
	}
	assertNormalsAgree(t, m)
}

// Every vertex normal leans the same way as the triangles using it.
func assertNormalsAgree(t *testing.T, m *Mesh) {
	t.Helper()
	if m.Normals == nil {
		return
	}
	for i := 0; i < m.TriangleCount(); i++ {
		cross, _ := triangleCross(m, i)
		for _, v := range m.Triangle(i) {
			assert.Greater(t, m.Normals[v].Dot(cross), 0.0, "normal of vertex %d disagrees with triangle %d", v, i)
		}
	}
}

func assertUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	for i, n := range m.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-9, "normal %d", i)
	}
}

func assertVecNear(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, expected.Sub(actual).Len(), 1e-9, "expected %v, got %v", expected, actual)
}

func totalArea(m *Mesh) float64 {
	var area float64
	for i := 0; i < m.TriangleCount(); i++ {
		cross, _ := triangleCross(m, i)
		area += cross.Len() / 2
	}
	return area
}
