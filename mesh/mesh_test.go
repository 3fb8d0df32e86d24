package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshValidate(t *testing.T) {
	m := &Mesh{
		Positions:       []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		TriangleIndices: []int{0, 1, 2},
	}
	assert.NoError(t, m.Validate())
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, [3]int{0, 1, 2}, m.Triangle(0))

	for name, broken := range map[string]*Mesh{
		"partial triangle": {Positions: m.Positions, TriangleIndices: []int{0, 1}},
		"out of range":     {Positions: m.Positions, TriangleIndices: []int{0, 1, 3}},
		"negative":         {Positions: m.Positions, TriangleIndices: []int{0, -1, 2}},
		"short normals":    {Positions: m.Positions, TriangleIndices: m.TriangleIndices, Normals: []mgl64.Vec3{{0, 0, 1}}},
		"long uvs":         {Positions: m.Positions, TriangleIndices: m.TriangleIndices, TextureCoordinates: make([]mgl64.Vec2, 4)},
	} {
		err := broken.Validate()
		assert.True(t, errors.Is(err, ErrInvalidOperation), name)
	}
}

func TestMeshClone(t *testing.T) {
	m := &Mesh{
		Positions:       []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		TriangleIndices: []int{0, 1, 2},
		Normals:         []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
	clone := m.Clone()
	require.Equal(t, m, clone)
	clone.Positions[0] = mgl64.Vec3{5, 5, 5}
	clone.TriangleIndices[0] = 2
	clone.Normals[0] = mgl64.Vec3{}
	assert.Equal(t, mgl64.Vec3{}, m.Positions[0])
	assert.Equal(t, 0, m.TriangleIndices[0])
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, m.Normals[0])
	assert.Nil(t, clone.TextureCoordinates)
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Positions: []mgl64.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}}}
	min, max, err := m.Bounds()
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{-1, -2, 0}, min)
	assert.Equal(t, mgl64.Vec3{1, 4, 5}, max)

	_, _, err = (&Mesh{}).Bounds()
	assert.Error(t, err)
}
