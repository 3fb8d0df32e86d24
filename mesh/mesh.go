// Package mesh holds the triangle mesh data model and the builder that
// generates meshes from primitives.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Mesh is an indexed triangle mesh. Normals, TextureCoordinates, Tangents and
// BiTangents are optional; when present they are parallel to Positions.
type Mesh struct {
	Positions          []mgl64.Vec3
	TriangleIndices    []int
	Normals            []mgl64.Vec3
	TextureCoordinates []mgl64.Vec2
	Tangents           []mgl64.Vec3
	BiTangents         []mgl64.Vec3
}

// TriangleCount is the number of whole triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.TriangleIndices) / 3
}

// Triangle returns the three position indices of triangle i.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{m.TriangleIndices[3*i], m.TriangleIndices[3*i+1], m.TriangleIndices[3*i+2]}
}

// Validate checks that indices come in threes and are in range, and that
// every optional array is either empty or as long as Positions.
func (m *Mesh) Validate() error {
	if len(m.TriangleIndices)%3 != 0 {
		return invalidf("%d triangle indices is not a multiple of 3", len(m.TriangleIndices))
	}
	for i, index := range m.TriangleIndices {
		if index < 0 || index >= len(m.Positions) {
			return invalidf("triangle index %d at %d is out of range for %d positions", index, i, len(m.Positions))
		}
	}
	for name, n := range map[string]int{
		"normals":             len(m.Normals),
		"texture coordinates": len(m.TextureCoordinates),
		"tangents":            len(m.Tangents),
		"bitangents":          len(m.BiTangents),
	} {
		if n != 0 && n != len(m.Positions) {
			return invalidf("%d %s for %d positions", n, name, len(m.Positions))
		}
	}
	return nil
}

// Clone returns a deep copy. Arrays that are nil stay nil.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions:          cloneVec3s(m.Positions),
		TriangleIndices:    cloneInts(m.TriangleIndices),
		Normals:            cloneVec3s(m.Normals),
		TextureCoordinates: cloneVec2s(m.TextureCoordinates),
		Tangents:           cloneVec3s(m.Tangents),
		BiTangents:         cloneVec3s(m.BiTangents),
	}
}

// Bounds returns the smallest axis aligned box containing every position.
func (m *Mesh) Bounds() (min, max mgl64.Vec3, err error) {
	if len(m.Positions) == 0 {
		return min, max, errors.Wrap(ErrInvalidOperation, "empty mesh has no bounds")
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max, nil
}

func cloneVec3s(vs []mgl64.Vec3) []mgl64.Vec3 {
	if vs == nil {
		return nil
	}
	return append(make([]mgl64.Vec3, 0, len(vs)), vs...)
}

func cloneVec2s(vs []mgl64.Vec2) []mgl64.Vec2 {
	if vs == nil {
		return nil
	}
	return append(make([]mgl64.Vec2, 0, len(vs)), vs...)
}

func cloneInts(vs []int) []int {
	if vs == nil {
		return nil
	}
	return append(make([]int, 0, len(vs)), vs...)
}
