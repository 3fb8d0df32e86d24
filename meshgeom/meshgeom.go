// Package meshgeom analyses finished meshes: normals, edges, welding and
// plane cuts. Functions never modify their input mesh unless they say so.
package meshgeom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/vecmath"
	"github.com/osuushi/meshkit/mesh"
	"github.com/pkg/errors"
)

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(mesh.ErrInvalidOperation, format, args...)
}

// CalculateNormals returns area weighted vertex normals for an indexed
// triangle list. Vertices that no triangle uses get a zero normal.
func CalculateNormals(positions []mgl64.Vec3, indices []int) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(positions))
	vecmath.AccumulateFaceNormals(normals, positions, indices)
	vecmath.NormalizeBatch(normals)
	return normals
}

// RecalculateNormals replaces the mesh's normals in place.
func RecalculateNormals(m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.Normals = CalculateNormals(m.Positions, m.TriangleIndices)
	return nil
}

// remesher copies vertices from one mesh into a new one, carrying every
// optional attribute the source has.
type remesher struct {
	src, dst *mesh.Mesh
}

func newRemesher(src *mesh.Mesh) *remesher {
	dst := &mesh.Mesh{Positions: []mgl64.Vec3{}, TriangleIndices: []int{}}
	if src.Normals != nil {
		dst.Normals = []mgl64.Vec3{}
	}
	if src.TextureCoordinates != nil {
		dst.TextureCoordinates = []mgl64.Vec2{}
	}
	if src.Tangents != nil {
		dst.Tangents = []mgl64.Vec3{}
	}
	if src.BiTangents != nil {
		dst.BiTangents = []mgl64.Vec3{}
	}
	return &remesher{src: src, dst: dst}
}

// copyVertex appends source vertex i and returns its new index.
func (r *remesher) copyVertex(i int) int {
	return r.lerpVertex(i, i, 0)
}

// lerpVertex appends a vertex t of the way from source vertex i to j.
// Direction attributes are renormalized.
func (r *remesher) lerpVertex(i, j int, t float64) int {
	src, dst := r.src, r.dst
	lerp3 := func(vs []mgl64.Vec3, unit bool) mgl64.Vec3 {
		v := vs[i].Add(vs[j].Sub(vs[i]).Mul(t))
		if unit && i != j && v.Len() > 0 {
			v = v.Normalize()
		}
		return v
	}
	dst.Positions = append(dst.Positions, lerp3(src.Positions, false))
	if src.Normals != nil {
		dst.Normals = append(dst.Normals, lerp3(src.Normals, true))
	}
	if src.TextureCoordinates != nil {
		uv := src.TextureCoordinates[i]
		dst.TextureCoordinates = append(dst.TextureCoordinates, uv.Add(src.TextureCoordinates[j].Sub(uv).Mul(t)))
	}
	if src.Tangents != nil {
		dst.Tangents = append(dst.Tangents, lerp3(src.Tangents, true))
	}
	if src.BiTangents != nil {
		dst.BiTangents = append(dst.BiTangents, lerp3(src.BiTangents, true))
	}
	return len(dst.Positions) - 1
}

// addTriangle appends a triangle unless two of its corners are the same
// vertex.
func (r *remesher) addTriangle(a, b, c int) {
	if a == b || b == c || c == a {
		return
	}
	r.dst.TriangleIndices = append(r.dst.TriangleIndices, a, b, c)
}
