package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// uvEpsilon is the smallest texture coordinate determinant a face may have
// and still contribute to tangents.
const uvEpsilon = 1e-12

// ComputeTangents derives per vertex tangents and bitangents from the texture
// coordinates of each triangle. Tangents are made orthogonal to the normal and
// the bitangent is normal x tangent. Triangles with collapsed texture
// coordinates are skipped; if every triangle is skipped the call fails.
func ComputeTangents(positions, normals []mgl64.Vec3, uvs []mgl64.Vec2, indices []int) (tangents, bitangents []mgl64.Vec3, err error) {
	if err := checkTangentInputs(positions, normals, uvs, indices, 3); err != nil {
		return nil, nil, err
	}
	tan := make([]mgl64.Vec3, len(positions))
	contributed := 0
	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		t, ok := faceTangent(
			positions[b].Sub(positions[a]), positions[c].Sub(positions[a]),
			uvs[b].Sub(uvs[a]), uvs[c].Sub(uvs[a]),
		)
		if !ok {
			continue
		}
		contributed++
		for _, v := range [3]int{a, b, c} {
			tan[v] = tan[v].Add(t)
		}
	}
	if contributed == 0 && len(indices) > 0 {
		return nil, nil, invalidf("every triangle has degenerate texture coordinates")
	}
	tangents, bitangents = orthogonalize(tan, normals)
	return tangents, bitangents, nil
}

// ComputeTangentsQuads is ComputeTangents for quads given as four indices
// each. Each quad's diagonals stand in for the edges of a triangle.
func ComputeTangentsQuads(positions, normals []mgl64.Vec3, uvs []mgl64.Vec2, quadIndices []int) (tangents, bitangents []mgl64.Vec3, err error) {
	if err := checkTangentInputs(positions, normals, uvs, quadIndices, 4); err != nil {
		return nil, nil, err
	}
	tan := make([]mgl64.Vec3, len(positions))
	contributed := 0
	for i := 0; i < len(quadIndices); i += 4 {
		a, b, c, d := quadIndices[i], quadIndices[i+1], quadIndices[i+2], quadIndices[i+3]
		t, ok := faceTangent(
			positions[c].Sub(positions[a]), positions[d].Sub(positions[b]),
			uvs[c].Sub(uvs[a]), uvs[d].Sub(uvs[b]),
		)
		if !ok {
			continue
		}
		contributed++
		for _, v := range [4]int{a, b, c, d} {
			tan[v] = tan[v].Add(t)
		}
	}
	if contributed == 0 && len(quadIndices) > 0 {
		return nil, nil, invalidf("every quad has degenerate texture coordinates")
	}
	tangents, bitangents = orthogonalize(tan, normals)
	return tangents, bitangents, nil
}

func checkTangentInputs(positions, normals []mgl64.Vec3, uvs []mgl64.Vec2, indices []int, stride int) error {
	if len(normals) != len(positions) {
		return invalidf("tangents need one normal per position, got %d for %d", len(normals), len(positions))
	}
	if len(uvs) != len(positions) {
		return invalidf("tangents need one texture coordinate per position, got %d for %d", len(uvs), len(positions))
	}
	if len(indices)%stride != 0 {
		return invalidf("%d indices is not a multiple of %d", len(indices), stride)
	}
	for _, index := range indices {
		if index < 0 || index >= len(positions) {
			return invalidf("index %d out of range", index)
		}
	}
	return nil
}

// faceTangent solves for the direction in which U increases across a face
// with edges e1 and e2 and texture coordinate deltas d1 and d2.
func faceTangent(e1, e2 mgl64.Vec3, d1, d2 mgl64.Vec2) (mgl64.Vec3, bool) {
	det := d1.X()*d2.Y() - d2.X()*d1.Y()
	if math.Abs(det) < uvEpsilon {
		return mgl64.Vec3{}, false
	}
	r := 1 / det
	return e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(r), true
}

// orthogonalize removes the normal component of each accumulated tangent and
// derives the bitangent.
func orthogonalize(tan, normals []mgl64.Vec3) (tangents, bitangents []mgl64.Vec3) {
	tangents = make([]mgl64.Vec3, len(tan))
	bitangents = make([]mgl64.Vec3, len(tan))
	for i, t := range tan {
		n := normals[i]
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.Len() < epsilon {
			t = perpendicular(n)
		}
		t = t.Normalize()
		tangents[i] = t
		bitangents[i] = n.Cross(t)
	}
	return tangents, bitangents
}
