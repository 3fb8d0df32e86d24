// Package vecmath holds the vector loops shared by the mesh builder and mesh
// analysis.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sys/cpu"
)

// Lanes is the number of vectors normalized per step of the wide path.
const Lanes = 4

// wide selects the unrolled normalize path. Go has no vector intrinsics, but
// on cores with wide vector units the unrolled loop lets the compiler keep four
// independent square roots in flight.
var wide = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// FaceNormal returns the unnormalized normal of a counterclockwise triangle.
// Its length is twice the triangle's area.
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// AccumulateFaceNormals adds each triangle's area weighted normal into the
// normals of its three corners. normals must be as long as positions.
func AccumulateFaceNormals(normals, positions []mgl64.Vec3, indices []int) {
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		n := FaceNormal(positions[a], positions[b], positions[c])
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
}

// NormalizeBatch scales every vector to unit length in place. Zero vectors
// stay zero.
func NormalizeBatch(vs []mgl64.Vec3) {
	if wide {
		normalizeWide(vs)
	} else {
		normalizeScalar(vs)
	}
}

func normalizeScalar(vs []mgl64.Vec3) {
	for i := range vs {
		vs[i] = vs[i].Mul(inverseLength(vs[i]))
	}
}

func normalizeWide(vs []mgl64.Vec3) {
	n := len(vs) - len(vs)%Lanes
	for i := 0; i < n; i += Lanes {
		block := (*[Lanes]mgl64.Vec3)(vs[i : i+Lanes])
		var inv [Lanes]float64
		for lane := range block {
			inv[lane] = inverseLength(block[lane])
		}
		for lane := range block {
			block[lane] = block[lane].Mul(inv[lane])
		}
	}
	normalizeScalar(vs[n:])
}

func inverseLength(v mgl64.Vec3) float64 {
	squared := v.Dot(v)
	if squared == 0 {
		return 0
	}
	return 1 / math.Sqrt(squared)
}
