package mesh

import "github.com/go-gl/mathgl/mgl64"

// Subdivide4 splits every triangle into four at its edge midpoints. Triangles
// sharing an edge share its midpoint.
func (b *Builder) Subdivide4() {
	midpoints := make(map[[2]int]int)
	midpoint := func(i, j int) int {
		key := [2]int{min(i, j), max(i, j)}
		if index, ok := midpoints[key]; ok {
			return index
		}
		index := b.addMidpoint([]int{i, j})
		midpoints[key] = index
		return index
	}
	old := b.TriangleIndices
	b.TriangleIndices = make([]int, 0, 4*len(old))
	for t := 0; t+2 < len(old); t += 3 {
		a, c, d := old[t], old[t+1], old[t+2]
		ac, cd, da := midpoint(a, c), midpoint(c, d), midpoint(d, a)
		b.TriangleIndices = append(b.TriangleIndices,
			a, ac, da,
			c, cd, ac,
			d, da, cd,
			ac, cd, da,
		)
	}
}

// SubdivideLinear splits every triangle into three around a new vertex at its
// centroid.
func (b *Builder) SubdivideLinear() {
	old := b.TriangleIndices
	b.TriangleIndices = make([]int, 0, 3*len(old))
	for t := 0; t+2 < len(old); t += 3 {
		a, c, d := old[t], old[t+1], old[t+2]
		m := b.addMidpoint([]int{a, c, d})
		b.TriangleIndices = append(b.TriangleIndices,
			a, c, m,
			c, d, m,
			d, a, m,
		)
	}
}

// addMidpoint adds a vertex whose attributes are the average of the given
// vertices'. The normal is renormalized.
func (b *Builder) addMidpoint(vertices []int) int {
	var p, n mgl64.Vec3
	var uv mgl64.Vec2
	for _, v := range vertices {
		p = p.Add(b.Positions[v])
		if b.options.Normals {
			n = n.Add(b.Normals[v])
		}
		if b.options.TextureCoordinates {
			uv = uv.Add(b.TextureCoordinates[v])
		}
	}
	scale := 1 / float64(len(vertices))
	return b.addVertex(p.Mul(scale), normalizeOr(n, mgl64.Vec3{}), uv.Mul(scale))
}
