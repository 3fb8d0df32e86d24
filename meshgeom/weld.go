package meshgeom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
)

// pointGrid buckets points into cubes of side eps, so everything within eps
// of a point is in its own cell or one of the 26 around it.
type pointGrid struct {
	eps    float64
	points []mgl64.Vec3
	cells  map[[3]int64][]int
}

func newPointGrid(eps float64) *pointGrid {
	return &pointGrid{eps: eps, cells: make(map[[3]int64][]int)}
}

func (g *pointGrid) cell(p mgl64.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Floor(p.X() / g.eps)),
		int64(math.Floor(p.Y() / g.eps)),
		int64(math.Floor(p.Z() / g.eps)),
	}
}

// add stores p and returns its id in the grid.
func (g *pointGrid) add(p mgl64.Vec3) int {
	id := len(g.points)
	g.points = append(g.points, p)
	c := g.cell(p)
	g.cells[c] = append(g.cells[c], id)
	return id
}

// nearest returns the lowest id stored within eps of p, or -1.
func (g *pointGrid) nearest(p mgl64.Vec3, accept func(id int) bool) int {
	c := g.cell(p)
	eps2 := g.eps * g.eps
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, id := range g.cells[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if best >= 0 && id >= best {
						continue
					}
					d := g.points[id].Sub(p)
					if d.Dot(d) < eps2 && (accept == nil || accept(id)) {
						best = id
					}
				}
			}
		}
	}
	return best
}

// Simplify welds vertices closer than eps to the first vertex within eps of
// them, keeping that vertex's attributes. Triangles that collapse are
// dropped. Welding a welded mesh again with the same eps changes nothing.
func Simplify(m *mesh.Mesh, eps float64) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !(eps > 0) {
		return nil, invalidf("weld distance %v", eps)
	}
	grid := newPointGrid(eps)
	r := newRemesher(m)
	remap := make([]int, len(m.Positions))
	for i, p := range m.Positions {
		if existing := grid.nearest(p, nil); existing >= 0 {
			remap[i] = existing
			continue
		}
		grid.add(p)
		remap[i] = r.copyVertex(i)
	}
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		r.addTriangle(remap[tri[0]], remap[tri[1]], remap[tri[2]])
	}
	return r.dst, nil
}

// RemoveIsolatedVertices drops vertices that no triangle uses. The remaining
// vertices keep their order.
func RemoveIsolatedVertices(m *mesh.Mesh) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	used := make([]bool, len(m.Positions))
	for _, index := range m.TriangleIndices {
		used[index] = true
	}
	r := newRemesher(m)
	remap := make([]int, len(m.Positions))
	for i := range m.Positions {
		if used[i] {
			remap[i] = r.copyVertex(i)
		}
	}
	for _, index := range m.TriangleIndices {
		r.dst.TriangleIndices = append(r.dst.TriangleIndices, remap[index])
	}
	return r.dst, nil
}

// NoSharedVertices gives every triangle its own three vertices.
func NoSharedVertices(m *mesh.Mesh) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	r := newRemesher(m)
	for _, index := range m.TriangleIndices {
		r.dst.TriangleIndices = append(r.dst.TriangleIndices, r.copyVertex(index))
	}
	return r.dst, nil
}
