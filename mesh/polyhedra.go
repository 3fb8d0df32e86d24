package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/geomcache"
)

var goldenRatio = (1 + math.Sqrt(5)) / 2

// solidFrame maps local coordinates (x along forward, y to the left, z up)
// into space.
type solidFrame struct {
	center, forward, left, up mgl64.Vec3
}

func newSolidFrame(center, forward, up mgl64.Vec3) solidFrame {
	f, left, u := orthonormalFrame(forward, up)
	return solidFrame{center, f, left, u}
}

func (s solidFrame) point(local mgl64.Vec3) mgl64.Vec3 {
	return s.center.
		Add(s.forward.Mul(local.X())).
		Add(s.left.Mul(local.Y())).
		Add(s.up.Mul(local.Z()))
}

// addSolid adds flat shaded faces of a convex solid. Faces are flipped where
// needed so they face away from the solid's centre.
func (b *Builder) addSolid(frame solidFrame, inside mgl64.Vec3, vertices []mgl64.Vec3, faces [][]int) error {
	inside = frame.point(inside)
	for _, face := range faces {
		points := make([]mgl64.Vec3, len(face))
		var centroid mgl64.Vec3
		for i, v := range face {
			points[i] = frame.point(vertices[v])
			centroid = centroid.Add(points[i])
		}
		centroid = centroid.Mul(1 / float64(len(points)))
		if points[1].Sub(points[0]).Cross(points[2].Sub(points[0])).Dot(centroid.Sub(inside)) < 0 {
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}
		}
		if len(points) == 3 {
			b.AddTriangle(points[0], points[1], points[2])
			continue
		}
		if err := b.AddPolygon(points); err != nil {
			return err
		}
	}
	return nil
}

// AddTetrahedron adds a regular tetrahedron standing on center, with a base
// corner along forward and the apex along up.
func (b *Builder) AddTetrahedron(center, forward, up mgl64.Vec3, sideLength float64) {
	r := sideLength / math.Sqrt(3)
	vertices := make([]mgl64.Vec3, 0, 4)
	for k := 0; k < 3; k++ {
		angle := 2 * math.Pi * float64(k) / 3
		vertices = append(vertices, mgl64.Vec3{r * math.Cos(angle), r * math.Sin(angle), 0})
	}
	height := sideLength * math.Sqrt(2.0/3)
	vertices = append(vertices, mgl64.Vec3{0, 0, height})
	faces := [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}
	// Triangles only, so this cannot fail.
	_ = b.addSolid(newSolidFrame(center, forward, up), mgl64.Vec3{0, 0, height / 4}, vertices, faces)
}

// AddOctahedron adds an octahedron around center with a square waist of the
// given side, and apexes height apart along up.
func (b *Builder) AddOctahedron(center, forward, up mgl64.Vec3, sideLength, height float64) {
	s, h := sideLength/2, height/2
	vertices := []mgl64.Vec3{{-s, -s, 0}, {s, -s, 0}, {s, s, 0}, {-s, s, 0}, {0, 0, h}, {0, 0, -h}}
	var faces [][]int
	for k := 0; k < 4; k++ {
		faces = append(faces, []int{k, (k + 1) % 4, 4}, []int{(k + 1) % 4, k, 5})
	}
	_ = b.addSolid(newSolidFrame(center, forward, up), mgl64.Vec3{}, vertices, faces)
}

// AddDodecahedron adds a regular dodecahedron around center.
func (b *Builder) AddDodecahedron(center, forward, up mgl64.Vec3, sideLength float64) error {
	phi := goldenRatio
	var vertices []mgl64.Vec3
	for _, x := range []float64{1, -1} {
		for _, y := range []float64{1, -1} {
			for _, z := range []float64{1, -1} {
				vertices = append(vertices, mgl64.Vec3{x, y, z})
			}
			vertices = append(vertices,
				mgl64.Vec3{0, x / phi, y * phi},
				mgl64.Vec3{x / phi, y * phi, 0},
				mgl64.Vec3{x * phi, 0, y / phi},
			)
		}
	}
	// The canonical edge length is 2/phi.
	scale := sideLength * phi / 2
	for i := range vertices {
		vertices[i] = vertices[i].Mul(scale)
	}

	// Each face is the five vertices furthest along one of the icosahedral
	// face directions.
	var faces [][]int
	for _, x := range []float64{1, -1} {
		for _, y := range []float64{1, -1} {
			for _, n := range []mgl64.Vec3{{0, x * phi, y}, {x * phi, y, 0}, {x, 0, y * phi}} {
				faces = append(faces, faceAround(vertices, n, 5))
			}
		}
	}
	return b.addSolid(newSolidFrame(center, forward, up), mgl64.Vec3{}, vertices, faces)
}

// faceAround returns the count vertices furthest along n, sorted
// counterclockwise about n.
func faceAround(vertices []mgl64.Vec3, n mgl64.Vec3, count int) []int {
	order := make([]int, len(vertices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return vertices[order[i]].Dot(n) > vertices[order[j]].Dot(n)
	})
	face := order[:count]
	u := perpendicular(n)
	v := n.Normalize().Cross(u)
	angle := func(i int) float64 {
		p := vertices[i]
		return math.Atan2(p.Dot(v), p.Dot(u))
	}
	sort.Slice(face, func(i, j int) bool { return angle(face[i]) < angle(face[j]) })
	return face
}

// AddRegularIcosahedron adds an icosahedron with its vertices radius from
// center. With shareVertices the twelve vertices are shared and get smooth
// normals; otherwise every face is flat.
func (b *Builder) AddRegularIcosahedron(center mgl64.Vec3, radius float64, shareVertices bool) {
	sphere := geomcache.UnitSphere(0)
	if shareVertices {
		index0 := len(b.Positions)
		for _, p := range sphere.Positions {
			b.addVertex(center.Add(p.Mul(radius)), p, sphericalUV(p))
		}
		for _, index := range sphere.Indices {
			b.TriangleIndices = append(b.TriangleIndices, index0+index)
		}
		return
	}
	for i := 0; i < len(sphere.Indices); i += 3 {
		p := func(k int) mgl64.Vec3 { return center.Add(sphere.Positions[sphere.Indices[i+k]].Mul(radius)) }
		b.AddTriangle(p(0), p(1), p(2))
	}
}
