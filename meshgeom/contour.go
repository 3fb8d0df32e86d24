package meshgeom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
)

// FacetKind says how a triangle lies against a cutting plane.
type FacetKind int

const (
	// FacetKept lies entirely on the kept side, touching the plane at most.
	FacetKept FacetKind = iota
	// FacetDropped lies entirely on the other side.
	FacetDropped
	// FacetCut crosses the plane.
	FacetCut
)

func (k FacetKind) String() string {
	switch k {
	case FacetKept:
		return "kept"
	case FacetDropped:
		return "dropped"
	case FacetCut:
		return "cut"
	}
	return "unknown"
}

// Facet describes a triangle against a cutting plane. For a cut facet,
// Isolated is the corner alone on its side and A and B follow it in winding
// order. The plane crosses edge Isolated-A at TA and edge Isolated-B at TB,
// measured from Isolated.
type Facet struct {
	Kind         FacetKind
	Isolated     int
	A, B         int
	TA, TB       float64
	IsolatedKept bool
}

// ContourHelper classifies the triangles of a mesh against a plane. The side
// the normal points to is kept, along with the plane itself.
type ContourHelper struct {
	origin, normal mgl64.Vec3
	m              *mesh.Mesh
	distances      []float64
}

func NewContourHelper(origin, normal mgl64.Vec3, m *mesh.Mesh) (*ContourHelper, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if normal.Len() == 0 {
		return nil, invalidf("cutting plane with a zero normal")
	}
	normal = normal.Normalize()
	distances := make([]float64, len(m.Positions))
	for i, p := range m.Positions {
		distances[i] = p.Sub(origin).Dot(normal)
	}
	return &ContourHelper{origin: origin, normal: normal, m: m, distances: distances}, nil
}

// Distance is the signed distance of vertex i from the plane.
func (c *ContourHelper) Distance(i int) float64 {
	return c.distances[i]
}

func (c *ContourHelper) kept(i int) bool {
	return c.distances[i] >= 0
}

// ContourFacet classifies the triangle (i0, i1, i2).
func (c *ContourHelper) ContourFacet(i0, i1, i2 int) Facet {
	corners := [3]int{i0, i1, i2}
	keptCount := 0
	for _, i := range corners {
		if c.kept(i) {
			keptCount++
		}
	}
	switch keptCount {
	case 3:
		return Facet{Kind: FacetKept}
	case 0:
		return Facet{Kind: FacetDropped}
	}
	// The isolated corner is the kept one when only one is kept, and the
	// dropped one otherwise.
	isolatedKept := keptCount == 1
	k := 0
	for k < 3 && c.kept(corners[k]) != isolatedKept {
		k++
	}
	iso, a, b := corners[k], corners[(k+1)%3], corners[(k+2)%3]
	return Facet{
		Kind:         FacetCut,
		Isolated:     iso,
		A:            a,
		B:            b,
		TA:           c.crossing(iso, a),
		TB:           c.crossing(iso, b),
		IsolatedKept: isolatedKept,
	}
}

// crossing is where the plane crosses the edge from i to j, as a fraction of
// the edge from i. The two ends are on different sides.
func (c *ContourHelper) crossing(i, j int) float64 {
	di, dj := c.distances[i], c.distances[j]
	return di / (di - dj)
}

// Segment returns the facet's intersection with the plane, in the direction
// the kept part of the triangle runs along it.
func (c *ContourHelper) Segment(f Facet) Segment {
	lerp := func(j int, t float64) mgl64.Vec3 {
		p := c.m.Positions[f.Isolated]
		return p.Add(c.m.Positions[j].Sub(p).Mul(t))
	}
	pa, pb := lerp(f.A, f.TA), lerp(f.B, f.TB)
	if f.IsolatedKept {
		return Segment{pa, pb}
	}
	return Segment{pb, pa}
}

// Cut returns the part of the mesh on the side of the plane normal points
// to. Vertices on the plane are kept. Triangles crossing the plane are
// clipped, and neighbours share the new vertex on their common edge, so a
// closed mesh is cut along a single seam of edges. Attributes of new vertices
// are interpolated.
func Cut(m *mesh.Mesh, origin, normal mgl64.Vec3) (*mesh.Mesh, error) {
	c, err := NewContourHelper(origin, normal, m)
	if err != nil {
		return nil, err
	}
	r := newRemesher(m)
	// Corners of the clipped triangles are named by edges: an original vertex
	// i is the edge {i, i}, a crossing is the edge it lies on. Crossings are
	// measured from the edge's lower index so neighbours agree on them.
	crossings := make(map[Edge]float64)
	point := func(i, j int, t float64) Edge {
		switch {
		case t <= 0:
			return Edge{i, i}
		case t >= 1:
			return Edge{j, j}
		}
		e := undirected(i, j)
		if e.A != i {
			t = 1 - t
		}
		if _, ok := crossings[e]; !ok {
			crossings[e] = t
		}
		return e
	}
	vertices := make(map[Edge]int)
	vertex := func(e Edge) int {
		if v, ok := vertices[e]; ok {
			return v
		}
		var v int
		if e.A == e.B {
			v = r.copyVertex(e.A)
		} else {
			v = r.lerpVertex(e.A, e.B, crossings[e])
		}
		vertices[e] = v
		return v
	}
	// Triangles touching the plane at an edge or a corner collapse, and their
	// vertices are only added if some other triangle uses them.
	emit := func(a, b, c Edge) {
		if a == b || b == c || c == a {
			return
		}
		r.addTriangle(vertex(a), vertex(b), vertex(c))
	}

	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		f := c.ContourFacet(tri[0], tri[1], tri[2])
		switch f.Kind {
		case FacetKept:
			emit(Edge{tri[0], tri[0]}, Edge{tri[1], tri[1]}, Edge{tri[2], tri[2]})
		case FacetCut:
			pa := point(f.Isolated, f.A, f.TA)
			pb := point(f.Isolated, f.B, f.TB)
			if f.IsolatedKept {
				emit(Edge{f.Isolated, f.Isolated}, pa, pb)
				continue
			}
			a, b := Edge{f.A, f.A}, Edge{f.B, f.B}
			emit(pa, a, b)
			emit(pa, b, pb)
		}
	}
	return r.dst, nil
}

// Segment is a piece of a contour.
type Segment [2]mgl64.Vec3

// GetContourSegments returns where the mesh crosses the plane, one segment per
// crossing triangle. Segments follow the boundary of the part Cut would keep,
// so on a closed mesh they join up into closed loops.
func GetContourSegments(m *mesh.Mesh, origin, normal mgl64.Vec3) ([]Segment, error) {
	c, err := NewContourHelper(origin, normal, m)
	if err != nil {
		return nil, err
	}
	var segments []Segment
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		f := c.ContourFacet(tri[0], tri[1], tri[2])
		if f.Kind != FacetCut {
			continue
		}
		if s := c.Segment(f); s[0] != s[1] {
			segments = append(segments, s)
		}
	}
	return segments, nil
}

// Contour is a polyline made of joined segments. A closed contour does not
// repeat its first point at the end.
type Contour struct {
	Points []mgl64.Vec3
	Closed bool
}

// CombineSegments joins segments whose ends are within eps of each other into
// contours. Segments are joined end to start, or reversed when they meet end
// to end.
func CombineSegments(segments []Segment, eps float64) ([]Contour, error) {
	if !(eps > 0) {
		return nil, invalidf("join distance %v", eps)
	}
	// Endpoint 2s is the start of segment s and 2s+1 its end.
	grid := newPointGrid(eps)
	for _, s := range segments {
		grid.add(s[0])
		grid.add(s[1])
	}
	used := make([]bool, len(segments))
	free := func(id int) bool { return !used[id/2] }
	// next finds an unused segment touching p and returns its far end.
	next := func(p mgl64.Vec3) (mgl64.Vec3, bool) {
		id := grid.nearest(p, free)
		if id < 0 {
			return mgl64.Vec3{}, false
		}
		used[id/2] = true
		return grid.points[id^1], true
	}

	var contours []Contour
	for s := range segments {
		if used[s] {
			continue
		}
		used[s] = true
		points := []mgl64.Vec3{segments[s][0], segments[s][1]}
		for {
			p, ok := next(points[len(points)-1])
			if !ok {
				break
			}
			points = append(points, p)
		}
		var head []mgl64.Vec3
		for {
			start := points[0]
			if len(head) > 0 {
				start = head[len(head)-1]
			}
			p, ok := next(start)
			if !ok {
				break
			}
			head = append(head, p)
		}
		if len(head) > 0 {
			for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
				head[i], head[j] = head[j], head[i]
			}
			points = append(head, points...)
		}
		contour := Contour{Points: points}
		if last := points[len(points)-1].Sub(points[0]); len(points) > 2 && last.Dot(last) < eps*eps {
			contour.Points = points[:len(points)-1]
			contour.Closed = true
		}
		contours = append(contours, contour)
	}
	return contours, nil
}
