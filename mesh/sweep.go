package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/geomcache"
	"github.com/osuushi/meshkit/triangulate"
	"github.com/pkg/errors"
)

// Tube describes a cross section swept along a path.
//
// Section points are placed at x*right + y*up in the plane across the path,
// where right = forward x up, and scaled by half the diameter at that point.
// A counterclockwise section gives outward facing walls.
type Tube struct {
	Path []mgl64.Vec3
	// Values are the texture V coordinates of the path points. Nil spaces them
	// by distance along the path.
	Values []float64
	// Diameters has one diameter per path point. When nil, Diameter is used
	// everywhere.
	Diameters []float64
	Diameter  float64
	// Section is the cross section. Nil is a unit circle of ThetaDiv points.
	Section  []mgl64.Vec2
	ThetaDiv int
	// SectionAngles rotates the section counterclockwise at each path point,
	// in radians. Nil means no rotation.
	SectionAngles []float64
	// SectionXAxis fixes the direction of the section's x axis at the first
	// path point. Later frames follow the path without twisting. Zero picks an
	// arbitrary direction.
	SectionXAxis    mgl64.Vec3
	IsTubeClosed    bool
	IsSectionClosed bool
	FrontCap        bool
	BackCap         bool
}

// sweep is the common layout of tubes and extrusions: one ring of section
// vertices per path point.
type sweep struct {
	path           []mgl64.Vec3
	rights, ups    []mgl64.Vec3
	scales, angles []float64
	values         []float64
	section        []mgl64.Vec2
	sectionClosed  bool
	pathClosed     bool
}

func (s *sweep) sectionPoint(i, k int) mgl64.Vec2 {
	p := s.section[k]
	if s.angles != nil {
		p = mgl64.Rotate2D(s.angles[i]).Mul2x1(p)
	}
	return p
}

func (s *sweep) place(i int, local mgl64.Vec2, scale float64) mgl64.Vec3 {
	return s.path[i].Add(s.rights[i].Mul(local.X() * scale)).Add(s.ups[i].Mul(local.Y() * scale))
}

// sectionNormal is the outward normal of the section at point k, in section
// coordinates.
func (s *sweep) sectionNormal(k int) mgl64.Vec2 {
	m := len(s.section)
	prev, next := k-1, k+1
	if s.sectionClosed {
		prev, next = triangulate.CircularIndex(prev, m), triangulate.CircularIndex(next, m)
	} else {
		prev, next = max(prev, 0), min(next, m-1)
	}
	t := s.section[next].Sub(s.section[prev])
	return mgl64.Vec2{t.Y(), -t.X()}
}

// addSweep writes the sweep's vertices and wall triangles.
func (b *Builder) addSweep(s *sweep) error {
	m := len(s.section)
	uDiv := float64(m - 1)
	if s.sectionClosed {
		uDiv = float64(m)
	}
	index0 := len(b.Positions)
	for i := range s.path {
		var rotation mgl64.Mat2
		if s.angles != nil {
			rotation = mgl64.Rotate2D(s.angles[i])
		} else {
			rotation = mgl64.Ident2()
		}
		for k := 0; k < m; k++ {
			n2 := rotation.Mul2x1(s.sectionNormal(k))
			n := normalizeOr(s.rights[i].Mul(n2.X()).Add(s.ups[i].Mul(n2.Y())), mgl64.Vec3{})
			p := s.place(i, s.sectionPoint(i, k), s.scales[i])
			b.addVertex(p, n, mgl64.Vec2{float64(k) / uDiv, s.values[i]})
		}
	}
	return b.AddRectangularMeshIndices(index0, len(s.path), m, s.pathClosed, s.sectionClosed)
}

// AddTube sweeps a section along a path.
func (b *Builder) AddTube(tube Tube) error {
	n := len(tube.Path)
	if n < 2 {
		return invalidf("tube with %d path points", n)
	}
	section, sectionClosed := tube.Section, tube.IsSectionClosed
	if section == nil {
		if tube.ThetaDiv < 3 {
			return invalidf("tube with %d divisions", tube.ThetaDiv)
		}
		section, sectionClosed = geomcache.Circle(tube.ThetaDiv, true), true
	}
	if len(section) < 2 {
		return invalidf("tube section with %d points", len(section))
	}

	s := &sweep{
		path:          tube.Path,
		section:       section,
		sectionClosed: sectionClosed,
		pathClosed:    tube.IsTubeClosed,
		scales:        make([]float64, n),
	}
	switch {
	case tube.Diameters != nil && len(tube.Diameters) != n:
		return invalidf("tube with %d diameters for %d path points", len(tube.Diameters), n)
	case tube.Diameters != nil:
		for i, d := range tube.Diameters {
			s.scales[i] = d / 2
		}
	case tube.Diameter <= 0:
		return invalidf("tube with diameter %v", tube.Diameter)
	default:
		for i := range s.scales {
			s.scales[i] = tube.Diameter / 2
		}
	}
	if tube.SectionAngles != nil && len(tube.SectionAngles) != n {
		return invalidf("tube with %d section angles for %d path points", len(tube.SectionAngles), n)
	}
	s.angles = tube.SectionAngles
	if tube.Values != nil && len(tube.Values) != n {
		return invalidf("tube with %d texture values for %d path points", len(tube.Values), n)
	}
	s.values = tube.Values
	if s.values == nil {
		s.values = pathLengthValues(tube.Path)
	}

	forwards := b.pathDirections(tube.Path, tube.IsTubeClosed)
	s.rights, s.ups = b.parallelFrames(forwards, tube.SectionXAxis)

	if err := b.addSweep(s); err != nil {
		return err
	}
	if tube.IsTubeClosed || !sectionClosed || (!tube.FrontCap && !tube.BackCap) {
		return nil
	}
	triangles, err := triangulate.Triangulate(section)
	if err != nil {
		return errors.Wrap(err, "tube cap")
	}
	if len(triangles) == 0 {
		b.logger.Debug("tube section has no area, skipping caps", "points", len(section))
		return nil
	}
	if tube.FrontCap {
		b.addCap(s, 0, forwards[0].Mul(-1), triangles, false)
	}
	if tube.BackCap {
		b.addCap(s, n-1, forwards[n-1], triangles, true)
	}
	return nil
}

// addCap closes the tube at path point i. Section triangles are
// counterclockwise in the section plane, which faces backwards along the
// path, so the back cap reverses them.
func (b *Builder) addCap(s *sweep, i int, normal mgl64.Vec3, triangles []int, reverse bool) {
	index0 := len(b.Positions)
	for k := range s.section {
		local := s.sectionPoint(i, k)
		b.addVertex(s.place(i, local, s.scales[i]), normal, s.section[k])
	}
	for t := 0; t < len(triangles); t += 3 {
		a, c, d := triangles[t], triangles[t+1], triangles[t+2]
		if reverse {
			c, d = d, c
		}
		b.addTriangleIndices(index0+a, index0+c, index0+d)
	}
}

// pathDirections returns the unit direction of the path at each point, using
// the neighbours on both sides where there are two.
func (b *Builder) pathDirections(path []mgl64.Vec3, closed bool) []mgl64.Vec3 {
	n := len(path)
	forwards := make([]mgl64.Vec3, n)
	for i := range path {
		prev, next := i-1, i+1
		if closed {
			prev, next = triangulate.CircularIndex(prev, n), triangulate.CircularIndex(next, n)
		} else {
			prev, next = max(prev, 0), min(next, n-1)
		}
		fallback := mgl64.Vec3{1, 0, 0}
		if i > 0 {
			fallback = forwards[i-1]
		}
		forward := path[next].Sub(path[prev])
		if forward.Len() < epsilon {
			b.logger.Debug("path direction fallback", "point", i)
		}
		forwards[i] = normalizeOr(forward, fallback)
	}
	return forwards
}

// parallelFrames carries a right and up vector along the path, turning them
// as little as possible from one point to the next.
func (b *Builder) parallelFrames(forwards []mgl64.Vec3, xAxis mgl64.Vec3) (rights, ups []mgl64.Vec3) {
	rights = make([]mgl64.Vec3, len(forwards))
	ups = make([]mgl64.Vec3, len(forwards))
	f := forwards[0]
	var up mgl64.Vec3
	if right := xAxis.Sub(f.Mul(f.Dot(xAxis))); right.Len() > epsilon {
		up = right.Normalize().Cross(f)
	} else {
		if xAxis.Len() > 0 {
			b.logger.Debug("section x axis is parallel to the path")
		}
		up = perpendicular(f)
	}
	for i, f := range forwards {
		right := f.Cross(up)
		if right.Len() < epsilon {
			right = perpendicular(f)
		}
		right = right.Normalize()
		up = right.Cross(f)
		rights[i], ups[i] = right, up
	}
	return rights, ups
}

func pathLengthValues(path []mgl64.Vec3) []float64 {
	values := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		values[i] = values[i-1] + path[i].Sub(path[i-1]).Len()
	}
	total := values[len(values)-1]
	if total == 0 {
		return values
	}
	for i := range values {
		values[i] /= total
	}
	return values
}

// extrusionFrame returns right and up for a straight extrusion from p0 to p1
// with the section's x axis along xAxis.
func extrusionFrame(xAxis, p0, p1 mgl64.Vec3) (right, up mgl64.Vec3, err error) {
	f := p1.Sub(p0)
	if f.Len() < epsilon {
		return right, up, invalidf("extrusion of zero length")
	}
	f = f.Normalize()
	right = xAxis.Sub(f.Mul(f.Dot(xAxis)))
	if right.Len() < epsilon {
		return right, up, invalidf("extrusion x axis is parallel to the extrusion")
	}
	right = right.Normalize()
	return right, right.Cross(f), nil
}

// AddExtrudedGeometry extrudes an open polyline section from p0 to p1. The
// section's x axis lies along xAxis.
func (b *Builder) AddExtrudedGeometry(points []mgl64.Vec2, xAxis, p0, p1 mgl64.Vec3) error {
	if len(points) < 2 {
		return invalidf("extruded geometry with %d points", len(points))
	}
	right, up, err := extrusionFrame(xAxis, p0, p1)
	if err != nil {
		return err
	}
	return b.addSweep(&sweep{
		path:    []mgl64.Vec3{p0, p1},
		rights:  []mgl64.Vec3{right, right},
		ups:     []mgl64.Vec3{up, up},
		scales:  []float64{1, 1},
		values:  []float64{0, 1},
		section: points,
	})
}

// AddExtrudedSegments extrudes separate line segments, given as pairs of
// points, from p0 to p1. Each segment gets its own flat quad.
func (b *Builder) AddExtrudedSegments(points []mgl64.Vec2, xAxis, p0, p1 mgl64.Vec3) error {
	if len(points)%2 != 0 {
		return invalidf("extruded segments with %d points", len(points))
	}
	right, up, err := extrusionFrame(xAxis, p0, p1)
	if err != nil {
		return err
	}
	place := func(origin mgl64.Vec3, q mgl64.Vec2) mgl64.Vec3 {
		return origin.Add(right.Mul(q.X())).Add(up.Mul(q.Y()))
	}
	for i := 0; i < len(points); i += 2 {
		a, c := points[i], points[i+1]
		d := c.Sub(a)
		if d.Len() < epsilon {
			b.logger.Debug("zero length extruded segment", "segment", i/2)
		}
		n := normalizeOr(right.Mul(d.Y()).Sub(up.Mul(d.X())), mgl64.Vec3{})
		a0 := b.addVertex(place(p0, a), n, mgl64.Vec2{0, 0})
		b0 := b.addVertex(place(p0, c), n, mgl64.Vec2{1, 0})
		a1 := b.addVertex(place(p1, a), n, mgl64.Vec2{0, 1})
		b1 := b.addVertex(place(p1, c), n, mgl64.Vec2{1, 1})
		b.addTriangleIndices(a0, b1, b0)
		b.addTriangleIndices(b1, a0, a1)
	}
	return nil
}

// AddLoftedGeometry connects rows of points with equal length into a surface.
// Missing normals are averaged from the surface's faces and missing texture
// coordinates run from 0 to 1 across each axis.
func (b *Builder) AddLoftedGeometry(positionsList [][]mgl64.Vec3, normalList [][]mgl64.Vec3, textureCoordinateList [][]mgl64.Vec2) error {
	rows := len(positionsList)
	if rows < 2 {
		return invalidf("lofted geometry with %d rows", rows)
	}
	columns := len(positionsList[0])
	if columns < 2 {
		return invalidf("lofted geometry with %d columns", columns)
	}
	if normalList != nil && len(normalList) != rows {
		return invalidf("lofted geometry with %d normal rows for %d rows", len(normalList), rows)
	}
	if textureCoordinateList != nil && len(textureCoordinateList) != rows {
		return invalidf("lofted geometry with %d texture rows for %d rows", len(textureCoordinateList), rows)
	}
	for i, row := range positionsList {
		if len(row) != columns {
			return invalidf("lofted geometry row %d has %d points, not %d", i, len(row), columns)
		}
		if normalList != nil && len(normalList[i]) != columns {
			return invalidf("lofted geometry row %d has %d normals, not %d", i, len(normalList[i]), columns)
		}
		if textureCoordinateList != nil && len(textureCoordinateList[i]) != columns {
			return invalidf("lofted geometry row %d has %d texture coordinates, not %d", i, len(textureCoordinateList[i]), columns)
		}
	}

	index0 := len(b.Positions)
	indexStart := len(b.TriangleIndices)
	for i, row := range positionsList {
		for j, p := range row {
			var n mgl64.Vec3
			if normalList != nil {
				n = normalList[i][j]
			}
			uv := mgl64.Vec2{float64(j) / float64(columns-1), float64(i) / float64(rows-1)}
			if textureCoordinateList != nil {
				uv = textureCoordinateList[i][j]
			}
			b.addVertex(p, n, uv)
		}
	}
	if err := b.AddRectangularMeshIndices(index0, rows, columns, false, false); err != nil {
		return err
	}
	if normalList == nil && b.options.Normals {
		b.smoothNormals(index0, indexStart)
	}
	return nil
}
