package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/geomcache"
)

// Profiles for revolved geometry are given in (axial, radial) coordinates:
// X runs along the axis from the origin, Y is the distance from the axis. A
// profile that runs away from the axis, along it, and back again encloses a
// solid and gets outward facing triangles.

// AddRevolvedGeometry revolves a profile around an axis with flat shading.
// Each profile segment gets its own vertices for every step of the
// revolution. textureValues gives the texture V coordinate of each profile
// point; nil spaces them by arc length.
func (b *Builder) AddRevolvedGeometry(points []mgl64.Vec2, textureValues []float64, origin, direction mgl64.Vec3, thetaDiv int) error {
	values, err := b.checkProfile("revolved geometry", points, textureValues, direction, thetaDiv)
	if err != nil {
		return err
	}
	d, u, v := revolutionFrame(direction)
	circle := geomcache.Circle(thetaDiv, true)

	index0 := len(b.Positions)
	rowNodes := 2 * (len(points) - 1)
	totalNodes := thetaDiv * rowNodes
	for i, c := range circle {
		w := u.Mul(c.X()).Add(v.Mul(c.Y()))
		for j := 0; j+1 < len(points); j++ {
			q0, q1 := points[j], points[j+1]
			t := q1.Sub(q0)
			if t.Len() < epsilon {
				b.logger.Debug("revolved geometry has a zero length segment", "segment", j)
				t = mgl64.Vec2{1, 0}
			}
			t = t.Normalize()
			n := w.Mul(t.X()).Sub(d.Mul(t.Y()))
			u0 := float64(i) / float64(thetaDiv)
			b.addVertex(origin.Add(d.Mul(q0.X())).Add(w.Mul(q0.Y())), n, mgl64.Vec2{u0, values[j]})
			b.addVertex(origin.Add(d.Mul(q1.X())).Add(w.Mul(q1.Y())), n, mgl64.Vec2{u0, values[j+1]})
		}
	}

	for i := 0; i < thetaDiv; i++ {
		for j := 0; j+1 < len(points); j++ {
			i0 := index0 + i*rowNodes + 2*j
			i1 := i0 + 1
			i2 := index0 + ((i+1)*rowNodes+2*j)%totalNodes
			i3 := i2 + 1
			// A profile point on the axis collapses the triangle touching it.
			if !onAxis(points[j]) {
				b.addTriangleIndices(i1, i0, i2)
			}
			if !onAxis(points[j+1]) {
				b.addTriangleIndices(i1, i2, i3)
			}
		}
	}
	return nil
}

// AddSurfaceOfRevolution revolves a profile around an axis with smooth
// shading. Vertices are shared between neighbouring steps of the revolution.
func (b *Builder) AddSurfaceOfRevolution(points []mgl64.Vec2, textureValues []float64, origin, axis mgl64.Vec3, thetaDiv int) error {
	values, err := b.checkProfile("surface of revolution", points, textureValues, axis, thetaDiv)
	if err != nil {
		return err
	}
	d, u, v := revolutionFrame(axis)
	circle := geomcache.Circle(thetaDiv, true)

	normals := make([]mgl64.Vec2, len(points))
	for j := range points {
		prev, next := points[max(j-1, 0)], points[min(j+1, len(points)-1)]
		t := next.Sub(prev)
		if t.Len() < epsilon {
			t = mgl64.Vec2{1, 0}
		}
		t = t.Normalize()
		// In (axial, radial) coordinates.
		normals[j] = mgl64.Vec2{-t.Y(), t.X()}
	}

	index0 := len(b.Positions)
	columns := len(points)
	for i, c := range circle {
		w := u.Mul(c.X()).Add(v.Mul(c.Y()))
		for j, q := range points {
			n := d.Mul(normals[j].X()).Add(w.Mul(normals[j].Y()))
			uv := mgl64.Vec2{float64(i) / float64(thetaDiv), values[j]}
			b.addVertex(origin.Add(d.Mul(q.X())).Add(w.Mul(q.Y())), n, uv)
		}
	}
	for i := 0; i < thetaDiv; i++ {
		row0 := index0 + i*columns
		row1 := index0 + (i+1)%thetaDiv*columns
		for j := 0; j+1 < columns; j++ {
			i00, i01, i10, i11 := row0+j, row0+j+1, row1+j, row1+j+1
			if !onAxis(points[j+1]) {
				b.addTriangleIndices(i00, i11, i01)
			}
			if !onAxis(points[j]) {
				b.addTriangleIndices(i11, i00, i10)
			}
		}
	}
	return nil
}

// AddCone adds a cone or truncated cone from origin along direction.
func (b *Builder) AddCone(origin, direction mgl64.Vec3, baseRadius, topRadius, height float64, baseCap, topCap bool, thetaDiv int) error {
	var profile []mgl64.Vec2
	if baseCap {
		profile = append(profile, mgl64.Vec2{0, 0})
	}
	profile = append(profile, mgl64.Vec2{0, baseRadius}, mgl64.Vec2{height, topRadius})
	if topCap {
		profile = append(profile, mgl64.Vec2{height, 0})
	}
	return b.AddRevolvedGeometry(profile, nil, origin, direction, thetaDiv)
}

// AddCylinder adds a cylinder from p1 to p2.
func (b *Builder) AddCylinder(p1, p2 mgl64.Vec3, diameter float64, thetaDiv int, cap1, cap2 bool) error {
	n := p2.Sub(p1)
	r := diameter / 2
	return b.AddCone(p1, n, r, r, n.Len(), cap1, cap2, thetaDiv)
}

// AddPipe adds a hollow cylinder from p1 to p2.
func (b *Builder) AddPipe(p1, p2 mgl64.Vec3, innerDiameter, diameter float64, thetaDiv int) error {
	n := p2.Sub(p1)
	l := n.Len()
	rIn, rOut := innerDiameter/2, diameter/2
	profile := []mgl64.Vec2{{0, rIn}, {0, rOut}, {l, rOut}, {l, rIn}, {0, rIn}}
	return b.AddRevolvedGeometry(profile, nil, p1, n, thetaDiv)
}

// AddArrow adds an arrow from p1 to p2. headLength is the length of the head
// as a multiple of the shaft's diameter.
func (b *Builder) AddArrow(p1, p2 mgl64.Vec3, diameter, headLength float64, thetaDiv int) error {
	n := p2.Sub(p1)
	l := n.Len()
	r := diameter / 2
	head := diameter * headLength
	if head > l {
		b.logger.Debug("arrow head longer than the arrow", "head", head, "length", l)
		head = l
	}
	profile := []mgl64.Vec2{{0, 0}, {0, r}, {l - head, r}, {l - head, 2 * r}, {l, 0}}
	return b.AddRevolvedGeometry(profile, nil, p1, n, thetaDiv)
}

func (b *Builder) checkProfile(op string, points []mgl64.Vec2, textureValues []float64, axis mgl64.Vec3, thetaDiv int) ([]float64, error) {
	if len(points) < 2 {
		return nil, invalidf("%s: %d profile points", op, len(points))
	}
	if thetaDiv < 3 {
		return nil, invalidf("%s: %d divisions", op, thetaDiv)
	}
	if axis.Len() < epsilon {
		return nil, invalidf("%s: zero length axis", op)
	}
	if textureValues == nil {
		return arcLengthValues(points), nil
	}
	if len(textureValues) != len(points) {
		return nil, invalidf("%s: %d texture values for %d points", op, len(textureValues), len(points))
	}
	return textureValues, nil
}

// revolutionFrame returns the unit axis and two unit vectors spanning the
// plane around it, so that turning from u to v is counterclockwise about d.
func revolutionFrame(axis mgl64.Vec3) (d, u, v mgl64.Vec3) {
	d = axis.Normalize()
	u = perpendicular(d)
	v = d.Cross(u)
	return d, u, v
}

func onAxis(q mgl64.Vec2) bool {
	return math.Abs(q.Y()) < epsilon
}

// arcLengthValues spaces 0..1 along a polyline by distance.
func arcLengthValues(points []mgl64.Vec2) []float64 {
	values := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		values[i] = values[i-1] + points[i].Sub(points[i-1]).Len()
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
