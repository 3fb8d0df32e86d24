package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/geomcache"
)

// AddSphere adds a latitude and longitude sphere around the z axis.
func (b *Builder) AddSphere(center mgl64.Vec3, radius float64, thetaDiv, phiDiv int) error {
	return b.AddEllipsoid(center, radius, radius, radius, thetaDiv, phiDiv)
}

// AddEllipsoid adds a latitude and longitude ellipsoid with the given radii
// along x, y and z. Rows run from the north pole to the south pole. The seam
// at longitude zero has its own column of vertices so texture coordinates run
// from 0 to 1.
func (b *Builder) AddEllipsoid(center mgl64.Vec3, radiusX, radiusY, radiusZ float64, thetaDiv, phiDiv int) error {
	if thetaDiv < 3 || phiDiv < 2 {
		return invalidf("ellipsoid with %d by %d divisions", thetaDiv, phiDiv)
	}
	if radiusX == 0 || radiusY == 0 || radiusZ == 0 {
		return invalidf("ellipsoid with a zero radius")
	}
	circle := geomcache.Circle(thetaDiv+1, false)
	index0 := len(b.Positions)
	for i := 0; i <= phiDiv; i++ {
		phi := math.Pi * float64(i) / float64(phiDiv)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		for j, c := range circle {
			unit := mgl64.Vec3{sinPhi * c.X(), sinPhi * c.Y(), cosPhi}
			p := mgl64.Vec3{unit.X() * radiusX, unit.Y() * radiusY, unit.Z() * radiusZ}
			n := mgl64.Vec3{unit.X() / radiusX, unit.Y() / radiusY, unit.Z() / radiusZ}.Normalize()
			uv := mgl64.Vec2{float64(j) / float64(thetaDiv), float64(i) / float64(phiDiv)}
			b.addVertex(center.Add(p), n, uv)
		}
	}
	return b.AddRectangularMeshIndicesSpherical(index0, phiDiv+1, thetaDiv+1)
}

// AddSubdivisionSphere adds a sphere made by subdividing an icosahedron. Every
// vertex is shared, so the result is closed.
func (b *Builder) AddSubdivisionSphere(center mgl64.Vec3, radius float64, subdivisions int) error {
	if subdivisions < 0 {
		return invalidf("%d subdivisions", subdivisions)
	}
	sphere := geomcache.UnitSphere(subdivisions)
	index0 := len(b.Positions)
	for _, p := range sphere.Positions {
		b.addVertex(center.Add(p.Mul(radius)), p, sphericalUV(p))
	}
	for _, index := range sphere.Indices {
		b.TriangleIndices = append(b.TriangleIndices, index0+index)
	}
	return nil
}

// sphericalUV maps a unit vector to longitude and colatitude in 0..1.
func sphericalUV(p mgl64.Vec3) mgl64.Vec2 {
	u := math.Atan2(p.Y(), p.X())/(2*math.Pi) + 0.5
	v := math.Acos(mgl64.Clamp(p.Z(), -1, 1)) / math.Pi
	return mgl64.Vec2{u, v}
}
