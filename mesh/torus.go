package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// AddTorus adds a torus around the z axis at the origin. torusDiameter is the
// diameter of the ring through the tube's centre and tubeDiameter is the
// thickness of the tube. Both directions wrap, so the torus is closed.
//
// A tube wider than the ring would pass through the axis. The tube's cross
// section is then cut to the arc outside the axis, and the two points where
// the arcs meet on the axis close the surface with triangle fans. A ring of
// zero diameter gives a sphere.
func (b *Builder) AddTorus(torusDiameter, tubeDiameter float64, thetaDiv, phiDiv int) error {
	if tubeDiameter <= 0 {
		return errors.Wrapf(ErrImpossibleGeometry, "torus with tube diameter %v", tubeDiameter)
	}
	if torusDiameter < 0 {
		return invalidf("torus with diameter %v", torusDiameter)
	}
	if thetaDiv < 3 || phiDiv < 3 {
		return invalidf("torus with %d by %d divisions", thetaDiv, phiDiv)
	}
	ringRadius, tubeRadius := torusDiameter/2, tubeDiameter/2
	if ringRadius == 0 {
		return b.AddSphere(mgl64.Vec3{}, tubeRadius, thetaDiv, phiDiv)
	}
	if tubeRadius > ringRadius {
		b.addSelfIntersectingTorus(ringRadius, tubeRadius, thetaDiv, phiDiv)
		return nil
	}

	index0 := len(b.Positions)
	for i := 0; i < thetaDiv; i++ {
		theta := 2 * math.Pi * float64(i) / float64(thetaDiv)
		for j := 0; j < phiDiv; j++ {
			phi := 2 * math.Pi * float64(j) / float64(phiDiv)
			p, n := torusPoint(ringRadius, tubeRadius, theta, phi)
			b.addVertex(p, n, mgl64.Vec2{float64(i) / float64(thetaDiv), float64(j) / float64(phiDiv)})
		}
	}
	return b.AddRectangularMeshIndices(index0, thetaDiv, phiDiv, true, true)
}

func torusPoint(ringRadius, tubeRadius, theta, phi float64) (p, n mgl64.Vec3) {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	n = mgl64.Vec3{cosPhi * cosTheta, cosPhi * sinTheta, sinPhi}
	r := ringRadius + tubeRadius*cosPhi
	p = mgl64.Vec3{r * cosTheta, r * sinTheta, tubeRadius * sinPhi}
	return p, n
}

// addSelfIntersectingTorus builds the outer part of a torus whose tube
// crosses the axis. The cross section is the arc where the distance from the
// axis, ringRadius + tubeRadius*cos(phi), stays positive: phi in
// [-phiMax, phiMax] with cos(phiMax) = -ringRadius/tubeRadius. Its ends meet
// on the axis at z = ±sqrt(tubeRadius^2 - ringRadius^2).
//
// Vertex layout from index0: thetaDiv rows of phiDiv-1 arc points strictly
// inside the arc, then the bottom apex, then the top apex.
func (b *Builder) addSelfIntersectingTorus(ringRadius, tubeRadius float64, thetaDiv, phiDiv int) {
	phiMax := math.Acos(-ringRadius / tubeRadius)
	apexHeight := math.Sqrt(tubeRadius*tubeRadius - ringRadius*ringRadius)
	columns := phiDiv - 1

	index0 := len(b.Positions)
	for i := 0; i < thetaDiv; i++ {
		theta := 2 * math.Pi * float64(i) / float64(thetaDiv)
		for k := 0; k < columns; k++ {
			phi := -phiMax + 2*phiMax*float64(k+1)/float64(phiDiv)
			p, n := torusPoint(ringRadius, tubeRadius, theta, phi)
			b.addVertex(p, n, mgl64.Vec2{float64(i) / float64(thetaDiv), float64(k+1) / float64(phiDiv)})
		}
	}
	bottom := b.addVertex(mgl64.Vec3{0, 0, -apexHeight}, mgl64.Vec3{0, 0, -1}, mgl64.Vec2{0.5, 0})
	top := b.addVertex(mgl64.Vec3{0, 0, apexHeight}, mgl64.Vec3{0, 0, 1}, mgl64.Vec2{0.5, 1})

	// Cannot fail: phiDiv >= 3 leaves at least two columns.
	_ = b.AddRectangularMeshIndices(index0, thetaDiv, columns, true, false)
	for i := 0; i < thetaDiv; i++ {
		row := index0 + i*columns
		next := index0 + (i+1)%thetaDiv*columns
		b.addTriangleIndices(bottom, next, row)
		b.addTriangleIndices(top, row+columns-1, next+columns-1)
	}
}
