package triangulate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Returned when a 3D loop has no two edges that span a plane.
var ErrDegeneratePolygon = errors.New("polygon has no well defined normal")

// Relative tolerance for deciding that two edge directions span a plane.
const normalTolerance = 1e-9

// A planar loop of points in space.
type Polygon3D struct {
	Points []mgl64.Vec3
}

// An orthonormal frame on a polygon's plane. Up is the polygon normal, and
// (Forward, Right, Up) is right handed, so a loop that winds counterclockwise
// around Up is counterclockwise in (Forward, Right) coordinates.
type PlaneFrame struct {
	Origin  mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

// The polygon normal. This is the first robust cross product of (p1 - p0) with
// (pi - p0), flipped if needed to agree with the loop's winding, so that a
// reflex corner at p0 can't turn it around.
func (poly Polygon3D) Normal() (mgl64.Vec3, error) {
	points := poly.Points
	if len(points) < 3 {
		return mgl64.Vec3{}, errors.Wrapf(ErrDegeneratePolygon, "%d points", len(points))
	}

	var normal mgl64.Vec3
	found := false
	for j := 1; j < len(points) && !found; j++ {
		u := points[j].Sub(points[0])
		for i := j + 1; i < len(points); i++ {
			v := points[i].Sub(points[0])
			n := u.Cross(v)
			if n.Len() > normalTolerance*u.Len()*v.Len() {
				normal = n.Normalize()
				found = true
				break
			}
		}
	}
	if !found {
		return mgl64.Vec3{}, errors.Wrapf(ErrDegeneratePolygon, "all %d points are collinear", len(points))
	}

	if normal.Dot(poly.newellNormal()) < 0 {
		normal = normal.Mul(-1)
	}
	return normal, nil
}

// Newell's method. The length is twice the projected area, and the direction
// follows the winding.
func (poly Polygon3D) newellNormal() mgl64.Vec3 {
	var n mgl64.Vec3
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, len(poly.Points))]
		n[0] += (p.Y() - q.Y()) * (p.Z() + q.Z())
		n[1] += (p.Z() - q.Z()) * (p.X() + q.X())
		n[2] += (p.X() - q.X()) * (p.Y() + q.Y())
	}
	return n
}

// The frame the polygon is flattened into. Right is built against whichever of
// the Z and X axes is less parallel to the normal.
func (poly Polygon3D) Frame() (PlaneFrame, error) {
	up, err := poly.Normal()
	if err != nil {
		return PlaneFrame{}, err
	}
	axis := mgl64.Vec3{0, 0, 1}
	if math.Abs(up.Z()) > math.Abs(up.X()) {
		axis = mgl64.Vec3{1, 0, 0}
	}
	right := up.Cross(axis).Normalize()
	forward := right.Cross(up)
	return PlaneFrame{Origin: poly.Points[0], Forward: forward, Right: right, Up: up}, nil
}

// Coordinates of p in the frame's plane.
func (f PlaneFrame) Project(p mgl64.Vec3) mgl64.Vec2 {
	d := p.Sub(f.Origin)
	return mgl64.Vec2{d.Dot(f.Forward), d.Dot(f.Right)}
}

// The point of the plane with the given coordinates.
func (f PlaneFrame) Unproject(p mgl64.Vec2) mgl64.Vec3 {
	return f.Origin.Add(f.Forward.Mul(p.X())).Add(f.Right.Mul(p.Y()))
}

func (f PlaneFrame) ProjectAll(points []mgl64.Vec3) []mgl64.Vec2 {
	result := make([]mgl64.Vec2, len(points))
	for i, p := range points {
		result[i] = f.Project(p)
	}
	return result
}

// Project the polygon into its own plane.
func (poly Polygon3D) Flatten() ([]mgl64.Vec2, PlaneFrame, error) {
	frame, err := poly.Frame()
	if err != nil {
		return nil, PlaneFrame{}, err
	}
	return frame.ProjectAll(poly.Points), frame, nil
}

// Triangulate the polygon in its plane, with optional holes given in space.
// Triangles wind counterclockwise around the polygon normal, which is the
// direction the outer loop winds.
func (poly Polygon3D) Triangulate(holes ...[]mgl64.Vec3) ([]int, error) {
	outer, frame, err := poly.Flatten()
	if err != nil {
		return nil, err
	}
	flatHoles := make([][]mgl64.Vec2, len(holes))
	for i, hole := range holes {
		flatHoles[i] = frame.ProjectAll(hole)
	}
	return Triangulate(outer, flatHoles...)
}
