package mesh

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// BoxFaces selects faces of a box. Front and back face along x, left and right
// along y, top and bottom along z.
type BoxFaces int

const (
	Front BoxFaces = 1 << iota
	Back
	Left
	Right
	Top
	Bottom

	AllFaces = Front | Back | Left | Right | Top | Bottom
)

var boxFaceNames = []struct {
	face BoxFaces
	name string
}{
	{Front, "front"},
	{Back, "back"},
	{Left, "left"},
	{Right, "right"},
	{Top, "top"},
	{Bottom, "bottom"},
}

func (f BoxFaces) String() string {
	var names []string
	for _, face := range boxFaceNames {
		if f&face.face != 0 {
			names = append(names, face.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseBoxFaces parses names like "front|top", or "all".
func ParseBoxFaces(s string) (BoxFaces, error) {
	var faces BoxFaces
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		name = strings.ToLower(name)
		if name == "all" {
			faces |= AllFaces
			continue
		}
		found := false
		for _, face := range boxFaceNames {
			if face.name == name {
				faces |= face.face
				found = true
			}
		}
		if !found {
			return 0, invalidf("unknown box face %q", name)
		}
	}
	return faces, nil
}

// AddBox adds an axis aligned box with the given side lengths. Each face has
// its own four vertices so normals stay flat.
func (b *Builder) AddBox(center mgl64.Vec3, xLength, yLength, zLength float64, faces BoxFaces) {
	x, y, z := mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}
	if faces&Front != 0 {
		b.AddCubeFace(center, x, z, xLength, yLength, zLength)
	}
	if faces&Back != 0 {
		b.AddCubeFace(center, x.Mul(-1), z, xLength, yLength, zLength)
	}
	if faces&Left != 0 {
		b.AddCubeFace(center, y.Mul(-1), z, yLength, xLength, zLength)
	}
	if faces&Right != 0 {
		b.AddCubeFace(center, y, z, yLength, xLength, zLength)
	}
	if faces&Top != 0 {
		b.AddCubeFace(center, z, y, zLength, xLength, yLength)
	}
	if faces&Bottom != 0 {
		b.AddCubeFace(center, z.Mul(-1), y, zLength, xLength, yLength)
	}
}

// AddCubeFace adds the face of a box whose outward normal is normal. The face
// sits dist/2 from center and is width wide and height tall, with up along its
// height.
func (b *Builder) AddCubeFace(center, normal, up mgl64.Vec3, dist, width, height float64) {
	right := normal.Cross(up)
	n := normal.Mul(dist / 2)
	up = up.Mul(height / 2)
	right = right.Mul(width / 2)
	p1 := center.Add(n).Sub(up).Sub(right)
	p2 := center.Add(n).Sub(up).Add(right)
	p3 := center.Add(n).Add(up).Add(right)
	p4 := center.Add(n).Add(up).Sub(right)

	i0 := len(b.Positions)
	b.addVertex(p1, normal, mgl64.Vec2{1, 1})
	b.addVertex(p2, normal, mgl64.Vec2{0, 1})
	b.addVertex(p3, normal, mgl64.Vec2{0, 0})
	b.addVertex(p4, normal, mgl64.Vec2{1, 0})
	b.addTriangleIndices(i0+2, i0+1, i0)
	b.addTriangleIndices(i0, i0+3, i0+2)
}

// AddBoundingBox outlines the box from min to max with a cylinder of the given
// diameter along each of its twelve edges.
func (b *Builder) AddBoundingBox(min, max mgl64.Vec3, diameter float64) error {
	corner := func(i int) mgl64.Vec3 {
		p := min
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				p[k] = max[k]
			}
		}
		return p
	}
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				continue
			}
			if err := b.AddCylinder(corner(i), corner(i|1<<k), diameter, 10, true, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddPyramid adds a square pyramid standing on center, with its apex height
// along up. forward orients the base.
func (b *Builder) AddPyramid(center, forward, up mgl64.Vec3, sideLength, height float64, closeBase bool) {
	f, left, u := orthonormalFrame(forward, up)
	f = f.Mul(sideLength / 2)
	left = left.Mul(sideLength / 2)
	// Counterclockwise seen from above.
	corners := [4]mgl64.Vec3{
		center.Sub(f).Sub(left),
		center.Add(f).Sub(left),
		center.Add(f).Add(left),
		center.Sub(f).Add(left),
	}
	apex := center.Add(u.Mul(height))
	for i := range corners {
		b.AddTriangle(corners[i], corners[(i+1)%4], apex)
	}
	if closeBase {
		b.AddTriangle(corners[0], corners[2], corners[1])
		b.AddTriangle(corners[0], corners[3], corners[2])
	}
}
