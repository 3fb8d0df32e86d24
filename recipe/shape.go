package recipe

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/pkg/errors"
)

// Shape is one builder call. Kind picks the call and the other fields are its
// parameters; fields a kind doesn't use are ignored.
type Shape struct {
	Kind string `yaml:"kind" toml:"kind"`

	Center    []float64 `yaml:"center" toml:"center"`
	Origin    []float64 `yaml:"origin" toml:"origin"`
	Direction []float64 `yaml:"direction" toml:"direction"`
	From      []float64 `yaml:"from" toml:"from"`
	To        []float64 `yaml:"to" toml:"to"`
	Min       []float64 `yaml:"min" toml:"min"`
	Max       []float64 `yaml:"max" toml:"max"`
	Forward   []float64 `yaml:"forward" toml:"forward"`
	Up        []float64 `yaml:"up" toml:"up"`
	XAxis     []float64 `yaml:"x_axis" toml:"x_axis"`
	Size      []float64 `yaml:"size" toml:"size"`
	Radii     []float64 `yaml:"radii" toml:"radii"`

	Radius        float64   `yaml:"radius" toml:"radius"`
	TopRadius     float64   `yaml:"top_radius" toml:"top_radius"`
	Diameter      float64   `yaml:"diameter" toml:"diameter"`
	Diameters     []float64 `yaml:"diameters" toml:"diameters"`
	InnerDiameter float64   `yaml:"inner_diameter" toml:"inner_diameter"`
	TubeDiameter  float64   `yaml:"tube_diameter" toml:"tube_diameter"`
	Height        float64   `yaml:"height" toml:"height"`
	Side          float64   `yaml:"side" toml:"side"`
	HeadLength    float64   `yaml:"head_length" toml:"head_length"`

	ThetaDiv     int `yaml:"theta_div" toml:"theta_div"`
	PhiDiv       int `yaml:"phi_div" toml:"phi_div"`
	Subdivisions int `yaml:"subdivisions" toml:"subdivisions"`

	Faces   string `yaml:"faces" toml:"faces"`
	BaseCap bool   `yaml:"base_cap" toml:"base_cap"`
	TopCap  bool   `yaml:"top_cap" toml:"top_cap"`
	Closed  bool   `yaml:"closed" toml:"closed"`
	Shared  bool   `yaml:"shared" toml:"shared"`
	Smooth  bool   `yaml:"smooth" toml:"smooth"`

	Points  [][]float64   `yaml:"points" toml:"points"`
	Holes   [][][]float64 `yaml:"holes" toml:"holes"`
	Path    [][]float64   `yaml:"path" toml:"path"`
	Section [][]float64   `yaml:"section" toml:"section"`
	Profile [][]float64   `yaml:"profile" toml:"profile"`
}

var (
	zAxis = mgl64.Vec3{0, 0, 1}
	xAxis = mgl64.Vec3{1, 0, 0}
)

// Apply adds the shape to the builder.
func (s *Shape) Apply(b *mesh.Builder) error {
	add, ok := shapeKinds[s.Kind]
	if !ok {
		return invalidf("unknown shape kind %q", s.Kind)
	}
	return add(s, b)
}

// Kinds lists the shape kinds a recipe can use.
func Kinds() []string {
	kinds := make([]string, 0, len(shapeKinds))
	for kind := range shapeKinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

type shapeFunc func(s *Shape, b *mesh.Builder) error

var shapeKinds = map[string]shapeFunc{
	"box":                addBox,
	"bounding_box":       addBoundingBox,
	"pyramid":            addPyramid,
	"sphere":             addSphere,
	"ellipsoid":          addEllipsoid,
	"subdivision_sphere": addSubdivisionSphere,
	"torus":              addTorus,
	"cone":               addCone,
	"cylinder":           addCylinder,
	"pipe":               addPipe,
	"arrow":              addArrow,
	"revolve":            addRevolve,
	"tetrahedron":        addTetrahedron,
	"octahedron":         addOctahedron,
	"dodecahedron":       addDodecahedron,
	"icosahedron":        addIcosahedron,
	"polygon":            addPolygon,
	"tube":               addTube,
	"extrusion":          addExtrusion,
}

// frame reads the center, forward and up fields shared by the solids.
func (s *Shape) frame() (center, forward, up mgl64.Vec3, err error) {
	if center, err = vec3("center", s.Center, mgl64.Vec3{}); err != nil {
		return
	}
	if forward, err = vec3("forward", s.Forward, xAxis); err != nil {
		return
	}
	up, err = vec3("up", s.Up, zAxis)
	return
}

func (s *Shape) segment() (from, to mgl64.Vec3, err error) {
	if from, err = vec3("from", s.From, mgl64.Vec3{}); err != nil {
		return
	}
	to, err = vec3("to", s.To, zAxis)
	return
}

func addBox(s *Shape, b *mesh.Builder) error {
	center, err := vec3("center", s.Center, mgl64.Vec3{})
	if err != nil {
		return err
	}
	size, err := vec3("size", s.Size, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return err
	}
	faces := mesh.AllFaces
	if s.Faces != "" {
		if faces, err = mesh.ParseBoxFaces(s.Faces); err != nil {
			return err
		}
	}
	b.AddBox(center, size.X(), size.Y(), size.Z(), faces)
	return nil
}

func addBoundingBox(s *Shape, b *mesh.Builder) error {
	min, err := vec3("min", s.Min, mgl64.Vec3{})
	if err != nil {
		return err
	}
	max, err := vec3("max", s.Max, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return err
	}
	return b.AddBoundingBox(min, max, s.Diameter)
}

func addPyramid(s *Shape, b *mesh.Builder) error {
	center, forward, up, err := s.frame()
	if err != nil {
		return err
	}
	b.AddPyramid(center, forward, up, s.Side, s.Height, s.BaseCap)
	return nil
}

func addSphere(s *Shape, b *mesh.Builder) error {
	center, err := vec3("center", s.Center, mgl64.Vec3{})
	if err != nil {
		return err
	}
	return b.AddSphere(center, s.Radius, s.ThetaDiv, s.PhiDiv)
}

func addEllipsoid(s *Shape, b *mesh.Builder) error {
	center, err := vec3("center", s.Center, mgl64.Vec3{})
	if err != nil {
		return err
	}
	radii, err := vec3("radii", s.Radii, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return err
	}
	return b.AddEllipsoid(center, radii.X(), radii.Y(), radii.Z(), s.ThetaDiv, s.PhiDiv)
}

func addSubdivisionSphere(s *Shape, b *mesh.Builder) error {
	center, err := vec3("center", s.Center, mgl64.Vec3{})
	if err != nil {
		return err
	}
	return b.AddSubdivisionSphere(center, s.Radius, s.Subdivisions)
}

func addTorus(s *Shape, b *mesh.Builder) error {
	return b.AddTorus(s.Diameter, s.TubeDiameter, s.ThetaDiv, s.PhiDiv)
}

func addCone(s *Shape, b *mesh.Builder) error {
	origin, err := vec3("origin", s.Origin, mgl64.Vec3{})
	if err != nil {
		return err
	}
	direction, err := vec3("direction", s.Direction, zAxis)
	if err != nil {
		return err
	}
	return b.AddCone(origin, direction, s.Radius, s.TopRadius, s.Height, s.BaseCap, s.TopCap, s.ThetaDiv)
}

func addCylinder(s *Shape, b *mesh.Builder) error {
	from, to, err := s.segment()
	if err != nil {
		return err
	}
	return b.AddCylinder(from, to, s.Diameter, s.ThetaDiv, s.BaseCap, s.TopCap)
}

func addPipe(s *Shape, b *mesh.Builder) error {
	from, to, err := s.segment()
	if err != nil {
		return err
	}
	return b.AddPipe(from, to, s.InnerDiameter, s.Diameter, s.ThetaDiv)
}

func addArrow(s *Shape, b *mesh.Builder) error {
	from, to, err := s.segment()
	if err != nil {
		return err
	}
	head := s.HeadLength
	if head == 0 {
		head = 3
	}
	return b.AddArrow(from, to, s.Diameter, head, s.ThetaDiv)
}

func addRevolve(s *Shape, b *mesh.Builder) error {
	origin, err := vec3("origin", s.Origin, mgl64.Vec3{})
	if err != nil {
		return err
	}
	direction, err := vec3("direction", s.Direction, zAxis)
	if err != nil {
		return err
	}
	profile, err := vec2s("profile", s.Profile)
	if err != nil {
		return err
	}
	if s.Smooth {
		return b.AddSurfaceOfRevolution(profile, nil, origin, direction, s.ThetaDiv)
	}
	return b.AddRevolvedGeometry(profile, nil, origin, direction, s.ThetaDiv)
}

func addTetrahedron(s *Shape, b *mesh.Builder) error {
	center, forward, up, err := s.frame()
	if err != nil {
		return err
	}
	b.AddTetrahedron(center, forward, up, s.Side)
	return nil
}

func addOctahedron(s *Shape, b *mesh.Builder) error {
	center, forward, up, err := s.frame()
	if err != nil {
		return err
	}
	b.AddOctahedron(center, forward, up, s.Side, s.Height)
	return nil
}

func addDodecahedron(s *Shape, b *mesh.Builder) error {
	center, forward, up, err := s.frame()
	if err != nil {
		return err
	}
	return b.AddDodecahedron(center, forward, up, s.Side)
}

func addIcosahedron(s *Shape, b *mesh.Builder) error {
	center, err := vec3("center", s.Center, mgl64.Vec3{})
	if err != nil {
		return err
	}
	b.AddRegularIcosahedron(center, s.Radius, s.Shared)
	return nil
}

func addPolygon(s *Shape, b *mesh.Builder) error {
	outer, err := vec3s("points", s.Points)
	if err != nil {
		return err
	}
	holes := make([][]mgl64.Vec3, len(s.Holes))
	for i, hole := range s.Holes {
		if holes[i], err = vec3s("hole", hole); err != nil {
			return errors.Wrapf(err, "hole %d", i)
		}
	}
	return b.AddPolygonWithHoles(outer, holes...)
}

func addTube(s *Shape, b *mesh.Builder) error {
	path, err := vec3s("path", s.Path)
	if err != nil {
		return err
	}
	tube := mesh.Tube{
		Path:            path,
		Diameter:        s.Diameter,
		Diameters:       s.Diameters,
		ThetaDiv:        s.ThetaDiv,
		IsTubeClosed:    s.Closed,
		IsSectionClosed: true,
		FrontCap:        s.BaseCap,
		BackCap:         s.TopCap,
	}
	if s.Section != nil {
		if tube.Section, err = vec2s("section", s.Section); err != nil {
			return err
		}
	}
	if tube.SectionXAxis, err = vec3("x_axis", s.XAxis, mgl64.Vec3{}); err != nil {
		return err
	}
	return b.AddTube(tube)
}

func addExtrusion(s *Shape, b *mesh.Builder) error {
	section, err := vec2s("section", s.Section)
	if err != nil {
		return err
	}
	from, to, err := s.segment()
	if err != nil {
		return err
	}
	axis, err := vec3("x_axis", s.XAxis, xAxis)
	if err != nil {
		return err
	}
	return b.AddExtrudedGeometry(section, axis, from, to)
}
