package recipe

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/osuushi/meshkit/meshgeom"
	"github.com/pkg/errors"
)

// Result is a built recipe and what the analysis steps found.
type Result struct {
	Mesh        *mesh.Mesh
	BorderEdges []meshgeom.Edge
	SharpEdges  []meshgeom.Edge
	Contours    []meshgeom.Contour
}

// Closed reports whether every edge of the mesh is shared by two triangles.
func (r *Result) Closed() bool {
	return len(r.BorderEdges) == 0
}

// Build runs every shape through one builder, then the post steps. A nil
// logger means slog.Default().
func (r *Recipe) Build(logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(r.Shapes) == 0 {
		return nil, invalidf("recipe %q has no shapes", r.Name)
	}
	options := r.Options.BuilderOptions()
	options.Logger = logger
	b := mesh.NewBuilder(options)
	for i := range r.Shapes {
		s := &r.Shapes[i]
		before := b.PositionCount()
		if err := s.Apply(b); err != nil {
			return nil, errors.Wrapf(err, "shape %d (%s)", i, s.Kind)
		}
		logger.Debug("built shape", "index", i, "kind", s.Kind, "positions", b.PositionCount()-before)
	}
	for i := 0; i < r.Post.Subdivide; i++ {
		b.Subdivide4()
	}
	m, err := b.ToMesh()
	if err != nil {
		return nil, errors.Wrap(err, "finishing mesh")
	}
	return r.Post.run(m, logger)
}

func (p *Post) run(m *mesh.Mesh, logger *slog.Logger) (*Result, error) {
	var err error
	if p.Weld > 0 {
		before := len(m.Positions)
		if m, err = meshgeom.Simplify(m, p.Weld); err != nil {
			return nil, errors.Wrap(err, "weld")
		}
		logger.Debug("welded", "before", before, "after", len(m.Positions))
	}
	if p.Cut != nil {
		origin, normal, err := p.Cut.vectors("cut")
		if err != nil {
			return nil, err
		}
		if m, err = meshgeom.Cut(m, origin, normal); err != nil {
			return nil, errors.Wrap(err, "cut")
		}
	}
	if p.RecalculateNormals {
		if err := meshgeom.RecalculateNormals(m); err != nil {
			return nil, errors.Wrap(err, "normals")
		}
	}

	result := &Result{Mesh: m, BorderEdges: meshgeom.FindBorderEdges(m.TriangleIndices)}
	if p.SharpAngle > 0 {
		result.SharpEdges = meshgeom.FindSharpEdges(m.Positions, m.TriangleIndices, p.SharpAngle)
	}
	if p.Contour != nil {
		origin, normal, err := p.Contour.vectors("contour")
		if err != nil {
			return nil, err
		}
		segments, err := meshgeom.GetContourSegments(m, origin, normal)
		if err != nil {
			return nil, errors.Wrap(err, "contour")
		}
		if result.Contours, err = meshgeom.CombineSegments(segments, contourJoinDistance); err != nil {
			return nil, errors.Wrap(err, "contour")
		}
	}
	return result, nil
}

const contourJoinDistance = 1e-9

func (p *Plane) vectors(name string) (origin, normal mgl64.Vec3, err error) {
	if origin, err = vec3(name+" origin", p.Origin, mgl64.Vec3{}); err != nil {
		return
	}
	normal, err = vec3(name+" normal", p.Normal, zAxis)
	return
}
