package mesh

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/vecmath"
	"github.com/pkg/errors"
)

// Options selects which optional vertex attributes a Builder writes.
type Options struct {
	Normals            bool
	TextureCoordinates bool
	// Tangents are computed by ToMesh from normals and texture coordinates, so
	// asking for them turns both of those on.
	Tangents bool
	// Logger receives debug messages about degenerate input. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Builder accumulates geometry. Every Add method appends its own vertices and
// then indices relative to the position count before the call, so calls
// compose without disturbing each other.
//
// A Builder is not safe for concurrent use. If a call returns an error the
// builder may hold part of that call's output and should be discarded.
type Builder struct {
	Mesh
	options Options
	logger  *slog.Logger
}

func NewBuilder(options Options) *Builder {
	if options.Tangents {
		options.Normals = true
		options.TextureCoordinates = true
	}
	b := &Builder{options: options, logger: options.Logger}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.Positions = []mgl64.Vec3{}
	b.TriangleIndices = []int{}
	if options.Normals {
		b.Normals = []mgl64.Vec3{}
	}
	if options.TextureCoordinates {
		b.TextureCoordinates = []mgl64.Vec2{}
	}
	return b
}

func (b *Builder) HasNormals() bool            { return b.options.Normals }
func (b *Builder) HasTextureCoordinates() bool { return b.options.TextureCoordinates }
func (b *Builder) HasTangents() bool           { return b.options.Tangents }

// PositionCount is the number of vertices added so far.
func (b *Builder) PositionCount() int {
	return len(b.Positions)
}

// ToMesh returns a copy of the current geometry. Tangents and bitangents are
// computed here when the builder tracks them.
func (b *Builder) ToMesh() (*Mesh, error) {
	if err := b.CheckConsistency(); err != nil {
		return nil, err
	}
	m := b.Mesh.Clone()
	if b.options.Tangents && len(m.TriangleIndices) > 0 {
		tangents, bitangents, err := ComputeTangents(m.Positions, m.Normals, m.TextureCoordinates, m.TriangleIndices)
		if err != nil {
			return nil, err
		}
		m.Tangents, m.BiTangents = tangents, bitangents
	}
	return m, nil
}

// CheckConsistency verifies the index invariants and that every tracked
// attribute has exactly one value per position.
func (b *Builder) CheckConsistency() error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.options.Normals && len(b.Normals) != len(b.Positions) {
		return invalidf("%d normals for %d positions", len(b.Normals), len(b.Positions))
	}
	if b.options.TextureCoordinates && len(b.TextureCoordinates) != len(b.Positions) {
		return invalidf("%d texture coordinates for %d positions", len(b.TextureCoordinates), len(b.Positions))
	}
	return nil
}

// Append copies another mesh into the builder, offsetting its indices.
func (b *Builder) Append(m *Mesh) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "append")
	}
	if err := b.checkAttributes("append", len(m.Positions), m.Normals, m.TextureCoordinates); err != nil {
		return err
	}
	index0 := len(b.Positions)
	b.Positions = append(b.Positions, m.Positions...)
	if b.options.Normals {
		b.Normals = append(b.Normals, m.Normals...)
	}
	if b.options.TextureCoordinates {
		b.TextureCoordinates = append(b.TextureCoordinates, m.TextureCoordinates...)
	}
	for _, index := range m.TriangleIndices {
		b.TriangleIndices = append(b.TriangleIndices, index0+index)
	}
	return nil
}

// Scale scales every position about the origin. Normals are transformed by
// the inverse scale and renormalized.
func (b *Builder) Scale(sx, sy, sz float64) {
	for i, p := range b.Positions {
		b.Positions[i] = mgl64.Vec3{p.X() * sx, p.Y() * sy, p.Z() * sz}
	}
	if !b.options.Normals {
		return
	}
	inverse := mgl64.Vec3{safeInverse(sx), safeInverse(sy), safeInverse(sz)}
	for i, n := range b.Normals {
		b.Normals[i] = mgl64.Vec3{n.X() * inverse.X(), n.Y() * inverse.Y(), n.Z() * inverse.Z()}
	}
	vecmath.NormalizeBatch(b.Normals)
}

// Translate moves every position by offset.
func (b *Builder) Translate(offset mgl64.Vec3) {
	for i := range b.Positions {
		b.Positions[i] = b.Positions[i].Add(offset)
	}
}

// ComputeNormals replaces the normals with area weighted vertex normals
// computed from the triangles, and starts tracking normals if the builder was
// not already.
func (b *Builder) ComputeNormals() {
	b.options.Normals = true
	b.Normals = make([]mgl64.Vec3, len(b.Positions))
	vecmath.AccumulateFaceNormals(b.Normals, b.Positions, b.TriangleIndices)
	vecmath.NormalizeBatch(b.Normals)
}

func safeInverse(s float64) float64 {
	if s == 0 {
		return 0
	}
	return 1 / s
}

// addVertex appends one vertex, writing only the attributes being tracked.
func (b *Builder) addVertex(p, n mgl64.Vec3, uv mgl64.Vec2) int {
	index := len(b.Positions)
	b.Positions = append(b.Positions, p)
	if b.options.Normals {
		b.Normals = append(b.Normals, n)
	}
	if b.options.TextureCoordinates {
		b.TextureCoordinates = append(b.TextureCoordinates, uv)
	}
	return index
}

// addVertices appends parallel arrays that have already been checked with
// checkAttributes.
func (b *Builder) addVertices(points, normals []mgl64.Vec3, uvs []mgl64.Vec2) {
	b.Positions = append(b.Positions, points...)
	if b.options.Normals {
		b.Normals = append(b.Normals, normals...)
	}
	if b.options.TextureCoordinates {
		b.TextureCoordinates = append(b.TextureCoordinates, uvs...)
	}
}

func (b *Builder) addTriangleIndices(i0, i1, i2 int) {
	b.TriangleIndices = append(b.TriangleIndices, i0, i1, i2)
}

// checkAttributes fails when a tracked attribute is not supplied once per
// point. Untracked attributes are ignored whatever their length.
func (b *Builder) checkAttributes(op string, count int, normals []mgl64.Vec3, uvs []mgl64.Vec2) error {
	if b.options.Normals && len(normals) != count {
		return invalidf("%s: %d normals for %d points", op, len(normals), count)
	}
	if b.options.TextureCoordinates && len(uvs) != count {
		return invalidf("%s: %d texture coordinates for %d points", op, len(uvs), count)
	}
	return nil
}
