package recipe

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAndBuild(t *testing.T, name string) (*Recipe, *Result) {
	t.Helper()
	r, err := Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	result, err := r.Build(nil)
	require.NoError(t, err)
	require.NoError(t, result.Mesh.Validate())
	return r, result
}

func TestFormatOf(t *testing.T) {
	for path, expected := range map[string]Format{
		"a.yaml":     YAML,
		"b.YML":      YAML,
		"dir/c.toml": TOML,
	} {
		format, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}
	_, err := FormatOf("recipe.json")
	assert.Error(t, err)
	assert.Equal(t, "toml", TOML.String())
}

func TestLamp(t *testing.T) {
	r, result := loadAndBuild(t, "lamp.yaml")
	assert.Equal(t, "lamp", r.Name)
	require.Len(t, r.Shapes, 2)
	assert.Equal(t, 12, r.Shapes[0].ThetaDiv)

	m := result.Mesh
	// The cylinder welds down to two rings and two centres.
	assert.Len(t, m.Positions, 2+2*12+162)
	assert.Equal(t, 4*12+320, m.TriangleCount())
	assert.True(t, result.Closed())
	// Only the rims are sharp.
	assert.Len(t, result.SharpEdges, 24)

	require.Len(t, result.Contours, 1)
	contour := result.Contours[0]
	assert.True(t, contour.Closed)
	assert.Len(t, contour.Points, 24)
	for _, p := range contour.Points {
		assert.InDelta(t, 1, p.Z(), 1e-9)
	}

	t.Run("toml builds the same mesh", func(t *testing.T) {
		r2, result2 := loadAndBuild(t, "lamp.toml")
		assert.Equal(t, r, r2)
		assert.Equal(t, result, result2)
	})
}

func TestBracket(t *testing.T) {
	r, result := loadAndBuild(t, "bracket.yml")
	// Named after the file when the recipe doesn't say.
	assert.Equal(t, "bracket", r.Name)
	m := result.Mesh
	for _, p := range m.Positions {
		assert.LessOrEqual(t, p.Z(), 1e-12)
	}
	require.Len(t, m.Normals, len(m.Positions))
	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-9)
	}
	// The bottom ring has its own vertices, and the cut leaves the walls open.
	assert.False(t, result.Closed())
	assert.Empty(t, result.SharpEdges)
	assert.Empty(t, result.Contours)
}

func TestParseErrors(t *testing.T) {
	t.Run("unknown fields", func(t *testing.T) {
		_, err := Parse([]byte("shapes:\n  - kind: box\n    colour: red\n"), YAML)
		assert.Error(t, err)
		_, err = Parse([]byte("[[shapes]]\nkind = \"box\"\ncolour = \"red\"\n"), TOML)
		assert.Error(t, err)
	})

	build := func(yaml string) error {
		r, err := Parse([]byte(yaml), YAML)
		require.NoError(t, err)
		_, err = r.Build(nil)
		return err
	}

	t.Run("unknown kind", func(t *testing.T) {
		err := build("shapes:\n  - kind: teapot\n")
		assert.True(t, errors.Is(err, ErrInvalidRecipe))
		assert.Contains(t, err.Error(), "shape 0 (teapot)")
	})

	t.Run("short vector", func(t *testing.T) {
		err := build("shapes:\n  - kind: sphere\n    center: [1, 2]\n    radius: 1\n")
		assert.True(t, errors.Is(err, ErrInvalidRecipe))
	})

	t.Run("builder errors pass through", func(t *testing.T) {
		err := build("shapes:\n  - kind: torus\n    diameter: 2\n    theta_div: 8\n    phi_div: 8\n")
		assert.True(t, errors.Is(err, mesh.ErrImpossibleGeometry))
	})

	t.Run("no shapes", func(t *testing.T) {
		assert.True(t, errors.Is(build("name: empty\n"), ErrInvalidRecipe))
	})
}

func TestShapes(t *testing.T) {
	assert.Contains(t, Kinds(), "torus")
	assert.IsIncreasing(t, Kinds())

	for _, s := range []Shape{
		{Kind: "box"},
		{Kind: "bounding_box", Diameter: 0.1},
		{Kind: "pyramid", Side: 1, Height: 1, BaseCap: true},
		{Kind: "sphere", Radius: 1, ThetaDiv: 8, PhiDiv: 4},
		{Kind: "ellipsoid", Radii: []float64{1, 2, 3}, ThetaDiv: 8, PhiDiv: 4},
		{Kind: "subdivision_sphere", Radius: 1},
		{Kind: "torus", Diameter: 2, TubeDiameter: 1, ThetaDiv: 8, PhiDiv: 6},
		{Kind: "cone", Radius: 1, Height: 2, BaseCap: true, ThetaDiv: 8},
		{Kind: "cylinder", Diameter: 1, ThetaDiv: 8},
		{Kind: "pipe", InnerDiameter: 0.5, Diameter: 1, ThetaDiv: 8},
		{Kind: "arrow", Diameter: 0.1, ThetaDiv: 8},
		{Kind: "revolve", Profile: [][]float64{{0, 1}, {1, 1}}, Smooth: true, ThetaDiv: 8},
		{Kind: "tetrahedron", Side: 1},
		{Kind: "octahedron", Side: 1, Height: 1},
		{Kind: "dodecahedron", Side: 1},
		{Kind: "icosahedron", Radius: 1, Shared: true},
		{Kind: "polygon", Points: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		{Kind: "tube", Path: [][]float64{{0, 0, 0}, {0, 0, 1}}, Diameter: 1, ThetaDiv: 6, BaseCap: true},
		{Kind: "extrusion", Section: [][]float64{{0, 0}, {1, 0}}, XAxis: []float64{1, 0, 0}},
	} {
		s := s
		t.Run(s.Kind, func(t *testing.T) {
			b := mesh.NewBuilder(mesh.Options{Normals: true})
			require.NoError(t, s.Apply(b))
			assert.Greater(t, b.TriangleCount(), 0)
			require.NoError(t, b.CheckConsistency())
		})
	}

	t.Run("tube section", func(t *testing.T) {
		s := Shape{
			Kind:     "tube",
			Path:     [][]float64{{0, 0, 0}, {0, 0, 1}},
			Section:  [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}},
			Diameter: 2,
			XAxis:    []float64{1, 0, 0},
		}
		b := mesh.NewBuilder(mesh.Options{})
		require.NoError(t, s.Apply(b))
		require.Len(t, b.Positions, 8)
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, b.Positions[0])
	})
}
