// Package recipe reads mesh recipes: lists of shapes to build, followed by
// optional analysis of the result. Recipes are YAML or TOML files with the
// same layout.
package recipe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecipe is returned for recipes that decode but can't be built.
var ErrInvalidRecipe = errors.New("invalid recipe")

type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatOf picks the format from a file's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, errors.Errorf("unknown recipe format for %q", path)
}

type Recipe struct {
	Name    string  `yaml:"name" toml:"name"`
	Options Options `yaml:"options" toml:"options"`
	Shapes  []Shape `yaml:"shapes" toml:"shapes"`
	Post    Post    `yaml:"post" toml:"post"`
}

// Options are the builder options.
type Options struct {
	Normals            bool `yaml:"normals" toml:"normals"`
	TextureCoordinates bool `yaml:"texture_coordinates" toml:"texture_coordinates"`
	Tangents           bool `yaml:"tangents" toml:"tangents"`
}

// Post lists what to do with the mesh once every shape is built. Steps run in
// the order of the fields.
type Post struct {
	// Subdivide splits every triangle in four this many times.
	Subdivide int `yaml:"subdivide" toml:"subdivide"`
	// Weld merges vertices closer than this distance. Zero skips welding.
	Weld float64 `yaml:"weld" toml:"weld"`
	// Cut keeps the part of the mesh on the normal's side of a plane.
	Cut *Plane `yaml:"cut" toml:"cut"`
	// RecalculateNormals replaces the normals with ones computed from the
	// triangles.
	RecalculateNormals bool `yaml:"recalculate_normals" toml:"recalculate_normals"`
	// SharpAngle reports edges where faces meet at more than this many
	// degrees. Zero skips the search.
	SharpAngle float64 `yaml:"sharp_angle" toml:"sharp_angle"`
	// Contour reports the closed and open curves where the mesh crosses a
	// plane.
	Contour *Plane `yaml:"contour" toml:"contour"`
}

type Plane struct {
	Origin []float64 `yaml:"origin" toml:"origin"`
	Normal []float64 `yaml:"normal" toml:"normal"`
}

// Load reads a recipe file, choosing the decoder by extension.
func Load(path string) (*Recipe, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading recipe")
	}
	r, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return r, nil
}

// Parse decodes a recipe. Unknown fields are errors, so typos don't go
// unnoticed.
func Parse(data []byte, format Format) (*Recipe, error) {
	r := &Recipe{}
	switch format {
	case YAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(r); err != nil {
			return nil, errors.Wrap(err, "decoding yaml recipe")
		}
	case TOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(r); err != nil {
			return nil, errors.Wrap(err, "decoding toml recipe")
		}
	default:
		return nil, errors.Errorf("unknown recipe format %d", format)
	}
	return r, nil
}

// BuilderOptions converts the recipe's options for mesh.NewBuilder.
func (o Options) BuilderOptions() mesh.Options {
	return mesh.Options{
		Normals:            o.Normals,
		TextureCoordinates: o.TextureCoordinates,
		Tangents:           o.Tangents,
	}
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidRecipe, format, args...)
}

// vec3 reads an optional vector, falling back to def when absent.
func vec3(name string, v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl64.Vec3{}, invalidf("%s needs 3 coordinates, got %d", name, len(v))
}

func vec3s(name string, vs [][]float64) ([]mgl64.Vec3, error) {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		if len(v) != 3 {
			return nil, invalidf("%s point %d needs 3 coordinates, got %d", name, i, len(v))
		}
		out[i] = mgl64.Vec3{v[0], v[1], v[2]}
	}
	return out, nil
}

func vec2s(name string, vs [][]float64) ([]mgl64.Vec2, error) {
	out := make([]mgl64.Vec2, len(vs))
	for i, v := range vs {
		if len(v) != 2 {
			return nil, invalidf("%s point %d needs 2 coordinates, got %d", name, i, len(v))
		}
		out[i] = mgl64.Vec2{v[0], v[1]}
	}
	return out, nil
}
