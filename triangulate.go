// Package meshkit triangulates polygons with holes and builds triangle meshes
// from parametric primitives.
//
// This package re-exports the common entry points. The triangulate, mesh,
// meshgeom and recipe packages hold the full API.
package meshkit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/mesh"
	"github.com/osuushi/meshkit/triangulate"
)

type Mesh = mesh.Mesh
type Builder = mesh.Builder
type Options = mesh.Options
type Polygon3D = triangulate.Polygon3D

var (
	ErrInvalidOperation   = mesh.ErrInvalidOperation
	ErrImpossibleGeometry = mesh.ErrImpossibleGeometry
	ErrDegeneratePolygon  = triangulate.ErrDegeneratePolygon
)

// Take a polygon and any number of holes and convert them into triangles. The
// result is a flat list of index triples into the outer points followed by
// each hole's points. See triangulate.Triangulate for the details.
func Triangulate(polygon []mgl64.Vec2, holes ...[]mgl64.Vec2) ([]int, error) {
	return triangulate.Triangulate(polygon, holes...)
}

// NewBuilder returns an empty mesh builder writing the attributes selected by
// options.
func NewBuilder(options Options) *Builder {
	return mesh.NewBuilder(options)
}
