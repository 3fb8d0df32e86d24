package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/vecmath"
	"github.com/osuushi/meshkit/triangulate"
	"github.com/pkg/errors"
)

// AddTriangle adds a flat shaded triangle. Texture coordinates are (0,0),
// (1,0) and (0,1).
func (b *Builder) AddTriangle(p0, p1, p2 mgl64.Vec3) {
	b.AddTriangleUV(p0, p1, p2, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1})
}

func (b *Builder) AddTriangleUV(p0, p1, p2 mgl64.Vec3, uv0, uv1, uv2 mgl64.Vec2) {
	n := faceNormal(p0, p1, p2)
	i0 := b.addVertex(p0, n, uv0)
	b.addVertex(p1, n, uv1)
	b.addVertex(p2, n, uv2)
	b.addTriangleIndices(i0, i0+1, i0+2)
}

// AddQuad adds a flat shaded quad from four counterclockwise corners.
func (b *Builder) AddQuad(p0, p1, p2, p3 mgl64.Vec3) {
	b.AddQuadUV(p0, p1, p2, p3, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{0, 1})
}

func (b *Builder) AddQuadUV(p0, p1, p2, p3 mgl64.Vec3, uv0, uv1, uv2, uv3 mgl64.Vec2) {
	// The diagonals give a usable normal for slightly warped quads too.
	n := normalizeOr(p2.Sub(p0).Cross(p3.Sub(p1)), mgl64.Vec3{})
	i0 := b.addVertex(p0, n, uv0)
	b.addVertex(p1, n, uv1)
	b.addVertex(p2, n, uv2)
	b.addVertex(p3, n, uv3)
	b.addTriangleIndices(i0, i0+1, i0+2)
	b.addTriangleIndices(i0+2, i0+3, i0)
}

// AddTriangles adds independent triangles, three points each.
func (b *Builder) AddTriangles(points, normals []mgl64.Vec3, uvs []mgl64.Vec2) error {
	if len(points)%3 != 0 {
		return invalidf("add triangles: %d points is not a multiple of 3", len(points))
	}
	if err := b.checkAttributes("add triangles", len(points), normals, uvs); err != nil {
		return err
	}
	index0 := len(b.Positions)
	b.addVertices(points, normals, uvs)
	for i := 0; i < len(points); i++ {
		b.TriangleIndices = append(b.TriangleIndices, index0+i)
	}
	return nil
}

// AddQuads adds independent quads, four counterclockwise points each.
func (b *Builder) AddQuads(points, normals []mgl64.Vec3, uvs []mgl64.Vec2) error {
	if len(points)%4 != 0 {
		return invalidf("add quads: %d points is not a multiple of 4", len(points))
	}
	if err := b.checkAttributes("add quads", len(points), normals, uvs); err != nil {
		return err
	}
	index0 := len(b.Positions)
	b.addVertices(points, normals, uvs)
	for i := index0; i < len(b.Positions); i += 4 {
		b.addTriangleIndices(i, i+1, i+2)
		b.addTriangleIndices(i+2, i+3, i)
	}
	return nil
}

// AddPolygon adds a convex polygon as a fan around its first point. Texture
// coordinates are the points' coordinates in the polygon's plane.
func (b *Builder) AddPolygon(points []mgl64.Vec3) error {
	if len(points) < 3 {
		return invalidf("add polygon: %d points", len(points))
	}
	n, uvs := b.planarAttributes(points)
	index0 := len(b.Positions)
	for i, p := range points {
		b.addVertex(p, n, uvs[i])
	}
	for i := 1; i+1 < len(points); i++ {
		b.addTriangleIndices(index0, index0+i, index0+i+1)
	}
	return nil
}

// AddTriangleFan adds a fan over vertices that are already in the builder.
func (b *Builder) AddTriangleFan(vertices []int) error {
	if len(vertices) < 3 {
		return invalidf("add triangle fan: %d vertices", len(vertices))
	}
	for _, v := range vertices {
		if v < 0 || v >= len(b.Positions) {
			return invalidf("add triangle fan: vertex %d out of range", v)
		}
	}
	for i := 1; i+1 < len(vertices); i++ {
		b.addTriangleIndices(vertices[0], vertices[i], vertices[i+1])
	}
	return nil
}

// AddTriangleFanPoints adds new vertices and fans them around the first one.
func (b *Builder) AddTriangleFanPoints(points, normals []mgl64.Vec3, uvs []mgl64.Vec2) error {
	if len(points) < 3 {
		return invalidf("add triangle fan: %d points", len(points))
	}
	if err := b.checkAttributes("add triangle fan", len(points), normals, uvs); err != nil {
		return err
	}
	index0 := len(b.Positions)
	b.addVertices(points, normals, uvs)
	for i := 1; i+1 < len(points); i++ {
		b.addTriangleIndices(index0, index0+i, index0+i+1)
	}
	return nil
}

// AddTriangleStrip adds a strip in which every point after the second forms
// a triangle with the two before it. Winding alternates so every triangle
// faces the same way as the first.
func (b *Builder) AddTriangleStrip(points, normals []mgl64.Vec3, uvs []mgl64.Vec2) error {
	if len(points) < 3 {
		return invalidf("add triangle strip: %d points", len(points))
	}
	if err := b.checkAttributes("add triangle strip", len(points), normals, uvs); err != nil {
		return err
	}
	index0 := len(b.Positions)
	b.addVertices(points, normals, uvs)
	for i := 0; i+2 < len(points); i++ {
		if i%2 == 0 {
			b.addTriangleIndices(index0+i, index0+i+1, index0+i+2)
		} else {
			b.addTriangleIndices(index0+i+1, index0+i, index0+i+2)
		}
	}
	return nil
}

// AddPolygonByTriangulation adds a simple, possibly concave, planar polygon.
func (b *Builder) AddPolygonByTriangulation(points []mgl64.Vec3) error {
	return b.AddPolygonWithHoles(points)
}

// AddPolygonWithHoles triangulates a planar polygon with holes. The triangles
// face the way the outer loop winds, whatever the winding of the holes.
func (b *Builder) AddPolygonWithHoles(outer []mgl64.Vec3, holes ...[]mgl64.Vec3) error {
	if len(outer) < 3 {
		return invalidf("add polygon: %d points", len(outer))
	}
	poly := triangulate.Polygon3D{Points: outer}
	frame, err := poly.Frame()
	if err != nil {
		return errors.Wrap(err, "add polygon")
	}
	triangles, err := poly.Triangulate(holes...)
	if err != nil {
		return errors.Wrap(err, "add polygon")
	}
	if len(triangles) == 0 {
		b.logger.Debug("polygon has no area", "points", len(outer))
		return nil
	}

	index0 := len(b.Positions)
	for _, loop := range append([][]mgl64.Vec3{outer}, holes...) {
		for _, p := range loop {
			b.addVertex(p, frame.Up, frame.Project(p))
		}
	}
	for _, index := range triangles {
		b.TriangleIndices = append(b.TriangleIndices, index0+index)
	}
	return nil
}

// planarAttributes returns a normal for points and their coordinates in the
// plane. A polygon with no normal gets zero values.
func (b *Builder) planarAttributes(points []mgl64.Vec3) (mgl64.Vec3, []mgl64.Vec2) {
	flat, frame, err := triangulate.Polygon3D{Points: points}.Flatten()
	if err != nil {
		b.logger.Debug("polygon normal fallback", "points", len(points), "error", err)
		return mgl64.Vec3{}, make([]mgl64.Vec2, len(points))
	}
	return frame.Up, flat
}

// AddRectangularMesh adds a grid of points given row by row, columns points
// per row. Normals are averaged from the grid's faces and texture coordinates
// run from 0 to 1 across each axis.
func (b *Builder) AddRectangularMesh(points []mgl64.Vec3, columns int, rowsClosed, columnsClosed bool) error {
	if columns < 2 || len(points)%columns != 0 || len(points)/columns < 2 {
		return invalidf("add rectangular mesh: %d points in rows of %d", len(points), columns)
	}
	rows := len(points) / columns
	index0 := len(b.Positions)
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			uv := mgl64.Vec2{float64(j) / float64(columns-1), float64(i) / float64(rows-1)}
			b.addVertex(points[i*columns+j], mgl64.Vec3{}, uv)
		}
	}
	indexStart := len(b.TriangleIndices)
	if err := b.AddRectangularMeshIndices(index0, rows, columns, rowsClosed, columnsClosed); err != nil {
		return err
	}
	if b.options.Normals {
		b.smoothNormals(index0, indexStart)
	}
	return nil
}

// smoothNormals sets the normals of vertices from index0 on by accumulating
// the faces in the index list from indexStart on.
func (b *Builder) smoothNormals(index0, indexStart int) {
	normals := b.Normals[index0:]
	for i := range normals {
		normals[i] = mgl64.Vec3{}
	}
	indices := make([]int, 0, len(b.TriangleIndices)-indexStart)
	for _, index := range b.TriangleIndices[indexStart:] {
		indices = append(indices, index-index0)
	}
	vecmath.AccumulateFaceNormals(normals, b.Positions[index0:], indices)
	vecmath.NormalizeBatch(normals)
}

// AddRectangularMeshIndices adds the triangles of a grid of vertices already
// in the builder, laid out row by row from index0. A closed axis wraps its
// last row or column around to the first. Triangles face along
// d(row) x d(column).
func (b *Builder) AddRectangularMeshIndices(index0, rows, columns int, rowsClosed, columnsClosed bool) error {
	return b.addGrid(index0, rows, columns, rowsClosed, columnsClosed, gridNormal)
}

// AddRectangularMeshIndicesFlipped is AddRectangularMeshIndices with every
// triangle wound the other way.
func (b *Builder) AddRectangularMeshIndicesFlipped(index0, rows, columns int, rowsClosed, columnsClosed bool) error {
	return b.addGrid(index0, rows, columns, rowsClosed, columnsClosed, gridFlipped)
}

// AddRectangularMeshIndicesSpherical indexes a latitude and longitude grid
// whose first and last rows each sit on a pole. The triangles that would
// collapse onto a pole are left out.
func (b *Builder) AddRectangularMeshIndicesSpherical(index0, rows, columns int) error {
	return b.addGrid(index0, rows, columns, false, false, gridSpherical)
}

type gridWinding int

const (
	gridNormal gridWinding = iota
	gridFlipped
	gridSpherical
)

func (b *Builder) addGrid(index0, rows, columns int, rowsClosed, columnsClosed bool, winding gridWinding) error {
	if rows < 2 || columns < 2 {
		return invalidf("rectangular mesh of %d by %d", rows, columns)
	}
	if index0 < 0 || index0+rows*columns > len(b.Positions) {
		return invalidf("rectangular mesh of %d by %d at %d needs more than %d positions", rows, columns, index0, len(b.Positions))
	}
	rowCells, columnCells := rows-1, columns-1
	if rowsClosed {
		rowCells = rows
	}
	if columnsClosed {
		columnCells = columns
	}
	for i := 0; i < rowCells; i++ {
		i0 := index0 + i*columns
		i1 := index0 + (i+1)%rows*columns
		for j := 0; j < columnCells; j++ {
			j1 := (j + 1) % columns
			i00, i01 := i0+j, i0+j1
			i10, i11 := i1+j, i1+j1
			switch winding {
			case gridFlipped:
				b.addTriangleIndices(i01, i11, i00)
				b.addTriangleIndices(i10, i00, i11)
			case gridSpherical:
				if i > 0 {
					b.addTriangleIndices(i00, i11, i01)
				}
				if i < rows-2 {
					b.addTriangleIndices(i11, i00, i10)
				}
			default:
				b.addTriangleIndices(i00, i11, i01)
				b.addTriangleIndices(i11, i00, i10)
			}
		}
	}
	return nil
}
