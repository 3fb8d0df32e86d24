package dbg

import (
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// This is for debugging purposes only

const drawPadding = 100

// DrawTriangulation renders the loops of a polygon and the triangles over its
// points into a PNG at path. Loops are filled even-odd, so holes show through.
func DrawTriangulation(path string, loops [][]mgl64.Vec2, points []mgl64.Vec2, triangles []int, scale float64) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, loop := range loops {
		for _, p := range loop {
			minX = math.Min(minX, p.X())
			minY = math.Min(minY, p.Y())
			maxX = math.Max(maxX, p.X())
			maxY = math.Max(maxY, p.Y())
		}
	}
	if math.IsInf(minX, 1) {
		return errors.New("nothing to draw")
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for _, loop := range loops {
		if len(loop) == 0 {
			continue
		}
		c.MoveTo(loop[0].X(), loop[0].Y())
		for _, p := range loop[1:] {
			c.LineTo(p.X(), p.Y())
		}
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	c.SetLineWidth(1)
	c.SetRGBA(1, 1, 0, 0.8)
	for i := 0; i+2 < len(triangles); i += 3 {
		tri := [3]int{triangles[i], triangles[i+1], triangles[i+2]}
		if tri[0] >= len(points) || tri[1] >= len(points) || tri[2] >= len(points) {
			continue
		}
		c.MoveTo(points[tri[0]].X(), points[tri[0]].Y())
		c.LineTo(points[tri[1]].X(), points[tri[1]].Y())
		c.LineTo(points[tri[2]].X(), points[tri[2]].Y())
		c.ClosePath()
	}
	c.Stroke()

	return errors.Wrapf(c.SavePNG(path), "saving %s", path)
}

// ShowTriangulation draws to a temporary file and prints it to the terminal
// with imgcat.
func ShowTriangulation(loops [][]mgl64.Vec2, points []mgl64.Vec2, triangles []int, scale float64) {
	path := filepath.Join(os.TempDir(), "triangulation.png")
	if err := DrawTriangulation(path, loops, points, triangles, scale); err != nil {
		return
	}
	imgcat.CatFile(path, os.Stdout)
}
