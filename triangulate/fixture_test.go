package triangulate

import (
	"embed"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/meshkit/internal/svgpoly"
)

// Fixtures are available by name in this fixtures/ directory, sans extension.
// Each polygon element in a fixture is a loop. The first one is the outer
// boundary and the rest are holes. If anything goes wrong, it panics.

//go:embed fixtures
var fixtures embed.FS

var fixtureNames = []string{
	"comb",
	"crenellations",
	"monotone_asteroid",
	"monotone_c",
	"spiral",
	"square_with_holes",
	"star",
}

func LoadFixture(name string) [][]mgl64.Vec2 {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	loops, err := svgpoly.Parse(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return loops
}

// Apply a transform to every point of every loop, returning new loops.
func transformLoops(loops [][]mgl64.Vec2, f func(mgl64.Vec2) mgl64.Vec2) [][]mgl64.Vec2 {
	result := make([][]mgl64.Vec2, len(loops))
	for i, loop := range loops {
		result[i] = make([]mgl64.Vec2, len(loop))
		for j, p := range loop {
			result[i][j] = f(p)
		}
	}
	return result
}

func reverseLoop(loop []mgl64.Vec2) []mgl64.Vec2 {
	result := make([]mgl64.Vec2, len(loop))
	for i, p := range loop {
		result[len(loop)-1-i] = p
	}
	return result
}

// Variants of a fixture that exercise different sweep orders.
func fixtureVariants(loops [][]mgl64.Vec2) map[string][][]mgl64.Vec2 {
	return map[string][][]mgl64.Vec2{
		"original":    loops,
		"x reflected": transformLoops(loops, func(p mgl64.Vec2) mgl64.Vec2 { return mgl64.Vec2{-p.X(), p.Y()} }),
		"y reflected": transformLoops(loops, func(p mgl64.Vec2) mgl64.Vec2 { return mgl64.Vec2{p.X(), -p.Y()} }),
		"rotated 90":  transformLoops(loops, func(p mgl64.Vec2) mgl64.Vec2 { return mgl64.Vec2{-p.Y(), p.X()} }),
		"skewed":      transformLoops(loops, func(p mgl64.Vec2) mgl64.Vec2 { return mgl64.Vec2{p.X(), p.Y() + 0.1*p.X()} }),
	}
}
