// Package geomcache caches unit circles and unit icospheres. Callers always
// receive copies, so they may modify what they get back.
package geomcache

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type circleKey struct {
	thetaDiv int
	closed   bool
}

// Sphere is a unit sphere built by subdividing an icosahedron. Triangles are
// counterclockwise seen from outside.
type Sphere struct {
	Positions []mgl64.Vec3
	Indices   []int
}

func (s Sphere) clone() Sphere {
	return Sphere{
		Positions: append([]mgl64.Vec3(nil), s.Positions...),
		Indices:   append([]int(nil), s.Indices...),
	}
}

// Cache is one worker's private set of computed shapes. A Cache is only ever
// held by one goroutine at a time, so it has no lock.
type Cache struct {
	circles map[circleKey][]mgl64.Vec2
	spheres map[int]Sphere
}

func newCache() *Cache {
	return &Cache{
		circles: make(map[circleKey][]mgl64.Vec2),
		spheres: make(map[int]Sphere),
	}
}

var pool = sync.Pool{New: func() interface{} { return newCache() }}

func acquire() *Cache {
	return pool.Get().(*Cache)
}

func release(c *Cache) {
	pool.Put(c)
}

// Circle returns thetaDiv points on the unit circle, counterclockwise from
// (1, 0). When closed is false the last point repeats the first, which gives
// texture seams their own vertices.
func Circle(thetaDiv int, closed bool) []mgl64.Vec2 {
	c := acquire()
	defer release(c)
	return append([]mgl64.Vec2(nil), c.circle(thetaDiv, closed)...)
}

// UnitSphere returns an icosahedron subdivided the given number of times,
// projected onto the unit sphere.
func UnitSphere(subdivisions int) Sphere {
	c := acquire()
	defer release(c)
	return c.sphere(subdivisions).clone()
}

func (c *Cache) circle(thetaDiv int, closed bool) []mgl64.Vec2 {
	key := circleKey{thetaDiv, closed}
	if circle, ok := c.circles[key]; ok {
		return circle
	}
	circle := make([]mgl64.Vec2, thetaDiv)
	steps := thetaDiv
	if !closed {
		steps = thetaDiv - 1
	}
	for i := range circle {
		if steps <= 0 {
			circle[i] = mgl64.Vec2{1, 0}
			continue
		}
		theta := 2 * math.Pi * float64(i%steps) / float64(steps)
		circle[i] = mgl64.Vec2{math.Cos(theta), math.Sin(theta)}
	}
	c.circles[key] = circle
	return circle
}

func (c *Cache) sphere(subdivisions int) Sphere {
	if sphere, ok := c.spheres[subdivisions]; ok {
		return sphere
	}
	sphere := icosahedron()
	for i := 0; i < subdivisions; i++ {
		sphere = subdivide(sphere)
	}
	c.spheres[subdivisions] = sphere
	return sphere
}

func icosahedron() Sphere {
	t := (1 + math.Sqrt(5)) / 2
	positions := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range positions {
		positions[i] = positions[i].Normalize()
	}
	return Sphere{
		Positions: positions,
		Indices: []int{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	}
}

// subdivide splits every triangle into four, sharing each edge midpoint
// between the two triangles on either side.
func subdivide(s Sphere) Sphere {
	positions := append([]mgl64.Vec3(nil), s.Positions...)
	indices := make([]int, 0, len(s.Indices)*4)
	midpoints := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if index, ok := midpoints[key]; ok {
			return index
		}
		index := len(positions)
		positions = append(positions, positions[a].Add(positions[b]).Normalize())
		midpoints[key] = index
		return index
	}
	for i := 0; i < len(s.Indices); i += 3 {
		a, b, c := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
		ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
		indices = append(indices,
			a, ab, ca,
			b, bc, ab,
			c, ca, bc,
			ab, bc, ca,
		)
	}
	return Sphere{Positions: positions, Indices: indices}
}
