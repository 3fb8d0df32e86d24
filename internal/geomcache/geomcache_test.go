package geomcache

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircle(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		circle := Circle(4, true)
		require.Len(t, circle, 4)
		assert.InDelta(t, 0, circle[1].Sub(mgl64.Vec2{0, 1}).Len(), 1e-12)
		assert.InDelta(t, 0, circle[3].Sub(mgl64.Vec2{0, -1}).Len(), 1e-12)
	})

	t.Run("open repeats the first point", func(t *testing.T) {
		circle := Circle(5, false)
		require.Len(t, circle, 5)
		assert.Equal(t, circle[0], circle[4])
		assert.InDelta(t, 0, circle[2].Sub(mgl64.Vec2{-1, 0}).Len(), 1e-12)
	})

	t.Run("copies are independent", func(t *testing.T) {
		first := Circle(8, true)
		first[0] = mgl64.Vec2{42, 42}
		second := Circle(8, true)
		assert.Equal(t, mgl64.Vec2{1, 0}, second[0])
	})
}

func TestUnitSphere(t *testing.T) {
	for subdivisions, expected := range []struct{ vertices, triangles int }{
		{12, 20},
		{42, 80},
		{162, 320},
	} {
		sphere := UnitSphere(subdivisions)
		assert.Len(t, sphere.Positions, expected.vertices)
		assert.Len(t, sphere.Indices, 3*expected.triangles)
		for _, p := range sphere.Positions {
			assert.InDelta(t, 1, p.Len(), 1e-12)
		}
		// Every face winds outward.
		for i := 0; i < len(sphere.Indices); i += 3 {
			a, b, c := sphere.Positions[sphere.Indices[i]], sphere.Positions[sphere.Indices[i+1]], sphere.Positions[sphere.Indices[i+2]]
			assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(a.Add(b).Add(c)), 0.0)
		}
	}

	t.Run("copies are independent", func(t *testing.T) {
		first := UnitSphere(1)
		first.Positions[0] = mgl64.Vec3{}
		first.Indices[0] = -1
		second := UnitSphere(1)
		assert.InDelta(t, 1, second.Positions[0].Len(), 1e-12)
		assert.NotEqual(t, -1, second.Indices[0])
	})
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				circle := Circle(3+(i+j)%5, j%2 == 0)
				circle[0] = mgl64.Vec2{}
				sphere := UnitSphere(j % 3)
				sphere.Positions[0] = mgl64.Vec3{}
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, mgl64.Vec2{1, 0}, Circle(3, true)[0])
	assert.InDelta(t, 1, UnitSphere(2).Positions[0].Len(), 1e-12)
}
