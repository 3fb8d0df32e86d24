package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareWithHole = `0 0
10 0
10 10
0 10

3 3
3 7
7 7
7 3
`

func TestReadPolygons(t *testing.T) {
	loops, err := readPolygons(strings.NewReader(squareWithHole))
	require.NoError(t, err)
	require.Len(t, loops, 2)
	assert.Equal(t, mgl64.Vec2{10, 10}, loops[0][2])
	assert.Equal(t, mgl64.Vec2{3, 7}, loops[1][1])

	t.Run("extra blank lines and spacing", func(t *testing.T) {
		loops, err := readPolygons(strings.NewReader("\n\n  1   2 \n3 4\n5 6\n\n\n"))
		require.NoError(t, err)
		assert.Equal(t, [][]mgl64.Vec2{{{1, 2}, {3, 4}, {5, 6}}}, loops)
	})

	t.Run("bad lines report their number", func(t *testing.T) {
		_, err := readPolygons(strings.NewReader("0 0\n1 0\n1 x\n"))
		assert.ErrorContains(t, err, "line 3")
		_, err = readPolygons(strings.NewReader("0 0 0\n"))
		assert.ErrorContains(t, err, "line 1")
	})
}

func TestRunTriangulate(t *testing.T) {
	dir := t.TempDir()
	au := aurora.NewAurora(false)

	t.Run("text", func(t *testing.T) {
		input := filepath.Join(dir, "square.txt")
		require.NoError(t, os.WriteFile(input, []byte(squareWithHole), 0o644))
		out := filepath.Join(dir, "square.png")

		var buf bytes.Buffer
		require.NoError(t, runTriangulate(&buf, au, input, out, 10, false))
		assert.Contains(t, buf.String(), "Read 2 loops with 8 points")
		assert.Contains(t, buf.String(), "Triangulated 8 triangles")
		_, err := os.Stat(out)
		assert.NoError(t, err)
	})

	t.Run("svg", func(t *testing.T) {
		input := filepath.Join(dir, "square.svg")
		doc := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
  <polygon points="0,0 10,0 10,10 0,10"/>
</svg>`
		require.NoError(t, os.WriteFile(input, []byte(doc), 0o644))

		var buf bytes.Buffer
		require.NoError(t, runTriangulate(&buf, au, input, "", 10, false))
		assert.Contains(t, buf.String(), "Triangulated 2 triangles")
	})

	t.Run("empty input", func(t *testing.T) {
		input := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(input, nil, 0o644))
		assert.Error(t, runTriangulate(io.Discard, au, input, "", 10, false))
	})
}

func TestRunBuild(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var buf bytes.Buffer
	require.NoError(t, runBuild(&buf, aurora.NewAurora(false), "../../recipe/testdata/lamp.yaml", logger))
	report := buf.String()
	assert.Contains(t, report, "positions: 188")
	assert.Contains(t, report, "triangles: 368")
	assert.Contains(t, report, "  closed\n")
	assert.Contains(t, report, "sharp edges: 24")
	assert.Contains(t, report, "contour 0: closed, 24 points")

	assert.Error(t, runBuild(io.Discard, aurora.NewAurora(false), "missing.yaml", logger))
}
