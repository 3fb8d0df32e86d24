// Command meshkit triangulates polygons and builds meshes from recipes.
//
//	meshkit triangulate shape.svg --out shape.png
//	meshkit triangulate < points.txt --show
//	meshkit build lamp.yaml
//
// Text input is newline separated points in the form "x y", with each loop
// separated by an extra newline. The first loop is the polygon and every
// later loop is a hole in it. SVG input takes the same loops from the
// <polygon> elements of the file, in document order.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/meshkit/dbg"
	"github.com/osuushi/meshkit/internal/svgpoly"
	"github.com/osuushi/meshkit/recipe"
	"github.com/osuushi/meshkit/triangulate"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New("meshkit", "Triangulate polygons and build triangle meshes.")
	verbose := app.Flag("verbose", "Log debug messages about degenerate input.").Short('v').Bool()
	noColor := app.Flag("no-color", "Don't colour the output.").Bool()

	triangulateCmd := app.Command("triangulate", "Triangulate a polygon with holes and draw the result.")
	input := triangulateCmd.Arg("input", "SVG or text file of loops. Reads text from stdin when absent.").String()
	out := triangulateCmd.Flag("out", "PNG file to draw the triangulation into.").Default("triangulation.png").String()
	scale := triangulateCmd.Flag("scale", "Pixels per unit.").Default("100").Float64()
	show := triangulateCmd.Flag("show", "Print the drawing to the terminal with imgcat.").Bool()

	buildCmd := app.Command("build", "Build a mesh from a YAML or TOML recipe and report on it.")
	recipePath := buildCmd.Arg("recipe", "Recipe file.").Required().ExistingFile()

	shapesCmd := app.Command("shapes", "List the shape kinds recipes can use.")

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	au := aurora.NewAurora(!*noColor)

	switch command {
	case triangulateCmd.FullCommand():
		app.FatalIfError(runTriangulate(os.Stdout, au, *input, *out, *scale, *show), "triangulate")
	case buildCmd.FullCommand():
		app.FatalIfError(runBuild(os.Stdout, au, *recipePath, logger), "build")
	case shapesCmd.FullCommand():
		fmt.Println(strings.Join(recipe.Kinds(), "\n"))
	}
}

func readInput(path string) ([][]mgl64.Vec2, error) {
	if path == "" || path == "-" {
		return readPolygons(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgpoly.Parse(file)
	}
	return readPolygons(file)
}

func readPolygons(in io.Reader) ([][]mgl64.Vec2, error) {
	loops := [][]mgl64.Vec2{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	points := []mgl64.Vec2{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the loop
		if line == "" {
			if len(points) > 0 {
				loops = append(loops, points)
				points = []mgl64.Vec2{}
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Handle trailing loop if any
	if len(points) > 0 {
		loops = append(loops, points)
	}
	return loops, nil
}

func parsePoint(line string) (mgl64.Vec2, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return mgl64.Vec2{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return mgl64.Vec2{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return mgl64.Vec2{}, err
	}
	return mgl64.Vec2{x, y}, nil
}

// triangulateLoops triangulates the first loop with the rest as holes, and
// returns the points in index order along with the triangles.
func triangulateLoops(loops [][]mgl64.Vec2) (points []mgl64.Vec2, triangles []int, err error) {
	if len(loops) == 0 {
		return nil, nil, errors.New("no polygon in input")
	}
	triangles, err = triangulate.Triangulate(loops[0], loops[1:]...)
	if err != nil {
		return nil, nil, err
	}
	for _, loop := range loops {
		points = append(points, loop...)
	}
	return points, triangles, nil
}

func runTriangulate(w io.Writer, au aurora.Aurora, input, out string, scale float64, show bool) error {
	loops, err := readInput(input)
	if err != nil {
		return err
	}
	points, triangles, err := triangulateLoops(loops)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Read %d loops with %d points\n", len(loops), len(points))
	fmt.Fprintf(w, "%s %d triangles\n", au.Green("Triangulated"), len(triangles)/3)
	if show {
		dbg.ShowTriangulation(loops, points, triangles, scale)
	}
	if out == "" {
		return nil
	}
	if err := dbg.DrawTriangulation(out, loops, points, triangles, scale); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", out)
	return nil
}

func runBuild(w io.Writer, au aurora.Aurora, path string, logger *slog.Logger) error {
	r, err := recipe.Load(path)
	if err != nil {
		return err
	}
	result, err := r.Build(logger)
	if err != nil {
		return err
	}
	report(w, au, r, result)
	return nil
}

func report(w io.Writer, au aurora.Aurora, r *recipe.Recipe, result *recipe.Result) {
	m := result.Mesh
	fmt.Fprintf(w, "%s\n", au.Bold(r.Name))
	fmt.Fprintf(w, "  positions: %d\n", len(m.Positions))
	fmt.Fprintf(w, "  triangles: %d\n", m.TriangleCount())
	if result.Closed() {
		fmt.Fprintf(w, "  %s\n", au.Green("closed"))
	} else {
		fmt.Fprintf(w, "  %s (%d border edges)\n", au.Red("open"), len(result.BorderEdges))
	}
	if lo, hi, err := m.Bounds(); err == nil {
		fmt.Fprintf(w, "  bounds: %v to %v\n", lo, hi)
	}
	if r.Post.SharpAngle > 0 {
		fmt.Fprintf(w, "  sharp edges: %d\n", len(result.SharpEdges))
	}
	for i, contour := range result.Contours {
		kind := au.Cyan("open")
		if contour.Closed {
			kind = au.Cyan("closed")
		}
		fmt.Fprintf(w, "  contour %d: %s, %d points\n", i, kind, len(contour.Points))
	}
}
