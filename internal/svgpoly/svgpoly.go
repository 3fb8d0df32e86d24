// Package svgpoly reads polygon outlines out of SVG documents. This is not a
// full (or even correct) svg parser. It finds every <polygon> element and
// converts its points attribute, ignoring transforms and styles.
package svgpoly

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Parse every polygon in the document, in document order. Points are returned
// in SVG coordinates, so y grows downward.
func Parse(r io.Reader) ([][]mgl64.Vec2, error) {
	rootEl, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		return nil, errors.New("no polygons found")
	}

	polygons := make([][]mgl64.Vec2, 0, len(polygonEls))
	for i, polygonEl := range polygonEls {
		points, err := ParsePoints(polygonEl.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		polygons = append(polygons, points)
	}
	return polygons, nil
}

// Parse an SVG points attribute. Coordinates may be separated by commas,
// whitespace, or both.
func ParsePoints(attribute string) ([]mgl64.Vec2, error) {
	fields := strings.FieldsFunc(attribute, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates (%d)", len(fields))
	}

	points := make([]mgl64.Vec2, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, mgl64.Vec2{x, y})
	}
	return points, nil
}
