package vectorparse

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

// ViewBox is an SVG viewBox attribute, carried through unchanged for
// callers that want to report the source coordinate space.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Metadata describes parser behavior the caller may want to surface,
// per spec.md §9's open question on curve handling.
type Metadata struct {
	ViewBox *ViewBox
	// CurveHandling is always "discarded": path curves and arcs are
	// dropped rather than approximated as polylines.
	CurveHandling string
	// TransformsIgnored is true when any parsed element carried a
	// transform attribute; the parser does not apply it.
	TransformsIgnored bool
}

// ParseSVG walks svgText's elements and returns the Lines implied by
// <line>, <rect>, <polyline>, <polygon>, and <path>. It fails with
// apierr.MalformedSVG on unparsable XML or an element with missing or
// unparsable numeric attributes.
func ParseSVG(svgText string) ([]geometry.Line, Metadata, error) {
	decoder := xml.NewDecoder(strings.NewReader(svgText))

	var lines []geometry.Line
	meta := Metadata{CurveHandling: "discarded"}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, meta, apierr.Wrap(apierr.MalformedSVG, "svg document could not be parsed", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if attr(start.Attr, "transform") != "" {
			meta.TransformsIgnored = true
		}

		switch start.Name.Local {
		case "svg":
			if vb := attr(start.Attr, "viewBox"); vb != "" {
				parsed, err := parseViewBox(vb)
				if err != nil {
					return nil, meta, err
				}
				meta.ViewBox = parsed
			}
		case "line":
			line, err := parseLineElement(start.Attr)
			if err != nil {
				return nil, meta, err
			}
			lines = append(lines, line)
		case "rect":
			rectLines, err := parseRectElement(start.Attr)
			if err != nil {
				return nil, meta, err
			}
			lines = append(lines, rectLines...)
		case "polyline", "polygon":
			polyLines, err := parsePolyElement(start.Attr, start.Name.Local == "polygon")
			if err != nil {
				return nil, meta, err
			}
			lines = append(lines, polyLines...)
		case "path":
			d := attr(start.Attr, "d")
			pathLines, err := parsePathData(d)
			if err != nil {
				return nil, meta, err
			}
			lines = append(lines, pathLines...)
		}
	}

	return lines, meta, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseFloatAttr(attrs []xml.Attr, name string) (float64, error) {
	v := attr(attrs, name)
	if v == "" {
		return 0, apierr.New(apierr.MalformedSVG, "element missing required attribute "+name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, apierr.Wrap(apierr.MalformedSVG, "attribute "+name+" is not numeric", err)
	}
	return f, nil
}

func parseViewBox(v string) (*ViewBox, error) {
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	if len(fields) != 4 {
		return nil, apierr.New(apierr.MalformedSVG, "viewBox must have exactly 4 values")
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, apierr.Wrap(apierr.MalformedSVG, "viewBox value is not numeric", err)
		}
		nums[i] = n
	}
	return &ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}, nil
}

func parseLineElement(attrs []xml.Attr) (geometry.Line, error) {
	x1, err := parseFloatAttr(attrs, "x1")
	if err != nil {
		return geometry.Line{}, err
	}
	y1, err := parseFloatAttr(attrs, "y1")
	if err != nil {
		return geometry.Line{}, err
	}
	x2, err := parseFloatAttr(attrs, "x2")
	if err != nil {
		return geometry.Line{}, err
	}
	y2, err := parseFloatAttr(attrs, "y2")
	if err != nil {
		return geometry.Line{}, err
	}
	return geometry.Line{Start: geometry.Point{X: x1, Y: y1}, End: geometry.Point{X: x2, Y: y2}}, nil
}

func parseRectElement(attrs []xml.Attr) ([]geometry.Line, error) {
	x, err := parseFloatAttr(attrs, "x")
	if err != nil {
		return nil, err
	}
	y, err := parseFloatAttr(attrs, "y")
	if err != nil {
		return nil, err
	}
	width, err := parseFloatAttr(attrs, "width")
	if err != nil {
		return nil, err
	}
	height, err := parseFloatAttr(attrs, "height")
	if err != nil {
		return nil, err
	}

	topLeft := geometry.Point{X: x, Y: y}
	topRight := geometry.Point{X: x + width, Y: y}
	bottomRight := geometry.Point{X: x + width, Y: y + height}
	bottomLeft := geometry.Point{X: x, Y: y + height}

	return []geometry.Line{
		{Start: topLeft, End: topRight},
		{Start: topRight, End: bottomRight},
		{Start: bottomRight, End: bottomLeft},
		{Start: bottomLeft, End: topLeft},
	}, nil
}

func parsePolyElement(attrs []xml.Attr, closed bool) ([]geometry.Line, error) {
	raw := attr(attrs, "points")
	if raw == "" {
		return nil, apierr.New(apierr.MalformedSVG, "polyline/polygon missing points attribute")
	}

	points, err := parsePointList(raw)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, apierr.New(apierr.MalformedSVG, "polyline/polygon needs at least 2 points")
	}

	var lines []geometry.Line
	for i := 0; i < len(points)-1; i++ {
		lines = append(lines, geometry.Line{Start: points[i], End: points[i+1]})
	}
	if closed {
		lines = append(lines, geometry.Line{Start: points[len(points)-1], End: points[0]})
	}
	return lines, nil
}

func parsePointList(raw string) ([]geometry.Point, error) {
	normalized := strings.ReplaceAll(raw, ",", " ")
	fields := strings.Fields(normalized)
	if len(fields)%2 != 0 {
		return nil, apierr.New(apierr.MalformedSVG, "points attribute has an odd number of coordinates")
	}

	points := make([]geometry.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, apierr.Wrap(apierr.MalformedSVG, "points attribute value is not numeric", err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, apierr.Wrap(apierr.MalformedSVG, "points attribute value is not numeric", err)
		}
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return points, nil
}
