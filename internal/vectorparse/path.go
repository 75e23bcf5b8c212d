package vectorparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

var pathCommandRe = regexp.MustCompile(`[MLHVZmlhvzCcSsQqTtAa]`)
var pathNumberRe = regexp.MustCompile(`-?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// curveArgCount is the number of numeric parameters each discarded
// curve/arc command consumes. It is only used to advance the cursor
// correctly for the straight-line commands that follow; no Line is
// emitted for these commands.
var curveArgCount = map[byte]int{
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

// parsePathData decomposes a <path> "d" attribute into Lines, handling
// M, L, H, V, and Z (absolute and relative). Curves and arcs are
// discarded per the documented limitation in spec.md §4.6; the cursor
// still advances to their final endpoint so subsequent commands in the
// same path stay correctly positioned.
func parsePathData(d string) ([]geometry.Line, error) {
	if strings.TrimSpace(d) == "" {
		return nil, nil
	}

	indices := pathCommandRe.FindAllStringIndex(d, -1)
	if len(indices) == 0 {
		return nil, apierr.New(apierr.MalformedSVG, "path d attribute has no commands")
	}

	var lines []geometry.Line
	var current, subpathStart geometry.Point
	haveCurrent := false

	for i, idx := range indices {
		cmd := d[idx[0]]
		argsStart := idx[1]
		argsEnd := len(d)
		if i+1 < len(indices) {
			argsEnd = indices[i+1][0]
		}
		args, err := parsePathNumbers(d[argsStart:argsEnd])
		if err != nil {
			return nil, err
		}

		upper := toUpperByte(cmd)
		relative := cmd >= 'a' && cmd <= 'z'

		switch upper {
		case 'M':
			for j := 0; j+1 < len(args); j += 2 {
				p := geometry.Point{X: args[j], Y: args[j+1]}
				if relative && haveCurrent {
					p.X += current.X
					p.Y += current.Y
				}
				current = p
				subpathStart = p
				haveCurrent = true
			}
		case 'L':
			for j := 0; j+1 < len(args); j += 2 {
				p := geometry.Point{X: args[j], Y: args[j+1]}
				if relative {
					p.X += current.X
					p.Y += current.Y
				}
				if haveCurrent {
					lines = append(lines, geometry.Line{Start: current, End: p})
				}
				current = p
				haveCurrent = true
			}
		case 'H':
			for _, a := range args {
				x := a
				if relative {
					x += current.X
				}
				p := geometry.Point{X: x, Y: current.Y}
				if haveCurrent {
					lines = append(lines, geometry.Line{Start: current, End: p})
				}
				current = p
				haveCurrent = true
			}
		case 'V':
			for _, a := range args {
				y := a
				if relative {
					y += current.Y
				}
				p := geometry.Point{X: current.X, Y: y}
				if haveCurrent {
					lines = append(lines, geometry.Line{Start: current, End: p})
				}
				current = p
				haveCurrent = true
			}
		case 'Z':
			if haveCurrent && current != subpathStart {
				lines = append(lines, geometry.Line{Start: current, End: subpathStart})
			}
			current = subpathStart
		default:
			n := curveArgCount[upper]
			if n <= 0 {
				continue
			}
			for j := 0; j+n <= len(args); j += n {
				p := geometry.Point{X: args[j+n-2], Y: args[j+n-1]}
				if relative {
					p.X += current.X
					p.Y += current.Y
				}
				current = p
				haveCurrent = true
			}
		}
	}

	return lines, nil
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func parsePathNumbers(s string) ([]float64, error) {
	matches := pathNumberRe.FindAllString(s, -1)
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, apierr.Wrap(apierr.MalformedSVG, "path command argument is not numeric", err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
