package components

import (
	"github.com/ironsheep/floorplan-detectd/internal/imagenorm"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

// DetectStack detects rooms using an iterative-stack 8-connectivity
// flood fill, grounded on the teacher's internal/detection/shapes.go
// floodFill.
func DetectStack(frame *imagenorm.ImageFrame, threshold byte) []roomdetect.Room {
	return detect(frame, threshold, floodFillStack)
}

func floodFillStack(frame *imagenorm.ImageFrame, startX, startY int, visited []bool) blob {
	width, height := frame.Width, frame.Height

	type point struct{ x, y int }
	stack := []point{{startX, startY}}
	visited[startY*width+startX] = true

	b := blob{box: pixelBox{minX: startX, minY: startY, maxX: startX, maxY: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.area++
		if p.x < b.box.minX {
			b.box.minX = p.x
		}
		if p.x > b.box.maxX {
			b.box.maxX = p.x
		}
		if p.y < b.box.minY {
			b.box.minY = p.y
		}
		if p.y > b.box.maxY {
			b.box.maxY = p.y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				idx := ny*width + nx
				if !visited[idx] && frame.At(nx, ny) == 255 {
					visited[idx] = true
					stack = append(stack, point{nx, ny})
				}
			}
		}
	}

	return b
}
