package components

import (
	"github.com/ironsheep/floorplan-detectd/internal/imagenorm"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

// DetectBFS detects rooms using a queue-based (BFS) 8-connectivity flood
// fill, grounded on the original backend's VecDeque-based flood_fill.
func DetectBFS(frame *imagenorm.ImageFrame, threshold byte) []roomdetect.Room {
	return detect(frame, threshold, floodFillBFS)
}

func floodFillBFS(frame *imagenorm.ImageFrame, startX, startY int, visited []bool) blob {
	width, height := frame.Width, frame.Height

	type point struct{ x, y int }
	queue := []point{{startX, startY}}
	visited[startY*width+startX] = true

	b := blob{box: pixelBox{minX: startX, minY: startY, maxX: startX, maxY: startY}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

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
					queue = append(queue, point{nx, ny})
				}
			}
		}
	}

	return b
}
