// Package terrain generates the village map's solid features: rock outcrops
// and dense groves that block sight lines. Perception uses it for occlusion;
// spawning uses it to place entities on open ground.
package terrain

import (
	"math"
)

// Cell is the terrain type of one grid cell.
type Cell uint8

const (
	CellOpen  Cell = iota
	CellRock       // solid stone, blocks sight
	CellGrove      // dense trees, blocks sight
)

const cellSize float32 = 8.0

// Map is a procedural terrain grid over the world rectangle.
type Map struct {
	grid       [][]Cell
	cellSize   float32
	width      float32
	height     float32
	gridWidth  int
	gridHeight int
	noise      *PerlinNoise
}

// NewMap generates terrain for a world of the given size. The village center
// is kept clear so the settlement always starts on open ground.
func NewMap(width, height float32, seed int64) *Map {
	gridWidth := int(width / cellSize)
	gridHeight := int(height / cellSize)

	grid := make([][]Cell, gridHeight)
	for y := range grid {
		grid[y] = make([]Cell, gridWidth)
	}

	m := &Map{
		grid:       grid,
		cellSize:   cellSize,
		width:      width,
		height:     height,
		gridWidth:  gridWidth,
		gridHeight: gridHeight,
		noise:      NewPerlinNoise(seed),
	}
	m.generate()
	m.clearCenter()
	return m
}

// generate lays down rock outcrops and groves from two Perlin fields.
func (m *Map) generate() {
	const rockScale = 0.06
	const rockThreshold = 0.55
	const groveScale = 0.11
	const groveThreshold = 0.58

	for y := 0; y < m.gridHeight; y++ {
		for x := 0; x < m.gridWidth; x++ {
			if m.noise.Noise2D(float64(x)*rockScale, float64(y)*rockScale) > rockThreshold {
				m.grid[y][x] = CellRock
				continue
			}
			if m.noise.Noise2D(float64(x)*groveScale+200, float64(y)*groveScale) > groveThreshold {
				m.grid[y][x] = CellGrove
			}
		}
	}
}

// clearCenter opens a circle around the map center for the settlement.
func (m *Map) clearCenter() {
	cx := m.gridWidth / 2
	cy := m.gridHeight / 2
	radius := m.gridWidth / 6
	if r := m.gridHeight / 6; r < radius {
		radius = r
	}

	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= m.gridWidth || y < 0 || y >= m.gridHeight {
				continue
			}
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= radius*radius {
				m.grid[y][x] = CellOpen
			}
		}
	}
}

// IsSolid returns true if the world position is inside a sight-blocking cell.
// Positions outside the map count as solid.
func (m *Map) IsSolid(x, y float32) bool {
	gx := int(x / m.cellSize)
	gy := int(y / m.cellSize)
	if gx < 0 || gx >= m.gridWidth || gy < 0 || gy >= m.gridHeight {
		return true
	}
	return m.grid[gy][gx] != CellOpen
}

// HasLineOfSight returns true if no solid terrain lies between two points.
// Implements perception's occlusion query with a raycast stepped finer than
// the cell size.
func (m *Map) HasLineOfSight(x1, y1, x2, y2 float32) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist < 0.001 {
		return true
	}

	stepSize := m.cellSize * 0.4
	steps := int(dist/stepSize) + 1
	dx /= dist
	dy /= dist

	// Endpoints are skipped: standing inside a grove doesn't blind you to
	// things at arm's length.
	for i := 1; i < steps; i++ {
		if m.IsSolid(x1+dx*float32(i)*stepSize, y1+dy*float32(i)*stepSize) {
			return false
		}
	}
	return true
}

// FindOpen returns the nearest open position to (x, y), spiraling outward by
// cell. Falls back to the input when everything nearby is solid.
func (m *Map) FindOpen(x, y float32) (float32, float32) {
	if !m.IsSolid(x, y) {
		return x, y
	}
	for r := 1; r <= 12; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx != -r && dx != r && dy != -r && dy != r {
					continue
				}
				nx := x + float32(dx)*m.cellSize
				ny := y + float32(dy)*m.cellSize
				if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
					continue
				}
				if !m.IsSolid(nx, ny) {
					return nx, ny
				}
			}
		}
	}
	return x, y
}

// CellSize returns the terrain cell edge length in world units.
func (m *Map) CellSize() float32 {
	return m.cellSize
}
