package graphics

import "fmt"

// Tilemap is a grid of tiles sampled from a texture atlas held by the
// entity's Material. Tiles stores one atlas cell per grid cell in row-major
// order; 0 is empty and n selects atlas cell n-1. A tilemap with more than
// MaxTiles non-empty tiles produces no geometry.
type Tilemap struct {
	Columns, Rows           int
	TileWidth, TileHeight   float32
	AtlasColumns, AtlasRows int
	Tiles                   []uint16
}

// At returns the tile at (col, row), or 0 outside the grid.
func (t Tilemap) At(col, row int) uint16 {
	if col < 0 || row < 0 || col >= t.Columns || row >= t.Rows {
		return 0
	}
	i := row*t.Columns + col
	if i >= len(t.Tiles) {
		return 0
	}
	return t.Tiles[i]
}

// MaxTiles is the most non-empty tiles one Tilemap can draw: four vertices
// per tile must stay addressable by 16-bit indices.
const MaxTiles = MaxVertices / 4

// Validate reports whether the tilemap fits a 16-bit index buffer.
func (t Tilemap) Validate() error {
	if n := t.cellCount(); n > MaxTiles {
		return fmt.Errorf("tilemap has %d tiles, limit is %d: %w", n, MaxTiles, ErrTooManyVertices)
	}
	return nil
}

func (t Tilemap) cellCount() int {
	n := 0
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Columns; col++ {
			if t.At(col, row) != 0 {
				n++
			}
		}
	}
	return n
}

func (t Tilemap) Vertices(m Material) []Vertex {
	atlasCols, atlasRows := max(t.AtlasColumns, 1), max(t.AtlasRows, 1)
	du, dv := 1/float32(atlasCols), 1/float32(atlasRows)

	n := t.cellCount()
	if n > MaxTiles {
		return nil
	}
	vertices := make([]Vertex, 0, n*4)
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Columns; col++ {
			tile := t.At(col, row)
			if tile == 0 {
				continue
			}
			cell := int(tile - 1)
			u0 := float32(cell%atlasCols) * du
			v0 := float32(cell/atlasCols) * dv
			x0, y0 := float32(col)*t.TileWidth, float32(row)*t.TileHeight
			x1, y1 := x0+t.TileWidth, y0+t.TileHeight
			vertices = append(vertices,
				Vertex{Position: Vec2{x0, y0}, UV: Vec2{u0, v0}, Color: m.Color},
				Vertex{Position: Vec2{x1, y0}, UV: Vec2{u0 + du, v0}, Color: m.Color},
				Vertex{Position: Vec2{x1, y1}, UV: Vec2{u0 + du, v0 + dv}, Color: m.Color},
				Vertex{Position: Vec2{x0, y1}, UV: Vec2{u0, v0 + dv}, Color: m.Color},
			)
		}
	}
	return vertices
}

func (t Tilemap) Indices() []uint16 {
	n := t.cellCount()
	if n > MaxTiles {
		return nil
	}
	indices := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		base := uint16(i * 4)
		for _, idx := range quadIndices {
			indices = append(indices, base+idx)
		}
	}
	return indices
}

func (t Tilemap) IndexCount() int {
	n := t.cellCount()
	if n > MaxTiles {
		return 0
	}
	return n * len(quadIndices)
}

func (Tilemap) Topology() Topology { return TriangleList }
