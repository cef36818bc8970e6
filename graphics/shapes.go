package graphics

import "fmt"

// Triangle is a solid triangle with explicit corners.
type Triangle struct {
	A, B, C Vec2
}

func (t Triangle) Vertices(m Material) []Vertex {
	return []Vertex{
		{Position: t.A, UV: Vec2{0, 0}, Color: m.Color},
		{Position: t.B, UV: Vec2{1, 0}, Color: m.Color},
		{Position: t.C, UV: Vec2{0.5, 1}, Color: m.Color},
	}
}

func (Triangle) Indices() []uint16 { return []uint16{0, 1, 2} }
func (Triangle) IndexCount() int { return 3 }
func (Triangle) Topology() Topology { return TriangleList }

// Square is an axis-aligned square anchored at its top-left corner.
type Square struct {
	Size float32
}

func (s Square) Vertices(m Material) []Vertex {
	return quad(s.Size, s.Size, m.Color, false, false)
}

func (Square) Indices() []uint16 { return quadIndexList() }
func (Square) IndexCount() int { return len(quadIndices) }
func (Square) Topology() Topology { return TriangleList }

// Rectangle is an axis-aligned rectangle anchored at its top-left corner.
type Rectangle struct {
	Width, Height float32
}

func (r Rectangle) Vertices(m Material) []Vertex {
	return quad(r.Width, r.Height, m.Color, false, false)
}

func (Rectangle) Indices() []uint16 { return quadIndexList() }
func (Rectangle) IndexCount() int { return len(quadIndices) }
func (Rectangle) Topology() Topology { return TriangleList }

// Sprite is a textured quad. The texture comes from the entity's Material.
type Sprite struct {
	Width, Height float32
	FlipX, FlipY  bool
}

func (s Sprite) Vertices(m Material) []Vertex {
	return quad(s.Width, s.Height, m.Color, s.FlipX, s.FlipY)
}

func (Sprite) Indices() []uint16 { return quadIndexList() }
func (Sprite) IndexCount() int { return len(quadIndices) }
func (Sprite) Topology() Topology { return TriangleList }

// Line is a single segment drawn with the line topology.
type Line struct {
	From, To Vec2
}

func (l Line) Vertices(m Material) []Vertex {
	return []Vertex{
		{Position: l.From, UV: Vec2{0, 0}, Color: m.Color},
		{Position: l.To, UV: Vec2{1, 0}, Color: m.Color},
	}
}

func (Line) Indices() []uint16 { return []uint16{0, 1} }
func (Line) IndexCount() int { return 2 }
func (Line) Topology() Topology { return LineList }

// Polygon is a convex polygon, triangulated as a fan around its first
// point. Fewer than three points or more than MaxVertices points produce
// no geometry.
type Polygon struct {
	Points []Vec2
}

// Validate reports whether the polygon fits a 16-bit index buffer.
func (p Polygon) Validate() error {
	if len(p.Points) > MaxVertices {
		return fmt.Errorf("polygon has %d points: %w", len(p.Points), ErrTooManyVertices)
	}
	return nil
}

func (p Polygon) Vertices(m Material) []Vertex {
	if len(p.Points) == 0 || p.Validate() != nil {
		return nil
	}
	minP, maxP := p.Points[0], p.Points[0]
	for _, pt := range p.Points[1:] {
		minP.X, minP.Y = min(minP.X, pt.X), min(minP.Y, pt.Y)
		maxP.X, maxP.Y = max(maxP.X, pt.X), max(maxP.Y, pt.Y)
	}
	size := maxP.Sub(minP)

	vertices := make([]Vertex, len(p.Points))
	for i, pt := range p.Points {
		var uv Vec2
		if size.X != 0 {
			uv.X = (pt.X - minP.X) / size.X
		}
		if size.Y != 0 {
			uv.Y = (pt.Y - minP.Y) / size.Y
		}
		vertices[i] = Vertex{Position: pt, UV: uv, Color: m.Color}
	}
	return vertices
}

func (p Polygon) Indices() []uint16 {
	if len(p.Points) < 3 || p.Validate() != nil {
		return nil
	}
	indices := make([]uint16, 0, (len(p.Points)-2)*3)
	for i := 1; i < len(p.Points)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	return indices
}

func (p Polygon) IndexCount() int {
	if len(p.Points) < 3 || p.Validate() != nil {
		return 0
	}
	return (len(p.Points) - 2) * 3
}

func (Polygon) Topology() Topology { return TriangleList }
