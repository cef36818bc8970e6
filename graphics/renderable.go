package graphics

import "errors"

// Topology is the primitive type a renderable's indices describe.
type Topology uint8

const (
	TriangleList Topology = iota
	LineList
)

func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "triangles"
	case LineList:
		return "lines"
	}
	return "unknown"
}

// Vertex is the vertex layout shared by every 2D renderable.
type Vertex struct {
	Position Vec2
	UV       Vec2
	Color    Color
}

// Renderable2D is implemented by every drawable component. Geometry is in
// the entity's local space; the Transform uniform places it.
//
// IndexCount equals len(Indices()) without building the slice.
type Renderable2D interface {
	Vertices(m Material) []Vertex
	Indices() []uint16
	IndexCount() int
	Topology() Topology
}

// MaxVertices is the most vertices a single renderable may address with
// 16-bit indices.
const MaxVertices = 1 << 16

// ErrTooManyVertices is returned by Validate methods for geometry that does
// not fit a 16-bit index buffer.
var ErrTooManyVertices = errors.New("geometry exceeds 16-bit index range")

var quadIndices = []uint16{0, 1, 2, 2, 3, 0}

// quad returns a w x h rectangle with its top-left corner at the origin.
func quad(w, h float32, c Color, flipX, flipY bool) []Vertex {
	u0, u1 := float32(0), float32(1)
	v0, v1 := float32(0), float32(1)
	if flipX {
		u0, u1 = u1, u0
	}
	if flipY {
		v0, v1 = v1, v0
	}
	return []Vertex{
		{Position: Vec2{0, 0}, UV: Vec2{u0, v0}, Color: c},
		{Position: Vec2{w, 0}, UV: Vec2{u1, v0}, Color: c},
		{Position: Vec2{w, h}, UV: Vec2{u1, v1}, Color: c},
		{Position: Vec2{0, h}, UV: Vec2{u0, v1}, Color: c},
	}
}

func quadIndexList() []uint16 {
	return append([]uint16(nil), quadIndices...)
}
