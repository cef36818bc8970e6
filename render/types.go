package render

import (
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// UpdateKind identifies what a RenderingUpdate refreshes.
type UpdateKind uint8

const (
	UpdateTexture UpdateKind = iota
	UpdateTransform
	UpdateVertexBuffer
	UpdateIndexBuffer
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateTexture:
		return "texture"
	case UpdateTransform:
		return "transform"
	case UpdateVertexBuffer:
		return "vertex-buffer"
	case UpdateIndexBuffer:
		return "index-buffer"
	}
	return "unknown"
}

// RenderingUpdate instructs the backend to refresh one piece of GPU-side
// state. Texture updates target TexturePath; the others target Entity.
// Only the payload field matching Kind is set.
type RenderingUpdate struct {
	Kind        UpdateKind
	Entity      ecs.Entity
	TexturePath string

	Uniform  graphics.Affine
	Vertices []graphics.Vertex
	Indices  []uint16
}

// Range is a half-open range of indices in an entity's index buffer.
type Range struct {
	Start, End uint32
}

func (r Range) Len() uint32 {
	return r.End - r.Start
}

// RenderingInfos is one draw call. TexturePath is empty for untextured
// materials. UI draws are positioned in screen space.
type RenderingInfos struct {
	Layer       int32
	Entity      ecs.Entity
	Range       Range
	TexturePath string
	Topology    graphics.Topology
	Kind        string
	UI          bool
}
