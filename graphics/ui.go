package graphics

import "github.com/plus3/ooftn2d/assets"

// UiComponent marks an entity as part of the UI. UI entities are drawn in
// screen space and ignore the camera.
type UiComponent struct{}

// UiFocusable holds keyboard focus state. Rank orders focus traversal.
type UiFocusable struct {
	Rank    int
	Focused bool
}

// Focusable is implemented by UI components that take part in focus
// traversal. TabIndex seeds UiFocusable.Rank.
type Focusable interface {
	TabIndex() int
}

// UiImage is a textured screen-space quad.
type UiImage struct {
	Width, Height float32
}

func (i UiImage) Vertices(m Material) []Vertex {
	return quad(i.Width, i.Height, m.Color, false, false)
}

func (UiImage) Indices() []uint16 { return quadIndexList() }
func (UiImage) IndexCount() int { return len(quadIndices) }
func (UiImage) Topology() Topology { return TriangleList }

// UiText is a run of text. The Font component is attached by the font
// resolver once the entity holds FontRef.
type UiText struct {
	Text    string
	FontRef assets.Ref[Font]
}

// UiTextImage is the rasterized form of a UiText, drawn as a quad sampling
// the text texture.
type UiTextImage struct {
	Width, Height float32
}

func (i UiTextImage) Vertices(m Material) []Vertex {
	return quad(i.Width, i.Height, m.Color, false, false)
}

func (UiTextImage) Indices() []uint16 { return quadIndexList() }
func (UiTextImage) IndexCount() int { return len(quadIndices) }
func (UiTextImage) Topology() Topology { return TriangleList }

// UiInput is an editable text field.
type UiInput struct {
	Value       string
	Placeholder string
	TabOrder    int
}

func (i UiInput) TabIndex() int { return i.TabOrder }

// UiButton is a clickable button.
type UiButton struct {
	Label    string
	TabOrder int
}

func (b UiButton) TabIndex() int { return b.TabOrder }
