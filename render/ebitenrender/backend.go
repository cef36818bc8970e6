// Package ebitenrender is an engine.Backend drawing with Ebitengine.
//
// Updates are applied to CPU-side copies of each entity's buffers and
// uniform; Render replays the last draw list onto an ebiten image with
// DrawTriangles.
package ebitenrender

import (
	"image/color"
	"io/fs"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
	"github.com/plus3/ooftn2d/render"
)

// LineWidth is the on-screen width of line list draws, in pixels.
const LineWidth = 1

// Backend implements engine.Backend.
type Backend struct {
	fsys     fs.FS
	textures map[string]*ebiten.Image
	meshes   map[ecs.Entity]*mesh
	draws    []render.RenderingInfos

	white      *ebiten.Image
	clearColor color.Color

	vertexScratch []ebiten.Vertex
	indexScratch  []uint16
}

// New creates a backend loading textures from fsys.
func New(fsys fs.FS, clearColor graphics.Color) *Backend {
	return &Backend{
		fsys:       fsys,
		textures:   make(map[string]*ebiten.Image),
		meshes:     make(map[ecs.Entity]*mesh),
		clearColor: clearColor.NRGBA(),
	}
}

func (b *Backend) meshFor(e ecs.Entity) *mesh {
	m, ok := b.meshes[e]
	if !ok {
		m = &mesh{uniform: graphics.Identity}
		b.meshes[e] = m
	}
	return m
}

// Apply applies updates in order. A texture that fails to load is logged
// and dropped; draws using it fall back to the material color.
func (b *Backend) Apply(updates []render.RenderingUpdate) {
	for _, u := range updates {
		switch u.Kind {
		case render.UpdateTexture:
			b.loadTexture(u.TexturePath)
		case render.UpdateTransform:
			b.meshFor(u.Entity).uniform = u.Uniform
		case render.UpdateVertexBuffer:
			b.meshFor(u.Entity).vertices = u.Vertices
		case render.UpdateIndexBuffer:
			b.meshFor(u.Entity).indices = u.Indices
		}
	}
}

func (b *Backend) loadTexture(path string) {
	img, format, err := decodeTexture(b.fsys, path)
	if err != nil {
		ecs.Logger().Warn("texture load failed", slog.String("path", path), slog.Any("error", err))
		if old, ok := b.textures[path]; ok {
			old.Deallocate()
			delete(b.textures, path)
		}
		return
	}

	if old, ok := b.textures[path]; ok {
		old.Deallocate()
	}
	b.textures[path] = ebiten.NewImageFromImage(img)
	ecs.Logger().Debug("texture loaded", slog.String("path", path), slog.String("format", format))
}

// Draw stores the draw list for the next Render.
func (b *Backend) Draw(infos []render.RenderingInfos) {
	b.draws = append(b.draws[:0], infos...)
}

// Texture returns the loaded image for path.
func (b *Backend) Texture(path string) (*ebiten.Image, bool) {
	img, ok := b.textures[path]
	return img, ok
}

func (b *Backend) whitePixel() *ebiten.Image {
	if b.white == nil {
		b.white = ebiten.NewImage(1, 1)
		b.white.Fill(color.White)
	}
	return b.white
}

// Render clears screen and issues the stored draws. The draw list is sorted
// by descending layer, so higher layers are painted first.
func (b *Backend) Render(screen *ebiten.Image) {
	screen.Fill(b.clearColor)

	for _, info := range b.draws {
		m, ok := b.meshes[info.Entity]
		if !ok || len(m.vertices) == 0 {
			continue
		}
		indices := m.indices
		if int(info.Range.End) <= len(indices) && info.Range.Start <= info.Range.End {
			indices = indices[info.Range.Start:info.Range.End]
		}

		src := b.whitePixel()
		srcW, srcH := float32(1), float32(1)
		if info.TexturePath != "" {
			if tex, ok := b.textures[info.TexturePath]; ok {
				src = tex
				bounds := tex.Bounds()
				srcW, srcH = float32(bounds.Dx()), float32(bounds.Dy())
			}
		}

		b.vertexScratch = b.vertexScratch[:0]
		b.indexScratch = b.indexScratch[:0]
		switch info.Topology {
		case graphics.LineList:
			b.vertexScratch, b.indexScratch = lineQuads(b.vertexScratch, b.indexScratch, m.uniform, m.vertices, indices, LineWidth)
			src = b.whitePixel()
		default:
			b.vertexScratch = triangleVertices(b.vertexScratch, m.uniform, m.vertices, srcW, srcH)
			b.indexScratch = append(b.indexScratch, indices...)
		}
		if len(b.indexScratch) == 0 {
			continue
		}

		var op ebiten.DrawTrianglesOptions
		screen.DrawTriangles(b.vertexScratch, b.indexScratch, src, &op)
	}
}

// Prune releases the meshes of entities that are no longer alive.
func (b *Backend) Prune(alive func(ecs.Entity) bool) int {
	n := 0
	for e := range b.meshes {
		if !alive(e) {
			delete(b.meshes, e)
			n++
		}
	}
	return n
}

// Stats reports how many textures and meshes are held.
func (b *Backend) Stats() (textures, meshes int) {
	return len(b.textures), len(b.meshes)
}
