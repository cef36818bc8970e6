package render

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// PreRenderer turns the state of an ECS storage into GPU update commands
// and a draw list. It remembers which textures, transforms and buffers
// were already sent so that every frame only carries what changed.
//
// A PreRenderer is bound to the storage it is used with: entity handles
// from different storages must not be mixed.
type PreRenderer struct {
	reader assets.FileReader

	textures   map[string]time.Time
	transforms entitySet
	vertices   entitySet
	indices    entitySet

	camera    graphics.Camera
	hasCamera bool
}

// Option configures a PreRenderer.
type Option func(*PreRenderer)

// WithFileReader fixes the reader used for texture timestamps. Without it,
// the reader of the storage's assets.Manager singleton is used.
func WithFileReader(reader assets.FileReader) Option {
	return func(p *PreRenderer) {
		p.reader = reader
	}
}

// WithCapacity presizes the entity caches.
func WithCapacity(entities int) Option {
	return func(p *PreRenderer) {
		p.transforms = newEntitySet(entities)
		p.vertices = newEntitySet(entities)
		p.indices = newEntitySet(entities)
	}
}

// NewPreRenderer creates a pre-renderer with empty caches.
func NewPreRenderer(opts ...Option) *PreRenderer {
	p := &PreRenderer{
		textures:   make(map[string]time.Time),
		transforms: newEntitySet(64),
		vertices:   newEntitySet(64),
		indices:    newEntitySet(64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// findCamera returns the first camera in storage iteration order.
func findCamera(storage *ecs.Storage) (graphics.Camera, bool) {
	view := ecs.NewView[struct{ *graphics.Camera }](storage)
	for item := range view.Values() {
		return *item.Camera, true
	}
	return graphics.Camera{}, false
}

// HasCamera reports whether any entity in storage holds a graphics.Camera.
func HasCamera(storage *ecs.Storage) bool {
	_, ok := findCamera(storage)
	return ok
}

func (p *PreRenderer) fileReader(storage *ecs.Storage) assets.FileReader {
	if p.reader != nil {
		return p.reader
	}
	if manager := ecs.GetSingleton[assets.Manager](storage); manager != nil {
		return manager.FileReader()
	}
	return assets.NopFileReader{}
}

// PrepareUpdate returns the updates needed to bring GPU-side state in line
// with storage, in order: textures, transforms, then vertex and index
// buffers. Without a camera nothing is emitted. Caches of entities that
// no longer exist are pruned afterwards in both cases.
func (p *PreRenderer) PrepareUpdate(storage *ecs.Storage) []RenderingUpdate {
	updates := make([]RenderingUpdate, 0)

	if camera, ok := findCamera(storage); ok {
		p.syncCamera(camera)
		updates = p.appendMaterialUpdates(storage, updates)
		updates = p.appendTransformUpdates(storage, updates)
		updates = p.appendBufferUpdates(storage, updates)
	}

	p.prune(storage)
	return updates
}

// syncCamera invalidates every transform uniform when the camera moved,
// since world-space uniforms include the camera view.
func (p *PreRenderer) syncCamera(camera graphics.Camera) {
	if p.hasCamera && p.camera == camera {
		return
	}
	if p.hasCamera {
		ecs.Logger().Debug("camera changed, invalidating transforms", slog.Int("transforms", p.transforms.Len()))
	}
	p.transforms.Clear()
	p.camera = camera
	p.hasCamera = true
}

func (p *PreRenderer) shouldReloadTexture(path string, ts time.Time, err error) bool {
	cached, ok := p.textures[path]
	if !ok {
		return true
	}
	return err == nil && !ts.Equal(cached)
}

func (p *PreRenderer) appendMaterialUpdates(storage *ecs.Storage, updates []RenderingUpdate) []RenderingUpdate {
	reader := p.fileReader(storage)
	seen := make(map[string]bool)

	view := ecs.NewView[struct{ *graphics.Material }](storage)
	for item := range view.Values() {
		path := item.Material.TexturePath
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		ts, err := reader.ModTime(path)
		if err != nil {
			ecs.Logger().Debug("texture timestamp unavailable", slog.String("path", path), slog.Any("error", err))
		}
		if !p.shouldReloadTexture(path, ts, err) {
			continue
		}

		if err != nil {
			ts = time.Time{}
		}
		p.textures[path] = ts
		updates = append(updates, RenderingUpdate{Kind: UpdateTexture, TexturePath: path})
	}
	return updates
}

func (p *PreRenderer) appendTransformUpdates(storage *ecs.Storage, updates []RenderingUpdate) []RenderingUpdate {
	view := p.camera.View()

	eachRenderable(storage, func(_ string, r renderable) {
		if p.transforms.Has(r.entity) && !r.transform.Dirty() {
			return
		}

		uniform := r.transform.Model()
		if !r.ui {
			uniform = view.Mul(uniform)
		}
		updates = append(updates, RenderingUpdate{Kind: UpdateTransform, Entity: r.entity, Uniform: uniform})

		p.transforms.Add(r.entity)
		r.transform.ClearDirty()
	})
	return updates
}

func (p *PreRenderer) appendBufferUpdates(storage *ecs.Storage, updates []RenderingUpdate) []RenderingUpdate {
	eachRenderable(storage, func(_ string, r renderable) {
		if r.material == nil {
			return
		}
		if !p.vertices.Has(r.entity) {
			updates = append(updates, RenderingUpdate{
				Kind:     UpdateVertexBuffer,
				Entity:   r.entity,
				Vertices: r.shape.Vertices(*r.material),
			})
			p.vertices.Add(r.entity)
		}
		if !p.indices.Has(r.entity) {
			updates = append(updates, RenderingUpdate{
				Kind:    UpdateIndexBuffer,
				Entity:  r.entity,
				Indices: r.shape.Indices(),
			})
			p.indices.Add(r.entity)
		}
	})
	return updates
}

// prune forgets dead entities and textures no live material uses.
func (p *PreRenderer) prune(storage *ecs.Storage) {
	alive := storage.Contains
	dropped := p.transforms.retain(alive) + p.vertices.retain(alive) + p.indices.retain(alive)

	if len(p.textures) > 0 {
		live := make(map[string]bool, len(p.textures))
		view := ecs.NewView[struct{ *graphics.Material }](storage)
		for item := range view.Values() {
			live[item.Material.TexturePath] = true
		}
		for path := range p.textures {
			if !live[path] {
				delete(p.textures, path)
				dropped++
			}
		}
	}

	if dropped > 0 {
		ecs.Logger().Debug("pruned pre-renderer caches", slog.Int("dropped", dropped))
	}
}

// PrepareRendering builds the draw list for the current frame, sorted by
// descending layer. Draws sharing a layer keep collection order. Hidden
// and unresolved entities are skipped. Without a camera the list is empty.
// PrepareRendering does not touch the caches.
func (p *PreRenderer) PrepareRendering(storage *ecs.Storage) []RenderingInfos {
	infos := make([]RenderingInfos, 0)
	if !HasCamera(storage) {
		return infos
	}

	eachRenderable(storage, func(kind string, r renderable) {
		if r.material == nil || r.hidden {
			return
		}
		infos = append(infos, RenderingInfos{
			Layer:       r.transform.Layer,
			Entity:      r.entity,
			Range:       Range{Start: 0, End: uint32(r.shape.IndexCount())},
			TexturePath: r.material.TexturePath,
			Topology:    r.shape.Topology(),
			Kind:        kind,
			UI:          r.ui,
		})
	})

	slices.SortStableFunc(infos, func(a, b RenderingInfos) int {
		return cmp.Compare(b.Layer, a.Layer)
	})
	return infos
}

// CacheStats reports the size of each cache.
type CacheStats struct {
	Textures      int
	Transforms    int
	VertexBuffers int
	IndexBuffers  int
}

func (p *PreRenderer) CacheStats() CacheStats {
	return CacheStats{
		Textures:      len(p.textures),
		Transforms:    p.transforms.Len(),
		VertexBuffers: p.vertices.Len(),
		IndexBuffers:  p.indices.Len(),
	}
}

// HasVertexBuffer reports whether the vertex buffer of e is current.
func (p *PreRenderer) HasVertexBuffer(e ecs.Entity) bool {
	return p.vertices.Has(e)
}

// HasIndexBuffer reports whether the index buffer of e is current.
func (p *PreRenderer) HasIndexBuffer(e ecs.Entity) bool {
	return p.indices.Has(e)
}

// HasTransform reports whether the transform uniform of e is current.
func (p *PreRenderer) HasTransform(e ecs.Entity) bool {
	return p.transforms.Has(e)
}

// TextureTimestamp returns the last seen modification time of a texture.
func (p *PreRenderer) TextureTimestamp(path string) (time.Time, bool) {
	ts, ok := p.textures[path]
	return ts, ok
}
