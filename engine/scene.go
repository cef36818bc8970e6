package engine

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKind is returned when a scene entity names an unsupported kind.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrUnregisteredComponent is returned when the storage's registry lacks
	// a component type the scene needs.
	ErrUnregisteredComponent = errors.New("component type not registered")
)

// Scene is a declarative description of assets and entities.
//
//	camera: {x: 0, y: 0, zoom: 1}
//	materials:
//	  brick: {texture: textures/brick.png}
//	  red: {color: {r: 1, a: 1}}
//	fonts:
//	  mono: {family: mono, size: 14}
//	entities:
//	  - {kind: sprite, x: 10, y: 20, layer: 1, width: 16, height: 16, material: brick}
type Scene struct {
	Camera    *SceneCamera             `yaml:"camera"`
	Materials map[string]SceneMaterial `yaml:"materials"`
	Fonts     map[string]graphics.Font `yaml:"fonts"`
	Entities  []SceneEntity            `yaml:"entities"`
}

type SceneCamera struct {
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
	Zoom float32 `yaml:"zoom"`
}

type SceneMaterial struct {
	Color   *graphics.Color `yaml:"color"`
	Texture string          `yaml:"texture"`
}

// Point is a scene coordinate, written as a two element sequence.
type Point [2]float32

type SceneEntity struct {
	Kind     string  `yaml:"kind"`
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
	Layer    int32   `yaml:"layer"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	Material string  `yaml:"material"`
	Hidden   bool    `yaml:"hidden"`

	// Kind specific.
	Points   []Point  `yaml:"points"`
	Text     string   `yaml:"text"`
	Font     string   `yaml:"font"`
	TabIndex int      `yaml:"tab_index"`
	Columns  int      `yaml:"columns"`
	Rows     int      `yaml:"rows"`
	Atlas    [2]int   `yaml:"atlas"`
	Tiles    []uint16 `yaml:"tiles"`
}

// ParseScene decodes a YAML scene.
func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &scene, nil
}

// LoadScene reads and decodes the scene file at path.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return ParseScene(data)
}

// Spawn registers the scene's materials and fonts with manager and spawns
// its entities into storage. Entities receive asset references; the
// resolver systems attach the resolved assets on the next frame. The
// returned entities follow the scene order, camera excluded.
func (s *Scene) Spawn(storage *ecs.Storage, manager *assets.Manager) ([]ecs.Entity, error) {
	materials := make(map[string]assets.Ref[graphics.Material], len(s.Materials))
	for _, name := range sortedKeys(s.Materials) {
		def := s.Materials[name]
		mat := graphics.Material{Color: graphics.White, TexturePath: def.Texture}
		if def.Color != nil {
			mat.Color = *def.Color
		}
		materials[name] = assets.Register(manager, mat)
	}

	fonts := make(map[string]assets.Ref[graphics.Font], len(s.Fonts))
	for _, name := range sortedKeys(s.Fonts) {
		fonts[name] = assets.Register(manager, s.Fonts[name])
	}

	// Validate everything before touching the storage.
	components := make([][]any, 0, len(s.Entities))
	for i, def := range s.Entities {
		comps, err := def.components(materials, fonts)
		if err != nil {
			return nil, fmt.Errorf("scene entity %d: %w", i, err)
		}
		for _, comp := range comps {
			if t := reflect.TypeOf(comp); !storage.Registry().IsRegistered(t) {
				return nil, fmt.Errorf("scene entity %d: %s: %w", i, t, ErrUnregisteredComponent)
			}
		}
		components = append(components, comps)
	}

	if s.Camera != nil {
		storage.Spawn(graphics.Camera{
			Position: graphics.Vec2{X: s.Camera.X, Y: s.Camera.Y},
			Zoom:     s.Camera.Zoom,
		})
	}

	entities := make([]ecs.Entity, 0, len(components))
	for _, comps := range components {
		entities = append(entities, storage.Spawn(comps...))
	}
	return entities, nil
}

func (d SceneEntity) components(materials map[string]assets.Ref[graphics.Material], fonts map[string]assets.Ref[graphics.Font]) ([]any, error) {
	comps := []any{graphics.NewTransform(d.X, d.Y, d.Layer)}

	if d.Material != "" {
		ref, ok := materials[d.Material]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", d.Material)
		}
		comps = append(comps, ref)
	}
	if d.Hidden {
		comps = append(comps, graphics.Hide{})
	}

	switch d.Kind {
	case "triangle":
		if len(d.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(d.Points))
		}
		comps = append(comps, graphics.Triangle{A: d.Points[0].vec(), B: d.Points[1].vec(), C: d.Points[2].vec()})
	case "square":
		comps = append(comps, graphics.Square{Size: d.Width})
	case "rectangle":
		comps = append(comps, graphics.Rectangle{Width: d.Width, Height: d.Height})
	case "sprite":
		comps = append(comps, graphics.Sprite{Width: d.Width, Height: d.Height})
	case "line":
		if len(d.Points) != 2 {
			return nil, fmt.Errorf("line needs 2 points, got %d", len(d.Points))
		}
		comps = append(comps, graphics.Line{From: d.Points[0].vec(), To: d.Points[1].vec()})
	case "polygon":
		points := make([]graphics.Vec2, len(d.Points))
		for i, p := range d.Points {
			points[i] = p.vec()
		}
		polygon := graphics.Polygon{Points: points}
		if err := polygon.Validate(); err != nil {
			return nil, err
		}
		comps = append(comps, polygon)
	case "tilemap":
		tilemap := graphics.Tilemap{
			Columns: d.Columns, Rows: d.Rows,
			TileWidth: d.Width, TileHeight: d.Height,
			AtlasColumns: d.Atlas[0], AtlasRows: d.Atlas[1],
			Tiles: d.Tiles,
		}
		if err := tilemap.Validate(); err != nil {
			return nil, err
		}
		comps = append(comps, tilemap)
	case "ui_image":
		comps = append(comps, graphics.UiImage{Width: d.Width, Height: d.Height})
	case "ui_text":
		ref, ok := fonts[d.Font]
		if !ok {
			return nil, fmt.Errorf("unknown font %q", d.Font)
		}
		comps = append(comps,
			graphics.UiText{Text: d.Text, FontRef: ref},
			ref,
			graphics.UiTextImage{Width: d.Width, Height: d.Height},
		)
	case "ui_input":
		comps = append(comps,
			graphics.UiInput{Placeholder: d.Text, TabOrder: d.TabIndex},
			graphics.UiImage{Width: d.Width, Height: d.Height},
		)
	case "ui_button":
		comps = append(comps,
			graphics.UiButton{Label: d.Text, TabOrder: d.TabIndex},
			graphics.UiImage{Width: d.Width, Height: d.Height},
		)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, d.Kind)
	}
	return comps, nil
}

func (p Point) vec() graphics.Vec2 {
	return graphics.Vec2{X: p[0], Y: p[1]}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
