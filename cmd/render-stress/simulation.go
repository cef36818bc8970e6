package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/graphics"
	"github.com/plus3/ooftn2d/render"
)

type simulationConfig struct {
	Entities int
	Churn    float64
	Moving   float64
	Textures int
	Seed     int64
}

// simulation owns a storage filled with random renderables and the system
// that moves and churns them.
type simulation struct {
	cfg       simulationConfig
	rng       *rand.Rand
	storage   *ecs.Storage
	manager   *assets.Manager
	materials []assets.Ref[graphics.Material]
}

func newSimulation(cfg simulationConfig) *simulation {
	s := &simulation{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		storage: ecs.NewStorage(engine.NewRegistry()),
		manager: assets.NewManager(nil),
	}

	s.materials = append(s.materials, assets.Register(s.manager, graphics.Material{Color: graphics.White}))
	for i := 0; i < cfg.Textures; i++ {
		s.materials = append(s.materials, assets.Register(s.manager, graphics.Material{
			Color:       graphics.White,
			TexturePath: fmt.Sprintf("textures/%03d.png", i),
		}))
	}

	s.storage.Spawn(graphics.Camera{Zoom: 1})
	for i := 0; i < cfg.Entities; i++ {
		s.spawnRandom(func(components ...any) { s.storage.Spawn(components...) })
	}
	return s
}

// Pipeline returns a pipeline driving the simulation, with the churn
// system registered after the defaults.
func (s *simulation) Pipeline(backend engine.Backend) *engine.Pipeline {
	pipeline := engine.NewPipeline(s.storage, s.manager, backend, render.WithCapacity(s.cfg.Entities+1))
	pipeline.Scheduler().Register(&churnSystem{sim: s})
	return pipeline
}

func (s *simulation) spawnRandom(spawn func(...any)) {
	transform := graphics.NewTransform(s.rng.Float32()*1920, s.rng.Float32()*1080, int32(s.rng.Intn(8)))
	ref := s.materials[s.rng.Intn(len(s.materials))]

	switch s.rng.Intn(4) {
	case 0:
		spawn(transform, ref, graphics.Sprite{Width: 16, Height: 16})
	case 1:
		spawn(transform, ref, graphics.Square{Size: 8})
	case 2:
		spawn(transform, ref, graphics.Triangle{
			A: graphics.Vec2{X: 0, Y: 0},
			B: graphics.Vec2{X: 8, Y: 0},
			C: graphics.Vec2{X: 4, Y: 8},
		})
	default:
		spawn(transform, ref, graphics.Line{To: graphics.Vec2{X: 12, Y: 12}})
	}
}

type movable struct {
	ecs.Entity
	*graphics.Transform
}

type churnSystem struct {
	Movables ecs.Query[movable]
	sim      *simulation
}

func (c *churnSystem) Execute(frame *ecs.UpdateFrame) {
	rng := c.sim.rng
	for item := range c.Movables.Values() {
		switch r := rng.Float64(); {
		case r < c.sim.cfg.Churn:
			frame.Commands.Delete(item.Entity)
			c.sim.spawnRandom(frame.Commands.Spawn)
		case r < c.sim.cfg.Churn+c.sim.cfg.Moving:
			item.Translate(graphics.Vec2{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5})
		}
	}
}
