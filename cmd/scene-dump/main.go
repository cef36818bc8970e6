// Command scene-dump runs a scene headlessly and prints the rendering
// updates and draw list of each frame.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/engine"
)

func main() {
	scenePath := flag.String("scene", "", "The scene file to load.")
	configPath := flag.String("config", "", "Optional config file. Without asset_root, assets are read from the scene's directory.")
	frames := flag.Int("frames", 2, "The number of frames to run.")
	verbose := flag.Bool("v", false, "Log pipeline activity to stderr.")
	flag.Parse()

	if *scenePath == "" {
		log.Fatalf("-scene is required")
	}

	cfg, err := engine.LoadSceneConfig(*configPath, *scenePath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *verbose {
		ecs.SetLogger(cfg.NewLogger(os.Stderr))
	}

	scene, err := engine.LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	recorder := &engine.Recorder{}
	pipeline, err := newPipeline(scene, cfg, recorder)
	if err != nil {
		log.Fatalf("Failed to spawn scene: %v", err)
	}

	dt := 1.0 / float64(cfg.TPS)
	for i := 0; i < *frames; i++ {
		stats := pipeline.Tick(dt)
		if err := writeFrame(os.Stdout, stats, recorder); err != nil {
			log.Fatalf("Failed to write frame: %v", err)
		}
	}
}

func newPipeline(scene *engine.Scene, cfg engine.Config, backend engine.Backend) (*engine.Pipeline, error) {
	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(assets.OSFileReader{Root: cfg.AssetRoot})
	if _, err := scene.Spawn(storage, manager); err != nil {
		return nil, err
	}
	return engine.NewPipeline(storage, manager, backend), nil
}
