// Command scene-view opens a window rendering a scene with the ebiten
// backend, optionally with the debug overlay and texture hot reload.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	debugui_ebiten "github.com/plus3/ooftn2d/ecs/debugui/ebiten"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/render/ebitenrender"
)

func main() {
	scenePath := flag.String("scene", "", "The scene file to load.")
	configPath := flag.String("config", "", "Optional config file. Without asset_root, assets are read from the scene's directory.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug panels.")
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

	var reader assets.FileReader = assets.OSFileReader{Root: cfg.AssetRoot}
	if cfg.HotReload {
		watcher, err := assets.NewWatcher(reader, cfg.AssetRoot)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", cfg.AssetRoot, err)
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Asset watcher stopped: %v", err)
			}
		}()
		reader = watcher
	}

	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(reader)
	if _, err := scene.Spawn(storage, manager); err != nil {
		log.Fatalf("Failed to spawn scene: %v", err)
	}

	backend := ebitenrender.New(os.DirFS(cfg.AssetRoot), cfg.ClearColor)
	pipeline := engine.NewPipeline(storage, manager, backend)

	game := &Game{
		pipeline: pipeline,
		backend:  backend,
		tps:      cfg.TPS,
	}
	pipeline.Scheduler().Register(&CameraControl{Input: game.wantsKeys})

	if *debug {
		game.overlay = debugui_ebiten.NewOverlay(pipeline, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	ebiten.SetTPS(cfg.TPS)

	log.Printf("Viewing %s (%d entities)", *scenePath, storage.EntityCount())
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
