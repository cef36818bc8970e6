// Command render-stress measures pipeline frame times on a large, churning
// scene.
//
// Profiling:
//
//	go build ./cmd/render-stress
//	./render-stress -profile cpu
//	go tool pprof -http=":8000" ./render-stress cpu.pprof
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/ooftn2d/engine"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of renderable entities to create.")
	churn := flag.Float64("churn", 0.01, "Fraction of entities despawned and respawned every frame.")
	moving := flag.Float64("moving", 0.1, "Fraction of entities whose transform changes every frame.")
	textures := flag.Int("textures", 16, "The number of distinct texture paths.")
	seed := flag.Int64("seed", 1, "Random seed for the scene.")
	profileMode := flag.String("profile", "", "Write a profile to the current directory: cpu, mem or allocs.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	log.Println("Starting render stress test...")

	sim := newSimulation(simulationConfig{
		Entities: *entityCount,
		Churn:    *churn,
		Moving:   *moving,
		Textures: *textures,
		Seed:     *seed,
	})
	recorder := &engine.Recorder{}
	pipeline := sim.Pipeline(recorder)
	log.Printf("Populated storage with %d entities.\n", *entityCount)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		Moving:         *moving,
		Textures:       *textures,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			stats := pipeline.Tick(deltaTime.Seconds())
			report.Record(stats)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Cache = pipeline.PreRenderer().CacheStats()
	report.LiveEntities = pipeline.Storage().EntityCount()
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Render Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "":
		return nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "allocs":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	log.Fatalf("Unknown profile mode %q", mode)
	return nil
}
