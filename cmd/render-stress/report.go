package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/render"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Entities int
	Churn    float64
	Moving   float64
	Textures int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	UpdateTime     Stats
	DrawTime       Stats
	UpdatesByKind  map[string]int
	TotalUpdates   int
	TotalDraws     int
	LiveEntities   int
	Cache          render.CacheStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Record adds one frame to the report.
func (r *Report) Record(stats engine.FrameStats) {
	if r.UpdatesByKind == nil {
		r.UpdatesByKind = make(map[string]int)
	}
	r.TotalFrames++
	r.TotalUpdates += stats.Updates
	r.TotalDraws += stats.Draws
	for kind, n := range stats.UpdatesByKind {
		r.UpdatesByKind[kind.String()] += n
	}
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, stats.UpdateTime)
	r.DrawTime.Samples = append(r.DrawTime.Samples, stats.DrawTime)
}

func (r *Report) Finalize() {
	r.UpdateTime.Finalize()
	r.DrawTime.Finalize()
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Render Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Churn per Frame:** {{percent .Churn}}
- **Moving per Frame:** {{percent .Moving}}
- **Texture Paths:** {{.Textures}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (PrepareUpdate + systems):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Draw Time (PrepareRendering):**
  - **Avg:** {{.DrawTime.Avg}}
  - **Min:** {{.DrawTime.Min}}
  - **Max:** {{.DrawTime.Max}}

## Pipeline Output
- **Total Updates:** {{.TotalUpdates}}
{{- range $kind, $n := .UpdatesByKind}}
  - {{$kind}}: {{$n}}
{{- end}}
- **Total Draws:** {{.TotalDraws}}
- **Live Entities:** {{.LiveEntities}}
- **Cached:** {{.Cache.Textures}} textures, {{.Cache.Transforms}} transforms, {{.Cache.VertexBuffers}} vertex buffers, {{.Cache.IndexBuffers}} index buffers

## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"percent": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
