package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/sched"
)

// Report collects the configuration and results of a soak run.
type Report struct {
	// Configuration
	Duration         time.Duration
	FrameTime        time.Duration
	Seed             uint64
	CommandsPerFrame int
	Gesture          bool
	Rows             int
	Cols             int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	GameTime       time.Duration
	Tally          game.Tally
	BestLevel      int
	Violations     int
	ViolationLog   []string
	Systems        []sched.SystemStats
	UpdateTime     Timings
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Timings holds per-frame update durations and their summary.
type Timings struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (t *Timings) summarize() {
	if len(t.Samples) == 0 {
		return
	}
	var total time.Duration
	t.Min, t.Max = t.Samples[0], t.Samples[0]
	for _, d := range t.Samples {
		t.Min = min(t.Min, d)
		t.Max = max(t.Max, d)
		total += d
	}
	t.Avg = total / time.Duration(len(t.Samples))
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Handtris Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Board:** {{.Rows}}x{{.Cols}}
- **Frame Time:** {{.FrameTime}}
- **Seed:** {{.Seed}}
- **Max Commands per Frame:** {{.CommandsPerFrame}}
- **Gesture Input:** {{.Gesture}}

## Gameplay
- **Frames:** {{.TotalFrames}}
- **Game Time:** {{.GameTime}}
- **Games Started:** {{.Tally.Games}}
- **Games Over:** {{.Tally.GamesOver}}
- **Locks:** {{.Tally.Locks}}
- **Lines:** {{.Tally.Lines}} ({{.Tally.Tetrises}} tetrises)
- **Best Score:** {{.Tally.BestScore}}
- **Best Level:** {{.BestLevel}}
- **Commands:** {{.Tally.Applied}} applied, {{.Tally.Ignored}} ignored, {{.Tally.GestureCommands}} from gestures

## Invariants
- **Violations:** {{.Violations}}
{{range .ViolationLog}}  - {{.}}
{{end}}
## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory (MB, start -> end)
| Metric | Start | End |
|---|---|---|
| Heap Alloc | {{mb .MemStatsStart.HeapAlloc}} | {{mb .MemStatsEnd.HeapAlloc}} |
| Total Alloc | {{mb .MemStatsStart.TotalAlloc}} | {{mb .MemStatsEnd.TotalAlloc}} |
| Sys | {{mb .MemStatsStart.Sys}} | {{mb .MemStatsEnd.Sys}} |
| GC Cycles | {{.MemStatsStart.NumGC}} | {{.MemStatsEnd.NumGC}} (+{{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}) |
{{if .GCPauseMetrics}}
## GC Pauses
- **Total Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Pause Delta:** {{usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"usub64": func(a, b uint64) uint64 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
