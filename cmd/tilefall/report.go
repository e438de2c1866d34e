package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tilefall/loop"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GameResult is one game played during a soak.
type GameResult struct {
	Score      int
	Lines      int
	Pieces     int
	Unfinished bool
}

type Report struct {
	// Configuration
	RunID    string
	Seed     uint64
	Duration time.Duration
	FPS      int
	Board    string

	// Results
	Frames        uint64
	Plans         int
	WallTime      time.Duration
	Games         []GameResult
	BestScore     int
	TotalLines    int
	TotalPieces   int
	FrameTime     time.Duration
	Systems       []loop.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) finalize() {
	for _, g := range r.Games {
		r.BestScore = max(r.BestScore, g.Score)
		r.TotalLines += g.Lines
		r.TotalPieces += g.Pieces
	}
	if r.Frames > 0 {
		r.FrameTime = r.WallTime / time.Duration(r.Frames)
	}
}

const reportTemplate = `
# Soak Report

## Run
- **Run ID:** {{.RunID}}
- **Seed:** {{.Seed}}
- **Board:** {{.Board}}
- **Game Time:** {{.Duration}} at {{.FPS}} fps

## Play
- **Games:** {{len .Games}}
- **Best Score:** {{num .BestScore}}
- **Lines Cleared:** {{num .TotalLines}}
- **Pieces Placed:** {{num .TotalPieces}}
- **Autopilot Plans:** {{num .Plans}}
{{range $i, $g := .Games}}  - game {{inc $i}}: score {{num $g.Score}}, lines {{num $g.Lines}}, pieces {{num $g.Pieces}}{{if $g.Unfinished}} (unfinished){{end}}
{{end}}
## Performance
- **Frames:** {{num .Frames}}
- **Wall Time:** {{.WallTime}}
- **Wall Time per Frame:** {{.FrameTime}}

| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{range .Systems}}| {{.Name}} | {{num .ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:  {{num .MemStatsStart.HeapAlloc}} (start) -> {{num .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{num .MemStatsStart.TotalAlloc}} (start) -> {{num .MemStatsEnd.TotalAlloc}} (end)
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end)
`

func (r *Report) Generate(w io.Writer) error {
	p := message.NewPrinter(language.English)
	funcs := template.FuncMap{
		"num": func(v any) string { return p.Sprintf("%d", v) },
		"inc": func(i int) int { return i + 1 },
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
