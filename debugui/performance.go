package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilefall/loop"
)

// PerformancePanel shows loop frame timing and per-system durations.
type PerformancePanel struct {
	Loop      *loop.Loop
	Scheduler *loop.Scheduler
	samples   []float32
}

func NewPerformancePanel(l *loop.Loop, s *loop.Scheduler) *PerformancePanel {
	return &PerformancePanel{Loop: l, Scheduler: s}
}

func (p *PerformancePanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.Loop.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", millis(stats.AvgDelta), stats.FPS))
	imgui.Text(fmt.Sprintf("Min/Max: %.2f / %.2f ms", millis(stats.MinDelta), millis(stats.MaxDelta)))
	imgui.Text(fmt.Sprintf("Overhead: %.3f ms avg, %.3f ms max", millis(stats.AvgOverhead), millis(stats.MaxOverhead)))
	if v := p.Loop.Viewport(); v.Width > 0 {
		imgui.Text(fmt.Sprintf("Viewport: %dx%d", v.Width, v.Height))
	}

	p.samples = frameTimes(stats.History, p.samples)
	if len(p.samples) > 0 {
		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &p.samples[0], int32(len(p.samples)))
	}

	if p.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg (us)")
			imgui.TableSetupColumn("Max (us)")
			imgui.TableHeadersRow()

			for _, sys := range p.Scheduler.Stats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.AvgDuration.Microseconds()))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.MaxDuration.Microseconds()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// frameTimes converts deltas to milliseconds, reusing buf.
func frameTimes(history []time.Duration, buf []float32) []float32 {
	buf = buf[:0]
	for _, d := range history {
		buf = append(buf, float32(millis(d)))
	}
	return buf
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
