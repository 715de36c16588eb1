package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/handtris/sched"
)

// SchedulerWindow plots frame times and lists per-system execution stats.
type SchedulerWindow struct {
	Scheduler *sched.Scheduler

	frames  *History
	systems map[string]*History
	size    int
}

func NewSchedulerWindow(scheduler *sched.Scheduler, historyFrames int) *SchedulerWindow {
	return &SchedulerWindow{
		Scheduler: scheduler,
		frames:    NewHistory(historyFrames),
		systems:   make(map[string]*History),
		size:      historyFrames,
	}
}

func millis(d time.Duration) float32 {
	return float32(d.Microseconds()) / 1000.0
}

// record pushes the frame delta and each system's last duration.
func (w *SchedulerWindow) record(frame *sched.Frame, stats *sched.Stats) {
	w.frames.Push(millis(frame.DeltaTime))
	for _, s := range stats.Systems {
		h, ok := w.systems[s.Name]
		if !ok {
			h = NewHistory(w.size)
			w.systems[s.Name] = h
		}
		h.Push(millis(s.LastDuration))
	}
}

func (w *SchedulerWindow) Render(frame *sched.Frame) {
	stats := w.Scheduler.Stats()
	w.record(frame, stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(300, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(460, 360), imgui.CondOnce)
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Text(fmt.Sprintf("Frames: %d  Clock: %v", stats.Frames, stats.Elapsed.Truncate(time.Millisecond)))

	avg := w.frames.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := w.frames.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
		}

		imgui.EndTable()
	}

	if imgui.TreeNodeStr("System Latency") {
		yMax := float64(0.1)
		for _, h := range w.systems {
			yMax = max(yMax, float64(h.Max())*1.1)
		}
		if implot.BeginPlotV("Latency", imgui.NewVec2(-1, 200), 0) {
			implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
			implot.SetupAxisLimitsV(implot.AxisY1, 0, yMax, implot.CondAlways)
			for _, s := range stats.Systems {
				series := w.systems[s.Name].Ordered()
				implot.PlotLineFloatPtrInt(s.Name, &series[0], int32(len(series)))
			}
			implot.EndPlot()
		}
		imgui.TreePop()
	}

	imgui.End()
}
