package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/sched"
)

// GestureWindow shows how gesture samples are being translated and lets the
// side threshold be tuned live.
type GestureWindow struct {
	Session *game.Session
	Width   float32
}

func NewGestureWindow(session *game.Session) *GestureWindow {
	return &GestureWindow{Session: session, Width: 240}
}

func gestureLines(stats gesture.Stats) []string {
	sig := "none"
	if stats.LastSignal.Detected {
		sig = fmt.Sprintf("x=%.2f", stats.LastSignal.X)
	}
	return []string{
		fmt.Sprintf("Signal: %s (%s)", sig, stats.LastZone),
		fmt.Sprintf("Samples: %d", stats.Samples),
		fmt.Sprintf("Accepted: %d  Debounced: %d", stats.Accepted, stats.Debounced),
		fmt.Sprintf("Idle: %d  No Signal: %d", stats.Idle, stats.NoSignal),
	}
}

func feedLines(stats gesture.FeedStats) []string {
	return []string{
		fmt.Sprintf("Clients: %d", stats.Clients),
		fmt.Sprintf("Received: %d  Dropped: %d", stats.Received, stats.Dropped),
		fmt.Sprintf("Age: %v", stats.Age),
	}
}

// zoneBounds returns the left and right threshold positions scaled to a bar
// of the given width.
func zoneBounds(c *gesture.Controller, width float32) (left, right float32) {
	margin := float32(c.SideThreshold) * width
	return width/2 - margin, width/2 + margin
}

func (w *GestureWindow) Render(frame *sched.Frame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(300, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 260), imgui.CondOnce)
	if !imgui.BeginV("Gesture", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	controller := w.Session.Controller
	stats := controller.Stats()
	for _, line := range gestureLines(stats) {
		imgui.Text(line)
	}
	if stats.LastCommand != 0 {
		imgui.Text(fmt.Sprintf("Last Command: %s", stats.LastCommand))
	}

	threshold := float32(controller.SideThreshold)
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("Side Threshold", &threshold) && threshold >= 0 && threshold < 0.5 {
		controller.SideThreshold = float64(threshold)
	}
	if imgui.Button("Reset Counters") {
		controller.Reset()
	}

	imgui.Separator()
	w.drawZones(controller, stats.LastSignal)

	if feed, ok := w.Session.Source().(*gesture.Feed); ok {
		if imgui.TreeNodeStr("Websocket Feed") {
			for _, line := range feedLines(feed.Stats()) {
				imgui.BulletText(line)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (w *GestureWindow) drawZones(c *gesture.Controller, sig gesture.Signal) {
	drawList := imgui.WindowDrawList()
	pos := imgui.CursorScreenPos()
	const height = 16

	left, right := zoneBounds(c, w.Width)
	side := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
	centre := imgui.ColorU32Vec4(imgui.NewVec4(0.3, 0.3, 0.3, 0.6))
	drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+left, pos.Y+height), side)
	drawList.AddRectFilled(imgui.NewVec2(pos.X+left, pos.Y), imgui.NewVec2(pos.X+right, pos.Y+height), centre)
	drawList.AddRectFilled(imgui.NewVec2(pos.X+right, pos.Y), imgui.NewVec2(pos.X+w.Width, pos.Y+height), side)

	if sig.Valid(c.Width) && c.Width > 0 {
		x := pos.X + float32(sig.X/c.Width)*w.Width
		marker := imgui.ColorU32Vec4(imgui.NewVec4(1.0, 0.8, 0.0, 1.0))
		drawList.AddRectFilled(imgui.NewVec2(x-2, pos.Y-2), imgui.NewVec2(x+2, pos.Y+height+2), marker)
	}

	imgui.Dummy(imgui.NewVec2(w.Width, height+4))
}
