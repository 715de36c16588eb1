package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/sched"
	"github.com/plus3/handtris/tetris"
)

// EngineWindow shows the state of the current game, a miniature of the
// board and buttons that drive the session.
type EngineWindow struct {
	Session  *game.Session
	CellSize float32
}

func NewEngineWindow(session *game.Session) *EngineWindow {
	return &EngineWindow{Session: session, CellSize: 10}
}

func engineLines(snap tetris.Snapshot) []string {
	return []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Lines: %d  Level: %d", snap.Lines, snap.Level),
		fmt.Sprintf("Drop Interval: %v", snap.DropInterval),
		fmt.Sprintf("Current: %s at (%d, %d), ghost row %d", snap.Current.Kind, snap.Current.X, snap.Current.Y, snap.GhostY),
		fmt.Sprintf("Next: %s", snap.Next.Kind),
		fmt.Sprintf("Filled Cells: %d", snap.Board.FilledCount()),
	}
}

func colorVec(c tetris.Color, alpha float32) imgui.Vec4 {
	r, g, b := c.RGB()
	return imgui.NewVec4(float32(r)/255.0, float32(g)/255.0, float32(b)/255.0, alpha)
}

func (w *EngineWindow) Render(frame *sched.Frame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 420), imgui.CondOnce)
	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := w.Session.Snapshot()
	if snap.State == tetris.Over {
		imgui.TextColored(imgui.NewVec4(1.0, 0.2, 0.2, 1.0), "GAME OVER")
	} else {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("game #%d", w.Session.Tally().Games))

	for _, line := range engineLines(snap) {
		imgui.Text(line)
	}

	if imgui.Button("Restart") {
		w.Session.Restart()
	}
	imgui.SameLine()
	if imgui.Button("Rotate") {
		w.Session.Input.Push(tetris.Rotate)
	}
	imgui.SameLine()
	if imgui.Button("Hard Drop") {
		w.Session.Input.Push(tetris.HardDrop)
	}

	imgui.Separator()
	w.drawBoard(snap)

	imgui.End()
}

func (w *EngineWindow) drawBoard(snap tetris.Snapshot) {
	grid := snap.Grid()
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.15, 0.15, 0.15, 1.0))
	size := w.CellSize

	for y, row := range grid {
		for x, cell := range row {
			color := empty
			if cell.IsFilled() {
				color = imgui.ColorU32Vec4(colorVec(cell.Color(), 1.0))
			}
			topLeft := imgui.NewVec2(origin.X+float32(x)*size, origin.Y+float32(y)*size)
			drawList.AddRectFilled(topLeft, imgui.NewVec2(topLeft.X+size-1, topLeft.Y+size-1), color)
		}
	}

	imgui.Dummy(imgui.NewVec2(float32(snap.Board.Cols())*size, float32(snap.Board.Rows())*size))
}
