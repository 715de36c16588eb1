// Package debugui provides Dear ImGui debug windows for a running game session.
// Windows are queued by the Overlay system and rendered after the game
// systems of the frame, so they always show settled state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handtris/sched"
)

// Window renders one ImGui window for the given frame.
type Window interface {
	Render(frame *sched.Frame)
}

// WindowFunc adapts a function to Window.
type WindowFunc func(frame *sched.Frame)

func (f WindowFunc) Render(frame *sched.Frame) {
	f(frame)
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Frontends provide it as a resource and skip their own handling while it is
// set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay updates InputState and defers every window's Render to the end of
// the frame.
type Overlay struct {
	Windows []Window
	Hidden  bool

	Input sched.Resource[InputState]
}

func NewOverlay(windows ...Window) *Overlay {
	return &Overlay{Windows: windows}
}

// Add appends a window.
func (o *Overlay) Add(w Window) {
	o.Windows = append(o.Windows, w)
}

// Toggle shows or hides every window.
func (o *Overlay) Toggle() {
	o.Hidden = !o.Hidden
}

func (o *Overlay) Execute(frame *sched.Frame) {
	if state := o.Input.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = !o.Hidden && io.WantCaptureMouse()
		state.WantCaptureKeyboard = !o.Hidden && io.WantCaptureKeyboard()
	}

	if o.Hidden {
		return
	}
	for _, w := range o.Windows {
		frame.Commands.Defer(func() {
			w.Render(frame)
		})
	}
}
