package sched

// System is a unit of per-frame behavior driven by the Scheduler.
// Implementations can declare Resource fields, which the Scheduler wires on
// Register, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
