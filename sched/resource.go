package sched

import "reflect"

type resourceEntry struct {
	value any
}

// Resource gives a system access to a shared object provided to the
// Scheduler, such as the game engine. Declare it as a struct field of a
// System; Register wires it automatically.
type Resource[T any] struct {
	entry *resourceEntry
}

// Provide installs value as the resource of type *T, replacing any earlier
// value. Systems registered before or after the call observe the new value
// on their next Get.
func Provide[T any](s *Scheduler, value *T) {
	entry := s.resourceEntry(reflect.TypeFor[T]())
	entry.value = value
}

// Lookup returns the resource of type *T, or nil if none was provided.
func Lookup[T any](s *Scheduler) *T {
	entry, ok := s.resources[reflect.TypeFor[T]()]
	if !ok || entry.value == nil {
		return nil
	}
	return entry.value.(*T)
}

// Init binds the Resource to the scheduler's entry for T.
// This is called automatically by the Scheduler during system registration.
func (r *Resource[T]) Init(s *Scheduler) {
	r.entry = s.resourceEntry(reflect.TypeFor[T]())
}

// Get returns the current value, or nil if it has not been provided.
func (r *Resource[T]) Get() *T {
	if r.entry == nil || r.entry.value == nil {
		return nil
	}
	return r.entry.value.(*T)
}

// Exists returns true if a value has been provided.
func (r *Resource[T]) Exists() bool {
	return r.Get() != nil
}
