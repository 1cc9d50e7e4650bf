package event

import (
	"reflect"
)

// Bus delivers domain events to typed subscribers. Emit dispatches
// synchronously on the caller's goroutine, in subscription order, so a
// subscriber observes the state right after the mutation that produced the
// event. Single-goroutine use only.
type Bus struct {
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Emit delivers event to every handler subscribed to T. A nil bus drops the
// event.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, h := range b.handlers[t] {
		// Subscribe and Emit key on the same type, so the assertion holds.
		h.(func(T))(event)
	}
}

// Subscribers returns the number of handlers registered for T.
func Subscribers[T any](b *Bus) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return len(b.handlers[t])
}
