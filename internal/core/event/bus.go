package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered when SwapBuffers+DispatchAll run at the start of tick N+1.
// Emit and dispatch happen on the writer goroutine only.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer (readable next tick).
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	return len(b.back)
}

// DispatchAll delivers front-buffer events in emission order.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := make(map[reflect.Type][]any, len(b.handlers))
	for t, hs := range b.handlers {
		handlers[t] = hs
	}
	b.mu.Unlock()

	for _, ev := range b.front {
		for _, h := range handlers[reflect.TypeOf(ev)] {
			callHandler(h, ev)
		}
	}
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
