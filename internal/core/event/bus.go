package event

import "reflect"

// Bus carries same-tick signals between systems. Events emitted during a
// tick can be drained by a later system of the same tick; whatever is left
// is discarded by EndTick, after every emitted event has been offered to the
// subscribers. Nothing survives into the next tick. A Bus belongs to the
// loop goroutine and is not safe for concurrent use.
type Bus struct {
	pending  map[reflect.Type][]any
	emitted  []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		pending:  make(map[reflect.Type][]any),
		emitted:  make([]any, 0, 8),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event for the current tick.
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	b.pending[t] = append(b.pending[t], event)
	b.emitted = append(b.emitted, event)
}

// Drain returns the events of type T emitted so far this tick and clears
// them, so a second Drain in the same tick sees nothing.
func Drain[T any](b *Bus) []T {
	t := typeOf[T]()
	queued := b.pending[t]
	if len(queued) == 0 {
		return nil
	}
	out := make([]T, len(queued))
	for i, ev := range queued {
		out[i] = ev.(T)
	}
	b.pending[t] = queued[:0]
	return out
}

// Pending counts undrained events of type T.
func Pending[T any](b *Bus) int {
	return len(b.pending[typeOf[T]()])
}

// Subscribe registers a typed observer. Observers run in EndTick, in
// emission order, whether or not the event was drained.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// EndTick delivers this tick's events to subscribers and resets the bus.
func (b *Bus) EndTick() {
	for _, ev := range b.emitted {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			callHandler(h, ev)
		}
	}
	b.emitted = b.emitted[:0]
	for k := range b.pending {
		b.pending[k] = b.pending[k][:0]
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
