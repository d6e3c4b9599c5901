package eventbus

import (
	"fmt"
	"sync"
)

// Handler receives events.
type Handler func(event string, payload any)

// Forwarder connects a bus to a remote channel.
//
// Emit sends an event to the remote channel. On subscribes to remote events
// of a name and calls deliver for each of them, until the returned cancel
// function is called.
type Forwarder interface {
	Emit(event string, payload any) error
	On(event string, deliver func(payload any)) (cancel func(), err error)
}

// Bus dispatches events to subscribed handlers. It is safe for concurrent use.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[string][]*subscription
	forwarder Forwarder
	nextID    uint64
}

type subscription struct {
	id      uint64
	handler Handler
	cancel  func() // remote subscription, if any
}

// Option configures a bus.
type Option func(*Bus)

// WithForwarder connects a bus to a remote channel.
func WithForwarder(f Forwarder) Option {
	return func(b *Bus) {
		b.forwarder = f
	}
}

// New creates a bus.
func New(opts ...Option) *Bus {
	b := &Bus{handlers: make(map[string][]*subscription)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Forwarding is a predicate: is b connected to a remote channel?
func (b *Bus) Forwarding() bool {
	return b.forwarder != nil
}

// Subscribe registers handler for events of a name. With forward set, the
// handler additionally receives events of that name from the remote channel.
// The returned function unsubscribes.
func (b *Bus) Subscribe(event string, handler Handler, forward bool) (func(), error) {
	if handler == nil {
		return func() {}, fmt.Errorf("subscribing to %q: nil handler", event)
	}
	b.mu.Lock()
	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler}
	b.handlers[event] = append(b.handlers[event], sub)
	b.mu.Unlock()
	if forward && b.forwarder != nil {
		cancel, err := b.forwarder.On(event, func(payload any) {
			tracer().Debugf("remote event %q", event)
			handler(event, payload)
		})
		if err != nil {
			b.unsubscribe(event, sub.id)
			return func() {}, fmt.Errorf("subscribing to remote %q: %w", event, err)
		}
		sub.cancel = cancel
	}
	tracer().Debugf("subscribed to %q (forward=%v)", event, forward)
	return func() { b.unsubscribe(event, sub.id) }, nil
}

func (b *Bus) unsubscribe(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[event]
	for i, sub := range subs {
		if sub.id == id {
			if sub.cancel != nil {
				sub.cancel()
			}
			b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}

// Publish calls every local handler of event, in order of subscription.
// With forward set, the event is then sent to the remote channel as well.
func (b *Bus) Publish(event string, payload any, forward bool) error {
	b.mu.RLock()
	subs := append([]*subscription(nil), b.handlers[event]...)
	b.mu.RUnlock()
	tracer().Debugf("publishing %q to %d handlers", event, len(subs))
	for _, sub := range subs {
		sub.handler(event, payload)
	}
	if forward && b.forwarder != nil {
		if err := b.forwarder.Emit(event, payload); err != nil {
			return fmt.Errorf("forwarding %q: %w", event, err)
		}
	}
	return nil
}

// Subscribers returns the number of local handlers for event.
func (b *Bus) Subscribers(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event])
}
