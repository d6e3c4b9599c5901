/*
Package redisforward forwards events of an eventbus.Bus over Redis pub/sub.

Every event name maps to a Redis channel (prefix + name). Payloads travel as
JSON; remote handlers receive them decoded into generic values (maps,
slices, strings, float64 numbers, bools).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package redisforward

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/npillmayer/manifest/eventbus"
	"github.com/npillmayer/schuko/tracing"
	backend "github.com/redis/go-redis/v9"
)

// tracer traces with key 'manifest.eventbus'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.eventbus")
}

// Forwarder implements eventbus.Forwarder using Redis.
type Forwarder struct {
	client  backend.UniversalClient
	prefix  string
	timeout time.Duration
	ctx     context.Context
	stop    context.CancelFunc
	mu      sync.Mutex
	subs    map[*backend.PubSub]bool
}

// Option configures a forwarder.
type Option func(*Forwarder)

// WithPrefix sets the channel prefix for events. The default is "manifest:event:".
func WithPrefix(prefix string) Option {
	return func(f *Forwarder) {
		f.prefix = prefix
	}
}

// WithTimeout limits the time for publishing an event or confirming a
// subscription. The default is 5 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Forwarder) {
		f.timeout = timeout
	}
}

// message is the wire envelope of an event.
type message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New creates a forwarder for a Redis server address.
func New(ctx context.Context, address, password string, db int, opts ...Option) *Forwarder {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(ctx, client, opts...)
}

// NewFromClient creates a forwarder from an existing client. Remote
// subscriptions end when ctx is done or the forwarder is closed.
func NewFromClient(ctx context.Context, client backend.UniversalClient, opts ...Option) *Forwarder {
	f := &Forwarder{
		client:  client,
		prefix:  "manifest:event:",
		timeout: 5 * time.Second,
		subs:    make(map[*backend.PubSub]bool),
	}
	f.ctx, f.stop = context.WithCancel(ctx)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Forwarder) channel(event string) string {
	return f.prefix + event
}

// Emit publishes an event to its Redis channel.
//
// Interface eventbus.Forwarder
func (f *Forwarder) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload of %q: %w", event, err)
	}
	msg, err := json.Marshal(message{Event: event, Payload: data})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
	defer cancel()
	n, err := f.client.Publish(ctx, f.channel(event), msg).Result()
	if err != nil {
		return fmt.Errorf("publishing %q: %w", event, err)
	}
	tracer().Debugf("forwarded %q to %d remote subscribers", event, n)
	return nil
}

// On subscribes to the Redis channel of an event. It returns once Redis has
// confirmed the subscription. deliver is called on a goroutine of the
// forwarder.
//
// Interface eventbus.Forwarder
func (f *Forwarder) On(event string, deliver func(payload any)) (func(), error) {
	pubsub := f.client.Subscribe(f.ctx, f.channel(event))
	ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
	defer cancel()
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribing to %q: %w", event, err)
	}
	f.mu.Lock()
	f.subs[pubsub] = true
	f.mu.Unlock()
	ch := pubsub.Channel()
	go func() {
		for {
			select {
			case <-f.ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				payload, err := decode(m.Payload)
				if err != nil {
					tracer().Errorf("dropping remote %q: %v", event, err)
					continue
				}
				deliver(payload)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, pubsub)
			f.mu.Unlock()
			if err := pubsub.Close(); err != nil {
				tracer().Errorf("closing subscription to %q: %v", event, err)
			}
		})
	}, nil
}

func decode(data string) (any, error) {
	var msg message
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return nil, err
	}
	if len(msg.Payload) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Close ends all remote subscriptions. The Redis client is not closed.
func (f *Forwarder) Close() error {
	f.stop()
	f.mu.Lock()
	defer f.mu.Unlock()
	var first error
	for pubsub := range f.subs {
		if err := pubsub.Close(); err != nil && first == nil {
			first = err
		}
	}
	f.subs = make(map[*backend.PubSub]bool)
	return first
}

var _ eventbus.Forwarder = &Forwarder{}
