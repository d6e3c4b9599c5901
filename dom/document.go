package dom

import (
	"fmt"

	"github.com/npillmayer/manifest/eventbus"
	"github.com/npillmayer/manifest/merge"
)

// Document owns a tree of nodes. It holds every node created by it,
// addressed by identity, together with the collaborators nodes need:
// a renderer for the host tree, an identity generator, an event bus and
// the default settings.
//
// A Document is not safe for concurrent use.
type Document struct {
	renderer Renderer
	ids      IDGenerator
	bus      *eventbus.Bus
	defaults map[string]any
	nodes    map[uint64]*Node // arena
	queue    []*Node          // pending initialization runs
	draining bool
}

// Option configures a document.
type Option func(*Document)

// WithIDGenerator sets the identity generator for nodes of a document.
// The default is a fresh Counter.
func WithIDGenerator(ids IDGenerator) Option {
	return func(doc *Document) {
		if ids != nil {
			doc.ids = ids
		}
	}
}

// WithEventBus connects a document to an event bus.
// The default is a local bus without forwarding.
func WithEventBus(bus *eventbus.Bus) Option {
	return func(doc *Document) {
		if bus != nil {
			doc.bus = bus
		}
	}
}

// WithDefaults replaces the default settings. Settings of every node are
// merged over the defaults.
func WithDefaults(defaults map[string]any) Option {
	return func(doc *Document) {
		doc.defaults = defaults
	}
}

// DefaultSettings returns the settings every node starts with, unless
// a document is configured WithDefaults.
func DefaultSettings() map[string]any {
	return map[string]any{
		"classes":    []any{},
		"attributes": map[string]any{},
		"styles":     map[string]any{},
		"data":       map[string]any{},
		"traits":     map[string]any{},
		"cssClasses": map[string]any{},
	}
}

// NewDocument creates a document on top of a renderer.
func NewDocument(renderer Renderer, opts ...Option) *Document {
	doc := &Document{
		renderer: renderer,
		nodes:    make(map[uint64]*Node),
	}
	for _, opt := range opts {
		opt(doc)
	}
	if doc.ids == nil {
		doc.ids = &Counter{}
	}
	if doc.bus == nil {
		doc.bus = eventbus.New()
	}
	if doc.defaults == nil {
		doc.defaults = DefaultSettings()
	}
	return doc
}

// Renderer returns the renderer of the document.
func (doc *Document) Renderer() Renderer {
	return doc.renderer
}

// Bus returns the event bus of the document.
func (doc *Document) Bus() *eventbus.Bus {
	return doc.bus
}

// Len returns the number of nodes owned by the document.
func (doc *Document) Len() int {
	return len(doc.nodes)
}

// Lookup finds a node by identity.
func (doc *Document) Lookup(id uint64) (*Node, error) {
	if n, ok := doc.nodes[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w: #%d", ErrUnknownNode, id)
}

// New creates a node for a host element with tag. Settings are applied in
// order, later settings overriding earlier ones, and merged over the
// document's default settings. The node is not attached to any parent;
// initialization runs when it is appended.
func (doc *Document) New(tag string, settings ...map[string]any) (*Node, error) {
	el, err := doc.renderer.CreateElement(tag)
	if err != nil {
		return nil, fmt.Errorf("creating <%s>: %w", tag, err)
	}
	n := newNode(doc, doc.ids.Next(), tag, el)
	var original any = map[string]any{}
	for _, s := range settings {
		if original, err = merge.Merge(s, original); err != nil {
			return nil, fmt.Errorf("settings of %v: %w", n, err)
		}
		n.ready.add(s["ready"])
	}
	n.settings = original.(map[string]any)
	if err = n.apply(n.settings); err != nil {
		return nil, err
	}
	doc.nodes[n.id] = n
	tracer().Debugf("created %v", n)
	return n, nil
}

// Must is a helper for tests and static trees. It panics if err is non-nil.
func Must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

// scheduleInit queues an initialization run for n. The outermost call drains
// the queue; calls issued while draining (from callbacks) return immediately
// and their runs are executed later by the outermost call. An error ends the
// drain, discards queued runs and is returned to the outermost caller.
func (doc *Document) scheduleInit(n *Node) error {
	doc.queue = append(doc.queue, n)
	if doc.draining {
		tracer().Debugf("init of %v queued", n)
		return nil
	}
	doc.draining = true
	defer func() {
		doc.draining = false
	}()
	for len(doc.queue) > 0 {
		next := doc.queue[0]
		doc.queue = doc.queue[1:]
		if _, owned := doc.nodes[next.id]; !owned {
			tracer().Debugf("skipping init of removed %v", next)
			continue
		}
		if err := next.initialize(); err != nil {
			tracer().Errorf("init of %v failed, discarding %d queued runs: %v", next, len(doc.queue), err)
			doc.queue = nil
			return err
		}
	}
	return nil
}
