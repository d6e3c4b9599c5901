package dom

import (
	"fmt"

	"github.com/npillmayer/manifest/merge"
)

// Callback is a ready callback. Callbacks are handled by reference: a node
// runs every Callback at most once, no matter how often it is initialized or
// how often the callback is configured.
type Callback struct {
	fn func(*Node) error
}

// Ready wraps a function as a ready callback, to be used as value of
// setting "ready".
func Ready(fn func(*Node) error) *Callback {
	return &Callback{fn: fn}
}

type readyState int8

const (
	readyNone readyState = iota
	readySingle
	readyMany
	readyDone
	readyInvalid
)

func (s readyState) String() string {
	return [...]string{"none", "single", "many", "done", "invalid"}[s]
}

// readiness holds the ready callbacks of a node which are still pending,
// together with the set of callbacks already run.
type readiness struct {
	state    readyState
	pending  []*Callback
	invalid  any // offending setting if state is readyInvalid
	complete map[*Callback]bool
}

// add registers the value of a ready setting. Adding a callback while
// another one is pending keeps both. Invalid values are recorded and
// reported by the next initialization.
func (r *readiness) add(v any) {
	switch x := v.(type) {
	case nil:
		return
	case bool:
		if x {
			r.done()
		}
		return
	case *Callback:
		r.push(x)
		return
	case []*Callback:
		for _, cb := range x {
			r.push(cb)
		}
		return
	}
	if seq, ok := merge.AsSequence(v); ok {
		for _, e := range seq {
			cb, ok := e.(*Callback)
			if !ok || cb == nil {
				r.state, r.invalid = readyInvalid, v
				return
			}
			r.push(cb)
		}
		return
	}
	r.state, r.invalid = readyInvalid, v
}

func (r *readiness) push(cb *Callback) {
	if cb == nil {
		return
	}
	if r.state == readyInvalid {
		r.state, r.invalid = readyNone, nil
	}
	for _, p := range r.pending {
		if p == cb {
			return
		}
	}
	r.pending = append(r.pending, cb)
	if len(r.pending) == 1 {
		r.state = readySingle
	} else {
		r.state = readyMany
	}
}

func (r *readiness) done() {
	r.state = readyDone
	r.pending = nil
}

// run executes pending callbacks which have not run before. Every callback is
// marked complete before it is called.
func (r *readiness) run(n *Node) error {
	switch r.state {
	case readyNone, readyDone:
		return nil
	case readyInvalid:
		return fmt.Errorf("%w: %v has ready setting of type %T", ErrInvalidReadyCallback, n, r.invalid)
	}
	for len(r.pending) > 0 {
		cb := r.pending[0]
		r.pending = r.pending[1:]
		if r.complete[cb] {
			continue
		}
		r.complete[cb] = true
		tracer().Debugf("%v: running ready callback (%s)", n, r.state)
		if cb.fn == nil {
			continue
		}
		if err := cb.fn(n); err != nil {
			return fmt.Errorf("ready callback of %v: %w", n, err)
		}
	}
	r.done()
	return nil
}

// Init requests an initialization run for n and waits for it to finish.
// Appending a node does this implicitly.
func (n *Node) Init() (*Node, error) {
	return n, n.doc.scheduleInit(n)
}

// initialize is a single initialization run:
//
// (1) traits of the parent node are merged into n's traits,
// (2) style-sets of the parent node likewise,
// (3) n's traits and style-sets are merged into each direct child,
// (4) style-sets of active classes are re-applied,
// (5) pending ready callbacks are run,
// (6) the callback is run, if set.
//
// Parent values take precedence over values of n.
func (n *Node) initialize() error {
	tracer().Debugf("init %v", n)
	if p := n.ParentNode(); p != nil {
		traits, cssClasses, err := inheritBoth(p, n)
		if err != nil {
			return fmt.Errorf("inheriting from %v: %w", p, err)
		}
		n.traits, n.cssClasses = traits, cssClasses
	}
	for _, ch := range n.Children() {
		traits, cssClasses, err := inheritBoth(n, ch)
		if err != nil {
			return fmt.Errorf("passing inheritance to %v: %w", ch, err)
		}
		ch.traits, ch.cssClasses = traits, cssClasses
	}
	n.reassertStyleSets()
	if err := n.ready.run(n); err != nil {
		return err
	}
	if n.callback != nil {
		if err := n.callback(n); err != nil {
			return fmt.Errorf("callback of %v: %w", n, err)
		}
	}
	return nil
}

// inheritBoth computes the traits and style-sets of ch inherited from p.
// ch is left untouched; on error neither mapping is to be assigned.
func inheritBoth(p, ch *Node) (traits, cssClasses map[string]any, err error) {
	if traits, err = inherit(p.traits, ch.traits); err != nil {
		return nil, nil, fmt.Errorf("traits of %v: %w", ch, err)
	}
	if cssClasses, err = inherit(p.cssClasses, ch.cssClasses); err != nil {
		return nil, nil, fmt.Errorf("style-sets of %v: %w", ch, err)
	}
	return traits, cssClasses, nil
}

// inherit merges every entry of from into the entry of own with the same key,
// from's value taking precedence. Entries only in own are kept, entries only
// in from are adopted, as are entries for which own holds a falsy value.
// The result is a new mapping.
func inherit(from, own map[string]any) (map[string]any, error) {
	if len(from) == 0 {
		return own, nil
	}
	result := make(map[string]any, len(own)+len(from))
	for k, v := range own {
		result[k] = v
	}
	for k, v := range from {
		if !merge.Truthy(own[k]) {
			result[k] = v
			continue
		}
		merged, err := merge.Merge(v, own[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		result[k] = merged
	}
	return result, nil
}
