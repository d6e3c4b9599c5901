package dom

import "sync/atomic"

// IDGenerator hands out node identities. Identities must be strictly
// increasing and must never be re-used by the generator of a document.
type IDGenerator interface {
	Next() uint64
}

// Counter is the default IDGenerator. The zero value starts at 1.
type Counter struct {
	last atomic.Uint64
}

// Next returns the next identity.
func (c *Counter) Next() uint64 {
	return c.last.Add(1)
}

var _ IDGenerator = &Counter{}
