package oracles

import (
	"go.uber.org/atomic"
)

// blockCursor tracks the highest block of the events consumed from a subscription, so
// a replacement subscription can pick up where the previous one stopped.
type blockCursor struct {
	// highest consumed block plus one, zero until the first event
	next atomic.Uint64
}

// Observe records that an event of the given block was consumed. Older blocks are ignored.
func (c *blockCursor) Observe(block uint64) {
	for {
		current := c.next.Load()
		if block+1 <= current {
			return
		}
		if c.next.CompareAndSwap(current, block+1) {
			return
		}
	}
}

// Start returns the block a new subscription replays from, or nil if no event was
// consumed yet. The last consumed block itself is replayed, since further events of
// the same block may have been missed.
func (c *blockCursor) Start() *uint64 {
	next := c.next.Load()
	if next == 0 {
		return nil
	}
	start := next - 1
	return &start
}
