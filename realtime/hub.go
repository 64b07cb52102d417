package realtime

import (
	"sync"
)

// Hub broadcasts report-collection invalidations to live feed subscribers.
// Writers call Notify after any report, like, or comment mutation; each
// subscriber then re-runs the full feed pipeline and replaces its snapshot
// wholesale. Signals are coalesced per subscriber: a slow consumer sees one
// pending invalidation, not a backlog.
type Hub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called on
// disconnect; after cancel the channel is closed and no longer signaled.
func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify signals every subscriber without blocking. A subscriber with a
// signal already pending is skipped; it will refresh once and pick up this
// change too.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the current listener count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
