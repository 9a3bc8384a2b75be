package controller

import (
	"sync"

	"loom/debug"
)

// subscriberBuffer is the per-subscriber channel depth. Slow observers
// lose events rather than stall the control loop.
const subscriberBuffer = 64

// hub fans events out to subscriber channels.
type hub struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan Event)}
}

// Subscribe returns a buffered event channel and a token for Unsubscribe.
func (h *hub) Subscribe() (<-chan Event, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Event, subscriberBuffer)
	id := h.next
	h.next++
	h.subs[id] = ch
	return ch, id
}

// Unsubscribe closes and removes the channel for the given token.
func (h *hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		close(ch)
		delete(h.subs, id)
	}
}

// Publish delivers ev to every subscriber, dropping it for any whose
// buffer is full.
func (h *hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			debug.LogEvery(100, "controller", "subscriber %d dropped %T", id, ev)
		}
	}
}

// Close closes all subscriber channels.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		close(ch)
		delete(h.subs, id)
	}
}
