// Package watch fans out change notifications to connected listing streams.
// Mutating services call Notify after a successful write; each open stream
// re-reads its collection and pushes a fresh snapshot to the browser.
package watch

import "sync"

// Topic identifies a watchable collection
type Topic string

const (
	TopicProducts Topic = "products"
	TopicInvoices Topic = "invoices"
	TopicSales    Topic = "sales"
	TopicExpenses Topic = "expenses"
)

// Hub tracks subscribers per topic. Notifications are coalescing wake-ups
// with no payload: a subscriber that is slow simply sees one pending signal
// instead of a backlog.
type Hub struct {
	mu   sync.Mutex
	subs map[Topic]map[chan struct{}]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[chan struct{}]struct{})}
}

// Subscribe registers a listener for the topic. The returned channel carries
// wake-up signals; the cancel func must be called when the stream closes.
func (h *Hub) Subscribe(topic Topic) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan struct{}]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[topic], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify wakes every subscriber of the given topics. It never blocks: a
// subscriber with a signal already pending is skipped.
func (h *Hub) Notify(topics ...Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		for ch := range h.subs[topic] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}
