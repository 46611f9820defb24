// Package watch turns plain queries into observable collections: stores
// signal the hub after every successful write, and each standing query
// re-runs and pushes a fresh snapshot to its subscribers.
package watch

import (
	"sync"

	"github.com/google/uuid"
)

// Table identifies one of the persisted tables for change notification.
type Table string

const (
	TableCustomers    Table = "customers"
	TableItems        Table = "items"
	TableInvoices     Table = "invoices"
	TableInvoiceItems Table = "invoice_items"
)

// Hub fans write notifications out to table subscribers. Signal channels
// are buffered with capacity one so bursts of writes coalesce into a
// single re-query and Notify never blocks the writer.
type Hub struct {
	mu   sync.RWMutex
	subs map[Table]map[uuid.UUID]chan struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Table]map[uuid.UUID]chan struct{})}
}

// Notify signals every subscriber of the given tables that their data may
// have changed. Safe to call from any goroutine.
func (h *Hub) Notify(tables ...Table) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, t := range tables {
		for _, ch := range h.subs[t] {
			select {
			case ch <- struct{}{}:
			default: // a signal is already pending
			}
		}
	}
}

// subscribe registers interest in one table and returns the signal channel
// together with the id needed to unsubscribe.
func (h *Hub) subscribe(t Table) (uuid.UUID, chan struct{}) {
	id := uuid.New()
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[t] == nil {
		h.subs[t] = make(map[uuid.UUID]chan struct{})
	}
	h.subs[t][id] = ch
	return id, ch
}

func (h *Hub) unsubscribe(t Table, id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[t], id)
}

// SubscriberCount reports how many active subscriptions a table has.
func (h *Hub) SubscriberCount(t Table) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[t])
}
