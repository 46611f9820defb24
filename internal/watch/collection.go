package watch

import (
	"context"

	"github.com/rs/zerolog"
)

// Query produces the current snapshot of a standing query.
type Query[T any] func(ctx context.Context) ([]T, error)

// Collection is an observable query result: subscribers receive the
// current rows immediately and a fresh snapshot after every write that
// touches one of the collection's tables. A collection is cheap to build
// and holds no resources until subscribed.
type Collection[T any] struct {
	hub    *Hub
	tables []Table
	query  Query[T]
	log    zerolog.Logger
}

// NewCollection binds a query to the tables whose writes invalidate it.
func NewCollection[T any](hub *Hub, log zerolog.Logger, query Query[T], tables ...Table) *Collection[T] {
	return &Collection[T]{hub: hub, tables: tables, query: query, log: log}
}

// Get runs the query once, without subscribing.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	return c.query(ctx)
}

// Subscribe delivers snapshots on the returned channel until ctx is done.
// The first snapshot is sent before Subscribe returns; later ones are
// produced by a per-subscriber goroutine, so delivery after a write is
// asynchronous. A query failure after subscription is logged and the
// previous snapshot stands; writers are never failed by their observers.
func (c *Collection[T]) Subscribe(ctx context.Context) (<-chan []T, error) {
	signals := make([]chan struct{}, 0, len(c.tables))
	cancels := make([]func(), 0, len(c.tables))
	for _, t := range c.tables {
		id, ch := c.hub.subscribe(t)
		signals = append(signals, ch)
		table := t
		cancels = append(cancels, func() { c.hub.unsubscribe(table, id) })
	}

	// Registration precedes the first query: a write that commits while
	// the snapshot is being read leaves a pending signal, so the stale
	// snapshot is followed by a fresh one instead of standing forever.
	// At worst the pending signal is spurious and re-reads the same rows.
	initial, err := c.query(ctx)
	if err != nil {
		for _, cancel := range cancels {
			cancel()
		}
		return nil, err
	}

	out := make(chan []T, 1)
	out <- initial

	// Funnel all table signals into one channel; each feeder exits when
	// the subscription tears down.
	merged := make(chan struct{}, 1)
	done := make(chan struct{})
	for _, ch := range signals {
		go func(ch chan struct{}) {
			for {
				select {
				case <-done:
					return
				case <-ch:
					select {
					case merged <- struct{}{}:
					default:
					}
				}
			}
		}(ch)
	}

	go func() {
		defer func() {
			for _, cancel := range cancels {
				cancel()
			}
			close(done)
			close(out)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-merged:
				rows, err := c.query(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					c.log.Error().Err(err).Msg("standing query failed, keeping previous snapshot")
					continue
				}
				select {
				case out <- rows:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
