package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/store"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// ItemRepository forwards catalog item operations to the store.
type ItemRepository struct {
	items *store.ItemStore
	hub   *watch.Hub
	log   zerolog.Logger

	all *watch.Collection[models.Item]
}

// NewItemRepository creates the repository and its standing all-items
// collection.
func NewItemRepository(items *store.ItemStore, hub *watch.Hub, log zerolog.Logger) *ItemRepository {
	r := &ItemRepository{items: items, hub: hub, log: log}
	r.all = watch.NewCollection(hub, log, items.List, watch.TableItems)
	return r
}

// All is the observable list of every catalog item, ordered by name.
func (r *ItemRepository) All() *watch.Collection[models.Item] {
	return r.all
}

// SearchWatch returns an observable result for one search query.
func (r *ItemRepository) SearchWatch(query string) *watch.Collection[models.Item] {
	return watch.NewCollection(r.hub, r.log, func(ctx context.Context) ([]models.Item, error) {
		return r.items.Search(ctx, query)
	}, watch.TableItems)
}

// Insert stores an item and returns its assigned id.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) (int64, error) {
	return r.items.Insert(ctx, item)
}

// Update replaces the stored row. Lines already copied onto invoices keep
// their snapshotted values.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.items.Update(ctx, item)
}

// Delete removes the item.
func (r *ItemRepository) Delete(ctx context.Context, item *models.Item) error {
	return r.items.Delete(ctx, item)
}

// DeleteByID removes the item with the given id.
func (r *ItemRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.items.DeleteByID(ctx, id)
}

// GetByID returns the item or nil when absent.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return r.items.GetByID(ctx, id)
}

// Search runs a one-shot substring search over name and description.
func (r *ItemRepository) Search(ctx context.Context, query string) ([]models.Item, error) {
	return r.items.Search(ctx, query)
}
