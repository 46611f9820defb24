package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// ItemStore provides access to the items table.
type ItemStore struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewItemStore creates an item store.
func NewItemStore(db *gorm.DB, hub *watch.Hub) *ItemStore {
	return &ItemStore{db: db, hub: hub}
}

// List returns all catalog items ordered by name.
func (s *ItemStore) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}
	return items, nil
}

// GetByID returns the item with the given id, or nil when absent.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get item by id")
	}
	return &item, nil
}

// Search matches the query as an unanchored substring of name or
// description. An empty query matches every row.
func (s *ItemStore) Search(ctx context.Context, query string) ([]models.Item, error) {
	like := "%" + query + "%"
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}
	return items, nil
}

// Insert stores an item and returns its assigned id, replacing the
// existing row on an id collision.
func (s *ItemStore) Insert(ctx context.Context, item *models.Item) (int64, error) {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(item).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert item")
	}
	s.hub.Notify(watch.TableItems)
	return item.ID, nil
}

// Update replaces every column of the row with item's id. Existing invoice
// lines keep their snapshotted copy of the old values.
func (s *ItemStore) Update(ctx context.Context, item *models.Item) error {
	err := s.db.WithContext(ctx).
		Model(&models.Item{ID: item.ID}).
		Omit(clause.Associations).
		Select("*").
		Updates(item).Error
	if err != nil {
		return errors.Wrap(err, "failed to update item")
	}
	s.hub.Notify(watch.TableItems)
	return nil
}

// Delete removes the item row and, through the cascade, any invoice lines
// that still reference it.
func (s *ItemStore) Delete(ctx context.Context, item *models.Item) error {
	return s.DeleteByID(ctx, item.ID)
}

// DeleteByID removes the item with the given id.
func (s *ItemStore) DeleteByID(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Delete(&models.Item{}, id).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete item")
	}
	s.hub.Notify(watch.TableItems, watch.TableInvoiceItems)
	return nil
}
