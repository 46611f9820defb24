package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// InvoiceItemStore provides access to the invoice_items table. An
// invoice's lines are replaced in bulk: DeleteByInvoice followed by
// InsertMany inside the caller's transaction.
type InvoiceItemStore struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewInvoiceItemStore creates an invoice item store.
func NewInvoiceItemStore(db *gorm.DB, hub *watch.Hub) *InvoiceItemStore {
	return &InvoiceItemStore{db: db, hub: hub}
}

// ListByInvoice returns one invoice's lines in insertion order.
func (s *InvoiceItemStore) ListByInvoice(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error) {
	var items []models.InvoiceItem
	err := s.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoice items")
	}
	return items, nil
}

// GetByID returns the line with the given id, or nil when absent.
func (s *InvoiceItemStore) GetByID(ctx context.Context, id int64) (*models.InvoiceItem, error) {
	var item models.InvoiceItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get invoice item by id")
	}
	return &item, nil
}

// Insert stores one line and returns its assigned id, replacing the
// existing row on an id collision.
func (s *InvoiceItemStore) Insert(ctx context.Context, item *models.InvoiceItem) (int64, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(item).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert invoice item")
	}
	s.hub.Notify(watch.TableInvoiceItems)
	return item.ID, nil
}

// InsertMany stores a batch of lines in one statement.
func (s *InvoiceItemStore) InsertMany(ctx context.Context, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&items).Error
	if err != nil {
		return errors.Wrap(err, "failed to insert invoice items")
	}
	s.hub.Notify(watch.TableInvoiceItems)
	return nil
}

// Update replaces every column of the row with item's id.
func (s *InvoiceItemStore) Update(ctx context.Context, item *models.InvoiceItem) error {
	err := s.db.WithContext(ctx).
		Model(&models.InvoiceItem{ID: item.ID}).
		Select("*").
		Updates(item).Error
	if err != nil {
		return errors.Wrap(err, "failed to update invoice item")
	}
	s.hub.Notify(watch.TableInvoiceItems)
	return nil
}

// Delete removes one line.
func (s *InvoiceItemStore) Delete(ctx context.Context, item *models.InvoiceItem) error {
	err := s.db.WithContext(ctx).Delete(&models.InvoiceItem{}, item.ID).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete invoice item")
	}
	s.hub.Notify(watch.TableInvoiceItems)
	return nil
}

// DeleteByInvoice removes every line belonging to one invoice.
func (s *InvoiceItemStore) DeleteByInvoice(ctx context.Context, invoiceID int64) error {
	err := s.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&models.InvoiceItem{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete invoice items by invoice")
	}
	s.hub.Notify(watch.TableInvoiceItems)
	return nil
}
