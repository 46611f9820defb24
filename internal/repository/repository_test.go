package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/invoiceapp/invoicedb/internal/config"
	"github.com/invoiceapp/invoicedb/internal/db"
	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/store"
)

// repos bundles the full stack over one test database.
type repos struct {
	db        *db.DB
	customers *CustomerRepository
	items     *ItemRepository
	invoices  *InvoiceRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	d, err := db.Open(config.DatabaseConfig{Path: dsn, Seed: false}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	log := zerolog.Nop()
	return repos{
		db:        d,
		customers: NewCustomerRepository(store.NewCustomerStore(d.Gorm, d.Hub), d.Hub, log),
		items:     NewItemRepository(store.NewItemStore(d.Gorm, d.Hub), d.Hub, log),
		invoices: NewInvoiceRepository(
			d.Gorm,
			store.NewInvoiceStore(d.Gorm, d.Hub),
			store.NewInvoiceItemStore(d.Gorm, d.Hub),
			d.Hub,
			log,
		),
	}
}

func (r repos) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := r.db.Gorm.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func (r repos) seedCustomer(t *testing.T, name string) int64 {
	t.Helper()
	id, err := r.customers.Insert(context.Background(), &models.Customer{
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@test",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return id
}

func (r repos) seedItem(t *testing.T, name string, price float64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: name, Price: price, Unit: "hour"}
	if _, err := r.items.Insert(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func testInvoice(number string, customerID int64) *models.Invoice {
	issue := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		InvoiceNumber: number,
		CustomerID:    customerID,
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
		Subtotal:      450,
		TaxRate:       0.2,
		TaxAmount:     90,
		Total:         540,
		PaymentTerms:  "Net 30",
		Status:        models.InvoiceStatusUnpaid,
		TemplateType:  models.TemplateClassic,
	}
}
