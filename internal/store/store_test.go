package store

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
)

// setupTestDB opens a per-test shared in-memory database with the schema
// migrated and foreign keys enforced. No sample data is seeded.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	d, err := db.Open(config.DatabaseConfig{Path: dsn, Seed: false}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newTestCustomer(name, email string) *models.Customer {
	return &models.Customer{
		Name:    name,
		Email:   email,
		Phone:   "+1 (555) 000-0000",
		Address: "1 Test Street",
	}
}

func newTestItem(name string, price float64) *models.Item {
	return &models.Item{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Unit:        "unit",
	}
}

func newTestInvoice(number string, customerID int64) *models.Invoice {
	issue := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		InvoiceNumber: number,
		CustomerID:    customerID,
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
		Subtotal:      100,
		TaxRate:       0.2,
		TaxAmount:     20,
		Total:         120,
		PaymentTerms:  "Net 30",
		Status:        models.InvoiceStatusUnpaid,
		TemplateType:  models.TemplateClassic,
	}
}

// mustInsertCustomer seeds one customer and returns its id.
func mustInsertCustomer(t *testing.T, d *db.DB, name, email string) int64 {
	t.Helper()
	id, err := NewCustomerStore(d.Gorm, d.Hub).Insert(context.Background(), newTestCustomer(name, email))
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return id
}

// mustInsertItem seeds one catalog item and returns its id.
func mustInsertItem(t *testing.T, d *db.DB, name string, price float64) int64 {
	t.Helper()
	id, err := NewItemStore(d.Gorm, d.Hub).Insert(context.Background(), newTestItem(name, price))
	if err != nil {
		t.Fatalf("insert item: %v", err)
	}
	return id
}

// mustInsertInvoice seeds one invoice and returns its id.
func mustInsertInvoice(t *testing.T, d *db.DB, number string, customerID int64) int64 {
	t.Helper()
	id, err := NewInvoiceStore(d.Gorm, d.Hub).Insert(context.Background(), newTestInvoice(number, customerID))
	if err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
	return id
}

// countRows counts the rows of one model.
func countRows(t *testing.T, d *db.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := d.Gorm.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
