package db

import (
	"gorm.io/gorm"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// SeedSampleData inserts the sample rows a new install starts with: one
// customer and five catalog items. Open runs it on genuine first-time
// creation; the seed CLI command can run it on demand. It does not check
// for existing rows.
func (d *DB) SeedSampleData() error {
	return seed(d.Gorm, d.Hub)
}

func seed(gdb *gorm.DB, hub *watch.Hub) error {
	taxID := "TAX-123456789"
	customer := models.Customer{
		Name:    "Acme Corporation",
		Email:   "contact@acmecorp.com",
		Phone:   "+1 (555) 123-4567",
		Address: "123 Business Street\nNew York, NY 10001\nUnited States",
		TaxID:   &taxID,
	}
	if err := gdb.Create(&customer).Error; err != nil {
		return err
	}

	items := []models.Item{
		{
			Name:        "Web Development Service",
			Description: "Custom website development and design",
			Price:       2500.00,
			Unit:        "project",
		},
		{
			Name:        "Mobile App Development",
			Description: "iOS and Android app development",
			Price:       5000.00,
			Unit:        "project",
		},
		{
			Name:        "Consulting Hours",
			Description: "Technical consulting and advisory services",
			Price:       150.00,
			Unit:        "hour",
		},
		{
			Name:        "UI/UX Design",
			Description: "User interface and experience design",
			Price:       1200.00,
			Unit:        "project",
		},
		{
			Name:        "SEO Optimization",
			Description: "Search engine optimization services",
			Price:       800.00,
			Unit:        "month",
		},
	}
	if err := gdb.Create(&items).Error; err != nil {
		return err
	}

	hub.Notify(watch.TableCustomers, watch.TableItems)
	return nil
}
