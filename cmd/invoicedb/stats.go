package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoiceapp/invoicedb/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts for every table",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	d, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer d.Close()
	<-d.Seeded

	tables := []struct {
		name  string
		model interface{}
	}{
		{"customers", &models.Customer{}},
		{"items", &models.Item{}},
		{"invoices", &models.Invoice{}},
		{"invoice_items", &models.InvoiceItem{}},
	}
	for _, t := range tables {
		var count int64
		if err := d.Gorm.Model(t.model).Count(&count).Error; err != nil {
			return err
		}
		fmt.Printf("%-15s %d\n", t.name, count)
	}
	return nil
}
