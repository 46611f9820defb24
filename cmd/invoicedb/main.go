package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/invoiceapp/invoicedb/internal/config"
	"github.com/invoiceapp/invoicedb/internal/db"
	"github.com/invoiceapp/invoicedb/internal/repository"
	"github.com/invoiceapp/invoicedb/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "invoicedb",
	Short: "Inspect and exercise the local invoicing database",
	Long: `invoicedb opens the embedded invoicing database used by the mobile app
and offers small maintenance commands: row counts, sample-data seeding,
invoice number generation, and a live view of a table.`,
	SilenceUsage: true,
}

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase loads configuration, wires the logger, and opens the
// database file. Every subcommand starts here.
func openDatabase() (*db.DB, config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, config.Config{}, err
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	d, err := db.Open(cfg.Database, log.Logger)
	if err != nil {
		return nil, config.Config{}, err
	}
	return d, cfg, nil
}

// repositories wires the full stack over one opened database.
type repositories struct {
	customers *repository.CustomerRepository
	items     *repository.ItemRepository
	invoices  *repository.InvoiceRepository
}

func buildRepositories(d *db.DB) repositories {
	customerStore := store.NewCustomerStore(d.Gorm, d.Hub)
	itemStore := store.NewItemStore(d.Gorm, d.Hub)
	invoiceStore := store.NewInvoiceStore(d.Gorm, d.Hub)
	lineStore := store.NewInvoiceItemStore(d.Gorm, d.Hub)

	return repositories{
		customers: repository.NewCustomerRepository(customerStore, d.Hub, log.Logger),
		items:     repository.NewItemRepository(itemStore, d.Hub, log.Logger),
		invoices:  repository.NewInvoiceRepository(d.Gorm, invoiceStore, lineStore, d.Hub, log.Logger),
	}
}
