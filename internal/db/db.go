// Package db owns the lifetime of the embedded database: it opens or
// creates the SQLite file, runs the schema migration, and populates a
// brand-new file with sample rows so a fresh install is not empty.
package db

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/invoiceapp/invoicedb/internal/config"
	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// DB is the opened database handle shared by every store. Construct it
// once at application start and pass it to whichever components need it;
// Close releases the file when the application stops.
type DB struct {
	Gorm *gorm.DB
	Hub  *watch.Hub

	// Seeded is closed once first-creation seeding has finished (or
	// immediately when there was nothing to seed). Callers that need the
	// sample rows wait on it instead of sleeping.
	Seeded <-chan struct{}

	log zerolog.Logger
}

// Open opens or creates the database file named by cfg, enables foreign
// key enforcement, and migrates the schema. When the file did not exist
// before this call, the sample data is seeded in the background.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	created := isFirstCreation(cfg.Path)

	gdb, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), &gorm.Config{
		Logger: newGormLogger(log, cfg.Debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	for _, m := range models.All() {
		if err := gdb.AutoMigrate(m); err != nil {
			return nil, errors.Wrapf(err, "automigrate %T", m)
		}
	}

	seeded := make(chan struct{})
	d := &DB{Gorm: gdb, Hub: watch.NewHub(), Seeded: seeded, log: log}

	if created && cfg.Seed {
		log.Info().Str("path", cfg.Path).Msg("new database file, seeding sample data")
		go func() {
			defer close(seeded)
			if err := d.SeedSampleData(); err != nil {
				log.Error().Err(err).Msg("sample data seeding failed")
			}
		}()
	} else {
		close(seeded)
	}

	return d, nil
}

// Close releases the underlying file handle.
func (d *DB) Close() error {
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access underlying connection")
	}
	return sqlDB.Close()
}

// dsn appends the foreign-key pragma; without it SQLite ignores the
// ON DELETE CASCADE constraints the schema declares.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// isFirstCreation reports whether opening path will create a new
// database. In-memory DSNs are always fresh.
func isFirstCreation(path string) bool {
	if strings.Contains(path, "mode=memory") || strings.Contains(path, ":memory:") {
		return true
	}
	file := strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(file, '?'); i >= 0 {
		file = file[:i]
	}
	_, err := os.Stat(file)
	return os.IsNotExist(err)
}
