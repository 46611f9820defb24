// Package config loads the layer's small configuration surface: where
// the database file lives, whether a brand-new file gets sample data,
// and how chatty the logs are.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Database    DatabaseConfig `mapstructure:"database"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig holds the embedded database settings.
type DatabaseConfig struct {
	// Path is the SQLite file, or a file: DSN for shared in-memory use.
	Path string `mapstructure:"path"`
	// Seed controls whether a first-time creation is populated with the
	// sample customer and items.
	Seed bool `mapstructure:"seed"`
	// Debug switches the GORM logger to statement-level output.
	Debug bool `mapstructure:"debug"`
}

// LoadConfig reads configuration from an optional config file in path,
// then lets INVOICEDB_* environment variables override it.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine; defaults and env vars carry the day.
	}

	v.SetEnvPrefix("INVOICEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("database.path", "invoice_database.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.debug", false)
}
