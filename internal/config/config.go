// Package config handles loading the roster's configuration.
// It looks for a YAML file in two places (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// With neither, every value comes from the environment or its default, so
// the CLI works out of the box.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/aanand-mishra/student-roster/internal/storage"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StorageDriver picks the slot backend: "sqlite", "file" or "memory".
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"sqlite"`

	// StoragePath is the SQLite .db file for "sqlite" and the directory
	// for "file". Ignored by "memory".
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/roster.db"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings for `roster serve`.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

var drivers = map[string]bool{
	storage.DriverSQLite: true,
	storage.DriverFile:   true,
	storage.DriverMemory: true,
}

// ErrInvalid is wrapped by Load for values that parse but make no sense.
var ErrInvalid = errors.New("invalid config")

// Load reads and validates the configuration. flagPath is the value of
// --config; CONFIG_PATH wins over it.
func Load(flagPath string) (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = flagPath
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// A clear message beats a cryptic "open: no such file" later.
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", configPath, err)
		}
	}

	if !drivers[cfg.StorageDriver] {
		return nil, fmt.Errorf("config.Load: %w: storage_driver %q (want sqlite, file or memory)",
			ErrInvalid, cfg.StorageDriver)
	}
	return &cfg, nil
}

// MustLoad is Load for callers that cannot continue without a config:
// if it returns, the config is valid.
func MustLoad(flagPath string) *Config {
	cfg, err := Load(flagPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
