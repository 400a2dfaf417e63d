package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/editor"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/file"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
)

var openers = map[string]storage.Opener{
	storage.DriverSQLite: sqlite.Open,
	storage.DriverFile:   file.Open,
	storage.DriverMemory: memory.Open,
}

// app is everything one command needs, built explicitly in order:
// config → logger → slot → store (hydrated) → editor.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	kv     storage.KeyValue
	store  *roster.Store
	editor *editor.Editor
}

type appOptions struct {
	// cfg, when set, is used instead of loading the configuration.
	cfg     *config.Config
	logTo   io.Writer
	quiet   bool
	notify  editor.Notifier
	confirm editor.Confirmer
}

func openApp(opts *RootOptions, ao appOptions) (*app, error) {
	cfg := ao.cfg
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	log := setupLogger(cfg.Env, ao.logTo, ao.quiet && !opts.Verbose)
	// The HTTP handlers log through the default logger.
	slog.SetDefault(log)

	kv, err := storage.Open(cfg.StorageDriver, cfg.StoragePath, openers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise storage: %w", err)
	}
	log.Debug("storage initialised",
		slog.String("driver", cfg.StorageDriver),
		slog.String("path", cfg.StoragePath))

	store, err := roster.Open(kv, log)
	if err != nil {
		kv.Close()
		return nil, err
	}

	notify := ao.notify
	if notify == nil {
		notify = editor.LogNotifier(log)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		kv:     kv,
		store:  store,
		editor: editor.New(store, notify, ao.confirm, log),
	}, nil
}

// Close releases the slot. Mutations are already persisted.
func (a *app) Close() error {
	return a.kv.Close()
}
