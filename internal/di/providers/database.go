package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store with defaults seeded.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.BadgerPath()
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	// First boot gets the stock categories and starter template.
	// Seeding is idempotent, so this is safe on every start.
	if err := db.SeedDefaults(context.Background()); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort on failed startup
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
