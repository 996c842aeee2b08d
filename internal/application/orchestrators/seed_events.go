package orchestrators

import (
	"context"
	"log/slog"

	"tatami/internal/domain/event"
)

// EventTypeStoreForSeed defines the store interface needed by SeedEventCatalog.
type EventTypeStoreForSeed interface {
	GetByKey(ctx context.Context, key string) (event.Type, error)
	Save(ctx context.Context, t event.Type) error
}

// EventCategoryStoreForSeed defines the store interface needed by SeedEventCatalog.
type EventCategoryStoreForSeed interface {
	Save(ctx context.Context, c event.Category) error
}

// SeedEventCatalogDeps holds dependencies for SeedEventCatalog.
type SeedEventCatalogDeps struct {
	EventTypeStore     EventTypeStoreForSeed
	EventCategoryStore EventCategoryStoreForSeed
	GenerateID         func() string
}

// ExecuteSeedEventCatalog inserts the built-in event types and their
// category catalog rows. Safe to run on every startup: existing types
// keep their IDs and catalog rows upsert on their natural key.
// POST: Every built-in event type and bracket exists in the catalog
func ExecuteSeedEventCatalog(ctx context.Context, deps SeedEventCatalogDeps) error {
	seeded := 0
	for _, t := range event.SeedTypes() {
		existing, err := deps.EventTypeStore.GetByKey(ctx, t.Key)
		if err == nil {
			t.ID = existing.ID
		} else {
			t.ID = deps.GenerateID()
			if err := deps.EventTypeStore.Save(ctx, t); err != nil {
				return err
			}
		}

		for _, c := range event.CatalogSeed(t) {
			c.ID = deps.GenerateID()
			if err := deps.EventCategoryStore.Save(ctx, c); err != nil {
				return err
			}
			seeded++
		}
	}
	slog.Info("event_catalog_seeded", "categories", seeded)
	return nil
}
