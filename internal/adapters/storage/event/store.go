package event

import (
	"context"

	domain "tatami/internal/domain/event"
)

// TypeStore persists event Type state.
type TypeStore interface {
	GetByID(ctx context.Context, id string) (domain.Type, error)
	GetByKey(ctx context.Context, key string) (domain.Type, error)
	Save(ctx context.Context, value domain.Type) error
	List(ctx context.Context) ([]domain.Type, error)
}

// CategoryStore persists the admin category catalog.
type CategoryStore interface {
	GetByID(ctx context.Context, id string) (domain.Category, error)
	Save(ctx context.Context, value domain.Category) error
	Delete(ctx context.Context, id string) error
	ListByEventTypeID(ctx context.Context, eventTypeID string) ([]domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
