package unit

import (
	"context"

	domain "tatami/internal/domain/unit"
)

// Store persists Unit state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Unit, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Unit, error)
	Save(ctx context.Context, value domain.Unit) error
	List(ctx context.Context) ([]domain.Unit, error)
}
