package payment

import (
	"context"

	domain "tatami/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	GetActiveByUnitID(ctx context.Context, unitID string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	ListByUnitID(ctx context.Context, unitID string) ([]domain.Payment, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Payment, error)
}
