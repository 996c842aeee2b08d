package athlete

import (
	"context"

	domain "tatami/internal/domain/athlete"
)

// Store persists Athlete state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Athlete, error)
	Save(ctx context.Context, value domain.Athlete) error
	Delete(ctx context.Context, id string) error
	ListByUnitID(ctx context.Context, unitID string) ([]domain.Athlete, error)
	List(ctx context.Context) ([]domain.Athlete, error)
}
