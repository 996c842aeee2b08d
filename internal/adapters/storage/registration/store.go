package registration

import (
	"context"

	domain "tatami/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	GetByAthleteAndEvent(ctx context.Context, athleteID, eventTypeID string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
	ListByUnitID(ctx context.Context, unitID string) ([]domain.Registration, error)
	ListByEventTypeID(ctx context.Context, eventTypeID string) ([]domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
}
