package projections

import (
	"context"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/event"
	"tatami/internal/domain/payment"
	"tatami/internal/domain/registration"
	"tatami/internal/domain/unit"
)

// AthleteStore is the athlete read interface used by projections.
type AthleteStore interface {
	List(ctx context.Context) ([]athlete.Athlete, error)
	ListByUnitID(ctx context.Context, unitID string) ([]athlete.Athlete, error)
}

// RegistrationStore is the registration read interface used by projections.
type RegistrationStore interface {
	List(ctx context.Context) ([]registration.Registration, error)
	ListByUnitID(ctx context.Context, unitID string) ([]registration.Registration, error)
}

// EventTypeStore is the event type read interface used by projections.
type EventTypeStore interface {
	List(ctx context.Context) ([]event.Type, error)
}

// PaymentStore is the payment read interface used by projections.
type PaymentStore interface {
	ListByUnitID(ctx context.Context, unitID string) ([]payment.Payment, error)
}

// UnitStore is the unit read interface used by projections.
type UnitStore interface {
	GetByID(ctx context.Context, id string) (unit.Unit, error)
}
