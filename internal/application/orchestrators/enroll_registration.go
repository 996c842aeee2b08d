package orchestrators

import (
	"context"
	"errors"
	"time"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
	"tatami/internal/domain/event"
	"tatami/internal/domain/registration"
)

// RegistrationStoreForEnroll defines the store interface needed by EnrollRegistration.
type RegistrationStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	GetByAthleteAndEvent(ctx context.Context, athleteID, eventTypeID string) (registration.Registration, error)
	Save(ctx context.Context, r registration.Registration) error
	Delete(ctx context.Context, id string) error
}

// AthleteStoreForEnroll defines the store interface needed by EnrollRegistration.
type AthleteStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (athlete.Athlete, error)
}

// EventTypeStoreForEnroll defines the store interface needed by EnrollRegistration.
type EventTypeStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (event.Type, error)
}

// EnrollRegistrationInput carries input for the orchestrator.
type EnrollRegistrationInput struct {
	UnitID        string
	AthleteID     string
	EventTypeID   string
	TeamPartnerID string
}

// EnrollRegistrationDeps holds dependencies for EnrollRegistration.
type EnrollRegistrationDeps struct {
	RegistrationStore RegistrationStoreForEnroll
	AthleteStore      AthleteStoreForEnroll
	EventTypeStore    EventTypeStoreForEnroll
	GenerateID        func() string
	Now               func() time.Time
}

var (
	ErrAlreadyEnrolled  = errors.New("athlete is already enrolled in this event")
	ErrPartnerEnrolled  = errors.New("partner is already enrolled in this event")
	ErrPartnerForSolo   = errors.New("individual events cannot have a team partner")
	ErrRegNotOwned      = errors.New("registration does not belong to this unit")
	ErrAthleteNotInUnit = errors.New("athlete does not belong to this unit")
)

// ExecuteEnrollRegistration enrolls an athlete in an event, stamping
// the weight class and, for team events with a named partner, creating
// the mirrored partner row with a shared gender division.
// PRE: Athlete belongs to the unit; event type exists
// POST: Registration persisted; partner row mirrored for teams
// INVARIANT: At most one registration per athlete and event type
func ExecuteEnrollRegistration(ctx context.Context, input EnrollRegistrationInput, deps EnrollRegistrationDeps) (string, error) {
	eventType, err := deps.EventTypeStore.GetByID(ctx, input.EventTypeID)
	if err != nil {
		return "", err
	}

	a, err := deps.AthleteStore.GetByID(ctx, input.AthleteID)
	if err != nil {
		return "", err
	}
	if a.UnitID != input.UnitID {
		return "", ErrAthleteNotInUnit
	}

	if _, err := deps.RegistrationStore.GetByAthleteAndEvent(ctx, input.AthleteID, input.EventTypeID); err == nil {
		return "", ErrAlreadyEnrolled
	}

	if !eventType.RequiresTeam && input.TeamPartnerID != "" {
		return "", ErrPartnerForSolo
	}

	reg := registration.Registration{
		ID:          deps.GenerateID(),
		UnitID:      input.UnitID,
		AthleteID:   input.AthleteID,
		EventTypeID: input.EventTypeID,
		CreatedAt:   deps.Now(),
	}

	if eventType.RequiresTeam {
		reg.WeightClass = category.WeightClassAll
	} else {
		weightClass, err := category.ResolveWeightClass(a.WeightKg, false, a.AgeGroup, a.Gender)
		if err != nil {
			return "", err
		}
		reg.WeightClass = weightClass
	}

	var mirror *registration.Registration
	if eventType.RequiresTeam && input.TeamPartnerID != "" {
		partner, err := deps.AthleteStore.GetByID(ctx, input.TeamPartnerID)
		if err != nil {
			return "", err
		}
		if _, err := deps.RegistrationStore.GetByAthleteAndEvent(ctx, partner.ID, input.EventTypeID); err == nil {
			return "", ErrPartnerEnrolled
		}

		division, err := category.DeriveGenderDivision(a.Gender, partner.Gender)
		if err != nil {
			return "", err
		}
		reg.TeamPartnerID = partner.ID
		reg.GenderDivision = division

		mirror = &registration.Registration{
			ID:             deps.GenerateID(),
			UnitID:         partner.UnitID,
			AthleteID:      partner.ID,
			EventTypeID:    input.EventTypeID,
			WeightClass:    category.WeightClassAll,
			TeamPartnerID:  a.ID,
			GenderDivision: division,
			CreatedAt:      reg.CreatedAt,
		}
	}

	if err := reg.Validate(); err != nil {
		return "", err
	}
	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return "", err
	}
	if mirror != nil {
		if err := mirror.Validate(); err != nil {
			return "", err
		}
		if err := deps.RegistrationStore.Save(ctx, *mirror); err != nil {
			return "", err
		}
	}

	return reg.ID, nil
}

// WithdrawRegistrationInput carries input for the withdraw orchestrator.
type WithdrawRegistrationInput struct {
	UnitID         string
	RegistrationID string
}

// ExecuteWithdrawRegistration removes a registration and, for team
// entries, the mirrored partner row.
// PRE: Registration exists and belongs to the unit
// POST: Row and its mirror are removed
func ExecuteWithdrawRegistration(ctx context.Context, input WithdrawRegistrationInput, deps EnrollRegistrationDeps) error {
	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return err
	}
	if reg.UnitID != input.UnitID {
		return ErrRegNotOwned
	}

	if reg.TeamPartnerID != "" {
		mirror, err := deps.RegistrationStore.GetByAthleteAndEvent(ctx, reg.TeamPartnerID, reg.EventTypeID)
		if err == nil && mirror.TeamPartnerID == reg.AthleteID {
			if err := deps.RegistrationStore.Delete(ctx, mirror.ID); err != nil {
				return err
			}
		}
	}

	return deps.RegistrationStore.Delete(ctx, reg.ID)
}
