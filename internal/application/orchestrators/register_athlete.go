package orchestrators

import (
	"context"
	"errors"
	"strings"
	"time"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
)

// AthleteStoreForRegister defines the store interface needed by RegisterAthlete.
type AthleteStoreForRegister interface {
	GetByID(ctx context.Context, id string) (athlete.Athlete, error)
	Save(ctx context.Context, a athlete.Athlete) error
}

// SettingsProvider serves the admin-configurable classification settings.
type SettingsProvider interface {
	AgeRanges(ctx context.Context) (category.AgeRanges, error)
	CompetitionDate(ctx context.Context) (time.Time, error)
}

// RegisterAthleteInput carries input for the orchestrator.
type RegisterAthleteInput struct {
	UnitID    string
	Name      string
	BirthDate time.Time
	Gender    string
	WeightKg  float64
}

// RegisterAthleteDeps holds dependencies for RegisterAthlete.
type RegisterAthleteDeps struct {
	AthleteStore AthleteStoreForRegister
	Settings     SettingsProvider
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegisterAthlete creates an athlete and stamps the derived
// age group and master sub-category.
// PRE: Valid unit, name, birth date, gender and weight provided
// POST: Athlete persisted with AgeGroup and MasterCategory stamped
func ExecuteRegisterAthlete(ctx context.Context, input RegisterAthleteInput, deps RegisterAthleteDeps) (string, error) {
	a := athlete.Athlete{
		ID:        deps.GenerateID(),
		UnitID:    input.UnitID,
		Name:      strings.TrimSpace(input.Name),
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		WeightKg:  input.WeightKg,
		CreatedAt: deps.Now(),
	}
	if err := a.Validate(); err != nil {
		return "", err
	}

	if err := classify(ctx, &a, deps.Settings, deps.Now); err != nil {
		return "", err
	}

	if err := deps.AthleteStore.Save(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// UpdateAthleteInput carries input for the update orchestrator.
type UpdateAthleteInput struct {
	AthleteID string
	UnitID    string
	Name      string
	BirthDate time.Time
	Gender    string
	WeightKg  float64
}

// ErrAthleteNotOwned is returned when a unit edits another unit's athlete.
var ErrAthleteNotOwned = errors.New("athlete does not belong to this unit")

// ExecuteUpdateAthlete edits an athlete and restamps the derived
// classification from the current settings.
// PRE: Athlete exists and belongs to the calling unit
// POST: Updated athlete persisted with fresh classification
func ExecuteUpdateAthlete(ctx context.Context, input UpdateAthleteInput, deps RegisterAthleteDeps) error {
	a, err := deps.AthleteStore.GetByID(ctx, input.AthleteID)
	if err != nil {
		return err
	}
	if a.UnitID != input.UnitID {
		return ErrAthleteNotOwned
	}

	a.Name = strings.TrimSpace(input.Name)
	a.BirthDate = input.BirthDate
	a.Gender = input.Gender
	a.WeightKg = input.WeightKg
	if err := a.Validate(); err != nil {
		return err
	}

	if err := classify(ctx, &a, deps.Settings, deps.Now); err != nil {
		return err
	}

	return deps.AthleteStore.Save(ctx, a)
}

// classify stamps AgeGroup and MasterCategory using the configured
// competition date, falling back to today when none is set.
func classify(ctx context.Context, a *athlete.Athlete, settings SettingsProvider, now func() time.Time) error {
	ranges, err := settings.AgeRanges(ctx)
	if err != nil {
		return err
	}
	refDate, err := settings.CompetitionDate(ctx)
	if err != nil {
		return err
	}
	if refDate.IsZero() {
		refDate = now()
	}
	a.Classify(ranges, refDate)
	return nil
}
