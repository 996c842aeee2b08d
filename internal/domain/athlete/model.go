package athlete

import (
	"errors"
	"strings"
	"time"

	"tatami/internal/domain/category"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName     = errors.New("athlete name cannot be empty")
	ErrEmptyUnitID   = errors.New("athlete must belong to a registration unit")
	ErrInvalidGender = errors.New("gender must be 'male' or 'female'")
	ErrInvalidWeight = errors.New("weight must be a positive number of kilograms")
	ErrZeroBirthDate = errors.New("birth date must be set")
)

// Athlete holds state for a registered competitor.
//
// AgeGroup and MasterCategory are derived fields stamped from the
// birth date and the age-range settings current at the last write.
// They stay stale after an admin changes the settings until the
// admin-triggered bulk recalculation restamps every athlete.
type Athlete struct {
	ID             string
	UnitID         string
	Name           string
	BirthDate      time.Time
	Gender         string
	WeightKg       float64
	AgeGroup       string
	MasterCategory string
	CreatedAt      time.Time
}

// Validate checks if the Athlete has valid data.
// PRE: Athlete struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Athlete) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > MaxNameLength {
		return errors.New("athlete name cannot exceed 100 characters")
	}
	if a.UnitID == "" {
		return ErrEmptyUnitID
	}
	if !category.IsValidGender(a.Gender) {
		return ErrInvalidGender
	}
	if a.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if a.BirthDate.IsZero() {
		return ErrZeroBirthDate
	}
	return nil
}

// Classify stamps the derived age group and master sub-category from
// the birth date against the given settings.
// PRE: BirthDate is set; referenceDate is the competition date
// POST: AgeGroup and MasterCategory reflect the given settings
func (a *Athlete) Classify(ranges category.AgeRanges, referenceDate time.Time) {
	a.AgeGroup = category.ClassifyAgeGroup(a.BirthDate, referenceDate)
	if a.AgeGroup == category.AgeGroupMaster {
		a.MasterCategory = category.ClassifyMasterCategory(a.BirthDate, ranges, referenceDate)
	} else {
		a.MasterCategory = category.MasterNone
	}
}
