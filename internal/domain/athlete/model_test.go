package athlete_test

import (
	"errors"
	"testing"
	"time"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
)

var competitionDate = time.Date(2025, time.October, 18, 0, 0, 0, 0, time.UTC)

func validAthlete() athlete.Athlete {
	return athlete.Athlete{
		ID:        "a1",
		UnitID:    "u1",
		Name:      "Ivan Petrov",
		BirthDate: time.Date(1998, time.March, 2, 0, 0, 0, 0, time.UTC),
		Gender:    category.GenderMale,
		WeightKg:  76.4,
	}
}

// TestAthlete_Validate tests validation of Athlete fields.
func TestAthlete_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*athlete.Athlete)
		wantErr error
	}{
		{"valid", func(a *athlete.Athlete) {}, nil},
		{"empty name", func(a *athlete.Athlete) { a.Name = "  " }, athlete.ErrEmptyName},
		{"no unit", func(a *athlete.Athlete) { a.UnitID = "" }, athlete.ErrEmptyUnitID},
		{"bad gender", func(a *athlete.Athlete) { a.Gender = "m" }, athlete.ErrInvalidGender},
		{"zero weight", func(a *athlete.Athlete) { a.WeightKg = 0 }, athlete.ErrInvalidWeight},
		{"negative weight", func(a *athlete.Athlete) { a.WeightKg = -5 }, athlete.ErrInvalidWeight},
		{"zero birth date", func(a *athlete.Athlete) { a.BirthDate = time.Time{} }, athlete.ErrZeroBirthDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAthlete()
			tt.mutate(&a)
			err := a.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestAthlete_Classify verifies derived fields are stamped together
// and MasterCategory is cleared for non-masters.
func TestAthlete_Classify(t *testing.T) {
	ranges := category.DefaultAgeRanges()

	a := validAthlete()
	a.BirthDate = competitionDate.AddDate(-42, 0, 0)
	a.Classify(ranges, competitionDate)
	if a.AgeGroup != category.AgeGroupMaster || a.MasterCategory != category.MasterM2 {
		t.Errorf("42yo: got (%q, %q), want (master, M2)", a.AgeGroup, a.MasterCategory)
	}

	// Reclassifying a younger athlete clears the master category.
	a.BirthDate = competitionDate.AddDate(-20, 0, 0)
	a.Classify(ranges, competitionDate)
	if a.AgeGroup != category.AgeGroupAdult || a.MasterCategory != category.MasterNone {
		t.Errorf("20yo: got (%q, %q), want (adult, none)", a.AgeGroup, a.MasterCategory)
	}
}
