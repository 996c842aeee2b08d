package category_test

import (
	"errors"
	"testing"

	"tatami/internal/domain/category"
)

// TestAgeRanges_Validate covers the ordering invariant for
// admin-submitted ranges.
func TestAgeRanges_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ranges  category.AgeRanges
		wantErr error
	}{
		{
			name:   "defaults are valid",
			ranges: category.DefaultAgeRanges(),
		},
		{
			name:   "custom valid ranges",
			ranges: category.AgeRanges{M1MinAge: 35, M1MaxAge: 40, M2MinAge: 41, M2MaxAge: 49, M3MinAge: 50},
		},
		{
			name:    "m1 max meets m2 min",
			ranges:  category.AgeRanges{M1MinAge: 35, M1MaxAge: 40, M2MinAge: 40, M2MaxAge: 44, M3MinAge: 45},
			wantErr: category.ErrRangesNotAscending,
		},
		{
			name:    "m2 max above m3 min",
			ranges:  category.AgeRanges{M1MinAge: 35, M1MaxAge: 39, M2MinAge: 40, M2MaxAge: 46, M3MinAge: 45},
			wantErr: category.ErrRangesNotAscending,
		},
		{
			name:    "m1 below master boundary",
			ranges:  category.AgeRanges{M1MinAge: 30, M1MaxAge: 39, M2MinAge: 40, M2MaxAge: 44, M3MinAge: 45},
			wantErr: category.ErrRangeBelowMaster,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ranges.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestClassifyMasterCategory_Defaults checks the default boundaries,
// including the athlete who turns exactly 40 on competition day.
func TestClassifyMasterCategory_Defaults(t *testing.T) {
	ranges := category.DefaultAgeRanges()
	tests := []struct {
		age  int
		want string
	}{
		{34, category.MasterNone},
		{35, category.MasterM1},
		{39, category.MasterM1},
		{40, category.MasterM2},
		{44, category.MasterM2},
		{45, category.MasterM3},
		{60, category.MasterM3},
	}
	for _, tt := range tests {
		got := category.ClassifyMasterCategory(birthForAge(tt.age), ranges, competitionDate)
		if got != tt.want {
			t.Errorf("age %d: got %q, want %q", tt.age, got, tt.want)
		}
	}

	// Exactly 40 on competition day is also a master by age group.
	birth := birthForAge(40)
	if got := category.ClassifyAgeGroup(birth, competitionDate); got != category.AgeGroupMaster {
		t.Errorf("age 40 ClassifyAgeGroup = %q, want master", got)
	}
	if got := category.ClassifyMasterCategory(birth, ranges, competitionDate); got != category.MasterM2 {
		t.Errorf("age 40 ClassifyMasterCategory = %q, want M2", got)
	}
}

// TestClassifyMasterCategory_Gaps verifies that misconfigured gaps
// between ranges classify as none instead of widening a neighbour.
func TestClassifyMasterCategory_Gaps(t *testing.T) {
	// Gap between M1 (35-38) and M2 (41-44), and between M2 and M3 (48+).
	ranges := category.AgeRanges{M1MinAge: 35, M1MaxAge: 38, M2MinAge: 41, M2MaxAge: 44, M3MinAge: 48}
	tests := []struct {
		age  int
		want string
	}{
		{38, category.MasterM1},
		{39, category.MasterNone},
		{40, category.MasterNone},
		{41, category.MasterM2},
		{45, category.MasterNone},
		{47, category.MasterNone},
		{48, category.MasterM3},
	}
	for _, tt := range tests {
		got := category.ClassifyMasterCategory(birthForAge(tt.age), ranges, competitionDate)
		if got != tt.want {
			t.Errorf("age %d: got %q, want %q", tt.age, got, tt.want)
		}
	}
}

// TestClassifyMasterCategory_Monotonic checks that increasing age
// never decreases the category ordinal outside gap ages.
func TestClassifyMasterCategory_Monotonic(t *testing.T) {
	ranges := category.DefaultAgeRanges()
	prev := 0
	for age := 30; age <= 80; age++ {
		got := category.ClassifyMasterCategory(birthForAge(age), ranges, competitionDate)
		ord := category.MasterOrdinal(got)
		if ord < prev {
			t.Fatalf("ordinal decreased at age %d: %d -> %d", age, prev, ord)
		}
		prev = ord
	}
}
