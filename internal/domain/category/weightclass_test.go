package category_test

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"tatami/internal/domain/category"
)

// TestResolveWeightClass_TeamEvents verifies team events ignore weight.
func TestResolveWeightClass_TeamEvents(t *testing.T) {
	got, err := category.ResolveWeightClass(63.2, true, category.AgeGroupAdult, category.GenderFemale)
	if err != nil {
		t.Fatalf("ResolveWeightClass() error = %v", err)
	}
	if got != category.WeightClassAll {
		t.Errorf("team event class = %q, want %q", got, category.WeightClassAll)
	}
}

// TestResolveWeightClass_AdultMale covers the adult male fighting
// table, including the inclusive upper bound at 77kg.
func TestResolveWeightClass_AdultMale(t *testing.T) {
	tests := []struct {
		weight float64
		want   string
	}{
		{50.0, "-56"},
		{56.0, "-56"},
		{56.01, "-62"},
		{77.0, "-77"},
		{77.01, "-85"},
		{94.0, "-94"},
		{94.5, "+94"},
		{130.0, "+94"},
	}
	for _, tt := range tests {
		got, err := category.ResolveWeightClass(tt.weight, false, category.AgeGroupAdult, category.GenderMale)
		if err != nil {
			t.Fatalf("weight %.2f: error = %v", tt.weight, err)
		}
		if got != tt.want {
			t.Errorf("weight %.2f: got %q, want %q", tt.weight, got, tt.want)
		}
	}
}

// TestResolveWeightClass_MasterSharesAdultTable verifies master
// athletes resolve against the adult breakpoints.
func TestResolveWeightClass_MasterSharesAdultTable(t *testing.T) {
	adult, err := category.ResolveWeightClass(68.0, false, category.AgeGroupAdult, category.GenderMale)
	if err != nil {
		t.Fatalf("adult: %v", err)
	}
	master, err := category.ResolveWeightClass(68.0, false, category.AgeGroupMaster, category.GenderMale)
	if err != nil {
		t.Fatalf("master: %v", err)
	}
	if adult != master {
		t.Errorf("master class %q differs from adult class %q", master, adult)
	}
}

// TestResolveWeightClass_RoundTrip walks every breakpoint of every
// table: a weight exactly on a bound resolves to that class, a weight
// just above it resolves to the next class or the open "+" class.
func TestResolveWeightClass_RoundTrip(t *testing.T) {
	groups := []string{category.AgeGroupChild, category.AgeGroupJunior, category.AgeGroupYouth, category.AgeGroupAdult}
	genders := []string{category.GenderMale, category.GenderFemale}
	for _, g := range groups {
		for _, sex := range genders {
			bounds, err := category.WeightBounds(g, sex)
			if err != nil {
				t.Fatalf("WeightBounds(%s, %s): %v", g, sex, err)
			}
			for i, bound := range bounds {
				onBound, err := category.ResolveWeightClass(float64(bound), false, g, sex)
				if err != nil {
					t.Fatalf("%s/%s bound %d: %v", g, sex, bound, err)
				}
				if want := fmt.Sprintf("-%d", bound); onBound != want {
					t.Errorf("%s/%s weight %d: got %q, want %q", g, sex, bound, onBound, want)
				}
				above, err := category.ResolveWeightClass(float64(bound)+0.01, false, g, sex)
				if err != nil {
					t.Fatalf("%s/%s above %d: %v", g, sex, bound, err)
				}
				var want string
				if i+1 < len(bounds) {
					want = fmt.Sprintf("-%d", bounds[i+1])
				} else {
					want = fmt.Sprintf("+%d", bound)
				}
				if above != want {
					t.Errorf("%s/%s weight %d+0.01: got %q, want %q", g, sex, bound, above, want)
				}
			}
		}
	}
}

// TestResolveWeightClass_UnknownInputs verifies contract violations
// are rejected rather than silently bucketed.
func TestResolveWeightClass_UnknownInputs(t *testing.T) {
	if _, err := category.ResolveWeightClass(70, false, "veteran", category.GenderMale); !errors.Is(err, category.ErrUnknownAgeGroup) {
		t.Errorf("unknown age group error = %v", err)
	}
	if _, err := category.ResolveWeightClass(70, false, category.AgeGroupAdult, "x"); !errors.Is(err, category.ErrUnknownGender) {
		t.Errorf("unknown gender error = %v", err)
	}
	if _, err := category.ResolveWeightClass(-1, false, category.AgeGroupAdult, category.GenderMale); !errors.Is(err, category.ErrNegativeWeight) {
		t.Errorf("negative weight error = %v", err)
	}
}

// TestCompareCategoryKeys verifies numeric weight-class ordering with
// "all" sorting last.
func TestCompareCategoryKeys(t *testing.T) {
	keys := []string{"all", "+94", "-56", "-94", "-62", "mixed", "-45"}
	sort.Slice(keys, func(i, j int) bool {
		return category.CompareCategoryKeys(keys[i], keys[j]) < 0
	})
	want := []string{"-45", "-56", "-62", "-94", "+94", "mixed", "all"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", keys, want)
		}
	}
}
