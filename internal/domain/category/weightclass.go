package category

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// WeightClassAll is the sentinel class for duo and creative events,
// where individual weight is irrelevant.
const WeightClassAll = "all"

// Domain errors
var (
	ErrUnknownAgeGroup = errors.New("no weight class table for age group")
	ErrUnknownGender   = errors.New("no weight class table for gender")
	ErrNegativeWeight  = errors.New("weight cannot be negative")
)

// Breakpoint tables: ascending inclusive upper bounds in kilograms,
// per age group and gender. Adult and master athletes share one
// table. These tables are the single source of truth for weight
// classes; the admin category catalog is seeded from them (see
// event.CatalogSeed) and must never carry divergent copies.
var weightBounds = map[string]map[string][]int{
	AgeGroupAdult: {
		GenderMale:   {56, 62, 69, 77, 85, 94},
		GenderFemale: {45, 49, 55, 62, 70},
	},
	AgeGroupYouth: {
		GenderMale:   {46, 50, 55, 60, 66, 73, 81},
		GenderFemale: {40, 44, 48, 52, 57, 63, 70},
	},
	AgeGroupJunior: {
		GenderMale:   {34, 37, 41, 45, 50, 55, 60, 66},
		GenderFemale: {32, 36, 40, 44, 48, 52, 57},
	},
	AgeGroupChild: {
		GenderMale:   {26, 28, 30, 32, 34, 36, 38},
		GenderFemale: {26, 28, 30, 32, 34, 36, 38},
	},
}

// WeightBounds returns the breakpoint bounds for an age group and
// gender. Master resolves to the adult table.
func WeightBounds(ageGroup, gender string) ([]int, error) {
	if ageGroup == AgeGroupMaster {
		ageGroup = AgeGroupAdult
	}
	byGender, ok := weightBounds[ageGroup]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgeGroup, ageGroup)
	}
	bounds, ok := byGender[gender]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGender, gender)
	}
	return bounds, nil
}

// ResolveWeightClass maps a weight to its class code. Team events
// always resolve to WeightClassAll. Individual events use the first
// breakpoint whose upper bound is >= weight (bounds are inclusive: a
// weight exactly on a bound belongs to the lower class); weights
// above every bound resolve to the open-ended "+<lastBound>" class,
// so the resolver is total over non-negative weights.
// PRE: weightKg >= 0; ageGroup and gender are stamped domain values
// POST: Returns a code like "-77", "+94" or "all"
func ResolveWeightClass(weightKg float64, requiresTeam bool, ageGroup, gender string) (string, error) {
	if requiresTeam {
		return WeightClassAll, nil
	}
	if weightKg < 0 {
		return "", ErrNegativeWeight
	}
	bounds, err := WeightBounds(ageGroup, gender)
	if err != nil {
		return "", err
	}
	for _, bound := range bounds {
		if weightKg <= float64(bound) {
			return fmt.Sprintf("-%d", bound), nil
		}
	}
	return fmt.Sprintf("+%d", bounds[len(bounds)-1]), nil
}

// weightClassSortValue extracts a numeric sort key from a class code.
// "all" sorts after every weight-bounded class; an open "+N" class
// sorts just above its "-N" counterpart.
func weightClassSortValue(code string) float64 {
	if code == WeightClassAll {
		return 1 << 20
	}
	if len(code) < 2 {
		return 1 << 19
	}
	n, err := strconv.Atoi(code[1:])
	if err != nil {
		return 1 << 19
	}
	v := float64(n)
	if strings.HasPrefix(code, "+") {
		v += 0.5
	}
	return v
}

// CompareCategoryKeys orders category keys for display: weight
// classes by numeric magnitude with "all" last; non-class keys (team
// gender divisions) fall back to lexical order among themselves and
// sort after weight classes.
func CompareCategoryKeys(a, b string) int {
	av, bv := weightClassSortValue(a), weightClassSortValue(b)
	if av != bv {
		if av < bv {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
