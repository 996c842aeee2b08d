package event

import (
	"errors"
	"fmt"
	"strings"

	"tatami/internal/domain/category"
)

// Event type keys. The set is closed and admin-managed; unknown keys
// passed into weight or fee resolution are caller contract violations.
const (
	KeyFighting       = "fighting"
	KeyNewaza         = "newaza"
	KeyDuoTraditional = "duo_traditional"
	KeyDuoCreative    = "duo_creative"
)

// Domain errors
var (
	ErrEmptyKey        = errors.New("event type key cannot be empty")
	ErrEmptyName       = errors.New("event type name cannot be empty")
	ErrUnknownType     = errors.New("unknown event type")
	ErrEmptyEventType  = errors.New("category must reference an event type")
	ErrInvalidAgeGroup = errors.New("category age group is invalid")
	ErrInvalidBucket   = errors.New("category must carry a gender or a gender division")
	ErrEmptyClass      = errors.New("category weight class cannot be empty")
	ErrWeightWindow    = errors.New("category min weight must be below max weight")
)

// Type describes a competition event discipline. RequiresTeam marks
// duo/creative events entered by pairs rather than individuals.
type Type struct {
	ID           string
	Key          string
	Name         string
	RequiresTeam bool
}

// Validate checks if the Type has valid data.
func (t *Type) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return ErrEmptyKey
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Category is one row of the admin category catalog: a bookable
// bracket for an event type. For individual events Bucket holds the
// gender; for team events it holds the gender division. The
// (EventTypeID, AgeGroup, Bucket, WeightClass) tuple is unique.
type Category struct {
	ID          string
	EventTypeID string
	AgeGroup    string
	Bucket      string
	WeightClass string
	MinWeightKg float64 // 0 means unbounded below
	MaxWeightKg float64 // 0 means unbounded above
	Description string
}

// Validate checks if the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if c.EventTypeID == "" {
		return ErrEmptyEventType
	}
	if !category.IsValidAgeGroup(c.AgeGroup) {
		return ErrInvalidAgeGroup
	}
	if !category.IsValidGender(c.Bucket) && !category.IsValidDivision(c.Bucket) {
		return ErrInvalidBucket
	}
	if c.WeightClass == "" {
		return ErrEmptyClass
	}
	if c.MinWeightKg > 0 && c.MaxWeightKg > 0 && c.MinWeightKg >= c.MaxWeightKg {
		return ErrWeightWindow
	}
	return nil
}

// SeedTypes returns the default event type set, keyed but without IDs
// so the seeding orchestrator can assign them.
func SeedTypes() []Type {
	return []Type{
		{Key: KeyFighting, Name: "Fighting"},
		{Key: KeyNewaza, Name: "Ne-Waza"},
		{Key: KeyDuoTraditional, Name: "Duo Traditional", RequiresTeam: true},
		{Key: KeyDuoCreative, Name: "Duo Creative", RequiresTeam: true},
	}
}

// CatalogSeed generates the catalog rows for an event type from the
// canonical breakpoint tables, keeping the catalog in lock-step with
// category.ResolveWeightClass instead of carrying a second copy of
// the bounds. IDs are left empty for the caller to assign.
func CatalogSeed(t Type) []Category {
	if t.RequiresTeam {
		var rows []Category
		for _, div := range []string{category.DivisionMen, category.DivisionWomen, category.DivisionMixed} {
			rows = append(rows, Category{
				EventTypeID: t.ID,
				AgeGroup:    category.AgeGroupAdult,
				Bucket:      div,
				WeightClass: category.WeightClassAll,
				Description: fmt.Sprintf("%s (%s)", t.Name, div),
			})
		}
		return rows
	}

	var rows []Category
	for _, ageGroup := range category.AgeGroups {
		for _, gender := range []string{category.GenderMale, category.GenderFemale} {
			bounds, err := category.WeightBounds(ageGroup, gender)
			if err != nil {
				continue
			}
			prev := 0
			for _, bound := range bounds {
				rows = append(rows, Category{
					EventTypeID: t.ID,
					AgeGroup:    ageGroup,
					Bucket:      gender,
					WeightClass: fmt.Sprintf("-%d", bound),
					MinWeightKg: float64(prev),
					MaxWeightKg: float64(bound),
					Description: fmt.Sprintf("%s %s %s -%d kg", t.Name, ageGroup, gender, bound),
				})
				prev = bound
			}
			last := bounds[len(bounds)-1]
			rows = append(rows, Category{
				EventTypeID: t.ID,
				AgeGroup:    ageGroup,
				Bucket:      gender,
				WeightClass: fmt.Sprintf("+%d", last),
				MinWeightKg: float64(last),
				Description: fmt.Sprintf("%s %s %s +%d kg", t.Name, ageGroup, gender, last),
			})
		}
	}
	return rows
}
