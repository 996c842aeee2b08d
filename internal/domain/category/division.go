package category

import "errors"

// Gender division constants for team events.
const (
	DivisionMen   = "men"
	DivisionWomen = "women"
	DivisionMixed = "mixed"
)

// ErrInvalidDivisionGender is returned when a division is derived
// from an unrecognised gender value.
var ErrInvalidDivisionGender = errors.New("gender division requires two valid genders")

// IsValidDivision reports whether d is a known gender division.
func IsValidDivision(d string) bool {
	return d == DivisionMen || d == DivisionWomen || d == DivisionMixed
}

// DeriveGenderDivision maps the genders of two team members to the
// team's division: both male is men, both female is women, anything
// else is mixed.
// PRE: genderA and genderB are valid gender values
// POST: Returns one of the Division constants
func DeriveGenderDivision(genderA, genderB string) (string, error) {
	if !IsValidGender(genderA) || !IsValidGender(genderB) {
		return "", ErrInvalidDivisionGender
	}
	switch {
	case genderA == GenderMale && genderB == GenderMale:
		return DivisionMen, nil
	case genderA == GenderFemale && genderB == GenderFemale:
		return DivisionWomen, nil
	default:
		return DivisionMixed, nil
	}
}
