package category

import "time"

// Age group constants
const (
	AgeGroupChild  = "child"
	AgeGroupJunior = "junior"
	AgeGroupYouth  = "youth"
	AgeGroupAdult  = "adult"
	AgeGroupMaster = "master"
)

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Age group boundaries in whole years. These are fixed competition
// rules; only the master sub-category boundaries are admin-tunable
// (see AgeRanges).
const (
	juniorMinAge = 12
	youthMinAge  = 15
	adultMinAge  = 18
	masterMinAge = 35
)

// AgeGroups lists all valid age group values in classification order.
var AgeGroups = []string{AgeGroupChild, AgeGroupJunior, AgeGroupYouth, AgeGroupAdult, AgeGroupMaster}

// DisplayOrder is the fixed bucket order used by grouped category
// views: child, youth, junior, adult, master.
var DisplayOrder = []string{AgeGroupChild, AgeGroupYouth, AgeGroupJunior, AgeGroupAdult, AgeGroupMaster}

// IsValidAgeGroup reports whether g is a known age group value.
func IsValidAgeGroup(g string) bool {
	for _, v := range AgeGroups {
		if v == g {
			return true
		}
	}
	return false
}

// IsValidGender reports whether g is a known gender value.
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// AgeOn returns the whole-year age of someone born on birthDate as of
// referenceDate.
// PRE: birthDate is not after referenceDate
// POST: Returns age >= 0 in completed years
func AgeOn(birthDate, referenceDate time.Time) int {
	age := referenceDate.Year() - birthDate.Year()
	// Not yet had the birthday this year
	if referenceDate.Month() < birthDate.Month() ||
		(referenceDate.Month() == birthDate.Month() && referenceDate.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// ClassifyAgeGroup maps a birth date to an age group based on the
// athlete's whole-year age on the competition reference date.
// PRE: referenceDate is the fixed competition date, not "today"
// POST: Returns one of the AgeGroups constants
func ClassifyAgeGroup(birthDate, referenceDate time.Time) string {
	age := AgeOn(birthDate, referenceDate)
	switch {
	case age < juniorMinAge:
		return AgeGroupChild
	case age < youthMinAge:
		return AgeGroupJunior
	case age < adultMinAge:
		return AgeGroupYouth
	case age < masterMinAge:
		return AgeGroupAdult
	default:
		return AgeGroupMaster
	}
}

// DisplayIndex returns the position of an age group in the fixed
// display order, or len(DisplayOrder) for unknown values so they sort
// after the known buckets.
func DisplayIndex(ageGroup string) int {
	for i, g := range DisplayOrder {
		if g == ageGroup {
			return i
		}
	}
	return len(DisplayOrder)
}
