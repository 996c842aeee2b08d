package category

import (
	"errors"
	"time"
)

// Master sub-category constants. MasterNone marks athletes that fall
// outside every configured range, including misconfigured gaps.
const (
	MasterNone = ""
	MasterM1   = "M1"
	MasterM2   = "M2"
	MasterM3   = "M3"
)

// Default master sub-category boundaries, used until an admin
// overrides them.
const (
	DefaultM1MinAge = 35
	DefaultM1MaxAge = 39
	DefaultM2MinAge = 40
	DefaultM2MaxAge = 44
	DefaultM3MinAge = 45
)

// Domain errors
var (
	ErrRangesNotAscending = errors.New("age ranges must satisfy m1Min < m1Max < m2Min < m2Max < m3Min")
	ErrRangeBelowMaster   = errors.New("m1 minimum age cannot be below the master age group boundary")
)

// AgeRanges holds the admin-tunable master sub-category boundaries.
// M1 covers [M1MinAge, M1MaxAge], M2 covers [M2MinAge, M2MaxAge] and
// M3 is open-ended from M3MinAge.
type AgeRanges struct {
	M1MinAge int
	M1MaxAge int
	M2MinAge int
	M2MaxAge int
	M3MinAge int
}

// DefaultAgeRanges returns the boundaries used before any admin
// override.
func DefaultAgeRanges() AgeRanges {
	return AgeRanges{
		M1MinAge: DefaultM1MinAge,
		M1MaxAge: DefaultM1MaxAge,
		M2MinAge: DefaultM2MinAge,
		M2MaxAge: DefaultM2MaxAge,
		M3MinAge: DefaultM3MinAge,
	}
}

// Validate checks the ordering invariant for admin-submitted ranges.
// PRE: AgeRanges struct is populated
// POST: Returns nil only if m1Min < m1Max < m2Min < m2Max < m3Min
func (r AgeRanges) Validate() error {
	if r.M1MinAge < masterMinAge {
		return ErrRangeBelowMaster
	}
	if !(r.M1MinAge < r.M1MaxAge && r.M1MaxAge < r.M2MinAge && r.M2MinAge < r.M2MaxAge && r.M2MaxAge < r.M3MinAge) {
		return ErrRangesNotAscending
	}
	return nil
}

// ClassifyMasterCategory maps a birth date to a master sub-category
// using the given ranges. Ages that fall between configured ranges
// (possible when pre-existing rows predate range validation) return
// MasterNone rather than being widened into a neighbour.
// PRE: referenceDate is the fixed competition date
// POST: Returns MasterNone, MasterM1, MasterM2 or MasterM3
func ClassifyMasterCategory(birthDate time.Time, ranges AgeRanges, referenceDate time.Time) string {
	age := AgeOn(birthDate, referenceDate)
	switch {
	case age < ranges.M1MinAge:
		return MasterNone
	case age <= ranges.M1MaxAge:
		return MasterM1
	case age < ranges.M2MinAge:
		return MasterNone
	case age <= ranges.M2MaxAge:
		return MasterM2
	case age < ranges.M3MinAge:
		return MasterNone
	default:
		return MasterM3
	}
}

// MasterOrdinal returns the ordinal position of a master category for
// monotonicity checks: none < M1 < M2 < M3.
func MasterOrdinal(mc string) int {
	switch mc {
	case MasterM1:
		return 1
	case MasterM2:
		return 2
	case MasterM3:
		return 3
	default:
		return 0
	}
}
