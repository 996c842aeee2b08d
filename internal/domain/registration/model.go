package registration

import (
	"errors"
	"strings"
	"time"

	"tatami/internal/domain/category"
)

// Domain errors
var (
	ErrEmptyAthleteID   = errors.New("registration must reference an athlete")
	ErrEmptyUnitID      = errors.New("registration must reference a registration unit")
	ErrEmptyEventTypeID = errors.New("registration must reference an event type")
	ErrEmptyWeightClass = errors.New("registration weight class must be stamped")
	ErrSelfPartner      = errors.New("athlete cannot partner with themselves")
	ErrInvalidDivision  = errors.New("gender division must be men, women or mixed")
)

// Registration links an athlete to an event type. WeightClass is
// stamped at creation time by the resolver ("all" for team events).
// TeamPartnerID is mutual: when A links to B, a mirrored row exists
// for B linking back to A, and both rows carry the same gender
// division.
type Registration struct {
	ID             string
	UnitID         string
	AthleteID      string
	EventTypeID    string
	WeightClass    string
	TeamPartnerID  string
	GenderDivision string
	CreatedAt      time.Time
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is populated and stamped
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if r.AthleteID == "" {
		return ErrEmptyAthleteID
	}
	if r.UnitID == "" {
		return ErrEmptyUnitID
	}
	if r.EventTypeID == "" {
		return ErrEmptyEventTypeID
	}
	if r.WeightClass == "" {
		return ErrEmptyWeightClass
	}
	if r.TeamPartnerID != "" && r.TeamPartnerID == r.AthleteID {
		return ErrSelfPartner
	}
	if r.GenderDivision != "" && !category.IsValidDivision(r.GenderDivision) {
		return ErrInvalidDivision
	}
	return nil
}

// HasPartner reports whether the registration names a team partner.
func (r *Registration) HasPartner() bool {
	return r.TeamPartnerID != ""
}

// TeamKey returns the canonical team identity: the unordered athlete
// pair, the event type and the gender division. Sorting the pair
// collapses (A,B) and (B,A) into one identity so mirrored rows
// deduplicate.
func TeamKey(athleteA, athleteB, eventTypeID, genderDivision string) string {
	if athleteB < athleteA {
		athleteA, athleteB = athleteB, athleteA
	}
	return strings.Join([]string{athleteA, athleteB, eventTypeID, genderDivision}, "|")
}

// Identity returns the registration's team identity, or its own ID
// for rows without a partner.
func (r *Registration) Identity() string {
	if !r.HasPartner() {
		return r.ID
	}
	return TeamKey(r.AthleteID, r.TeamPartnerID, r.EventTypeID, r.GenderDivision)
}
