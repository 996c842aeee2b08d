package payment

import (
	"errors"
	"fmt"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
	"tatami/internal/domain/event"
	"tatami/internal/domain/registration"
)

// Fee rates in whole currency units.
const (
	FeeTeam       = 1200 // per complete two-member team
	FeeSoloTeam   = 600  // half rate for a team registration without a resolvable partner
	FeeYoungBase  = 800  // child, junior, youth individual entry
	FeeSeniorBase = 1200 // adult, master individual entry
)

// Domain errors
var (
	ErrUnknownEventType = errors.New("registration references an unknown event type")
	ErrUnknownAthlete   = errors.New("registration references an unknown athlete")
	ErrUnknownFeeGroup  = errors.New("no fee defined for age group")
)

// IndividualFee returns the entry fee for an individual event by
// athlete age group.
func IndividualFee(ageGroup string) (int, error) {
	switch ageGroup {
	case category.AgeGroupChild, category.AgeGroupJunior, category.AgeGroupYouth:
		return FeeYoungBase, nil
	case category.AgeGroupAdult, category.AgeGroupMaster:
		return FeeSeniorBase, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeeGroup, ageGroup)
	}
}

// LineItem is one charged position in a fee breakdown.
type LineItem struct {
	EventTypeID string
	AthleteIDs  []string
	Amount      int
	Team        bool // complete two-member team
	SoloTeam    bool // team-event entry still waiting for a partner
}

// CalculateLines computes the per-entry fee breakdown for a set of
// registrations. Team events are charged once per canonical team
// identity via the grouping engine; a team-event row without a
// resolvable partner is charged the half rate instead of being
// rejected. Individual events are charged per row by the athlete's
// stamped age group. Unknown event types or athletes fail fast.
// PRE: athletes and events index every referenced ID
// POST: Sum of returned amounts is invariant under input reordering
func CalculateLines(
	regs []registration.Registration,
	athletes map[string]athlete.Athlete,
	events map[string]event.Type,
) ([]LineItem, error) {
	var teamRows, individualRows []registration.Registration
	for _, r := range regs {
		et, ok := events[r.EventTypeID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, r.EventTypeID)
		}
		if et.RequiresTeam {
			teamRows = append(teamRows, r)
		} else {
			individualRows = append(individualRows, r)
		}
	}

	var lines []LineItem

	for _, entry := range registration.GroupTeams(teamRows) {
		item := LineItem{EventTypeID: entry.EventTypeID}
		for _, m := range entry.Members {
			item.AthleteIDs = append(item.AthleteIDs, m.AthleteID)
		}
		if entry.IsTeam() {
			item.Team = true
			item.Amount = FeeTeam
		} else {
			item.SoloTeam = true
			item.Amount = FeeSoloTeam
		}
		lines = append(lines, item)
	}

	for _, r := range individualRows {
		a, ok := athletes[r.AthleteID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAthlete, r.AthleteID)
		}
		fee, err := IndividualFee(a.AgeGroup)
		if err != nil {
			return nil, err
		}
		lines = append(lines, LineItem{
			EventTypeID: r.EventTypeID,
			AthleteIDs:  []string{r.AthleteID},
			Amount:      fee,
		})
	}
	return lines, nil
}

// CalculateTotal computes the total fee for a set of registrations.
// The result is recomputed from live rows on every call; stored
// payment amounts are snapshots only.
func CalculateTotal(
	regs []registration.Registration,
	athletes map[string]athlete.Athlete,
	events map[string]event.Type,
) (int, error) {
	lines, err := CalculateLines(regs, athletes, events)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range lines {
		total += l.Amount
	}
	return total, nil
}
