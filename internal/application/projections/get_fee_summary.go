package projections

import (
	"context"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/event"
	"tatami/internal/domain/payment"
)

// GetFeeSummaryQuery carries query parameters.
type GetFeeSummaryQuery struct {
	UnitID string
}

// FeeLine is one charged entry of the unit's fee breakdown.
type FeeLine struct {
	EventName    string
	AthleteNames []string
	Amount       int
	Team         bool
	SoloTeam     bool
}

// GetFeeSummaryResult carries the query result.
type GetFeeSummaryResult struct {
	Lines         []FeeLine
	Total         int
	PaymentStatus string // status of the latest payment, empty when none
	PaidAmount    int    // snapshot amount of the latest payment
}

// GetFeeSummaryDeps holds dependencies for GetFeeSummary.
type GetFeeSummaryDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	EventTypeStore    EventTypeStore
	PaymentStore      PaymentStore
}

// QueryGetFeeSummary computes the live fee breakdown for a unit and
// pairs it with the latest payment snapshot.
// POST: Total equals the sum of line amounts
// INVARIANT: Fees come from live registrations, never the stored payment
func QueryGetFeeSummary(ctx context.Context, query GetFeeSummaryQuery, deps GetFeeSummaryDeps) (GetFeeSummaryResult, error) {
	regs, err := deps.RegistrationStore.ListByUnitID(ctx, query.UnitID)
	if err != nil {
		return GetFeeSummaryResult{}, err
	}
	athletes, err := deps.AthleteStore.List(ctx)
	if err != nil {
		return GetFeeSummaryResult{}, err
	}
	eventTypes, err := deps.EventTypeStore.List(ctx)
	if err != nil {
		return GetFeeSummaryResult{}, err
	}

	athleteByID := make(map[string]athlete.Athlete, len(athletes))
	for _, a := range athletes {
		athleteByID[a.ID] = a
	}
	eventByID := make(map[string]event.Type, len(eventTypes))
	for _, t := range eventTypes {
		eventByID[t.ID] = t
	}

	lines, err := payment.CalculateLines(regs, athleteByID, eventByID)
	if err != nil {
		return GetFeeSummaryResult{}, err
	}

	var result GetFeeSummaryResult
	for _, l := range lines {
		line := FeeLine{
			EventName: eventByID[l.EventTypeID].Name,
			Amount:    l.Amount,
			Team:      l.Team,
			SoloTeam:  l.SoloTeam,
		}
		for _, id := range l.AthleteIDs {
			if a, ok := athleteByID[id]; ok {
				line.AthleteNames = append(line.AthleteNames, a.Name)
			}
		}
		result.Lines = append(result.Lines, line)
		result.Total += l.Amount
	}

	payments, err := deps.PaymentStore.ListByUnitID(ctx, query.UnitID)
	if err != nil {
		return GetFeeSummaryResult{}, err
	}
	if len(payments) > 0 {
		result.PaymentStatus = payments[0].Status
		result.PaidAmount = payments[0].TotalAmount
	}

	return result, nil
}
