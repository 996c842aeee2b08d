package projections

import (
	"context"
	"sort"
	"strings"

	"tatami/internal/application/listutil"
	"tatami/internal/domain/registration"
)

// GetUnitAthletesQuery carries query parameters.
type GetUnitAthletesQuery struct {
	UnitID string
	Params listutil.Params
}

// AthleteRow is one athlete of the unit with registration context.
type AthleteRow struct {
	ID             string
	Name           string
	Gender         string
	WeightKg       float64
	AgeGroup       string
	MasterCategory string
	Events         []EventEntry
}

// EventEntry is one registration of an athlete.
type EventEntry struct {
	RegistrationID string
	EventTypeID    string
	WeightClass    string
	TeamPartnerID  string
	GenderDivision string
}

// GetUnitAthletesResult carries the query result.
type GetUnitAthletesResult struct {
	Athletes []AthleteRow
	PageInfo listutil.PageInfo
}

// GetUnitAthletesDeps holds dependencies for GetUnitAthletes.
type GetUnitAthletesDeps struct {
	AthleteStore      AthleteStore
	RegistrationStore RegistrationStore
}

// unitAthleteSortCols are the columns the athlete list may sort by.
var unitAthleteSortCols = []string{"name", "weight", "age_group"}

// UnitAthleteSortCols returns the allowed sort columns for parsing.
func UnitAthleteSortCols() []string {
	return unitAthleteSortCols
}

// QueryGetUnitAthletes lists a unit's athletes with their enrollments,
// searchable and paginated.
// POST: Rows are filtered by search, sorted, then paginated
func QueryGetUnitAthletes(ctx context.Context, query GetUnitAthletesQuery, deps GetUnitAthletesDeps) (GetUnitAthletesResult, error) {
	athletes, err := deps.AthleteStore.ListByUnitID(ctx, query.UnitID)
	if err != nil {
		return GetUnitAthletesResult{}, err
	}
	regs, err := deps.RegistrationStore.ListByUnitID(ctx, query.UnitID)
	if err != nil {
		return GetUnitAthletesResult{}, err
	}

	regsByAthlete := make(map[string][]registration.Registration)
	for _, r := range regs {
		regsByAthlete[r.AthleteID] = append(regsByAthlete[r.AthleteID], r)
	}

	var rows []AthleteRow
	search := strings.ToLower(strings.TrimSpace(query.Params.Search))
	for _, a := range athletes {
		if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
			continue
		}
		row := AthleteRow{
			ID:             a.ID,
			Name:           a.Name,
			Gender:         a.Gender,
			WeightKg:       a.WeightKg,
			AgeGroup:       a.AgeGroup,
			MasterCategory: a.MasterCategory,
		}
		for _, r := range regsByAthlete[a.ID] {
			row.Events = append(row.Events, EventEntry{
				RegistrationID: r.ID,
				EventTypeID:    r.EventTypeID,
				WeightClass:    r.WeightClass,
				TeamPartnerID:  r.TeamPartnerID,
				GenderDivision: r.GenderDivision,
			})
		}
		rows = append(rows, row)
	}

	sortAthleteRows(rows, query.Params)

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, len(rows))
	start, end := info.Slice(len(rows))

	return GetUnitAthletesResult{Athletes: rows[start:end], PageInfo: info}, nil
}

func sortAthleteRows(rows []AthleteRow, params listutil.Params) {
	less := func(i, j int) bool { return rows[i].Name < rows[j].Name }
	switch params.Sort {
	case "weight":
		less = func(i, j int) bool { return rows[i].WeightKg < rows[j].WeightKg }
	case "age_group":
		less = func(i, j int) bool { return rows[i].AgeGroup < rows[j].AgeGroup }
	}
	if params.Desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(rows, less)
}
