package projections

import (
	"context"
	"sort"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
	"tatami/internal/domain/registration"
)

// GetCategoryOverviewQuery carries query parameters.
type GetCategoryOverviewQuery struct {
	EventTypeKey string // empty means all event types
}

// CategoryEntry is one start in a bracket: an individual athlete, a
// team pair, or a partnerless team entry.
type CategoryEntry struct {
	AthleteIDs   []string
	AthleteNames []string
	Solo         bool // team-event entry without a partner
}

// CategoryGroup is one bracket of the overview with its entries.
type CategoryGroup struct {
	AgeGroup       string
	MasterCategory string // m1/m2/m3 for master brackets, else empty
	Bucket         string // gender for individual events, division for teams
	WeightClass    string
	Entries        []CategoryEntry
}

// EventOverview groups the brackets of one event type.
type EventOverview struct {
	EventTypeID  string
	EventTypeKey string
	EventName    string
	RequiresTeam bool
	Categories   []CategoryGroup
}

// GetCategoryOverviewResult carries the query result.
type GetCategoryOverviewResult struct {
	Events []EventOverview
}

// GetCategoryOverviewDeps holds dependencies for GetCategoryOverview.
type GetCategoryOverviewDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	EventTypeStore    EventTypeStore
}

// QueryGetCategoryOverview builds the admin bracket overview: every
// registration grouped into its category, age groups in display order,
// weight classes in ascending bound order.
// POST: Entries within team brackets are deduplicated pairs
func QueryGetCategoryOverview(ctx context.Context, query GetCategoryOverviewQuery, deps GetCategoryOverviewDeps) (GetCategoryOverviewResult, error) {
	eventTypes, err := deps.EventTypeStore.List(ctx)
	if err != nil {
		return GetCategoryOverviewResult{}, err
	}
	regs, err := deps.RegistrationStore.List(ctx)
	if err != nil {
		return GetCategoryOverviewResult{}, err
	}
	athletes, err := deps.AthleteStore.List(ctx)
	if err != nil {
		return GetCategoryOverviewResult{}, err
	}

	athleteByID := make(map[string]athlete.Athlete, len(athletes))
	for _, a := range athletes {
		athleteByID[a.ID] = a
	}
	regsByEvent := make(map[string][]registration.Registration)
	for _, r := range regs {
		regsByEvent[r.EventTypeID] = append(regsByEvent[r.EventTypeID], r)
	}

	var result GetCategoryOverviewResult
	for _, et := range eventTypes {
		if query.EventTypeKey != "" && et.Key != query.EventTypeKey {
			continue
		}
		overview := EventOverview{
			EventTypeID:  et.ID,
			EventTypeKey: et.Key,
			EventName:    et.Name,
			RequiresTeam: et.RequiresTeam,
		}
		if et.RequiresTeam {
			overview.Categories = teamCategories(regsByEvent[et.ID], athleteByID)
		} else {
			overview.Categories = individualCategories(regsByEvent[et.ID], athleteByID)
		}
		result.Events = append(result.Events, overview)
	}
	return result, nil
}

// individualCategories buckets individual registrations by stamped age
// group, master sub-category, gender, and weight class.
func individualCategories(regs []registration.Registration, athletes map[string]athlete.Athlete) []CategoryGroup {
	groups := map[string]*CategoryGroup{}
	for _, r := range regs {
		a, ok := athletes[r.AthleteID]
		if !ok {
			continue
		}
		key := a.AgeGroup + "|" + a.MasterCategory + "|" + a.Gender + "|" + r.WeightClass
		g, exists := groups[key]
		if !exists {
			g = &CategoryGroup{
				AgeGroup:       a.AgeGroup,
				MasterCategory: a.MasterCategory,
				Bucket:         a.Gender,
				WeightClass:    r.WeightClass,
			}
			groups[key] = g
		}
		g.Entries = append(g.Entries, CategoryEntry{
			AthleteIDs:   []string{a.ID},
			AthleteNames: []string{a.Name},
		})
	}
	return sortGroups(groups)
}

// teamCategories buckets team registrations by gender division, with
// pairs deduplicated through the grouping engine.
func teamCategories(regs []registration.Registration, athletes map[string]athlete.Athlete) []CategoryGroup {
	groups := map[string]*CategoryGroup{}
	for _, entry := range registration.GroupTeams(regs) {
		bucket := entry.GenderDivision
		key := "|" + bucket + "|" + category.WeightClassAll
		g, exists := groups[key]
		if !exists {
			g = &CategoryGroup{
				AgeGroup:    category.AgeGroupAdult,
				Bucket:      bucket,
				WeightClass: category.WeightClassAll,
			}
			groups[key] = g
		}
		view := CategoryEntry{Solo: !entry.IsTeam()}
		for _, m := range entry.Members {
			view.AthleteIDs = append(view.AthleteIDs, m.AthleteID)
			if a, ok := athletes[m.AthleteID]; ok {
				view.AthleteNames = append(view.AthleteNames, a.Name)
			}
		}
		g.Entries = append(g.Entries, view)
	}
	return sortGroups(groups)
}

// sortGroups orders brackets by display age group, master ordinal,
// bucket, then weight class bound.
func sortGroups(groups map[string]*CategoryGroup) []CategoryGroup {
	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.Entries, func(i, j int) bool {
			if len(g.Entries[i].AthleteNames) == 0 || len(g.Entries[j].AthleteNames) == 0 {
				return len(g.Entries[i].AthleteNames) > len(g.Entries[j].AthleteNames)
			}
			return g.Entries[i].AthleteNames[0] < g.Entries[j].AthleteNames[0]
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ai, bi := category.DisplayIndex(a.AgeGroup), category.DisplayIndex(b.AgeGroup); ai != bi {
			return ai < bi
		}
		if ao, bo := category.MasterOrdinal(a.MasterCategory), category.MasterOrdinal(b.MasterCategory); ao != bo {
			return ao < bo
		}
		if a.Bucket != b.Bucket {
			return a.Bucket < b.Bucket
		}
		return category.CompareCategoryKeys(a.WeightClass, b.WeightClass) < 0
	})
	return out
}
