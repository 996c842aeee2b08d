package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
)

// RangesWriter persists the admin age-range settings and drops caches.
type RangesWriter interface {
	SaveAgeRanges(ctx context.Context, ranges category.AgeRanges) error
}

// UpdateAgeRangesInput carries the new master sub-category boundaries.
type UpdateAgeRangesInput struct {
	Ranges category.AgeRanges
}

// UpdateAgeRangesDeps holds dependencies for UpdateAgeRanges.
type UpdateAgeRangesDeps struct {
	Settings RangesWriter
}

// ExecuteUpdateAgeRanges validates and persists new master age ranges.
// Existing athletes keep their stamped classification until the admin
// runs the bulk recalculation.
// PRE: Ranges are ascending and start at or above the master boundary
// POST: Settings persisted; provider cache invalidated before return
func ExecuteUpdateAgeRanges(ctx context.Context, input UpdateAgeRangesInput, deps UpdateAgeRangesDeps) error {
	if err := input.Ranges.Validate(); err != nil {
		return err
	}
	if err := deps.Settings.SaveAgeRanges(ctx, input.Ranges); err != nil {
		return err
	}
	slog.Info("age_ranges_updated",
		"m1_min", input.Ranges.M1MinAge, "m1_max", input.Ranges.M1MaxAge,
		"m2_min", input.Ranges.M2MinAge, "m2_max", input.Ranges.M2MaxAge,
		"m3_min", input.Ranges.M3MinAge)
	return nil
}

// AthleteStoreForRecalc defines the store interface needed by RecalculateClassifications.
type AthleteStoreForRecalc interface {
	List(ctx context.Context) ([]athlete.Athlete, error)
	Save(ctx context.Context, a athlete.Athlete) error
}

// RecalculateClassificationsDeps holds dependencies for the bulk restamp.
type RecalculateClassificationsDeps struct {
	AthleteStore AthleteStoreForRecalc
	Settings     SettingsProvider
	Now          func() time.Time
}

// ExecuteRecalculateClassifications restamps every athlete's age group
// and master sub-category from the current settings.
// POST: Returns the number of athletes whose classification changed
func ExecuteRecalculateClassifications(ctx context.Context, deps RecalculateClassificationsDeps) (int, error) {
	ranges, err := deps.Settings.AgeRanges(ctx)
	if err != nil {
		return 0, err
	}
	refDate, err := deps.Settings.CompetitionDate(ctx)
	if err != nil {
		return 0, err
	}
	if refDate.IsZero() {
		refDate = deps.Now()
	}

	athletes, err := deps.AthleteStore.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, a := range athletes {
		prevGroup, prevMaster := a.AgeGroup, a.MasterCategory
		a.Classify(ranges, refDate)
		if a.AgeGroup == prevGroup && a.MasterCategory == prevMaster {
			continue
		}
		if err := deps.AthleteStore.Save(ctx, a); err != nil {
			return changed, err
		}
		changed++
	}

	slog.Info("classifications_recalculated", "athletes", len(athletes), "changed", changed)
	return changed, nil
}
