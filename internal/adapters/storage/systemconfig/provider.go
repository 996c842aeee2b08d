package systemconfig

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"time"

	"tatami/internal/domain/category"
)

// cacheTTL bounds how stale the settings cache may get. Admin writes
// call Invalidate so the usual staleness is zero; the TTL covers
// out-of-band edits to the database.
const cacheTTL = 5 * time.Minute

const dateLayout = "2006-01-02"

// Settings is the decoded system configuration.
type Settings struct {
	AgeRanges       category.AgeRanges
	CompetitionDate time.Time
	InfoMarkdown    string
}

// Provider serves decoded settings backed by the config store, cached
// with a TTL. Safe for concurrent use.
type Provider struct {
	store Store
	now   func() time.Time

	mu        sync.Mutex
	cached    Settings
	fetchedAt time.Time
}

// NewProvider creates a settings provider over a config store.
func NewProvider(store Store) *Provider {
	return &Provider{store: store, now: time.Now}
}

// Get returns the current settings, refreshing from the store when the
// cache has expired. Missing keys fall back to defaults.
// POST: Returns decoded settings; AgeRanges is always valid or default
func (p *Provider) Get(ctx context.Context) (Settings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.fetchedAt.IsZero() && p.now().Sub(p.fetchedAt) < cacheTTL {
		return p.cached, nil
	}

	values, err := p.store.GetAll(ctx)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{AgeRanges: category.DefaultAgeRanges()}
	settings.AgeRanges.M1MinAge = intValue(values, KeyM1MinAge, settings.AgeRanges.M1MinAge)
	settings.AgeRanges.M1MaxAge = intValue(values, KeyM1MaxAge, settings.AgeRanges.M1MaxAge)
	settings.AgeRanges.M2MinAge = intValue(values, KeyM2MinAge, settings.AgeRanges.M2MinAge)
	settings.AgeRanges.M2MaxAge = intValue(values, KeyM2MaxAge, settings.AgeRanges.M2MaxAge)
	settings.AgeRanges.M3MinAge = intValue(values, KeyM3MinAge, settings.AgeRanges.M3MinAge)
	if raw, ok := values[KeyCompetitionDate]; ok {
		settings.CompetitionDate, _ = time.Parse(dateLayout, raw)
	}
	settings.InfoMarkdown = values[KeyInfoMarkdown]

	p.cached = settings
	p.fetchedAt = p.now()
	return settings, nil
}

// AgeRanges returns the current master age-range settings.
func (p *Provider) AgeRanges(ctx context.Context) (category.AgeRanges, error) {
	settings, err := p.Get(ctx)
	if err != nil {
		return category.AgeRanges{}, err
	}
	return settings.AgeRanges, nil
}

// CompetitionDate returns the configured competition date, zero when
// the admin has not set one.
func (p *Provider) CompetitionDate(ctx context.Context) (time.Time, error) {
	settings, err := p.Get(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return settings.CompetitionDate, nil
}

// Invalidate drops the cache so the next Get rereads the store.
// POST: Subsequent Get hits the store
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.fetchedAt = time.Time{}
	p.mu.Unlock()
}

// SaveAgeRanges validates and persists new master age ranges, then
// invalidates the cache.
// PRE: ranges pass domain validation
// POST: All five keys are stored; cache is dropped
func (p *Provider) SaveAgeRanges(ctx context.Context, ranges category.AgeRanges) error {
	if err := ranges.Validate(); err != nil {
		return err
	}
	pairs := map[string]int{
		KeyM1MinAge: ranges.M1MinAge,
		KeyM1MaxAge: ranges.M1MaxAge,
		KeyM2MinAge: ranges.M2MinAge,
		KeyM2MaxAge: ranges.M2MaxAge,
		KeyM3MinAge: ranges.M3MinAge,
	}
	for key, v := range pairs {
		if err := p.store.Set(ctx, key, strconv.Itoa(v)); err != nil {
			return err
		}
	}
	p.Invalidate()
	return nil
}

// intValue decodes an integer config value, ignoring malformed entries.
func intValue(values map[string]string, key string, fallback int) int {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// IsNotFound reports whether an error means the key had no value.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
