package systemconfig

import "context"

// Config keys stored in the system_config table.
const (
	KeyM1MinAge        = "m1_min_age"
	KeyM1MaxAge        = "m1_max_age"
	KeyM2MinAge        = "m2_min_age"
	KeyM2MaxAge        = "m2_max_age"
	KeyM3MinAge        = "m3_min_age"
	KeyCompetitionDate = "competition_date"
	KeyInfoMarkdown    = "info_markdown"
)

// Store persists key/value system configuration.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
