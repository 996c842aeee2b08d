package event

import (
	"context"
	"database/sql"
	"fmt"

	"tatami/internal/adapters/storage"
	domain "tatami/internal/domain/event"
)

// TypeSQLiteStore implements TypeStore using SQLite.
type TypeSQLiteStore struct {
	db storage.SQLDB
}

// NewTypeSQLiteStore creates a new event type store.
func NewTypeSQLiteStore(db storage.SQLDB) *TypeSQLiteStore {
	return &TypeSQLiteStore{db: db}
}

// GetByID retrieves an event Type by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *TypeSQLiteStore) GetByID(ctx context.Context, id string) (domain.Type, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, key, name, requires_team FROM event_type WHERE id = ?", id)
	entity, err := scanType(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Type{}, fmt.Errorf("event type not found: %w", err)
	}
	return entity, err
}

// GetByKey retrieves an event Type by its stable key.
// PRE: key is non-empty
// POST: Returns the entity or an error if not found
func (s *TypeSQLiteStore) GetByKey(ctx context.Context, key string) (domain.Type, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, key, name, requires_team FROM event_type WHERE key = ?", key)
	entity, err := scanType(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Type{}, fmt.Errorf("event type not found: %w", err)
	}
	return entity, err
}

// Save persists an event Type to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *TypeSQLiteStore) Save(ctx context.Context, entity domain.Type) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_type (id, key, name, requires_team)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   key=excluded.key, name=excluded.name, requires_team=excluded.requires_team`,
		entity.ID, entity.Key, entity.Name, boolInt(entity.RequiresTeam))
	return err
}

// List retrieves all event Types ordered by key.
func (s *TypeSQLiteStore) List(ctx context.Context) ([]domain.Type, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, key, name, requires_team FROM event_type ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Type
	for rows.Next() {
		entity, err := scanType(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanType(scan func(...interface{}) error) (domain.Type, error) {
	var entity domain.Type
	var requiresTeam int
	err := scan(&entity.ID, &entity.Key, &entity.Name, &requiresTeam)
	if err != nil {
		return domain.Type{}, err
	}
	entity.RequiresTeam = requiresTeam != 0
	return entity, nil
}

// CategorySQLiteStore implements CategoryStore using SQLite.
type CategorySQLiteStore struct {
	db storage.SQLDB
}

// NewCategorySQLiteStore creates a new category catalog store.
func NewCategorySQLiteStore(db storage.SQLDB) *CategorySQLiteStore {
	return &CategorySQLiteStore{db: db}
}

// GetByID retrieves a catalog Category by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *CategorySQLiteStore) GetByID(ctx context.Context, id string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, event_type_id, age_group, bucket, weight_class, min_weight_kg, max_weight_kg, description
		 FROM event_category WHERE id = ?`, id)
	entity, err := scanCategory(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Category{}, fmt.Errorf("event category not found: %w", err)
	}
	return entity, err
}

// Save persists a catalog Category to the database. The natural key
// (event_type_id, age_group, bucket, weight_class) is unique; re-seeding
// updates the existing row instead of duplicating it.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *CategorySQLiteStore) Save(ctx context.Context, entity domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_category (id, event_type_id, age_group, bucket, weight_class, min_weight_kg, max_weight_kg, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(event_type_id, age_group, bucket, weight_class) DO UPDATE SET
		   min_weight_kg=excluded.min_weight_kg, max_weight_kg=excluded.max_weight_kg,
		   description=excluded.description`,
		entity.ID, entity.EventTypeID, entity.AgeGroup, entity.Bucket, entity.WeightClass,
		entity.MinWeightKg, entity.MaxWeightKg, entity.Description)
	return err
}

// Delete removes a catalog Category from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *CategorySQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event_category WHERE id = ?", id)
	return err
}

// ListByEventTypeID retrieves the catalog rows for one event type.
// PRE: eventTypeID is non-empty
// POST: Returns categories for the given event type
func (s *CategorySQLiteStore) ListByEventTypeID(ctx context.Context, eventTypeID string) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_type_id, age_group, bucket, weight_class, min_weight_kg, max_weight_kg, description
		 FROM event_category WHERE event_type_id = ? ORDER BY age_group, bucket, weight_class`, eventTypeID)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// List retrieves the full catalog.
func (s *CategorySQLiteStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_type_id, age_group, bucket, weight_class, min_weight_kg, max_weight_kg, description
		 FROM event_category ORDER BY event_type_id, age_group, bucket, weight_class`)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]domain.Category, error) {
	defer rows.Close()
	var results []domain.Category
	for rows.Next() {
		entity, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanCategory(scan func(...interface{}) error) (domain.Category, error) {
	var entity domain.Category
	err := scan(
		&entity.ID,
		&entity.EventTypeID,
		&entity.AgeGroup,
		&entity.Bucket,
		&entity.WeightClass,
		&entity.MinWeightKg,
		&entity.MaxWeightKg,
		&entity.Description,
	)
	if err != nil {
		return domain.Category{}, err
	}
	return entity, nil
}

// boolInt stores booleans as SQLite integers.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
