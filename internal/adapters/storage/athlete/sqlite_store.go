package athlete

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tatami/internal/adapters/storage"
	domain "tatami/internal/domain/athlete"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// birthLayout stores birth dates without a time component.
const birthLayout = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new athlete store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Athlete by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Athlete, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, unit_id, name, birth_date, gender, weight_kg, age_group, master_category, created_at
		 FROM athlete WHERE id = ?`, id)
	entity, err := scanAthlete(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Athlete{}, fmt.Errorf("athlete not found: %w", err)
	}
	return entity, err
}

// Save persists an Athlete to the database.
// PRE: entity has been validated and classified
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Athlete) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO athlete (id, unit_id, name, birth_date, gender, weight_kg, age_group, master_category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   unit_id=excluded.unit_id, name=excluded.name, birth_date=excluded.birth_date,
		   gender=excluded.gender, weight_kg=excluded.weight_kg,
		   age_group=excluded.age_group, master_category=excluded.master_category`,
		entity.ID, entity.UnitID, entity.Name, entity.BirthDate.Format(birthLayout),
		entity.Gender, entity.WeightKg, entity.AgeGroup, entity.MasterCategory,
		entity.CreatedAt.Format(timeLayout))
	return err
}

// Delete removes an Athlete from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM athlete WHERE id = ?", id)
	return err
}

// ListByUnitID retrieves Athletes belonging to a unit.
// PRE: unitID is non-empty
// POST: Returns athletes for the given unit ordered by name
func (s *SQLiteStore) ListByUnitID(ctx context.Context, unitID string) ([]domain.Athlete, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, name, birth_date, gender, weight_kg, age_group, master_category, created_at
		 FROM athlete WHERE unit_id = ? ORDER BY name`, unitID)
	if err != nil {
		return nil, err
	}
	return collectAthletes(rows)
}

// List retrieves all Athletes ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Athlete, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, name, birth_date, gender, weight_kg, age_group, master_category, created_at
		 FROM athlete ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectAthletes(rows)
}

func collectAthletes(rows *sql.Rows) ([]domain.Athlete, error) {
	defer rows.Close()
	var results []domain.Athlete
	for rows.Next() {
		entity, err := scanAthlete(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanAthlete extracts an Athlete from a row scanner function.
func scanAthlete(scan func(...interface{}) error) (domain.Athlete, error) {
	var entity domain.Athlete
	var birthDate, createdAt string
	err := scan(
		&entity.ID,
		&entity.UnitID,
		&entity.Name,
		&birthDate,
		&entity.Gender,
		&entity.WeightKg,
		&entity.AgeGroup,
		&entity.MasterCategory,
		&createdAt,
	)
	if err != nil {
		return domain.Athlete{}, err
	}
	entity.BirthDate, _ = time.Parse(birthLayout, birthDate)
	entity.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return entity, nil
}
