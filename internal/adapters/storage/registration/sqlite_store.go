package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tatami/internal/adapters/storage"
	domain "tatami/internal/domain/registration"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

const selectColumns = `SELECT id, unit_id, athlete_id, event_type_id, weight_class, team_partner_id, gender_division, created_at
	 FROM registration`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new registration store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// GetByAthleteAndEvent retrieves the Registration of an athlete for one
// event type. At most one exists per pair.
// PRE: athleteID and eventTypeID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAthleteAndEvent(ctx context.Context, athleteID, eventTypeID string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" WHERE athlete_id = ? AND event_type_id = ?", athleteID, eventTypeID)
	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// Save persists a Registration to the database.
// PRE: entity has been validated and stamped
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registration (id, unit_id, athlete_id, event_type_id, weight_class, team_partner_id, gender_division, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   weight_class=excluded.weight_class, team_partner_id=excluded.team_partner_id,
		   gender_division=excluded.gender_division`,
		entity.ID, entity.UnitID, entity.AthleteID, entity.EventTypeID,
		entity.WeightClass, entity.TeamPartnerID, entity.GenderDivision,
		entity.CreatedAt.Format(timeLayout))
	return err
}

// Delete removes a Registration from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE id = ?", id)
	return err
}

// ListByUnitID retrieves Registrations created by a unit.
// PRE: unitID is non-empty
// POST: Returns registrations for the given unit
func (s *SQLiteStore) ListByUnitID(ctx context.Context, unitID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE unit_id = ? ORDER BY created_at", unitID)
	if err != nil {
		return nil, err
	}
	return collectRegistrations(rows)
}

// ListByEventTypeID retrieves Registrations for one event type.
// PRE: eventTypeID is non-empty
// POST: Returns registrations for the given event type
func (s *SQLiteStore) ListByEventTypeID(ctx context.Context, eventTypeID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE event_type_id = ? ORDER BY created_at", eventTypeID)
	if err != nil {
		return nil, err
	}
	return collectRegistrations(rows)
}

// List retrieves all Registrations.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return collectRegistrations(rows)
}

func collectRegistrations(rows *sql.Rows) ([]domain.Registration, error) {
	defer rows.Close()
	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanRegistration extracts a Registration from a row scanner function.
func scanRegistration(scan func(...interface{}) error) (domain.Registration, error) {
	var entity domain.Registration
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.UnitID,
		&entity.AthleteID,
		&entity.EventTypeID,
		&entity.WeightClass,
		&entity.TeamPartnerID,
		&entity.GenderDivision,
		&createdAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	entity.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return entity, nil
}
