package unit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tatami/internal/adapters/storage"
	domain "tatami/internal/domain/unit"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new unit store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Unit by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Unit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, city, contact_email, phone, created_at
		 FROM unit WHERE id = ?`, id)
	entity, err := scanUnit(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Unit{}, fmt.Errorf("unit not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the Unit owned by a login account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Unit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, city, contact_email, phone, created_at
		 FROM unit WHERE account_id = ?`, accountID)
	entity, err := scanUnit(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Unit{}, fmt.Errorf("unit not found: %w", err)
	}
	return entity, err
}

// Save persists a Unit to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Unit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO unit (id, account_id, name, city, contact_email, phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   account_id=excluded.account_id, name=excluded.name, city=excluded.city,
		   contact_email=excluded.contact_email, phone=excluded.phone`,
		entity.ID, nullStr(entity.AccountID), entity.Name, entity.City,
		entity.ContactEmail, entity.Phone, entity.CreatedAt.Format(timeLayout))
	return err
}

// List retrieves all Units ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, name, city, contact_email, phone, created_at
		 FROM unit ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Unit
	for rows.Next() {
		entity, err := scanUnit(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanUnit extracts a Unit from a row scanner function.
func scanUnit(scan func(...interface{}) error) (domain.Unit, error) {
	var entity domain.Unit
	var accountID sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&accountID,
		&entity.Name,
		&entity.City,
		&entity.ContactEmail,
		&entity.Phone,
		&createdAt,
	)
	if err != nil {
		return domain.Unit{}, err
	}
	if accountID.Valid {
		entity.AccountID = accountID.String
	}
	entity.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return entity, nil
}

// nullStr converts empty strings to NULL for nullable columns.
func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
