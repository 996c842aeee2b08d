package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tatami/internal/adapters/storage"
	domain "tatami/internal/domain/payment"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

const selectColumns = `SELECT id, unit_id, total_amount, status, proof_ref, submitted_at, confirmed_at, confirmed_by
	 FROM payment`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// GetActiveByUnitID retrieves the unit's current unconfirmed payment.
// Resubmitting fees updates this row rather than opening a second one.
// PRE: unitID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetActiveByUnitID(ctx context.Context, unitID string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" WHERE unit_id = ? AND status != ? ORDER BY submitted_at DESC LIMIT 1",
		unitID, domain.StatusConfirmed)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	var confirmedAt interface{}
	if !entity.ConfirmedAt.IsZero() {
		confirmedAt = entity.ConfirmedAt.Format(timeLayout)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (id, unit_id, total_amount, status, proof_ref, submitted_at, confirmed_at, confirmed_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   total_amount=excluded.total_amount, status=excluded.status, proof_ref=excluded.proof_ref,
		   submitted_at=excluded.submitted_at, confirmed_at=excluded.confirmed_at,
		   confirmed_by=excluded.confirmed_by`,
		entity.ID, entity.UnitID, entity.TotalAmount, entity.Status, entity.ProofRef,
		entity.SubmittedAt.Format(timeLayout), confirmedAt, entity.ConfirmedBy)
	return err
}

// ListByUnitID retrieves Payments submitted by a unit.
// PRE: unitID is non-empty
// POST: Returns payments for the given unit, newest first
func (s *SQLiteStore) ListByUnitID(ctx context.Context, unitID string) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE unit_id = ? ORDER BY submitted_at DESC", unitID)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

// ListByStatus retrieves Payments in one status.
// PRE: status is a valid payment status
// POST: Returns matching payments, oldest first for admin review
func (s *SQLiteStore) ListByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE status = ? ORDER BY submitted_at", status)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	defer rows.Close()
	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanPayment extracts a Payment from a row scanner function.
func scanPayment(scan func(...interface{}) error) (domain.Payment, error) {
	var entity domain.Payment
	var submittedAt string
	var confirmedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.UnitID,
		&entity.TotalAmount,
		&entity.Status,
		&entity.ProofRef,
		&submittedAt,
		&confirmedAt,
		&entity.ConfirmedBy,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	entity.SubmittedAt, _ = time.Parse(timeLayout, submittedAt)
	if confirmedAt.Valid {
		entity.ConfirmedAt, _ = time.Parse(timeLayout, confirmedAt.String)
	}
	return entity, nil
}
