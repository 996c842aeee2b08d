package payment

import (
	"errors"
	"time"
)

// Payment statuses. A unit has at most one active payment (any of
// these states); a new fee calculation supersedes the stored amount
// until the payment is confirmed.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusConfirmed = "confirmed"
)

// Domain errors
var (
	ErrEmptyUnitID      = errors.New("payment must reference a registration unit")
	ErrNegativeAmount   = errors.New("payment amount cannot be negative")
	ErrInvalidStatus    = errors.New("payment status must be one of: pending, paid, confirmed")
	ErrAlreadyConfirmed = errors.New("payment has already been confirmed")
	ErrEmptyProof       = errors.New("payment proof reference cannot be empty")
)

// Payment is a snapshot of the fee owed by a unit, recomputed from
// live registrations at submission time. TotalAmount is audit data,
// not the source of truth.
type Payment struct {
	ID          string
	UnitID      string
	TotalAmount int
	Status      string
	ProofRef    string // external reference to the uploaded proof, empty until attached
	SubmittedAt time.Time
	ConfirmedAt time.Time
	ConfirmedBy string // admin account ID
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Payment) Validate() error {
	if p.UnitID == "" {
		return ErrEmptyUnitID
	}
	if p.TotalAmount < 0 {
		return ErrNegativeAmount
	}
	if p.Status != StatusPending && p.Status != StatusPaid && p.Status != StatusConfirmed {
		return ErrInvalidStatus
	}
	return nil
}

// IsConfirmed reports whether the payment has been confirmed by an
// admin.
func (p *Payment) IsConfirmed() bool {
	return p.Status == StatusConfirmed
}

// AttachProof records the proof reference and moves the payment to
// paid.
// PRE: payment is not confirmed; proofRef is non-empty
// POST: Status is paid and ProofRef is set
func (p *Payment) AttachProof(proofRef string) error {
	if p.IsConfirmed() {
		return ErrAlreadyConfirmed
	}
	if proofRef == "" {
		return ErrEmptyProof
	}
	p.ProofRef = proofRef
	p.Status = StatusPaid
	return nil
}

// Confirm marks the payment as confirmed by the given admin.
// PRE: payment is not already confirmed; adminID is non-empty
// POST: Status is confirmed, ConfirmedBy and ConfirmedAt are set
func (p *Payment) Confirm(adminID string, at time.Time) error {
	if p.IsConfirmed() {
		return ErrAlreadyConfirmed
	}
	if adminID == "" {
		return errors.New("admin ID is required to confirm")
	}
	p.Status = StatusConfirmed
	p.ConfirmedBy = adminID
	p.ConfirmedAt = at
	return nil
}
