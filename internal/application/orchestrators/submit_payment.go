package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tatami/internal/adapters/email"
	"tatami/internal/domain/athlete"
	"tatami/internal/domain/event"
	"tatami/internal/domain/payment"
	"tatami/internal/domain/registration"
	"tatami/internal/domain/unit"
)

// PaymentStoreForSubmit defines the store interface needed by the payment orchestrators.
type PaymentStoreForSubmit interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	GetActiveByUnitID(ctx context.Context, unitID string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
}

// RegistrationStoreForSubmit defines the store interface needed by SubmitPayment.
type RegistrationStoreForSubmit interface {
	ListByUnitID(ctx context.Context, unitID string) ([]registration.Registration, error)
}

// AthleteStoreForSubmit defines the store interface needed by SubmitPayment.
type AthleteStoreForSubmit interface {
	List(ctx context.Context) ([]athlete.Athlete, error)
}

// EventTypeStoreForSubmit defines the store interface needed by SubmitPayment.
type EventTypeStoreForSubmit interface {
	List(ctx context.Context) ([]event.Type, error)
}

// UnitStoreForPayment defines the store interface needed by ConfirmPayment.
type UnitStoreForPayment interface {
	GetByID(ctx context.Context, id string) (unit.Unit, error)
}

// SubmitPaymentInput carries input for the orchestrator.
type SubmitPaymentInput struct {
	UnitID   string
	ProofRef string
}

// SubmitPaymentDeps holds dependencies for SubmitPayment.
type SubmitPaymentDeps struct {
	PaymentStore      PaymentStoreForSubmit
	RegistrationStore RegistrationStoreForSubmit
	AthleteStore      AthleteStoreForSubmit
	EventTypeStore    EventTypeStoreForSubmit
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteSubmitPayment recomputes the unit's fee from its live
// registrations and upserts the active payment with the snapshot
// amount and proof reference.
// PRE: Unit has registrations; proof reference provided
// POST: Active payment is pending/paid with the recomputed total
// INVARIANT: The stored amount is a snapshot; registrations stay the source of truth
func ExecuteSubmitPayment(ctx context.Context, input SubmitPaymentInput, deps SubmitPaymentDeps) (string, error) {
	regs, err := deps.RegistrationStore.ListByUnitID(ctx, input.UnitID)
	if err != nil {
		return "", err
	}

	athletes, err := deps.AthleteStore.List(ctx)
	if err != nil {
		return "", err
	}
	athleteByID := make(map[string]athlete.Athlete, len(athletes))
	for _, a := range athletes {
		athleteByID[a.ID] = a
	}

	eventTypes, err := deps.EventTypeStore.List(ctx)
	if err != nil {
		return "", err
	}
	eventByID := make(map[string]event.Type, len(eventTypes))
	for _, t := range eventTypes {
		eventByID[t.ID] = t
	}

	total, err := payment.CalculateTotal(regs, athleteByID, eventByID)
	if err != nil {
		return "", err
	}

	p, err := deps.PaymentStore.GetActiveByUnitID(ctx, input.UnitID)
	if err != nil {
		p = payment.Payment{
			ID:     deps.GenerateID(),
			UnitID: input.UnitID,
			Status: payment.StatusPending,
		}
	}
	p.TotalAmount = total
	p.SubmittedAt = deps.Now()
	if input.ProofRef != "" {
		if err := p.AttachProof(input.ProofRef); err != nil {
			return "", err
		}
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return "", err
	}

	slog.Info("payment_submitted", "unit_id", input.UnitID, "payment_id", p.ID, "amount", total)
	return p.ID, nil
}

// ConfirmPaymentInput carries input for the confirm orchestrator.
type ConfirmPaymentInput struct {
	PaymentID string
	AdminID   string
}

// ConfirmPaymentDeps holds dependencies for ConfirmPayment.
type ConfirmPaymentDeps struct {
	PaymentStore PaymentStoreForSubmit
	UnitStore    UnitStoreForPayment
	EmailSender  email.Sender
	EmailFrom    string
	EmailReplyTo string
	Now          func() time.Time
}

// ExecuteConfirmPayment marks a payment confirmed and emails the unit.
// PRE: Payment exists and is not already confirmed
// POST: Payment confirmed with admin and timestamp; notification sent
func ExecuteConfirmPayment(ctx context.Context, input ConfirmPaymentInput, deps ConfirmPaymentDeps) error {
	p, err := deps.PaymentStore.GetByID(ctx, input.PaymentID)
	if err != nil {
		return err
	}
	if err := p.Confirm(input.AdminID, deps.Now()); err != nil {
		return err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return err
	}

	slog.Info("payment_confirmed", "payment_id", p.ID, "unit_id", p.UnitID, "admin_id", input.AdminID)

	u, err := deps.UnitStore.GetByID(ctx, p.UnitID)
	if err != nil {
		slog.Warn("payment_confirm_email_skipped", "payment_id", p.ID, "error", err)
		return nil
	}

	if _, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{u.ContactEmail},
		From:    deps.EmailFrom,
		ReplyTo: deps.EmailReplyTo,
		Subject: "Tournament entry fees confirmed",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your entry fee payment of %d has been confirmed. Your athletes are now fully registered.</p>",
			u.Name, p.TotalAmount),
	}); err != nil {
		// Confirmation already persisted; the email is best effort.
		slog.Warn("payment_confirm_email_failed", "payment_id", p.ID, "error", err)
	}
	return nil
}
