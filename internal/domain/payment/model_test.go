package payment_test

import (
	"errors"
	"testing"
	"time"

	"tatami/internal/domain/payment"
)

// TestPayment_Validate tests validation of Payment fields.
func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       payment.Payment
		wantErr error
	}{
		{"valid pending", payment.Payment{ID: "p1", UnitID: "u1", TotalAmount: 2400, Status: payment.StatusPending}, nil},
		{"no unit", payment.Payment{ID: "p2", TotalAmount: 100, Status: payment.StatusPending}, payment.ErrEmptyUnitID},
		{"negative amount", payment.Payment{ID: "p3", UnitID: "u1", TotalAmount: -1, Status: payment.StatusPaid}, payment.ErrNegativeAmount},
		{"bad status", payment.Payment{ID: "p4", UnitID: "u1", TotalAmount: 0, Status: "draft"}, payment.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestPayment_Lifecycle walks pending -> paid -> confirmed and checks
// the guards along the way.
func TestPayment_Lifecycle(t *testing.T) {
	p := payment.Payment{ID: "p1", UnitID: "u1", TotalAmount: 1200, Status: payment.StatusPending}

	if err := p.AttachProof(""); !errors.Is(err, payment.ErrEmptyProof) {
		t.Errorf("empty proof error = %v", err)
	}
	if err := p.AttachProof("transfer-2025-0031"); err != nil {
		t.Fatalf("AttachProof: %v", err)
	}
	if p.Status != payment.StatusPaid {
		t.Errorf("status = %q, want paid", p.Status)
	}

	now := time.Now()
	if err := p.Confirm("", now); err == nil {
		t.Error("Confirm without admin ID must fail")
	}
	if err := p.Confirm("admin1", now); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !p.IsConfirmed() || p.ConfirmedBy != "admin1" {
		t.Errorf("after confirm: status %q, by %q", p.Status, p.ConfirmedBy)
	}

	if err := p.Confirm("admin2", now); !errors.Is(err, payment.ErrAlreadyConfirmed) {
		t.Errorf("double confirm error = %v", err)
	}
	if err := p.AttachProof("late"); !errors.Is(err, payment.ErrAlreadyConfirmed) {
		t.Errorf("proof after confirm error = %v", err)
	}
}
