package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tatami/internal/domain/account"
	"tatami/internal/domain/unit"
)

// AccountStoreForRegisterUnit defines the store interface needed by RegisterUnit.
type AccountStoreForRegisterUnit interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// UnitStoreForRegisterUnit defines the store interface needed by RegisterUnit.
type UnitStoreForRegisterUnit interface {
	Save(ctx context.Context, u unit.Unit) error
}

// RegisterUnitInput carries input for the orchestrator.
type RegisterUnitInput struct {
	Email        string
	Password     string
	Name         string
	City         string
	ContactEmail string
	Phone        string
}

// RegisterUnitDeps holds dependencies for RegisterUnit.
type RegisterUnitDeps struct {
	AccountStore AccountStoreForRegisterUnit
	UnitStore    UnitStoreForRegisterUnit
	GenerateID   func() string
	Now          func() time.Time
}

// RegisterUnitResult carries the created IDs.
type RegisterUnitResult struct {
	AccountID string
	UnitID    string
}

// ErrEmailTaken is returned when the login email is already registered.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteRegisterUnit creates a login account and its registration unit.
// PRE: Valid email, password and unit name provided
// POST: Account (role unit) and Unit are persisted and linked
// INVARIANT: Email must be unique
func ExecuteRegisterUnit(ctx context.Context, input RegisterUnitInput, deps RegisterUnitDeps) (RegisterUnitResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	contactEmail := strings.TrimSpace(input.ContactEmail)
	if contactEmail == "" {
		contactEmail = email
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return RegisterUnitResult{}, ErrEmailTaken
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     email,
		Role:      account.RoleUnit,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return RegisterUnitResult{}, err
	}
	if err := acct.Validate(); err != nil {
		return RegisterUnitResult{}, err
	}

	u := unit.Unit{
		ID:           deps.GenerateID(),
		AccountID:    acct.ID,
		Name:         strings.TrimSpace(input.Name),
		City:         strings.TrimSpace(input.City),
		ContactEmail: contactEmail,
		Phone:        strings.TrimSpace(input.Phone),
		CreatedAt:    deps.Now(),
	}
	if err := u.Validate(); err != nil {
		return RegisterUnitResult{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return RegisterUnitResult{}, err
	}
	if err := deps.UnitStore.Save(ctx, u); err != nil {
		return RegisterUnitResult{}, err
	}

	slog.Info("unit_registered", "unit_id", u.ID, "name", u.Name)

	return RegisterUnitResult{AccountID: acct.ID, UnitID: u.ID}, nil
}
