package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"tatami/internal/domain/account"
)

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdminAccount.
type SeedAdminDeps struct {
	AccountStore AccountStoreForRegisterUnit
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdminAccount creates the admin account on first startup.
// An existing account with the same email is left untouched.
// PRE: Email and password come from deployment configuration
// POST: An admin account exists for the given email
func ExecuteSeedAdminAccount(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" {
		return nil
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("admin_account_seeded", "email", input.Email)
	return nil
}
