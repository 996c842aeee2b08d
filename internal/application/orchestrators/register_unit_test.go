package orchestrators

import (
	"context"
	"errors"
	"testing"

	"tatami/internal/domain/account"
)

// TestExecuteRegisterUnit_CreatesAccountAndUnit links the two records.
func TestExecuteRegisterUnit_CreatesAccountAndUnit(t *testing.T) {
	accounts := newMockAccountStore()
	units := newMockUnitStore()
	deps := RegisterUnitDeps{
		AccountStore: accounts,
		UnitStore:    units,
		GenerateID:   seqID(),
		Now:          fixedNow,
	}

	result, err := ExecuteRegisterUnit(context.Background(), RegisterUnitInput{
		Email:    "Office@Budo.example",
		Password: "correct-horse-battery",
		Name:     "Budo Academy",
		City:     "Riga",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acct, ok := accounts.accounts["office@budo.example"]
	if !ok {
		t.Fatal("expected account stored under lowercased email")
	}
	if acct.Role != account.RoleUnit {
		t.Errorf("Role = %q, want unit", acct.Role)
	}
	if acct.PasswordHash == "" {
		t.Error("expected password hash set")
	}

	u := units.units[result.UnitID]
	if u.AccountID != result.AccountID {
		t.Errorf("unit AccountID = %q, want %q", u.AccountID, result.AccountID)
	}
	if u.ContactEmail != "office@budo.example" {
		t.Errorf("ContactEmail = %q, want login email fallback", u.ContactEmail)
	}
}

// TestExecuteRegisterUnit_DuplicateEmail rejects an existing email.
func TestExecuteRegisterUnit_DuplicateEmail(t *testing.T) {
	accounts := newMockAccountStore()
	accounts.accounts["office@budo.example"] = account.Account{
		ID: "acc-1", Email: "office@budo.example", Role: account.RoleUnit,
	}
	deps := RegisterUnitDeps{
		AccountStore: accounts,
		UnitStore:    newMockUnitStore(),
		GenerateID:   seqID(),
		Now:          fixedNow,
	}

	_, err := ExecuteRegisterUnit(context.Background(), RegisterUnitInput{
		Email:    "office@budo.example",
		Password: "correct-horse-battery",
		Name:     "Budo Academy",
	}, deps)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

// TestExecuteRegisterUnit_ShortPassword rejects a weak password.
func TestExecuteRegisterUnit_ShortPassword(t *testing.T) {
	deps := RegisterUnitDeps{
		AccountStore: newMockAccountStore(),
		UnitStore:    newMockUnitStore(),
		GenerateID:   seqID(),
		Now:          fixedNow,
	}

	_, err := ExecuteRegisterUnit(context.Background(), RegisterUnitInput{
		Email:    "office@budo.example",
		Password: "short",
		Name:     "Budo Academy",
	}, deps)
	if !errors.Is(err, account.ErrPasswordTooShort) {
		t.Errorf("err = %v, want ErrPasswordTooShort", err)
	}
}

// TestExecuteLogin_Success returns account info and resets failures.
func TestExecuteLogin_Success(t *testing.T) {
	accounts := newMockAccountStore()
	acct := account.Account{ID: "acc-1", Email: "office@budo.example", Role: account.RoleUnit, FailedLogins: 2}
	if err := acct.SetPassword("correct-horse-battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	accounts.accounts[acct.Email] = acct

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "office@budo.example",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: accounts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccountID != "acc-1" || result.Role != account.RoleUnit {
		t.Errorf("result = %+v", result)
	}
	if accounts.accounts[acct.Email].FailedLogins != 0 {
		t.Error("expected failed logins reset on success")
	}
}

// TestExecuteLogin_WrongPassword records the failure.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	accounts := newMockAccountStore()
	acct := account.Account{ID: "acc-1", Email: "office@budo.example", Role: account.RoleUnit}
	if err := acct.SetPassword("correct-horse-battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	accounts.accounts[acct.Email] = acct

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "office@budo.example",
		Password: "wrong-password-entirely",
	}, LoginDeps{AccountStore: accounts})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if accounts.accounts[acct.Email].FailedLogins != 1 {
		t.Errorf("FailedLogins = %d, want 1", accounts.accounts[acct.Email].FailedLogins)
	}
}

// TestExecuteLogin_LockedAccount blocks locked accounts before password check.
func TestExecuteLogin_LockedAccount(t *testing.T) {
	accounts := newMockAccountStore()
	acct := account.Account{ID: "acc-1", Email: "office@budo.example", Role: account.RoleUnit}
	if err := acct.SetPassword("correct-horse-battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	for i := 0; i < 5; i++ {
		acct.RecordFailedLogin()
	}
	accounts.accounts[acct.Email] = acct

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "office@budo.example",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: accounts})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("err = %v, want ErrAccountLocked", err)
	}
}
