package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tatami/internal/adapters/email"
	"tatami/internal/domain/account"
	"tatami/internal/domain/athlete"
	"tatami/internal/domain/category"
	"tatami/internal/domain/event"
	"tatami/internal/domain/payment"
	"tatami/internal/domain/registration"
	"tatami/internal/domain/unit"
)

var errNotFound = errors.New("not found")

var fixedTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqID returns a generator producing id-1, id-2, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- account store ---

type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errNotFound
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

// --- unit store ---

type mockUnitStore struct {
	units map[string]unit.Unit
}

func newMockUnitStore() *mockUnitStore {
	return &mockUnitStore{units: make(map[string]unit.Unit)}
}

func (m *mockUnitStore) GetByID(_ context.Context, id string) (unit.Unit, error) {
	u, ok := m.units[id]
	if !ok {
		return unit.Unit{}, errNotFound
	}
	return u, nil
}

func (m *mockUnitStore) Save(_ context.Context, u unit.Unit) error {
	m.units[u.ID] = u
	return nil
}

// --- athlete store ---

type mockAthleteStore struct {
	athletes map[string]athlete.Athlete
}

func newMockAthleteStore() *mockAthleteStore {
	return &mockAthleteStore{athletes: make(map[string]athlete.Athlete)}
}

func (m *mockAthleteStore) GetByID(_ context.Context, id string) (athlete.Athlete, error) {
	a, ok := m.athletes[id]
	if !ok {
		return athlete.Athlete{}, errNotFound
	}
	return a, nil
}

func (m *mockAthleteStore) Save(_ context.Context, a athlete.Athlete) error {
	m.athletes[a.ID] = a
	return nil
}

func (m *mockAthleteStore) List(_ context.Context) ([]athlete.Athlete, error) {
	var out []athlete.Athlete
	for _, a := range m.athletes {
		out = append(out, a)
	}
	return out, nil
}

// --- event type store ---

type mockEventTypeStore struct {
	types map[string]event.Type
}

func newMockEventTypeStore() *mockEventTypeStore {
	return &mockEventTypeStore{types: make(map[string]event.Type)}
}

func (m *mockEventTypeStore) GetByID(_ context.Context, id string) (event.Type, error) {
	t, ok := m.types[id]
	if !ok {
		return event.Type{}, errNotFound
	}
	return t, nil
}

func (m *mockEventTypeStore) GetByKey(_ context.Context, key string) (event.Type, error) {
	for _, t := range m.types {
		if t.Key == key {
			return t, nil
		}
	}
	return event.Type{}, errNotFound
}

func (m *mockEventTypeStore) Save(_ context.Context, t event.Type) error {
	m.types[t.ID] = t
	return nil
}

func (m *mockEventTypeStore) List(_ context.Context) ([]event.Type, error) {
	var out []event.Type
	for _, t := range m.types {
		out = append(out, t)
	}
	return out, nil
}

// --- registration store ---

type mockRegistrationStore struct {
	regs map[string]registration.Registration
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{regs: make(map[string]registration.Registration)}
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	r, ok := m.regs[id]
	if !ok {
		return registration.Registration{}, errNotFound
	}
	return r, nil
}

func (m *mockRegistrationStore) GetByAthleteAndEvent(_ context.Context, athleteID, eventTypeID string) (registration.Registration, error) {
	for _, r := range m.regs {
		if r.AthleteID == athleteID && r.EventTypeID == eventTypeID {
			return r, nil
		}
	}
	return registration.Registration{}, errNotFound
}

func (m *mockRegistrationStore) Save(_ context.Context, r registration.Registration) error {
	m.regs[r.ID] = r
	return nil
}

func (m *mockRegistrationStore) Delete(_ context.Context, id string) error {
	delete(m.regs, id)
	return nil
}

func (m *mockRegistrationStore) ListByUnitID(_ context.Context, unitID string) ([]registration.Registration, error) {
	var out []registration.Registration
	for _, r := range m.regs {
		if r.UnitID == unitID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- payment store ---

type mockPaymentStore struct {
	payments map[string]payment.Payment
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{payments: make(map[string]payment.Payment)}
}

func (m *mockPaymentStore) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return payment.Payment{}, errNotFound
	}
	return p, nil
}

func (m *mockPaymentStore) GetActiveByUnitID(_ context.Context, unitID string) (payment.Payment, error) {
	for _, p := range m.payments {
		if p.UnitID == unitID && p.Status != payment.StatusConfirmed {
			return p, nil
		}
	}
	return payment.Payment{}, errNotFound
}

func (m *mockPaymentStore) Save(_ context.Context, p payment.Payment) error {
	m.payments[p.ID] = p
	return nil
}

// --- settings provider ---

type mockSettings struct {
	ranges          category.AgeRanges
	competitionDate time.Time
	savedRanges     []category.AgeRanges
}

func newMockSettings() *mockSettings {
	return &mockSettings{
		ranges:          category.DefaultAgeRanges(),
		competitionDate: time.Date(2025, time.October, 18, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockSettings) AgeRanges(_ context.Context) (category.AgeRanges, error) {
	return m.ranges, nil
}

func (m *mockSettings) CompetitionDate(_ context.Context) (time.Time, error) {
	return m.competitionDate, nil
}

func (m *mockSettings) SaveAgeRanges(_ context.Context, ranges category.AgeRanges) error {
	if err := ranges.Validate(); err != nil {
		return err
	}
	m.ranges = ranges
	m.savedRanges = append(m.savedRanges, ranges)
	return nil
}

// --- email sender ---

type mockEmailSender struct {
	sent []email.SendRequest
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock-1", SentAt: fixedTime}, nil
}

