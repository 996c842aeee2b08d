package projections

import (
	"context"
	"errors"

	"tatami/internal/domain/athlete"
	"tatami/internal/domain/event"
	"tatami/internal/domain/payment"
	"tatami/internal/domain/registration"
	"tatami/internal/domain/unit"
)

type mockAthleteStore struct {
	athletes []athlete.Athlete
}

func (m *mockAthleteStore) List(_ context.Context) ([]athlete.Athlete, error) {
	return m.athletes, nil
}

func (m *mockAthleteStore) ListByUnitID(_ context.Context, unitID string) ([]athlete.Athlete, error) {
	var out []athlete.Athlete
	for _, a := range m.athletes {
		if a.UnitID == unitID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockRegistrationStore struct {
	regs []registration.Registration
}

func (m *mockRegistrationStore) List(_ context.Context) ([]registration.Registration, error) {
	return m.regs, nil
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

type mockEventTypeStore struct {
	types []event.Type
}

func (m *mockEventTypeStore) List(_ context.Context) ([]event.Type, error) {
	return m.types, nil
}

type mockPaymentStore struct {
	payments []payment.Payment
}

func (m *mockPaymentStore) ListByUnitID(_ context.Context, unitID string) ([]payment.Payment, error) {
	var out []payment.Payment
	for _, p := range m.payments {
		if p.UnitID == unitID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockUnitStore struct {
	units map[string]unit.Unit
}

func (m *mockUnitStore) GetByID(_ context.Context, id string) (unit.Unit, error) {
	u, ok := m.units[id]
	if !ok {
		return unit.Unit{}, errors.New("not found")
	}
	return u, nil
}
