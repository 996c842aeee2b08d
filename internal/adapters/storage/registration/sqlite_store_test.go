package registration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"tatami/internal/adapters/storage"
	"tatami/internal/domain/category"
	domain "tatami/internal/domain/registration"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	return NewSQLiteStore(db)
}

func testRegistration(id, athleteID string) domain.Registration {
	return domain.Registration{
		ID:          id,
		UnitID:      "u1",
		AthleteID:   athleteID,
		EventTypeID: "e1",
		WeightClass: "-77",
		CreatedAt:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	reg := testRegistration("r1", "a1")
	reg.TeamPartnerID = "a2"
	reg.GenderDivision = category.DivisionMixed
	if err := store.Save(ctx, reg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UnitID != "u1" || got.AthleteID != "a1" || got.WeightClass != "-77" {
		t.Errorf("got %+v", got)
	}
	if got.TeamPartnerID != "a2" || got.GenderDivision != category.DivisionMixed {
		t.Errorf("team fields lost: %+v", got)
	}
	if !got.CreatedAt.Equal(reg.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, reg.CreatedAt)
	}

	if _, err := store.GetByID(ctx, "missing"); err == nil {
		t.Error("expected error for missing registration")
	}
}

func TestGetByAthleteAndEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testRegistration("r1", "a1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByAthleteAndEvent(ctx, "a1", "e1")
	if err != nil {
		t.Fatalf("GetByAthleteAndEvent failed: %v", err)
	}
	if got.ID != "r1" {
		t.Errorf("got ID %q, want r1", got.ID)
	}

	if _, err := store.GetByAthleteAndEvent(ctx, "a1", "other-event"); err == nil {
		t.Error("expected error for unenrolled event")
	}
}

func TestSaveUpsertsExistingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	reg := testRegistration("r1", "a1")
	if err := store.Save(ctx, reg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reg.WeightClass = "-85"
	if err := store.Save(ctx, reg); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.WeightClass != "-85" {
		t.Errorf("WeightClass = %q after upsert, want -85", got.WeightClass)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d rows after upsert, want 1", len(all))
	}
}

func TestListByUnitID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testRegistration("r1", "a1")
	second := testRegistration("r2", "a2")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	other := testRegistration("r3", "a3")
	other.UnitID = "u2"
	for _, reg := range []domain.Registration{second, first, other} {
		if err := store.Save(ctx, reg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := store.ListByUnitID(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUnitID failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("rows not ordered by created_at: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testRegistration("r1", "a1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "r1"); err == nil {
		t.Error("registration still present after Delete")
	}
}
