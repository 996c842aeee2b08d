package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// tableNames returns the user tables present in the database.
func tableNames(t *testing.T, db *sql.DB) map[string]bool {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}
	defer rows.Close()
	names := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names[name] = true
	}
	return names
}

// TestMigrateDBFresh verifies a fresh database migrates to the full schema.
func TestMigrateDBFresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	expected := []string{
		"account",
		"unit",
		"athlete",
		"event_type",
		"event_category",
		"registration",
		"payment",
		"system_config",
		"schema_version",
	}
	names := tableNames(t, db)
	for _, table := range expected {
		if !names[table] {
			t.Errorf("expected table %q after migration", table)
		}
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("got schema version %d, want %d", version, LatestSchemaVersion())
	}
}

// TestMigrateDBIdempotent verifies running migrations twice is safe and
// preserves data.
func TestMigrateDBIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}

	if _, err := db.Exec(
		"INSERT INTO unit (id, name, contact_email, created_at) VALUES (?, ?, ?, ?)",
		"u1", "Budo Academy", "office@budo.example", "2025-01-01T00:00:00Z",
	); err != nil {
		t.Fatalf("failed to insert unit: %v", err)
	}

	if err := MigrateDB(db); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM unit WHERE id = ?", "u1").Scan(&name); err != nil {
		t.Fatalf("unit row lost after re-migration: %v", err)
	}
	if name != "Budo Academy" {
		t.Errorf("got unit name %q, want %q", name, "Budo Academy")
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("got schema version %d after re-migration, want %d", version, LatestSchemaVersion())
	}
}

// TestSchemaVersionUnmigrated verifies an untouched database reports version 0.
func TestSchemaVersionUnmigrated(t *testing.T) {
	db := openTestDB(t)

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("got schema version %d for fresh db, want 0", version)
	}
}

// TestDuplicateRegistrationRejected verifies the unique athlete/event
// constraint.
func TestDuplicateRegistrationRejected(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	insert := func(id string) error {
		_, err := db.Exec(
			"INSERT INTO registration (id, unit_id, athlete_id, event_type_id, weight_class, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, "u1", "a1", "e1", "-77", "2025-01-01T00:00:00Z",
		)
		return err
	}
	if err := insert("r1"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := insert("r2"); err == nil {
		t.Error("expected duplicate athlete/event registration to be rejected")
	}
}
