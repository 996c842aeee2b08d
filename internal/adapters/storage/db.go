package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS unit (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS athlete (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL,
		name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		gender TEXT NOT NULL,
		weight_kg REAL NOT NULL,
		age_group TEXT NOT NULL,
		master_category TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (unit_id) REFERENCES unit(id)
	);

	CREATE TABLE IF NOT EXISTS event_type (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		requires_team INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS event_category (
		id TEXT PRIMARY KEY,
		event_type_id TEXT NOT NULL,
		age_group TEXT NOT NULL,
		bucket TEXT NOT NULL,
		weight_class TEXT NOT NULL,
		min_weight_kg REAL NOT NULL DEFAULT 0,
		max_weight_kg REAL NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		UNIQUE (event_type_id, age_group, bucket, weight_class),
		FOREIGN KEY (event_type_id) REFERENCES event_type(id)
	);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		event_type_id TEXT NOT NULL,
		weight_class TEXT NOT NULL,
		team_partner_id TEXT NOT NULL DEFAULT '',
		gender_division TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (athlete_id, event_type_id),
		FOREIGN KEY (unit_id) REFERENCES unit(id),
		FOREIGN KEY (athlete_id) REFERENCES athlete(id),
		FOREIGN KEY (event_type_id) REFERENCES event_type(id)
	);

	CREATE TABLE IF NOT EXISTS payment (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL,
		total_amount INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		proof_ref TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL,
		confirmed_at TEXT,
		confirmed_by TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (unit_id) REFERENCES unit(id)
	);

	CREATE TABLE IF NOT EXISTS system_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// migrations is the ordered migration chain. Entry 0 is the baseline
// schema; later entries are incremental and must be idempotent.
var migrations = []func(*sql.DB) error{
	InitDB,
	addLookupIndexes,
}

// addLookupIndexes creates the indexes used by the per-unit listing
// queries.
func addLookupIndexes(db *sql.DB) error {
	stmts := `
	CREATE INDEX IF NOT EXISTS idx_athlete_unit ON athlete(unit_id);
	CREATE INDEX IF NOT EXISTS idx_registration_unit ON registration(unit_id);
	CREATE INDEX IF NOT EXISTS idx_registration_event ON registration(event_type_id);
	CREATE INDEX IF NOT EXISTS idx_payment_unit ON payment(unit_id);
	`
	if _, err := db.Exec(stmts); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// LatestSchemaVersion returns the version the migration chain ends at.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion returns the current schema version, 0 for a database
// that has never been migrated.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// MigrateDB applies all migrations newer than the recorded schema
// version. Safe to run repeatedly.
// PRE: db is a valid database connection
// POST: Schema and version match the current release
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL DEFAULT (datetime('now')))"); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for i := current; i < len(migrations); i++ {
		if err := migrations[i](db); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}
	return nil
}
