package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending migrations.
	Migrate(ctx context.Context) error

	// CurrentVersion returns the current schema version.
	CurrentVersion(ctx context.Context) (int, error)
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      string
}

// migrator implements the Migrator interface.
type migrator struct {
	db         *DB
	migrations []migration
}

// NewMigrator creates a new database migrator.
func NewMigrator(db *DB) Migrator {
	return &migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

// getMigrations returns all available migrations in order.
func getMigrations() []migration {
	return []migration{
		{
			version: 1,
			name:    "workflows",
			up: `
CREATE TABLE IF NOT EXISTS workflows (
	id TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	trigger_type TEXT NOT NULL DEFAULT 'manual',
	trigger_cron TEXT NOT NULL DEFAULT '',
	trigger_event_key TEXT NOT NULL DEFAULT '',
	approval_required INTEGER NOT NULL DEFAULT 0,
	approval_threshold INTEGER NOT NULL DEFAULT 0,
	pipeline TEXT NOT NULL,
	is_template INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_workflows_business ON workflows(business_id);
CREATE INDEX IF NOT EXISTS idx_workflows_name ON workflows(business_id, name);
`,
		},
		{
			version: 2,
			name:    "orchestration_templates",
			up: `
CREATE TABLE IF NOT EXISTS orchestration_templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	tier TEXT NOT NULL,
	pattern TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	payload TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_templates_tier ON orchestration_templates(tier);
CREATE INDEX IF NOT EXISTS idx_templates_pattern ON orchestration_templates(pattern);
`,
		},
	}
}

// Migrate applies all pending migrations in version order.
func (m *migrator) Migrate(ctx context.Context) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	pending := make([]migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if mig.version > current {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	for _, mig := range pending {
		err := m.db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, mig.up); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", mig.version, mig.name, err)
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				mig.version, mig.name)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CurrentVersion returns the highest applied migration version.
func (m *migrator) CurrentVersion(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var version sql.NullInt64
	err := m.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

func (m *migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}
