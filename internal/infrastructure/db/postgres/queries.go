package postgres

const (
	CreateMigrationsTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	SelectAppliedMigrations = `SELECT version, applied_at FROM schema_migrations`
	InsertMigration         = `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`
)
