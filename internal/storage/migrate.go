package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY
)`

// MigrateUp applies every embedded migration that is not yet recorded in
// schema_migrations, in version order.
func MigrateUp(db *sql.DB) error {
	return migrate(context.Background(), db, true)
}

// MigrateDown reverts the recorded migrations, newest first.
func MigrateDown(db *sql.DB) error {
	return migrate(context.Background(), db, false)
}

func migrate(ctx context.Context, db *sql.DB, up bool) error {
	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	versions, err := migrationVersions()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	suffix := ".up.sql"
	if !up {
		suffix = ".down.sql"
		slices.Reverse(versions)
	}
	for _, version := range versions {
		if applied[version] != up {
			if err := applyMigration(ctx, db, version, suffix, up); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version, suffix string, up bool) (err error) {
	name := path.Join("migrations", version+suffix)
	body, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if up {
		_, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, version)
	}
	if err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit()
}

// migrationVersions lists the embedded versions that have an up script,
// sorted ascending. A version is the file name without its .up.sql suffix.
func migrationVersions() ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, name := range entries {
		versions = append(versions, strings.TrimSuffix(path.Base(name), ".up.sql"))
	}
	slices.Sort(versions)
	return versions, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
