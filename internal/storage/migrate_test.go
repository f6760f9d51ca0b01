package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/taskbot/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countApplied(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	return n
}

func TestMigrateRoundTripCompatibility(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if countApplied(t, db) != 0 {
		t.Fatal("expected no recorded migrations after down")
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.SaveTasks(t.Context(), []model.Task{model.NewTodo("Roundtrip task")}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, err := store.LoadTasks(t.Context())
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Roundtrip task" {
		t.Fatalf("unexpected tasks after roundtrip: %+v", got)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	for range 2 {
		if err := MigrateUp(db); err != nil {
			t.Fatalf("migrate up: %v", err)
		}
	}
	versions, err := migrationVersions()
	if err != nil {
		t.Fatalf("versions: %v", err)
	}
	if got := countApplied(t, db); got != len(versions) {
		t.Fatalf("recorded %d migrations, want %d", got, len(versions))
	}
}
