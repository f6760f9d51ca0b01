package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func setupStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskbot-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	store, err := NewSQLiteStore(db, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := t.Context()

	want := sampleTasks(t)
	if err := store.SaveTasks(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("task %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
		if got[i].String() != want[i].String() {
			t.Fatalf("task %d renders differently: %q vs %q", i, got[i].String(), want[i].String())
		}
	}
}

func TestSQLiteStoreSaveReplacesRows(t *testing.T) {
	store, db := setupStore(t)
	ctx := t.Context()

	if err := store.SaveTasks(ctx, sampleTasks(t)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveTasks(ctx, sampleTasks(t)[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after overwrite, got %d", count)
	}

	if err := store.SaveTasks(ctx, nil); err != nil {
		t.Fatalf("empty save: %v", err)
	}
	got, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestSQLiteStoreSkipsMalformedRows(t *testing.T) {
	store, db := setupStore(t)
	ctx := t.Context()

	if _, err := db.Exec(`
		INSERT INTO tasks (position, done, kind, description, by_at, from_at, to_at) VALUES
		(0, 0, 'T', 'read book', NULL, NULL, NULL),
		(1, 0, 'D', 'no date', NULL, NULL, NULL),
		(2, 1, 'D', 'bad date', 'yesterday', NULL, NULL),
		(3, 0, 'T', '', NULL, NULL, NULL)`); err != nil {
		t.Fatalf("seed rows: %v", err)
	}
	got, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "read book" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "open.db")
	store, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := store.SaveTasks(t.Context(), sampleTasks(t)[:2]); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.LoadTasks(t.Context())
	if err != nil || len(got) != 2 {
		t.Fatalf("load = %+v, %v", got, err)
	}
}
