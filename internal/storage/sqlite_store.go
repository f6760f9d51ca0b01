package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/taskbot/internal/logging"
	"github.com/sandeepkv93/taskbot/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps tasks in a single table keyed by list position.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteStore(db *sql.DB, logger *log.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteStore{db: db, logger: logging.OrDiscard(logger)}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, done, kind, description, by_at, from_at, to_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		pos, task, scanErr := scanTask(rows)
		if scanErr != nil {
			s.logger.Warn("skipping malformed task row", "position", pos, "err", scanErr)
			continue
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	s.logger.Debug("loaded tasks", "backend", "sqlite", "count", len(out))
	return out, nil
}

// SaveTasks replaces every row in one transaction.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []model.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, done, kind, description, by_at, from_at, to_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err = stmt.ExecContext(ctx,
			i, boolInt(t.Done), string(t.Kind), t.Description,
			nullTime(t.By), nullTime(t.From), nullTime(t.To),
		); err != nil {
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	s.logger.Debug("saved tasks", "backend", "sqlite", "count", len(tasks))
	return nil
}

func nullTime(v time.Time) any {
	if v.IsZero() {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (time.Time, error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return time.Time{}, err
	}
	return tm.In(time.Local), nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (int, model.Task, error) {
	var (
		pos            int
		done           int
		kind           string
		out            model.Task
		byAt, from, to sql.NullString
	)
	if err := s.Scan(&pos, &done, &kind, &out.Description, &byAt, &from, &to); err != nil {
		return pos, model.Task{}, err
	}
	out.Done = done == 1
	out.Kind = model.Kind(kind)

	var err error
	if out.By, err = parseNullableTime(byAt); err != nil {
		return pos, model.Task{}, fmt.Errorf("%w: by: %w", ErrMalformedRecord, err)
	}
	if out.From, err = parseNullableTime(from); err != nil {
		return pos, model.Task{}, fmt.Errorf("%w: from: %w", ErrMalformedRecord, err)
	}
	if out.To, err = parseNullableTime(to); err != nil {
		return pos, model.Task{}, fmt.Errorf("%w: to: %w", ErrMalformedRecord, err)
	}
	if err := out.Validate(); err != nil {
		return pos, model.Task{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return pos, out, nil
}
