package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskbot/internal/logging"
	"github.com/sandeepkv93/taskbot/internal/model"
)

// FileStore keeps tasks in a plain text file, one EncodeTask line per task.
type FileStore struct {
	path   string
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: empty file path")
	}
	return &FileStore{path: path, logger: logging.OrDiscard(logger)}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// LoadTasks returns the stored tasks in order. A missing file is an empty
// list; lines that do not decode are logged and skipped.
func (s *FileStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	out := make([]model.Task, 0)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, decodeErr := DecodeTask(line)
		if decodeErr != nil {
			s.logger.Warn("skipping malformed task line", "path", s.path, "line", lineNo, "err", decodeErr)
			continue
		}
		out = append(out, task)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks file: %w", err)
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(out))
	return out, nil
}

// SaveTasks rewrites the whole file through a temp file and rename.
func (s *FileStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(EncodeTask(t))
		buf.WriteByte('\n')
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}
