package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/sandeepkv93/taskbot/internal/cli"
	"github.com/sandeepkv93/taskbot/internal/config"
	"github.com/sandeepkv93/taskbot/internal/logging"
	"github.com/sandeepkv93/taskbot/internal/session"
	"github.com/sandeepkv93/taskbot/internal/storage"
	"github.com/sandeepkv93/taskbot/internal/tasklist"
	"github.com/sandeepkv93/taskbot/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskbot failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		return err
	}
	tui := useTUI(cfg.UI.Mode)

	logOut, closeLog, err := logWriter(cfg, tui)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := logging.FromConfig(logOut, cfg.Log.Level, cfg.Log.Format, cfg.Log.Timestamps)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", "file", cfg.Source)
	}

	ctx := context.Background()
	store, closeStore, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	tasks, err := tasklist.Load(ctx, store, logger)
	if err != nil {
		return err
	}
	sess := session.New(tasks, logger)

	if !tui {
		return cli.Run(ctx, os.Stdin, os.Stdout, sess)
	}
	program := tea.NewProgram(update.NewModel(ctx, sess), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(update.Model); ok && m.Farewell() != "" {
		fmt.Println(m.Farewell())
	}
	return nil
}

func useTUI(mode string) bool {
	switch mode {
	case config.UITUI:
		return true
	case config.UIPlain:
		return false
	default:
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// logWriter sends logs to stderr for the plain REPL. The chat window owns the
// terminal, so there logs go to the log file instead.
func logWriter(cfg config.Config, tui bool) (io.Writer, func(), error) {
	if !tui && cfg.Log.File == "" {
		return os.Stderr, func() {}, nil
	}
	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openStorage(cfg config.Config, logger *log.Logger) (storage.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := storage.OpenSQLite(cfg.Storage.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("close sqlite store", "err", err)
			}
		}, nil
	default:
		store, err := storage.NewFileStore(cfg.Storage.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
