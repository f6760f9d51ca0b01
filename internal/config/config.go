// Package config loads runtime settings from defaults, an optional TOML file,
// TASKBOT_* environment variables and command line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/taskbot/internal/logging"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	UIAuto  = "auto"
	UITUI   = "tui"
	UIPlain = "plain"

	ProjectConfigFile = "taskbot.toml"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	Timestamps bool   `toml:"timestamps"`
}

type UIConfig struct {
	Mode string `toml:"mode"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendFile, Path: filepath.Join("data", "tasks.txt")},
		Log:     LogConfig{Level: "info", Format: "text", Timestamps: true},
		UI:      UIConfig{Mode: UIAuto},
	}
}

type flagValues struct {
	config   string
	backend  string
	data     string
	logLevel string
	ui       string
}

// Load builds the configuration. fs receives the flag definitions and is
// parsed with args.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var fv flagValues
	fs.StringVar(&fv.config, "config", "", "path to a TOML config file")
	fs.StringVar(&fv.backend, "backend", "", "storage backend: file or sqlite")
	fs.StringVar(&fv.data, "data", "", "path of the task data file")
	fs.StringVar(&fv.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&fv.ui, "ui", "", "interface: auto, tui or plain")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := Default()

	path, explicit := fv.config, fv.config != ""
	if !explicit {
		if v := strings.TrimSpace(os.Getenv("TASKBOT_CONFIG")); v != "" {
			path, explicit = v, true
		}
	}
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	cfg = FromEnv(cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Storage.Backend = fv.backend
		case "data":
			cfg.Storage.Path = fv.data
		case "log-level":
			cfg.Log.Level = fv.logLevel
		case "ui":
			cfg.UI.Mode = fv.ui
		}
	})

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv applies TASKBOT_* overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKBOT_STORAGE_BACKEND"); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := getEnvString("TASKBOT_STORAGE_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvString("TASKBOT_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvString("TASKBOT_LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := getEnvString("TASKBOT_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvBool("TASKBOT_LOG_TIMESTAMPS"); ok {
		cfg.Log.Timestamps = v
	}
	if v, ok := getEnvString("TASKBOT_UI"); ok {
		cfg.UI.Mode = v
	}
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("config: storage path is required"))
	}
	switch c.UI.Mode {
	case UIAuto, UITUI, UIPlain:
	default:
		errs = append(errs, fmt.Errorf("config: unknown ui mode %q", c.UI.Mode))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormatter(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogFile is where logs go when the terminal is owned by the TUI.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(c.Storage.Path), "taskbot.log")
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.Path = expandPath(strings.TrimSpace(c.Storage.Path))
	c.Log.File = expandPath(strings.TrimSpace(c.Log.File))
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
}

func loadFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// findConfigFile prefers ./taskbot.toml over the user config directory.
func findConfigFile() string {
	if fileExists(ProjectConfigFile) {
		return ProjectConfigFile
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "taskbot", "config.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v, true
		}
		return false, false
	}
}
