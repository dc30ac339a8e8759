// Package config loads calcnote settings from defaults, an optional YAML
// file, a .env file and CALCNOTE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	DefaultBackend    = BackendJSON
	DefaultStorePath  = "~/.local/share/calcnote/notebook.json"
	DefaultNotebook   = "default"
	DefaultDebounceMS = 100
	DefaultLogLevel   = "info"
)

// Config holds every runtime setting
type Config struct {
	Store struct {
		Backend  string `yaml:"backend"`  // json or sqlite
		Path     string `yaml:"path"`     // JSON file or SQLite database
		Notebook string `yaml:"notebook"` // SQLite only
	} `yaml:"store"`
	Editor struct {
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"editor"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"` // TUI only; stderr belongs to the terminal UI
	} `yaml:"log"`
}

// Default returns the built-in settings
func Default() *Config {
	var cfg Config
	cfg.Store.Backend = DefaultBackend
	cfg.Store.Path = DefaultStorePath
	cfg.Store.Notebook = DefaultNotebook
	cfg.Editor.DebounceMS = DefaultDebounceMS
	cfg.Log.Level = DefaultLogLevel
	return &cfg
}

// Path returns the config file location from CALCNOTE_CONFIG, falling back
// to the XDG config directory
func Path() string {
	if env := os.Getenv("CALCNOTE_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "calcnote", "config.yaml")
}

// Load reads the configuration. A missing file at path is not an error;
// a malformed one is.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(ExpandPath(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if backend := os.Getenv("CALCNOTE_STORE"); backend != "" {
		cfg.Store.Backend = backend
	}
	if storePath := os.Getenv("CALCNOTE_STORE_PATH"); storePath != "" {
		cfg.Store.Path = storePath
	}
	if notebook := os.Getenv("CALCNOTE_NOTEBOOK"); notebook != "" {
		cfg.Store.Notebook = notebook
	}
	if ms := os.Getenv("CALCNOTE_DEBOUNCE_MS"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil {
			return nil, fmt.Errorf("invalid CALCNOTE_DEBOUNCE_MS %q: %w", ms, err)
		}
		cfg.Editor.DebounceMS = n
	}
	if level := os.Getenv("CALCNOTE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("CALCNOTE_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (expected %s or %s)", c.Store.Backend, BackendJSON, BackendSQLite)
	}
	if c.Editor.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.Editor.DebounceMS)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Debounce returns the edit debounce delay
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// Logger builds a text logger at the configured level writing to w
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
