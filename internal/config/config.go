package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DisabledDB turns the save sink off when used as LOGISALES_DB, and command
// history persistence off when used as LOGISALES_HISTORY.
const DisabledDB = "off"

// Config holds process-wide settings read from the environment.
type Config struct {
	SeedPath string // empty means the built-in dataset
	DBPath   string // ":memory:" keeps saves for the life of the process
	LogFile  string // where logs go while the TUI owns the terminal
	LogLevel string
	Currency string

	// HistoryFile keeps command bar history between runs. Empty uses
	// ~/.logisales/history; "off" keeps history in memory only.
	HistoryFile string
}

// DefaultConfig returns a Config with sensible defaults: built-in seed,
// in-memory save store, info logging, Taka currency symbol.
func DefaultConfig() Config {
	return Config{
		DBPath:   ":memory:",
		LogLevel: "info",
		Currency: "৳",
	}
}

// LoadConfig loads the given .env files (".env" when none are named) and then
// reads configuration from environment variables, falling back to defaults
// for any unset values. Missing .env files are not an error; variables
// already set in the environment win over .env values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if v := os.Getenv("LOGISALES_SEED"); v != "" {
		cfg.SeedPath = v
	}
	if v := os.Getenv("LOGISALES_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LOGISALES_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOGISALES_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("LOGISALES_HISTORY"); v != "" {
		cfg.HistoryFile = v
	}
	return cfg, nil
}

// SinkEnabled reports whether saves should go to SQLite.
func (c Config) SinkEnabled() bool {
	return !strings.EqualFold(c.DBPath, DisabledDB)
}

// HistoryPath resolves where command history lives, or "" to keep it in
// memory.
func (c Config) HistoryPath() (string, error) {
	switch {
	case strings.EqualFold(c.HistoryFile, DisabledDB):
		return "", nil
	case c.HistoryFile != "":
		return c.HistoryFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".logisales", "history"), nil
}
