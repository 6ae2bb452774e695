package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/divijg19/todo/internal/storage"
)

const (
	EnvDBPath  = "TODO_DB"
	EnvVerbose = "TODO_VERBOSE"
)

// Config holds entry-point settings. Command-line flags override it.
type Config struct {
	DBPath  string
	Verbose bool
}

// Load reads defaults from the environment through lookup.
// A nil lookup uses os.LookupEnv.
func Load(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Config{DBPath: storage.DefaultDBPath}

	if v, ok := lookup(EnvDBPath); ok && strings.TrimSpace(v) != "" {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvVerbose); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Verbose = b
		}
	}
	return cfg
}

// LogLevel is Debug when verbose and Warn otherwise.
func (c Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
