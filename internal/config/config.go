// Package config reads runtime configuration from QUEST_* environment
// variables, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/questisland/internal/llm"
	"github.com/abhisek/questisland/internal/profile"
)

// App holds runtime configuration shared across commands.
type App struct {
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives logs while the TUI owns the terminal. Empty discards.
	LogFile string `env:"LOG_FILE"`

	// DBPath overrides the XDG default. The --db flag wins over both.
	DBPath string `env:"DB"`
	// BankDir holds extra bank files merged over the embedded bank.
	BankDir      string `env:"BANK_DIR"`
	ProfileKey   string `env:"PROFILE_KEY" envDefault:"quest_island_v10"`
	SnapshotKeep int    `env:"SNAPSHOT_KEEP" envDefault:"20"`

	LLM llm.Config
}

// DefaultEnvFiles are read by Load when no files are given.
var DefaultEnvFiles = []string{".env"}

// Load reads the process environment over the given .env files. Missing
// files are skipped; variables already set in the process win.
func Load(envFiles ...string) (*App, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}

	environ := map[string]string{}
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range vals {
			if _, ok := environ[k]; !ok {
				environ[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return parse(environ)
}

func parse(environ map[string]string) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: llm.EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ProfileKey == "" {
		cfg.ProfileKey = profile.StorageKey
	}
	if cfg.SnapshotKeep < 1 {
		return nil, fmt.Errorf("parse config: %sSNAPSHOT_KEEP must be at least 1, got %d", llm.EnvPrefix, cfg.SnapshotKeep)
	}
	return cfg, nil
}
