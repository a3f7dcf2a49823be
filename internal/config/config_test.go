package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/questisland/internal/profile"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, profile.StorageKey, cfg.ProfileKey)
	assert.Equal(t, 20, cfg.SnapshotKeep)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(map[string]string{
		"QUEST_ENV":               "production",
		"QUEST_DB":                "/tmp/q.db",
		"QUEST_BANK_DIR":          "/banks",
		"QUEST_SNAPSHOT_KEEP":     "3",
		"QUEST_LLM_PROVIDER":      "gemini",
		"QUEST_GEMINI_API_KEY":    "g-key",
		"QUEST_ANTHROPIC_API_KEY": "a-key",
		"ENV":                     "ignored without prefix",
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/tmp/q.db", cfg.DBPath)
	assert.Equal(t, "/banks", cfg.BankDir)
	assert.Equal(t, 3, cfg.SnapshotKeep)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "a-key", cfg.LLM.Anthropic.APIKey)
}

func TestParse_Invalid(t *testing.T) {
	_, err := parse(map[string]string{"QUEST_SNAPSHOT_KEEP": "many"})
	assert.Error(t, err)

	_, err = parse(map[string]string{"QUEST_SNAPSHOT_KEEP": "0"})
	assert.ErrorContains(t, err, "at least 1")
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("QUEST_BANK_DIR=/from/first\nQUEST_LOG_LEVEL=debug\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("QUEST_BANK_DIR=/from/second\nQUEST_PROFILE_KEY=kid2\n"), 0o644))
	t.Setenv("QUEST_LOG_LEVEL", "warn")

	cfg, err := Load(first, second, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/from/first", cfg.BankDir, "earlier files win")
	assert.Equal(t, "kid2", cfg.ProfileKey)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over files")
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("QUEST_ENV='unterminated\n"), 0o644))

	_, err := Load(bad)
	assert.Error(t, err)
}
