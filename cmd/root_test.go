package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd(t *testing.T, db string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	if db != "" {
		require.NoError(t, c.Flags().Set("db", db))
	}
	return c
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag", "quest.db")
	configured := filepath.Join(dir, "env", "quest.db")

	got, err := resolveDBPath(newFlagCmd(t, flag), configured)
	require.NoError(t, err)
	assert.Equal(t, flag, got)
	assert.DirExists(t, filepath.Dir(flag))

	got, err = resolveDBPath(newFlagCmd(t, ""), configured)
	require.NoError(t, err)
	assert.Equal(t, configured, got)
	assert.DirExists(t, filepath.Dir(configured))
}

func TestLoadBank(t *testing.T) {
	base, err := loadBank("")
	require.NoError(t, err)

	_, err = loadBank(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.Positive(t, base.Len())
}
