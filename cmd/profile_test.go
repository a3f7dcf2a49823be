package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/game"
	"github.com/abhisek/questisland/internal/store"
)

func newTestGame(t *testing.T) *game.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	b, err := bank.Default()
	require.NoError(t, err)
	return game.NewService(st.ProfileRepo(), st.EventRepo(), b)
}

func TestProfileExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestGame(t)
	p, err := src.Login(ctx)
	require.NoError(t, err)
	p, err = src.Rename(ctx, p, "Leo")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exportProfile(ctx, src, &buf))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	dst := newTestGame(t)
	got, err := importProfile(ctx, dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, "Leo", got.Name)
	assert.Equal(t, p.GameSeed, got.GameSeed)
	assert.Equal(t, p.Streak, got.Streak)

	loaded, err := dst.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Leo", loaded.Name)
}

func TestProfileImport_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestGame(t)
	p, err := svc.Login(ctx)
	require.NoError(t, err)
	_, err = svc.Rename(ctx, p, "Ada")
	require.NoError(t, err)

	_, err = importProfile(ctx, svc, strings.NewReader(`{"version": 42}`))
	require.Error(t, err)

	loaded, err := svc.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Name, "current profile untouched")
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("yes\n"), &out, "Sure?"))
	assert.Contains(t, out.String(), "Sure?")
	assert.False(t, confirm(strings.NewReader("y\n"), &out, "Sure?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Sure?"))
}
