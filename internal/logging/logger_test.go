package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("questisland", "test", "warn", &buf)

	log.Info().Msg("hidden")
	log.Warn().Int("day", 3).Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "day=3")
	assert.Contains(t, out, "app=questisland")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("questisland", "test", "loud", &buf)

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "info")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(context.Background(), New("a", "test", "info", &buf))

	log := FromContext(ctx)
	log.Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}

func TestFromContext_Missing(t *testing.T) {
	log := FromContext(context.Background())
	// Nop logger has the disabled level.
	assert.Equal(t, "disabled", log.GetLevel().String())

	log = FromContext(nil)
	assert.Equal(t, "disabled", log.GetLevel().String())
}
