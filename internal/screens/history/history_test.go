package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/game"
	"github.com/abhisek/questisland/internal/store"
)

type fakeStats struct {
	stats game.Stats
	err   error
}

func (f fakeStats) Stats(context.Context) (game.Stats, error) { return f.stats, f.err }

func event(day int, payload string) store.CompletionEvent {
	return store.CompletionEvent{
		CompletionEventData: store.CompletionEventData{
			Day: day, Points: 100 + day*5, Questions: 6, Correct: 5, Mistakes: 1, Seconds: 75,
			Payload: json.RawMessage(payload),
		},
		Timestamp: time.Date(2026, 5, day, 18, 0, 0, 0, time.UTC),
	}
}

func loaded(t *testing.T, src StatsSource) *HistoryScreen {
	t.Helper()
	s := New(src)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_NewestFirst(t *testing.T) {
	s := loaded(t, fakeStats{stats: game.Stats{
		CompletedDays: 2,
		History:       []store.CompletionEvent{event(1, `{}`), event(2, `{"reward":"Unicorn","newCards":["speed_runner"]}`)},
	}})

	view := s.View(120, 40)
	if strings.Index(view, "May 02") > strings.Index(view, "May 01") {
		t.Error("expected the latest day first")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 40)
	if !strings.Contains(view, "Chest: Unicorn") {
		t.Error("expanded row should list the chest reward")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, fakeStats{})
	if view := s.View(80, 24); !strings.Contains(view, "No days explored yet") {
		t.Errorf("empty view = %q", view)
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, fakeStats{err: errors.New("db locked")})
	if view := s.View(80, 24); !strings.Contains(view, "db locked") {
		t.Error("error not shown")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, fakeStats{stats: game.Stats{History: []store.CompletionEvent{event(1, ``), event(2, ``)}}})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd == nil {
		t.Error("esc should pop")
	}
}
