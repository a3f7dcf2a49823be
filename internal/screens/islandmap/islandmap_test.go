package islandmap

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/router"
)

func press(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestCursorStartsOnNextDay(t *testing.T) {
	s := New([]int{1, 2, 3}, 4, nil)
	if got := s.SelectedDay(); got != 4 {
		t.Errorf("selected day = %d, want 4", got)
	}
	if s.State(2) != StateDone || s.State(4) != StateNext || s.State(5) != StateLocked {
		t.Errorf("states = %v %v %v", s.State(2), s.State(4), s.State(5))
	}
}

func TestMapShowsLockedDaysAhead(t *testing.T) {
	s := New(nil, 1, nil)
	var days int
	for _, r := range s.rows {
		if r.kind == rowDay {
			days++
		}
	}
	if days != 2*regionSize {
		t.Errorf("days on a fresh map = %d, want %d", days, 2*regionSize)
	}

	s = New([]int{1, 2, 3, 4, 5, 6, 7, 12}, 8, nil)
	last := s.rows[len(s.rows)-1].day
	if last != 20 {
		t.Errorf("last day = %d, want 20", last)
	}
}

func TestNavigationSkipsRegionHeaders(t *testing.T) {
	s := New([]int{1, 2, 3, 4}, 5, nil)
	s.Update(press(tea.KeyDown))
	if got := s.SelectedDay(); got != 6 {
		t.Errorf("after down = %d, want 6", got)
	}
	s.Update(press(tea.KeyUp))
	s.Update(press(tea.KeyUp))
	if got := s.SelectedDay(); got != 4 {
		t.Errorf("after up x2 = %d, want 4", got)
	}
}

func TestRegionJump(t *testing.T) {
	s := New(nil, 1, nil)
	s.Update(press(tea.KeyTab))
	if got := s.SelectedDay(); got != regionSize+1 {
		t.Errorf("tab = %d, want %d", got, regionSize+1)
	}
	if RegionName(regionSize+1) != regions[1] {
		t.Errorf("region name = %q", RegionName(regionSize+1))
	}
}

func TestEnterOpensDetailAndPlays(t *testing.T) {
	var played int
	s := New([]int{1}, 2, func(day int) tea.Cmd {
		played = day
		return nil
	})

	_, cmd := s.Update(press(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter should open details")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	detail := push.Screen.(*DayDetailScreen)
	detail.Update(press(tea.KeyEnter))
	if played != 2 {
		t.Errorf("played day = %d, want 2", played)
	}
}

func TestLockedDayDoesNotPlay(t *testing.T) {
	called := false
	d := newDayDetail(9, StateLocked, func(int) tea.Cmd { called = true; return nil })
	d.Update(press(tea.KeyEnter))
	if called {
		t.Error("locked day should not start")
	}
}
