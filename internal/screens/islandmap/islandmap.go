// Package islandmap lists the adventure days grouped into island regions.
package islandmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// regionSize is how many days share a region header.
const regionSize = 5

var regions = []string{
	"Palm Beach",
	"Parrot Jungle",
	"Crystal Caves",
	"Volcano Ridge",
	"Sunken Harbor",
	"Cloud Peak",
}

// DayState is how a day appears on the map.
type DayState int

const (
	StateLocked DayState = iota
	StateNext
	StateDone
)

// Icon returns the map marker for the state.
func (s DayState) Icon() string {
	switch s {
	case StateDone:
		return "✓"
	case StateNext:
		return "▶"
	default:
		return "·"
	}
}

// Label returns the state name.
func (s DayState) Label() string {
	switch s {
	case StateDone:
		return "Explored"
	case StateNext:
		return "Next up"
	default:
		return "Locked"
	}
}

// Playable reports whether a lesson can be started for the state.
func (s DayState) Playable() bool {
	return s != StateLocked
}

type rowKind int

const (
	rowRegion rowKind = iota
	rowDay
)

type row struct {
	kind   rowKind
	region int
	day    int
}

// MapScreen shows every reachable day plus a few locked ones ahead.
type MapScreen struct {
	rows         []row
	cursor       int
	scrollOffset int
	completed    map[int]bool
	next         int
	play         func(day int) tea.Cmd
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)

// New builds the map for the completed days. play starts the lesson for a
// day; next is the lowest unfinished day.
func New(completed []int, next int, play func(day int) tea.Cmd) *MapScreen {
	done := make(map[int]bool, len(completed))
	last := next
	for _, d := range completed {
		done[d] = true
		last = max(last, d)
	}

	total := max(last+regionSize, 2*regionSize)
	total = (total + regionSize - 1) / regionSize * regionSize

	s := &MapScreen{completed: done, next: next, play: play}
	for day := 1; day <= total; day++ {
		if (day-1)%regionSize == 0 {
			s.rows = append(s.rows, row{kind: rowRegion, region: (day - 1) / regionSize})
		}
		s.rows = append(s.rows, row{kind: rowDay, day: day})
		if day == next {
			s.cursor = len(s.rows) - 1
		}
	}
	if s.cursor == 0 {
		s.moveCursor(1)
	}
	return s
}

// RegionName returns the name of the region holding day.
func RegionName(day int) string {
	return regions[((day-1)/regionSize)%len(regions)]
}

// State returns how day is shown.
func (s *MapScreen) State(day int) DayState {
	switch {
	case s.completed[day]:
		return StateDone
	case day == s.next:
		return StateNext
	default:
		return StateLocked
	}
}

// SelectedDay returns the day under the cursor.
func (s *MapScreen) SelectedDay() int {
	return s.rows[s.cursor].day
}

func (s *MapScreen) Init() tea.Cmd {
	return nil
}

func (s *MapScreen) Title() string {
	return "Island Map"
}

func (s *MapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Region"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.jumpRegion(1)
		case "shift+tab":
			s.jumpRegion(-1)
		case "enter":
			day := s.SelectedDay()
			detail := newDayDetail(day, s.State(day), s.play)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		}
	}
	return s, nil
}

// moveCursor moves by delta, skipping region headers.
func (s *MapScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowDay {
			s.cursor = next
			return
		}
	}
}

// jumpRegion puts the cursor on the first day of the next or previous region.
func (s *MapScreen) jumpRegion(delta int) {
	region := (s.SelectedDay()-1)/regionSize + delta
	target := region*regionSize + 1
	for i, r := range s.rows {
		if r.kind == rowDay && r.day == target {
			s.cursor = i
			return
		}
	}
}

func (s *MapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	if top > 0 && s.rows[top-1].kind == rowRegion {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *MapScreen) View(width, height int) string {
	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		if r.kind == rowRegion {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				PaddingLeft(2).
				Render(strings.ToUpper(regions[r.region%len(regions)])))
			continue
		}
		lines = append(lines, s.renderDay(r.day, i == s.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (s *MapScreen) renderDay(day int, selected bool, width int) string {
	state := s.State(day)
	icon, _ := lesson.Flavor(day)

	nameWidth := max(width-32, 10)
	name := fmt.Sprintf("%-*s", nameWidth, lesson.Title(day))

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		style = theme.Selected
	case state == StateDone:
		style = lipgloss.NewStyle().Foreground(theme.Success)
	case state == StateLocked:
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	return fmt.Sprintf("  %s%s %s %s  %s",
		cursor,
		state.Icon(),
		icon,
		style.Render(name),
		style.Render(fmt.Sprintf("%9s", state.Label())),
	)
}
