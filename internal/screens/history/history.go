package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finzo/internal/router"
	"github.com/abhisek/finzo/internal/screen"
	"github.com/abhisek/finzo/internal/store"
	"github.com/abhisek/finzo/internal/ui/layout"
	"github.com/abhisek/finzo/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Totals   store.Totals
	Err      error
}

// HistoryScreen displays past game sessions.
type HistoryScreen struct {
	sessions store.SessionRepo
	records  []store.SessionRecord
	totals   store.Totals
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sessions store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{sessions: sessions}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		records, err := s.sessions.Recent(ctx, 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		totals, err := s.sessions.Totals(ctx)
		if err != nil {
			return historyLoadedMsg{Sessions: records}
		}
		return historyLoadedMsg{Sessions: records, Totals: totals}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Sessions
			s.totals = msg.Totals
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Go play one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	summaryLine := fmt.Sprintf("%d games   best %d   total %d points",
		s.totals.Sessions, s.totals.BestScore, s.totals.TotalScore)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Render(summaryLine)))
	b.WriteString("\n\n")

	for i, rec := range s.records {
		dateStr := rec.StartedAt.Format("Jan 02, 2006")

		outcome := "abandoned"
		if !rec.EndedAt.IsZero() {
			outcome = fmt.Sprintf("%d pts  %s  %d turns",
				rec.Score, layout.FormatClock(rec.DurationSecs), rec.Turns)
			if rec.ReportDelivered {
				outcome += "  ✓ sent"
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-8s  %s", prefix, dateStr, rec.Mode, outcome)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if rec.EndedAt.IsZero() {
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
