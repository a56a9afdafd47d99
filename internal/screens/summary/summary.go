package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finzo/internal/advisor"
	"github.com/abhisek/finzo/internal/router"
	"github.com/abhisek/finzo/internal/screen"
	"github.com/abhisek/finzo/internal/sim"
	"github.com/abhisek/finzo/internal/ui/layout"
	"github.com/abhisek/finzo/internal/ui/theme"
)

// debriefReadyMsg carries the coach's debrief once generated.
type debriefReadyMsg struct {
	Debrief *advisor.Debrief
	Err     error
}

// SummaryScreen displays the final session report and the coach debrief.
type SummaryScreen struct {
	sess      sim.Session
	report    sim.Report
	reportErr error
	debriefer *advisor.Service

	debrief     *advisor.Debrief
	debriefDone bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. debriefer may be nil when no LLM is
// configured; the screen then skips the coaching section.
func New(sess sim.Session, report sim.Report, reportErr error, debriefer *advisor.Service) *SummaryScreen {
	return &SummaryScreen{
		sess:      sess,
		report:    report,
		reportErr: reportErr,
		debriefer: debriefer,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.debriefer == nil {
		s.debriefDone = true
		return nil
	}
	sess := s.sess
	svc := s.debriefer
	return func() tea.Msg {
		d, err := svc.Debrief(context.Background(), sess)
		return debriefReadyMsg{Debrief: d, Err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case debriefReadyMsg:
		s.debriefDone = true
		if msg.Err == nil {
			s.debrief = msg.Debrief
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Game complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("★ %d points", s.report.Score)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Played %s over %d %ss",
			layout.FormatClock(s.report.TimePlayedSeconds),
			s.sess.TurnIndex,
			turnLabel(s.sess.Mode))))
	b.WriteString("\n\n")

	r := s.sess.Resources
	statsLine := fmt.Sprintf("Balance: %d        Savings: %d        Debt: %d        Net worth: %d",
		r.Balance, r.Savings, r.Debt, r.NetWorth())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(s.renderDelivery(width))
	b.WriteString(s.renderDebrief(width))

	return b.String()
}

func (s *SummaryScreen) renderDelivery(width int) string {
	if s.report.Delivered {
		msg := "Score sent to your rewards page!"
		if s.report.AckMessage != "" {
			msg = s.report.AckMessage
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(msg) + "\n\n"
	}
	if s.reportErr != nil || s.report.DeliveryError != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("Could not reach the rewards page. Your score is saved here.") + "\n\n"
	}
	return ""
}

func (s *SummaryScreen) renderDebrief(width int) string {
	if s.debriefer == nil {
		return ""
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Coach says")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if !s.debriefDone {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Thinking about your game...")))
		b.WriteString("\n")
		return b.String()
	}
	if s.debrief == nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("The coach is taking a nap. Great game anyway!")))
		b.WriteString("\n")
		return b.String()
	}

	wrapped := lipgloss.NewStyle().
		Width(min(width-8, 64)).
		Foreground(theme.Text).
		Render(s.debrief.Message)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, wrapped))
	b.WriteString("\n\n")

	for _, tip := range s.debrief.Tips {
		line := lipgloss.NewStyle().
			Width(min(width-8, 64)).
			Foreground(theme.Secondary).
			Render("• " + tip)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

func turnLabel(mode sim.Mode) string {
	if mode == sim.ModeEarn {
		return "day"
	}
	return "month"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
