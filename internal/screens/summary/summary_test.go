package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finzo/internal/advisor"
	"github.com/abhisek/finzo/internal/sim"
)

func testSession() sim.Session {
	return sim.Session{
		SessionID: "sess-test",
		Mode:      sim.ModeBudget,
		Phase:     sim.PhaseCompleted,
		TurnIndex: 6,
		Resources: sim.Resources{
			Balance: 1200,
			Savings: 2400,
			Debt:    900,
			Gauges:  map[string]int{"mood": 70, "health": 85},
		},
	}
}

func testReport() sim.Report {
	return sim.Report{
		SessionID:         "sess-test",
		Score:             74,
		TimePlayedSeconds: 412,
		Delivered:         true,
		AckMessage:        "Nice work, saver!",
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSession(), testReport(), nil, nil)
	if s.Title() != "Game Over" {
		t.Errorf("Title = %q, want %q", s.Title(), "Game Over")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSession(), testReport(), nil, nil)
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "74 points") {
		t.Errorf("view missing score, got:\n%s", view)
	}
	if !strings.Contains(view, "6:52") {
		t.Errorf("view missing play time, got:\n%s", view)
	}
	if !strings.Contains(view, "Nice work, saver!") {
		t.Errorf("view missing ack message, got:\n%s", view)
	}
}

func TestSummaryScreen_DeliveryFailureMessage(t *testing.T) {
	report := testReport()
	report.Delivered = false
	report.AckMessage = ""
	report.DeliveryError = "service unavailable"
	s := New(testSession(), report, errors.New("service unavailable"), nil)

	view := s.View(80, 24)
	if !strings.Contains(view, "Could not reach the rewards page") {
		t.Errorf("view missing delivery failure note, got:\n%s", view)
	}
}

func TestSummaryScreen_NoDebrieferSkipsCoach(t *testing.T) {
	s := New(testSession(), testReport(), nil, nil)
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no command from Init without a debriefer")
	}
	if strings.Contains(s.View(80, 24), "Coach says") {
		t.Error("expected no coach section without a debriefer")
	}
}

func TestSummaryScreen_DebriefLifecycle(t *testing.T) {
	svc := advisor.NewService(advisor.NewMockProvider(), 0)
	s := New(testSession(), testReport(), nil, svc)

	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected a command from Init with a debriefer")
	}
	if !strings.Contains(s.View(80, 24), "Thinking about your game") {
		t.Error("expected pending coach message before debrief arrives")
	}

	s.Update(debriefReadyMsg{Debrief: &advisor.Debrief{
		Message: "You kept your savings growing every month.",
		Tips:    []string{"Try paying off debt sooner."},
	}})

	view := s.View(80, 24)
	if !strings.Contains(view, "savings growing") {
		t.Errorf("view missing debrief message, got:\n%s", view)
	}
	if !strings.Contains(view, "paying off debt") {
		t.Errorf("view missing debrief tip, got:\n%s", view)
	}
}

func TestSummaryScreen_DebriefFailureFallback(t *testing.T) {
	svc := advisor.NewService(advisor.NewMockProvider(), 0)
	s := New(testSession(), testReport(), nil, svc)

	s.Update(debriefReadyMsg{Err: errors.New("provider down")})

	if !strings.Contains(s.View(80, 24), "taking a nap") {
		t.Error("expected fallback coach message after debrief failure")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSession(), testReport(), nil, nil)
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Errorf("expected a command on key %q (pop)", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSession(), testReport(), nil, nil)
	if hints := s.KeyHints(); len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(hints))
	}
}
