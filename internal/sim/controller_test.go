package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/finzo/internal/catalog"
)

// mockReporter implements Reporter and records every delivery attempt.
type mockReporter struct {
	calls []Report
	err   error
}

func (m *mockReporter) Send(_ context.Context, sessionID string, score, timePlayed int) (string, error) {
	m.calls = append(m.calls, Report{SessionID: sessionID, Score: score, TimePlayedSeconds: timePlayed})
	if m.err != nil {
		return "", m.err
	}
	return "great job", nil
}

func testConfig() Config {
	cfg := DefaultBudgetConfig()
	cfg.EventProbability = 0 // quiet by default; event tests override
	return cfg
}

func surplusTurn() TurnInput {
	return TurnInput{
		Expenses: []Expense{{Label: "rent", Amount: 1200}, {Label: "food", Amount: 450}},
		Savings:  400,
	}
}

func TestStartValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max turns", func(c *Config) { c.MaxTurns = 0 }},
		{"negative duration", func(c *Config) { c.DurationSeconds = -1 }},
		{"probability above one", func(c *Config) { c.EventProbability = 1.5 }},
		{"gauge out of range", func(c *Config) { c.Gauges = map[string]int{"mood": 140} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, Options{}).Start()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Start() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestStartTwiceFails(t *testing.T) {
	c := New(testConfig(), Options{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if _, err := c.Start(); !errors.Is(err, ErrSessionAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrSessionAlreadyStarted", err)
	}
}

func TestStartSnapshot(t *testing.T) {
	c := New(testConfig(), Options{})
	s, err := c.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.SessionID == "" {
		t.Error("session id is empty")
	}
	if s.Phase != PhaseActive {
		t.Errorf("phase = %v, want active", s.Phase)
	}
	if s.TurnIndex != 0 {
		t.Errorf("turn index = %d, want 0", s.TurnIndex)
	}
	if s.ClockRemaining != 600 {
		t.Errorf("clock remaining = %d, want 600", s.ClockRemaining)
	}
}

func TestAdvanceBeforeStart(t *testing.T) {
	c := New(testConfig(), Options{})
	if _, err := c.AdvanceTurn(surplusTurn()); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("AdvanceTurn() error = %v, want ErrSessionNotActive", err)
	}
}

func TestDeficitGate(t *testing.T) {
	c := New(testConfig(), Options{})
	c.Start()

	s, err := c.AdvanceTurn(TurnInput{
		IncomeOverride: 10000,
		Expenses:       []Expense{{Label: "everything", Amount: 12000}},
	})
	if !errors.Is(err, ErrBudgetDeficit) {
		t.Fatalf("AdvanceTurn() error = %v, want ErrBudgetDeficit", err)
	}
	if s.TurnIndex != 0 {
		t.Errorf("turn index = %d after rejected advance, want 0", s.TurnIndex)
	}
	if s.Phase != PhaseActive {
		t.Errorf("phase = %v after rejected advance, want active", s.Phase)
	}

	// Savings commitment counts against the budget too.
	_, err = c.AdvanceTurn(TurnInput{
		IncomeOverride: 1000,
		Expenses:       []Expense{{Label: "rent", Amount: 900}},
		Savings:        200,
	})
	if !errors.Is(err, ErrBudgetDeficit) {
		t.Errorf("over-committed savings error = %v, want ErrBudgetDeficit", err)
	}
}

func TestTurnBoundaryEffects(t *testing.T) {
	cfg := testConfig()
	cfg.StartingDebt = 3000
	cfg.InterestRate = 0.02
	cfg.Gauges = map[string]int{"mood": 50}
	cfg.GaugeRecovery = 5

	c := New(cfg, Options{})
	c.Start()

	s, err := c.AdvanceTurn(surplusTurn())
	if err != nil {
		t.Fatalf("AdvanceTurn() error = %v", err)
	}

	if s.TurnIndex != 1 {
		t.Errorf("turn index = %d, want 1", s.TurnIndex)
	}
	// 2000 + (3000 - 1650 - 400) = 2950
	if s.Resources.Balance != 2950 {
		t.Errorf("balance = %d, want 2950", s.Resources.Balance)
	}
	if s.Resources.Savings != 400 {
		t.Errorf("savings = %d, want 400", s.Resources.Savings)
	}
	if s.Resources.Debt != 3060 {
		t.Errorf("debt = %d, want 3060 after one accrual", s.Resources.Debt)
	}
	if s.Resources.Gauges["mood"] != 55 {
		t.Errorf("mood = %d, want 55 after recovery", s.Resources.Gauges["mood"])
	}
	if len(s.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(s.History))
	}
	if s.History[0].Saved != 400 || s.History[0].TurnIndex != 1 {
		t.Errorf("history record = %+v", s.History[0])
	}
}

func TestHappyPathFullSession(t *testing.T) {
	rep := &mockReporter{}
	c := New(testConfig(), Options{Reporter: rep})
	c.Start()

	var s Session
	var err error
	for i := 0; i < 6; i++ {
		s, err = c.AdvanceTurn(surplusTurn())
		if err != nil {
			t.Fatalf("turn %d: AdvanceTurn() error = %v", i+1, err)
		}
	}

	if s.Phase != PhaseCompleted {
		t.Fatalf("phase = %v after max turns, want completed", s.Phase)
	}
	if s.TurnIndex != 6 {
		t.Errorf("turn index = %d, want 6", s.TurnIndex)
	}
	if s.Score < 0 {
		t.Errorf("score = %d, want non-negative", s.Score)
	}
	if s.Report == nil || !s.Report.Delivered {
		t.Fatalf("report = %+v, want delivered", s.Report)
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times, want exactly 1", len(rep.calls))
	}

	// The session is closed: further turns are rejected.
	if _, err := c.AdvanceTurn(surplusTurn()); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("AdvanceTurn after completion error = %v, want ErrSessionNotActive", err)
	}
}

func TestTurnIndexNeverExceedsMaxTurns(t *testing.T) {
	c := New(testConfig(), Options{})
	c.Start()

	for i := 0; i < 20; i++ {
		c.AdvanceTurn(surplusTurn())
	}
	if s := c.Snapshot(); s.TurnIndex > s.MaxTurns {
		t.Errorf("turn index %d exceeded max %d", s.TurnIndex, s.MaxTurns)
	}
}

func TestForcedCompletionByClock(t *testing.T) {
	rep := &mockReporter{}
	c := New(testConfig(), Options{Reporter: rep})
	c.Start()
	c.AdvanceTurn(surplusTurn())

	s, err := c.Tick(600)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if s.Phase != PhaseCompleted {
		t.Fatalf("phase = %v after clock expiry, want completed", s.Phase)
	}
	if s.TurnIndex != 1 {
		t.Errorf("turn index = %d, want 1 (completion forced mid-session)", s.TurnIndex)
	}
	if s.ClockRemaining != 0 {
		t.Errorf("clock remaining = %d, want 0", s.ClockRemaining)
	}
	if s.Report == nil || s.Report.TimePlayedSeconds != 600 {
		t.Errorf("report = %+v, want time played 600", s.Report)
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times, want 1", len(rep.calls))
	}

	// Ticking a completed session stays a no-op and never re-reports.
	if _, err := c.Tick(10); err != nil {
		t.Errorf("Tick after completion error = %v", err)
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times after extra tick, want 1", len(rep.calls))
	}
}

func TestFinalTurnQuietAtDefaultCutoff(t *testing.T) {
	events := []catalog.EventEntry{{
		ID:    "storm",
		Title: "A storm damaged the roof",
		Cost:  300,
		Choices: []catalog.Choice{
			{ChoiceID: "pay", Label: "Pay for repairs", Delta: catalog.Delta{Balance: -300}},
		},
	}}

	cfg := testConfig()
	cfg.MaxTurns = 2
	cfg.EventProbability = 1
	cfg.EventCutoff = 1

	c := New(cfg, Options{Events: events, Seed: 1})
	c.Start()

	// Closing turn 1 would let a drawn event interrupt turn 2 — the
	// final turn, which the cutoff keeps quiet.
	s, err := c.AdvanceTurn(surplusTurn())
	if err != nil {
		t.Fatalf("AdvanceTurn() error = %v", err)
	}
	if s.Phase != PhaseActive || s.PendingEvent != nil {
		t.Fatalf("phase = %v, pending = %v; want quiet final turn", s.Phase, s.PendingEvent)
	}

	// Without a cutoff the same draw interrupts the final turn.
	cfg.EventCutoff = 0
	c = New(cfg, Options{Events: events, Seed: 1})
	c.Start()
	s, err = c.AdvanceTurn(surplusTurn())
	if err != nil {
		t.Fatalf("AdvanceTurn() error = %v", err)
	}
	if s.Phase != PhasePendingEvent {
		t.Errorf("phase = %v with cutoff 0, want pending event", s.Phase)
	}
}

func TestEventGating(t *testing.T) {
	cfg := testConfig()
	cfg.EventProbability = 1
	events := []catalog.EventEntry{{
		ID:    "storm",
		Title: "A storm damaged the roof",
		Cost:  300,
		Choices: []catalog.Choice{
			{ChoiceID: "pay", Label: "Pay for repairs", Delta: catalog.Delta{Balance: -300}},
			{ChoiceID: "wait", Label: "Wait it out", Delta: catalog.Delta{Gauges: map[string]int{"mood": -20}}},
		},
	}}

	c := New(cfg, Options{Events: events, Seed: 1})
	c.Start()

	s, err := c.AdvanceTurn(surplusTurn())
	if err != nil {
		t.Fatalf("AdvanceTurn() error = %v", err)
	}
	if s.Phase != PhasePendingEvent || s.PendingEvent == nil {
		t.Fatalf("phase = %v, pending = %v; want pending event", s.Phase, s.PendingEvent)
	}

	// Turns cannot advance while an event is pending.
	if _, err := c.AdvanceTurn(surplusTurn()); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("AdvanceTurn during event error = %v, want ErrSessionNotActive", err)
	}

	// Unknown choices leave state untouched.
	s, err = c.SubmitEventChoice("run-away")
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("SubmitEventChoice(unknown) error = %v, want ErrInvalidChoice", err)
	}
	if s.Phase != PhasePendingEvent {
		t.Errorf("phase = %v after invalid choice, want pending", s.Phase)
	}

	balanceBefore := s.Resources.Balance
	s, err = c.SubmitEventChoice("pay")
	if err != nil {
		t.Fatalf("SubmitEventChoice(pay) error = %v", err)
	}
	if s.Phase != PhaseActive {
		t.Errorf("phase = %v after resolution, want active", s.Phase)
	}
	if s.PendingEvent != nil {
		t.Error("pending event not cleared after resolution")
	}
	if s.Resources.Balance != balanceBefore-300 {
		t.Errorf("balance = %d, want %d", s.Resources.Balance, balanceBefore-300)
	}
	if s.History[0].Event == nil || s.History[0].Event.ChoiceID != "pay" {
		t.Errorf("history event = %+v, want resolved pay", s.History[0].Event)
	}

	// Resolution is terminal.
	if _, err := c.SubmitEventChoice("pay"); !errors.Is(err, ErrNoEventPending) {
		t.Errorf("re-resolving error = %v, want ErrNoEventPending", err)
	}
}

func TestSubmitChoiceWithoutEvent(t *testing.T) {
	c := New(testConfig(), Options{})
	c.Start()
	if _, err := c.SubmitEventChoice("pay"); !errors.Is(err, ErrNoEventPending) {
		t.Errorf("SubmitEventChoice() error = %v, want ErrNoEventPending", err)
	}
}

func TestCompleteTask(t *testing.T) {
	cfg := DefaultEarnConfig()
	cfg.EventProbability = 0
	tasks := []catalog.TaskEntry{
		{ID: "lawn", Title: "Mow the lawn", Reward: 15},
		{ID: "dishes", Title: "Wash the dishes", Reward: 5},
	}

	c := New(cfg, Options{Tasks: tasks})
	c.Start()

	s, err := c.CompleteTask("lawn")
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}
	if s.EarnedThisTurn != 15 {
		t.Errorf("earned = %d, want 15", s.EarnedThisTurn)
	}

	if _, err := c.CompleteTask("lawn"); !errors.Is(err, ErrTaskAlreadyDone) {
		t.Errorf("repeat task error = %v, want ErrTaskAlreadyDone", err)
	}
	if _, err := c.CompleteTask("rob-a-bank"); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("unknown task error = %v, want ErrUnknownTask", err)
	}

	// Task rewards are credited as income at turn close.
	s, err = c.AdvanceTurn(TurnInput{Savings: 15})
	if err != nil {
		t.Fatalf("AdvanceTurn() error = %v", err)
	}
	// 20 + (5 allowance + 15 earned - 15 saved) = 25
	if s.Resources.Balance != 25 {
		t.Errorf("balance = %d, want 25", s.Resources.Balance)
	}
	if s.EarnedThisTurn != 0 {
		t.Errorf("earned = %d after turn close, want 0", s.EarnedThisTurn)
	}
}

func TestCompleteIdempotent(t *testing.T) {
	rep := &mockReporter{}
	c := New(testConfig(), Options{Reporter: rep})
	c.Start()
	c.AdvanceTurn(surplusTurn())

	first, err := c.Complete()
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	second, err := c.Complete()
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}

	if first != second {
		t.Errorf("reports differ:\n  first  %+v\n  second %+v", first, second)
	}
	if s := c.Snapshot(); s.Score != first.Score {
		t.Errorf("score changed after repeated Complete: %d vs %d", s.Score, first.Score)
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times, want 1", len(rep.calls))
	}
}

func TestCompleteBeforeStart(t *testing.T) {
	c := New(testConfig(), Options{})
	if _, err := c.Complete(); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("Complete() error = %v, want ErrSessionNotActive", err)
	}
}

func TestReportFailureDoesNotReopenSession(t *testing.T) {
	rep := &mockReporter{err: errors.New("service down")}
	c := New(testConfig(), Options{Reporter: rep})
	c.Start()

	report, err := c.Complete()
	var re *ReportError
	if !errors.As(err, &re) {
		t.Fatalf("Complete() error = %v, want *ReportError", err)
	}
	if report.Delivered {
		t.Error("report marked delivered despite failure")
	}
	if report.DeliveryError == "" {
		t.Error("delivery error not recorded on report")
	}
	if s := c.Snapshot(); s.Phase != PhaseCompleted {
		t.Errorf("phase = %v after failed delivery, want completed", s.Phase)
	}

	// The failure is surfaced again for telemetry, but never re-sent.
	if _, err := c.Complete(); !errors.As(err, &re) {
		t.Errorf("second Complete() error = %v, want same *ReportError", err)
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times, want 1", len(rep.calls))
	}
}

func TestGaugeBoundsAcrossSession(t *testing.T) {
	cfg := testConfig()
	cfg.EventProbability = 1
	cfg.EventCutoff = 0
	events := []catalog.EventEntry{{
		ID: "swing", Title: "Swing", Repeatable: true,
		Choices: []catalog.Choice{
			{ChoiceID: "up", Label: "Up", Delta: catalog.Delta{Gauges: map[string]int{"mood": 90, "energy": -90}}},
		},
	}}

	c := New(cfg, Options{Events: events, Seed: 3})
	c.Start()

	for i := 0; i < 6; i++ {
		s, err := c.AdvanceTurn(surplusTurn())
		if err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
		if s.Phase == PhasePendingEvent {
			s, err = c.SubmitEventChoice("up")
			if err != nil {
				t.Fatalf("turn %d resolve: %v", i+1, err)
			}
		}
		for name, v := range s.Resources.Gauges {
			if v < 0 || v > GaugeMax {
				t.Fatalf("gauge %q = %d, outside [0, %d]", name, v, GaugeMax)
			}
		}
		if s.Resources.Savings < 0 || s.Resources.Debt < 0 {
			t.Fatalf("savings/debt went negative: %+v", s.Resources)
		}
	}
}

func TestScoreMonotonicallyNonDecreasing(t *testing.T) {
	c := New(testConfig(), Options{})
	c.Start()

	prev := 0
	for i := 0; i < 6; i++ {
		s, err := c.AdvanceTurn(TurnInput{Expenses: []Expense{{Label: "all", Amount: 2999}}})
		if err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
		if s.Score < prev {
			t.Fatalf("score decreased: %d -> %d", prev, s.Score)
		}
		prev = s.Score
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	c := New(testConfig(), Options{})
	c.Start()
	s, _ := c.AdvanceTurn(surplusTurn())

	s.Resources.Gauges["mood"] = 0
	s.History[0].Saved = 999

	fresh := c.Snapshot()
	if fresh.Resources.Gauges["mood"] == 0 {
		t.Error("snapshot gauge map aliases engine state")
	}
	if fresh.History[0].Saved == 999 {
		t.Error("snapshot history aliases engine state")
	}
}
