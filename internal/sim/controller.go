package sim

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/finzo/internal/catalog"
)

// Reporter delivers the one-shot completion report to the external
// rewards service.
type Reporter interface {
	Send(ctx context.Context, sessionID string, score, timePlayedSeconds int) (ackMessage string, err error)
}

// Expense is one spending selection for a turn.
type Expense struct {
	Label  string
	Amount int
}

// TurnInput carries the player's decisions for closing a turn.
type TurnInput struct {
	// IncomeOverride replaces the configured income when positive. Task
	// rewards earned during the turn are always added.
	IncomeOverride int

	Expenses []Expense

	// Savings is the amount committed to savings this turn. It counts
	// against the budget like an expense but lands in savings.
	Savings int
}

// Options wires a controller's collaborators. Zero values fall back to
// the built-in catalogs, a time-based seed, and no reporter.
type Options struct {
	Events []catalog.EventEntry
	Tasks  []catalog.TaskEntry

	// Seed makes the event injector deterministic when non-zero.
	Seed uint64

	Reporter Reporter

	// ReportTimeout bounds the completion-report call so a slow service
	// can never hang the terminal transition. Default 5s.
	ReportTimeout time.Duration
}

const defaultReportTimeout = 5 * time.Second

// Controller owns one session for its lifetime. It is the single
// mutual-exclusion point: clock ticks may arrive from a timer while the
// player acts, so every operation locks, mutates, and returns a deep
// snapshot.
type Controller struct {
	mu sync.Mutex

	cfg      Config
	clock    Clock
	injector *Injector
	events   []catalog.EventEntry
	tasks    map[string]catalog.TaskEntry

	sess        Session
	started     bool
	deliveryErr error

	reporter      Reporter
	reportTimeout time.Duration
}

// New creates a controller for a single session. Config validation
// happens at Start, mirroring the player pressing "begin".
func New(cfg Config, opts Options) *Controller {
	events := opts.Events
	if events == nil {
		events = catalog.DefaultEvents()
	}

	tasks := make(map[string]catalog.TaskEntry, len(opts.Tasks))
	for _, t := range opts.Tasks {
		tasks[t.ID] = t
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	timeout := opts.ReportTimeout
	if timeout <= 0 {
		timeout = defaultReportTimeout
	}

	return &Controller{
		cfg:           cfg,
		injector:      NewInjector(seed, cfg.EventProbability, cfg.EventCutoff),
		events:        events,
		tasks:         tasks,
		reporter:      opts.Reporter,
		reportTimeout: timeout,
		sess:          Session{Phase: PhaseNotStarted, Mode: cfg.Mode, MaxTurns: cfg.MaxTurns},
	}
}

// Start validates the config, arms the clock, and activates the session.
// Calling Start on a started session fails with ErrSessionAlreadyStarted.
func (c *Controller) Start() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return c.sess.clone(), ErrSessionAlreadyStarted
	}
	if err := c.cfg.Validate(); err != nil {
		return c.sess.clone(), err
	}

	c.started = true
	c.clock.Start(c.cfg.DurationSeconds)
	c.sess = Session{
		SessionID:      uuid.NewString(),
		Mode:           c.cfg.Mode,
		MaxTurns:       c.cfg.MaxTurns,
		ClockRemaining: c.clock.Remaining(),
		Phase:          PhaseActive,
		Resources:      NewResources(c.cfg),
	}
	return c.sess.clone(), nil
}

// AdvanceTurn closes the current turn with the given decisions. It is the
// single validation gate: a projected deficit rejects the advance and the
// session stays at the same turn, giving the player a chance to revise.
func (c *Controller) AdvanceTurn(in TurnInput) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.Phase != PhaseActive {
		return c.sess.clone(), ErrSessionNotActive
	}

	income := c.cfg.Income
	if in.IncomeOverride > 0 {
		income = in.IncomeOverride
	}
	income += c.sess.EarnedThisTurn

	expenses := 0
	for _, e := range in.Expenses {
		expenses += e.Amount
	}
	savings := in.Savings
	if savings < 0 {
		savings = 0
	}

	if income-expenses-savings < 0 {
		return c.sess.clone(), ErrBudgetDeficit
	}

	res, _ := ApplyTurnBudget(c.sess.Resources, income, expenses+savings)
	res = CommitSavings(res, savings)
	res = AccrueInterest(res, c.cfg.InterestRate)
	res = RecoverGauges(res, c.cfg.GaugeRecovery)

	delta := TurnScore(c.cfg.Score, res, savings, c.cfg.SavingsGoal)

	c.sess.Resources = res
	c.sess.Score += delta
	c.sess.TurnIndex++
	c.sess.EarnedThisTurn = 0
	c.sess.ClockRemaining = c.clock.Remaining()
	c.sess.History = append(c.sess.History, TurnOutcome{
		TurnIndex:  c.sess.TurnIndex,
		Income:     income,
		Expenses:   expenses,
		Saved:      savings,
		ScoreDelta: delta,
		Resources:  res.Clone(),
	})

	if c.sess.TurnIndex >= c.cfg.MaxTurns {
		c.finish()
		return c.sess.clone(), nil
	}

	// A drawn event interrupts the upcoming turn, so the cutoff check
	// needs that turn's number, not the count of resolved turns.
	if entry := c.injector.Draw(c.sess.TurnIndex+1, c.cfg.MaxTurns, c.events); entry != nil {
		c.sess.Phase = PhasePendingEvent
		c.sess.PendingEvent = entry
	}

	return c.sess.clone(), nil
}

// CompleteTask records a reward task as done, crediting its reward as
// income for the turn in progress. Tasks are single-use per session.
func (c *Controller) CompleteTask(taskID string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.Phase == PhaseCompleted {
		return c.sess.clone(), ErrSessionClosed
	}
	if c.sess.Phase != PhaseActive {
		return c.sess.clone(), ErrSessionNotActive
	}

	task, ok := c.tasks[taskID]
	if !ok {
		return c.sess.clone(), ErrUnknownTask
	}
	for _, done := range c.sess.TasksDone {
		if done == taskID {
			return c.sess.clone(), ErrTaskAlreadyDone
		}
	}

	c.sess.EarnedThisTurn += task.Reward
	c.sess.TasksDone = append(c.sess.TasksDone, taskID)
	return c.sess.clone(), nil
}

// SubmitEventChoice resolves the pending event with the chosen response.
// Resolution is terminal: the event retires into history and control
// returns to Active.
func (c *Controller) SubmitEventChoice(choiceID string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.Phase == PhaseCompleted {
		return c.sess.clone(), ErrSessionClosed
	}
	if c.sess.Phase != PhasePendingEvent || c.sess.PendingEvent == nil {
		return c.sess.clone(), ErrNoEventPending
	}

	event := c.sess.PendingEvent
	var chosen *catalog.Choice
	for i := range event.Choices {
		if event.Choices[i].ChoiceID == choiceID {
			chosen = &event.Choices[i]
			break
		}
	}
	if chosen == nil {
		return c.sess.clone(), ErrInvalidChoice
	}

	c.sess.Resources = ApplyEventOutcome(c.sess.Resources, chosen.Delta)
	if n := len(c.sess.History); n > 0 {
		c.sess.History[n-1].Event = &EventOutcome{EventID: event.ID, ChoiceID: choiceID}
		c.sess.History[n-1].Resources = c.sess.Resources.Clone()
	}
	c.sess.PendingEvent = nil
	c.sess.Phase = PhaseActive
	return c.sess.clone(), nil
}

// Tick feeds elapsed wall-clock seconds to the session clock. Expiry
// forces completion regardless of turn progress; ticking a completed
// session is a no-op.
func (c *Controller) Tick(elapsedSeconds int) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.Phase == PhaseCompleted || c.sess.Phase == PhaseNotStarted {
		return c.sess.clone(), nil
	}

	c.sess.ClockRemaining = c.clock.Tick(elapsedSeconds)
	if c.clock.Expired() {
		c.finish()
	}
	return c.sess.clone(), nil
}

// Complete ends the session if it is still running and returns the
// completion report. Idempotent: repeated calls return the same report,
// and the final bonus is applied exactly once. A report delivery failure
// is returned as *ReportError alongside the report; the terminal state
// stands regardless.
func (c *Controller) Complete() (Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.Phase == PhaseNotStarted {
		return Report{}, ErrSessionNotActive
	}
	if c.sess.Phase != PhaseCompleted {
		c.finish()
	}
	return *c.sess.Report, c.deliveryErr
}

// Snapshot returns the current session state without mutating anything.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.clone()
}

// finish performs the single transition into Completed: final bonus,
// report construction, and the one outbound delivery attempt. Callers
// hold the lock. Guarded by the phase check, not by time ordering, so a
// clock expiry and a final-turn completion in the same tick still
// complete exactly once.
func (c *Controller) finish() {
	if c.sess.Phase == PhaseCompleted {
		return
	}

	c.sess.Phase = PhaseCompleted
	c.sess.PendingEvent = nil
	c.sess.Score += FinalBonus(c.cfg.Score, c.sess.Resources)
	c.sess.ClockRemaining = c.clock.Remaining()

	report := &Report{
		SessionID:         c.sess.SessionID,
		Score:             c.sess.Score,
		TimePlayedSeconds: c.clock.Elapsed(),
	}
	c.sess.Report = report

	if c.reporter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.reportTimeout)
	defer cancel()

	ack, err := c.reporter.Send(ctx, report.SessionID, report.Score, report.TimePlayedSeconds)
	if err != nil {
		report.DeliveryError = err.Error()
		c.deliveryErr = &ReportError{SessionID: report.SessionID, Err: err}
		return
	}
	report.Delivered = true
	report.AckMessage = ack
}
