package game

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finzo/internal/advisor"
	"github.com/abhisek/finzo/internal/catalog"
	"github.com/abhisek/finzo/internal/router"
	"github.com/abhisek/finzo/internal/screen"
	"github.com/abhisek/finzo/internal/screens/summary"
	"github.com/abhisek/finzo/internal/sim"
	"github.com/abhisek/finzo/internal/store"
	"github.com/abhisek/finzo/internal/ui/components"
	"github.com/abhisek/finzo/internal/ui/layout"
)

// focus identifies which part of the screen receives keystrokes.
type focus int

const (
	focusList focus = iota
	focusSavings
)

// GameScreen runs one simulation session for either mode. Budget mode
// presents monthly expense choices; earn mode presents chore tasks.
type GameScreen struct {
	ctrl      *sim.Controller
	cfg       sim.Config
	sessions  store.SessionRepo
	debriefer *advisor.Service

	sess     sim.Session
	expenses []catalog.ExpenseEntry
	tasks    []catalog.TaskEntry
	picked   map[int]bool
	cursor   int
	focus    focus
	savings  components.TextInput

	errMsg      string
	startErr    string
	quitConfirm bool
	ended       bool
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// Options bundles the game screen's collaborators.
type Options struct {
	Config    sim.Config
	Events    []catalog.EventEntry
	Tasks     []catalog.TaskEntry
	Expenses  []catalog.ExpenseEntry
	Reporter  sim.Reporter
	Sessions  store.SessionRepo
	Debriefer *advisor.Service

	// Seed makes the event injector deterministic when non-zero.
	Seed uint64
}

// New creates a GameScreen. Catalogs fall back to the built-in defaults.
func New(opts Options) *GameScreen {
	expenses := opts.Expenses
	events := opts.Events
	if opts.Config.Mode == sim.ModeBudget {
		if expenses == nil {
			expenses = catalog.DefaultExpenses()
		}
		if events == nil {
			events = catalog.DefaultEvents()
		}
	}
	tasks := opts.Tasks
	if tasks == nil && opts.Config.Mode == sim.ModeEarn {
		tasks = catalog.DefaultTasks()
	}

	ctrl := sim.New(opts.Config, sim.Options{
		Events:   events,
		Tasks:    tasks,
		Seed:     opts.Seed,
		Reporter: opts.Reporter,
	})

	picked := make(map[int]bool, len(expenses))
	for i, e := range expenses {
		if e.Required {
			picked[i] = true
		}
	}

	return &GameScreen{
		ctrl:      ctrl,
		cfg:       opts.Config,
		sessions:  opts.Sessions,
		debriefer: opts.Debriefer,
		expenses:  expenses,
		tasks:     tasks,
		picked:    picked,
		savings:   components.NewTextInput("0", true, 6),
	}
}

func (g *GameScreen) Init() tea.Cmd {
	sess, err := g.ctrl.Start()
	if err != nil {
		return func() tea.Msg { return startFailedMsg{Err: err} }
	}
	g.sess = sess

	if g.sessions != nil {
		_ = g.sessions.RecordStart(context.Background(), sess.SessionID, string(sess.Mode))
	}

	return tickCmd()
}

func (g *GameScreen) Title() string {
	if g.cfg.Mode == sim.ModeEarn {
		return "Earn & Save"
	}
	return "Budget Game"
}

func (g *GameScreen) Status() layout.Status {
	return layout.Status{
		ClockRemaining: g.sess.ClockRemaining,
		Score:          g.sess.Score,
		Active:         g.sess.Phase == sim.PhaseActive || g.sess.Phase == sim.PhasePendingEvent,
	}
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	if g.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if g.sess.Phase == sim.PhasePendingEvent {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Choose"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
	}
	if g.cfg.Mode == sim.ModeBudget {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle expense"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Do task"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Tab", Description: "Savings"},
		layout.KeyHint{Key: "D", Description: "End " + g.cfg.TurnLabel},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startFailedMsg:
		g.startErr = msg.Err.Error()
		return g, nil

	case timerTickMsg:
		return g.handleTimerTick()

	case sessionEndMsg:
		return g.handleSessionEnd()

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	if g.focus == focusSavings && !g.quitConfirm {
		var cmd tea.Cmd
		g.savings, cmd = g.savings.Update(msg)
		return g, cmd
	}

	return g, nil
}

func (g *GameScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if g.ended || g.startErr != "" {
		return g, nil
	}

	sess, err := g.ctrl.Tick(1)
	if err != nil {
		return g, tickCmd()
	}
	g.sess = sess

	if sess.Phase == sim.PhaseCompleted {
		return g, func() tea.Msg { return sessionEndMsg{} }
	}
	return g, tickCmd()
}

func (g *GameScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if g.ended {
		return g, nil
	}
	g.ended = true

	report, reportErr := g.ctrl.Complete()
	sess := g.ctrl.Snapshot()

	if g.sessions != nil {
		_ = g.sessions.RecordEnd(context.Background(), report.SessionID,
			report.Score, sess.TurnIndex, report.TimePlayedSeconds, report.Delivered)
	}

	return g, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(sess, report, reportErr, g.debriefer),
		}
	}
}

func (g *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Start failure — any key goes back.
	if g.startErr != "" {
		return g, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if g.quitConfirm {
		switch key {
		case "y", "Y":
			g.quitConfirm = false
			return g, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			g.quitConfirm = false
		}
		return g, nil
	}

	if g.sess.Phase == sim.PhasePendingEvent {
		return g.handleEventKey(key)
	}

	switch key {
	case "esc":
		g.quitConfirm = true
		return g, nil
	case "tab":
		if g.focus == focusList {
			g.focus = focusSavings
			return g, g.savings.Init()
		}
		g.focus = focusList
		return g, nil
	case "d", "D":
		if g.focus == focusList {
			return g.advanceTurn()
		}
	}

	if g.focus == focusSavings {
		if key == "enter" {
			g.focus = focusList
			return g, nil
		}
		var cmd tea.Cmd
		g.savings, cmd = g.savings.Update(msg)
		return g, cmd
	}

	switch key {
	case "up", "k":
		if g.cursor > 0 {
			g.cursor--
		}
	case "down", "j":
		if g.cursor < g.listLen()-1 {
			g.cursor++
		}
	case " ", "space":
		if g.cfg.Mode == sim.ModeBudget {
			g.toggleExpense()
		}
	case "enter":
		if g.cfg.Mode == sim.ModeEarn {
			return g.completeTask()
		}
		g.toggleExpense()
	}

	return g, nil
}

func (g *GameScreen) handleEventKey(key string) (screen.Screen, tea.Cmd) {
	if g.sess.PendingEvent == nil {
		return g, nil
	}
	choices := g.sess.PendingEvent.Choices
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(choices) {
			sess, err := g.ctrl.SubmitEventChoice(choices[idx].ChoiceID)
			if err != nil {
				g.errMsg = err.Error()
				return g, nil
			}
			g.sess = sess
			g.errMsg = ""
		}
	}
	return g, nil
}

func (g *GameScreen) listLen() int {
	if g.cfg.Mode == sim.ModeEarn {
		return len(g.tasks)
	}
	return len(g.expenses)
}

func (g *GameScreen) toggleExpense() {
	if g.cursor >= len(g.expenses) {
		return
	}
	if g.expenses[g.cursor].Required {
		return
	}
	g.picked[g.cursor] = !g.picked[g.cursor]
}

func (g *GameScreen) completeTask() (screen.Screen, tea.Cmd) {
	if g.cursor >= len(g.tasks) {
		return g, nil
	}
	sess, err := g.ctrl.CompleteTask(g.tasks[g.cursor].ID)
	if err != nil {
		if errors.Is(err, sim.ErrTaskAlreadyDone) {
			g.errMsg = "Already done today!"
		} else {
			g.errMsg = err.Error()
		}
		return g, nil
	}
	g.sess = sess
	g.errMsg = ""
	return g, nil
}

func (g *GameScreen) advanceTurn() (screen.Screen, tea.Cmd) {
	savings, err := g.savings.NumericValue()
	if err != nil {
		g.errMsg = "Savings must be a number"
		return g, nil
	}

	var expenses []sim.Expense
	if g.cfg.Mode == sim.ModeBudget {
		for i, e := range g.expenses {
			if g.picked[i] {
				expenses = append(expenses, sim.Expense{Label: e.Title, Amount: e.Amount})
			}
		}
	}

	sess, err := g.ctrl.AdvanceTurn(sim.TurnInput{Expenses: expenses, Savings: savings})
	if err != nil {
		if errors.Is(err, sim.ErrBudgetDeficit) {
			g.errMsg = "That plan spends more than you have coming in. Drop an expense or save less."
		} else {
			g.errMsg = err.Error()
		}
		return g, nil
	}

	g.sess = sess
	g.errMsg = ""
	g.savings = components.NewTextInput("0", true, 6)
	g.focus = focusList
	g.cursor = 0

	if sess.Phase == sim.PhaseCompleted {
		return g, func() tea.Msg { return sessionEndMsg{} }
	}
	return g, nil
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
