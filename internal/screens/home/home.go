package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finzo/internal/advisor"
	"github.com/abhisek/finzo/internal/catalog"
	"github.com/abhisek/finzo/internal/router"
	"github.com/abhisek/finzo/internal/screen"
	"github.com/abhisek/finzo/internal/screens/game"
	"github.com/abhisek/finzo/internal/screens/history"
	"github.com/abhisek/finzo/internal/sim"
	"github.com/abhisek/finzo/internal/store"
	"github.com/abhisek/finzo/internal/ui/components"
	"github.com/abhisek/finzo/internal/ui/theme"
)

const logo = `
 ███████╗██╗███╗   ██╗███████╗ ██████╗
 ██╔════╝██║████╗  ██║╚══███╔╝██╔═══██╗
 █████╗  ██║██╔██╗ ██║  ███╔╝ ██║   ██║
 ██╔══╝  ██║██║╚██╗██║ ███╔╝  ██║   ██║
 ██║     ██║██║ ╚████║███████╗╚██████╔╝
 ╚═╝     ╚═╝╚═╝  ╚═══╝╚══════╝ ╚═════╝`

// Deps wires the collaborators every game launched from home needs.
type Deps struct {
	Sessions  store.SessionRepo
	Reporter  sim.Reporter
	Debriefer *advisor.Service
	Events    []catalog.EventEntry
	Tasks     []catalog.TaskEntry
	Expenses  []catalog.ExpenseEntry

	// Seed makes the event injector deterministic when non-zero.
	Seed uint64
}

// GameOptions assembles a game screen's collaborators for one run.
func GameOptions(deps Deps, cfg sim.Config) game.Options {
	return game.Options{
		Config:    cfg,
		Events:    deps.Events,
		Tasks:     deps.Tasks,
		Expenses:  deps.Expenses,
		Reporter:  deps.Reporter,
		Sessions:  deps.Sessions,
		Debriefer: deps.Debriefer,
		Seed:      deps.Seed,
	}
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu   components.Menu
	totals store.Totals
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	var totals store.Totals
	if deps.Sessions != nil {
		totals, _ = deps.Sessions.Totals(context.Background())
	}

	launch := func(cfg sim.Config) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: game.New(GameOptions(deps, cfg))}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "BUDGET GAME", Action: launch(sim.DefaultBudgetConfig())},
		{Label: "EARN & SAVE", Action: launch(sim.DefaultEarnConfig())},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Sessions)}
			}
		}, Disabled: deps.Sessions == nil},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		totals: totals,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(logo))

	sections = append(sections, theme.Subtitle.Render("Learn money by playing with it"))

	if h.totals.Sessions > 0 {
		stats := fmt.Sprintf("%d games played   ★ best score %d",
			h.totals.Sessions, h.totals.BestScore)
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(stats))
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
