package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finzo/internal/sim"
	"github.com/abhisek/finzo/internal/ui/components"
	"github.com/abhisek/finzo/internal/ui/theme"
)

func (g *GameScreen) View(width, height int) string {
	if g.startErr != "" {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not start the game:\n\n" + g.startErr + "\n\nPress any key to go back")
	}

	if g.quitConfirm {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Text).
			Render("End the game early?\n\nYour score so far will be kept.\n\n[Y]es    [N]o")
	}

	if g.sess.Phase == sim.PhasePendingEvent && g.sess.PendingEvent != nil {
		return g.renderEventModal(width, height)
	}

	left := g.renderResources(width / 2)
	right := g.renderChoices(width - width/2 - 2)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d of %d", titleCase(g.cfg.TurnLabel), g.sess.TurnIndex+1, g.sess.MaxTurns)))
	b.WriteString("\n\n")
	b.WriteString(body)

	if g.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(g.errMsg))
	}

	return b.String()
}

func (g *GameScreen) renderResources(width int) string {
	r := g.sess.Resources
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render("Your money") + "\n\n")
	b.WriteString(moneyLine("Balance", r.Balance))
	b.WriteString(moneyLine("Savings", r.Savings))
	if g.cfg.Mode == sim.ModeBudget {
		b.WriteString(moneyLine("Debt", -r.Debt))
	}
	b.WriteString(moneyLine("Net worth", r.NetWorth()))
	if g.cfg.Mode == sim.ModeEarn && g.sess.EarnedThisTurn > 0 {
		b.WriteString(moneyLine("Earned today", g.sess.EarnedThisTurn))
	}

	if len(r.Gauges) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("How you feel") + "\n\n")
		for _, name := range sortedGaugeNames(r.Gauges) {
			bar := components.NewProgressBar(
				padRight(titleCase(name), 8),
				float64(r.Gauges[name])/float64(sim.GaugeMax),
				true, width-4)
			b.WriteString(bar.View() + "\n")
		}
	}

	b.WriteString("\n" + theme.Subtitle.Render("Save this "+g.cfg.TurnLabel) + "\n\n")
	savingsView := g.savings.View()
	if g.focus == focusSavings {
		savingsView = theme.Selected.Render("▸ ") + savingsView
	} else {
		savingsView = "  " + savingsView
	}
	b.WriteString(savingsView + "\n")
	if g.cfg.SavingsGoal > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  goal: %d per %s", g.cfg.SavingsGoal, g.cfg.TurnLabel)) + "\n")
	}

	return theme.Card.Width(width).Render(b.String())
}

func (g *GameScreen) renderChoices(width int) string {
	var b strings.Builder

	if g.cfg.Mode == sim.ModeEarn {
		b.WriteString(theme.Subtitle.Render("Chores & tasks") + "\n\n")
		done := make(map[string]bool, len(g.sess.TasksDone))
		for _, id := range g.sess.TasksDone {
			done[id] = true
		}
		for i, t := range g.tasks {
			mark := "[ ]"
			style := theme.Unselected
			if done[t.ID] {
				mark = "[✓]"
				style = theme.Gain
			}
			line := fmt.Sprintf("%s %s  +%d", mark, t.Title, t.Reward)
			if i == g.cursor && g.focus == focusList {
				line = theme.Selected.Render("▸ " + line)
			} else {
				line = "  " + style.Render(line)
			}
			b.WriteString(line + "\n")
		}
	} else {
		b.WriteString(theme.Subtitle.Render("This month's spending") + "\n\n")
		total := 0
		for i, e := range g.expenses {
			mark := "[ ]"
			if g.picked[i] {
				mark = "[x]"
				total += e.Amount
			}
			label := e.Title
			if e.Required {
				label += " (must pay)"
			}
			line := fmt.Sprintf("%s %s  %d", mark, label, e.Amount)
			if i == g.cursor && g.focus == focusList {
				line = theme.Selected.Render("▸ " + line)
			} else {
				line = "  " + theme.Unselected.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  total %d of %d income", total, g.cfg.Income)) + "\n")
	}

	return theme.Card.Width(width).Render(b.String())
}

func (g *GameScreen) renderEventModal(width, height int) string {
	event := g.sess.PendingEvent

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Surprise!") + "\n\n")
	b.WriteString(theme.Body.Render(event.Title) + "\n")
	if event.Cost > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("It could cost you %d.", event.Cost)) + "\n")
	}
	b.WriteString("\n")
	for i, c := range event.Choices {
		b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %d. %s", i+1, c.Label)) + "\n")
	}

	card := theme.Card.Width(min(width-8, 60)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func moneyLine(label string, amount int) string {
	style := theme.Body
	if amount < 0 {
		style = theme.Loss
	}
	return fmt.Sprintf("%s %s\n",
		theme.Hint.Render(padRight(label, 12)),
		style.Render(fmt.Sprintf("%d", amount)))
}

func sortedGaugeNames(gauges map[string]int) []string {
	names := make([]string, 0, len(gauges))
	for name := range gauges {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
