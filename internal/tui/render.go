package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/trackit/internal/habit"
)

const emptyMessage = "You don't have any habits yet. Add a habit to start tracking!"

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	if a.form == formVisible {
		b.WriteString("\n")
		b.WriteString(a.renderForm())
	} else if a.saving {
		b.WriteString("\n")
		b.WriteString(a.spinner.View() + mutedStyle.Render(" saving"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.renderList())

	if a.alert != nil {
		b.WriteString("\n")
		b.WriteString(a.renderAlert())
	}

	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.helpKeys()))
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("My habits")
	if a.session.Name != "" {
		title += mutedStyle.Render("  " + a.session.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", addButtonStyle.Render("+"))
}

func (a *App) renderList() string {
	if a.loading && !a.loaded {
		return a.spinner.View() + mutedStyle.Render(" loading habits")
	}
	if len(a.habits) == 0 {
		return mutedStyle.Render(emptyMessage)
	}
	rows := make([]string, 0, len(a.habits))
	for i, h := range a.habits {
		rows = append(rows, renderHabitRow(h, a.weekDays, i == a.cursor))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if a.loading {
		out = a.spinner.View() + mutedStyle.Render(" refreshing") + "\n" + out
	}
	return out
}

// renderHabitRow draws one habit: its name above the full week, with the habit's
// days highlighted.
func renderHabitRow(h habit.Habit, weekDays []habit.WeekDay, selected bool) string {
	marker := " "
	if selected {
		marker = "▶"
	}
	name := textStyle.Render(h.Name)
	days := renderWeek(weekDays, func(d habit.WeekDay) bool { return h.HasDay(d.Index) }, -1)
	return rowStyle.Render(fmt.Sprintf("%s %s\n  %s", marker, name, days))
}

// renderWeek draws the seven day boxes. cursor < 0 hides the selector cursor.
func renderWeek(weekDays []habit.WeekDay, on func(habit.WeekDay) bool, cursor int) string {
	cells := make([]string, 0, len(weekDays))
	for i, d := range weekDays {
		style := dayOffStyle
		if on(d) {
			style = dayOnStyle
		}
		if i == cursor {
			style = style.Inherit(dayCursorStyle)
		}
		cells = append(cells, style.Render(d.Label))
	}
	return strings.Join(cells, " ")
}

func (a *App) renderForm() string {
	var b strings.Builder

	b.WriteString(a.name.View())
	b.WriteString("\n")

	cursor := -1
	if a.focus == focusDays && !a.saving {
		cursor = a.dayCursor
	}
	b.WriteString(renderWeek(a.weekDays, func(d habit.WeekDay) bool { return a.days.Has(d.Index) }, cursor))

	if match, _, ok := habit.SimilarHabit(a.name.Value(), a.habits); ok {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("similar to %q", match.Name)))
	}

	b.WriteString("\n\n")
	if a.saving {
		b.WriteString(mutedStyle.Render("cancel  ") + a.spinner.View() + mutedStyle.Render(" saving"))
		return formBusyStyle.Render(b.String())
	}
	b.WriteString(mutedStyle.Render("cancel  ") + addButtonStyle.Render("save"))
	return formStyle.Render(b.String())
}

func (a *App) renderAlert() string {
	c := alertColor(a.alert.kind)
	title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(a.alert.title)
	body := fmt.Sprintf("%s\n%s\n\n%s", title, a.alert.text, mutedStyle.Render("[enter] ok"))
	return alertStyle.BorderForeground(c).Render(body)
}
