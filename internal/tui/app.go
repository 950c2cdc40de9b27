// Package tui implements the Habits screen: the habit list, the creation form
// and the calls to the habits API behind them.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/trackit/internal/api"
	"github.com/jask/trackit/internal/habit"
)

// HabitService is the remote habits collection.
type HabitService interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	CreateHabit(ctx context.Context, d habit.Draft) (habit.Habit, error)
}

// Session is the signed-in user as supplied by the shell. The token stays with
// the HabitService; the screen only shows the name.
type Session struct {
	Name string
}

type Options struct {
	Session  Session
	WeekDays []habit.WeekDay
	Log      *zap.Logger
}

type formState string

const (
	formHidden  formState = "hidden"
	formVisible formState = "visible"
)

type formFocus int

const (
	focusName formFocus = iota
	focusDays
)

type alertKind int

const (
	alertError alertKind = iota
	alertWarning
)

// alert is the modal notice; it swallows keys until dismissed.
type alert struct {
	kind  alertKind
	title string
	text  string
}

// App is the Habits screen.
type App struct {
	ctx      context.Context
	svc      HabitService
	log      *zap.Logger
	session  Session
	weekDays []habit.WeekDay
	keys     keyMap
	help     help.Model
	spinner  spinner.Model

	habits  []habit.Habit
	cursor  int
	loading bool
	loaded  bool
	// creates counts habits appended locally; a list fetched before the
	// latest append is stale.
	creates int

	form      formState
	focus     formFocus
	name      textinput.Model
	days      habit.DaySet
	dayCursor int
	saving    bool

	alert  *alert
	status string
	width  int
}

func New(ctx context.Context, svc HabitService, opts Options) *App {
	weekDays := opts.WeekDays
	if len(weekDays) != habit.DaysPerWeek {
		weekDays = habit.WeekDays()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	name := textinput.New()
	name.Placeholder = "habit name"
	name.CharLimit = 60
	name.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Points

	return &App{
		ctx:      ctx,
		svc:      svc,
		log:      log,
		session:  opts.Session,
		weekDays: weekDays,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		habits:   []habit.Habit{},
		loading:  true,
		form:     formHidden,
		name:     name,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadHabits(), a.spinner.Tick)
}

func (a *App) loadHabits() tea.Cmd {
	creates := a.creates
	return func() tea.Msg {
		list, err := a.svc.ListHabits(a.ctx)
		if err != nil {
			return habitsLoadErrMsg{err}
		}
		return habitsLoadedMsg{habits: list, creates: creates}
	}
}

func (a *App) createHabit(d habit.Draft) tea.Cmd {
	return func() tea.Msg {
		h, err := a.svc.CreateHabit(a.ctx, d)
		if err != nil {
			return habitCreateErrMsg{err}
		}
		return habitCreatedMsg{Habit: h}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case spinner.TickMsg:
		if !a.loading && !a.saving {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case habitsLoadedMsg:
		if m.creates != a.creates {
			a.log.Debug("dropping stale habit list", zap.Int("count", len(m.habits)))
			return a, a.loadHabits()
		}
		a.loading = false
		a.loaded = true
		a.habits = m.habits
		if a.cursor >= len(a.habits) {
			a.cursor = 0
		}
		a.log.Info("habits loaded", zap.Int("count", len(a.habits)))
	case habitsLoadErrMsg:
		a.loading = false
		a.log.Warn("load habits failed", zap.Error(m.err))
		a.showAlert(alertError, "Couldn't load your habits", api.Message(m.err))
	case habitCreatedMsg:
		a.saving = false
		a.creates++
		a.habits = append(a.habits, m.Habit)
		a.resetForm()
		a.form = formHidden
		a.status = "saved " + m.Habit.Name
		a.log.Info("habit created", zap.Int("id", m.Habit.ID), zap.Ints("days", m.Habit.Days))
	case habitCreateErrMsg:
		a.saving = false
		a.form = formVisible
		a.log.Warn("create habit failed", zap.Error(m.err))
		a.showAlert(alertError, "Couldn't save your habit", api.Message(m.err))
	default:
		if a.form == formVisible && a.focus == focusName {
			var cmd tea.Cmd
			a.name, cmd = a.name.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.ForceQuit) {
		return a, tea.Quit
	}
	if a.alert != nil {
		if key.Matches(m, a.keys.Dismiss) {
			a.alert = nil
		}
		return a, nil
	}
	if a.form == formVisible {
		return a.handleFormKey(m)
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Add):
		return a, a.openForm()
	case key.Matches(m, a.keys.Reload):
		if a.loading {
			return a, nil
		}
		a.loading = true
		a.status = ""
		return a, tea.Batch(a.loadHabits(), a.spinner.Tick)
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.habits)-1 {
			a.cursor++
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.saving {
		// the request keeps running; a failure reopens the form
		if key.Matches(m, a.keys.Cancel) {
			a.closeForm()
		}
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Cancel):
		a.closeForm()
		return a, nil
	case key.Matches(m, a.keys.Save):
		return a, a.submit()
	case key.Matches(m, a.keys.NextField), key.Matches(m, a.keys.PrevField):
		return a, a.switchFocus()
	}

	if a.focus == focusName {
		var cmd tea.Cmd
		a.name, cmd = a.name.Update(m)
		return a, cmd
	}

	switch {
	case key.Matches(m, a.keys.DayLeft):
		if a.dayCursor > 0 {
			a.dayCursor--
		}
	case key.Matches(m, a.keys.DayRight):
		if a.dayCursor < habit.DaysPerWeek-1 {
			a.dayCursor++
		}
	case key.Matches(m, a.keys.ToggleDay):
		a.days.Toggle(a.weekDays[a.dayCursor].Index)
	case key.Matches(m, a.keys.DayDigit):
		i := int(m.Runes[0] - '1')
		a.dayCursor = i
		a.days.Toggle(a.weekDays[i].Index)
	}
	return a, nil
}

func (a *App) openForm() tea.Cmd {
	a.form = formVisible
	a.status = ""
	a.focus = focusName
	a.name.Focus()
	return textinput.Blink
}

// closeForm hides the form; the draft survives until a successful save.
func (a *App) closeForm() {
	a.form = formHidden
	a.name.Blur()
}

func (a *App) switchFocus() tea.Cmd {
	if a.focus == focusName {
		a.focus = focusDays
		a.name.Blur()
		return nil
	}
	a.focus = focusName
	a.name.Focus()
	return textinput.Blink
}

func (a *App) resetForm() {
	a.name.Reset()
	a.name.Blur()
	a.days.Clear()
	a.dayCursor = 0
	a.focus = focusName
}

// submit validates the draft locally and, when it passes, starts the single
// in-flight create request.
func (a *App) submit() tea.Cmd {
	a.saving = true
	d := habit.Draft{
		Name: strings.TrimSpace(a.name.Value()),
		Days: a.days.Sorted(),
	}
	if err := d.Validate(); err != nil {
		a.saving = false
		a.showAlert(alertWarning, "Check your habit", capitalize(err.Error())+".")
		return nil
	}
	a.status = ""
	return tea.Batch(a.createHabit(d), a.spinner.Tick)
}

func (a *App) showAlert(kind alertKind, title, text string) {
	a.alert = &alert{kind: kind, title: title, text: text}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// messages
type habitsLoadedMsg struct {
	habits  []habit.Habit
	creates int
}

type habitsLoadErrMsg struct{ err error }

type habitCreatedMsg struct {
	Habit habit.Habit
}

type habitCreateErrMsg struct{ err error }
