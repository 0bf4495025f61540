package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/stillpoint/internal/auth"
	"github.com/jask/stillpoint/internal/config"
	"github.com/jask/stillpoint/internal/database"
	"github.com/jask/stillpoint/internal/database/repository"
	"github.com/jask/stillpoint/internal/logging"
	"github.com/jask/stillpoint/internal/service"
	"github.com/jask/stillpoint/internal/timer"
)

// App is the Bubble Tea model around the meditation timer.
type App struct {
	ctx      context.Context
	services Services
	session  auth.Authenticator
	log      logrus.FieldLogger
	tz       *time.Location
	now      func() time.Time

	timer     timer.Timer
	startedAt time.Time // start of the sitting the counter belongs to

	state    appState
	showHome bool
	keys     keyMap
	help     help.Model
	status   string
	err      error
	signedIn bool
	totals   *repository.Totals
	width    int
	height   int
	quitting bool
}

// Services holds optional collaborators. A nil Journal disables recording.
type Services struct {
	Journal *service.JournalService
}

type appState string

const (
	viewTimer appState = "timer"
	viewHome  appState = "home"
)

func New(ctx context.Context, cfg config.Config, services Services, session auth.Authenticator, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	a := &App{
		ctx:      ctx,
		services: services,
		session:  session,
		log:      logging.Get("tui"),
		tz:       tz,
		now:      database.Now,
		state:    viewTimer,
		showHome: cfg.UI.ShowHome,
		keys:     newKeyMap(cfg.UI.ShowHome),
		help:     help.New(),
	}
	if a.showHome {
		a.state = viewHome
	}
	a.setSignedIn(session != nil && session.SignedIn())
	return a
}

// setSignedIn only offers sign-out while a session exists.
func (a *App) setSignedIn(v bool) {
	a.signedIn = v
	a.keys.SignOut.SetEnabled(a.showHome && v)
}

func (a *App) Init() tea.Cmd {
	if a.showHome {
		return a.loadTotals()
	}
	return nil
}

// Elapsed exposes the counter, mainly for callers embedding the model.
func (a *App) Elapsed() int { return a.timer.Elapsed() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil

	case tea.KeyMsg:
		if a.quitting {
			return a, nil
		}
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, a.quit()
		case key.Matches(m, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		}
		if a.state == viewHome {
			return a.handleHomeKey(m)
		}
		return a.handleTimerKey(m)

	case TickMsg:
		if a.timer.Tick(m.ID) {
			return a, a.tick()
		}
		return a, nil

	case sittingSavedMsg:
		if m.final {
			return a, tea.Quit
		}
		if a.quitting {
			return a, nil
		}
		a.err = nil
		a.status = fmt.Sprintf("saved %s sitting from %s", timer.Format(m.ElapsedSeconds), m.StartedAt.In(a.tz).Format("15:04"))
		return a, a.loadTotals()

	case totalsMsg:
		t := repository.Totals(m)
		a.totals = &t
		return a, nil

	case signedOutMsg:
		if m.ok {
			a.setSignedIn(false)
			a.status = "signed out"
		}
		return a, nil

	case errMsg:
		a.log.WithError(m.error).WithField("op", m.op).Error("journal")
		if m.final {
			return a, tea.Quit
		}
		if a.quitting {
			return a, nil
		}
		a.err = m.error
		return a, nil
	}
	return a, nil
}

func (a *App) handleTimerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Start):
		return a, a.start()
	case key.Matches(m, a.keys.Pause):
		a.timer.Pause()
		return a, nil
	case key.Matches(m, a.keys.Toggle):
		if a.timer.Running() {
			a.timer.Pause()
			return a, nil
		}
		return a, a.start()
	case key.Matches(m, a.keys.Reset):
		return a, a.reset()
	case key.Matches(m, a.keys.Home):
		a.state = viewHome
		return a, a.loadTotals()
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Timer):
		a.state = viewTimer
	case key.Matches(m, a.keys.SignOut):
		return a, a.signOutCmd()
	}
	return a, nil
}

func (a *App) start() tea.Cmd {
	if !a.timer.Running() && a.timer.Elapsed() == 0 {
		a.startedAt = a.now()
	}
	if !a.timer.Start() {
		return nil
	}
	a.status, a.err = "", nil
	return a.tick()
}

// tick schedules the next interval for the current run generation.
func (a *App) tick() tea.Cmd {
	id := a.timer.ID()
	return tea.Tick(timer.Interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

func (a *App) reset() tea.Cmd {
	elapsed := a.timer.Reset()
	started := a.startedAt
	a.startedAt = time.Time{}
	if elapsed <= 0 {
		return nil
	}
	return a.recordCmd(started, a.now(), elapsed, false)
}

// quit cancels the tick chain and, when there is something to keep, waits
// for that final sitting to be written before exiting. Replies to earlier
// records do not end the program.
func (a *App) quit() tea.Cmd {
	a.timer.Stop()
	a.quitting = true
	if a.timer.Elapsed() > 0 {
		if cmd := a.recordCmd(a.startedAt, a.now(), a.timer.Elapsed(), true); cmd != nil {
			return cmd
		}
	}
	return tea.Quit
}

func (a *App) recordCmd(started, ended time.Time, elapsed int, final bool) tea.Cmd {
	if a.services.Journal == nil {
		return nil
	}
	if started.IsZero() {
		started = ended.Add(-time.Duration(elapsed) * time.Second)
	}
	journal, ctx := a.services.Journal, a.ctx
	return func() tea.Msg {
		sit, err := journal.Record(ctx, started, ended, elapsed)
		if err != nil {
			return errMsg{error: err, op: opRecord, final: final}
		}
		if sit == nil {
			return errMsg{error: errNotRecorded, op: opRecord, final: final}
		}
		return sittingSavedMsg{Sitting: *sit, final: final}
	}
}

func (a *App) loadTotals() tea.Cmd {
	if a.services.Journal == nil {
		return nil
	}
	journal, ctx := a.services.Journal, a.ctx
	return func() tea.Msg {
		t, err := journal.Totals(ctx)
		if err != nil {
			return errMsg{error: err, op: opTotals}
		}
		return totalsMsg(t)
	}
}

// signOutCmd never reports failure back to the view; it is only logged.
func (a *App) signOutCmd() tea.Cmd {
	so, log, ctx := a.session, a.log, a.ctx
	return func() tea.Msg {
		return signedOutMsg{ok: auth.SignOutQuietly(ctx, so, log)}
	}
}

// TickMsg is delivered once per interval while the timer runs.
type TickMsg struct {
	ID   int
	Time time.Time
}

// sittingSavedMsg and errMsg carry final when they answer the record made
// on quit.
type sittingSavedMsg struct {
	repository.Sitting
	final bool
}

type totalsMsg repository.Totals

type signedOutMsg struct{ ok bool }

type errMsg struct {
	error
	op    string
	final bool
}

const (
	opRecord = "record"
	opTotals = "totals"
)

var errNotRecorded = errors.New("sitting not recorded")
