package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/stillpoint/internal/timer"
)

func (a *App) View() string {
	if a.quitting {
		return mutedStyle.Render("be well.") + "\n"
	}
	var body string
	switch a.state {
	case viewHome:
		body = a.renderHome()
	default:
		body = a.renderTimer()
	}
	footer := footerStyle.Render(a.help.View(a.keys.forView(a.state)))
	out := lipgloss.JoinVertical(lipgloss.Center, body, "", footer)
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}

func (a *App) renderTimer() string {
	clock := clockStyleFor(a.timer.Running(), a.timer.Elapsed()).Render(a.timer.String())

	state := "ready"
	switch {
	case a.timer.Running():
		state = "sitting"
	case a.timer.Elapsed() > 0:
		state = "paused"
	}

	lines := []string{
		titleStyle.Render("stillpoint"),
		"",
		clock,
		stateStyle.Render(state),
	}
	if line := a.statusLine(); line != "" {
		lines = append(lines, "", line)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (a *App) renderHome() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Welcome back"))
	b.WriteString("\n\n")
	if a.totals != nil {
		fmt.Fprintf(&b, "%s sittings, %s total\n",
			accentStyle.Render(fmt.Sprint(a.totals.Count)),
			accentStyle.Render(timer.Format(a.totals.Seconds)))
	} else if a.services.Journal == nil {
		b.WriteString(mutedStyle.Render("journal disabled") + "\n")
	}
	if a.signedIn {
		b.WriteString(stateStyle.Render("signed in") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("not signed in") + "\n")
	}
	if a.timer.Running() || a.timer.Elapsed() > 0 {
		fmt.Fprintf(&b, "current sitting %s\n", a.timer.String())
	}
	if line := a.statusLine(); line != "" {
		b.WriteString("\n" + line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) statusLine() string {
	if a.err != nil {
		return errorStyle.Render("journal: " + a.err.Error())
	}
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}
