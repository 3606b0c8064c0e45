package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/timeutil"
)

type styles struct {
	base       lipgloss.Style
	main       lipgloss.Style
	secondary  lipgloss.Style
	hint       lipgloss.Style
	work       lipgloss.Style
	shortBreak lipgloss.Style
	longBreak  lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	hintColor := lipgloss.Color("241")
	if !darkTheme {
		hintColor = lipgloss.Color("245")
	}

	return styles{
		base: lipgloss.NewStyle().
			Padding(1, padding),
		main: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		secondary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")),
		hint: lipgloss.NewStyle().
			Foreground(hintColor),
		work: lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			SetString("[Work]"),
		shortBreak: lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")).
			SetString("[Short break]"),
		longBreak: lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			SetString("[Long break]"),
	}
}

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func formatTimeRemaining(secsLeft int) string {
	m, s := timeutil.SecsToMinsAndSecs(secsLeft)

	return fmt.Sprintf(
		"%s:%s", fmt.Sprintf("%02d", m), fmt.Sprintf("%02d", s),
	)
}

func (t *Timer) timerView(snap Snapshot) string {
	var s strings.Builder

	switch snap.Mode {
	case session.Work:
		s.WriteString(t.styles.work.Render())
	case session.ShortBreak:
		s.WriteString(t.styles.shortBreak.Render())
	case session.LongBreak:
		s.WriteString(t.styles.longBreak.Render())
	}

	if snap.Mode == session.Work {
		s.WriteString(
			t.styles.hint.SetString(
				fmt.Sprintf(
					" (%d/%d)",
					workCycle(snap, t.Engine.LongBreakInterval()),
					t.Engine.LongBreakInterval(),
				),
			).String())
	}

	s.WriteString(" ")

	switch snap.State {
	case Running:
		endTime := time.Now().
			Add(time.Duration(snap.SecondsRemaining) * time.Second)

		s.WriteString(
			strings.TrimSpace(
				t.styles.hint.SetString(
					"until " + endTime.Format("03:04:05 PM"),
				).String()),
		)
	case Paused:
		s.WriteString(t.styles.secondary.SetString("[Paused]").String())
	case Idle:
		s.WriteString(t.styles.secondary.SetString("[Ready]").String())
	}

	total := wholeSeconds(t.durations.Duration(snap.Mode))
	if total == 0 {
		total = 1
	}

	percent := float64(snap.SecondsRemaining) / float64(total)

	s.WriteString("\n\n")
	s.WriteString(
		t.styles.main.SetString(
			formatTimeRemaining(snap.SecondsRemaining),
		).String(),
	)
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(1 - percent))
	s.WriteString(t.sessionHelpView())

	return s.String()
}

func (t *Timer) sessionHelpView() string {
	return "\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.reset,
		defaultKeymap.skip,
		defaultKeymap.quit,
	})
}

func (t *Timer) View() string {
	return t.styles.base.Render(t.timerView(t.Engine.GetSnapshot()))
}
