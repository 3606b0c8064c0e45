package timer

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/tomato/config"
)

// tickMsg drives the once-a-second redraw. The countdown itself advances on
// the engine's own ticker, so a dropped frame never loses a second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (t *Timer) Init() tea.Cmd {
	return tick()
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		_ = t.writeStatusFile()

		return t, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.togglePlay):
			if t.Engine.State() == Running {
				t.Engine.Pause()
			} else {
				t.Engine.Start()
			}

			return t, nil

		case key.Matches(msg, defaultKeymap.reset):
			t.Engine.Reset()

			return t, nil

		case key.Matches(msg, defaultKeymap.skip):
			t.Engine.Skip()

			return t, nil

		case key.Matches(msg, defaultKeymap.quit):
			t.Engine.Shutdown()

			_ = os.Remove(config.StatusFilePath())

			return t, tea.Batch(tea.ClearScreen, tea.Quit)
		}

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

		// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var progressModel tea.Model

		progressModel, cmd = t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd

	default:
		slog.Debug(spew.Sdump(msg))
	}

	return t, nil
}
