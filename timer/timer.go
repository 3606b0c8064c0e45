// Package timer operates the tomato countdown timer and renders it in the
// terminal
package timer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/pterm/pterm"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/tomato/config"
	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/ui"
	"github.com/ayoisaiah/tomato/settings"
	"github.com/ayoisaiah/tomato/store"
)

const (
	padding  = 2
	maxWidth = 80
)

// Timer renders the countdown engine and wires up its completion
// collaborators.
type Timer struct {
	Engine *Engine
	Opts   *config.TimerConfig

	db        store.DB
	durations DurationSource
	volume    float64

	styles   styles
	progress progress.Model
	help     help.Model
}

// Status represents the status of a running timer.
type Status struct {
	EndTime           time.Time    `json:"end_date"`
	Name              session.Name `json:"name"`
	WorkCycle         int          `json:"work_cycle"`
	LongBreakInterval int          `json:"long_break_interval"`
}

// durationSource reads the persisted settings record, shadowed by any
// per-run overrides from the config file or command-line arguments.
type durationSource struct {
	overrides session.Duration
	prefs     *settings.Store
}

func (d durationSource) Duration(name session.Name) time.Duration {
	if v, ok := d.overrides[name]; ok {
		return v
	}

	return d.prefs.Duration(name)
}

// soundVolume reads the persisted playback volume, falling back to the
// config file value when no preference has been saved.
func soundVolume(db store.DB, fallback float64) float64 {
	b, err := db.GetPref(store.PrefSoundVolume)
	if err != nil || len(b) == 0 {
		return fallback
	}

	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}

	return v
}

// writeStatusFile records the state of the countdown so that other
// processes can report it.
func (t *Timer) writeStatusFile() error {
	snap := t.Engine.GetSnapshot()

	s := Status{
		Name:              snap.Mode,
		WorkCycle:         workCycle(snap, t.Engine.LongBreakInterval()),
		LongBreakInterval: t.Engine.LongBreakInterval(),
		EndTime: time.Now().
			Add(time.Duration(snap.SecondsRemaining) * time.Second),
	}

	return writeStatus(config.StatusFilePath(), s)
}

func writeStatus(path string, s Status) (err error) {
	statusFile, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		cerr := statusFile.Close()
		if err == nil {
			err = cerr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// workCycle expresses the session count as a position within the current
// long-break cycle, 1-based.
func workCycle(snap Snapshot, interval int) int {
	cycle := snap.CompletedWorkSessions % interval

	if snap.Mode == session.Work {
		cycle++
	} else if cycle == 0 {
		cycle = interval
	}

	return cycle
}

// ReportStatus reports the status of the currently running timer.
func ReportStatus() error {
	dbFilePath := config.DBFilePath()
	statusFilePath := config.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	_, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// This means tomato is not running, so no status to report
	if err == nil {
		return nil
	}

	if !errors.Is(err, berrors.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	remaining := int(time.Until(s.EndTime).Seconds())
	if remaining < 0 {
		return nil
	}

	var text string

	switch s.Name {
	case session.Work:
		text = ui.Green(
			fmt.Sprintf("[Work %d/%d]", s.WorkCycle, s.LongBreakInterval),
		)
	case session.ShortBreak:
		text = ui.Blue("[Short break]")
	case session.LongBreak:
		text = ui.Magenta("[Long break]")
	}

	clock := ui.Highlight(
		fmt.Sprintf("%02d:%02d", remaining/60, remaining%60),
	)

	pterm.Printfln("%s: %s", text, clock)

	return nil
}

// New creates a new timer over the given preferences store.
func New(
	dbClient store.DB,
	cfg *config.TimerConfig,
	prefs *settings.Store,
) (*Timer, error) {
	t := &Timer{
		Opts: cfg,
		db:   dbClient,
		durations: durationSource{
			overrides: cfg.DurationOverride,
			prefs:     prefs,
		},
		volume:   soundVolume(dbClient, cfg.SoundVolume),
		styles:   newStyles(cfg.DarkTheme),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}

	t.Engine = NewEngine(
		t.durations,
		WithLongBreakInterval(cfg.LongBreakInterval),
		WithHooks(Hooks{
			OnWorkComplete:  t.postSession,
			OnBreakComplete: t.postBreak,
		}),
	)

	return t, nil
}
