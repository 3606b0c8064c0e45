package timer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tomato/config"
	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/store"
)

// sessionMessages are the prompts shown when a session begins.
var sessionMessages = map[session.Name]string{
	session.Work:       "Focus on your task",
	session.ShortBreak: "Take a breather",
	session.LongBreak:  "Take a long break",
}

// postSession runs the side effects of a completed work session: desktop
// notification, alert sound, session history, the completed-sessions tally,
// and the user's session command.
func (t *Timer) postSession(c Completion) {
	t.notify(c.Name, t.Engine.Mode())

	t.recordSession(c)

	t.incrementCompletedSessions()

	err := t.runSessionCmd(t.Opts.SessionCmd)
	if err != nil {
		slog.Warn("unable to run session command", slog.Any("error", err))
	}
}

// postBreak runs the side effects of a completed break.
func (t *Timer) postBreak(c Completion) {
	t.notify(c.Name, session.Work)

	err := t.runSessionCmd(t.Opts.SessionCmd)
	if err != nil {
		slog.Warn("unable to run session command", slog.Any("error", err))
	}
}

// notify sends a desktop notification and plays a notification sound.
func (t *Timer) notify(sessName, nextSessName session.Name) {
	if !t.Opts.Notify {
		return
	}

	title := string(sessName + " is finished")

	msg := sessionMessages[nextSessName]

	sound := t.Opts.BreakSound

	if sessName.IsBreak() {
		sound = t.Opts.WorkSound
	}

	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(config.Dir(), "icon.png"),
	)

	err := beeep.Notify(title, msg, pathToIcon)
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}

	if sound == "off" || sound == "" {
		return
	}

	err = playSound(sound, t.volume)
	if err != nil {
		pterm.Error.Printfln("unable to play sound: %v", err)
	}
}

// recordSession appends the interval that just ended to the session history,
// using the time the countdown actually consumed so that skipped intervals
// are not over-reported. History is best effort and never interrupts the
// countdown.
func (t *Timer) recordSession(c Completion) {
	// an interval skipped before its first tick leaves nothing to report
	if c.Elapsed <= 0 {
		return
	}

	now := time.Now()

	sess := &session.Session{
		StartTime: now.Add(-c.Elapsed),
		EndTime:   now,
		Name:      c.Name,
		Duration:  c.Elapsed,
		Completed: c.RanToZero,
	}

	err := t.db.UpdateSession(sess)
	if err != nil {
		slog.Warn("unable to record session", slog.Any("error", err))
	}
}

// incrementCompletedSessions bumps the persistent completed-sessions tally.
func (t *Timer) incrementCompletedSessions() {
	count := 0

	b, err := t.db.GetPref(store.PrefCompletedSessions)
	if err == nil && len(b) != 0 {
		count, _ = strconv.Atoi(string(b))
	}

	count++

	err = t.db.SetPref(
		store.PrefCompletedSessions,
		[]byte(strconv.Itoa(count)),
	)
	if err != nil {
		slog.Warn(
			"unable to update completed sessions tally",
			slog.Any("error", err),
		)
	}
}

// runSessionCmd executes the specified command.
func (t *Timer) runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
