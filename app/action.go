package app

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tomato/config"
	"github.com/ayoisaiah/tomato/internal/ui"
	"github.com/ayoisaiah/tomato/settings"
	"github.com/ayoisaiah/tomato/stats"
	"github.com/ayoisaiah/tomato/store"
	"github.com/ayoisaiah/tomato/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envTomatoNoColor = "TOMATO_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// darkTheme resolves the active theme: the persisted preference wins over
// the config file value.
func darkTheme(db store.DB, cfg *config.TimerConfig) bool {
	b, err := db.GetPref(store.PrefTheme)
	if err != nil || len(b) == 0 {
		return cfg.DarkTheme
	}

	return string(b) != "light"
}

// defaultAction starts the countdown timer.
func defaultAction(ctx *cli.Context) error {
	cfg := config.Timer(ctx)

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	prefs := settings.NewStore(dbClient)
	prefs.Load()

	cfg.DarkTheme = darkTheme(dbClient, cfg)
	ui.DarkTheme = cfg.DarkTheme

	t, err := timer.New(dbClient, cfg, prefs)
	if err != nil {
		return err
	}

	p := tea.NewProgram(t)

	_, err = p.Run()

	return err
}

// editConfigAction handles the edit-config command which opens the tomato
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Timer(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// resetSettingsAction restores the default session durations, removing the
// persisted record.
func resetSettingsAction(ctx *cli.Context) error {
	cfg := config.Timer(ctx)

	var confirm bool

	err := huh.NewConfirm().
		Title("Restore the default session durations?").
		Value(&confirm).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		return err
	}

	if !confirm {
		return nil
	}

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	prefs := settings.NewStore(dbClient)
	prefs.Reset()

	d := prefs.Current()

	pterm.Success.Printfln(
		"session durations restored to the defaults: work %d mins, short break %d mins, long break %d mins",
		d.Work,
		d.ShortBreak,
		d.LongBreak,
	)

	return nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	filter := config.Filter(ctx)

	dbClient, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	sessions, err := dbClient.GetSessions(filter.StartTime, filter.EndTime)
	if err != nil {
		return err
	}

	s := &stats.Stats{
		Opts: stats.Opts{
			FilterConfig: *filter,
		},
	}

	s.Compute(sessions)

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	s.Show()

	return nil
}

// statusAction handles the status command and prints the status of the
// currently running timer.
func statusAction(_ *cli.Context) error {
	return timer.ReportStatus()
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TOMATO_NO_COLOR is set
	if _, exists := os.LookupEnv(envTomatoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tomato")

	return nil
}
