// Package app defines the tomato command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tomato/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tomato app instance.
func Get() *cli.App {
	tomatoApp := &cli.App{
		Name: "tomato",
		Usage: `
		Tomato is a cross-platform productivity timer for the command-line. It is
		based on the Pomodoro Technique, a time management method developed by
		Francesco Cirillo in the late 1980s.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit",
				Usage:  "Edit the session durations and sound preferences",
				Action: editAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "reset-settings",
				Usage:  "Restore the default session durations",
				Action: resetSettingsAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
				},
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			disableNotificationFlag,
			workSoundFlag,
			breakSoundFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return tomatoApp
}
