package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tomato/config"
	"github.com/ayoisaiah/tomato/settings"
	"github.com/ayoisaiah/tomato/store"
	"github.com/ayoisaiah/tomato/timer"
)

// validateMins rejects input that is not a whole number of minutes within
// the accepted range. The form blocks saving until the input is corrected.
func validateMins(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !settings.Valid(float64(v)) {
		return fmt.Errorf(
			"enter a whole number of minutes between %d and %d",
			settings.MinMins,
			settings.MaxMins,
		)
	}

	return nil
}

func validateVolume(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return errors.New("enter a number between 0 and 1")
	}

	return nil
}

func soundOptions(current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("off", "off")}

	for _, v := range timer.SoundOpts() {
		opts = append(opts, huh.NewOption(v, v))
	}

	for i := range opts {
		if opts[i].Value == current {
			opts[i] = opts[i].Selected(true)
		}
	}

	return opts
}

// editAction handles the edit command which adjusts the session durations
// and sound preferences through interactive prompts.
func editAction(ctx *cli.Context) error {
	cfg := config.Timer(ctx)

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	prefs := settings.NewStore(dbClient)
	current := prefs.Load()

	workMins := strconv.Itoa(current.Work)
	shortBreakMins := strconv.Itoa(current.ShortBreak)
	longBreakMins := strconv.Itoa(current.LongBreak)

	volume := strconv.FormatFloat(cfg.SoundVolume, 'f', -1, 64)

	if b, prefErr := dbClient.GetPref(store.PrefSoundVolume); prefErr == nil &&
		len(b) != 0 {
		volume = string(b)
	}

	workSound := cfg.WorkSound
	breakSound := cfg.BreakSound
	dark := cfg.DarkTheme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work session length (minutes)").
				Validate(validateMins).
				Value(&workMins),
			huh.NewInput().
				Title("Short break length (minutes)").
				Validate(validateMins).
				Value(&shortBreakMins),
			huh.NewInput().
				Title("Long break length (minutes)").
				Validate(validateMins).
				Value(&longBreakMins),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sound volume (0 to 1)").
				Validate(validateVolume).
				Value(&volume),
			huh.NewSelect[string]().
				Title("Sound to play when a break ends").
				Options(soundOptions(workSound)...).
				Value(&workSound),
			huh.NewSelect[string]().
				Title("Sound to play when a work session ends").
				Options(soundOptions(breakSound)...).
				Value(&breakSound),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Theme").
				Options(
					huh.NewOption("dark", true).Selected(dark),
					huh.NewOption("light", false).Selected(!dark),
				).
				Value(&dark),
		),
	)

	err = form.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		return err
	}

	// validation already passed, so these conversions cannot fail
	work, _ := strconv.Atoi(strings.TrimSpace(workMins))
	shortBreak, _ := strconv.Atoi(strings.TrimSpace(shortBreakMins))
	longBreak, _ := strconv.Atoi(strings.TrimSpace(longBreakMins))

	prefs.Save(settings.Durations{
		Work:       work,
		ShortBreak: shortBreak,
		LongBreak:  longBreak,
	})

	err = dbClient.SetPref(
		store.PrefSoundVolume,
		[]byte(strings.TrimSpace(volume)),
	)
	if err != nil {
		return err
	}

	theme := "dark"
	if !dark {
		theme = "light"
	}

	err = dbClient.SetPref(store.PrefTheme, []byte(theme))
	if err != nil {
		return err
	}

	err = config.SaveSounds(workSound, breakSound)
	if err != nil {
		return err
	}

	pterm.Success.Println("your preferences have been updated")

	return nil
}
