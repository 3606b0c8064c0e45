package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/settings"
)

const defaultLongBreakInterval = 4

const (
	configWorkMinutes       = "work_mins"
	configShortBreakMinutes = "short_break_mins"
	configLongBreakMinutes  = "long_break_mins"
	configLongBreakInterval = "long_break_interval"
	configNotify            = "notify"
	configWorkSound         = "work_sound"
	configBreakSound        = "break_sound"
	configSessionCmd        = "session_cmd"
	configSoundVolume       = "sound_volume"
	configDarkTheme         = "dark_theme"
)

var timerCfg = &TimerConfig{
	DurationOverride: make(session.Duration),
}

var once sync.Once

// TimerConfig represents the program configuration derived from the config
// file and command-line arguments.
//
// DurationOverride holds per-run duration overrides only: entries shadow the
// persisted settings record in memory without overwriting it.
type TimerConfig struct {
	DurationOverride  session.Duration `json:"-"`
	WorkSound         string           `json:"work_sound"`
	BreakSound        string           `json:"break_sound"`
	SessionCmd        string           `json:"session_cmd"`
	PathToConfig      string           `json:"path_to_config"`
	PathToDB          string           `json:"path_to_db"`
	SoundVolume       float64          `json:"sound_volume"`
	LongBreakInterval int              `json:"long_break_interval"`
	Notify            bool             `json:"notify"`
	DarkTheme         bool             `json:"dark_theme"`
}

// timerDefaults sets the program's default configuration values. The three
// durations deliberately have no file-level defaults: their built-in
// defaults live in the settings store, and setting them here would shadow
// every persisted record.
func timerDefaults() {
	viper.SetDefault(configLongBreakInterval, defaultLongBreakInterval)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configWorkSound, "loud_bell")
	viper.SetDefault(configBreakSound, "bell")
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(configSoundVolume, 1.0)
	viper.SetDefault(configDarkTheme, true)
}

// initTimerConfig reads the configuration file, creating it with the
// defaults when it does not exist yet.
func initTimerConfig() error {
	viper.SetConfigFile(ConfigFilePath())
	viper.SetConfigType("yaml")

	timerCfg.PathToConfig = ConfigFilePath()

	timerDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return viper.WriteConfigAs(timerCfg.PathToConfig)
		}

		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return viper.WriteConfigAs(timerCfg.PathToConfig)
		}

		return err
	}

	return nil
}

// setTimerConfig fills the timer configuration from the config file, then
// overrides it with command-line arguments.
func setTimerConfig(ctx *cli.Context) {
	timerCfg.PathToDB = DBFilePath()

	// set from config file
	timerCfg.LongBreakInterval = viper.GetInt(configLongBreakInterval)
	timerCfg.Notify = viper.GetBool(configNotify)
	timerCfg.WorkSound = viper.GetString(configWorkSound)
	timerCfg.BreakSound = viper.GetString(configBreakSound)
	timerCfg.SessionCmd = viper.GetString(configSessionCmd)
	timerCfg.SoundVolume = viper.GetFloat64(configSoundVolume)
	timerCfg.DarkTheme = viper.GetBool(configDarkTheme)

	if timerCfg.LongBreakInterval < 1 {
		timerCfg.LongBreakInterval = defaultLongBreakInterval
	}

	if timerCfg.SoundVolume < 0 || timerCfg.SoundVolume > 1 {
		timerCfg.SoundVolume = 1
	}

	// duration values from the config file are per-run overrides, same as
	// their flag counterparts
	for key, name := range map[string]session.Name{
		configWorkMinutes:       session.Work,
		configShortBreakMinutes: session.ShortBreak,
		configLongBreakMinutes:  session.LongBreak,
	} {
		if viper.IsSet(key) {
			setDurationOverride(name, viper.GetString(key))
		}
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		timerCfg.Notify = false
	}

	if ctx.String("work-sound") != "" {
		timerCfg.WorkSound = ctx.String("work-sound")
	}

	if ctx.String("break-sound") != "" {
		timerCfg.BreakSound = ctx.String("break-sound")
	}

	if ctx.String("session-cmd") != "" {
		timerCfg.SessionCmd = ctx.String("session-cmd")
	}

	if ctx.String("work") != "" {
		setDurationOverride(session.Work, ctx.String("work"))
	}

	if ctx.String("short-break") != "" {
		setDurationOverride(session.ShortBreak, ctx.String("short-break"))
	}

	if ctx.String("long-break") != "" {
		setDurationOverride(session.LongBreak, ctx.String("long-break"))
	}

	if ctx.Uint("long-break-interval") > 0 {
		timerCfg.LongBreakInterval = int(ctx.Uint("long-break-interval"))
	}
}

// setDurationOverride records a minutes value as a per-run duration
// override. Values outside the settings bounds are rejected with a warning
// rather than clamped.
func setDurationOverride(name session.Name, minutes string) {
	mins, err := strconv.Atoi(minutes)
	if err != nil || !settings.Valid(float64(mins)) {
		pterm.Warning.Printfln(
			"ignoring %q: durations must be a whole number of minutes between %d and %d",
			minutes,
			settings.MinMins,
			settings.MaxMins,
		)

		return
	}

	timerCfg.DurationOverride[name] = time.Duration(mins) * time.Minute
}

// SaveSounds persists the alert sound choices to the config file.
func SaveSounds(workSound, breakSound string) error {
	viper.Set(configWorkSound, workSound)
	viper.Set(configBreakSound, breakSound)

	return viper.WriteConfig()
}

// Timer initializes and returns the timer configuration. This
// initialization is done just once no matter how many times it is called.
func Timer(ctx *cli.Context) *TimerConfig {
	once.Do(func() {
		err := initTimerConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setTimerConfig(ctx)
	})

	return timerCfg
}
