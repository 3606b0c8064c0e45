package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/tomato/app"
	"github.com/ayoisaiah/tomato/config"
)

// initLogger routes the default logger to a rotated file so that log output
// never corrupts the terminal UI.
func initLogger() {
	w := &lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	config.InitializePaths()

	initLogger()

	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
