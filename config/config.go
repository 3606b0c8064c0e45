// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.1.0"

var (
	configDir      = "tomato"
	configFileName = "config.yml"
	dbFileName     = "tomato.db"
	statusFileName = "status.json"
	logFileName    = "tomato.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// SoundPath is the directory that holds alert sound files.
func SoundPath() string {
	return filepath.Join(xdg.DataHome, configDir, "sounds")
}

func InitializePaths() {
	tomatoEnv := strings.TrimSpace(os.Getenv("TOMATO_ENV"))
	if tomatoEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", tomatoEnv)
		dbFileName = fmt.Sprintf("tomato_%s.db", tomatoEnv)
		statusFileName = fmt.Sprintf("status_%s.json", tomatoEnv)
		logFileName = fmt.Sprintf("tomato_%s.log", tomatoEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}
