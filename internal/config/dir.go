// Package config resolves compdocs configuration: the project config file
// and the per-user configuration directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigHome overrides the per-user configuration directory.
const EnvConfigHome = "COMPDOCS_CONFIG_HOME"

const (
	appName      = "compdocs"
	templatesDir = "templates"
)

// environment is what user directory resolution reads from the process.
type environment struct {
	getenv func(string) string
	goos   string
	home   func() (string, error)
}

func processEnvironment() environment {
	return environment{getenv: os.Getenv, goos: runtime.GOOS, home: os.UserHomeDir}
}

// userDir picks the first candidate that applies:
// $COMPDOCS_CONFIG_HOME, $XDG_CONFIG_HOME/compdocs, %AppData%/compdocs on
// Windows, then ~/.config/compdocs. Empty when none does.
func (env environment) userDir() string {
	if dir := env.getenv(EnvConfigHome); dir != "" {
		return dir
	}
	if xdg := env.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if appData := env.getenv("APPDATA"); env.goos == "windows" && appData != "" {
		return filepath.Join(appData, appName)
	}
	if home, err := env.home(); err == nil && home != "" {
		return filepath.Join(home, ".config", appName)
	}
	return ""
}

// Dir returns the per-user compdocs configuration directory, or an empty
// string when no home directory can be determined.
func Dir() string {
	return processEnvironment().userDir()
}

// TemplatesDir returns the per-user doc template override directory shared
// by every project, or an empty string when Dir is unknown.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, templatesDir)
}
