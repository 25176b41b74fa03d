package config

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func fakeEnvironment(vars map[string]string, goos, home string) environment {
	return environment{
		getenv: func(key string) string { return vars[key] },
		goos:   goos,
		home: func() (string, error) {
			if home == "" {
				return "", errors.New("no home")
			}
			return home, nil
		},
	}
}

func TestUserDir(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		goos string
		home string
		want string
	}{
		{
			name: "explicit override wins",
			vars: map[string]string{EnvConfigHome: "/custom", "XDG_CONFIG_HOME": "/xdg"},
			goos: "linux",
			home: "/home/u",
			want: "/custom",
		},
		{
			name: "xdg on any platform",
			vars: map[string]string{"XDG_CONFIG_HOME": "/xdg", "APPDATA": `C:\AppData`},
			goos: "windows",
			want: filepath.Join("/xdg", "compdocs"),
		},
		{
			name: "appdata on windows",
			vars: map[string]string{"APPDATA": "/appdata"},
			goos: "windows",
			home: "/home/u",
			want: filepath.Join("/appdata", "compdocs"),
		},
		{
			name: "appdata ignored elsewhere",
			vars: map[string]string{"APPDATA": "/appdata"},
			goos: "darwin",
			home: "/Users/u",
			want: filepath.Join("/Users/u", ".config", "compdocs"),
		},
		{
			name: "home fallback",
			goos: "linux",
			home: "/home/u",
			want: filepath.Join("/home/u", ".config", "compdocs"),
		},
		{
			name: "nothing known",
			goos: "linux",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fakeEnvironment(tt.vars, tt.goos, tt.home).userDir(); got != tt.want {
				t.Errorf("userDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDir_Default(t *testing.T) {
	t.Setenv(EnvConfigHome, "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}
	if runtime.GOOS != "windows" && filepath.Base(dir) != "compdocs" {
		t.Errorf("Dir() = %q, want path ending in 'compdocs'", dir)
	}
}

func TestTemplatesDir(t *testing.T) {
	t.Setenv(EnvConfigHome, "/custom/path")
	if got := TemplatesDir(); got != filepath.Join("/custom/path", "templates") {
		t.Errorf("TemplatesDir() = %q, want %q", got, filepath.Join("/custom/path", "templates"))
	}
}
