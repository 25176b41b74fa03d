package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")

	data := []byte(`
global_variable: ui
title: Acme UI kit
root: templates
discover: [components, widgets]
extension: .gotmpl
components:
  legacy-button: legacy/button.gotmpl
`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.GlobalVariable != "ui" {
		t.Errorf("GlobalVariable = %q, want %q", f.GlobalVariable, "ui")
	}
	if f.Title != "Acme UI kit" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.Extension != ".gotmpl" {
		t.Errorf("Extension = %q", f.Extension)
	}
	if strings.Join(f.Discover, ",") != "components,widgets" {
		t.Errorf("Discover = %v", f.Discover)
	}
	if f.Components["legacy-button"] != "legacy/button.gotmpl" {
		t.Errorf("Components = %v", f.Components)
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")

	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.GlobalVariable != DefaultGlobalVariable {
		t.Errorf("GlobalVariable = %q, want %q", f.GlobalVariable, DefaultGlobalVariable)
	}
	if f.Extension != DefaultExtension {
		t.Errorf("Extension = %q, want %q", f.Extension, DefaultExtension)
	}
	if len(f.Discover) != 1 || f.Discover[0] != DefaultComponentsDir {
		t.Errorf("Discover = %v, want [%s]", f.Discover, DefaultComponentsDir)
	}
}

func TestParse_ExplicitComponentsDisableDefaultDiscovery(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")

	f, err := Parse([]byte("components:\n  alert: alert.tmpl\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Discover) != 0 {
		t.Errorf("Discover = %v, want none", f.Discover)
	}
}

func TestParse_EnvOverride(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "widgets")

	f, err := Parse([]byte("global_variable: ui\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.GlobalVariable != "widgets" {
		t.Errorf("GlobalVariable = %q, want env override %q", f.GlobalVariable, "widgets")
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"unknown key", "globals: ui\n", "globals"},
		{"bad yaml", "components: [\n", "invalid yaml"},
		{"bad global", "global_variable: my-ui\n", "global_variable"},
		{"bad extension", "extension: tmpl\n", "extension"},
		{"absolute root", "root: /abs\n", "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte("root: templates\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	f, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Path != path {
		t.Errorf("Path = %q, want %q", f.Path, path)
	}
	if got := f.RootDir(); got != filepath.Join(dir, "templates") {
		t.Errorf("RootDir() = %q, want %q", got, filepath.Join(dir, "templates"))
	}
	if got := f.ProjectDir(); got != dir {
		t.Errorf("ProjectDir() = %q, want %q", got, dir)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv(GlobalVariableEnv, "")
	path := filepath.Join(t.TempDir(), DefaultFileName)

	f, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load(optional) error = %v", err)
	}
	if f.Path != "" || f.RootDir() != "." {
		t.Errorf("defaults Path = %q, RootDir = %q", f.Path, f.RootDir())
	}

	if _, err := Load(path, true); err == nil {
		t.Error("Load(required) expected error for missing file")
	}
}
