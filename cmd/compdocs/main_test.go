package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/compdocs/internal/config"
	"github.com/gorewood/compdocs/internal/output"
)

const alertTemplate = `{{/* Contextual feedback message. */}}
{{component "alert"
	(param "title" "string" "Heading")
	(param "type" "string" "Visual style" "info")
	(example "Saved" ` + "`" + `{{render_component "alert" (dict "title" "Saved")}}` + "`" + `)}}
<div class="alert alert-{{.type}}">{{.title}}</div>
`

const buttonTemplate = `{{component "button" (param "label" "string" "Button text" "OK")}}
<button>{{.label}}</button>
`

// writeProject creates a project directory holding files and returns the
// path of its compdocs.yaml. The per-user config directory is isolated.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv(config.EnvConfigHome, t.TempDir())
	t.Setenv("COMPDOCS_GLOBAL_VARIABLE", "")

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "compdocs.yaml")
}

// defaultProject has two discovered components and a title.
func defaultProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"compdocs.yaml":          "title: Acme UI\nglobal_variable: ui\n",
		"components/alert.tmpl":  alertTemplate,
		"components/button.tmpl": buttonTemplate,
	})
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "1.2.3") || !strings.Contains(stdout, "compdocs") {
		t.Errorf("--version output = %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"compdocs", "Usage:", "generate-docs", "--json", "--config", "--verbose"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("--help output should contain %q", want)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	stdout, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("expected error without a subcommand")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output should be JSON: %v\n%s", err, stdout)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should have an error field: %v", result)
	}
}

func TestRootCommand_InvalidColor(t *testing.T) {
	config := defaultProject(t)
	_, stderr, err := execute(t, "list", "--config", config, "--color", "sometimes")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(stderr, "invalid color mode") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBuildVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { version, commit, date = oldVersion, oldCommit, oldDate })

	version, commit, date = "1.0.0", "none", "unknown"
	if got := buildVersion(); got != "1.0.0" {
		t.Errorf("buildVersion() = %q", got)
	}

	commit, date = "0123456789abcdef", "2026-10-01"
	if got := buildVersion(); got != "1.0.0 (0123456, 2026-10-01)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
