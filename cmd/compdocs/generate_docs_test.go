package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/compdocs/internal/docs"
	"github.com/gorewood/compdocs/internal/output"
)

func TestGenerateDocs(t *testing.T) {
	config := defaultProject(t)
	out := t.TempDir()

	stdout, stderr, err := execute(t, "generate-docs", out, "--config", config)
	if err != nil {
		t.Fatalf("generate-docs error = %v\nstderr: %s", err, stderr)
	}

	if !strings.Contains(stdout, "Generated 2 component pages in "+out) {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "copied default README.md") {
		t.Errorf("stderr = %q", stderr)
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "Acme UI") {
		t.Error("index.html should use the config title")
	}

	page, err := os.ReadFile(filepath.Join(out, "components", "alert.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Contextual feedback message.",
		"`components/alert.tmpl`",
		`{{call .ui.alert (dict "title" "<title>" "type" "info")}}`,
		`<div class="alert alert-info">Saved</div>`,
	} {
		if !strings.Contains(string(page), want) {
			t.Errorf("alert.md should contain %q:\n%s", want, page)
		}
	}
}

func TestGenerateDocs_Flags(t *testing.T) {
	config := defaultProject(t)
	out := t.TempDir()

	if _, stderr, err := execute(t, "generate-docs", out, "-c", config, "-t", "Kit", "-g"); err != nil {
		t.Fatalf("generate-docs error = %v\nstderr: %s", err, stderr)
	}

	index, _ := os.ReadFile(filepath.Join(out, "index.html"))
	if !strings.Contains(string(index), "Kit") || strings.Contains(string(index), "Acme UI") {
		t.Error("--title should override the config title")
	}
	page, _ := os.ReadFile(filepath.Join(out, "components", "button.md"))
	if strings.Contains(string(page), ".ui.") {
		t.Errorf("--generic page references the global variable:\n%s", page)
	}
}

func TestGenerateDocs_JSON(t *testing.T) {
	config := defaultProject(t)
	out := t.TempDir()

	stdout, _, err := execute(t, "generate-docs", out, "--config", config, "--json")
	if err != nil {
		t.Fatalf("generate-docs error = %v", err)
	}

	var result docs.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if strings.Join(result.Components, ",") != "alert,button" {
		t.Errorf("components = %v", result.Components)
	}
	if !result.ReadmeCopied || len(result.Files) != 5 {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateDocs_ProjectReadme(t *testing.T) {
	config := writeProject(t, map[string]string{
		"compdocs.yaml":         "",
		"components/alert.tmpl": alertTemplate,
		".compdocs/README.md":   "# House style\n",
	})
	out := t.TempDir()

	if _, _, err := execute(t, "generate-docs", out, "--config", config); err != nil {
		t.Fatalf("generate-docs error = %v", err)
	}
	readme, _ := os.ReadFile(filepath.Join(out, "README.md"))
	if string(readme) != "# House style\n" {
		t.Errorf("README.md = %q", readme)
	}
}

func TestGenerateDocs_ProjectTemplateOverride(t *testing.T) {
	config := writeProject(t, map[string]string{
		"compdocs.yaml":                        "",
		"components/alert.tmpl":                alertTemplate,
		".compdocs/templates/_sidebar.md.tmpl": "{{range .Components}}{{.}};{{end}}",
	})
	out := t.TempDir()

	if _, _, err := execute(t, "generate-docs", out, "--config", config); err != nil {
		t.Fatalf("generate-docs error = %v", err)
	}
	sidebar, _ := os.ReadFile(filepath.Join(out, "_sidebar.md"))
	if string(sidebar) != "alert;" {
		t.Errorf("_sidebar.md = %q", sidebar)
	}
}

func TestGenerateDocs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     func(out string) []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing output path",
			files:    map[string]string{"compdocs.yaml": "", "components/alert.tmpl": alertTemplate},
			args:     func(out string) []string { return []string{filepath.Join(out, "missing")} },
			wantCode: output.ExitUserError,
			wantErr:  "output path not found",
		},
		{
			name:     "parse error",
			files:    map[string]string{"compdocs.yaml": "", "components/broken.tmpl": `{{component "broken"`},
			args:     func(out string) []string { return []string{out} },
			wantCode: output.ExitUserError,
			wantErr:  "broken.tmpl",
		},
		{
			name: "strict duplicate",
			files: map[string]string{
				"compdocs.yaml":     "",
				"components/a.tmpl": `{{component "x"}}`,
				"components/b.tmpl": `{{component "x"}}`,
			},
			args:     func(out string) []string { return []string{out, "--strict"} },
			wantCode: output.ExitConflict,
			wantErr:  "duplicate component definition",
		},
		{
			name:     "bad config",
			files:    map[string]string{"compdocs.yaml": "colour: red\n"},
			args:     func(out string) []string { return []string{out} },
			wantCode: output.ExitUserError,
			wantErr:  "colour",
		},
		{
			name:     "missing registered template",
			files:    map[string]string{"compdocs.yaml": "components:\n  alert: nowhere.tmpl\n"},
			args:     func(out string) []string { return []string{out} },
			wantCode: output.ExitUserError,
			wantErr:  "nowhere.tmpl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := writeProject(t, tt.files)
			out := t.TempDir()
			args := append([]string{"generate-docs"}, tt.args(out)...)
			args = append(args, "--config", config)

			_, stderr, err := execute(t, args...)
			if got := output.GetExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want containing %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestGenerateDocs_DuplicateWarning(t *testing.T) {
	config := writeProject(t, map[string]string{
		"compdocs.yaml":     "",
		"components/a.tmpl": `{{component "x"}}`,
		"components/b.tmpl": `{{component "x"}}`,
	})

	_, stderr, err := execute(t, "generate-docs", t.TempDir(), "--config", config)
	if err != nil {
		t.Fatalf("generate-docs error = %v", err)
	}
	if !strings.Contains(stderr, `Warning: component "x" is defined in components/a.tmpl and components/b.tmpl`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestGenerateDocs_RequiresPath(t *testing.T) {
	if _, _, err := execute(t, "generate-docs"); err == nil {
		t.Error("generate-docs without PATH should fail")
	}
}

func TestPages(t *testing.T) {
	for n, want := range map[int]string{0: "0 component pages", 1: "1 component page", 7: "7 component pages"} {
		if got := pages(n); got != want {
			t.Errorf("pages(%d) = %q, want %q", n, got, want)
		}
	}
}
