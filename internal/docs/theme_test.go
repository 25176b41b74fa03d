package docs

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltin_HasEveryTemplate(t *testing.T) {
	for _, name := range []string{IndexTemplate, SidebarTemplate, ComponentTemplate} {
		if _, err := fs.Stat(Builtin(), name); err != nil {
			t.Errorf("built-in %s missing: %v", name, err)
		}
	}
}

func TestDefaultReadme_ReturnsCopy(t *testing.T) {
	first := DefaultReadme()
	if len(first) == 0 {
		t.Fatal("DefaultReadme() is empty")
	}
	first[0] = 'X'
	if bytes.Equal(first, DefaultReadme()) {
		t.Error("DefaultReadme() shares its backing array")
	}
}

func TestProjectReadme(t *testing.T) {
	project := t.TempDir()

	got, err := ProjectReadme(project)
	if err != nil {
		t.Fatalf("ProjectReadme() error = %v", err)
	}
	if !bytes.Equal(got, DefaultReadme()) {
		t.Error("without an override the bundled README should be used")
	}

	override := filepath.Join(project, ProjectReadmeFile)
	if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("# Acme UI\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err = ProjectReadme(project)
	if err != nil {
		t.Fatalf("ProjectReadme() error = %v", err)
	}
	if string(got) != "# Acme UI\n" {
		t.Errorf("ProjectReadme() = %q", got)
	}
}

func TestTemplateLayers(t *testing.T) {
	project := t.TempDir()
	user := t.TempDir()

	tests := []struct {
		name       string
		setup      func(t *testing.T)
		userDir    string
		wantLayers int
	}{
		{name: "builtin only", userDir: "", wantLayers: 1},
		{name: "missing user dir", userDir: filepath.Join(user, "missing"), wantLayers: 1},
		{name: "user dir", userDir: user, wantLayers: 2},
		{
			name: "project and user",
			setup: func(t *testing.T) {
				if err := os.MkdirAll(filepath.Join(project, ProjectTemplatesDir), 0o755); err != nil {
					t.Fatal(err)
				}
			},
			userDir:    user,
			wantLayers: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			layers := TemplateLayers(project, tt.userDir)
			if len(layers) != tt.wantLayers {
				t.Fatalf("got %d layers, want %d", len(layers), tt.wantLayers)
			}
			if _, err := fs.Stat(layers[len(layers)-1], ComponentTemplate); err != nil {
				t.Error("last layer should be the built-in templates")
			}
		})
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a | b", `a \| b`},
		{"  first\nsecond  ", "first<br>second"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cell(tt.in); got != tt.want {
			t.Errorf("cell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDict(t *testing.T) {
	got, err := dict("title", "Saved", "count", 2)
	if err != nil {
		t.Fatalf("dict() error = %v", err)
	}
	if got["title"] != "Saved" || got["count"] != 2 {
		t.Errorf("dict() = %v", got)
	}

	if _, err := dict("odd"); err == nil {
		t.Error("dict with odd arguments should fail")
	}
	if _, err := dict(1, "x"); err == nil {
		t.Error("dict with a non-string key should fail")
	}
}
