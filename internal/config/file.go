package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Defaults applied when compdocs.yaml leaves a field out.
const (
	DefaultFileName       = "compdocs.yaml"
	DefaultGlobalVariable = "component"
	DefaultExtension      = ".tmpl"
	DefaultComponentsDir  = "components"
)

// GlobalVariableEnv overrides global_variable from the config file.
const GlobalVariableEnv = "COMPDOCS_GLOBAL_VARIABLE"

// File is the project configuration.
//
// Example compdocs.yaml:
//
//	global_variable: ui
//	title: Acme UI kit
//	root: templates
//	discover: [components]
//	components:
//	  legacy-button: legacy/button.tmpl
type File struct {
	// GlobalVariable is the name under which components are reachable
	// with the shorthand call syntax.
	GlobalVariable string `yaml:"global_variable"`
	// Title is the default documentation title.
	Title string `yaml:"title"`
	// Root is the template root, relative to the config file.
	Root string `yaml:"root"`
	// Components maps component names to template paths under Root.
	Components map[string]string `yaml:"components"`
	// Discover lists directories under Root scanned for component templates.
	Discover []string `yaml:"discover"`
	// Extension is the component template file extension.
	Extension string `yaml:"extension"`

	// Path is the file the configuration was read from; empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no config file exists.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	f.applyEnv()
	return f
}

// Load reads the config file at path. A missing file is only an error when
// required is set; otherwise defaults are returned.
func Load(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes a config file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	f.applyDefaults()
	f.applyEnv()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks field values.
func (f *File) Validate() error {
	if !isIdentifier(f.GlobalVariable) {
		return fmt.Errorf("global_variable %q is not a valid template identifier", f.GlobalVariable)
	}
	if !strings.HasPrefix(f.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", f.Extension)
	}
	if filepath.IsAbs(f.Root) {
		return fmt.Errorf("root %q must be relative to the config file", f.Root)
	}
	return nil
}

// RootDir returns the template root on disk.
func (f *File) RootDir() string {
	base := "."
	if f.Path != "" {
		base = filepath.Dir(f.Path)
	}
	return filepath.Join(base, f.Root)
}

// ProjectDir returns the directory holding the config file.
func (f *File) ProjectDir() string {
	if f.Path == "" {
		return "."
	}
	return filepath.Dir(f.Path)
}

func (f *File) applyDefaults() {
	if f.GlobalVariable == "" {
		f.GlobalVariable = DefaultGlobalVariable
	}
	if f.Extension == "" {
		f.Extension = DefaultExtension
	}
	if f.Discover == nil && len(f.Components) == 0 {
		f.Discover = []string{DefaultComponentsDir}
	}
}

func (f *File) applyEnv() {
	if v := os.Getenv(GlobalVariableEnv); v != "" {
		f.GlobalVariable = v
	}
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
