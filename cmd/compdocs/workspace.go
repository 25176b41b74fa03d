package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/compdocs/internal/config"
	"github.com/gorewood/compdocs/internal/docs"
	"github.com/gorewood/compdocs/internal/engine"
	"github.com/gorewood/compdocs/internal/logger"
	"github.com/gorewood/compdocs/internal/registry"
)

// workspace is the project state a command works on: the config file, the
// component registry, and a generator wired to both.
type workspace struct {
	config    *config.File
	registry  *registry.Registry
	generator *docs.Generator
	log       *zap.SugaredLogger
}

// loadWorkspace reads --config and builds the registry and generator. The
// config file is optional unless --config was given explicitly.
func loadWorkspace(cmd *cobra.Command) (*workspace, error) {
	path, explicit := persistentFlag(cmd, "config")
	verbose, _ := persistentFlag(cmd, "verbose")
	log := logger.New(cmd.ErrOrStderr(), verbose == "true")

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(cfg.RootDir())
	reg, err := registry.Build(fsys, cfg.Components, cfg.Discover, cfg.Extension)
	if err != nil {
		return nil, err
	}

	readme, err := docs.ProjectReadme(cfg.ProjectDir())
	if err != nil {
		return nil, err
	}

	gen := docs.NewGenerator(reg, engine.New(fsys),
		docs.WithGlobal(cfg.GlobalVariable),
		docs.WithLogger(log),
		docs.WithReadme(readme),
		docs.WithTemplateLayers(docs.TemplateLayers(cfg.ProjectDir(), config.TemplatesDir())...),
	)

	log.Debugw("loaded workspace",
		"config", cfg.Path,
		logger.FieldPath, cfg.RootDir(),
		logger.FieldCount, reg.Len())

	return &workspace{
		config:    cfg,
		registry:  reg,
		generator: gen,
		log:       log,
	}, nil
}
