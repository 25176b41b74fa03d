package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gorewood/compdocs/internal/docs"
	"github.com/gorewood/compdocs/internal/logger"
	"github.com/gorewood/compdocs/internal/output"
	"github.com/gorewood/compdocs/internal/watch"
)

type generateDocsOptions struct {
	path    string
	title   string
	generic bool
	strict  bool
	watch   bool
}

// newGenerateDocsCmd creates the generate-docs command.
func newGenerateDocsCmd() *cobra.Command {
	var opts generateDocsOptions

	cmd := &cobra.Command{
		Use:   "generate-docs PATH",
		Short: "Generate the component documentation site",
		Long: `Generate a docsify documentation site for every component into PATH.

PATH must be an existing directory. compdocs writes:
  index.html              docsify entry page
  _sidebar.md             navigation listing every component
  components/<name>.md    one page per component
  README.md               landing page, only when PATH has none

Pages are rewritten on every run; an existing README.md is never touched.

Examples:
  compdocs generate-docs ./docs
  compdocs generate-docs ./docs --title "Acme UI"
  compdocs generate-docs ./docs --generic       # leave out the global variable shorthand
  compdocs generate-docs ./docs --watch         # regenerate when templates change`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			return runGenerateDocs(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Documentation title (default: config title or \""+docs.DefaultTitle+"\")")
	cmd.Flags().BoolVarP(&opts.generic, "generic", "g", false, "Leave the global variable shorthand out of component pages")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when a component name is defined more than once")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate whenever templates or the config change")

	return cmd
}

// runGenerateDocs executes the generate-docs command.
func runGenerateDocs(cmd *cobra.Command, opts generateDocsOptions) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return fail(printer, err)
	}
	if err := generateOnce(cmd.Context(), printer, ws, opts); err != nil {
		return fail(printer, err)
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchDocs(ctx, cmd, printer, ws, opts)
}

// generateOnce runs one generation and reports it.
func generateOnce(ctx context.Context, printer *output.Printer, ws *workspace, opts generateDocsOptions) error {
	title := opts.title
	if title == "" {
		title = ws.config.Title
	}

	result, err := ws.generator.Generate(ctx, docs.Options{
		Path:    opts.path,
		Title:   title,
		Generic: opts.generic,
		Strict:  opts.strict,
	})
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	for _, dup := range result.Duplicates {
		printer.Warn("component %q is defined in %s and %s; using %s", dup.Name, dup.Replaced, dup.Winner, dup.Winner)
	}
	if result.ReadmeCopied {
		printer.Status("copied default README.md")
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Generated %s in %s", pages(len(result.Components)), result.Path),
	})
}

// watchDocs regenerates after every settled batch of template changes until
// ctx is canceled. The workspace is reloaded each time so new templates and
// config edits are picked up.
func watchDocs(ctx context.Context, cmd *cobra.Command, printer *output.Printer, ws *workspace, opts generateDocsOptions) error {
	roots := []string{ws.config.ProjectDir(), ws.config.RootDir()}
	w := watch.New(roots, watch.WithIgnore(opts.path), watch.WithLogger(ws.log))

	printer.Status("watching %s for changes (Ctrl+C to stop)", ws.config.RootDir())
	err := w.Run(ctx, func(ctx context.Context, paths []string) error {
		ws.log.Debugw("regenerating", logger.FieldCount, len(paths))
		next, err := loadWorkspace(cmd)
		if err != nil {
			printer.Error(classify(err))
			return err
		}
		if err := generateOnce(ctx, printer, next, opts); err != nil {
			printer.Error(classify(err))
			return err
		}
		return nil
	})
	if err != nil {
		return fail(printer, err)
	}
	return nil
}

func pages(n int) string {
	if n == 1 {
		return "1 component page"
	}
	return fmt.Sprintf("%d component pages", n)
}
