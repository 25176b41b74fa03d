// Package main provides the entry point for the compdocs CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/compdocs/internal/config"
	"github.com/gorewood/compdocs/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the compdocs CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compdocs",
		Short: "Documentation generator for Go template components",
		Long: `compdocs - Documentation for Go template components.

compdocs reads the component definitions declared in your templates:

  {{/* Displays a contextual feedback message. */}}
  {{component "alert" (param "title" "string" "Heading") (param "type" "string" "Style" "info")}}

and generates a docsify site with one page per component listing its
parameters, defaults, usage snippets, and rendered examples.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'compdocs --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", config.DefaultFileName, "Project config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
	cmd.PersistentFlags().String("color", string(output.ColorAuto), "Color output: auto, always, or never")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "docs", Title: "Documentation Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newGenerateDocsCmd(), "docs")

	addGroupedCommand(cmd, newListCmd(), "inspect")
	addGroupedCommand(cmd, newShowCmd(), "inspect")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// persistentFlag looks a flag up on cmd, then on the root command.
func persistentFlag(cmd *cobra.Command, name string) (string, bool) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return "", false
	}
	return flag.Value.String(), flag.Changed
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	value, _ := persistentFlag(cmd, "json")
	return value == "true"
}

// newPrinter builds the printer for cmd from --json and --color.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	jsonMode := isJSONMode(cmd)
	value, _ := persistentFlag(cmd, "color")
	mode, err := output.ParseColorMode(value)
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, false).WithStderr(cmd.ErrOrStderr())
		userErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(userErr)
		return nil, userErr
	}

	out := cmd.OutOrStdout()
	printer := output.NewPrinter(out, jsonMode, mode.Styled(output.IsTTY(out)))
	return printer.WithStderr(cmd.ErrOrStderr()), nil
}
