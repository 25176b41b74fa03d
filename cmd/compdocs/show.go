package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/compdocs/internal/component"
	"github.com/gorewood/compdocs/internal/output"
)

// showResult is the JSON output of the show command.
type showResult struct {
	Component *component.Definition `json:"component"`
	Usage     string                `json:"usage"`
	Shorthand string                `json:"shorthand,omitempty"`
}

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var generic bool
	var page bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show one component's parameters and usage",
		Long: `Show a component's description, parameters, usage snippets, and examples.

Examples:
  compdocs show alert
  compdocs show alert --page       # print the generated Markdown page
  compdocs show alert --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], generic, page)
		},
	}

	cmd.Flags().BoolVarP(&generic, "generic", "g", false, "Leave out the global variable shorthand")
	cmd.Flags().BoolVar(&page, "page", false, "Print the rendered Markdown documentation page")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, name string, generic, page bool) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return fail(printer, err)
	}
	extractor, err := ws.generator.Extract()
	if err != nil {
		return fail(printer, err)
	}

	def, ok := extractor.Definitions()[name]
	if !ok {
		return fail(printer, output.NewUserError(fmt.Sprintf("component %q not found. Run 'compdocs list' to see defined components", name)))
	}

	if page {
		md, err := ws.generator.RenderPage(def, generic)
		if err != nil {
			return fail(printer, err)
		}
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{"name": def.Name, "page": md})
		}
		printer.Print("%s", md)
		return nil
	}

	result := showResult{Component: def, Usage: def.Invocation("")}
	if !generic && ws.generator.Global() != "" {
		result.Shorthand = def.Invocation(ws.generator.Global())
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printShow(printer, result)
	return nil
}

func printShow(printer *output.Printer, result showResult) {
	def := result.Component

	printer.Println(def.Name)
	if def.Description != "" {
		printer.Println(def.Description)
	}
	printer.KeyValue("template", def.Template)

	printer.Section("Parameters")
	if len(def.Parameters) == 0 {
		printer.Println("none")
	} else {
		rows := make([][]string, 0, len(def.Parameters))
		for _, param := range def.Parameters {
			dflt := "required"
			if param.HasDefault {
				dflt = param.DefaultLiteral()
			}
			rows = append(rows, []string{param.Name, orDash(param.Type), dflt, param.Description})
		}
		printer.Table([]string{"NAME", "TYPE", "DEFAULT", "DESCRIPTION"}, rows)
	}

	printer.Section("Usage")
	printer.Println(result.Usage)
	if result.Shorthand != "" {
		printer.Println(result.Shorthand)
	}

	for _, example := range def.Examples {
		printer.Section("Example: " + example.Title)
		printer.Println(example.Source)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
