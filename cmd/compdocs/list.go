package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/compdocs/internal/component"
	"github.com/gorewood/compdocs/internal/output"
)

// componentRow is one component in list output.
type componentRow struct {
	Name        string `json:"name"`
	Template    string `json:"template"`
	Description string `json:"description,omitempty"`
	Parameters  int    `json:"parameters"`
}

// listResult is the JSON output of the list command.
type listResult struct {
	Count      int                   `json:"count"`
	Components []componentRow        `json:"components"`
	Duplicates []component.Duplicate `json:"duplicates,omitempty"`
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the components defined in the project",
		Long: `List every component defined in the project's templates, sorted by name.

Examples:
  compdocs list
  compdocs list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

// runList executes the list command.
func runList(cmd *cobra.Command) error {
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

	result := listResult{
		Components: make([]componentRow, 0),
		Duplicates: extractor.Duplicates(),
	}
	for _, def := range extractor.Sorted() {
		result.Components = append(result.Components, componentRow{
			Name:        def.Name,
			Template:    def.Template,
			Description: def.Description,
			Parameters:  len(def.Parameters),
		})
	}
	result.Count = len(result.Components)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printList(printer, result)
	return nil
}

func printList(printer *output.Printer, result listResult) {
	for _, dup := range result.Duplicates {
		printer.Warn("component %q is defined in %s and %s; using %s", dup.Name, dup.Replaced, dup.Winner, dup.Winner)
	}
	if result.Count == 0 {
		printer.Println("No components found.")
		return
	}

	rows := make([][]string, 0, len(result.Components))
	for _, row := range result.Components {
		rows = append(rows, []string{row.Name, row.Template, strconv.Itoa(row.Parameters), firstLine(row.Description)})
	}
	printer.Table([]string{"NAME", "TEMPLATE", "PARAMS", "DESCRIPTION"}, rows)
}

// firstLine returns the first line of s.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
