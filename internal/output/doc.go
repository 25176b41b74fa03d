// Package output renders command results for the compdocs CLI.
//
// Every command writes through a Printer, which switches between styled text
// for people and JSON for scripts and agents:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Generated 4 pages"})
//
// Errors carry the process exit code:
//
//	output.ExitUserError   // 1: bad arguments, missing output path, template errors
//	output.ExitSystemError // 2: file system failures
//	output.ExitConflict    // 3: a component is defined twice in strict mode
//
// In JSON mode an error is written as {"error": "...", "code": N}.
package output
