package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command output either as styled text or as JSON.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	styled bool
	styles styles
}

type styles struct {
	err     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	header  lipgloss.Style
	heading lipgloss.Style
	rule    lipgloss.Style
	key     lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		header:  lipgloss.NewStyle().Bold(true),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		rule:    lipgloss.NewStyle().Faint(true),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewPrinter creates a Printer writing to w. Styling is only applied when
// styled is true and jsonMode is false.
func NewPrinter(w io.Writer, jsonMode, styled bool) *Printer {
	styled = styled && !jsonMode
	return &Printer{
		w:      w,
		errW:   w,
		json:   jsonMode,
		styled: styled,
		styles: newStyles(styled),
	}
}

// WithStderr routes human-readable errors, warnings, and status lines to w.
// JSON output always goes to the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer emits JSON.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Styled reports whether ANSI styling is applied.
func (p *Printer) Styled() bool {
	return p.styled
}

// Success prints a result. Human output shows data["message"] when present
// and otherwise the keys in sorted order.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.success.Render(msg)))
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(data)) {
		p.KeyValue(key, fmt.Sprint(data[key]))
	}
	return nil
}

// Error prints err with its exit code in JSON mode, or a styled line on the
// error writer otherwise.
func (p *Printer) Error(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.err.Render("Error"), exitErr.Message))
}

// Warn prints a warning.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.warning.Render("Warning"), msg))
}

// Status prints a progress line to the error writer. Silent in JSON mode.
func (p *Printer) Status(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintln(p.errW, p.styles.dim.Render(fmt.Sprintf(format, args...))))
}

// Print writes formatted text without a trailing newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	data, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return data
}

// Section prints a heading underlined to its width, after a blank line.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.heading.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.rule.Render(strings.Repeat("─", lipgloss.Width(title)))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.key.Render(key+":"), value))
}

// Table prints rows under bold headers with columns padded to the widest
// cell. Cells beyond the header count are dropped.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	p.tableRow(headers, widths, p.styles.header)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, style lipgloss.Style) {
	var line strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			line.WriteString("  ")
		}
		padded := cell
		if i < len(cells)-1 && i < len(widths)-1 {
			padded += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line.WriteString(style.Render(padded))
	}
	mustWrite(fmt.Fprintln(p.w, line.String()))
}

// mustWrite panics on write errors to stdout, stderr, or buffers, which
// only fail when the process cannot report anything anyway.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
